package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wallet_inspector/internal/domain/entity"
)

// MaxMenuTransactions bounds the transaction-count prompt.
const MaxMenuTransactions = 20

const menuText = `What do you want to do with this wallet
1. Balance
2. Fiat
3. Transactions
4. Average Gas
5. Statistics
6. Export
7. Exit
`

// Menu is the interactive front end: one wallet, then actions until Exit or EOF.
type Menu struct {
	app     *App
	scanner *bufio.Scanner
	out     io.Writer
}

// NewMenu creates a menu reading from in and writing to out.
func NewMenu(app *App, in io.Reader, out io.Writer) *Menu {
	return &Menu{app: app, scanner: bufio.NewScanner(in), out: out}
}

func (m *Menu) readLine() (string, bool) {
	if !m.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.scanner.Text()), true
}

// Run drives the menu. Action errors are printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	wallet, ok := m.promptWallet()
	if !ok {
		return m.scanner.Err()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(m.out, menuText)
		choice, ok := m.readLine()
		if !ok {
			return m.scanner.Err()
		}

		var err error
		switch choice {
		case "1":
			err = m.app.showBalance(ctx, m.out, wallet)
		case "2":
			err = m.app.showFiat(ctx, m.out, wallet)
		case "3":
			limit, ok := m.promptTransactionCount()
			if !ok {
				return m.scanner.Err()
			}
			err = m.app.showTransactions(ctx, m.out, wallet, limit)
		case "4":
			limit, ok := m.promptTransactionCount()
			if !ok {
				return m.scanner.Err()
			}
			err = m.app.showAverageGas(ctx, m.out, wallet, limit)
		case "5":
			err = m.app.showStatistics(ctx, m.out, wallet)
		case "6":
			err = m.app.export(ctx, m.out, wallet, m.app.Config.Export.Directory)
		case "7":
			return nil
		default:
			fmt.Fprintln(m.out, "Please type a valid option")
			continue
		}

		if err != nil {
			m.app.Logger.Debug("Menu action failed", "choice", choice, "address", wallet, "error", err)
			printError(m.out, err)
		}
	}
}

func (m *Menu) promptWallet() (string, bool) {
	fmt.Fprintln(m.out, "Please input your wallet")
	for {
		wallet, ok := m.readLine()
		if !ok {
			return "", false
		}
		if err := entity.ValidateAddress(wallet); err != nil {
			fmt.Fprint(m.out, "Please input a valid address\n\nInput your wallet again\n")
			continue
		}
		return wallet, true
	}
}

func (m *Menu) promptTransactionCount() (int, bool) {
	for {
		fmt.Fprintf(m.out, "How many transactions do you want to see (Max %d): \n", MaxMenuTransactions)
		line, ok := m.readLine()
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= MaxMenuTransactions {
			return n, true
		}
		fmt.Fprintf(m.out, "Please input a number between 1 and %d\n", MaxMenuTransactions)
	}
}
