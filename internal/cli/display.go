package cli

import (
	"fmt"
	"io"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/utils"
)

func printBalance(w io.Writer, ether float64) {
	fmt.Fprintf(w, "The balance of the wallet in ether is: %s\n", utils.FormatFloat(ether))
}

func printFiat(w io.Writer, usd float64) {
	fmt.Fprintf(w, "Balance in USD is: %s$\n\n", utils.FormatFloat(usd))
}

func printTransaction(w io.Writer, tx entity.Transaction) {
	fmt.Fprintf(w, "Transaction on %s\nFrom: %s\nTo: %s\nValue: %s ETH\nGas: %s wei\n\n",
		tx.Timestamp, tx.From, tx.To, utils.FormatFloat(tx.ValueEther), tx.GasUsed)
}

func printTransactions(w io.Writer, txs []entity.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions found")
		return
	}
	for _, tx := range txs {
		printTransaction(w, tx)
	}
}

func printAverageGas(w io.Writer, avg float64) {
	fmt.Fprintf(w, "The average gas for the last transactions was: %s\n\n", utils.FormatFloat(avg))
}

func printStatistics(w io.Writer, s entity.Statistics) {
	fmt.Fprintf(w, "Wallet address: %s\n"+
		"Total number of transactions: %d\n"+
		"Average gas per transaction: %.2f\n"+
		"Average ETH per transaction: %s\n"+
		"Date of first transaction: %s\n",
		s.Address, s.TotalTransactions, s.AverageGas, utils.FormatFloat(s.AverageEther), s.FirstTransactionDate)
}

func printExported(w io.Writer, address string, paths []string) {
	fmt.Fprintf(w, "Exported statistics and transactions for %s to CSV files\n", address)
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n\n", err)
}
