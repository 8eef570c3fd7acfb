package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
)

// DefaultWalletFilePath is used when no path is configured.
const DefaultWalletFilePath = "data/wallets.txt"

// WalletFileLoader implements the port.WalletProvider interface by loading wallets from a file.
// Blank lines and lines starting with # are skipped.
type WalletFileLoader struct {
	filePath string
	logger   port.Logger
}

var _ port.WalletProvider = (*WalletFileLoader)(nil)

// NewWalletFileLoader creates a new WalletFileLoader.
func NewWalletFileLoader(filePath string, l port.Logger) *WalletFileLoader {
	if filePath == "" {
		filePath = DefaultWalletFilePath
	}
	return &WalletFileLoader{filePath: filePath, logger: l}
}

// GetWallets reads wallet addresses from the configured file path.
// Lines that fail address validation are logged and skipped.
func (l *WalletFileLoader) GetWallets() ([]entity.Wallet, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []entity.Wallet
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := entity.ValidateAddress(line); err != nil {
			l.logger.Warn("Skipping invalid wallet address", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		wallets = append(wallets, entity.Wallet{Address: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logger.Info("Wallets loaded from file", "count", len(wallets), "path", l.filePath)
	return wallets, nil
}
