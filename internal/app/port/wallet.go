package port

import (
	"context"

	"wallet_inspector/internal/domain/entity"
)

// WalletProvider defines the interface for fetching wallet addresses.
type WalletProvider interface {
	GetWallets() ([]entity.Wallet, error)
}

// ExplorerClient queries an Etherscan-compatible account API.
type ExplorerClient interface {
	// GetTransactions returns the oldest limit transactions of address, ascending by block.
	GetTransactions(ctx context.Context, address string, limit int) ([]entity.RawTransaction, error)
}

// ExchangeRateClient looks up the current ETH->USD rate.
type ExchangeRateClient interface {
	// GetUSDRate returns the rate as the decimal string the provider reported.
	GetUSDRate(ctx context.Context) (string, error)
}

// AddressStatsClient queries lifetime statistics of an address.
type AddressStatsClient interface {
	// GetTransactionCount returns the n_tx of address.
	GetTransactionCount(ctx context.Context, address string) (int64, error)
}
