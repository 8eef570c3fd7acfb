package port

import (
	"context"

	"wallet_inspector/internal/domain/entity"
)

// WalletQueryService turns single external round trips into typed wallet data.
type WalletQueryService interface {
	FetchBalance(ctx context.Context, address string) (float64, error)
	FetchFiatBalance(ctx context.Context, address string) (float64, error)
	FetchTransactions(ctx context.Context, address string, limit int) ([]entity.Transaction, error)
	FetchTotalTransactionCount(ctx context.Context, address string) (int64, error)
	// MaxTransactionLimit is the largest list the explorer serves in one page.
	MaxTransactionLimit() int
}

// StatisticsService derives aggregates from the query layer.
type StatisticsService interface {
	GenerateStatistics(ctx context.Context, address string) (entity.Statistics, error)
	// GenerateReport returns the statistics together with the full-history list they were computed from.
	GenerateReport(ctx context.Context, address string) (entity.Statistics, []entity.Transaction, error)
	AverageGasForLimit(ctx context.Context, address string, limit int) (float64, error)
}

// Exporter persists a statistics snapshot and its transactions.
type Exporter interface {
	Export(stats entity.Statistics, txs []entity.Transaction) ([]string, error)
}
