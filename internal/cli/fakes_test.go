package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/infrastructure/configloader"
	"wallet_inspector/internal/infrastructure/export"
	"wallet_inspector/internal/infrastructure/walletloader"
	"wallet_inspector/internal/pkg/metrics"
)

const testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeQuery struct {
	balance    float64
	balanceErr error
	fiat       float64
	txs        []entity.Transaction
	lastLimit  int
}

func (f *fakeQuery) FetchBalance(context.Context, string) (float64, error) {
	return f.balance, f.balanceErr
}

func (f *fakeQuery) FetchFiatBalance(context.Context, string) (float64, error) { return f.fiat, nil }

func (f *fakeQuery) FetchTransactions(_ context.Context, _ string, limit int) ([]entity.Transaction, error) {
	f.lastLimit = limit
	return f.txs, nil
}

func (f *fakeQuery) FetchTotalTransactionCount(context.Context, string) (int64, error) {
	return int64(len(f.txs)), nil
}

func (f *fakeQuery) MaxTransactionLimit() int { return 10000 }

type fakeStats struct {
	stats     map[string]entity.Statistics
	txs       []entity.Transaction
	avgGas    float64
	lastLimit int
}

func (f *fakeStats) GenerateStatistics(_ context.Context, address string) (entity.Statistics, error) {
	s, ok := f.stats[address]
	if !ok {
		return entity.Statistics{}, entity.ErrNoTransactions
	}
	return s, nil
}

func (f *fakeStats) GenerateReport(ctx context.Context, address string) (entity.Statistics, []entity.Transaction, error) {
	s, err := f.GenerateStatistics(ctx, address)
	if err != nil {
		return entity.Statistics{}, nil, err
	}
	return s, f.txs, nil
}

func (f *fakeStats) AverageGasForLimit(_ context.Context, _ string, limit int) (float64, error) {
	f.lastLimit = limit
	return f.avgGas, nil
}

func sampleStatistics() entity.Statistics {
	return entity.Statistics{
		Address:              testAddress,
		TotalTransactions:    3,
		AverageGas:           28000,
		AverageEther:         2,
		FirstTransactionDate: "2021-01-01",
		SampledTransactions:  3,
	}
}

func sampleTransaction() entity.Transaction {
	return entity.Transaction{
		From:       testAddress,
		To:         "0x0000000000000000000000000000000000000001",
		ValueEther: 1.5,
		GasUsed:    "21000",
		Timestamp:  "2021-01-01 00:00:00",
	}
}

func newTestApp(t *testing.T, q *fakeQuery, s *fakeStats) *App {
	t.Helper()
	cfg, err := configloader.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	cfg.Export.Directory = t.TempDir()
	cfg.Server.Port = "0"

	return &App{
		Config: cfg,
		Query:  q,
		Stats:  s,
		NewExporter: func(dir string) port.Exporter {
			return export.NewCSVExporter(dir, nopLogger{})
		},
		NewWallets: func(path string) port.WalletProvider {
			return walletloader.NewWalletFileLoader(path, nopLogger{})
		},
		Metrics: metrics.New(),
		Logger:  nopLogger{},
	}
}

func buildWith(app *App, cleaned *bool) Builder {
	return func(context.Context, *configloader.Config) (*App, func(), error) {
		return app, func() { *cleaned = true }, nil
	}
}

// runCLI executes args against app and returns everything written to stdout.
func runCLI(t *testing.T, app *App, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cleaned := false
	args = append([]string{"--config", filepath.Join(t.TempDir(), "absent.yml")}, args...)

	err := Run(context.Background(), buildWith(app, &cleaned), args, strings.NewReader(input), &out)

	require.True(t, cleaned, "cleanup must run")
	return out.String(), err
}
