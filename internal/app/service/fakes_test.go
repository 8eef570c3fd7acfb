package service

import (
	"context"

	"wallet_inspector/internal/domain/entity"
)

const (
	testAddress = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"
	oneEtherWei = "1000000000000000000"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Error(string, ...any) {}

func (l *recordingLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}

type fakeNode struct {
	balance string
	err     error
	calls   int
}

func (f *fakeNode) GetBalanceHex(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.balance, f.err
}

type fakeRates struct {
	rate  string
	err   error
	calls int
}

func (f *fakeRates) GetUSDRate(_ context.Context) (string, error) {
	f.calls++
	return f.rate, f.err
}

type fakeExplorer struct {
	txs       []entity.RawTransaction
	err       error
	calls     int
	lastLimit int
}

func (f *fakeExplorer) GetTransactions(_ context.Context, _ string, limit int) ([]entity.RawTransaction, error) {
	f.calls++
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.txs) {
		return f.txs[:limit], nil
	}
	return f.txs, nil
}

type fakeStats struct {
	count int64
	err   error
	calls int
}

func (f *fakeStats) GetTransactionCount(_ context.Context, _ string) (int64, error) {
	f.calls++
	return f.count, f.err
}

func rawTx(value, gas, ts string) entity.RawTransaction {
	return entity.RawTransaction{
		Hash:        "0xhash",
		BlockNumber: "1",
		From:        testAddress,
		To:          "0x0000000000000000000000000000000000000001",
		GasUsed:     gas,
		Value:       value,
		TimeStamp:   ts,
	}
}
