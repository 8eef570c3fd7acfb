package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_inspector/internal/domain/entity"
)

type queryFixture struct {
	node     *fakeNode
	rates    *fakeRates
	explorer *fakeExplorer
	stats    *fakeStats
	svc      *WalletQueryServiceImpl
}

func newQueryFixture(maxOffset int) *queryFixture {
	f := &queryFixture{
		node:     &fakeNode{balance: "0xde0b6b3a7640000"},
		rates:    &fakeRates{rate: "2000.50"},
		explorer: &fakeExplorer{},
		stats:    &fakeStats{},
	}
	f.svc = NewWalletQueryService(f.node, f.rates, f.explorer, f.stats, &recordingLogger{}, maxOffset)
	return f
}

func (f *queryFixture) networkCalls() int {
	return f.node.calls + f.rates.calls + f.explorer.calls + f.stats.calls
}

func TestWalletQueryService_InvalidAddressMakesNoNetworkCalls(t *testing.T) {
	addresses := []string{"", "0x12", "742d35Cc6634C0532925a3b844Bc454e4438f44e00", testAddress + "0"}

	for _, addr := range addresses {
		f := newQueryFixture(10000)
		ctx := context.Background()

		_, err := f.svc.FetchBalance(ctx, addr)
		assert.ErrorIs(t, err, entity.ErrInvalidAddress)
		_, err = f.svc.FetchFiatBalance(ctx, addr)
		assert.ErrorIs(t, err, entity.ErrInvalidAddress)
		_, err = f.svc.FetchTransactions(ctx, addr, 5)
		assert.ErrorIs(t, err, entity.ErrInvalidAddress)
		_, err = f.svc.FetchTotalTransactionCount(ctx, addr)
		assert.ErrorIs(t, err, entity.ErrInvalidAddress)

		assert.Zero(t, f.networkCalls(), "address %q", addr)
	}
}

func TestWalletQueryService_FetchBalance(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		nodeErr error
		want    float64
		wantErr error
	}{
		{name: "one ether", hex: "0xde0b6b3a7640000", want: 1},
		{name: "zero", hex: "0x0", want: 0},
		{name: "one wei", hex: "0x1", want: 1e-18},
		{name: "decimal string rejected", hex: "1000", wantErr: entity.ErrNumericParse},
		{name: "non-hex digits", hex: "0xzz", wantErr: entity.ErrNumericParse},
		{name: "node error propagates", nodeErr: entity.NewMissingFieldError("result"), wantErr: entity.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQueryFixture(10000)
			f.node.balance = tt.hex
			f.node.err = tt.nodeErr

			got, err := f.svc.FetchBalance(context.Background(), testAddress)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWalletQueryService_FetchBalance_NonHexIsWrapped(t *testing.T) {
	f := newQueryFixture(10000)
	f.node.balance = "1000"

	_, err := f.svc.FetchBalance(context.Background(), testAddress)

	require.ErrorIs(t, err, entity.ErrNumericParse)
	assert.Equal(t, "fetch balance of "+testAddress+`: numeric parse error (input "1000"): balance is not 0x-prefixed hex`, err.Error())
}

func TestWalletQueryService_FetchFiatBalance(t *testing.T) {
	f := newQueryFixture(10000)
	f.node.balance = "0x14d1120d7b160000" // 1.5 ether

	got, err := f.svc.FetchFiatBalance(context.Background(), testAddress)

	require.NoError(t, err)
	assert.InDelta(t, 3000.75, got, 1e-9)
	assert.Equal(t, 1, f.node.calls)
	assert.Equal(t, 1, f.rates.calls)
}

func TestWalletQueryService_FetchFiatBalance_Errors(t *testing.T) {
	t.Run("missing rate", func(t *testing.T) {
		f := newQueryFixture(10000)
		f.rates.err = entity.NewMissingFieldError("data.rates.USD")

		_, err := f.svc.FetchFiatBalance(context.Background(), testAddress)
		assert.ErrorIs(t, err, &entity.WalletError{Kind: entity.KindMissingField, Field: "data.rates.USD"})
	})

	t.Run("unparsable rate", func(t *testing.T) {
		f := newQueryFixture(10000)
		f.rates.rate = "two thousand"

		_, err := f.svc.FetchFiatBalance(context.Background(), testAddress)
		assert.ErrorIs(t, err, entity.ErrNumericParse)
	})

	t.Run("balance error skips rate lookup", func(t *testing.T) {
		f := newQueryFixture(10000)
		f.node.err = entity.NewNetworkError(errors.New("connection refused"))

		_, err := f.svc.FetchFiatBalance(context.Background(), testAddress)
		assert.ErrorIs(t, err, entity.ErrNetwork)
		assert.Zero(t, f.rates.calls)
	})
}

func TestWalletQueryService_FetchTransactions(t *testing.T) {
	f := newQueryFixture(10000)
	f.explorer.txs = []entity.RawTransaction{
		rawTx("1500000000000000000", "21000", "1609459200"),
		rawTx("0", "42000", "1609545600"),
	}

	txs, err := f.svc.FetchTransactions(context.Background(), testAddress, 5)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, 5, f.explorer.lastLimit)
	assert.Equal(t, 1.5, txs[0].ValueEther)
	assert.Equal(t, "21000", txs[0].GasUsed)
	assert.Equal(t, "2021-01-01 00:00:00", txs[0].Timestamp)
	assert.Equal(t, "2021-01-02 00:00:00", txs[1].Timestamp)
	assert.Equal(t, testAddress, txs[0].From)
}

func TestWalletQueryService_FetchTransactions_Limits(t *testing.T) {
	t.Run("limit below one", func(t *testing.T) {
		f := newQueryFixture(10000)

		_, err := f.svc.FetchTransactions(context.Background(), testAddress, 0)
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
		assert.Zero(t, f.explorer.calls)
	})

	t.Run("clamped to page ceiling", func(t *testing.T) {
		f := newQueryFixture(100)

		_, err := f.svc.FetchTransactions(context.Background(), testAddress, 5000)
		require.NoError(t, err)
		assert.Equal(t, 100, f.explorer.lastLimit)
	})

	t.Run("empty list is success", func(t *testing.T) {
		f := newQueryFixture(10000)

		txs, err := f.svc.FetchTransactions(context.Background(), testAddress, 10)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestWalletQueryService_FetchTransactions_BadElementFailsWholeCall(t *testing.T) {
	f := newQueryFixture(10000)
	f.explorer.txs = []entity.RawTransaction{
		rawTx("1", "21000", "1609459200"),
		rawTx("not-a-number", "21000", "1609459200"),
	}

	txs, err := f.svc.FetchTransactions(context.Background(), testAddress, 2)

	assert.ErrorIs(t, err, entity.ErrNumericParse)
	assert.Nil(t, txs)
}

func TestWalletQueryService_FetchTotalTransactionCount(t *testing.T) {
	f := newQueryFixture(10000)
	f.stats.count = 42

	got, err := f.svc.FetchTotalTransactionCount(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	f.stats.err = entity.NewMissingFieldError("n_tx")
	_, err = f.svc.FetchTotalTransactionCount(context.Background(), testAddress)
	assert.ErrorIs(t, err, &entity.WalletError{Kind: entity.KindMissingField, Field: "n_tx"})
}
