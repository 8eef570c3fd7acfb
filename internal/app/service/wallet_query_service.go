package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

var errNotHex = errors.New("balance is not 0x-prefixed hex")

// WalletQueryServiceImpl implements port.WalletQueryService.
type WalletQueryServiceImpl struct {
	node      port.NodeClient
	rates     port.ExchangeRateClient
	explorer  port.ExplorerClient
	stats     port.AddressStatsClient
	logger    port.Logger
	maxOffset int
}

var _ port.WalletQueryService = (*WalletQueryServiceImpl)(nil)

// NewWalletQueryService creates a new instance of WalletQueryServiceImpl.
// maxOffset is the explorer's page ceiling; larger limits are clamped to it.
func NewWalletQueryService(
	node port.NodeClient,
	rates port.ExchangeRateClient,
	explorer port.ExplorerClient,
	stats port.AddressStatsClient,
	l port.Logger,
	maxOffset int,
) *WalletQueryServiceImpl {
	if maxOffset <= 0 {
		maxOffset = 10000
	}
	return &WalletQueryServiceImpl{
		node:      node,
		rates:     rates,
		explorer:  explorer,
		stats:     stats,
		logger:    l,
		maxOffset: maxOffset,
	}
}

// MaxTransactionLimit implements port.WalletQueryService.
func (s *WalletQueryServiceImpl) MaxTransactionLimit() int {
	return s.maxOffset
}

// FetchBalance returns the pending balance of address in ether.
func (s *WalletQueryServiceImpl) FetchBalance(ctx context.Context, address string) (float64, error) {
	wei, err := s.fetchBalanceWei(ctx, address)
	if err != nil {
		return 0, err
	}
	return utils.WeiIntToEther(wei), nil
}

func (s *WalletQueryServiceImpl) fetchBalanceWei(ctx context.Context, address string) (*big.Int, error) {
	if err := entity.ValidateAddress(address); err != nil {
		return nil, err
	}

	hexBalance, err := s.node.GetBalanceHex(ctx, address)
	if err != nil {
		s.logger.Error("Failed to fetch balance", "address", address, "error", err)
		return nil, fmt.Errorf("fetch balance of %s: %w", address, err)
	}
	if !strings.HasPrefix(hexBalance, "0x") {
		return nil, fmt.Errorf("fetch balance of %s: %w", address, entity.NewNumericParseError(hexBalance, errNotHex))
	}

	wei, err := utils.ParseWei(hexBalance)
	if err != nil {
		return nil, fmt.Errorf("fetch balance of %s: %w", address, err)
	}
	s.logger.Debug("Fetched balance", "address", address, "wei", wei.String())
	return wei, nil
}

// FetchFiatBalance returns the balance of address in USD at the current ETH rate.
func (s *WalletQueryServiceImpl) FetchFiatBalance(ctx context.Context, address string) (float64, error) {
	wei, err := s.fetchBalanceWei(ctx, address)
	if err != nil {
		return 0, err
	}

	rawRate, err := s.rates.GetUSDRate(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch ETH/USD rate", "error", err)
		return 0, fmt.Errorf("fetch ETH/USD rate: %w", err)
	}
	rate, err := decimal.NewFromString(rawRate)
	if err != nil {
		return 0, entity.NewNumericParseError(rawRate, err)
	}

	usd, _ := decimal.NewFromBigInt(wei, -utils.EtherDecimals).Mul(rate).Float64()
	return usd, nil
}

// FetchTransactions returns the oldest limit transactions of address in ascending block order.
// The whole call fails if any element lacks a required field.
func (s *WalletQueryServiceImpl) FetchTransactions(ctx context.Context, address string, limit int) ([]entity.Transaction, error) {
	if err := entity.ValidateAddress(address); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, &entity.WalletError{Kind: entity.KindInvalidArgument, Detail: fmt.Sprintf("limit must be at least 1, got %d", limit)}
	}
	if limit > s.maxOffset {
		s.logger.Debug("Clamping transaction limit to explorer page ceiling", "requested", limit, "max", s.maxOffset)
		limit = s.maxOffset
	}

	raws, err := s.explorer.GetTransactions(ctx, address, limit)
	if err != nil {
		s.logger.Error("Failed to fetch transactions", "address", address, "limit", limit, "error", err)
		return nil, fmt.Errorf("fetch transactions of %s: %w", address, err)
	}

	txs := make([]entity.Transaction, 0, len(raws))
	for i, raw := range raws {
		tx, err := toTransaction(raw)
		if err != nil {
			return nil, fmt.Errorf("transaction %d of %s: %w", i, address, err)
		}
		txs = append(txs, tx)
	}
	s.logger.Debug("Fetched transactions", "address", address, "limit", limit, "count", len(txs))
	return txs, nil
}

func toTransaction(raw entity.RawTransaction) (entity.Transaction, error) {
	value, err := utils.WeiToEther(raw.Value)
	if err != nil {
		return entity.Transaction{}, err
	}
	timestamp, err := utils.EpochToDateTime(raw.TimeStamp)
	if err != nil {
		return entity.Transaction{}, err
	}
	return entity.Transaction{
		Hash:        raw.Hash,
		BlockNumber: raw.BlockNumber,
		From:        raw.From,
		To:          raw.To,
		ValueEther:  value,
		GasUsed:     raw.GasUsed,
		Timestamp:   timestamp,
	}, nil
}

// FetchTotalTransactionCount returns the lifetime transaction count of address.
func (s *WalletQueryServiceImpl) FetchTotalTransactionCount(ctx context.Context, address string) (int64, error) {
	if err := entity.ValidateAddress(address); err != nil {
		return 0, err
	}

	count, err := s.stats.GetTransactionCount(ctx, address)
	if err != nil {
		s.logger.Error("Failed to fetch transaction count", "address", address, "error", err)
		return 0, fmt.Errorf("fetch transaction count of %s: %w", address, err)
	}
	return count, nil
}
