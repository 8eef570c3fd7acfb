package service

import (
	"context"
	"fmt"
	"strconv"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/utils"
)

// AggregationServiceImpl implements port.StatisticsService on top of the query layer.
type AggregationServiceImpl struct {
	query       port.WalletQueryService
	logger      port.Logger
	strictCount bool
}

var _ port.StatisticsService = (*AggregationServiceImpl)(nil)

// NewAggregationService creates a new instance of AggregationServiceImpl.
// With strictCount a disagreement between n_tx and the fetched list fails the aggregation.
func NewAggregationService(query port.WalletQueryService, l port.Logger, strictCount bool) *AggregationServiceImpl {
	return &AggregationServiceImpl{query: query, logger: l, strictCount: strictCount}
}

// AverageGas is the mean gasUsed of txs. Any unparsable gasUsed invalidates the result.
func AverageGas(txs []entity.Transaction) (float64, error) {
	if len(txs) == 0 {
		return 0, entity.ErrEmptySet
	}
	var sum uint64
	for i, tx := range txs {
		gas, err := strconv.ParseUint(tx.GasUsed, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("gasUsed of transaction %d: %w", i, entity.NewNumericParseError(tx.GasUsed, err))
		}
		sum += gas
	}
	return float64(sum) / float64(len(txs)), nil
}

// AverageEther is the mean ValueEther of txs.
func AverageEther(txs []entity.Transaction) (float64, error) {
	if len(txs) == 0 {
		return 0, entity.ErrEmptySet
	}
	var sum float64
	for _, tx := range txs {
		sum += tx.ValueEther
	}
	return sum / float64(len(txs)), nil
}

// FirstTransactionDate is the date of element 0 of an ascending full-history list.
func FirstTransactionDate(txs []entity.Transaction) (string, error) {
	if len(txs) == 0 {
		return "", entity.ErrNoTransactions
	}
	return utils.DatePart(txs[0].Timestamp), nil
}

// GenerateStatistics implements port.StatisticsService.
func (s *AggregationServiceImpl) GenerateStatistics(ctx context.Context, address string) (entity.Statistics, error) {
	stats, _, err := s.GenerateReport(ctx, address)
	return stats, err
}

// GenerateReport fetches the lifetime count, then one ascending list sized count+1,
// and derives every aggregate from that single list.
func (s *AggregationServiceImpl) GenerateReport(ctx context.Context, address string) (entity.Statistics, []entity.Transaction, error) {
	count, err := s.query.FetchTotalTransactionCount(ctx, address)
	if err != nil {
		return entity.Statistics{}, nil, err
	}

	// +1 tolerates inclusive counting differences between the two providers.
	// Compared before adding so a huge n_tx cannot overflow.
	limit := count + 1
	clamped := false
	if maxLimit := int64(s.query.MaxTransactionLimit()); count >= maxLimit {
		s.logger.Warn("Transaction history exceeds explorer page ceiling, statistics use the oldest transactions only",
			"address", address, "n_tx", count, "max", maxLimit)
		limit = maxLimit
		clamped = true
	}

	txs, err := s.query.FetchTransactions(ctx, address, int(limit))
	if err != nil {
		return entity.Statistics{}, nil, err
	}
	if len(txs) == 0 {
		return entity.Statistics{}, nil, &entity.WalletError{Kind: entity.KindNoTransactions, Address: address}
	}

	if !clamped && int64(len(txs)) != count {
		if s.strictCount {
			return entity.Statistics{}, nil, &entity.WalletError{
				Kind:   entity.KindCountMismatch,
				Detail: fmt.Sprintf("stats endpoint reports %d, explorer returned %d", count, len(txs)),
			}
		}
		s.logger.Warn("Transaction count mismatch between providers",
			"address", address, "n_tx", count, "fetched", len(txs))
	}

	avgGas, err := AverageGas(txs)
	if err != nil {
		return entity.Statistics{}, nil, err
	}
	avgEther, err := AverageEther(txs)
	if err != nil {
		return entity.Statistics{}, nil, err
	}
	firstDate, err := FirstTransactionDate(txs)
	if err != nil {
		return entity.Statistics{}, nil, err
	}

	stats := entity.Statistics{
		Address:              address,
		TotalTransactions:    count,
		AverageGas:           avgGas,
		AverageEther:         avgEther,
		FirstTransactionDate: firstDate,
		SampledTransactions:  len(txs),
	}
	s.logger.Info("Statistics generated", "address", address, "n_tx", count, "sampled", len(txs))
	return stats, txs, nil
}

// AverageGasForLimit averages gasUsed over the oldest limit transactions of address.
func (s *AggregationServiceImpl) AverageGasForLimit(ctx context.Context, address string, limit int) (float64, error) {
	txs, err := s.query.FetchTransactions(ctx, address, limit)
	if err != nil {
		return 0, err
	}
	return AverageGas(txs)
}
