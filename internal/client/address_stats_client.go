package client

import (
	"context"
	"strconv"
	"strings"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"

	"go.uber.org/zap"
)

// AddressPlaceholder is substituted with the wallet address in the stats URL template.
const AddressPlaceholder = "{address}"

// AddressStatsClient implements port.AddressStatsClient for BlockCypher-style endpoints reporting n_tx.
type AddressStatsClient struct {
	getter      jsonGetter
	urlTemplate string
}

// NewAddressStatsClient creates a new address-stats client.
func NewAddressStatsClient(urlTemplate string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *AddressStatsClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressStatsClient{
		getter:      newJSONGetter(metrics.EndpointAddressStats, timeout, logger.Named("AddressStatsClient"), m),
		urlTemplate: urlTemplate,
	}
}

// GetTransactionCount implements port.AddressStatsClient.
func (c *AddressStatsClient) GetTransactionCount(ctx context.Context, address string) (int64, error) {
	requestURL := strings.ReplaceAll(c.urlTemplate, AddressPlaceholder, address)

	body, err := c.getter.get(ctx, requestURL, requestURL)
	if err != nil {
		return 0, err
	}

	raw, ok := stringField(json.Get(body, "n_tx"))
	if !ok {
		return 0, entity.NewMissingFieldError("n_tx")
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || count < 0 {
		return 0, entity.NewNumericParseError(raw, err)
	}
	return count, nil
}
