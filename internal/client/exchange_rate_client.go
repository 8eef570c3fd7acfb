package client

import (
	"context"
	"strings"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const usdRateField = "data.rates.USD"

// ExchangeRateClient implements port.ExchangeRateClient against the Coinbase exchange-rates API.
type ExchangeRateClient struct {
	getter   jsonGetter
	baseURL  string
	currency string
}

// NewExchangeRateClient creates a new exchange-rate client quoting currency (e.g. "ETH").
func NewExchangeRateClient(baseURL, currency string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) *ExchangeRateClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExchangeRateClient{
		getter:   newJSONGetter(metrics.EndpointExchangeRate, timeout, logger.Named("ExchangeRateClient"), m),
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
	}
}

// GetUSDRate implements port.ExchangeRateClient.
func (c *ExchangeRateClient) GetUSDRate(ctx context.Context) (string, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("currency", c.currency)
	requestURL := c.baseURL + "?" + args.String()

	body, err := c.getter.get(ctx, requestURL, requestURL)
	if err != nil {
		return "", err
	}

	rate, ok := stringField(json.Get(body, "data", "rates", "USD"))
	if !ok {
		return "", entity.NewMissingFieldError(usdRateField)
	}
	return rate, nil
}
