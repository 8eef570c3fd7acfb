package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// ExplorerClient implements port.ExplorerClient against the Etherscan v2 account API.
type ExplorerClient struct {
	getter  jsonGetter
	baseURL string
	chainID int64
	apiKey  string
}

// ExplorerOptions configures NewExplorerClient.
type ExplorerOptions struct {
	BaseURL string
	ChainID int64
	APIKey  string
	Timeout time.Duration
}

// NewExplorerClient creates a new explorer client.
func NewExplorerClient(opts ExplorerOptions, logger *zap.Logger, m *metrics.Metrics) *ExplorerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplorerClient{
		getter:  newJSONGetter(metrics.EndpointExplorer, opts.Timeout, logger.Named("ExplorerClient"), m),
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		chainID: opts.ChainID,
		apiKey:  opts.APIKey,
	}
}

// requiredTxFields maps explorer JSON keys to the RawTransaction fields they fill.
func requiredTxFields(tx *entity.RawTransaction) []struct {
	name string
	dst  *string
} {
	return []struct {
		name string
		dst  *string
	}{
		{"from", &tx.From},
		{"to", &tx.To},
		{"gasUsed", &tx.GasUsed},
		{"value", &tx.Value},
		{"timeStamp", &tx.TimeStamp},
	}
}

// GetTransactions implements port.ExplorerClient.
func (c *ExplorerClient) GetTransactions(ctx context.Context, address string, limit int) ([]entity.RawTransaction, error) {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("chainid", strconv.FormatInt(c.chainID, 10))
	args.Set("module", "account")
	args.Set("action", "txlist")
	args.Set("address", address)
	args.Set("startblock", "0")
	args.Set("endblock", "99999999")
	args.Set("page", "1")
	args.Set("offset", strconv.Itoa(limit))
	args.Set("sort", "asc")
	logURL := c.baseURL + "?" + args.String()
	args.Set("apikey", c.apiKey)
	requestURL := c.baseURL + "?" + args.String()

	body, err := c.getter.get(ctx, requestURL, logURL)
	if err != nil {
		return nil, err
	}

	result := json.Get(body, "result")
	if result.ValueType() != jsoniter.ArrayValue {
		// Error payloads carry a string in "result", e.g. "Invalid API Key".
		message := json.Get(body, "message").ToString()
		detail := json.Get(body, "result").ToString()
		c.getter.logger.Warn("Explorer returned no transaction array",
			zap.String("address", address),
			zap.String("message", message),
			zap.String("result", detail))
		return nil, &entity.WalletError{Kind: entity.KindMissingField, Field: "result", Detail: strings.TrimSpace(message + " " + detail)}
	}

	size := result.Size()
	txs := make([]entity.RawTransaction, 0, size)
	for i := 0; i < size; i++ {
		element := result.Get(i)
		var tx entity.RawTransaction
		for _, f := range requiredTxFields(&tx) {
			v, ok := stringField(element.Get(f.name))
			if !ok {
				return nil, &entity.WalletError{
					Kind:   entity.KindMissingField,
					Field:  f.name,
					Detail: fmt.Sprintf("transaction index %d", i),
				}
			}
			*f.dst = v
		}
		tx.Hash, _ = stringField(element.Get("hash"))
		tx.BlockNumber, _ = stringField(element.Get("blockNumber"))
		txs = append(txs, tx)
	}

	c.getter.logger.Debug("Fetched transactions", zap.String("address", address), zap.Int("count", len(txs)))
	return txs, nil
}
