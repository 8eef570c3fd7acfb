package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wallet_inspector/internal/app/port"
	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/rpc"
)

const balanceBlockTag = "pending"

// EVMClient implements port.NodeClient over a go-ethereum JSON-RPC connection.
type EVMClient struct {
	rpcClient      *rpc.Client
	rpcCallTimeout time.Duration
	metrics        *metrics.Metrics
}

var _ port.NodeClient = (*EVMClient)(nil)

// NewEVMClient creates a client for rpcURL. For HTTP endpoints no connection is made until the first call.
func NewEVMClient(ctx context.Context, rpcURL string, rpcCallTimeout time.Duration, m *metrics.Metrics) (*EVMClient, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}
	return &EVMClient{rpcClient: rpcClient, rpcCallTimeout: rpcCallTimeout, metrics: m}, nil
}

// GetBalanceHex implements port.NodeClient.
func (c *EVMClient) GetBalanceHex(ctx context.Context, address string) (balance string, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe(metrics.EndpointNode, started, err) }()

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	var result *string
	if err := c.rpcClient.CallContext(rpcCallCtx, &result, "eth_getBalance", address, balanceBlockTag); err != nil {
		return "", classifyRPCError(err)
	}
	if result == nil {
		return "", entity.NewMissingFieldError("result")
	}
	return *result, nil
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	c.rpcClient.Close()
}

// classifyRPCError maps go-ethereum rpc failures onto the wallet error kinds.
func classifyRPCError(err error) error {
	var (
		rpcErr    rpc.Error
		httpErr   rpc.HTTPError
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.Is(err, rpc.ErrNoResult):
		return entity.NewMissingFieldError("result")
	case errors.As(err, &typeErr):
		return &entity.WalletError{Kind: entity.KindMissingField, Field: "result", Err: err}
	case errors.As(err, &syntaxErr):
		return entity.NewMalformedResponseError(err)
	case errors.As(err, &httpErr):
		return entity.NewNetworkError(err)
	case errors.As(err, &rpcErr):
		// The node answered with a JSON-RPC error object instead of a result.
		return &entity.WalletError{Kind: entity.KindMissingField, Field: "result", Detail: fmt.Sprintf("rpc error %d", rpcErr.ErrorCode()), Err: err}
	default:
		return entity.NewNetworkError(err)
	}
}
