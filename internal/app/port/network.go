package port

import "context"

// NodeClient talks JSON-RPC to an Ethereum node.
type NodeClient interface {
	// GetBalanceHex returns the raw hex wei balance of eth_getBalance(address, "pending").
	GetBalanceHex(ctx context.Context, address string) (string, error)
}
