package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet_inspector/internal/domain/entity"
	"wallet_inspector/internal/infrastructure/network/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

// newNode starts a fake node that answers every call with respond(req).
func newNode(t *testing.T, respond func(req rpcRequest) string) *client.EVMClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(respond(req)))
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewEVMClient(context.Background(), srv.URL, 2*time.Second, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestEVMClient_GetBalanceHex(t *testing.T) {
	var got rpcRequest
	c := newNode(t, func(req rpcRequest) string {
		got = req
		return `{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":"0xde0b6b3a7640000"}`
	})

	balance, err := c.GetBalanceHex(context.Background(), testAddress)
	require.NoError(t, err)
	assert.Equal(t, "0xde0b6b3a7640000", balance)

	assert.Equal(t, "2.0", got.JSONRPC)
	assert.Equal(t, "1", string(got.ID))
	assert.Equal(t, "eth_getBalance", got.Method)
	require.Len(t, got.Params, 2)
	assert.JSONEq(t, `"`+testAddress+`"`, string(got.Params[0]))
	assert.JSONEq(t, `"pending"`, string(got.Params[1]))
}

func TestEVMClient_GetBalanceHex_Errors(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		wantErr error
	}{
		{name: "Null result", reply: `"result":null`, wantErr: &entity.WalletError{Kind: entity.KindMissingField, Field: "result"}},
		{name: "Absent result", reply: `"other":1`, wantErr: &entity.WalletError{Kind: entity.KindMissingField, Field: "result"}},
		{name: "Numeric result", reply: `"result":12`, wantErr: &entity.WalletError{Kind: entity.KindMissingField, Field: "result"}},
		{name: "RPC error object", reply: `"error":{"code":-32602,"message":"invalid argument"}`, wantErr: entity.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newNode(t, func(req rpcRequest) string {
				return `{"jsonrpc":"2.0","id":` + string(req.ID) + `,` + tt.reply + `}`
			})

			_, err := c.GetBalanceHex(context.Background(), testAddress)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEVMClient_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewEVMClient(context.Background(), srv.URL, time.Second, nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.GetBalanceHex(context.Background(), testAddress)
	assert.ErrorIs(t, err, entity.ErrNetwork)
}
