package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_inspector/internal/domain/entity"
)

type countingLogger struct {
	warnings int
}

func (l *countingLogger) Info(string, ...any)  {}
func (l *countingLogger) Debug(string, ...any) {}
func (l *countingLogger) Error(string, ...any) {}
func (l *countingLogger) Warn(string, ...any)  { l.warnings++ }

func TestWalletFileLoader_GetWallets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	content := "# watched wallets\n" +
		"0x742d35Cc6634C0532925a3b844Bc454e4438f44e\n" +
		"\n" +
		"  0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe  \n" +
		"0x12\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	l := &countingLogger{}

	wallets, err := NewWalletFileLoader(path, l).GetWallets()

	require.NoError(t, err)
	assert.Equal(t, []entity.Wallet{
		{Address: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"},
		{Address: "0xde0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"},
	}, wallets)
	assert.Equal(t, 1, l.warnings)
}

func TestWalletFileLoader_MissingFile(t *testing.T) {
	_, err := NewWalletFileLoader(filepath.Join(t.TempDir(), "absent.txt"), &countingLogger{}).GetWallets()

	assert.ErrorIs(t, err, os.ErrNotExist)
}
