package entity

import "strings"

const (
	// AddressPrefix is the mandatory prefix of an Ethereum address.
	AddressPrefix = "0x"
	// AddressLength is the length of a 0x-prefixed 20-byte hex address.
	AddressLength = 42
)

// Wallet represents a wallet address to inspect.
type Wallet struct {
	Address string `json:"address" yaml:"address"`
}

// ValidateAddress enforces the wallet address invariant: 0x prefix and exactly 42 characters.
func ValidateAddress(address string) error {
	if !strings.HasPrefix(address, AddressPrefix) || len(address) != AddressLength {
		return NewInvalidAddressError(address)
	}
	return nil
}
