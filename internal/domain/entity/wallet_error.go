package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the wallet pipeline can surface.
type ErrorKind int

const (
	// KindNetwork is a transport or non-2xx HTTP failure.
	KindNetwork ErrorKind = iota + 1
	// KindMalformedResponse means the body was not valid JSON.
	KindMalformedResponse
	// KindMissingField means an expected JSON key was absent or had the wrong type.
	KindMissingField
	// KindNumericParse is a string-to-number conversion failure.
	KindNumericParse
	// KindInvalidAddress is a wallet address that violates the 0x/42-char format.
	KindInvalidAddress
	// KindEmptySet means an average was requested over zero transactions.
	KindEmptySet
	// KindNoTransactions means the full-history fetch returned nothing.
	KindNoTransactions
	// KindCountMismatch means the explorer list and the stats endpoint disagree on the count.
	KindCountMismatch
	// KindInvalidArgument is a caller-supplied parameter out of range (e.g. limit < 1).
	KindInvalidArgument
)

var kindNames = map[ErrorKind]string{
	KindNetwork:           "network error",
	KindMalformedResponse: "malformed response",
	KindMissingField:      "missing field",
	KindNumericParse:      "numeric parse error",
	KindInvalidAddress:    "invalid wallet address",
	KindEmptySet:          "empty transaction set",
	KindNoTransactions:    "no transactions for this address",
	KindCountMismatch:     "transaction count mismatch",
	KindInvalidArgument:   "invalid argument",
}

// String returns the human-readable name of the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// WalletError is the single error type returned by the query layer and the aggregation engine.
type WalletError struct {
	Kind    ErrorKind
	Field   string // set for KindMissingField
	Address string // set for KindInvalidAddress
	Detail  string
	Err     error
}

// Sentinels for errors.Is matching. A sentinel matches any WalletError of the same kind.
var (
	ErrNetwork           = &WalletError{Kind: KindNetwork}
	ErrMalformedResponse = &WalletError{Kind: KindMalformedResponse}
	ErrMissingField      = &WalletError{Kind: KindMissingField}
	ErrNumericParse      = &WalletError{Kind: KindNumericParse}
	ErrInvalidAddress    = &WalletError{Kind: KindInvalidAddress}
	ErrEmptySet          = &WalletError{Kind: KindEmptySet}
	ErrNoTransactions    = &WalletError{Kind: KindNoTransactions}
	ErrCountMismatch     = &WalletError{Kind: KindCountMismatch}
	ErrInvalidArgument   = &WalletError{Kind: KindInvalidArgument}
)

func (e *WalletError) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case KindMissingField:
		if e.Field != "" {
			msg = fmt.Sprintf("%s: %s", msg, e.Field)
		}
	case KindInvalidAddress:
		msg = fmt.Sprintf("%s: %q", msg, e.Address)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *WalletError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a WalletError of the same kind.
// A target carrying a Field only matches errors for that field.
func (e *WalletError) Is(target error) bool {
	t, ok := target.(*WalletError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Field == "" || t.Field == e.Field
}

// KindOf returns the kind of the first WalletError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var we *WalletError
	if errors.As(err, &we) {
		return we.Kind
	}
	return 0
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *WalletError {
	return &WalletError{Kind: KindNetwork, Err: err}
}

// NewMalformedResponseError wraps a JSON decoding failure.
func NewMalformedResponseError(err error) *WalletError {
	return &WalletError{Kind: KindMalformedResponse, Err: err}
}

// NewMissingFieldError reports an absent or mistyped JSON field.
func NewMissingFieldError(field string) *WalletError {
	return &WalletError{Kind: KindMissingField, Field: field}
}

// NewNumericParseError wraps a failed conversion of input.
func NewNumericParseError(input string, err error) *WalletError {
	return &WalletError{Kind: KindNumericParse, Detail: fmt.Sprintf("input %q", input), Err: err}
}

// NewInvalidAddressError reports a wallet address that failed validation.
func NewInvalidAddressError(address string) *WalletError {
	return &WalletError{Kind: KindInvalidAddress, Address: address}
}
