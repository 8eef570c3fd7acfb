package utils

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"wallet_inspector/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimal places between wei and ether.
const EtherDecimals = 18

// DateTimeLayout is the fixed UTC layout used for transaction timestamps.
const DateTimeLayout = "2006-01-02 15:04:05"

var (
	errEmptyNumber    = errors.New("empty numeric string")
	errNotInteger     = errors.New("not an integer")
	errNegativeAmount = errors.New("negative amount")
)

// ParseWei parses a wei amount given either as a decimal string or as a 0x-prefixed hex string.
func ParseWei(raw string) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	if s == "" {
		return nil, entity.NewNumericParseError(raw, errEmptyNumber)
	}
	wei, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, entity.NewNumericParseError(raw, errNotInteger)
	}
	if wei.Sign() < 0 {
		return nil, entity.NewNumericParseError(raw, errNegativeAmount)
	}
	return wei, nil
}

// WeiToEther converts a decimal or hex wei string to ether.
// Example: "1000000000000000000" => 1.0, "0x1" => 1e-18
func WeiToEther(raw string) (float64, error) {
	wei, err := ParseWei(raw)
	if err != nil {
		return 0, err
	}
	return WeiIntToEther(wei), nil
}

// WeiIntToEther divides wei by 10^18 exactly before rounding to float64.
func WeiIntToEther(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	ether, _ := decimal.NewFromBigInt(wei, -EtherDecimals).Float64()
	return ether
}

// EpochToDateTime formats Unix epoch seconds as a UTC "YYYY-MM-DD HH:MM:SS" string.
func EpochToDateTime(epochSeconds string) (string, error) {
	secs, err := strconv.ParseUint(strings.TrimSpace(epochSeconds), 10, 64)
	if err != nil {
		return "", entity.NewNumericParseError(epochSeconds, err)
	}
	if secs > math.MaxInt64 {
		return "", entity.NewNumericParseError(epochSeconds, strconv.ErrRange)
	}
	return time.Unix(int64(secs), 0).UTC().Format(DateTimeLayout), nil
}

// DatePart strips the time of day from a DateTimeLayout string.
func DatePart(dateTime string) string {
	if i := strings.IndexByte(dateTime, ' '); i >= 0 {
		return dateTime[:i]
	}
	return dateTime
}

// FormatFloat renders f in its shortest round-trip form, e.g. 1.5 => "1.5", 1.0 => "1".
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
