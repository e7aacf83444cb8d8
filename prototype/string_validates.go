package prototype

import (
	"math/big"
	"strings"

	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/common/constants"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

const (
	sErrEmpty    = "value is empty"
	sErrCharset  = "invalid char"
	sErrRange    = "value out of range"
	sErrLength   = "invalid length"
	sErrChecksum = "address checksum mismatch"
)

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	maxUint64  = new(big.Int).SetUint64(^uint64(0))
)

func isDecimal(s string) bool {
	return len(s) > 0 && strings.IndexFunc(s, func(c rune) bool { return c < '0' || c > '9' }) < 0
}

// parseQuantity accepts a decimal or 0x-prefixed hex integer.
func parseQuantity(field, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &InvalidFieldError{Field: field, Reason: sErrEmpty}
	}
	var (
		v  *big.Int
		ok bool
	)
	if common.Has0xPrefix(s) {
		if !common.IsHex(s[2:]) {
			return nil, &InvalidFieldError{Field: field, Reason: sErrCharset}
		}
		v, ok = new(big.Int).SetString(s[2:], 16)
	} else {
		if !isDecimal(s) {
			return nil, &InvalidFieldError{Field: field, Reason: sErrCharset}
		}
		v, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return nil, &InvalidFieldError{Field: field, Reason: sErrCharset}
	}
	return v, nil
}

func parseBounded(field, s string, min, max *big.Int) (*big.Int, error) {
	v, err := parseQuantity(field, s)
	if err != nil {
		return nil, err
	}
	if v.Cmp(min) < 0 || v.Cmp(max) > 0 {
		return nil, &InvalidFieldError{Field: field, Reason: sErrRange}
	}
	return v, nil
}

// parseAmount accepts a plain decimal integer in minor units only.
func parseAmount(field, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &InvalidFieldError{Field: field, Reason: sErrEmpty}
	}
	if !isDecimal(s) {
		return nil, &InvalidFieldError{Field: field, Reason: sErrCharset}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &InvalidFieldError{Field: field, Reason: sErrCharset}
	}
	if v.Cmp(maxUint256) > 0 {
		return nil, &InvalidFieldError{Field: field, Reason: sErrRange}
	}
	return v, nil
}

// ValidAddress accepts 0x followed by 40 hex chars, lowercase, or mixed case
// when it carries a valid EIP-55 checksum.
func ValidAddress(s string) (ethcommon.Address, error) {
	if len(s) != constants.AddressHexLength || s[:2] != "0x" {
		return ethcommon.Address{}, &InvalidFieldError{Field: "to", Reason: sErrLength}
	}
	if !common.IsHex(s[2:]) {
		return ethcommon.Address{}, &InvalidFieldError{Field: "to", Reason: sErrCharset}
	}
	addr := ethcommon.HexToAddress(s)
	if s[2:] != strings.ToLower(s[2:]) && addr.Hex() != s {
		return ethcommon.Address{}, &InvalidFieldError{Field: "to", Reason: sErrChecksum}
	}
	return addr, nil
}

// ParseAmount validates a decimal amount in minor units.
func ParseAmount(s string) (*big.Int, error) {
	return parseAmount("amount", s)
}
