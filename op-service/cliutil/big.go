package cliutil

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseBigInt parses a decimal integer, or a hex integer when prefixed with 0x.
// Negative values are accepted; callers enforce their own range.
func ParseBigInt(intStr string) (*big.Int, error) {
	s := intStr
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	out, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("error parsing bigint '%s'", intStr)
	}
	return out, nil
}
