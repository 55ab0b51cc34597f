package cliutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBigInt(t *testing.T) {
	wide, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)

	tests := []struct {
		name      string
		input     string
		expected  *big.Int
		expectErr bool
	}{
		{name: "decimal", input: "22338", expected: big.NewInt(22338)},
		{name: "max uint256", input: wide.String(), expected: wide},
		{name: "hex", input: "0x1234", expected: big.NewInt(0x1234)},
		{name: "upper hex prefix", input: "0XFF", expected: big.NewInt(0xff)},
		{name: "negative", input: "-7", expected: big.NewInt(-7)},
		{name: "versioned nonce", input: "0x0001000000000000000000000000000000000000000000000000000000000001",
			expected: new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 240), big.NewInt(1))},
		{name: "bad hex", input: "0xgibberish", expectErr: true},
		{name: "empty hex", input: "0x", expectErr: true},
		{name: "not a number", input: "not-a-number", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := ParseBigInt(tt.input)
			if tt.expectErr {
				require.Nil(t, val)
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 0, tt.expected.Cmp(val), "expected %s, got %s", tt.expected, val)
		})
	}
}
