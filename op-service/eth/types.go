package eth

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var ErrBytes32Range = errors.New("value does not fit in 32 bytes")

// Bytes32 is a fixed 32 byte value, hex encoded in JSON and text.
type Bytes32 [32]byte

func (b *Bytes32) UnmarshalJSON(text []byte) error {
	return hexutil.UnmarshalFixedJSON(reflect.TypeOf(b), text, b[:])
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	return hexutil.UnmarshalFixedText("Bytes32", text, b[:])
}

func (b Bytes32) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

func (b Bytes32) String() string {
	return hexutil.Encode(b[:])
}

// TerminalString implements log.TerminalStringer, formatting a string for console
// output during logging.
func (b Bytes32) TerminalString() string {
	return fmt.Sprintf("%x..%x", b[:3], b[29:])
}

// Bytes32FromBig left-pads a non-negative integer into 32 bytes.
func Bytes32FromBig(v *big.Int) (out Bytes32, err error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		return Bytes32{}, ErrBytes32Range
	}
	v.FillBytes(out[:])
	return out, nil
}
