package crossdomain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrRange is returned when a field does not fit its declared bit width.
	ErrRange        = errors.New("value out of range")
	ErrNonceRange   = fmt.Errorf("%w: nonce must fit in 240 bits", ErrRange)
	ErrVersionRange = fmt.Errorf("%w: version must fit in 16 bits", ErrRange)
)

const (
	versionShift = 240
	versionBits  = 16
)

// nonceMask is 2^240 - 1, the bits of a versioned nonce holding the counter.
var nonceMask = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), versionShift), 1)

// EncodeVersionedNonce will encode the version into the upper 2 bytes of the
// uint256 nonce. The nonce must fit in 240 bits and the version in 16 bits.
func EncodeVersionedNonce(nonce, version *big.Int) (*big.Int, error) {
	if nonce == nil || nonce.Sign() < 0 || nonce.BitLen() > versionShift {
		return nil, ErrNonceRange
	}
	if version == nil || version.Sign() < 0 || version.BitLen() > versionBits {
		return nil, ErrVersionRange
	}
	n, _ := uint256.FromBig(nonce)
	v, _ := uint256.FromBig(version)
	v.Lsh(v, versionShift)
	return v.Or(v, n).ToBig(), nil
}

// DecodeVersionedNonce will decode the version that is encoded in the upper
// 2 bytes of the uint256 nonce.
func DecodeVersionedNonce(versioned *big.Int) (nonce *big.Int, version *big.Int, err error) {
	if versioned == nil || versioned.Sign() < 0 {
		return nil, nil, fmt.Errorf("%w: versioned nonce must be a non-negative uint256", ErrRange)
	}
	raw, overflow := uint256.FromBig(versioned)
	if overflow {
		return nil, nil, fmt.Errorf("%w: versioned nonce exceeds 256 bits", ErrRange)
	}
	n := new(uint256.Int).And(raw, nonceMask)
	v := new(uint256.Int).Rsh(raw, versionShift)
	return n.ToBig(), v.ToBig(), nil
}
