package crossdomain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrUnsupportedVersion is returned for a message whose nonce encodes a version
// without a known relayMessage layout.
var ErrUnsupportedVersion = errors.New("unsupported cross domain message version")

// MessageVersion selects the relayMessage encoding of a CrossDomainMessage.
type MessageVersion uint16

const (
	// MessageVersionLegacy is the pre-bedrock relayMessage(address,address,bytes,uint256) layout.
	MessageVersionLegacy MessageVersion = 0
	// MessageVersionV1 is the bedrock relayMessage(uint256,address,address,uint256,uint256,bytes) layout.
	MessageVersionV1 MessageVersion = 1
)

func (v MessageVersion) String() string {
	switch v {
	case MessageVersionLegacy:
		return "v0"
	case MessageVersionV1:
		return "v1"
	default:
		return fmt.Sprintf("unknown(%d)", uint16(v))
	}
}

// CrossDomainMessage represents a message passed through the cross domain
// messengers. The version of the message is encoded in the upper bytes of
// the nonce.
type CrossDomainMessage struct {
	Nonce    *big.Int
	Sender   common.Address
	Target   common.Address
	Value    *big.Int
	GasLimit *big.Int
	Data     []byte
}

// NewCrossDomainMessage creates a CrossDomainMessage.
func NewCrossDomainMessage(
	nonce *big.Int,
	sender common.Address,
	target common.Address,
	value *big.Int,
	gasLimit *big.Int,
	data []byte,
) *CrossDomainMessage {
	return &CrossDomainMessage{
		Nonce:    nonce,
		Sender:   sender,
		Target:   target,
		Value:    value,
		GasLimit: gasLimit,
		Data:     data,
	}
}

// Version returns the version of the message, read from the upper 2 bytes of the nonce.
func (c *CrossDomainMessage) Version() (MessageVersion, error) {
	_, version, err := DecodeVersionedNonce(c.Nonce)
	if err != nil {
		return 0, err
	}
	return MessageVersion(version.Uint64()), nil
}

// Encode returns the relayMessage calldata for the message, using the layout
// selected by the nonce version.
func (c *CrossDomainMessage) Encode() ([]byte, error) {
	version, err := c.Version()
	if err != nil {
		return nil, err
	}
	switch version {
	case MessageVersionLegacy:
		return EncodeCrossDomainMessageV0(c.Target, c.Sender, c.Data, c.Nonce)
	case MessageVersionV1:
		return EncodeCrossDomainMessageV1(c.Nonce, c.Sender, c.Target, c.Value, c.GasLimit, c.Data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
}

// Hash returns the keccak256 of the encoded message.
func (c *CrossDomainMessage) Hash() (common.Hash, error) {
	version, err := c.Version()
	if err != nil {
		return common.Hash{}, err
	}
	switch version {
	case MessageVersionLegacy:
		return HashCrossDomainMessageV0(c.Target, c.Sender, c.Data, c.Nonce)
	case MessageVersionV1:
		return HashCrossDomainMessageV1(c.Nonce, c.Sender, c.Target, c.Value, c.GasLimit, c.Data)
	default:
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
}

// EncodeCrossDomainMessageV0 encodes the legacy relayMessage call. The nonce is
// appended as the last argument, after the message body.
func EncodeCrossDomainMessageV0(
	target common.Address,
	sender common.Address,
	message []byte,
	nonce *big.Int,
) ([]byte, error) {
	return encodeCall(relayMessageV0, target, sender, message, nonce)
}

// EncodeCrossDomainMessageV1 encodes the bedrock relayMessage call.
func EncodeCrossDomainMessageV1(
	nonce *big.Int,
	sender common.Address,
	target common.Address,
	value *big.Int,
	gasLimit *big.Int,
	data []byte,
) ([]byte, error) {
	return encodeCall(relayMessageV1, nonce, sender, target, value, gasLimit, data)
}
