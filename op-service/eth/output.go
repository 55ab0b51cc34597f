package eth

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/bedrock-hashing/op-service/hashing"
)

var (
	ErrInvalidOutput        = errors.New("invalid output")
	ErrInvalidOutputVersion = errors.New("invalid output version")

	OutputVersionV0 = Bytes32{}
)

const outputV0Len = 128

type Output interface {
	// Version returns the version of the L2 output
	Version() Bytes32

	// Marshal a L2 output into a byte slice for hashing
	Marshal() []byte
}

type OutputV0 struct {
	StateRoot                Bytes32     `json:"stateRoot"`
	MessagePasserStorageRoot Bytes32     `json:"messagePasserStorageRoot"`
	BlockHash                common.Hash `json:"blockHash"`
}

func (o *OutputV0) Version() Bytes32 {
	return OutputVersionV0
}

func (o *OutputV0) Marshal() []byte {
	proof := o.Proof()
	return proof.Marshal()
}

// Proof returns the output root proof committing to this output.
func (o *OutputV0) Proof() OutputRootProof {
	return OutputRootProof{
		Version:                  o.Version(),
		StateRoot:                o.StateRoot,
		MessagePasserStorageRoot: o.MessagePasserStorageRoot,
		LatestBlockhash:          Bytes32(o.BlockHash),
	}
}

// OutputRoot returns the keccak256 hash of the marshaled L2 output
func OutputRoot(output Output) Bytes32 {
	return Bytes32(hashing.Keccak256(output.Marshal()))
}

func UnmarshalOutput(data []byte) (Output, error) {
	if len(data) < 32 {
		return nil, ErrInvalidOutput
	}
	var ver Bytes32
	copy(ver[:], data[:32])
	switch ver {
	case OutputVersionV0:
		return unmarshalOutputV0(data)
	default:
		return nil, ErrInvalidOutputVersion
	}
}

func unmarshalOutputV0(data []byte) (*OutputV0, error) {
	if len(data) != outputV0Len {
		return nil, ErrInvalidOutput
	}
	var output OutputV0
	// data[:32] is the version
	copy(output.StateRoot[:], data[32:64])
	copy(output.MessagePasserStorageRoot[:], data[64:96])
	copy(output.BlockHash[:], data[96:128])
	return &output, nil
}

// OutputRootProof is the preimage of an output root as submitted to L1 when
// proving a withdrawal. Every field is a full 32 byte word, narrower values
// must be left-padded by the caller.
type OutputRootProof struct {
	Version                  Bytes32 `json:"version"`
	StateRoot                Bytes32 `json:"stateRoot"`
	MessagePasserStorageRoot Bytes32 `json:"messagePasserStorageRoot"`
	LatestBlockhash          Bytes32 `json:"latestBlockhash"`
}

// Marshal concatenates the four words without length prefixes.
func (p *OutputRootProof) Marshal() []byte {
	buf := make([]byte, 0, outputV0Len)
	buf = append(buf, p.Version[:]...)
	buf = append(buf, p.StateRoot[:]...)
	buf = append(buf, p.MessagePasserStorageRoot[:]...)
	buf = append(buf, p.LatestBlockhash[:]...)
	return buf
}

// Hash computes the output root committed to by the proof.
func (p *OutputRootProof) Hash() Bytes32 {
	return Bytes32(hashing.Keccak256(p.Version[:], p.StateRoot[:], p.MessagePasserStorageRoot[:], p.LatestBlockhash[:]))
}
