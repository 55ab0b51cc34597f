package crossdomain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/mantlenetworkio/bedrock-hashing/op-service/hashing"
)

// Withdrawal represents a withdrawal transaction on L2. Its hash is the key
// under which the L2ToL1MessagePasser records it, so the encoding must match
// the contract exactly.
type Withdrawal struct {
	Nonce    *big.Int        `json:"nonce"`
	Sender   *common.Address `json:"sender"`
	Target   *common.Address `json:"target"`
	Value    *big.Int        `json:"value"`
	GasLimit *big.Int        `json:"gasLimit"`
	Data     hexutil.Bytes   `json:"data"`
}

// NewWithdrawal will create a Withdrawal
func NewWithdrawal(
	nonce *big.Int,
	sender, target *common.Address,
	value, gasLimit *big.Int,
	data []byte,
) *Withdrawal {
	return &Withdrawal{
		Nonce:    nonce,
		Sender:   sender,
		Target:   target,
		Value:    value,
		GasLimit: gasLimit,
		Data:     hexutil.Bytes(data),
	}
}

// Encode will serialize the Withdrawal so that it is suitable for hashing.
// The nonce is encoded as the raw, still versioned, uint256.
func (w *Withdrawal) Encode() ([]byte, error) {
	if w.Sender == nil || w.Target == nil {
		return nil, fmt.Errorf("%w: withdrawal sender and target must be set", ErrEncoding)
	}
	enc, err := encodeTuple(withdrawalArgs, w.Nonce, *w.Sender, *w.Target, w.Value, w.GasLimit, []byte(w.Data))
	if err != nil {
		return nil, fmt.Errorf("cannot encode withdrawal: %w", err)
	}
	return enc, nil
}

// Decode will deserialize a Withdrawal
func (w *Withdrawal) Decode(data []byte) error {
	decoded, err := withdrawalArgs.Unpack(data)
	if err != nil {
		return err
	}

	nonce, ok := decoded[0].(*big.Int)
	if !ok {
		return errors.New("cannot abi decode nonce")
	}
	sender, ok := decoded[1].(common.Address)
	if !ok {
		return errors.New("cannot abi decode sender")
	}
	target, ok := decoded[2].(common.Address)
	if !ok {
		return errors.New("cannot abi decode target")
	}
	value, ok := decoded[3].(*big.Int)
	if !ok {
		return errors.New("cannot abi decode value")
	}
	gasLimit, ok := decoded[4].(*big.Int)
	if !ok {
		return errors.New("cannot abi decode gasLimit")
	}
	msgData, ok := decoded[5].([]byte)
	if !ok {
		return errors.New("cannot abi decode data")
	}

	w.Nonce = nonce
	w.Sender = &sender
	w.Target = &target
	w.Value = value
	w.GasLimit = gasLimit
	w.Data = hexutil.Bytes(msgData)
	return nil
}

// Hash will hash the Withdrawal. This is the hash that is computed in
// the L2ToL1MessagePasser. The encoding is the same as the v1 cross domain
// message encoding without the 4byte selector prepended.
func (w *Withdrawal) Hash() (common.Hash, error) {
	encoded, err := w.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	return hashing.Keccak256(encoded), nil
}

// StorageSlot will compute the storage slot that is used to store the
// withdrawal hash in the L2ToL1MessagePasser's sentMessages mapping, which
// lives at storage slot 0.
func (w *Withdrawal) StorageSlot() (common.Hash, error) {
	hash, err := w.Hash()
	if err != nil {
		return common.Hash{}, err
	}
	preimage, err := encodeTuple(storageSlotArgs, hash, common.Big0)
	if err != nil {
		return common.Hash{}, err
	}
	return hashing.Keccak256(preimage), nil
}
