package crossdomain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrNotMessagePassed       = errors.New("log is not a MessagePassed event")
	ErrWithdrawalHashMismatch = errors.New("withdrawal hash does not match emitted hash")
	errMalformedMessagePassed = errors.New("malformed MessagePassed event")
)

// value, gasLimit, data and withdrawalHash
const messagePassedNonIndexedLen = 4

// MessagePassedEvent is emitted by the L2ToL1MessagePasser for every initiated withdrawal.
var MessagePassedEvent = abi.NewEvent("MessagePassed", "MessagePassed", false, abi.Arguments{
	{Name: "nonce", Type: uint256Type, Indexed: true},
	{Name: "sender", Type: addressType, Indexed: true},
	{Name: "target", Type: addressType, Indexed: true},
	{Name: "value", Type: uint256Type},
	{Name: "gasLimit", Type: uint256Type},
	{Name: "data", Type: bytesType},
	{Name: "withdrawalHash", Type: bytes32Type},
})

// MessagePassedTopic is keccak256("MessagePassed(uint256,address,address,uint256,uint256,bytes,bytes32)").
var MessagePassedTopic = MessagePassedEvent.ID

// ParseMessagePassed rebuilds the Withdrawal carried by a MessagePassed log and
// checks that it hashes to the withdrawal hash emitted alongside it.
func ParseMessagePassed(log *types.Log) (*Withdrawal, error) {
	if len(log.Topics) != 4 || log.Topics[0] != MessagePassedTopic {
		return nil, ErrNotMessagePassed
	}
	values, err := MessagePassedEvent.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedMessagePassed, err)
	}
	if len(values) != messagePassedNonIndexedLen {
		return nil, fmt.Errorf("%w: expected %d values, got %d", errMalformedMessagePassed, messagePassedNonIndexedLen, len(values))
	}
	value, ok1 := values[0].(*big.Int)
	gasLimit, ok2 := values[1].(*big.Int)
	data, ok3 := values[2].([]byte)
	emitted, ok4 := values[3].([32]byte)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, errMalformedMessagePassed
	}

	sender := common.BytesToAddress(log.Topics[2][:])
	target := common.BytesToAddress(log.Topics[3][:])
	w := NewWithdrawal(new(big.Int).SetBytes(log.Topics[1][:]), &sender, &target, value, gasLimit, data)

	hash, err := w.Hash()
	if err != nil {
		return nil, err
	}
	if hash != common.Hash(emitted) {
		return nil, fmt.Errorf("%w: computed %s, emitted %s", ErrWithdrawalHashMismatch, hash, common.Hash(emitted))
	}
	return w, nil
}
