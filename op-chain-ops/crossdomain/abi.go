package crossdomain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ErrEncoding is returned when a value cannot be represented by its ABI type.
var ErrEncoding = errors.New("cannot abi encode value")

var (
	uint256Type, _ = abi.NewType("uint256", "", nil)
	bytesType, _   = abi.NewType("bytes", "", nil)
	bytes32Type, _ = abi.NewType("bytes32", "", nil)
	addressType, _ = abi.NewType("address", "", nil)
)

// withdrawalArgs is the tuple hashed by the L2ToL1MessagePasser.
var withdrawalArgs = abi.Arguments{
	{Name: "nonce", Type: uint256Type},
	{Name: "sender", Type: addressType},
	{Name: "target", Type: addressType},
	{Name: "value", Type: uint256Type},
	{Name: "gasLimit", Type: uint256Type},
	{Name: "data", Type: bytesType},
}

// relayMessageV0 is the legacy relayMessage(address,address,bytes,uint256) call.
var relayMessageV0 = abi.NewMethod("relayMessage", "relayMessage", abi.Function, "nonpayable", false, false,
	abi.Arguments{
		{Name: "_target", Type: addressType},
		{Name: "_sender", Type: addressType},
		{Name: "_message", Type: bytesType},
		{Name: "_messageNonce", Type: uint256Type},
	}, nil)

// relayMessageV1 is the relayMessage(uint256,address,address,uint256,uint256,bytes) call.
var relayMessageV1 = abi.NewMethod("relayMessage", "relayMessage", abi.Function, "payable", false, true,
	abi.Arguments{
		{Name: "_nonce", Type: uint256Type},
		{Name: "_sender", Type: addressType},
		{Name: "_target", Type: addressType},
		{Name: "_value", Type: uint256Type},
		{Name: "_minGasLimit", Type: uint256Type},
		{Name: "_message", Type: bytesType},
	}, nil)

// storageSlotArgs is abi.encode(bytes32 key, uint256 mappingSlot).
var storageSlotArgs = abi.Arguments{
	{Name: "key", Type: bytes32Type},
	{Name: "slot", Type: uint256Type},
}

// encodeTuple ABI encodes values against args. Integer arguments are checked
// against their declared width first, the abi package would silently wrap them.
func encodeTuple(args abi.Arguments, values ...any) ([]byte, error) {
	if len(args) != len(values) {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrEncoding, len(args), len(values))
	}
	for i, arg := range args {
		if err := checkWidth(arg, values[i]); err != nil {
			return nil, err
		}
	}
	encoded, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return encoded, nil
}

// encodeCall prefixes the ABI encoded arguments with the method selector.
func encodeCall(method abi.Method, values ...any) ([]byte, error) {
	encoded, err := encodeTuple(method.Inputs, values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method.Sig, err)
	}
	return append(append(make([]byte, 0, len(method.ID)+len(encoded)), method.ID...), encoded...), nil
}

func checkWidth(arg abi.Argument, value any) error {
	if arg.Type.T != abi.UintTy {
		return nil
	}
	v, ok := value.(*big.Int)
	if !ok {
		return nil
	}
	if v == nil {
		return fmt.Errorf("%w: %s is nil", ErrEncoding, arg.Name)
	}
	if v.Sign() < 0 || v.BitLen() > arg.Type.Size {
		return fmt.Errorf("%w: %s does not fit in %s", ErrEncoding, arg.Name, arg.Type)
	}
	return nil
}
