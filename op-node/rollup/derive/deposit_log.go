package derive

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/mantlenetworkio/bedrock-hashing/op-service/hashing"
)

var (
	DepositEventABI      = "TransactionDeposited(address,address,uint256,bytes)"
	DepositEventABIHash  = hashing.Keccak256([]byte(DepositEventABI))
	DepositEventVersion0 = common.Hash{}
)

// opaque data of a version 0 deposit: mint, value, gas, isCreation, then the calldata
const depositV0MinLen = 32 + 32 + 8 + 1

var ErrInvalidDepositLog = errors.New("invalid deposit log")

// UnmarshalDepositLogEvent decodes an EVM log entry emitted by the deposit
// contract into a user deposit. The log index and block hash of the log
// become the identity of the deposit.
//
// The deposit event is:
//
//	event TransactionDeposited(
//	    address indexed from,
//	    address indexed to,
//	    uint256 indexed version,
//	    bytes opaqueData
//	);
func UnmarshalDepositLogEvent(ev *types.Log) (*DepositTx, error) {
	if len(ev.Topics) != 4 {
		return nil, fmt.Errorf("%w: expected 4 event topics, got %d", ErrInvalidDepositLog, len(ev.Topics))
	}
	if ev.Topics[0] != DepositEventABIHash {
		return nil, fmt.Errorf("%w: invalid deposit event selector %s", ErrInvalidDepositLog, ev.Topics[0])
	}
	if len(ev.Data) < 64 {
		return nil, fmt.Errorf("%w: data too short (%d bytes)", ErrInvalidDepositLog, len(ev.Data))
	}
	if len(ev.Data)%32 != 0 {
		return nil, fmt.Errorf("%w: data is not a multiple of 32 bytes (%d)", ErrInvalidDepositLog, len(ev.Data))
	}

	from := common.BytesToAddress(ev.Topics[1][12:])
	to := common.BytesToAddress(ev.Topics[2][12:])
	version := ev.Topics[3]

	var offset uint256.Int
	offset.SetBytes(ev.Data[0:32])
	if !offset.IsUint64() || offset.Uint64() != 32 {
		return nil, fmt.Errorf("%w: invalid opaqueData offset %s", ErrInvalidDepositLog, offset.Dec())
	}
	var length uint256.Int
	length.SetBytes(ev.Data[32:64])
	if !length.IsUint64() || length.Uint64() > uint64(len(ev.Data)-64) {
		return nil, fmt.Errorf("%w: opaqueData length %s exceeds the log data", ErrInvalidDepositLog, length.Dec())
	}
	opaqueData := ev.Data[64 : 64+length.Uint64()]

	dep := &DepositTx{
		L1BlockHash: ev.BlockHash,
		LogIndex:    new(big.Int).SetUint64(uint64(ev.Index)),
		From:        from,
		Domain:      UserDepositSourceDomain,
	}
	switch version {
	case DepositEventVersion0:
		if err := unmarshalDepositVersion0(dep, to, opaqueData); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported deposit event version %s", ErrInvalidDepositLog, version)
	}
	return dep, nil
}

func unmarshalDepositVersion0(dep *DepositTx, to common.Address, opaqueData []byte) error {
	if len(opaqueData) < depositV0MinLen {
		return fmt.Errorf("%w: opaqueData too short for version 0 (%d bytes)", ErrInvalidDepositLog, len(opaqueData))
	}
	var offset uint64
	dep.Mint = new(big.Int).SetBytes(opaqueData[offset : offset+32])
	offset += 32
	dep.Value = new(big.Int).SetBytes(opaqueData[offset : offset+32])
	offset += 32
	dep.Gas = new(big.Int).SetBytes(opaqueData[offset : offset+8])
	offset += 8
	// a zero isCreation byte is a call to the indexed target
	if opaqueData[offset] == 0 {
		dep.To = &to
	}
	offset++
	dep.Data = common.CopyBytes(opaqueData[offset:])
	return nil
}

// MarshalDepositLogEvent returns the log the deposit contract emits for the
// given deposit. The block hash and log index are taken from the deposit.
func MarshalDepositLogEvent(depositContract common.Address, dep *DepositTx) (*types.Log, error) {
	// the event only carries user deposits, any other domain would come back as one
	if dep.Domain != UserDepositSourceDomain {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDomain, dep.Domain)
	}
	if err := checkUint256("mint", dep.Mint); err != nil {
		return nil, err
	}
	if err := checkUint256("value", dep.Value); err != nil {
		return nil, err
	}
	if dep.Gas == nil || dep.Gas.Sign() < 0 || !dep.Gas.IsUint64() {
		return nil, fmt.Errorf("%w: gas must be a uint64", ErrDepositFieldRange)
	}
	if dep.LogIndex == nil || !dep.LogIndex.IsUint64() || dep.LogIndex.Uint64() > uint64(^uint(0)) {
		return nil, fmt.Errorf("%w: log index does not fit a log", ErrDepositFieldRange)
	}

	toBytes := common.Hash{}
	if dep.To != nil {
		toBytes = common.BytesToHash(dep.To.Bytes())
	}
	topics := []common.Hash{
		DepositEventABIHash,
		common.BytesToHash(dep.From.Bytes()),
		toBytes,
		DepositEventVersion0,
	}

	opaqueData := make([]byte, 0, depositV0MinLen+len(dep.Data))
	opaqueData = append(opaqueData, common.BigToHash(dep.Mint).Bytes()...)
	opaqueData = append(opaqueData, common.BigToHash(dep.Value).Bytes()...)
	var gas [8]byte
	dep.Gas.FillBytes(gas[:])
	opaqueData = append(opaqueData, gas[:]...)
	if dep.To == nil {
		opaqueData = append(opaqueData, 1)
	} else {
		opaqueData = append(opaqueData, 0)
	}
	opaqueData = append(opaqueData, dep.Data...)

	// abi encoding of a single bytes argument: offset, length, right padded payload
	data := make([]byte, 64, 64+len(opaqueData)+31)
	data[31] = 32
	new(big.Int).SetUint64(uint64(len(opaqueData))).FillBytes(data[32:64])
	data = append(data, opaqueData...)
	if pad := len(opaqueData) % 32; pad != 0 {
		data = append(data, make([]byte, 32-pad)...)
	}

	return &types.Log{
		Address:   depositContract,
		Topics:    topics,
		Data:      data,
		BlockHash: dep.L1BlockHash,
		Index:     uint(dep.LogIndex.Uint64()),
	}, nil
}
