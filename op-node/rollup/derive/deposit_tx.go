package derive

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/mantlenetworkio/bedrock-hashing/op-service/hashing"
)

// DepositTxType is the EIP-2718 type byte of deposit transactions.
const DepositTxType = 0x7E

// ErrDepositFieldRange is returned when a deposit field does not fit its declared width.
var ErrDepositFieldRange = errors.New("deposit field out of range")

// DepositTx is a deposit made on L1 and identified by the block hash and log
// index of the event that emitted it.
type DepositTx struct {
	L1BlockHash common.Hash
	LogIndex    *big.Int
	From        common.Address
	// To is nil for contract creations.
	To     *common.Address
	Mint   *big.Int
	Value  *big.Int
	Gas    *big.Int
	Data   []byte
	Domain SourceHashDomain
}

// depositTxRLP is the RLP payload following the type byte. System deposits are
// never produced here, so IsSystemTransaction is always false. The op-geth
// DepositTx carries extra Mantle value fields and does not encode this layout.
type depositTxRLP struct {
	SourceHash          common.Hash
	From                common.Address
	To                  *common.Address `rlp:"nil"`
	Mint                *big.Int
	Value               *big.Int
	Gas                 uint64
	IsSystemTransaction bool
	Data                []byte
}

// SourceHash returns the domain separated hash that uniquely identifies the deposit.
func (tx *DepositTx) SourceHash() (common.Hash, error) {
	return SourceHash(tx.Domain, tx.L1BlockHash, tx.LogIndex)
}

// MarshalBinary returns the typed transaction encoding 0x7E ++ rlp(fields).
func (tx *DepositTx) MarshalBinary() ([]byte, error) {
	source, err := tx.SourceHash()
	if err != nil {
		return nil, err
	}
	if err := checkUint256("mint", tx.Mint); err != nil {
		return nil, err
	}
	if err := checkUint256("value", tx.Value); err != nil {
		return nil, err
	}
	if tx.Gas == nil || tx.Gas.Sign() < 0 || !tx.Gas.IsUint64() {
		return nil, fmt.Errorf("%w: gas must be a uint64", ErrDepositFieldRange)
	}
	var buf bytes.Buffer
	buf.WriteByte(DepositTxType)
	err = rlp.Encode(&buf, &depositTxRLP{
		SourceHash: source,
		From:       tx.From,
		To:         tx.To,
		Mint:       tx.Mint,
		Value:      tx.Value,
		Gas:        tx.Gas.Uint64(),
		Data:       tx.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rlp encode deposit: %w", err)
	}
	return buf.Bytes(), nil
}

// Hash returns the L2 transaction hash of the deposit.
func (tx *DepositTx) Hash() (common.Hash, error) {
	enc, err := tx.MarshalBinary()
	if err != nil {
		return common.Hash{}, err
	}
	return hashing.Keccak256(enc), nil
}

func checkUint256(name string, v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		return fmt.Errorf("%w: %s must be a uint256", ErrDepositFieldRange, name)
	}
	return nil
}
