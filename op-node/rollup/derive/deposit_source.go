package derive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/mantlenetworkio/bedrock-hashing/op-service/hashing"
)

// ErrUnsupportedDomain is returned when a source hash is requested for a
// domain other than UserDepositSourceDomain.
var ErrUnsupportedDomain = errors.New("unsupported source hash domain")

// SourceHashDomain separates the source hashes of the different kinds of
// deposit transactions.
type SourceHashDomain uint64

const (
	UserDepositSourceDomain SourceHashDomain = 0
	// The protocol also defines the domains below. They are recognized so that
	// callers get a precise error, their source hashes are not computed here.
	L1InfoDepositSourceDomain     SourceHashDomain = 1
	UpgradeDepositSourceDomain    SourceHashDomain = 2
	AfterForceIncludeSourceDomain SourceHashDomain = 3
	InvalidatedBlockSourceDomain  SourceHashDomain = 4
)

func (d SourceHashDomain) String() string {
	switch d {
	case UserDepositSourceDomain:
		return "user-deposit"
	case L1InfoDepositSourceDomain:
		return "l1-info-deposit"
	case UpgradeDepositSourceDomain:
		return "upgrade-deposit"
	case AfterForceIncludeSourceDomain:
		return "after-force-include"
	case InvalidatedBlockSourceDomain:
		return "invalidated-block"
	default:
		return fmt.Sprintf("unknown-domain(%d)", uint64(d))
	}
}

// Tag returns the 32 byte domain separator prefixed to the inner hash.
func (d SourceHashDomain) Tag() common.Hash {
	return hashing.DomainTag(uint64(d))
}

// SourceHash computes the source hash of a deposit identified by the L1 block
// hash and the index of the log that emitted it. Only user deposits are supported.
func SourceHash(domain SourceHashDomain, l1BlockHash common.Hash, logIndex *big.Int) (common.Hash, error) {
	switch domain {
	case UserDepositSourceDomain:
		if logIndex == nil || logIndex.Sign() < 0 || logIndex.BitLen() > 256 {
			return common.Hash{}, fmt.Errorf("%w: log index must be a uint256", ErrDepositFieldRange)
		}
		return userDepositSourceHash(l1BlockHash, common.BigToHash(logIndex)), nil
	default:
		return common.Hash{}, fmt.Errorf("%w: %s", ErrUnsupportedDomain, domain)
	}
}

// UserDepositSource identifies a deposit made by a user through the L1 portal.
type UserDepositSource struct {
	L1BlockHash common.Hash
	LogIndex    uint64
}

func (dep *UserDepositSource) SourceHash() common.Hash {
	var logIndex common.Hash
	binary.BigEndian.PutUint64(logIndex[24:], dep.LogIndex)
	return userDepositSourceHash(dep.L1BlockHash, logIndex)
}

func userDepositSourceHash(l1BlockHash common.Hash, logIndex common.Hash) common.Hash {
	depositIDHash := hashing.Keccak256(l1BlockHash[:], logIndex[:])
	return hashing.DomainHash(UserDepositSourceDomain.Tag(), depositIDHash[:])
}
