package derive

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/bedrock-hashing/op-service/hashing"
)

var testL1BlockHash = common.HexToHash("0xc00e5d67c2755389aded7d8b151cbd5bcdf7ed275ad5e028b664880fc7581c77")

// TestUserDepositSource
// cast keccak $(cast concat-hex 0x0000000000000000000000000000000000000000000000000000000000000000 $(cast keccak $(cast concat-hex 0xc00e5d67c2755389aded7d8b151cbd5bcdf7ed275ad5e028b664880fc7581c77 0x0000000000000000000000000000000000000000000000000000000000000004)))
// # 0xea35d3c24d61d36e4f0c4126acac226410d049fc3b2c173f7563e4e6fe8d773a
func TestUserDepositSource(t *testing.T) {
	source := UserDepositSource{
		L1BlockHash: testL1BlockHash,
		LogIndex:    4,
	}

	actual := source.SourceHash()
	expected := "0xea35d3c24d61d36e4f0c4126acac226410d049fc3b2c173f7563e4e6fe8d773a"

	assert.Equal(t, expected, actual.Hex())
}

func TestSourceHash(t *testing.T) {
	t.Run("UserDeposit", func(t *testing.T) {
		actual, err := SourceHash(UserDepositSourceDomain, testL1BlockHash, big.NewInt(4))
		require.NoError(t, err)
		require.Equal(t, common.HexToHash("0xea35d3c24d61d36e4f0c4126acac226410d049fc3b2c173f7563e4e6fe8d773a"), actual)
	})

	t.Run("ZeroInputs", func(t *testing.T) {
		actual, err := SourceHash(UserDepositSourceDomain, common.Hash{}, common.Big0)
		require.NoError(t, err)
		require.Equal(t, common.HexToHash("0xed428e1c45e1d9561b62834e1a2d3015a0caae3bfdc16b4da059ac885b01a145"), actual)
	})

	t.Run("MatchesUint64Source", func(t *testing.T) {
		for _, idx := range []uint64{0, 1, 255, 1 << 40} {
			src := UserDepositSource{L1BlockHash: testL1BlockHash, LogIndex: idx}
			actual, err := SourceHash(UserDepositSourceDomain, testL1BlockHash, new(big.Int).SetUint64(idx))
			require.NoError(t, err)
			require.Equal(t, src.SourceHash(), actual)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := SourceHash(UserDepositSourceDomain, testL1BlockHash, big.NewInt(9))
		require.NoError(t, err)
		b, err := SourceHash(UserDepositSourceDomain, testL1BlockHash, big.NewInt(9))
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("LogIndexOutOfRange", func(t *testing.T) {
		_, err := SourceHash(UserDepositSourceDomain, testL1BlockHash, big.NewInt(-1))
		require.ErrorIs(t, err, ErrDepositFieldRange)
		_, err = SourceHash(UserDepositSourceDomain, testL1BlockHash, new(big.Int).Lsh(common.Big1, 256))
		require.ErrorIs(t, err, ErrDepositFieldRange)
		_, err = SourceHash(UserDepositSourceDomain, testL1BlockHash, nil)
		require.ErrorIs(t, err, ErrDepositFieldRange)
	})
}

func TestSourceHashUnsupportedDomains(t *testing.T) {
	for _, domain := range []SourceHashDomain{
		L1InfoDepositSourceDomain,
		UpgradeDepositSourceDomain,
		AfterForceIncludeSourceDomain,
		InvalidatedBlockSourceDomain,
		SourceHashDomain(99),
	} {
		t.Run(domain.String(), func(t *testing.T) {
			actual, err := SourceHash(domain, testL1BlockHash, big.NewInt(4))
			require.ErrorIs(t, err, ErrUnsupportedDomain)
			require.Equal(t, common.Hash{}, actual)

			tx := &DepositTx{L1BlockHash: testL1BlockHash, LogIndex: big.NewInt(4), Domain: domain}
			_, err = tx.SourceHash()
			require.ErrorIs(t, err, ErrUnsupportedDomain)
		})
	}
}

// TestSourceHashDomainSeparation checks that the domain tag alone changes the
// digest: the same deposit identity tagged as an L1 info deposit produces
// 0x0586c503340591999b8b38bc9834bb16aec7d5bc00eb5587ab139c9ddab81977.
func TestSourceHashDomainSeparation(t *testing.T) {
	user, err := SourceHash(UserDepositSourceDomain, testL1BlockHash, big.NewInt(4))
	require.NoError(t, err)

	inner := hashing.Keccak256(testL1BlockHash[:], common.BigToHash(big.NewInt(4)).Bytes())
	otherDomain := hashing.DomainHash(L1InfoDepositSourceDomain.Tag(), inner[:])
	require.Equal(t, common.HexToHash("0x0586c503340591999b8b38bc9834bb16aec7d5bc00eb5587ab139c9ddab81977"), otherDomain)
	require.NotEqual(t, user, otherDomain)
}

func TestSourceHashDomainString(t *testing.T) {
	require.Equal(t, "user-deposit", UserDepositSourceDomain.String())
	require.Equal(t, "unknown-domain(99)", SourceHashDomain(99).String())
	require.Equal(t, common.Hash{31: 2}, UpgradeDepositSourceDomain.Tag())
}
