package crossdomain_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/mantlenetworkio/bedrock-hashing/op-chain-ops/crossdomain"
)

// FuzzEncodeDecodeWithdrawal will fuzz encoding and decoding of a Withdrawal
func FuzzEncodeDecodeWithdrawal(f *testing.F) {
	f.Fuzz(func(t *testing.T, _nonce, _sender, _target, _value, _gasLimit, data []byte) {
		nonce := new(big.Int).SetBytes(truncate(_nonce))
		sender := common.BytesToAddress(_sender)
		target := common.BytesToAddress(_target)
		value := new(big.Int).SetBytes(truncate(_value))
		gasLimit := new(big.Int).SetBytes(truncate(_gasLimit))

		withdrawal := crossdomain.NewWithdrawal(
			nonce,
			&sender,
			&target,
			value,
			gasLimit,
			data,
		)

		encoded, err := withdrawal.Encode()
		require.NoError(t, err)

		var w crossdomain.Withdrawal
		err = w.Decode(encoded)
		require.NoError(t, err)

		require.Equal(t, 0, withdrawal.Nonce.Cmp(w.Nonce))
		require.Equal(t, withdrawal.Sender, w.Sender)
		require.Equal(t, withdrawal.Target, w.Target)
		require.Equal(t, 0, withdrawal.Value.Cmp(w.Value))
		require.Equal(t, 0, withdrawal.GasLimit.Cmp(w.GasLimit))
		require.Equal(t, []byte(withdrawal.Data), []byte(w.Data))
	})
}

// truncate keeps fuzzed integers within uint256.
func truncate(b []byte) []byte {
	if len(b) > 32 {
		return b[:32]
	}
	return b
}

// TestWithdrawalHashing will test the correct computation of Withdrawal hashes
// and the storage slot that the withdrawal hash is stored in. Expected values
// match Hashing.hashWithdrawal in the contracts.
func TestWithdrawalHashing(t *testing.T) {
	type expect struct {
		Hash common.Hash
		Slot common.Hash
	}

	cases := []struct {
		Withdrawal *crossdomain.Withdrawal
		Expect     expect
	}{
		{
			Withdrawal: crossdomain.NewWithdrawal(
				big.NewInt(0),
				ptr(common.HexToAddress("0xaa179e0640054db6ba4fe9b291dd3b248f4b4960")),
				ptr(common.HexToAddress("0x9b2b72e299e04f00fc5b386972d8951bb870d65e")),
				big.NewInt(1),
				decimalStringToBig("124808255574871339965699013847079823271"),
				hexutil.MustDecode("0x2e1d8f26c6611c04d9f8ea352444b9d366f76c19897c851f5ce9a4d650cf2355f92da68491af279f78110a31c6cb26db09b20b3b1307ff99be0bc410d8bf6994b0e87ced86b747773597dfd1da84268508e34a46a087088ed9276738ffe39e7a1264"),
			),
			Expect: expect{
				Hash: common.HexToHash("0xbddee6e1e89962069cb559abae8342ea3490f9488509c22c482c4ba73988165c"),
				Slot: common.HexToHash("0x26bea3ec4f60cfc1152358454086b7f6a3b669d84a0ec088b2e316ff88c2a892"),
			},
		},
		{
			Withdrawal: crossdomain.NewWithdrawal(
				big.NewInt(0),
				ptr(common.HexToAddress("0x00000000000000000000000000000000000011bc")),
				ptr(common.HexToAddress("0x00000000000000000000000000000000000033eb")),
				big.NewInt(26),
				decimalStringToBig("22338"),
				hexutil.MustDecode("0x0000000000000000000000000000000000000000000000000000000000000004"),
			),
			Expect: expect{
				Hash: common.HexToHash("0x65768976d27ba8a7f91c5b267b97d29830103171863c0ba24f3234ef07d0f8e3"),
				Slot: common.HexToHash("0xd73bc49fa8e52d7717fb65cbec7ff0e30bf4e2fbbd38924d1b2efa1f96381517"),
			},
		},
		{
			Withdrawal: crossdomain.NewWithdrawal(
				hexToBig("0x0001000000000000000000000000000000000000000000000000000000000005"),
				ptr(common.HexToAddress("0x4b0ca57cb88a41771d2cc24ac9fd50afeaa3eedd")),
				ptr(common.HexToAddress("0x8a5e8410b2c3e1036c49ff8acae1e659e2508200")),
				big.NewInt(3),
				decimalStringToBig("115792089237316195423570985008687907853269984665640564039457584007913129639935"),
				hexutil.MustDecode("0xce6b96a23be7a1ac1de74f3202dfc4cedaef69502204c0d92f7b352a837a"),
			),
			Expect: expect{
				Hash: common.HexToHash("0x1aeaf4461cc078210584a44eedf3dc84770f5d79642bd926543705f95cf36e71"),
				Slot: common.HexToHash("0x53ad2dc6fcd7c5b3e278e91d2810e182a538bae71b82327ba8f4de6b96b62aa9"),
			},
		},
	}

	for i, test := range cases {
		t.Run(fmt.Sprintf("case%d", i), func(t *testing.T) {
			hash, err := test.Withdrawal.Hash()
			require.NoError(t, err)
			require.Equal(t, test.Expect.Hash, hash)

			slot, err := test.Withdrawal.StorageSlot()
			require.NoError(t, err)
			require.Equal(t, test.Expect.Slot, slot)
		})
	}
}

// TestWithdrawalHashFieldSensitivity changes one field at a time and expects
// a different hash every time.
func TestWithdrawalHashFieldSensitivity(t *testing.T) {
	t.Parallel()

	base := func() *crossdomain.Withdrawal {
		return crossdomain.NewWithdrawal(
			big.NewInt(1),
			ptr(common.HexToAddress("0x1111111111111111111111111111111111111111")),
			ptr(common.HexToAddress("0x2222222222222222222222222222222222222222")),
			big.NewInt(100),
			big.NewInt(21000),
			[]byte{0xca, 0xfe},
		)
	}
	baseHash, err := base().Hash()
	require.NoError(t, err)

	mutations := map[string]func(w *crossdomain.Withdrawal){
		"nonce":    func(w *crossdomain.Withdrawal) { w.Nonce = big.NewInt(2) },
		"sender":   func(w *crossdomain.Withdrawal) { w.Sender = ptr(common.HexToAddress("0x3333333333333333333333333333333333333333")) },
		"target":   func(w *crossdomain.Withdrawal) { w.Target = ptr(common.HexToAddress("0x3333333333333333333333333333333333333333")) },
		"value":    func(w *crossdomain.Withdrawal) { w.Value = big.NewInt(101) },
		"gasLimit": func(w *crossdomain.Withdrawal) { w.GasLimit = big.NewInt(21001) },
		"data":     func(w *crossdomain.Withdrawal) { w.Data = []byte{0xca, 0xff} },
		"dataLen":  func(w *crossdomain.Withdrawal) { w.Data = []byte{0xca, 0xfe, 0x00} },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			w := base()
			mutate(w)
			hash, err := w.Hash()
			require.NoError(t, err)
			require.NotEqual(t, baseHash, hash)
		})
	}
}

func TestWithdrawalEncodingErrors(t *testing.T) {
	t.Parallel()

	t.Run("NilSender", func(t *testing.T) {
		w := crossdomain.NewWithdrawal(big.NewInt(0), nil, ptr(common.Address{}), big.NewInt(0), big.NewInt(0), nil)
		_, err := w.Hash()
		require.ErrorIs(t, err, crossdomain.ErrEncoding)
	})

	t.Run("NilValue", func(t *testing.T) {
		w := crossdomain.NewWithdrawal(big.NewInt(0), ptr(common.Address{}), ptr(common.Address{}), nil, big.NewInt(0), nil)
		_, err := w.Hash()
		require.ErrorIs(t, err, crossdomain.ErrEncoding)
	})

	t.Run("NonceTooWide", func(t *testing.T) {
		w := crossdomain.NewWithdrawal(new(big.Int).Lsh(common.Big1, 256), ptr(common.Address{}), ptr(common.Address{}), big.NewInt(0), big.NewInt(0), nil)
		_, err := w.Hash()
		require.ErrorIs(t, err, crossdomain.ErrEncoding)
	})
}

// TestWithdrawalMatchesV1Message checks that a withdrawal encodes like the v1
// relayMessage arguments, minus the selector.
func TestWithdrawalMatchesV1Message(t *testing.T) {
	nonce := mustVersionedNonce(t, 9, 1)
	sender := common.HexToAddress("0x4200000000000000000000000000000000000007")
	target := common.HexToAddress("0x99c9fc46f92e8a1c0dec1b1747d010903e884be1")
	data := []byte("hello")

	w := crossdomain.NewWithdrawal(nonce, &sender, &target, big.NewInt(5), big.NewInt(6), data)
	encoded, err := w.Encode()
	require.NoError(t, err)

	msg, err := crossdomain.EncodeCrossDomainMessageV1(nonce, sender, target, big.NewInt(5), big.NewInt(6), data)
	require.NoError(t, err)
	require.Equal(t, msg[4:], encoded)

	var decoded crossdomain.Withdrawal
	require.NoError(t, decoded.Decode(encoded))
	opts := cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })
	require.Empty(t, cmp.Diff(w, &decoded, opts))
}

func decimalStringToBig(n string) *big.Int {
	ret, ok := new(big.Int).SetString(n, 10)
	if !ok {
		panic("")
	}
	return ret
}

func hexToBig(n string) *big.Int {
	return common.HexToHash(n).Big()
}

func ptr(i common.Address) *common.Address {
	return &i
}
