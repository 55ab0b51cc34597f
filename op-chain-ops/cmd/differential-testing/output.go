package main

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	uint256Type, _ = abi.NewType("uint256", "", nil)
	bytesType, _   = abi.NewType("bytes", "", nil)
	bytes32Type, _ = abi.NewType("bytes32", "", nil)

	uint256Output     = abi.Arguments{{Type: uint256Type}}
	uint256PairOutput = abi.Arguments{{Type: uint256Type}, {Type: uint256Type}}
	bytesOutput       = abi.Arguments{{Type: bytesType}}
	bytes32Output     = abi.Arguments{{Type: bytes32Type}}
)

func packBytes32(h common.Hash) ([]byte, error) {
	return bytes32Output.Pack([32]byte(h))
}

func packBytes(b []byte) ([]byte, error) {
	return bytesOutput.Pack(b)
}

func packUint256(v *big.Int) ([]byte, error) {
	return uint256Output.Pack(v)
}

func packUint256Pair(a, b *big.Int) ([]byte, error) {
	return uint256PairOutput.Pack(a, b)
}
