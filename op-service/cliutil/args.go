package cliutil

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"
)

var (
	ErrMissingArg = errors.New("missing argument")
	ErrInvalidArg = errors.New("invalid argument")
)

func arg(cliCtx *cli.Context, index int, name string) (string, error) {
	if cliCtx.NArg() <= index {
		return "", fmt.Errorf("%w: %s (position %d)", ErrMissingArg, name, index)
	}
	return cliCtx.Args().Get(index), nil
}

// BigIntArg parses the positional argument at index as a decimal or 0x-prefixed integer.
func BigIntArg(cliCtx *cli.Context, index int, name string) (*big.Int, error) {
	s, err := arg(cliCtx, index, name)
	if err != nil {
		return nil, err
	}
	v, err := ParseBigInt(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArg, name, err)
	}
	return v, nil
}

// AddressArg parses the positional argument at index as a hex address.
func AddressArg(cliCtx *cli.Context, index int, name string) (common.Address, error) {
	s, err := arg(cliCtx, index, name)
	if err != nil {
		return common.Address{}, err
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s: not an address: %q", ErrInvalidArg, name, s)
	}
	return common.HexToAddress(s), nil
}

// BytesArg parses the positional argument at index as 0x-prefixed hex bytes.
func BytesArg(cliCtx *cli.Context, index int, name string) ([]byte, error) {
	s, err := arg(cliCtx, index, name)
	if err != nil {
		return nil, err
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArg, name, err)
	}
	return b, nil
}

// Bytes32Arg parses the positional argument at index as hex bytes, left padded
// to 32 bytes.
func Bytes32Arg(cliCtx *cli.Context, index int, name string) (common.Hash, error) {
	b, err := BytesArg(cliCtx, index, name)
	if err != nil {
		return common.Hash{}, err
	}
	return BytesToBytes32(name, b)
}

func BytesToBytes32(name string, b []byte) (common.Hash, error) {
	if len(b) > common.HashLength {
		return common.Hash{}, fmt.Errorf("%w: %s: %d bytes do not fit 32", ErrInvalidArg, name, len(b))
	}
	return common.BytesToHash(b), nil
}
