package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/mantlenetworkio/bedrock-hashing/op-chain-ops/crossdomain"
	"github.com/mantlenetworkio/bedrock-hashing/op-node/rollup/derive"
	"github.com/mantlenetworkio/bedrock-hashing/op-service/cliutil"
	"github.com/mantlenetworkio/bedrock-hashing/op-service/eth"
)

// vectorCommand computes one ABI encoded result from positional arguments.
type vectorCommand struct {
	Name      string
	Usage     string
	ArgsUsage string
	NArgs     int
	Eval      func(ctx *cli.Context) ([]byte, error)
}

var vectors = []vectorCommand{
	{
		Name:      "decodeVersionedNonce",
		Usage:     "Splits a versioned nonce into (nonce, version)",
		ArgsUsage: "<versionedNonce>",
		NArgs:     1,
		Eval:      decodeVersionedNonce,
	},
	{
		Name:      "encodeVersionedNonce",
		Usage:     "Packs a nonce and a version into a versioned nonce",
		ArgsUsage: "<nonce> <version>",
		NArgs:     2,
		Eval:      encodeVersionedNonce,
	},
	{
		Name:      "encodeCrossDomainMessage",
		Usage:     "Encodes the relayMessage calldata for the version carried by the nonce",
		ArgsUsage: "<nonce> <sender> <target> <value> <gasLimit> <data>",
		NArgs:     6,
		Eval:      encodeCrossDomainMessage,
	},
	{
		Name:      "hashCrossDomainMessage",
		Usage:     "Hashes the relayMessage calldata for the version carried by the nonce",
		ArgsUsage: "<nonce> <sender> <target> <value> <gasLimit> <data>",
		NArgs:     6,
		Eval:      hashCrossDomainMessage,
	},
	{
		Name:      "hashDepositTransaction",
		Usage:     "Hashes a user deposit transaction",
		ArgsUsage: "<l1BlockHash> <logIndex> <from> <to> <mint> <value> <gas> <data>",
		NArgs:     8,
		Eval:      hashDepositTransaction,
	},
	{
		Name:      "encodeDepositTransaction",
		Usage:     "Encodes a user deposit transaction as a typed transaction",
		ArgsUsage: "<l1BlockHash> <logIndex> <from> <to> <mint> <value> <gas> <data>",
		NArgs:     8,
		Eval:      encodeDepositTransaction,
	},
	{
		Name:      "hashDepositSource",
		Usage:     "Computes the source hash of a user deposit",
		ArgsUsage: "<l1BlockHash> <logIndex>",
		NArgs:     2,
		Eval:      hashDepositSource,
	},
	{
		Name:      "hashWithdrawal",
		Usage:     "Hashes a withdrawal",
		ArgsUsage: "<nonce> <sender> <target> <value> <gasLimit> <data>",
		NArgs:     6,
		Eval:      hashWithdrawal,
	},
	{
		Name:      "hashOutputRootProof",
		Usage:     "Hashes an output root proof, each word given as an integer",
		ArgsUsage: "<version> <stateRoot> <messagePasserStorageRoot> <latestBlockhash>",
		NArgs:     4,
		Eval:      hashOutputRootProof,
	},
}

func lookupVector(name string) (vectorCommand, bool) {
	for _, v := range vectors {
		if v.Name == name {
			return v, true
		}
	}
	return vectorCommand{}, false
}

// Run checks the argument count and evaluates the command.
func (v vectorCommand) Run(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != v.NArgs {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", v.Name, v.NArgs, ctx.NArg())
	}
	return v.Eval(ctx)
}

func vectorCommands() []*cli.Command {
	cmds := make([]*cli.Command, 0, len(vectors))
	for _, v := range vectors {
		cmds = append(cmds, &cli.Command{
			Name:      v.Name,
			Usage:     v.Usage,
			ArgsUsage: v.ArgsUsage,
			// positional arguments may be negative numbers
			SkipFlagParsing: true,
			Action: func(ctx *cli.Context) error {
				out, err := v.Run(ctx)
				if err != nil {
					return err
				}
				log.Debug("Computed result", "command", v.Name, "size", len(out))
				_, err = fmt.Fprint(ctx.App.Writer, hexutil.Encode(out))
				return err
			},
		})
	}
	return cmds
}

func decodeVersionedNonce(ctx *cli.Context) ([]byte, error) {
	versioned, err := cliutil.BigIntArg(ctx, 0, "versionedNonce")
	if err != nil {
		return nil, err
	}
	nonce, version, err := crossdomain.DecodeVersionedNonce(versioned)
	if err != nil {
		return nil, err
	}
	return packUint256Pair(nonce, version)
}

func encodeVersionedNonce(ctx *cli.Context) ([]byte, error) {
	nonce, err := cliutil.BigIntArg(ctx, 0, "nonce")
	if err != nil {
		return nil, err
	}
	version, err := cliutil.BigIntArg(ctx, 1, "version")
	if err != nil {
		return nil, err
	}
	versioned, err := crossdomain.EncodeVersionedNonce(nonce, version)
	if err != nil {
		return nil, err
	}
	return packUint256(versioned)
}

func messageArgs(ctx *cli.Context) (*crossdomain.CrossDomainMessage, error) {
	nonce, err := cliutil.BigIntArg(ctx, 0, "nonce")
	if err != nil {
		return nil, err
	}
	sender, err := cliutil.AddressArg(ctx, 1, "sender")
	if err != nil {
		return nil, err
	}
	target, err := cliutil.AddressArg(ctx, 2, "target")
	if err != nil {
		return nil, err
	}
	value, err := cliutil.BigIntArg(ctx, 3, "value")
	if err != nil {
		return nil, err
	}
	gasLimit, err := cliutil.BigIntArg(ctx, 4, "gasLimit")
	if err != nil {
		return nil, err
	}
	data, err := cliutil.BytesArg(ctx, 5, "data")
	if err != nil {
		return nil, err
	}
	return crossdomain.NewCrossDomainMessage(nonce, sender, target, value, gasLimit, data), nil
}

func encodeCrossDomainMessage(ctx *cli.Context) ([]byte, error) {
	msg, err := messageArgs(ctx)
	if err != nil {
		return nil, err
	}
	encoded, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	return packBytes(encoded)
}

func hashCrossDomainMessage(ctx *cli.Context) ([]byte, error) {
	msg, err := messageArgs(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := msg.Hash()
	if err != nil {
		return nil, err
	}
	return packBytes32(hash)
}

// depositArgs reads a user deposit. The target is always a call, as the
// contracts never hash contract creation deposits.
func depositArgs(ctx *cli.Context) (*derive.DepositTx, error) {
	l1BlockHash, err := cliutil.Bytes32Arg(ctx, 0, "l1BlockHash")
	if err != nil {
		return nil, err
	}
	logIndex, err := cliutil.BigIntArg(ctx, 1, "logIndex")
	if err != nil {
		return nil, err
	}
	from, err := cliutil.AddressArg(ctx, 2, "from")
	if err != nil {
		return nil, err
	}
	to, err := cliutil.AddressArg(ctx, 3, "to")
	if err != nil {
		return nil, err
	}
	mint, err := cliutil.BigIntArg(ctx, 4, "mint")
	if err != nil {
		return nil, err
	}
	value, err := cliutil.BigIntArg(ctx, 5, "value")
	if err != nil {
		return nil, err
	}
	gas, err := cliutil.BigIntArg(ctx, 6, "gas")
	if err != nil {
		return nil, err
	}
	data, err := cliutil.BytesArg(ctx, 7, "data")
	if err != nil {
		return nil, err
	}
	return &derive.DepositTx{
		L1BlockHash: l1BlockHash,
		LogIndex:    logIndex,
		From:        from,
		To:          &to,
		Mint:        mint,
		Value:       value,
		Gas:         gas,
		Data:        data,
		Domain:      derive.UserDepositSourceDomain,
	}, nil
}

func hashDepositTransaction(ctx *cli.Context) ([]byte, error) {
	tx, err := depositArgs(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := tx.Hash()
	if err != nil {
		return nil, err
	}
	return packBytes32(hash)
}

func encodeDepositTransaction(ctx *cli.Context) ([]byte, error) {
	tx, err := depositArgs(ctx)
	if err != nil {
		return nil, err
	}
	encoded, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return packBytes(encoded)
}

func hashDepositSource(ctx *cli.Context) ([]byte, error) {
	l1BlockHash, err := cliutil.Bytes32Arg(ctx, 0, "l1BlockHash")
	if err != nil {
		return nil, err
	}
	logIndex, err := cliutil.BigIntArg(ctx, 1, "logIndex")
	if err != nil {
		return nil, err
	}
	hash, err := derive.SourceHash(derive.UserDepositSourceDomain, l1BlockHash, logIndex)
	if err != nil {
		return nil, err
	}
	return packBytes32(hash)
}

func hashWithdrawal(ctx *cli.Context) ([]byte, error) {
	msg, err := messageArgs(ctx)
	if err != nil {
		return nil, err
	}
	w := crossdomain.NewWithdrawal(msg.Nonce, &msg.Sender, &msg.Target, msg.Value, msg.GasLimit, msg.Data)
	hash, err := w.Hash()
	if err != nil {
		return nil, err
	}
	return packBytes32(hash)
}

func hashOutputRootProof(ctx *cli.Context) ([]byte, error) {
	names := []string{"version", "stateRoot", "messagePasserStorageRoot", "latestBlockhash"}
	words := make([]eth.Bytes32, len(names))
	for i, name := range names {
		v, err := cliutil.BigIntArg(ctx, i, name)
		if err != nil {
			return nil, err
		}
		if words[i], err = eth.Bytes32FromBig(v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	proof := eth.OutputRootProof{
		Version:                  words[0],
		StateRoot:                words[1],
		MessagePasserStorageRoot: words[2],
		LatestBlockhash:          words[3],
	}
	return packBytes32(common.Hash(proof.Hash()))
}
