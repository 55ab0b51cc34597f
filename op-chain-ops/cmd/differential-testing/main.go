package main

import (
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	oplog "github.com/mantlenetworkio/bedrock-hashing/op-service/log"
)

const EnvVarPrefix = "DIFFTEST"

func main() {
	oplog.SetupDefaults()

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Crit("Application failed", "err", err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "differential-testing"
	app.Usage = "Computes bedrock encodings and hashes for comparison against the contracts"
	app.Description = "Each command prints its result ABI encoded as 0x-prefixed hex on stdout. Logs go to stderr."
	app.Flags = oplog.CLIFlags(EnvVarPrefix)
	app.Before = setupLogging
	app.Commands = append(vectorCommands(), BatchCommand)
	app.Action = func(c *cli.Context) error {
		return cli.ShowAppHelp(c)
	}
	return app
}

func setupLogging(ctx *cli.Context) error {
	logger := oplog.NewLogger(oplog.AppOut(ctx), oplog.ReadCLIConfig(ctx))
	oplog.SetGlobalLogHandler(logger.Handler())
	return nil
}
