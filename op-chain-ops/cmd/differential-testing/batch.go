package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	VectorsFlagName     = "vectors"
	ConcurrencyFlagName = "concurrency"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrVectorMismatch  = errors.New("vector output mismatch")
	ErrUnknownEncoding = errors.New("unknown vector file encoding")
)

var BatchCommand = &cli.Command{
	Name:  "batch",
	Usage: "Evaluates a TOML or YAML file of vectors and prints the results as JSON",
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:     VectorsFlagName,
			Usage:    "Path to the vector file, .toml, .yaml or .yml",
			Required: true,
			EnvVars:  []string{EnvVarPrefix + "_VECTORS"},
		},
		&cli.IntFlag{
			Name:    ConcurrencyFlagName,
			Usage:   "Maximum number of vectors evaluated at once",
			Value:   8,
			EnvVars: []string{EnvVarPrefix + "_CONCURRENCY"},
		},
	},
	Action: runBatch,
}

// Vector is one command invocation, optionally with the expected 0x-hex output.
type Vector struct {
	Name    string   `toml:"name" yaml:"name"`
	Command string   `toml:"command" yaml:"command"`
	Args    []string `toml:"args" yaml:"args"`
	Expect  string   `toml:"expect,omitempty" yaml:"expect,omitempty"`
}

type VectorFile struct {
	Vectors []Vector `toml:"vectors" yaml:"vectors"`
}

type VectorResult struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	Match   *bool  `json:"match,omitempty"`
}

func LoadVectorFile(path string) (*VectorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}
	var file VectorFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("failed to decode toml vectors: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to decode yaml vectors: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, ext)
	}
	return &file, nil
}

func runBatch(ctx *cli.Context) error {
	file, err := LoadVectorFile(ctx.Path(VectorsFlagName))
	if err != nil {
		return err
	}
	results, evalErr := evalVectors(ctx, file.Vectors, ctx.Int(ConcurrencyFlagName))

	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return evalErr
}

// evalVectors runs every vector, at most limit at a time, and keeps going past
// failures. The returned error aggregates all failed and mismatched vectors.
func evalVectors(ctx *cli.Context, vectors []Vector, limit int) ([]VectorResult, error) {
	results := make([]VectorResult, len(vectors))
	var (
		mu     sync.Mutex
		result *multierror.Error
		failed int
	)
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		result = multierror.Append(result, err)
		failed++
	}

	g, gctx := errgroup.WithContext(ctx.Context)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, v := range vectors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := VectorResult{Name: v.Name, Command: v.Command}
			out, err := evalVector(ctx, v)
			if err != nil {
				res.Error = err.Error()
				fail(fmt.Errorf("vector %d (%s): %w", i, v.Name, err))
			} else {
				res.Output = hexutil.Encode(out)
				if v.Expect != "" {
					match := strings.EqualFold(res.Output, v.Expect)
					res.Match = &match
					if !match {
						fail(fmt.Errorf("vector %d (%s): %w", i, v.Name, ErrVectorMismatch))
					}
				}
			}
			log.Debug("Evaluated vector", "index", i, "name", v.Name, "command", v.Command, "err", err)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("Evaluated vectors", "count", len(vectors), "failed", failed)
	return results, result.ErrorOrNil()
}

func evalVector(parent *cli.Context, v Vector) ([]byte, error) {
	cmd, ok := lookupVector(v.Command)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, v.Command)
	}
	fs := flag.NewFlagSet(v.Command, flag.ContinueOnError)
	if err := fs.Parse(append([]string{"--"}, v.Args...)); err != nil {
		return nil, err
	}
	return cmd.Run(cli.NewContext(parent.App, fs, parent))
}
