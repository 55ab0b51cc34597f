package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const (
	LevelFlagName  = "log.level"
	FormatFlagName = "log.format"
	ColorFlagName  = "log.color"
)

func prefixEnvVars(envPrefix, name string) []string {
	return []string{envPrefix + "_" + name}
}

// CLIFlags creates flag definitions for the logging utils.
// Warning: flags are not safe to reuse between applications, since the default values are mutated.
func CLIFlags(envPrefix string) []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:     LevelFlagName,
			Usage:    "The lowest log level that will be output",
			Value:    NewLevelFlagValue(log.LevelInfo),
			EnvVars:  prefixEnvVars(envPrefix, "LOG_LEVEL"),
			Category: "Logging",
		},
		&cli.GenericFlag{
			Name:     FormatFlagName,
			Usage:    "Format the log output. Supported formats: 'text', 'terminal', 'logfmt', 'json'",
			Value:    NewFormatFlagValue(FormatText),
			EnvVars:  prefixEnvVars(envPrefix, "LOG_FORMAT"),
			Category: "Logging",
		},
		&cli.BoolFlag{
			Name:     ColorFlagName,
			Usage:    "Color the log output if in terminal mode",
			EnvVars:  prefixEnvVars(envPrefix, "LOG_COLOR"),
			Category: "Logging",
		},
	}
}

// LevelFlagValue is a value type for cli.GenericFlag
type LevelFlagValue slog.Level

var _ cli.Generic = (*LevelFlagValue)(nil)

func NewLevelFlagValue(lvl slog.Level) *LevelFlagValue {
	return (*LevelFlagValue)(&lvl)
}

func (fv *LevelFlagValue) Set(value string) error {
	lvl, err := LevelFromString(value)
	if err != nil {
		return err
	}
	*fv = LevelFlagValue(lvl)
	return nil
}

func (fv LevelFlagValue) String() string {
	return log.LevelString(slog.Level(fv))
}

func (fv LevelFlagValue) Level() slog.Level {
	return slog.Level(fv)
}

// LevelFromString returns the appropriate Level from a string name.
// Useful for parsing command line args and configuration files.
// It also converts strings to lowercase.
func LevelFromString(lvlString string) (slog.Level, error) {
	switch strings.ToLower(lvlString) {
	case "trace", "trce":
		return log.LevelTrace, nil
	case "debug", "dbug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn":
		return log.LevelWarn, nil
	case "error", "eror":
		return log.LevelError, nil
	case "crit":
		return log.LevelCrit, nil
	default:
		return log.LevelDebug, fmt.Errorf("unknown level: %v", lvlString)
	}
}

// FormatType defines a type of log format.
// Supported formats: 'text', 'terminal', 'logfmt', 'json'
type FormatType string

const (
	FormatText     FormatType = "text"
	FormatTerminal FormatType = "terminal"
	FormatLogFmt   FormatType = "logfmt"
	FormatJSON     FormatType = "json"
)

// FormatHandler returns the correct log handler factory for the given format.
func FormatHandler(ft FormatType, color bool, level slog.Level) func(io.Writer) slog.Handler {
	terminal := func(w io.Writer) slog.Handler {
		return log.NewTerminalHandlerWithLevel(w, level, color)
	}
	logfmt := func(w io.Writer) slog.Handler {
		return LogfmtMsHandlerWithLevel(w, level)
	}
	switch ft {
	case FormatJSON:
		return func(w io.Writer) slog.Handler {
			return JSONMsHandlerWithLevel(w, level)
		}
	case FormatText:
		if color {
			return terminal
		}
		return logfmt
	case FormatTerminal:
		return terminal
	case FormatLogFmt:
		return logfmt
	default:
		panic(fmt.Errorf("failed to create slog.Handler factory for format-type=%q and color=%v", ft, color))
	}
}

func (ft FormatType) String() string {
	return string(ft)
}

// FormatFlagValue is a value type for cli.GenericFlag
type FormatFlagValue FormatType

var _ cli.Generic = (*FormatFlagValue)(nil)

func NewFormatFlagValue(fmtType FormatType) *FormatFlagValue {
	return (*FormatFlagValue)(&fmtType)
}

func (fv *FormatFlagValue) Set(value string) error {
	switch FormatType(value) {
	case FormatText, FormatTerminal, FormatLogFmt, FormatJSON:
		*fv = FormatFlagValue(value)
		return nil
	default:
		return fmt.Errorf("unrecognized log-format: %q", value)
	}
}

func (fv FormatFlagValue) String() string {
	return FormatType(fv).String()
}

func (fv FormatFlagValue) FormatType() FormatType {
	return FormatType(fv)
}

type CLIConfig struct {
	Level  slog.Level
	Color  bool
	Format FormatType
}

// DefaultCLIConfig returns the info-level text config, colored when stderr is a terminal.
func DefaultCLIConfig() CLIConfig {
	return CLIConfig{
		Level:  log.LevelInfo,
		Format: FormatText,
		Color:  isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// ReadCLIConfig reads the logger config from the CLI flags registered by CLIFlags.
func ReadCLIConfig(ctx *cli.Context) CLIConfig {
	cfg := DefaultCLIConfig()
	if lvl, ok := ctx.Generic(LevelFlagName).(*LevelFlagValue); ok {
		cfg.Level = lvl.Level()
	}
	if ft, ok := ctx.Generic(FormatFlagName).(*FormatFlagValue); ok {
		cfg.Format = ft.FormatType()
	}
	if ctx.IsSet(ColorFlagName) {
		cfg.Color = ctx.Bool(ColorFlagName)
	}
	return cfg
}

// NewLogger creates a logger writing to wr as configured.
func NewLogger(wr io.Writer, cfg CLIConfig) log.Logger {
	return log.NewLogger(FormatHandler(cfg.Format, cfg.Color, cfg.Level)(wr))
}

// AppOut returns the writer logs of a CLI app go to. Results are written to
// the app's stdout, so logs use its error writer.
func AppOut(ctx *cli.Context) io.Writer {
	if ctx != nil && ctx.App != nil && ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

// SetGlobalLogHandler sets the log handler of the go-ethereum root logger.
func SetGlobalLogHandler(h slog.Handler) {
	log.SetDefault(log.NewLogger(h))
}

// SetupDefaults installs an info-level logfmt handler on stderr, used until the
// CLI flags have been read.
func SetupDefaults() {
	SetGlobalLogHandler(LogfmtMsHandlerWithLevel(os.Stderr, log.LevelInfo))
}
