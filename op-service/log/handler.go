package log

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"time"

	"github.com/holiman/uint256"

	elog "github.com/ethereum/go-ethereum/log"
)

const timeFormatMs = "2006-01-02T15:04:05.000-0700"

type leveler struct{ minLevel slog.Level }

func (l *leveler) Level() slog.Level {
	return l.minLevel
}

// JSONMsHandlerWithLevel writes JSON records with millisecond timestamps.
func JSONMsHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(false),
		Level:       &leveler{level},
	})
}

// LogfmtMsHandlerWithLevel writes logfmt records with millisecond timestamps.
func LogfmtMsHandlerWithLevel(wr io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		ReplaceAttr: replaceAttr(true),
		Level:       &leveler{level},
	})
}

// replaceAttr renders times with millisecond precision, levels the way
// go-ethereum names them, and big integers in decimal. Nonces and values are
// uint256 quantities and would otherwise be printed as JSON numbers or structs.
func replaceAttr(logfmt bool) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		switch attr.Key {
		case slog.TimeKey:
			if attr.Value.Kind() == slog.KindTime {
				if logfmt {
					return slog.String("t", attr.Value.Time().Format(timeFormatMs))
				}
				return slog.Attr{Key: "t", Value: attr.Value}
			}
		case slog.LevelKey:
			if l, ok := attr.Value.Any().(slog.Level); ok {
				return slog.Any("lvl", elog.LevelString(l))
			}
		}

		switch v := attr.Value.Any().(type) {
		case time.Time:
			if logfmt {
				attr = slog.String(attr.Key, v.Format(timeFormatMs))
			}
		case *big.Int:
			attr.Value = stringOrNil(v == nil, v)
		case *uint256.Int:
			if v == nil {
				attr.Value = slog.StringValue("<nil>")
			} else {
				attr.Value = slog.StringValue(v.Dec())
			}
		case fmt.Stringer:
			isNil := v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil())
			attr.Value = stringOrNil(isNil, v)
		}
		return attr
	}
}

func stringOrNil(isNil bool, v fmt.Stringer) slog.Value {
	if isNil {
		return slog.StringValue("<nil>")
	}
	return slog.StringValue(v.String())
}
