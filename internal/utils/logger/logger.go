package logger

import (
	"io"
	"os"

	"golang.org/x/exp/slog"

	"studentkeeper/internal/utils/logger/slogpretty"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// New builds the logger for env. Logs go to stderr so command output stays clean.
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stderr)
}

func NewWithWriter(env string, out io.Writer) *slog.Logger {
	return newLogger(env, out, nil)
}

// NewWithLevel is NewWithWriter with the level of env replaced by level
// ("debug", "info", "warn", "error"). An empty or unknown level keeps the
// default of env.
func NewWithLevel(env, level string, out io.Writer) *slog.Logger {
	var lvl slog.Level
	if level == "" || lvl.UnmarshalText([]byte(level)) != nil {
		return newLogger(env, out, nil)
	}
	return newLogger(env, out, &lvl)
}

func newLogger(env string, out io.Writer, level *slog.Level) *slog.Logger {
	pick := func(def slog.Level) slog.Level {
		if level != nil {
			return *level
		}
		return def
	}

	var log *slog.Logger

	switch env {
	case envLocal, "":
		log = setupPrettySlogTo(out, pick(slog.LevelDebug))
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: pick(slog.LevelDebug)}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: pick(slog.LevelInfo)}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(out, &slog.HandlerOptions{Level: pick(slog.LevelInfo)}),
		)
	}

	return log
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func setupPrettySlog() *slog.Logger {
	return setupPrettySlogTo(os.Stderr, slog.LevelDebug)
}

func setupPrettySlogTo(out io.Writer, level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(out)

	return slog.New(handler)
}
