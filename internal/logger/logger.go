// Package logger builds the zerolog logger used by the CLI and examples.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/arlula-client/pkg/arlula"
)

// Config selects the level and encoding of log output.
type Config struct {
	Level     string
	Console   bool
	Component string
}

// Build returns a logger writing to out, or stderr when out is nil.
func Build(cfg Config, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	base := zerolog.New(out).Level(parseLevel(cfg.Level))

	ctx := base.With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}

	return ctx.Logger()
}

// New builds a logger and adapts it to arlula.Logger.
func New(cfg Config, out io.Writer) arlula.Logger {
	return arlula.NewZerologLogger(Build(cfg, out))
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
