// Package logger builds the zerolog loggers used by the command line tools.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Debug bool
	// JSON writes one JSON object per line instead of the console format.
	JSON bool
	Out  io.Writer
}

func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Nop discards everything.
func Nop() zerolog.Logger { return zerolog.Nop() }
