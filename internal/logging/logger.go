// internal/logging/logger.go
package logging

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment overrides.
const (
	EnvLevel     = "SCANCTL_LOG_LEVEL"
	EnvNoColor   = "SCANCTL_LOG_NOCOLOR"
	EnvTimestamp = "SCANCTL_LOG_TIMESTAMP"
)

// Options selects the console logger behaviour.
type Options struct {
	Level     zerolog.Level
	NoColor   bool
	Timestamp bool
}

// FromEnv returns opts with the environment overrides applied.
// Unparsable values are ignored.
func FromEnv(opts Options) Options {
	if v, ok := os.LookupEnv(EnvLevel); ok {
		if lvl, err := zerolog.ParseLevel(v); err == nil {
			opts.Level = lvl
		}
	}
	if v, ok := os.LookupEnv(EnvNoColor); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.NoColor = b
		}
	}
	if v, ok := os.LookupEnv(EnvTimestamp); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Timestamp = b
		}
	}
	return opts
}

// New builds a console logger writing to w.
func New(w io.Writer, app string, opts Options) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: time.RFC3339,
	}

	ctx := zerolog.New(output).Level(opts.Level).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Str("app", app).Logger()
}

// Configure builds the process logger on stderr and installs it as the
// global zerolog logger. verbose lowers the default level to debug, which
// also logs every scanner response.
func Configure(app string, verbose bool) zerolog.Logger {
	opts := Options{Level: zerolog.InfoLevel, Timestamp: true}
	if verbose {
		opts.Level = zerolog.DebugLevel
	}
	opts = FromEnv(opts)

	logger := New(os.Stderr, app, opts)
	log.Logger = logger
	return logger
}
