package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where and how verbosely the program logs
type Options struct {
	// File is the log file path. Empty disables logging.
	File  string
	Level string
	Debug bool
}

// ParseLevel maps a level name to a zerolog level; unknown names mean info
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Setup opens the log file and returns a logger writing to it together
// with a closer for the file. The terminal belongs to the UI, so nothing
// is ever written to stdout or stderr.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	if opts.File == "" {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}

	level := ParseLevel(opts.Level)
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	return New(f, level), f, nil
}

// New builds a timestamped logger on w
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
