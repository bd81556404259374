// Package logging provides application-wide logging configuration.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the application logger. The TUI owns the terminal, so logs go
// to the given writer (typically a file or stderr when running headless).
func New(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

// NewFromEnv creates a logger writing to the file named by AGENTBOARD_LOG,
// or a no-op logger when the variable is unset. Writing to stderr would
// corrupt the alternate-screen TUI.
func NewFromEnv(debug bool) (zerolog.Logger, func(), error) {
	path := os.Getenv("AGENTBOARD_LOG")
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	return New(f, debug), func() { _ = f.Close() }, nil
}
