// Package logging sets up the application logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Setup creates the application logger. With an empty path logging is
// disabled: the TUI owns the terminal, so there is no useful stderr to
// write to. The returned closer flushes and closes the log file.
func Setup(logFile, logLevel string) (zerolog.Logger, func()) {
	level := parseLevel(logLevel)

	if logFile == "" {
		return zerolog.Nop(), func() {}
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}

	logger := zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, func() { f.Close() }
}

// SetupConsole creates a pretty-printing logger for non-TUI commands.
func SetupConsole(w io.Writer, logLevel string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(parseLevel(logLevel)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(logLevel string) zerolog.Level {
	switch logLevel {
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
