package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger with structured output. Level and format come
// from the loaded configuration, so values from a .env file are honored the
// same as environment variables.
func New(level, format string) zerolog.Logger {
	// Configure zerolog
	zerolog.TimeFieldFormat = time.RFC3339

	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	// JSON output when runs are captured by a log collector
	if format == "json" {
		return zerolog.New(os.Stdout).
			Level(logLevel).
			With().
			Timestamp().
			Str("service", "wp-content-migrator").
			Logger()
	}

	// Migration runs are usually watched from a terminal
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", "wp-content-migrator").
		Logger()
}
