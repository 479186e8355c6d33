// Package logging provides structured JSON logging for the console.
package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with application-specific functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger with the specified level
func New(level string) *Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	return &Logger{Logger: logger}
}

// Default returns a logger with default settings
func Default() *Logger {
	return New("info")
}

// WithDomain returns a child logger tagged with the entity domain
// (inventory, patients, appointments, ...) so every line from a
// synchronizer carries the domain it belongs to.
func (l *Logger) WithDomain(domain string) *Logger {
	if l == nil {
		return Default().WithDomain(domain)
	}
	return &Logger{Logger: l.Logger.With("domain", domain)}
}
