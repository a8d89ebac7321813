// Package logging provides the application logger and utilities for
// secure logging with data masking.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New builds the application logger with a runtime-adjustable level.
// Output is JSON on stdout. The returned LevelVar is shared with the
// admin API's loglevel endpoint so the level can be changed at runtime.
func New(level string) (*slog.Logger, *slog.LevelVar) {
	levelVar := new(slog.LevelVar)
	levelVar.Set(ParseLevel(level))

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelVar,
	})

	return slog.New(handler), levelVar
}

// ParseLevel converts a string log level to slog.Level.
// Unrecognised values default to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
