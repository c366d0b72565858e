package logging

import (
	"io"
	"log/slog"
	"strings"
)

// quietLevel is above every standard level, so nothing is emitted
const quietLevel = slog.Level(100)

// New creates a text logger writing to w at the given level
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewDiscard creates a logger that drops everything. Used in tests.
func NewDiscard() *slog.Logger {
	return New(io.Discard, quietLevel)
}

// LevelFromString converts a level name to a slog.Level.
// Supports: debug, info, warn, error (case-insensitive).
// Unrecognized names fall back to warn, the CLI default.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Level picks the effective level: quiet wins, then the named level
func Level(name string, quiet bool) slog.Level {
	if quiet {
		return quietLevel
	}
	return LevelFromString(name)
}
