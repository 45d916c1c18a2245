// Package logging configures the process-wide slog logger and the
// per-subsystem component convention used across starjar.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup creates a text logger on stderr at the given level, sets it as the
// default, and returns it. Accepted levels: "debug", "info", "warn", "error"
// (case-insensitive); anything else falls back to info.
func Setup(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// FromEnv reads the level from the named environment variable and calls
// Setup. An unset variable yields the info default.
func FromEnv(key string) *slog.Logger {
	return Setup(os.Getenv(key))
}

// Component returns a child logger tagged for one subsystem, so every line
// it emits carries component=<name>.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With("component", name)
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
