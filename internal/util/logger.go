// internal/util/logger.go
package util

import (
	"log/slog"
	"os"
	"strings"
)

var logger *slog.Logger

// InitLogger initializes the global structured logger at the given level
// ("debug", "info", "warn", "error"). Unknown levels fall back to info.
func InitLogger(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// GetLogger returns the initialized global logger.
func GetLogger() *slog.Logger {
	if logger == nil {
		InitLogger("info")
	}
	return logger
}

// ParseLevel maps a config string onto a slog level.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
