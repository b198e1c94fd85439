// Package logger builds the process-wide slog.Logger and provides the
// shared log attribute helpers used across the codebase.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.uber.org/fx"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
)

// Scope returns the attribute identifying which component a log line came from
func Scope(scope string) slog.Attr {
	return slog.String("scope", scope)
}

// Error returns the standard error attribute
func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

// NewLogger creates the application logger.
// Level comes from LOG_LEVEL (debug|info|warn|error, default info).
// GO_ENV=production switches the handler to JSON output.
func NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
