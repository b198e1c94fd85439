package logger

import (
	"errors"
	"log/slog"
	"testing"
)

func TestScope(t *testing.T) {
	attr := Scope("versions.repo")
	if attr.Key != "scope" {
		t.Errorf("Scope() key = %q, want %q", attr.Key, "scope")
	}
	if attr.Value.String() != "versions.repo" {
		t.Errorf("Scope() value = %q, want %q", attr.Value.String(), "versions.repo")
	}
}

func TestError(t *testing.T) {
	err := errors.New("connection refused")
	attr := Error(err)
	if attr.Key != "error" {
		t.Errorf("Error() key = %q, want %q", attr.Key, "error")
	}
	if attr.Value.Any() != err {
		t.Errorf("Error() value = %v, want %v", attr.Value.Any(), err)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		wantEnabled  slog.Level
		wantDisabled slog.Level
	}{
		{"default is info", "", slog.LevelInfo, slog.LevelDebug},
		{"debug", "debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"warn", "warn", slog.LevelWarn, slog.LevelInfo},
		{"warning alias", "warning", slog.LevelWarn, slog.LevelInfo},
		{"error", "error", slog.LevelError, slog.LevelWarn},
		{"case insensitive", "DEBUG", slog.LevelDebug, slog.LevelDebug - 4},
		{"invalid falls back to info", "loud", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("GO_ENV", "")

			log := NewLogger()
			if log == nil {
				t.Fatal("NewLogger() returned nil")
			}
			if !log.Enabled(nil, tt.wantEnabled) {
				t.Errorf("level %v should be enabled for LOG_LEVEL=%q", tt.wantEnabled, tt.level)
			}
			if log.Enabled(nil, tt.wantDisabled) {
				t.Errorf("level %v should be disabled for LOG_LEVEL=%q", tt.wantDisabled, tt.level)
			}
		})
	}
}

func TestNewLogger_ProductionJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GO_ENV", "production")

	log := NewLogger()
	if log == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if !log.Enabled(nil, slog.LevelInfo) {
		t.Error("production logger should have info enabled")
	}
}
