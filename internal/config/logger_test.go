package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestSetupLogger(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := SetupLogger(nil); err == nil {
			t.Fatal("expected error for nil config")
		}
	})

	t.Run("console only", func(t *testing.T) {
		log, err := SetupLogger(&LogConfig{Level: "debug", Format: "json"})
		if err != nil {
			t.Fatalf("SetupLogger() error: %v", err)
		}
		defer log.Close()

		if log.Logger == nil {
			t.Fatal("logger has no slog handle")
		}
	})

	t.Run("with file output", func(t *testing.T) {
		dir := t.TempDir()
		log, err := SetupLogger(&LogConfig{
			Level:         "info",
			Format:        "text",
			FilePath:      filepath.Join(dir, "app.log"),
			MaxSizeMB:     10,
			RetentionDays: 3,
		})
		if err != nil {
			t.Fatalf("SetupLogger() error: %v", err)
		}
		defer log.Close()
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"trace", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
