package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"sightline/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sightline.log")

	cleanup, err := Init(&config.LogConfig{Level: "INFO", Path: path})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	slog.Info("hello from test")
	cleanup()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if len(raw) == 0 {
		t.Error("log file is empty")
	}
}

func TestInitRotatesPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sightline.log")
	if err := os.WriteFile(path, []byte("previous run\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cleanup, err := Init(&config.LogConfig{Level: "INFO", Path: path})
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	cleanup()

	raw, err := os.ReadFile(path + ".old")
	if err != nil {
		t.Fatalf("rotated file missing: %v", err)
	}
	if string(raw) != "previous run\n" {
		t.Errorf("rotated content = %q", raw)
	}
}
