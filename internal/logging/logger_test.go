package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/dropoff/internal/config"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dropoff.log")
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path, path}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("checked in", "id", "AA-JD-1")
	logger.Debug("hidden")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), raw)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if entry["msg"] != "checked in" || entry["id"] != "AA-JD-1" {
		t.Fatalf("entry = %v, want msg and id", entry)
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("New returned nil error, want unsupported format")
	}
}

func TestNewFromConfig_WritesUnderDataDir(t *testing.T) {
	cfg := config.Config{DataDir: t.TempDir(), LogLevel: "info"}
	logger, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	logger.Info("hello")
	_ = logger.Close()

	raw, err := os.ReadFile(cfg.LogPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(raw), "msg=hello") {
		t.Fatalf("log = %q, want text handler output", raw)
	}
}
