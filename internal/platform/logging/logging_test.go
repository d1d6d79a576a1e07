package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithoutFileSink(t *testing.T) {
	logger, err := New(Config{Level: "info"})
	require.NoError(t, err)
	require.Nil(t, logger.logFile)
	require.NoError(t, logger.Close())
}

func TestDatedFilename(t *testing.T) {
	day := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"server.log", "server_2026-08-30.log"},
		{"gateway", "gateway_2026-08-30"},
		{"app.ocr.log", "app.ocr_2026-08-30.log"},
	}

	for _, tt := range tests {
		if got := datedFilename(tt.in, day); got != tt.want {
			t.Errorf("datedFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sinkPath(dir, filename string) string {
	return filepath.Join(dir, datedFilename(filename, time.Now()))
}

func TestNewWithFileSink(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{Level: "debug", Dir: dir, Filename: "test.log"})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("hello %s", "world")

	data, err := os.ReadFile(sinkPath(dir, "test.log"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "hello world"))
}

func TestFileSinkRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{Level: "warn", Dir: dir, Filename: "test.log"})
	require.NoError(t, err)
	defer logger.Close()

	logger.Debug("invisible")
	logger.Warn("visible")

	data, err := os.ReadFile(sinkPath(dir, "test.log"))
	require.NoError(t, err)
	require.False(t, strings.Contains(string(data), "invisible"))
	require.True(t, strings.Contains(string(data), "visible"))
}
