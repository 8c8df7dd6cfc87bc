package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/isep-edu/crm-gateway/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"info level", "info", slog.LevelInfo},
		{"warn level", "warn", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"default level", "invalid", slog.LevelInfo},
		{"empty level", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevel(tt.level)
			if got != tt.expected {
				t.Errorf("parseLevel(%s) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	cfg := config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		OutputFile: tmpfile.Name(),
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}

	logger := NewLogger(cfg)
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}

	logger.Info("test message", "key", "value")

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(content), `"msg":"test message"`) {
		t.Errorf("Expected JSON log format, got: %s", string(content))
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	cfg := config.LoggingConfig{
		Level:      "debug",
		Format:     "text",
		OutputFile: tmpfile.Name(),
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}

	logger := NewLogger(cfg)
	logger.Debug("debug message", "request_id", "abc123")

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(content), "debug message") {
		t.Errorf("Expected debug message in file output, got: %s", string(content))
	}
}

func TestNewLoggerWithConsole_RoutesConsoleOutput(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	// Redirecting the console keeps stdout clean, which the stdio
	// transport relies on: its stdout carries only protocol frames.
	var console bytes.Buffer
	cfg := config.LoggingConfig{
		Level:      "info",
		Format:     "text",
		OutputFile: tmpfile.Name(),
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}

	logger := NewLoggerWithConsole(cfg, &console)
	logger.Info("remote call", "model", "crm.lead")

	if !strings.Contains(console.String(), "remote call") {
		t.Errorf("Expected console output on the given writer, got: %q", console.String())
	}

	content, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "remote call") {
		t.Errorf("Expected file output, got: %s", string(content))
	}
}

func TestNewLoggerWithConsole_JSONFormat(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	var console bytes.Buffer
	cfg := config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		OutputFile: tmpfile.Name(),
		MaxSize:    10,
		MaxBackups: 2,
		MaxAge:     7,
	}

	logger := NewLoggerWithConsole(cfg, &console)
	logger.Info("json routed")

	if !strings.Contains(console.String(), `"msg":"json routed"`) {
		t.Errorf("Expected JSON console output on the given writer, got: %q", console.String())
	}
}

func TestShouldUseColors_NonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	if shouldUseColors(&buf) {
		t.Error("Colors must be disabled for non-terminal writers")
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	handler := NewMultiHandler(h1, h2)
	logger := slog.New(handler)

	logger.Info("fan out", "n", 1)

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !strings.Contains(buf.String(), "fan out") {
			t.Errorf("handler %d did not receive record: %q", i, buf.String())
		}
	}

	if !handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("MultiHandler should be enabled at info level")
	}
	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("MultiHandler should not be enabled at debug level")
	}
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})

	handler := NewMultiHandler(h).WithAttrs([]slog.Attr{slog.String("component", "crm")})
	slog.New(handler).Info("attributed")

	if !strings.Contains(buf.String(), "component=crm") {
		t.Errorf("expected attribute in output, got: %q", buf.String())
	}
}
