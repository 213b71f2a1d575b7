package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
)

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("kepler")

	if cfg.Name != "kepler" {
		t.Errorf("Name = %v, want kepler", cfg.Name)
	}
	if cfg.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		expected kvlog.Level
	}{
		{"trace", kvlog.LevelTrace},
		{"debug", kvlog.LevelDebug},
		{"info", kvlog.LevelInfo},
		{"warn", kvlog.LevelWarn},
		{"warning", kvlog.LevelWarn},
		{"error", kvlog.LevelError},
		{"off", kvlog.LevelOff},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, closer, err := NewLogger(LoggerConfig{Name: "test", Level: tt.level, Format: "text"})
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			defer closer()
			if got := logger.GetLevel(); got != tt.expected {
				t.Errorf("GetLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoggerConfig
	}{
		{"level", LoggerConfig{Level: "chatty", Format: "text"}},
		{"format", LoggerConfig{Level: "info", Format: "xml"}},
		{"file", LoggerConfig{Level: "info", Format: "text", File: filepath.Join(os.DevNull, "x", "kepler.log")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, closer, err := NewLogger(tt.cfg)
			if !kverror.HasCode(err, kverror.CodeConfigError) {
				t.Errorf("expected config error, got %v", err)
			}
			if closer == nil {
				t.Error("closer must never be nil")
			}
		})
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var buf bytes.Buffer
	cfg := LoggerConfig{
		Name:              "test",
		Level:             "info",
		Format:            "logfmt",
		File:              filepath.Join(t.TempDir(), "kepler.log"),
		AdditionalOutputs: []io.Writer{&buf},
	}

	logger, closer, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("store loaded", kvlog.Fields{"entries": 3})
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(buf.String(), `message="store loaded"`) {
		t.Errorf("additional output missing entry: %q", buf.String())
	}
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "entries=3") || !strings.Contains(string(data), "logger=test") {
		t.Errorf("log file missing entry: %q", data)
	}
}

func TestNewSimpleLogger(t *testing.T) {
	logger := NewSimpleLogger("simple")
	if logger == nil {
		t.Fatal("NewSimpleLogger() returned nil")
	}
	if logger.GetLevel() != kvlog.DefaultLevel() {
		t.Errorf("GetLevel() = %v, want %v", logger.GetLevel(), kvlog.DefaultLevel())
	}
}
