// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, context fields, formatters and
//              timers.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-02
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-02 v0.1.0: Initial tests
// - 2026-10-16 v0.2.0: Session and audit tests

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf}), buf
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		min     Level
		logFn   func(*Logger)
		wantOut bool
	}{
		{"debug filtered at info", LevelInfo, func(l *Logger) { l.Debug("x") }, false},
		{"info passes at info", LevelInfo, func(l *Logger) { l.Info("x") }, true},
		{"warn passes at info", LevelInfo, func(l *Logger) { l.Warn("x") }, true},
		{"audit passes at error", LevelError, func(l *Logger) { l.Audit("x") }, true},
		{"error filtered when off", LevelOff, func(l *Logger) { l.Error("x") }, false},
		{"audit passes when off", LevelOff, func(l *Logger) { l.Audit("x") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.min, FormatText)
			tt.logFn(logger)
			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("output written = %v, want %v (%q)", got, tt.wantOut, buf.String())
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{" WARN ", LevelWarn, false},
		{"off", LevelOff, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContextFieldsAreImmutable(t *testing.T) {
	base, buf := newBufferLogger(LevelDebug, FormatText)
	parser := base.WithField("component", "kql-parser")
	_ = parser.WithField("extra", 1)

	parser.Info("parsed")
	out := buf.String()
	if !strings.Contains(out, "component=kql-parser") {
		t.Errorf("missing context field: %q", out)
	}
	if strings.Contains(out, "extra") {
		t.Errorf("field leaked from derived logger: %q", out)
	}

	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "component") {
		t.Errorf("field leaked into parent logger: %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)
	logger.WithName("executor").WithSession("s-1").Audit("command executed", Fields{"command": "SET"})

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	want := map[string]interface{}{
		"level":      "audit",
		"message":    "command executed",
		"logger":     "executor",
		"session_id": "s-1",
		"command":    "SET",
	}
	for k, v := range want {
		if decoded[k] != v {
			t.Errorf("%s = %v, want %v", k, decoded[k], v)
		}
	}
}

func TestLogfmtFormatterSortsFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatLogfmt)
	logger.Info("query", Fields{"b": 2, "a": "x"})

	out := buf.String()
	if strings.Index(out, `a="x"`) > strings.Index(out, "b=2") {
		t.Errorf("fields not sorted: %q", out)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.LogError(kverror.New("incorrect command format").WithCode(kverror.CodeWrongCommandFormat))
	if buf.Len() != 0 {
		t.Errorf("low severity error logged at info: %q", buf.String())
	}

	logger.LogError(kverror.New("not a valid KEPLER-SAVE file").WithCode(kverror.CodeNotValidSaveFile))
	if !strings.Contains(buf.String(), "[ERR]") || !strings.Contains(buf.String(), "NOT_VALID_SAVE_FILE") {
		t.Errorf("high severity error not logged as error: %q", buf.String())
	}

	buf.Reset()
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) wrote output")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("save")
	if timer.Stop() < 0 {
		t.Error("negative elapsed time")
	}
	if !strings.Contains(buf.String(), "save completed") {
		t.Errorf("missing completion line: %q", buf.String())
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return zero")
	}

	buf.Reset()
	logger.StartTimer("load").StopWithError(errors.New("boom"))
	if !strings.Contains(buf.String(), "load failed") || !strings.Contains(buf.String(), "boom") {
		t.Errorf("missing failure line: %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNop()
	logger.Audit("dropped")
	if logger.IsLevelEnabled(LevelError) {
		t.Error("nop logger should not enable error level")
	}
}
