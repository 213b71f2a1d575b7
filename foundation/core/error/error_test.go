// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes and lookups through
//              joined errors.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-02
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-02 v0.1.0: Initial tests
// - 2026-10-16 v0.2.0: Joined error lookups

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("test error message")

	if err.Error() != "test error message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "test error message")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original"),
			message:  "wrapper",
			wantMsg:  "wrapper: original",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error keeps code",
			err:      New("not a valid KEPLER-SAVE file").WithCode(CodeNotValidSaveFile),
			message:  "load failed",
			wantMsg:  "load failed: not a valid KEPLER-SAVE file",
			wantCode: CodeNotValidSaveFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error should match its cause with errors.Is")
			}
		})
	}
}

func TestWithCodeSetsSeverity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInvalidCommand, SeverityLow},
		{CodeNotFound, SeverityLow},
		{CodeCircularReference, SeverityMedium},
		{CodeInvalidFilename, SeverityLow},
		{CodeNotValidSaveFile, SeverityHigh},
		{CodeConfigError, SeverityHigh},
		{CodeInternal, SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}

	explicit := New("x").WithSeverity(SeverityCritical).WithCode(CodeNotFound)
	if explicit.Severity() != SeverityCritical {
		t.Errorf("explicit severity overwritten: %v", explicit.Severity())
	}
}

func TestHasCodeThroughChains(t *testing.T) {
	circular := New("circular reference detected").WithCode(CodeCircularReference)
	joined := errors.Join(errors.New("plain"), fmt.Errorf("resolve: %w", circular))

	if !HasCode(joined, CodeCircularReference) {
		t.Error("HasCode() should find the code inside a joined error")
	}
	if HasCode(joined, CodeNotFound) {
		t.Error("HasCode() matched a code that is not present")
	}
	if GetCode(joined) != CodeCircularReference {
		t.Errorf("GetCode() = %v, want %v", GetCode(joined), CodeCircularReference)
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of a plain error should be CodeUnknown")
	}
	if HasCode(nil, CodeNotFound) {
		t.Error("HasCode(nil) should be false")
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code     Code
		category string
		soft     bool
	}{
		{CodeUnknownToken, "parse", false},
		{CodeWrongCommandFormat, "validation", false},
		{CodeNotNumeric, "store", true},
		{CodeNotAList, "store", true},
		{CodeUnknownSaveItem, "file", false},
		{CodeUnknown, "", false},
	}
	for _, tt := range tests {
		if got := tt.code.Category(); got != tt.category {
			t.Errorf("%s.Category() = %q, want %q", tt.code, got, tt.category)
		}
		if got := tt.code.IsSoft(); got != tt.soft {
			t.Errorf("%s.IsSoft() = %v, want %v", tt.code, got, tt.soft)
		}
		if !tt.code.IsValid() {
			t.Errorf("%s.IsValid() = false", tt.code)
		}
	}
	if Code("BOGUS").IsValid() {
		t.Error("unknown code reported as valid")
	}
}

func TestStringAndJSON(t *testing.T) {
	err := New("failed to open file to read").
		WithCode(CodeFileOpenFailure).
		WithOperation("load").
		WithDetail("path", "dump.kep")

	s := err.String()
	for _, want := range []string{"Code: FILE_OPEN_FAILURE", "Operation: load", "path=dump.kep"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("MarshalJSON() error = %v", jerr)
	}
	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("Unmarshal() error = %v", jerr)
	}
	if decoded["code"] != "FILE_OPEN_FAILURE" {
		t.Errorf("json code = %v", decoded["code"])
	}
	if decoded["severity"] != "high" {
		t.Errorf("json severity = %v", decoded["severity"])
	}
}
