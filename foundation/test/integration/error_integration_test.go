// File: error_integration_test.go
// Title: KeplerKV Error Integration Tests
// Description: Every error code a query can produce, checked end to end
//              together with its severity.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.2.0: Query pipeline integration suite

package integration

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

func TestErrorCodesEndToEnd(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "junk.kep"), []byte("not a save file"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	var unknownItem bytes.Buffer
	unknownItem.WriteString(store.FileHeader)
	_ = binary.Write(&unknownItem, binary.NativeEndian, uint64(2))
	unknownItem.WriteString("_a|x")
	if err := os.WriteFile(filepath.Join(dir, "unknown.kep"), unknownItem.Bytes(), 0o644); err != nil {
		t.Fatalf("write unknown: %v", err)
	}

	tests := []struct {
		name  string
		setup string
		query string
		code  kverror.Code
	}{
		{"invalid command", "", `\NOPE`, kverror.CodeInvalidCommand},
		{"statement without command", "", `_a 1`, kverror.CodeInvalidCommand},
		{"unknown token", "", `\SET _a 1..2`, kverror.CodeUnknownToken},
		{"nested command", "", `\SET _a \GET`, kverror.CodeNestedCommand},
		{"command in list", "", `\SET _a [1, \GET]`, kverror.CodeCommandInList},
		{"int overflow", "", `\SET _a 99999999999`, kverror.CodeWrongIntFormat},
		{"float overflow", "", `\SET _a 999999999999999999999999999999999999999999.0`, kverror.CodeWrongFloatFormat},
		{"unterminated list", "", `\SET _a [1, 2`, kverror.CodeUnterminatedList},
		{"wrong format", "", `\SET _a`, kverror.CodeWrongCommandFormat},
		{"circular reference", `\SET _a _b _b _a`, `\INCR _a`, kverror.CodeCircularReference},
		{"invalid pattern", "", `\SEARCH '['`, kverror.CodeInvalidPattern},
		{"invalid filename", "", `\SAVE 5`, kverror.CodeInvalidFilename},
		{"missing file", "", `\LOAD missing`, kverror.CodeFileOpenFailure},
		{"bad header", "", `\LOAD junk`, kverror.CodeNotValidSaveFile},
		{"unknown save item", "", `\LOAD unknown`, kverror.CodeUnknownSaveItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, dir)
			if tt.setup != "" {
				s.run(t, tt.setup)
			}

			err := s.engine.HandleQuery(context.Background(), tt.query)
			if !kverror.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v (code %s)", tt.code, err, kverror.GetCode(err))
			}
			if got, want := kverror.GetSeverity(err), kverror.GetSeverityFromCode(tt.code); got != want {
				t.Errorf("severity = %s, want %s", got, want)
			}
		})
	}
}

func TestSoftErrorsAreNotReturned(t *testing.T) {
	s := newSession(t, t.TempDir())
	s.run(t, `\SET _s 'text' _l [1]`)

	queries := []string{
		`\GET _missing`,
		`\INCR _s`,
		`\INCR _missing`,
		`\APPEND _s 1`,
		`\PREPEND _missing 1`,
		`\UPDATE _missing 1`,
		`\RENAME _missing _other`,
	}
	for _, q := range queries {
		if err := s.engine.HandleQuery(context.Background(), q); err != nil {
			t.Errorf("%s: soft error returned as %v", q, err)
		}
	}
}

func TestJoinedErrorsKeepCodes(t *testing.T) {
	s := newSession(t, t.TempDir())
	s.run(t, `\SET _a _b _b _a`)

	err := s.engine.HandleQuery(context.Background(), `\INCR _a; \SEARCH '('; \SET _ok 1`)
	if !kverror.HasCode(err, kverror.CodeCircularReference) {
		t.Errorf("joined error lost CIRCULAR_REFERENCE: %v", err)
	}
	if !kverror.HasCode(err, kverror.CodeInvalidPattern) {
		t.Errorf("joined error lost INVALID_PATTERN: %v", err)
	}
	if !s.engine.Store().Contains("_ok") {
		t.Error("statements after failures must still run")
	}
}
