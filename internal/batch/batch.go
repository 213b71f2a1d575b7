// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     batch
// Description: Runs query files statement by statement
// Author:      Mike Stoffels
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package batch

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/store"
	"github.com/msto63/keplerkv/internal/console"
	"github.com/msto63/keplerkv/internal/repl"
)

// MaxStatementSize bounds a single statement read from a file
const MaxStatementSize = 1 << 20

// Options configures a batch run
type Options struct {
	Engine  repl.Engine
	Printer *console.Printer
	Logger  *kvlog.Logger
}

// Run executes every file in order. Files without the .kep extension are
// skipped with a warning. A file that cannot be opened aborts the run.
// Statement errors are printed and the run continues. Run stops early once
// a statement quits the session.
func Run(ctx context.Context, files []string, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = kvlog.NewNop()
	}
	logger = logger.WithField("component", "batch")

	for _, path := range files {
		if !opts.Engine.Running() {
			break
		}
		if filepath.Ext(path) != store.FileExtension {
			opts.Printer.Warn(path + " is not a valid .kep file, skipped")
			continue
		}

		timer := logger.StartTimer("batch file")
		n, err := runFile(ctx, path, opts)
		if err != nil {
			timer.StopWithError(err)
			return err
		}
		timer.Stop()
		logger.Info("file executed", kvlog.Fields{"file": path, "statements": n})
	}
	return nil
}

func runFile(ctx context.Context, path string, opts Options) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, kverror.Wrap(err, "could not open file").
			WithCode(kverror.CodeFileOpenFailure).
			WithDetail("path", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxStatementSize)
	scanner.Split(ScanStatements)

	n := 0
	for scanner.Scan() && opts.Engine.Running() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		stmt := Normalize(scanner.Text())
		if stmt == "" {
			continue
		}
		n++
		if err := opts.Engine.HandleQuery(ctx, stmt); err != nil {
			opts.Printer.PrintError(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return n, kverror.Wrap(err, "failed to read file").
			WithCode(kverror.CodeFileOpenFailure).
			WithDetail("path", path)
	}
	return n, nil
}

// ScanStatements is a bufio.SplitFunc yielding the text between ';'
// terminators. Semicolons inside single or double quotes do not end a
// statement. Trailing text without a terminator is returned at EOF.
func ScanStatements(data []byte, atEOF bool) (advance int, token []byte, err error) {
	var quote byte
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ';':
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Normalize joins a multi-line statement into one line
func Normalize(stmt string) string {
	stmt = strings.ReplaceAll(stmt, "\r\n", " ")
	stmt = strings.ReplaceAll(stmt, "\n", " ")
	return strings.TrimSpace(stmt)
}
