// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     repl
// Description: Line-based interactive loop reading queries from stdin
// Author:      Mike Stoffels
// Created:     2026-10-10
// License:     MIT
// ============================================================================

package repl

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/internal/console"
)

// Engine executes queries. *kql.Engine implements it.
type Engine interface {
	HandleQuery(ctx context.Context, query string) error
	Running() bool
}

// Options configures a REPL run
type Options struct {
	Engine  Engine
	Printer *console.Printer
	Input   *bufio.Reader
	Logger  *kvlog.Logger

	// Prompt is printed before every line when Interactive is set
	Prompt      string
	Interactive bool
}

// Run reads one query per line until the session quits or input ends.
// Query errors are printed and the loop continues. Run returns nil on
// QUIT and at end of input.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil || opts.Printer == nil || opts.Input == nil {
		return errors.New("repl: engine, printer and input are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = kvlog.NewNop()
	}
	logger = logger.WithField("component", "repl")

	opts.Printer.Welcome()
	logger.Debug("session started", kvlog.Fields{"interactive": opts.Interactive})

	for opts.Engine.Running() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if opts.Interactive {
			opts.Printer.Prompt(opts.Prompt)
		}

		line, err := opts.Input.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		if query := strings.TrimSpace(line); query != "" {
			if qerr := opts.Engine.HandleQuery(ctx, query); qerr != nil {
				opts.Printer.PrintError(qerr)
			}
		}
		if eof {
			logger.Debug("end of input")
			return nil
		}
	}

	logger.Debug("session ended")
	return nil
}
