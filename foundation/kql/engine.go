// File: engine.go
// Title: Query Engine
// Description: Engine runs one query string end to end: length check,
//              tokenize, parse, then execute every statement in order.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-07
// Modified: 2026-10-07
//
// Change History:
// - 2026-10-07 v0.1.0: Initial implementation

package kql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/executor"
	"github.com/msto63/keplerkv/foundation/kql/parser"
	"github.com/msto63/keplerkv/foundation/kql/registry"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Query outcomes recorded in the journal
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusParseError = "parse_error"
)

// Record is one journal entry
type Record struct {
	ID        string
	SessionID string
	Query     string
	Status    string
	Error     string
	ErrorCode string
	Duration  time.Duration
	At        time.Time
}

// Journal stores the history of handled queries
type Journal interface {
	Record(ctx context.Context, rec Record) error
}

// Options configures an Engine
type Options struct {
	Logger    *kvlog.Logger
	Registry  *registry.Registry
	Store     *store.Store
	Session   *executor.Session
	Output    executor.Output
	Confirmer executor.Confirmer
	Journal   Journal

	DataDir         string
	DefaultSaveFile string
	LoadPolicy      store.LoadPolicy
	MaxInputLength  int
	EnableAuditLog  bool
}

// Engine handles queries for one session
type Engine struct {
	parser   *parser.Parser
	executor *executor.Executor
	registry *registry.Registry
	journal  Journal
	logger   *kvlog.Logger
}

// New creates an engine. A missing store or session is created empty.
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = kvlog.GetDefault()
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Store == nil {
		opts.Store = store.New(store.Options{Logger: opts.Logger})
	}
	if opts.Session == nil {
		opts.Session = executor.NewSession()
	}

	exec, err := executor.New(executor.Options{
		Store:           opts.Store,
		Session:         opts.Session,
		Output:          opts.Output,
		Confirmer:       opts.Confirmer,
		Logger:          opts.Logger,
		DataDir:         opts.DataDir,
		DefaultSaveFile: opts.DefaultSaveFile,
		LoadPolicy:      opts.LoadPolicy,
		EnableAuditLog:  opts.EnableAuditLog,
	})
	if err != nil {
		return nil, err
	}

	return &Engine{
		parser: parser.New(parser.Options{
			Logger:         opts.Logger,
			Registry:       opts.Registry,
			MaxInputLength: opts.MaxInputLength,
		}),
		executor: exec,
		registry: opts.Registry,
		journal:  opts.Journal,
		logger: opts.Logger.
			WithField("component", "kql-engine").
			WithSession(opts.Session.ID()),
	}, nil
}

// HandleQuery runs every statement of query. A parse error rejects the
// whole query before anything runs. Execution errors do not stop later
// statements and are returned joined. Nothing after QUIT runs.
func (e *Engine) HandleQuery(ctx context.Context, query string) error {
	start := time.Now()

	cmds, err := e.parser.ParseInput(query)
	if err != nil {
		e.record(ctx, query, StatusParseError, err, start)
		return err
	}

	var errs []error
	for _, cmd := range cmds {
		if err := e.executor.Execute(ctx, cmd); err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
		}
		if !e.Running() {
			break
		}
	}

	joined := errors.Join(errs...)
	if joined != nil {
		e.record(ctx, query, StatusError, joined, start)
	} else {
		e.record(ctx, query, StatusOK, nil, start)
	}

	e.logger.Debug("query handled", kvlog.Fields{
		"statements": len(cmds),
		"failed":     len(errs),
		"duration":   time.Since(start).String(),
	})
	return joined
}

// Running reports whether the session has not seen QUIT
func (e *Engine) Running() bool {
	return e.executor.Session().Running()
}

// Session returns the engine's session
func (e *Engine) Session() *executor.Session {
	return e.executor.Session()
}

// Store returns the engine's store
func (e *Engine) Store() *store.Store {
	return e.executor.Store()
}

// Registry returns the command registry used for parsing
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

func (e *Engine) record(ctx context.Context, query, status string, err error, start time.Time) {
	if e.journal == nil {
		return
	}

	rec := Record{
		ID:        uuid.NewString(),
		SessionID: e.Session().ID(),
		Query:     query,
		Status:    status,
		Duration:  time.Since(start),
		At:        start,
	}
	if err != nil {
		rec.Error = err.Error()
		rec.ErrorCode = kverror.GetCode(err).String()
	}

	if jerr := e.journal.Record(ctx, rec); jerr != nil {
		e.logger.WarnWithErr("journal write failed", jerr, kvlog.Fields{"query_id": rec.ID})
	}
}
