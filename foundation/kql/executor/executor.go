// File: executor.go
// Title: Command Executor
// Description: Executor construction, validation and dispatch, the
//              transaction commands and the audit trail.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-06
//
// Change History:
// - 2026-10-06 v0.1.0: Initial implementation

package executor

import (
	"context"
	"errors"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/ast"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

// Options configures an Executor
type Options struct {
	Store     *store.Store
	Session   *Session
	Output    Output
	Confirmer Confirmer
	Logger    *kvlog.Logger

	// DataDir is prepended to relative save file names
	DataDir string

	// DefaultSaveFile is used by SAVE and LOAD without an argument
	DefaultSaveFile string

	// LoadPolicy applies to LOAD without --merge or --replace
	LoadPolicy store.LoadPolicy

	// EnableAuditLog writes every executed command at audit level
	EnableAuditLog bool
}

// Executor runs commands for one session. It is not safe for concurrent
// use.
type Executor struct {
	store     *store.Store
	session   *Session
	output    Output
	confirmer Confirmer
	logger    *kvlog.Logger
	options   Options
}

// New creates an executor. A store is required; a missing session, output
// or logger is replaced by a fresh session, Discard and the default logger.
func New(opts Options) (*Executor, error) {
	if opts.Store == nil {
		return nil, kverror.New("executor requires a store").
			WithCode(kverror.CodeConfigError)
	}
	if opts.Session == nil {
		opts.Session = NewSession()
	}
	if opts.Output == nil {
		opts.Output = Discard
	}
	if opts.Logger == nil {
		opts.Logger = kvlog.GetDefault()
	}
	if opts.DefaultSaveFile == "" {
		opts.DefaultSaveFile = store.DefaultSaveFile
	}
	if err := validSaveName(opts.DefaultSaveFile); err != nil {
		return nil, kverror.Wrap(err, "invalid default save file").
			WithCode(kverror.CodeConfigError)
	}

	return &Executor{
		store:     opts.Store,
		session:   opts.Session,
		output:    opts.Output,
		confirmer: opts.Confirmer,
		logger: opts.Logger.WithFields(kvlog.Fields{
			"component": "kql-executor",
		}).WithSession(opts.Session.ID()),
		options: opts,
	}, nil
}

// Session returns the session the executor runs for
func (e *Executor) Session() *Session {
	return e.session
}

// Store returns the store the executor writes to
func (e *Executor) Store() *store.Store {
	return e.store
}

// Execute validates and runs cmd. Store commands are queued instead while
// a transaction is open.
func (e *Executor) Execute(ctx context.Context, cmd *ast.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd == nil || !cmd.Validate() {
		err := errWrongFormat(cmd)
		e.audit(cmd, "rejected", err)
		return err
	}

	if cmd.Kind.Class() == ast.ClassSystem {
		err := e.runSystem(ctx, cmd)
		e.audit(cmd, status(err), err)
		return err
	}

	if e.session.InTransaction() {
		e.session.Enqueue(cmd)
		e.notice("QUEUED")
		e.logger.Debug("command queued", kvlog.Fields{
			"command": cmd.Kind.String(),
			"pending": e.session.Pending(),
		})
		e.audit(cmd, "queued", nil)
		return nil
	}

	err := e.runStore(ctx, cmd)
	e.audit(cmd, status(err), err)
	return err
}

func (e *Executor) runSystem(ctx context.Context, cmd *ast.Command) error {
	switch cmd.Kind {
	case ast.CmdQuit:
		e.emit(Message{Kind: MessageBanner, Text: "Farewell!"})
		e.session.Stop()
	case ast.CmdClear:
		e.emit(Message{Kind: MessageClear})
	case ast.CmdBegin:
		if !e.session.Begin() {
			e.notice("TRANSAC ALREADY OPEN")
			return nil
		}
		e.notice("TRANSAC BEGIN")
	case ast.CmdCommit:
		return e.commit(ctx)
	case ast.CmdRollback:
		if !e.session.InTransaction() {
			e.notice("NO TRANSAC OPEN")
			return nil
		}
		dropped := e.session.Rollback()
		e.logger.Debug("transaction rolled back", kvlog.Fields{"dropped": dropped})
		e.notice("TRANSAC ROLLBACK")
	default:
		return errWrongFormat(cmd)
	}
	return nil
}

// commit drains the queue in order. A failing command does not stop the
// ones queued after it; all failures are returned joined.
func (e *Executor) commit(ctx context.Context) error {
	if !e.session.InTransaction() {
		e.notice("NO TRANSAC OPEN")
		return nil
	}

	queued := e.session.Drain()
	timer := e.logger.StartTimer("commit").WithField("commands", len(queued))

	var errs []error
	for _, cmd := range queued {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := e.runStore(ctx, cmd)
		e.audit(cmd, status(err), err)
		if err != nil {
			errs = append(errs, err)
		}
	}

	e.notice("TRANSAC COMMITTED")
	joined := errors.Join(errs...)
	if joined != nil {
		timer.StopWithError(joined)
	} else {
		timer.Stop()
	}
	return joined
}

func (e *Executor) runStore(ctx context.Context, cmd *ast.Command) error {
	switch cmd.Kind {
	case ast.CmdSet:
		return e.set(cmd)
	case ast.CmdGet:
		return e.get(cmd)
	case ast.CmdDelete:
		return e.del(cmd)
	case ast.CmdUpdate:
		return e.update(cmd)
	case ast.CmdResolve:
		return e.resolve(cmd)
	case ast.CmdList:
		return e.list()
	case ast.CmdSave:
		return e.save(cmd)
	case ast.CmdLoad:
		return e.load(cmd)
	case ast.CmdRename:
		return e.rename(ctx, cmd)
	case ast.CmdIncr, ast.CmdDecr:
		return e.step(cmd)
	case ast.CmdAppend, ast.CmdPrepend:
		return e.extend(cmd)
	case ast.CmdSearch:
		return e.search(cmd)
	case ast.CmdStats:
		return e.stats()
	default:
		return errWrongFormat(cmd)
	}
}

func (e *Executor) emit(msg Message) {
	e.output.Emit(msg)
}

func (e *Executor) ok() {
	e.emit(Message{Kind: MessageOK})
}

func (e *Executor) notFound() {
	e.emit(Message{Kind: MessageNotFound})
}

func (e *Executor) notice(text string) {
	e.emit(Message{Kind: MessageNotice, Text: text})
}

func (e *Executor) audit(cmd *ast.Command, outcome string, err error) {
	if !e.options.EnableAuditLog {
		return
	}
	fields := kvlog.Fields{"status": outcome}
	if cmd != nil {
		fields["command"] = cmd.Kind.String()
		fields["args"] = cmd.NumArgs()
	}
	if err != nil {
		fields["error_code"] = kverror.GetCode(err).String()
	}
	e.logger.Audit("command executed", fields)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func errWrongFormat(cmd *ast.Command) *kverror.Error {
	err := kverror.New("incorrect command format").
		WithCode(kverror.CodeWrongCommandFormat)
	if cmd != nil {
		err = err.WithDetail("command", cmd.Kind.String())
	}
	return err
}
