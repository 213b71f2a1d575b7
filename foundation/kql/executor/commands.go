// File: commands.go
// Title: Store Command Handlers
// Description: One handler per store command. Handlers report per-argument
//              results on the output and return only hard errors.
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
	"fmt"
	"strconv"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/ast"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

func (e *Executor) set(cmd *ast.Command) error {
	for i := 0; i+1 < cmd.NumArgs(); i += 2 {
		e.store.Set(cmd.Args[i].Str, cmd.Args[i+1])
		e.ok()
	}
	return nil
}

func (e *Executor) update(cmd *ast.Command) error {
	for i := 0; i+1 < cmd.NumArgs(); i += 2 {
		if e.store.Update(cmd.Args[i].Str, cmd.Args[i+1]) {
			e.ok()
		} else {
			e.notFound()
		}
	}
	return nil
}

func (e *Executor) get(cmd *ast.Command) error {
	for _, arg := range cmd.Args {
		v, ok := e.store.Get(arg.Str)
		if !ok {
			e.notFound()
			continue
		}
		e.emit(Message{Kind: MessageItem, Key: arg.Str, Text: v.String()})
	}
	return nil
}

func (e *Executor) del(cmd *ast.Command) error {
	for _, arg := range cmd.Args {
		if e.store.Del(arg.Str) {
			e.ok()
		} else {
			e.notFound()
		}
	}
	return nil
}

func (e *Executor) resolve(cmd *ast.Command) error {
	for _, arg := range cmd.Args {
		v, ok, err := e.store.Resolve(arg.Str, true)
		if err != nil {
			return err
		}
		if !ok {
			e.notFound()
			continue
		}
		e.emit(Message{Kind: MessageItem, Key: arg.Str, Text: v.String()})
	}
	return nil
}

func (e *Executor) list() error {
	if e.store.Len() == 0 {
		e.notice("(empty)")
		return nil
	}
	e.store.Each(func(key string, v ast.Value) bool {
		e.emit(Message{Kind: MessageItem, Key: key, Text: v.String()})
		return true
	})
	return nil
}

func (e *Executor) rename(ctx context.Context, cmd *ast.Command) error {
	for i := 0; i+1 < cmd.NumArgs(); i += 2 {
		oldKey, newKey := cmd.Args[i].Str, cmd.Args[i+1].Str

		if !e.store.Contains(oldKey) {
			e.notFound()
			continue
		}

		if oldKey != newKey && e.store.Contains(newKey) {
			overwrite, err := e.confirmOverwrite(ctx, cmd, newKey)
			if err != nil {
				return err
			}
			if !overwrite {
				e.notice("No changes made to the store.")
				continue
			}
		}

		e.store.Rename(oldKey, newKey)
		e.ok()
	}
	return nil
}

// confirmOverwrite decides whether RENAME may replace newKey. Options win
// over asking; without a confirmer the answer is no.
func (e *Executor) confirmOverwrite(ctx context.Context, cmd *ast.Command, newKey string) (bool, error) {
	switch {
	case cmd.HasOption("y", "yes"):
		return true, nil
	case cmd.HasOption("n", "no"):
		return false, nil
	case e.confirmer == nil:
		e.logger.Debug("no confirmer, keeping existing key", kvlog.Fields{"key": newKey})
		return false, nil
	}

	prompt := fmt.Sprintf("Warning: key '%s' already exists. Do you want to overwrite it? (y/n)", newKey)
	ok, err := e.confirmer.Confirm(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("confirm overwrite of %s: %w", newKey, err)
	}
	return ok, nil
}

func (e *Executor) step(cmd *ast.Command) error {
	apply := e.store.Incr
	if cmd.Kind == ast.CmdDecr {
		apply = e.store.Decr
	}

	for _, arg := range cmd.Args {
		_, err := apply(arg.Str)
		switch {
		case err == nil:
			e.ok()
		case kverror.HasCode(err, kverror.CodeNotFound):
			e.notFound()
		case kverror.HasCode(err, kverror.CodeNotNumeric):
			e.softError(err)
		default:
			return err
		}
	}
	return nil
}

// extend handles APPEND and PREPEND. The target is resolved once; a
// missing or non-list target is reported once and nothing is added.
func (e *Executor) extend(cmd *ast.Command) error {
	key := cmd.Args[0].Str
	values := cmd.Args[1:]

	apply := e.store.Append
	if cmd.Kind == ast.CmdPrepend {
		apply = e.store.Prepend
	}

	err := apply(key, values...)
	switch {
	case err == nil:
		for range values {
			e.ok()
		}
	case kverror.HasCode(err, kverror.CodeNotFound):
		e.notFound()
	case kverror.HasCode(err, kverror.CodeNotAList):
		e.softError(err)
	default:
		return err
	}
	return nil
}

func (e *Executor) search(cmd *ast.Command) error {
	for _, arg := range cmd.Args {
		keys, err := e.store.Search(arg.Str)
		if err != nil {
			return err
		}
		e.notice(arg.Str + " (" + strconv.Itoa(len(keys)) + ")")
		for _, k := range keys {
			e.emit(Message{Kind: MessagePlain, Text: " " + k})
		}
	}
	return nil
}

var statsKinds = []struct {
	label string
	kind  ast.Kind
}{
	{"Integers", ast.KindInt},
	{"Floats", ast.KindFloat},
	{"Strings", ast.KindString},
	{"Lists", ast.KindList},
	{"Aliases", ast.KindIdentifier},
}

func (e *Executor) stats() error {
	st := e.store.Stats()

	e.notice("KeplerKV Statistics")
	e.notice("Total keys: " + strconv.Itoa(st.TotalKeys))
	e.notice("Key Distribution by Type: ")
	for _, k := range statsKinds {
		e.emit(Message{Kind: MessagePlain, Text: "\t" + k.label + ": " + strconv.Itoa(st.ByKind[k.kind].Keys)})
	}

	e.notice("Usage (including keys) in bytes: " + strconv.Itoa(st.TotalBytes))
	for _, k := range statsKinds {
		e.emit(Message{Kind: MessagePlain, Text: "\t" + k.label + ": " + strconv.Itoa(st.ByKind[k.kind].Bytes)})
	}
	return nil
}

func (e *Executor) save(cmd *ast.Command) error {
	path, err := e.savePath(cmd)
	if err != nil {
		return err
	}
	if err := e.store.SaveToFile(path); err != nil {
		return err
	}
	e.emit(Message{Kind: MessageOK, Text: "SAVED"})
	return nil
}

func (e *Executor) load(cmd *ast.Command) error {
	path, err := e.savePath(cmd)
	if err != nil {
		return err
	}

	policy := e.options.LoadPolicy
	switch {
	case cmd.HasOption("replace"):
		policy = store.LoadReplace
	case cmd.HasOption("merge"):
		policy = store.LoadMerge
	}

	n, err := e.store.LoadFromFile(path, policy)
	if err != nil {
		return err
	}
	e.logger.Info("save file loaded", kvlog.Fields{
		"path":   path,
		"keys":   n,
		"policy": policy.String(),
	})
	e.emit(Message{Kind: MessageOK, Text: "LOADED"})
	return nil
}

func (e *Executor) softError(err error) {
	e.emit(Message{Kind: MessageSoftError, Text: err.Error()})
}
