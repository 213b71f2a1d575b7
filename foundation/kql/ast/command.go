// File: command.go
// Title: KQL Command Nodes
// Description: Command kinds, their capability class and the per-kind
//              validation contract checked before execution.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-03 v0.1.0: Initial implementation

package ast

import (
	"strings"
)

// CommandKind identifies a command of the query language
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdSet
	CmdGet
	CmdDelete
	CmdUpdate
	CmdResolve
	CmdList
	CmdSave
	CmdLoad
	CmdRename
	CmdIncr
	CmdDecr
	CmdAppend
	CmdPrepend
	CmdSearch
	CmdStats
	CmdQuit
	CmdClear
	CmdBegin
	CmdCommit
	CmdRollback
)

var commandNames = map[CommandKind]string{
	CmdUnknown:  "UNKNOWN",
	CmdSet:      "SET",
	CmdGet:      "GET",
	CmdDelete:   "DELETE",
	CmdUpdate:   "UPDATE",
	CmdResolve:  "RESOLVE",
	CmdList:     "LIST",
	CmdSave:     "SAVE",
	CmdLoad:     "LOAD",
	CmdRename:   "RENAME",
	CmdIncr:     "INCR",
	CmdDecr:     "DECR",
	CmdAppend:   "APPEND",
	CmdPrepend:  "PREPEND",
	CmdSearch:   "SEARCH",
	CmdStats:    "STATS",
	CmdQuit:     "QUIT",
	CmdClear:    "CLEAR",
	CmdBegin:    "BEGIN",
	CmdCommit:   "COMMIT",
	CmdRollback: "ROLLBACK",
}

// String returns the canonical upper-case command name
func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// AllCommandKinds returns every executable kind in declaration order
func AllCommandKinds() []CommandKind {
	kinds := make([]CommandKind, 0, int(CmdRollback))
	for k := CmdSet; k <= CmdRollback; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Class separates commands that touch the store from those that only
// change session state
type Class int

const (
	ClassStore Class = iota
	ClassSystem
)

// String returns the class name
func (c Class) String() string {
	if c == ClassSystem {
		return "system"
	}
	return "store"
}

// Class returns the capability class of the kind
func (k CommandKind) Class() Class {
	switch k {
	case CmdQuit, CmdClear, CmdBegin, CmdCommit, CmdRollback:
		return ClassSystem
	default:
		return ClassStore
	}
}

// Option flags accepted per kind, keyed by normalized name
var allowedOptions = map[CommandKind]map[string]bool{
	CmdRename: {"y": true, "yes": true, "n": true, "no": true},
	CmdLoad:   {"merge": true, "replace": true},
}

// Position is the location of a command in the query text
type Position struct {
	Line   int
	Column int
	Offset int
}

// Command is one parsed statement
type Command struct {
	Kind    CommandKind
	Name    string // command text as typed, upper-cased
	Args    []Value
	Options []string
	Pos     Position
}

// NumArgs returns the number of arguments
func (c *Command) NumArgs() int {
	return len(c.Args)
}

// HasOption reports whether any of names was given as an option
func (c *Command) HasOption(names ...string) bool {
	for _, opt := range c.Options {
		for _, name := range names {
			if opt == name {
				return true
			}
		}
	}
	return false
}

// String renders the command back in query syntax
func (c *Command) String() string {
	var b strings.Builder
	b.WriteString(`\`)
	b.WriteString(c.Kind.String())
	for _, arg := range c.Args {
		b.WriteByte(' ')
		b.WriteString(arg.Literal())
	}
	for _, opt := range c.Options {
		if len(opt) == 1 {
			b.WriteString(" -")
		} else {
			b.WriteString(" --")
		}
		b.WriteString(opt)
	}
	return b.String()
}

// Validate checks arity, argument kinds and options for the command kind.
// A false result means the command must not be executed.
func (c *Command) Validate() bool {
	allowed := allowedOptions[c.Kind]
	for _, opt := range c.Options {
		if !allowed[opt] {
			return false
		}
	}
	if c.HasOption("y", "yes") && c.HasOption("n", "no") {
		return false
	}
	if c.HasOption("merge") && c.HasOption("replace") {
		return false
	}

	switch c.Kind {
	case CmdSet, CmdUpdate:
		return c.validPairs(false)
	case CmdRename:
		return c.validPairs(true)
	case CmdGet, CmdDelete, CmdResolve, CmdIncr, CmdDecr:
		return c.NumArgs() >= 1 && c.allArgs(KindIdentifier)
	case CmdAppend, CmdPrepend:
		return c.NumArgs() >= 2 && c.Args[0].IsIdentifier()
	case CmdSearch:
		return c.NumArgs() >= 1 && c.allArgs(KindIdentifier, KindString)
	case CmdSave, CmdLoad:
		return c.NumArgs() <= 1
	case CmdList, CmdStats, CmdQuit, CmdClear, CmdBegin, CmdCommit, CmdRollback:
		return c.NumArgs() == 0
	default:
		return false
	}
}

// validPairs checks for at least one (identifier, value) pair. With
// identValues the value must be an identifier as well.
func (c *Command) validPairs(identValues bool) bool {
	if c.NumArgs() < 2 || c.NumArgs()%2 != 0 {
		return false
	}
	for i := 0; i < c.NumArgs(); i += 2 {
		if !c.Args[i].IsIdentifier() {
			return false
		}
		if identValues && !c.Args[i+1].IsIdentifier() {
			return false
		}
	}
	return true
}

func (c *Command) allArgs(kinds ...Kind) bool {
	for _, arg := range c.Args {
		ok := false
		for _, k := range kinds {
			if arg.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
