// File: registry.go
// Title: KQL Command Registry
// Description: Maps command words and their short aliases onto command
//              kinds and carries the usage text shown by the help output.
//              Lookups are case-insensitive. Extra aliases can be registered
//              from configuration as long as they do not shadow a built-in.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-03 v0.1.0: Initial implementation with the built-in alias table

package registry

import (
	"sort"
	"strings"
	"sync"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/ast"
)

// OptionDefinition documents an option flag a command accepts
type OptionDefinition struct {
	Short       string
	Long        string
	Description string
}

// CommandDefinition describes one command of the language
type CommandDefinition struct {
	Kind    ast.CommandKind
	Aliases []string // canonical name first
	Usage   string
	Summary string
	Options []OptionDefinition
}

// Name returns the canonical command name
func (d *CommandDefinition) Name() string {
	return d.Kind.String()
}

// Options configures a Registry
type Options struct {
	Logger *kvlog.Logger

	// Aliases maps additional command words onto canonical names,
	// e.g. {"RM": "DELETE"}.
	Aliases map[string]string
}

// Registry resolves command words to definitions
type Registry struct {
	definitions map[ast.CommandKind]*CommandDefinition
	aliases     map[string]ast.CommandKind
	custom      map[string]bool
	logger      *kvlog.Logger
	mutex       sync.RWMutex
}

// New creates a registry with the built-in commands and any configured
// aliases
func New(opts Options) (*Registry, error) {
	if opts.Logger == nil {
		opts.Logger = kvlog.GetDefault()
	}

	r := &Registry{
		definitions: make(map[ast.CommandKind]*CommandDefinition),
		aliases:     make(map[string]ast.CommandKind),
		custom:      make(map[string]bool),
		logger:      opts.Logger.WithField("component", "kql-registry"),
	}

	for _, def := range builtinCommands() {
		r.definitions[def.Kind] = def
		for _, alias := range def.Aliases {
			r.aliases[alias] = def.Kind
		}
	}

	names := make([]string, 0, len(opts.Aliases))
	for alias := range opts.Aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	for _, alias := range names {
		if err := r.RegisterAlias(alias, opts.Aliases[alias]); err != nil {
			return nil, err
		}
	}

	r.logger.Debug("command registry initialized", kvlog.Fields{
		"commands": len(r.definitions),
		"aliases":  len(r.aliases),
	})
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry holding only the built-in commands
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry, _ = New(Options{Logger: kvlog.NewNop()})
	})
	return defaultRegistry
}

// RegisterAlias maps alias onto the command named target (a canonical name
// or an existing alias). Built-in aliases cannot be redefined.
func (r *Registry) RegisterAlias(alias, target string) error {
	alias = normalize(alias)
	if alias == "" || strings.ContainsAny(alias, " \t;,[]'\"\\") {
		return kverror.Newf("invalid command alias %q", alias).
			WithCode(kverror.CodeConfigError).
			WithOperation("registry.RegisterAlias")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	kind, ok := r.aliases[normalize(target)]
	if !ok {
		return kverror.Newf("alias %s targets unknown command %q", alias, target).
			WithCode(kverror.CodeConfigError).
			WithOperation("registry.RegisterAlias")
	}
	if existing, taken := r.aliases[alias]; taken && !r.custom[alias] {
		if existing == kind {
			return nil
		}
		return kverror.Newf("alias %s is already used by %s", alias, existing).
			WithCode(kverror.CodeConfigError).
			WithOperation("registry.RegisterAlias")
	}

	r.aliases[alias] = kind
	r.custom[alias] = true
	r.logger.Debug("command alias registered", kvlog.Fields{"alias": alias, "command": kind.String()})
	return nil
}

// Lookup resolves a command word to its kind
func (r *Registry) Lookup(word string) (ast.CommandKind, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	kind, ok := r.aliases[normalize(word)]
	return kind, ok
}

// Definition returns the definition of a kind
func (r *Registry) Definition(kind ast.CommandKind) (*CommandDefinition, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	def, ok := r.definitions[kind]
	return def, ok
}

// Definitions returns all command definitions in declaration order
func (r *Registry) Definitions() []*CommandDefinition {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	defs := make([]*CommandDefinition, 0, len(r.definitions))
	for _, kind := range ast.AllCommandKinds() {
		if def, ok := r.definitions[kind]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// AliasesFor returns every word that maps to kind, built-ins first and
// custom aliases sorted after them
func (r *Registry) AliasesFor(kind ast.CommandKind) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var result []string
	if def, ok := r.definitions[kind]; ok {
		result = append(result, def.Aliases...)
	}
	var custom []string
	for alias, k := range r.aliases {
		if k == kind && r.custom[alias] {
			custom = append(custom, alias)
		}
	}
	sort.Strings(custom)
	return append(result, custom...)
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimLeft(word, `\`)))
}
