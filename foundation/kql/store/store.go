// File: store.go
// Title: Key-Value Store
// Description: The key to value map with set/get/delete/update, reference
//              resolution, rename, regex search and in-place mutation of
//              numbers and lists.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial implementation

package store

import (
	"regexp"
	"sort"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
	"github.com/msto63/keplerkv/foundation/kql/ast"
)

const defaultCapacity = 256

// Options configures a Store
type Options struct {
	Logger          *kvlog.Logger
	InitialCapacity int
}

// Store maps keys to values. Values are held by pointer so that INCR, DECR,
// APPEND and PREPEND can change the entry a reference chain ends at.
type Store struct {
	data   map[string]*ast.Value
	logger *kvlog.Logger
}

// New creates an empty store
func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = kvlog.GetDefault()
	}
	if opts.InitialCapacity <= 0 {
		opts.InitialCapacity = defaultCapacity
	}
	return &Store{
		data:   make(map[string]*ast.Value, opts.InitialCapacity),
		logger: opts.Logger.WithField("component", "kql-store"),
	}
}

// Set inserts or overwrites key. The store keeps its own copy of value.
func (s *Store) Set(key string, value ast.Value) {
	v := value.Clone()
	s.data[key] = &v
}

// Get returns the value stored at key without following references. List
// values share their elements with the store.
func (s *Store) Get(key string) (ast.Value, bool) {
	entry, ok := s.data[key]
	if !ok {
		return ast.Value{}, false
	}
	return *entry, true
}

// Del removes key and reports whether it was present
func (s *Store) Del(key string) bool {
	if _, ok := s.data[key]; !ok {
		return false
	}
	delete(s.data, key)
	return true
}

// Update overwrites key only if it already exists
func (s *Store) Update(key string, value ast.Value) bool {
	if _, ok := s.data[key]; !ok {
		return false
	}
	s.Set(key, value)
	return true
}

// Contains reports whether key is present
func (s *Store) Contains(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Len returns the number of keys
func (s *Store) Len() int {
	return len(s.data)
}

// Keys returns all keys in sorted order
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every entry in key order until fn returns false
func (s *Store) Each(fn func(key string, value ast.Value) bool) {
	for _, k := range s.Keys() {
		if !fn(k, *s.data[k]) {
			return
		}
	}
}

// Clear removes every key
func (s *Store) Clear() {
	s.data = make(map[string]*ast.Value, defaultCapacity)
}

// Resolve follows identifier values from key until a non-identifier value
// is reached. The boolean is false when a key on the chain is absent.
// With inLists, a list result is returned as a copy whose identifier
// elements are resolved as well; an element whose target is absent is kept
// as the identifier. A key seen twice on one chain fails with
// CIRCULAR_REFERENCE.
func (s *Store) Resolve(key string, inLists bool) (ast.Value, bool, error) {
	return s.resolve(key, make(map[string]struct{}), inLists)
}

func (s *Store) resolve(key string, seen map[string]struct{}, inLists bool) (ast.Value, bool, error) {
	entry, err := s.follow(key, seen)
	if err != nil || entry == nil {
		return ast.Value{}, false, err
	}
	if !inLists || !entry.IsList() {
		return *entry, true, nil
	}

	items, err := s.resolveItems(entry.Items(), seen)
	if err != nil {
		return ast.Value{}, false, err
	}
	return ast.NewList(items...), true, nil
}

// resolveItems resolves list elements. Each identifier element starts from
// its own copy of the parent's seen set so siblings do not trip the cycle
// check against each other.
func (s *Store) resolveItems(items []ast.Value, seen map[string]struct{}) ([]ast.Value, error) {
	out := make([]ast.Value, 0, len(items))
	for _, item := range items {
		switch {
		case item.IsIdentifier():
			v, ok, err := s.resolve(item.Str, copySeen(seen), true)
			if err != nil {
				return nil, err
			}
			if !ok {
				v = item
			}
			out = append(out, v)
		case item.IsList():
			nested, err := s.resolveItems(item.Items(), seen)
			if err != nil {
				return nil, err
			}
			out = append(out, ast.NewList(nested...))
		default:
			out = append(out, item)
		}
	}
	return out, nil
}

// follow walks the identifier chain starting at key and returns the entry
// it ends at, or nil if a key on the way is absent
func (s *Store) follow(key string, seen map[string]struct{}) (*ast.Value, error) {
	for {
		if _, dup := seen[key]; dup {
			s.logger.Debug("circular reference", kvlog.Fields{"key": key, "chain": len(seen)})
			return nil, errCircular(key)
		}
		seen[key] = struct{}{}

		entry, ok := s.data[key]
		if !ok {
			return nil, nil
		}
		if !entry.IsIdentifier() {
			return entry, nil
		}
		key = entry.Str
	}
}

func copySeen(seen map[string]struct{}) map[string]struct{} {
	c := make(map[string]struct{}, len(seen)+1)
	for k := range seen {
		c[k] = struct{}{}
	}
	return c
}

// Rename moves the value at oldKey to newKey, overwriting newKey. It is a
// no-op returning false when oldKey is absent.
func (s *Store) Rename(oldKey, newKey string) bool {
	entry, ok := s.data[oldKey]
	if !ok {
		return false
	}
	if oldKey == newKey {
		return true
	}
	delete(s.data, oldKey)
	s.data[newKey] = entry
	return true
}

// Search returns the sorted keys fully matching the regular expression
func (s *Store) Search(pattern string) ([]string, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, kverror.Wrap(err, "invalid search pattern").
			WithCode(kverror.CodeInvalidPattern).
			WithDetail("pattern", pattern)
	}

	matches := []string{}
	for _, k := range s.Keys() {
		if re.MatchString(k) {
			matches = append(matches, k)
		}
	}
	return matches, nil
}

// Incr adds one to the numeric value key resolves to and returns it
func (s *Store) Incr(key string) (ast.Value, error) {
	return s.step(key, 1)
}

// Decr subtracts one from the numeric value key resolves to and returns it
func (s *Store) Decr(key string) (ast.Value, error) {
	return s.step(key, -1)
}

func (s *Store) step(key string, delta int32) (ast.Value, error) {
	entry, err := s.follow(key, make(map[string]struct{}))
	if err != nil {
		return ast.Value{}, err
	}
	if entry == nil {
		return ast.Value{}, errNotFound(key)
	}

	switch entry.Kind {
	case ast.KindInt:
		entry.Int += delta
	case ast.KindFloat:
		entry.Float += float32(delta)
	default:
		return ast.Value{}, errNotNumeric(key)
	}
	return *entry, nil
}

// Append adds values to the end of the list key resolves to
func (s *Store) Append(key string, values ...ast.Value) error {
	list, err := s.listAt(key)
	if err != nil {
		return err
	}
	for _, v := range values {
		list.Items = append(list.Items, v.Clone())
	}
	return nil
}

// Prepend inserts values one by one at the front of the list key resolves
// to, so the last value ends up first
func (s *Store) Prepend(key string, values ...ast.Value) error {
	list, err := s.listAt(key)
	if err != nil {
		return err
	}
	for _, v := range values {
		list.Items = append([]ast.Value{v.Clone()}, list.Items...)
	}
	return nil
}

func (s *Store) listAt(key string) (*ast.List, error) {
	entry, err := s.follow(key, make(map[string]struct{}))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errNotFound(key)
	}
	if !entry.IsList() {
		return nil, errNotAList(key)
	}
	if entry.List == nil {
		entry.List = &ast.List{}
	}
	return entry.List, nil
}
