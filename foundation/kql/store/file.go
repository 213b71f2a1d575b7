// File: file.go
// Title: Save File I/O
// Description: Atomic SaveToFile and all-or-nothing LoadFromFile with an
//              explicit merge or replace policy.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial implementation

package store

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	kvlog "github.com/msto63/keplerkv/foundation/core/log"
)

// LoadPolicy decides what happens to existing keys on load
type LoadPolicy int

const (
	// LoadMerge keeps existing keys; loaded keys win on conflict
	LoadMerge LoadPolicy = iota

	// LoadReplace clears the store before inserting loaded keys
	LoadReplace
)

// String returns the policy name
func (p LoadPolicy) String() string {
	if p == LoadReplace {
		return "replace"
	}
	return "merge"
}

// ParseLoadPolicy parses "merge" or "replace"; empty means merge
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return LoadMerge, nil
	case "replace":
		return LoadReplace, nil
	default:
		return LoadMerge, kverror.Newf("invalid load policy %q, want merge or replace", s).
			WithCode(kverror.CodeConfigError)
	}
}

// SaveToFile writes the store to path. The file is written to a temporary
// sibling first and renamed into place, so an interrupted save never
// leaves a truncated file behind.
func (s *Store) SaveToFile(path string) (err error) {
	timer := s.logger.StartTimer("save").WithField("path", path)
	defer func() {
		if err != nil {
			timer.StopWithError(err)
			return
		}
		timer.Stop()
	}()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errOpenWrite(path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errOpenWrite(path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := s.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return errOpenWrite(path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errOpenWrite(path, err)
	}
	if err := tmp.Close(); err != nil {
		return errOpenWrite(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errOpenWrite(path, err)
	}

	s.logger.Debug("store saved", kvlog.Fields{"path": path, "keys": len(s.data)})
	return nil
}

// LoadFromFile reads a save file and applies it with policy. The store is
// left untouched when the file is missing or invalid. It returns the
// number of keys loaded.
func (s *Store) LoadFromFile(path string, policy LoadPolicy) (n int, err error) {
	timer := s.logger.StartTimer("load").WithField("path", path)
	defer func() {
		if err != nil {
			timer.StopWithError(err)
			return
		}
		timer.Stop()
	}()

	f, err := os.Open(path)
	if err != nil {
		return 0, kverror.Wrap(err, "failed to open file to read (check if it exists!)").
			WithCode(kverror.CodeFileOpenFailure).
			WithDetail("path", path)
	}
	defer f.Close()

	return s.Load(bufio.NewReader(f), policy)
}

// Load decodes a KEPLER-SAVE stream and applies it with policy
func (s *Store) Load(r io.Reader, policy LoadPolicy) (int, error) {
	entries, err := Decode(r)
	if err != nil {
		return 0, err
	}

	if policy == LoadReplace {
		s.Clear()
	}
	for _, e := range entries {
		v := e.Value
		s.data[e.Key] = &v
	}

	s.logger.Debug("store loaded", kvlog.Fields{
		"keys":   len(entries),
		"policy": policy.String(),
		"total":  len(s.data),
	})
	return len(entries), nil
}

func errOpenWrite(path string, cause error) *kverror.Error {
	return kverror.Wrap(cause, "failed to open file to write").
		WithCode(kverror.CodeFileOpenFailure).
		WithDetail("path", path)
}
