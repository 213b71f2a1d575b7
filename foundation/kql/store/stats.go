// File: stats.go
// Title: Store Statistics
// Description: Key counts and approximate memory usage per value kind.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-05
// Modified: 2026-10-05
//
// Change History:
// - 2026-10-05 v0.1.0: Initial implementation

package store

import (
	"github.com/msto63/keplerkv/foundation/kql/ast"
)

// KindStats holds the count and byte usage of one value kind
type KindStats struct {
	Keys  int
	Bytes int
}

// Stats summarizes the store contents
type Stats struct {
	TotalKeys  int
	TotalBytes int // values plus key names
	ByKind     map[ast.Kind]KindStats
}

// Stats computes the current statistics
func (s *Store) Stats() Stats {
	st := Stats{
		TotalKeys: len(s.data),
		ByKind:    make(map[ast.Kind]KindStats, 5),
	}
	for _, kind := range []ast.Kind{ast.KindInt, ast.KindFloat, ast.KindString, ast.KindList, ast.KindIdentifier} {
		st.ByKind[kind] = KindStats{}
	}

	for key, entry := range s.data {
		size := entry.Size()
		st.TotalBytes += len(key) + size

		ks := st.ByKind[entry.Kind]
		ks.Keys++
		ks.Bytes += size
		st.ByKind[entry.Kind] = ks
	}
	return st
}
