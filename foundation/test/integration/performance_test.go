// File: performance_test.go
// Title: KeplerKV Performance Integration Tests
// Description: Benchmarks for queries through the full pipeline and for
//              persistence of larger stores.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.2.0: Query pipeline integration suite

package integration

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/keplerkv/foundation/kql/ast"
	"github.com/msto63/keplerkv/foundation/kql/store"
)

// BenchmarkSetGet benchmarks a write followed by a read
func BenchmarkSetGet(b *testing.B) {
	s := newSession(b, b.TempDir())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := fmt.Sprintf(`\SET _k%d %d; \GET _k%d`, i%1000, i, i%1000)
		if err := s.engine.HandleQuery(ctx, q); err != nil {
			b.Fatal(err)
		}
		s.out.Reset()
	}
}

// BenchmarkResolveChain benchmarks resolving a reference chain into a list
func BenchmarkResolveChain(b *testing.B) {
	s := newSession(b, b.TempDir())
	s.run(b, `\SET _end [1, 2, 3] _c3 _end _c2 _c3 _c1 _c2 _l [_c1, _c2, _c3]`)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.engine.HandleQuery(ctx, `\RESOLVE _l`); err != nil {
			b.Fatal(err)
		}
		s.out.Reset()
	}
}

func populate(st *store.Store, n int) {
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("_k%d", i)
		switch i % 3 {
		case 0:
			st.Set(key, ast.Int(int32(i)))
		case 1:
			st.Set(key, ast.String(fmt.Sprintf("value %d", i)))
		default:
			st.Set(key, ast.NewList(ast.Int(int32(i)), ast.Float(float32(i)/2)))
		}
	}
}

// BenchmarkSaveLoad benchmarks a save and a replacing load of 10k keys
func BenchmarkSaveLoad(b *testing.B) {
	src := store.New(store.Options{})
	populate(src, 10000)
	path := filepath.Join(b.TempDir(), "bench.kep")
	dst := store.New(store.Options{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := src.SaveToFile(path); err != nil {
			b.Fatal(err)
		}
		if _, err := dst.LoadFromFile(path, store.LoadReplace); err != nil {
			b.Fatal(err)
		}
	}
}

func TestLargeStoreRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large store round trip in short mode")
	}

	src := store.New(store.Options{})
	populate(src, 50000)
	path := filepath.Join(t.TempDir(), "large.kep")
	if err := src.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	dst := store.New(store.Options{})
	n, err := dst.LoadFromFile(path, store.LoadMerge)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if n != 50000 || dst.Len() != 50000 {
		t.Errorf("loaded %d entries, store has %d", n, dst.Len())
	}
	if diff := cmp.Diff(src.Stats(), dst.Stats()); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}
