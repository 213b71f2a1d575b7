// ============================================================================
// KeplerKV - Key-Value Store with Query Language
// ============================================================================
//
// Package:     history
// Description: Query journal backends recording every handled query
// Author:      Mike Stoffels
// Created:     2026-10-11
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"time"

	kverror "github.com/msto63/keplerkv/foundation/core/error"
	"github.com/msto63/keplerkv/foundation/kql"
)

// Backend names accepted by Open
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Filter defines criteria for listing journal records
type Filter struct {
	SessionID string
	Status    string
	Since     time.Time
	Until     time.Time
	Limit     int
	Offset    int
}

// Stats summarises the journal
type Stats struct {
	Total     int64
	ByStatus  map[string]int64
	Sessions  int64
	LastQuery time.Time
}

// Store is a journal that can be read back. Records come back newest first.
type Store interface {
	kql.Journal

	Query(ctx context.Context, filter Filter) ([]kql.Record, error)
	Stats(ctx context.Context) (Stats, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// Config selects and configures a backend
type Config struct {
	Backend   string
	Path      string
	Retention time.Duration
}

// Open creates the configured backend and prunes records older than the
// retention period.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendSQLite, "":
		s, err = NewSQLiteStore(SQLiteConfig{Path: cfg.Path})
	case BackendMemory:
		s = NewMemoryStore(0)
	default:
		return nil, kverror.Newf("unknown history backend %q", cfg.Backend).
			WithCode(kverror.CodeHistoryError)
	}
	if err != nil {
		return nil, kverror.Wrap(err, "failed to open history").
			WithCode(kverror.CodeHistoryError).
			WithDetail("path", cfg.Path)
	}

	if cfg.Retention > 0 {
		if _, err := s.Prune(ctx, cfg.Retention); err != nil {
			s.Close()
			return nil, kverror.Wrap(err, "failed to prune history").
				WithCode(kverror.CodeHistoryError)
		}
	}
	return s, nil
}

func (f Filter) match(rec kql.Record) bool {
	if f.SessionID != "" && rec.SessionID != f.SessionID {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if !f.Since.IsZero() && rec.At.Before(f.Since) {
		return false
	}
	if !f.Until.IsZero() && rec.At.After(f.Until) {
		return false
	}
	return true
}
