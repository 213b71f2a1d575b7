package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/keplerkv/foundation/kql"
)

// DefaultMemoryCapacity is the ring size used when none is given
const DefaultMemoryCapacity = 1000

// MemoryStore keeps the most recent records in a fixed-size ring
type MemoryStore struct {
	mu      sync.RWMutex
	records []kql.Record
	next    int
	full    bool
}

// NewMemoryStore creates an in-memory journal holding up to capacity records
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{records: make([]kql.Record, capacity)}
}

// Record stores rec, evicting the oldest record when the ring is full
func (s *MemoryStore) Record(ctx context.Context, rec kql.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	s.records[s.next] = rec
	s.next = (s.next + 1) % len(s.records)
	if s.next == 0 {
		s.full = true
	}
	return nil
}

// newestFirst returns the stored records, newest first. Callers hold mu.
func (s *MemoryStore) newestFirst() []kql.Record {
	n := s.next
	if s.full {
		n = len(s.records)
	}
	out := make([]kql.Record, 0, n)
	for i := 1; i <= n; i++ {
		idx := (s.next - i + len(s.records)) % len(s.records)
		out = append(out, s.records[idx])
	}
	return out
}

// Query lists records matching filter, newest first
func (s *MemoryStore) Query(ctx context.Context, filter Filter) ([]kql.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []kql.Record
	for _, rec := range s.newestFirst() {
		if filter.match(rec) {
			results = append(results, rec)
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(results) {
			return nil, nil
		}
		results = results[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(results) {
		results = results[:filter.Limit]
	}
	return results, nil
}

// Stats returns journal statistics
func (s *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{ByStatus: make(map[string]int64)}
	sessions := make(map[string]struct{})
	for i, rec := range s.newestFirst() {
		if i == 0 {
			stats.LastQuery = rec.At
		}
		stats.Total++
		stats.ByStatus[rec.Status]++
		sessions[rec.SessionID] = struct{}{}
	}
	stats.Sessions = int64(len(sessions))
	return stats, nil
}

// Prune removes records older than the specified duration
func (s *MemoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	current := s.newestFirst()

	kept := make([]kql.Record, 0, len(current))
	var deleted int64
	// Re-insert oldest first so the ring order is preserved
	for i := len(current) - 1; i >= 0; i-- {
		if current[i].At.After(cutoff) {
			kept = append(kept, current[i])
		} else {
			deleted++
		}
	}

	s.records = make([]kql.Record, len(s.records))
	copy(s.records, kept)
	s.next = len(kept) % len(s.records)
	s.full = len(kept) == len(s.records)
	return deleted, nil
}

// Close is a no-op for memory store
func (s *MemoryStore) Close() error {
	return nil
}
