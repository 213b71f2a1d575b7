package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/keplerkv/foundation/kql"
)

// SQLiteConfig holds configuration for the SQLite journal
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./kepler_history.db",
	}
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the journal database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS queries (
		id TEXT PRIMARY KEY,
		at DATETIME NOT NULL,
		session_id TEXT NOT NULL,
		query TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		error_code TEXT,
		duration_ns INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_queries_at ON queries(at DESC);
	CREATE INDEX IF NOT EXISTS idx_queries_session ON queries(session_id);
	CREATE INDEX IF NOT EXISTS idx_queries_status ON queries(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record inserts one journal record
func (s *SQLiteStore) Record(ctx context.Context, rec kql.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO queries (id, at, session_id, query, status, error, error_code, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.At.UTC(), rec.SessionID, rec.Query, rec.Status,
		nullString(rec.Error), nullString(rec.ErrorCode), rec.Duration.Nanoseconds())
	if err != nil {
		return fmt.Errorf("failed to insert query record: %w", err)
	}
	return nil
}

// Query lists records matching filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]kql.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, at, session_id, query, status, error, error_code, duration_ns FROM queries WHERE 1=1`
	var args []interface{}

	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.Since.IsZero() {
		query += " AND at >= ?"
		args = append(args, filter.Since.UTC())
	}
	if !filter.Until.IsZero() {
		query += " AND at <= ?"
		args = append(args, filter.Until.UTC())
	}

	query += " ORDER BY at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []kql.Record
	for rows.Next() {
		var (
			rec       kql.Record
			errText   sql.NullString
			errCode   sql.NullString
			durationN int64
		)
		if err := rows.Scan(&rec.ID, &rec.At, &rec.SessionID, &rec.Query, &rec.Status,
			&errText, &errCode, &durationN); err != nil {
			return nil, fmt.Errorf("failed to scan query record: %w", err)
		}
		rec.Error = errText.String
		rec.ErrorCode = errCode.String
		rec.Duration = time.Duration(durationN)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return records, nil
}

// Stats returns journal statistics
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{ByStatus: make(map[string]int64)}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT session_id) FROM queries`).
		Scan(&stats.Total, &stats.Sessions); err != nil {
		return stats, fmt.Errorf("failed to count queries: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM queries GROUP BY status`)
	if err != nil {
		return stats, fmt.Errorf("failed to count statuses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ByStatus[status] = count
	}

	if stats.Total > 0 {
		var last time.Time
		if err := s.db.QueryRowContext(ctx,
			`SELECT at FROM queries ORDER BY at DESC, rowid DESC LIMIT 1`).Scan(&last); err != nil {
			return stats, fmt.Errorf("failed to read last query: %w", err)
		}
		stats.LastQuery = last
	}
	return stats, nil
}

// Prune removes records older than the specified duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := s.db.ExecContext(ctx, `DELETE FROM queries WHERE at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
