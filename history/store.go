// Package history persists a per-user record of dependency installs in a
// SQLite database under the home cache directory.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS install_history (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	outcome TEXT NOT NULL,
	pass_id TEXT NOT NULL,
	recorded_at TEXT NOT NULL
);`

// Record is one install attempt as seen by the resolver or the install
// command.
type Record struct {
	ID         string
	Name       string
	Version    string
	Outcome    string
	PassID     string
	RecordedAt time.Time
}

// Store is the SQLite-backed install history.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history: store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("history: create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open store: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: set WAL mode: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Append records one install attempt. A zero ID or timestamp is filled in.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return errors.New("history: store is nil")
	}
	if strings.TrimSpace(rec.Name) == "" {
		return errors.New("history: record name is required")
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO install_history (id, name, version, outcome, pass_id, recorded_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Name,
		rec.Version,
		rec.Outcome,
		rec.PassID,
		rec.RecordedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: append record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, errors.New("history: store is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, version, outcome, pass_id, recorded_at
FROM install_history
ORDER BY recorded_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query records: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var recordedAt string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Version, &rec.Outcome, &rec.PassID, &recordedAt); err != nil {
			return nil, fmt.Errorf("history: scan record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("history: parse timestamp %q: %w", recordedAt, err)
		}
		rec.RecordedAt = ts
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: record rows: %w", err)
	}
	return recs, nil
}

// Count returns the total number of recorded installs.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.db == nil {
		return 0, errors.New("history: store is nil")
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM install_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count records: %w", err)
	}
	return n, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
