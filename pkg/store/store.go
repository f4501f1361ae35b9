// Package store persists batch outcomes. Each batch run gets a row keyed by
// a fresh uuid; per-segment obstruction fractions (or their skip reasons)
// hang off it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Register driver

	"sightline/pkg/batch"
)

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating it and its schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// WAL plus a single connection avoids SQLITE_BUSY during result writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			raster TEXT,
			segments INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id),
			segment_id INTEGER NOT NULL,
			obstruction REAL,
			error TEXT,
			PRIMARY KEY (run_id, segment_id)
		)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// BeginRun records a new batch run and returns its id.
func (s *Store) BeginRun(raster string, segments int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO runs (id, raster, segments) VALUES (?, ?, ?)`, id, raster, segments)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// WriteOutcomes persists every outcome under the given run. Skipped segments
// are stored with a NULL obstruction and their skip reason.
func (s *Store) WriteOutcomes(runID string, outcomes []batch.Outcome) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO results (run_id, segment_id, obstruction, error) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, o := range outcomes {
		var obstruction sql.NullFloat64
		var errText sql.NullString
		if o.Err != nil {
			errText = sql.NullString{String: o.Err.Error(), Valid: true}
		} else {
			obstruction = sql.NullFloat64{Float64: o.Obstruction, Valid: true}
		}
		if _, err := stmt.Exec(runID, o.ID, obstruction, errText); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to write result for segment %d: %w", o.ID, err)
		}
	}
	return tx.Commit()
}

// CountResults returns the number of stored results for a run.
func (s *Store) CountResults(runID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM results WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}
