// Package sqlite implements the form and submission repositories over a
// single local SQLite database file. Records live one per row with an
// optimistic version check on save, so concurrent edits surface as
// conflicts instead of lost updates.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Store owns the database handle shared by the repositories
type Store struct {
	db     *sql.DB
	dbPath string
	logger *zap.Logger
}

// Open creates or opens the store at dbPath. The parent directory is
// created when missing. Pass ":memory:" for an ephemeral store.
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The store is single-user; one connection keeps :memory: databases
	// coherent and sidesteps writer contention.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, dbPath: dbPath, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS forms (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		project_notes TEXT NOT NULL DEFAULT '',
		fields_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		published_at TEXT,
		published_url TEXT,
		version INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		form_id TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		data_json TEXT NOT NULL DEFAULT '{}'
	);
	CREATE INDEX IF NOT EXISTS idx_submissions_form ON submissions(form_id);
	`
	_, err := s.db.Exec(schema)
	return err
}
