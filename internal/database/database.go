// Package database keeps the audit trail of renames in SQLite: one row per
// run and one row per file renamed during that run.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// HistoryDB is the handle to the rename history database.
type HistoryDB struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// OpenPath opens or creates the database at path.
func OpenPath(path string) (*HistoryDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return open(db, path)
}

// OpenInMemory opens a private in-memory database for testing.
func OpenInMemory() (*HistoryDB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// every new connection would get its own empty database
	db.SetMaxOpenConns(1)

	return open(db, ":memory:")
}

func open(db *sql.DB, path string) (*HistoryDB, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	h := &HistoryDB{db: db, path: path}
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return h, nil
}

// Close closes the database connection
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the filesystem path to the database file
func (h *HistoryDB) Path() string {
	return h.path
}
