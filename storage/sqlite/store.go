/*
Package sqlite implements the storage repositories on a single SQLite file.

The catalog and the interaction log live in the same database. The driver is
modernc.org/sqlite, so no cgo toolchain is needed.
*/
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/picko-ai/picko/storage"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store owns the database handle shared by the repositories.
type Store struct {
	db     *sql.DB
	path   string
	closed atomic.Bool
	logger *slog.Logger
}

// Open opens or creates the database at path and runs pending migrations.
// Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY under concurrent upserts.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "sqlite"),
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}

// Ping reports ErrStoreUnavailable when the database cannot be reached.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return nil
}

// Tools returns a ToolRepository backed by this store.
func (s *Store) Tools() *ToolRepository {
	return &ToolRepository{store: s}
}

// Interactions returns an InteractionRepository backed by this store.
func (s *Store) Interactions() *InteractionRepository {
	return &InteractionRepository{store: s}
}

// classify marks connection-level failures as storage.ErrStoreUnavailable.
// Errors confined to one statement are returned without the mark, and context
// cancellation is passed through unchanged.
func (s *Store) classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if s.closed.Load() || errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) || isConnectionFault(err) {
		return fmt.Errorf("%w: %w", storage.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("sqlite: %w", err)
}

// isConnectionFault reports SQLite result codes that mean the database file
// itself cannot be used.
func isConnectionFault(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_IOERR, sqlite3.SQLITE_CORRUPT,
		sqlite3.SQLITE_FULL, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_READONLY:
		return true
	}
	return false
}
