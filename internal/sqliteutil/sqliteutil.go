// Package sqliteutil provides lifecycle and administrative helpers for
// single-file SQLite databases: create, open, close, statement execution,
// and simple introspection queries (row counts, max column values, table
// clearing). Every failure is logged with structured context before being
// returned as an error matchable with errors.Is.
package sqliteutil

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// DB is a handle to an open single-file SQLite database.
//
// A DB is created by Create or Open and released exactly once by Close.
// The underlying connection pool is limited to a single connection, so
// operations on one DB are serialized at the pool level (SQLite is
// single-writer). A DB must not be used after Close.
type DB struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Create creates a new SQLite database at path and returns a handle to it.
// It fails with ErrExists if a file already exists at path, regardless of
// its contents. The logger receives a structured record for every failure;
// a nil logger falls back to slog.Default().
func Create(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if fileExists(path) {
		logger.Error("could not create database: file already exists", "path", path)
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	db, err := openDatabase(path, "rwc", logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Open opens an existing SQLite database at path with read-write semantics.
// It fails with ErrNotFound if no file exists at path; it never creates one.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if !fileExists(path) {
		logger.Error("could not open database: file not found", "path", path)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	db, err := openDatabase(path, "rw", logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// openDatabase opens the file at path with the given SQLite URI mode
// ("rw" to open, "rwc" to create) and applies the standard pragmas.
// On engine failure the partially-opened pool is released before returning.
func openDatabase(path, mode string, logger *slog.Logger) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=%s", path, mode)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("could not open database", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
	}

	// SQLite is single-writer; a single pooled connection avoids lock
	// contention and keeps pragma state consistent.
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	// The first pragma forces the lazy sql.Open to actually touch the
	// file, so engine-level open errors surface here.
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			logger.Error("could not open database",
				"path", path,
				"pragma", p,
				"code", engineCode(err),
				"error", err)
			_ = sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
			return nil, fmt.Errorf("%w: %v", ErrOpenFailed, err)
		}
	}

	return &DB{
		db:     sqlDB,
		path:   path,
		logger: logger,
	}, nil
}

// Close releases the database handle. It must be called exactly once;
// a nil or already-released handle returns ErrInvalidHandle without
// touching the engine. The handle must not be reused after Close,
// regardless of the outcome.
func (db *DB) Close() error {
	if db == nil {
		return ErrInvalidHandle
	}
	if db.db == nil {
		db.logger.Error("close called on released database handle", "path", db.path)
		return ErrInvalidHandle
	}

	if err := db.db.Close(); err != nil {
		db.logger.Error("could not close database",
			"path", db.path,
			"code", engineCode(err),
			"error", err)
		db.db = nil
		return fmt.Errorf("%w: %v", ErrCloseFailed, err)
	}

	db.db = nil
	return nil
}

// Path returns the filesystem path of the database file.
func (db *DB) Path() string {
	if db == nil {
		return ""
	}
	return db.path
}

// fileExists reports whether a file is present at path. Existence is the
// only property checked; permission errors are treated as present so that
// Create does not clobber an unreadable file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// engineCode extracts the native SQLite result code from an error for
// logging. Returns -1 when the error did not originate in the engine.
func engineCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()
	}
	return -1
}
