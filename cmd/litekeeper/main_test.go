package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/litekeeper/litekeeper/internal/config"
	"github.com/litekeeper/litekeeper/internal/sqliteutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestOpenDatabaseCreatesWhenConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.db")
	cfg := &config.Config{DatabasePath: path, DatabaseCreate: true}

	db, err := openDatabase(cfg, testLogger())
	if err != nil {
		t.Fatalf("openDatabase: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected database file at %s: %v", path, err)
	}
}

func TestOpenDatabaseMissingWithoutCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.db")
	cfg := &config.Config{DatabasePath: path, DatabaseCreate: false}

	_, err := openDatabase(cfg, testLogger())
	if err == nil {
		t.Fatal("expected error for missing database file")
	}
	if !errors.Is(err, sqliteutil.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenDatabaseExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.db")

	db, err := sqliteutil.Create(path, testLogger())
	if err != nil {
		t.Fatalf("create database: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close database: %v", err)
	}

	cfg := &config.Config{DatabasePath: path, DatabaseCreate: false}
	reopened, err := openDatabase(cfg, testLogger())
	if err != nil {
		t.Fatalf("openDatabase: %v", err)
	}
	defer reopened.Close()

	if reopened.Path() != path {
		t.Errorf("expected path %s, got %s", path, reopened.Path())
	}
}
