// Package testenv provides a reusable test environment for exercising the
// litekeeper admin API against a real database file. Each environment gets
// its own temporary database and an in-process HTTP server, with cleanup
// registered on the test.
package testenv

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/litekeeper/litekeeper/internal/admin"
	"github.com/litekeeper/litekeeper/internal/auth"
	"github.com/litekeeper/litekeeper/internal/sqliteutil"
)

// AdminToken is the token every test environment accepts on /api routes.
const AdminToken = "e2e-test-token"

// tokenHashCache caches the bcrypt hash of AdminToken across the suite.
// Hashing is deliberately slow, so doing it once keeps test startup fast.
var (
	tokenHash     string
	tokenHashOnce sync.Once
)

// TestEnv is a running litekeeper admin API over a fresh database file.
type TestEnv struct {
	// Server is the in-process admin API server.
	Server *httptest.Server
	// DB is the underlying database handle, for direct seeding and checks.
	DB *sqliteutil.DB
	// DBPath is the database file location inside the test's temp dir.
	DBPath string
}

// Setup creates a database file, wires the admin handler over it, and starts
// an HTTP server. Everything is torn down when the test completes.
func Setup(t *testing.T) *TestEnv {
	t.Helper()

	tokenHashOnce.Do(func() {
		var err error
		tokenHash, err = auth.HashToken(AdminToken)
		if err != nil {
			t.Fatalf("hashing admin token: %v", err)
		}
	})

	logger := slog.New(slog.DiscardHandler)
	levelVar := new(slog.LevelVar)

	path := filepath.Join(t.TempDir(), "testenv.db")
	db, err := sqliteutil.Create(path, logger)
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}

	handler := admin.NewHandler(db, tokenHash, levelVar, logger)
	server := httptest.NewServer(handler.NewRouter(1 << 20))

	env := &TestEnv{
		Server: server,
		DB:     db,
		DBPath: path,
	}

	t.Cleanup(func() {
		server.Close()
		if err := db.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	return env
}

// Request performs an authenticated request against the admin API and
// returns the response. The caller owns the response body.
func (e *TestEnv) Request(t *testing.T, method, path string, body []byte) *http.Response {
	t.Helper()
	return e.doRequest(t, method, path, body, AdminToken)
}

// UnauthenticatedRequest performs a request without an AccessKey header.
func (e *TestEnv) UnauthenticatedRequest(t *testing.T, method, path string) *http.Response {
	t.Helper()
	return e.doRequest(t, method, path, nil, "")
}

func (e *TestEnv) doRequest(t *testing.T, method, path string, body []byte, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("AccessKey", token)
	}

	resp, err := e.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// SeedTable creates a table with an INTEGER id column and a TEXT token
// column, then inserts the given (id, token) pairs.
func (e *TestEnv) SeedTable(t *testing.T, table string, rows map[int64]string) {
	t.Helper()

	ctx := context.Background()
	if err := e.DB.Exec(ctx, "CREATE TABLE "+table+" (id INTEGER PRIMARY KEY, token TEXT NOT NULL);"); err != nil {
		t.Fatalf("creating table %s: %v", table, err)
	}
	for id, token := range rows {
		stmt := "INSERT INTO " + table + " (id, token) VALUES (" +
			strconv.FormatInt(id, 10) + ", '" + token + "');"
		if err := e.DB.Exec(ctx, stmt); err != nil {
			t.Fatalf("seeding table %s: %v", table, err)
		}
	}
}
