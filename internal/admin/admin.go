// Package admin provides the administration HTTP API over a SQLite database:
// health probes, table introspection (row counts, max values), table clearing,
// and raw statement execution for trusted operators.
package admin

import (
	"context"
	"log/slog"
)

// Store is the database façade consumed by the admin handlers.
// *sqliteutil.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sqlText string) error
	CountRows(ctx context.Context, table string) (int64, error)
	MaxIntValue(ctx context.Context, table, column string) (int64, error)
	ClearTable(ctx context.Context, table string) error
	Close() error
}

// Handler provides admin endpoints.
type Handler struct {
	store     Store
	logger    *slog.Logger
	logLevel  *slog.LevelVar
	tokenHash string
}

// NewHandler creates an admin handler. tokenHash is the bcrypt hash the
// AccessKey header is verified against.
func NewHandler(store Store, tokenHash string, logLevel *slog.LevelVar, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if logLevel == nil {
		logLevel = new(slog.LevelVar)
	}

	return &Handler{
		store:     store,
		logger:    logger,
		logLevel:  logLevel,
		tokenHash: tokenHash,
	}
}
