package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/litekeeper/litekeeper/internal/metrics"
	"github.com/litekeeper/litekeeper/internal/sqliteutil"
)

// HandleCountRows returns the row count for a table
// GET /api/tables/{table}/count
func (h *Handler) HandleCountRows(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	start := time.Now()
	count, err := h.store.CountRows(r.Context(), table)
	recordDBOperation("count_rows", err, time.Since(start))

	if err != nil {
		h.writeStoreError(w, "count rows", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]any{
		"table": table,
		"count": count,
	})
}

// HandleMaxIntValue returns the maximum integer value in a column.
// An empty table reports max 0, mirroring the façade's sentinel-zero
// contract.
// GET /api/tables/{table}/columns/{column}/max
func (h *Handler) HandleMaxIntValue(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	column := chi.URLParam(r, "column")

	start := time.Now()
	max, err := h.store.MaxIntValue(r.Context(), table, column)
	recordDBOperation("max_int_value", err, time.Since(start))

	if err != nil {
		h.writeStoreError(w, "max int value", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]any{
		"table":  table,
		"column": column,
		"max":    max,
	})
}

// HandleClearTable deletes all rows from a table
// DELETE /api/tables/{table}/rows
func (h *Handler) HandleClearTable(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	start := time.Now()
	err := h.store.ClearTable(r.Context(), table)
	recordDBOperation("clear_table", err, time.Since(start))

	if err != nil {
		h.writeStoreError(w, "clear table", err)
		return
	}

	h.logger.Info("table cleared", "table", table)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]any{
		"table":   table,
		"cleared": true,
	})
}

// writeStoreError maps façade errors onto API status codes.
func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, sqliteutil.ErrInvalidIdentifier):
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, sqliteutil.ErrInvalidHandle):
		WriteError(w, http.StatusServiceUnavailable, ErrCodeDatabaseUnavailable, "database handle is not usable")
	default:
		h.logger.Error("admin operation failed", "operation", op, "error", err)
		WriteError(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
	}
}

// recordDBOperation records metrics for a façade call.
func recordDBOperation(op string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordDBOperation(op, status, elapsed.Seconds())
}
