package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// readyTimeout bounds the database probe on the readiness endpoint.
const readyTimeout = 5 * time.Second

// HandleHealth returns basic health status
// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// HandleReady checks database connectivity
// GET /ready
// Returns 200 if the database is accessible, 503 otherwise
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.store == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		//nolint:errcheck // Response write errors are unrecoverable
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "error",
			"database": "not configured",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn("readiness probe failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		//nolint:errcheck // Response write errors are unrecoverable
		json.NewEncoder(w).Encode(map[string]any{
			"status":   "error",
			"database": "unavailable",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"database": "connected",
	})
}
