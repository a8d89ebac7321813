package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ExecRequest is the body for POST /api/exec.
type ExecRequest struct {
	SQL string `json:"sql"`
}

// HandleExec executes a single SQL statement with no result processing.
// The statement text is trusted-operator input; the endpoint exists for
// schema changes and data maintenance, and sits behind token auth and the
// request body limit.
// POST /api/exec
// Body: {"sql": "..."}
func (h *Handler) HandleExec(w http.ResponseWriter, r *http.Request) {
	var req ExecRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, http.StatusRequestEntityTooLarge, ErrCodeRequestTooLarge, "request body too large")
			return
		}
		WriteError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	if req.SQL == "" {
		WriteErrorWithHint(w, http.StatusBadRequest, ErrCodeInvalidRequest,
			"missing sql field", `body must be {"sql": "<statement>"}`)
		return
	}

	start := time.Now()
	err := h.store.Exec(r.Context(), req.SQL)
	recordDBOperation("exec", err, time.Since(start))

	if err != nil {
		h.writeStoreError(w, "exec", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Response write errors are unrecoverable
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}
