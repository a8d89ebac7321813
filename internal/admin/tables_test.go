package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/litekeeper/litekeeper/internal/sqliteutil"
)

// tableRequest routes a request through a chi router so URL params resolve.
func tableRequest(h *Handler, method, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/tables/{table}/count", h.HandleCountRows)
	r.Get("/api/tables/{table}/columns/{column}/max", h.HandleMaxIntValue)
	r.Delete("/api/tables/{table}/rows", h.HandleClearTable)

	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCountRows(t *testing.T) {
	h := testHandler(&mockStore{count: 42})

	w := tableRequest(h, "GET", "/api/tables/alerts/count")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Table string `json:"table"`
		Count int64  `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Table != "alerts" || resp.Count != 42 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleCountRowsInvalidIdentifier(t *testing.T) {
	h := testHandler(&mockStore{countErr: sqliteutil.ErrInvalidIdentifier})

	w := tableRequest(h, "GET", "/api/tables/bad-name/count")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp APIError
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != ErrCodeInvalidRequest {
		t.Errorf("expected error code %q, got %q", ErrCodeInvalidRequest, resp.Error)
	}
}

func TestHandleCountRowsStoreFailure(t *testing.T) {
	h := testHandler(&mockStore{countErr: sqliteutil.ErrQueryFailed})

	w := tableRequest(h, "GET", "/api/tables/alerts/count")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandleCountRowsHandleUnavailable(t *testing.T) {
	h := testHandler(&mockStore{countErr: sqliteutil.ErrInvalidHandle})

	w := tableRequest(h, "GET", "/api/tables/alerts/count")

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestHandleMaxIntValue(t *testing.T) {
	h := testHandler(&mockStore{max: 99})

	w := tableRequest(h, "GET", "/api/tables/alerts/columns/id/max")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Table  string `json:"table"`
		Column string `json:"column"`
		Max    int64  `json:"max"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Table != "alerts" || resp.Column != "id" || resp.Max != 99 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleMaxIntValueEmptyTable(t *testing.T) {
	// Sentinel zero from an empty table is a success, not an error.
	h := testHandler(&mockStore{max: 0})

	w := tableRequest(h, "GET", "/api/tables/alerts/columns/id/max")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty table, got %d", w.Code)
	}
}

func TestHandleClearTable(t *testing.T) {
	h := testHandler(&mockStore{})

	w := tableRequest(h, "DELETE", "/api/tables/alerts/rows")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Table   string `json:"table"`
		Cleared bool   `json:"cleared"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Table != "alerts" || !resp.Cleared {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandleClearTableFailure(t *testing.T) {
	h := testHandler(&mockStore{clearErr: sqliteutil.ErrClearFailed})

	w := tableRequest(h, "DELETE", "/api/tables/alerts/rows")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
