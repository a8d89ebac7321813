//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/litekeeper/litekeeper/tests/testenv"
)

// TestE2E_HealthCheck verifies the server answers health checks without auth.
func TestE2E_HealthCheck(t *testing.T) {
	env := testenv.Setup(t)

	resp, err := http.Get(env.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

// TestE2E_Readiness verifies /ready reflects a live database handle.
func TestE2E_Readiness(t *testing.T) {
	env := testenv.Setup(t)

	resp, err := http.Get(env.Server.URL + "/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestE2E_AdminRoundTrip drives the full admin flow over HTTP: create a
// table, insert rows, count them, read the max id, clear, and count again.
func TestE2E_AdminRoundTrip(t *testing.T) {
	env := testenv.Setup(t)

	execSQL(t, env, "CREATE TABLE alerts (id INTEGER PRIMARY KEY, scheduled_time INTEGER NOT NULL);")
	execSQL(t, env, "INSERT INTO alerts (id, scheduled_time) VALUES (1, 100);")
	execSQL(t, env, "INSERT INTO alerts (id, scheduled_time) VALUES (2, 300);")
	execSQL(t, env, "INSERT INTO alerts (id, scheduled_time) VALUES (7, 200);")

	require.Equal(t, int64(3), countRows(t, env, "alerts"))

	resp := env.Request(t, http.MethodGet, "/api/tables/alerts/columns/id/max", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var maxBody struct {
		Table  string `json:"table"`
		Column string `json:"column"`
		Max    int64  `json:"max"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&maxBody))
	require.Equal(t, "alerts", maxBody.Table)
	require.Equal(t, "id", maxBody.Column)
	require.Equal(t, int64(7), maxBody.Max)

	clearResp := env.Request(t, http.MethodDelete, "/api/tables/alerts/rows", nil)
	defer clearResp.Body.Close()
	require.Equal(t, http.StatusOK, clearResp.StatusCode)

	require.Equal(t, int64(0), countRows(t, env, "alerts"))
}

// TestE2E_MaxOnEmptyTable verifies the zero sentinel for an empty table.
func TestE2E_MaxOnEmptyTable(t *testing.T) {
	env := testenv.Setup(t)
	env.SeedTable(t, "alerts", nil)

	resp := env.Request(t, http.MethodGet, "/api/tables/alerts/columns/id/max", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Max int64 `json:"max"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, int64(0), body.Max)
}

// TestE2E_SetLogLevel verifies the runtime log level endpoint.
func TestE2E_SetLogLevel(t *testing.T) {
	env := testenv.Setup(t)

	resp := env.Request(t, http.MethodPost, "/api/loglevel", []byte(`{"level":"debug"}`))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	bad := env.Request(t, http.MethodPost, "/api/loglevel", []byte(`{"level":"loud"}`))
	defer bad.Body.Close()
	require.Equal(t, http.StatusBadRequest, bad.StatusCode)
}
