//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/litekeeper/litekeeper/tests/testenv"
)

// execSQL runs a statement through POST /api/exec and requires success.
func execSQL(t *testing.T, env *testenv.TestEnv, sql string) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"sql": sql})
	require.NoError(t, err)

	resp := env.Request(t, http.MethodPost, "/api/exec", body)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "exec %q", sql)
}

// countRows reads the row count for a table through the API.
func countRows(t *testing.T, env *testenv.TestEnv, table string) int64 {
	t.Helper()

	resp := env.Request(t, http.MethodGet, "/api/tables/"+table+"/count", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Table string `json:"table"`
		Count int64  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, table, body.Table)
	return body.Count
}

// decodeAPIError decodes the standard error envelope.
func decodeAPIError(t *testing.T, resp *http.Response) (errCode, message string) {
	t.Helper()

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error, body.Message
}
