//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/litekeeper/litekeeper/tests/testenv"
)

// TestE2E_MissingToken verifies /api routes reject requests with no AccessKey.
func TestE2E_MissingToken(t *testing.T) {
	env := testenv.Setup(t)

	resp := env.UnauthenticatedRequest(t, http.MethodGet, "/api/tables/alerts/count")
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	code, _ := decodeAPIError(t, resp)
	require.Equal(t, "invalid_credentials", code)
}

// TestE2E_WrongToken verifies a bad token is rejected before any database work.
func TestE2E_WrongToken(t *testing.T) {
	env := testenv.Setup(t)

	req, err := http.NewRequest(http.MethodGet, env.Server.URL+"/api/tables/alerts/count", nil)
	require.NoError(t, err)
	req.Header.Set("AccessKey", "not-the-token")

	resp, err := env.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestE2E_PublicEndpointsNeedNoToken verifies health and readiness stay open.
func TestE2E_PublicEndpointsNeedNoToken(t *testing.T) {
	env := testenv.Setup(t)

	for _, path := range []string{"/health", "/ready"} {
		resp := env.UnauthenticatedRequest(t, http.MethodGet, path)
		require.Equal(t, http.StatusOK, resp.StatusCode, "GET %s", path)
		resp.Body.Close()
	}
}
