package admin

import (
	"net/http"
	"strings"

	"github.com/litekeeper/litekeeper/internal/auth"
	"github.com/litekeeper/litekeeper/internal/metrics"
)

// TokenAuthMiddleware validates the AccessKey header against the configured
// admin token hash. Every /api route sits behind it; health and readiness
// endpoints stay public.
func (h *Handler) TokenAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("AccessKey"))
		if token == "" {
			metrics.RecordAuthFailure("missing_token")
			WriteError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "missing admin token")
			return
		}

		if err := auth.VerifyToken(token, h.tokenHash); err != nil {
			metrics.RecordAuthFailure("invalid_token")
			h.logger.Warn("invalid admin token attempt", "remote_addr", r.RemoteAddr)
			WriteError(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid admin token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
