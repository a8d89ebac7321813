package admin

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/litekeeper/litekeeper/internal/metrics"
	"github.com/litekeeper/litekeeper/internal/middleware"
)

// execLogAllowlist names the JSON body fields safe to log at debug level.
var execLogAllowlist = []string{"sql", "level", "table", "column", "count", "max", "status", "cleared", "error", "message", "hint"}

// NewRouter creates the admin router. maxExecBodyBytes bounds the body of
// the exec endpoint.
func (h *Handler) NewRouter(maxExecBodyBytes int64) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.HTTPLogging(h.logger, execLogAllowlist))

	// Public endpoints (no auth)
	r.Get("/health", h.HandleHealth)
	r.Get("/ready", h.HandleReady)

	// Admin API (token auth)
	r.Route("/api", func(r chi.Router) {
		r.Use(h.TokenAuthMiddleware)

		r.Get("/tables/{table}/count", h.HandleCountRows)
		r.Get("/tables/{table}/columns/{column}/max", h.HandleMaxIntValue)
		r.Delete("/tables/{table}/rows", h.HandleClearTable)

		r.With(middleware.MaxBodySize(maxExecBodyBytes)).Post("/exec", h.HandleExec)

		r.Post("/loglevel", h.HandleSetLogLevel)
	})

	return r
}
