package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter
func (r *statusRecorder) WriteHeader(code int) {
	if !r.written {
		r.statusCode = code
		r.written = true
		r.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures WriteHeader is called before writing body
func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.written {
		r.statusCode = http.StatusOK
		r.written = true
	}
	return r.ResponseWriter.Write(b)
}

// Middleware returns an HTTP middleware that records Prometheus metrics for each request.
// It tracks request count and latency by method, route pattern, and status code.
// Panics are recorded as 500 before re-panicking so the Recoverer above still fires.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		startTime := time.Now()

		defer func() {
			duration := time.Since(startTime).Seconds()

			statusCode := recorder.statusCode
			if rec := recover(); rec != nil {
				statusCode = http.StatusInternalServerError
				defer panic(rec)
			}

			// The chi route pattern keeps label cardinality bounded:
			// "/api/tables/{table}/count" rather than one label per table.
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}

			status := fmt.Sprintf("%d", statusCode)
			RecordRequest(r.Method, path, status)
			RecordRequestDuration(r.Method, path, status, duration)
		}()

		next.ServeHTTP(recorder, r)
	})
}
