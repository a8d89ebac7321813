package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/litekeeper/litekeeper/internal/logging"
)

// HTTPLogging creates a middleware that logs HTTP requests and responses at
// debug level. Credential headers are masked and JSON bodies are filtered
// through the allowlist (nil allowlist logs bodies unchanged). When the
// logger is above debug the middleware is a pass-through.
func HTTPLogging(logger *slog.Logger, allowlist []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !logger.Enabled(r.Context(), slog.LevelDebug) {
				next.ServeHTTP(w, r)
				return
			}

			logRequest(logger, r, allowlist)

			rec := &responseRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           new(bytes.Buffer),
			}

			start := time.Now()
			next.ServeHTTP(rec, r)
			duration := time.Since(start)

			logger.Debug("HTTP Response",
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"url", r.URL.Path,
				"status_code", rec.statusCode,
				"body", maskBody(rec.body.Bytes(), allowlist),
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// logRequest logs the incoming HTTP request with masked headers and body.
func logRequest(logger *slog.Logger, r *http.Request, allowlist []string) {
	var reqBody []byte
	if r.Body != nil {
		var err error
		reqBody, err = io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			return
		}
		// Restore body for the handler
		r.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	logger.Debug("HTTP Request",
		"request_id", GetRequestID(r.Context()),
		"method", r.Method,
		"url", r.URL.Path,
		"query_params", r.URL.RawQuery,
		"headers", maskHeaders(r.Header),
		"body", maskBody(reqBody, allowlist),
	)
}

// maskHeaders masks sensitive header values.
func maskHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for k, v := range headers {
		if len(v) > 0 {
			result[k] = logging.MaskHeader(k, v[0])
		}
	}
	return result
}

// maskBody masks sensitive data in request/response bodies.
func maskBody(body []byte, allowlist []string) string {
	if len(body) == 0 {
		return ""
	}
	if !utf8.Valid(body) {
		return logging.FormatBinaryData(body)
	}
	return string(logging.MaskJSONBody(body, allowlist))
}

// responseRecorder captures response details for logging.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
