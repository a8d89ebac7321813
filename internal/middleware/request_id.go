// Package middleware provides HTTP middleware components for the admin API.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const requestIDKey contextKey = "request-id"

// maxRequestIDLen caps inbound X-Request-ID header values.
const maxRequestIDLen = 128

// RequestID is a middleware that attaches a unique request ID to each request.
// An incoming X-Request-ID header is honored only if it passes validation
// (length-capped, alphanumeric plus dash/underscore/period); otherwise a new
// UUID v4 is generated. The ID is stored in the request context and echoed in
// the X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || !isValidRequestID(id) {
			id = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set("X-Request-ID", id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isValidRequestID(id string) bool {
	if len(id) > maxRequestIDLen {
		return false
	}
	for _, c := range id {
		isAlphanumeric := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlphanumeric && c != '-' && c != '_' && c != '.' {
			return false
		}
	}
	return true
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if no request ID is present.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
