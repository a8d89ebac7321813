package admin

import (
	"encoding/json"
	"net/http"
)

// Standard error codes for API responses.
const (
	// ErrCodeInvalidRequest indicates a malformed request body or identifier.
	ErrCodeInvalidRequest = "invalid_request"

	// ErrCodeInvalidCredentials indicates an invalid or missing admin token.
	ErrCodeInvalidCredentials = "invalid_credentials"

	// ErrCodeRequestTooLarge indicates the request body exceeded the configured limit.
	ErrCodeRequestTooLarge = "request_too_large"

	// ErrCodeDatabaseUnavailable indicates the database handle is not usable.
	ErrCodeDatabaseUnavailable = "database_unavailable"

	// ErrCodeInternalError indicates a server error.
	ErrCodeInternalError = "internal_error"
)

// APIError is the standard error response format for JSON APIs.
type APIError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// WriteError writes a JSON error response with the given status code, error code, and message.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteErrorWithHint(w, status, code, message, "")
}

// WriteErrorWithHint writes a JSON error response with an optional hint for resolving the error.
func WriteErrorWithHint(w http.ResponseWriter, status int, code, message, hint string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := APIError{
		Error:   code,
		Message: message,
		Hint:    hint,
	}
	// Encoding errors are not critical since headers are already sent
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		_ = err
	}
}
