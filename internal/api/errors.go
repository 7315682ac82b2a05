package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Message    string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// Permanent reports whether retrying the same request is pointless.
// Client errors are permanent; 5xx and 503-style overload are not.
func (e *APIError) Permanent() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

// newAPIError extracts the backend's error message when the body carries
// one. The backend reports failures as {"error": "...", "detail": "..."}.
func newAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}

	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Error
		if payload.Detail != "" {
			apiErr.Message = fmt.Sprintf("%s: %s", payload.Error, payload.Detail)
		}
	}
	return apiErr
}
