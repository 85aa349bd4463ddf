package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the backend. Detail carries the
// backend's human-readable message when one was provided.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error (%d)", e.StatusCode)
}

// newAPIError builds an APIError from a response body. The backend wraps
// messages as {"detail": "..."}; anything else is used verbatim.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{StatusCode: status, Detail: payload.Detail}
	}
	return &APIError{StatusCode: status, Detail: strings.TrimSpace(string(body))}
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}
