package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport marks failures where no usable HTTP response was received
var ErrTransport = errors.New("backend request failed")

// APIError is returned for non-2xx responses
type APIError struct {
	Status  int
	Message string // server-provided "error" field, empty when absent
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// ErrorMessage returns the server-provided message carried by err, or
// fallback when err has none
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsConflict reports whether err is a 409 response
func IsConflict(err error) bool {
	return HasStatus(err, http.StatusConflict)
}

// HasStatus reports whether err is an APIError with the given status
func HasStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
