package api

import (
	"errors"
	"fmt"
)

// APIError is returned when the service answers with a non-2xx status.
// Message holds the response body as text, or "Request failed" when the body
// could not be read.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return e.Message
}

// StatusOf reports the HTTP status carried by err, or 0 when err is not an
// *APIError (transport and decode failures have no status).
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the human-readable message of err. For an *APIError that
// is the response text, which may be empty.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
