package model

import (
	"errors"
	"fmt"
)

// APIError is an error reported by the CSV Browser server. Detail
// carries the server's human-readable message when one was provided.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
}

// ErrorDetail extracts the server-supplied message from err, falling
// back to the given message for transport failures and errors without
// detail.
func ErrorDetail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
