package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 401, Detail: "Incorrect username or password"}
	want := "HTTP 401: Incorrect username or password"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestAPIError_Error_NoDetail(t *testing.T) {
	err := &APIError{StatusCode: 502}
	if got := err.Error(); got != "HTTP 502" {
		t.Errorf("Error() = %q, want %q", got, "HTTP 502")
	}
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api error with detail", &APIError{StatusCode: 400, Detail: "Only CSV files are allowed"}, "Only CSV files are allowed"},
		{"api error without detail", &APIError{StatusCode: 500}, "fallback"},
		{"wrapped api error", fmt.Errorf("upload: %w", &APIError{StatusCode: 403, Detail: "Admin access required"}), "Admin access required"},
		{"transport error", errors.New("connection refused"), "fallback"},
		{"nil error", nil, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorDetail(tt.err, "fallback"); got != tt.want {
				t.Errorf("ErrorDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}
