package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "validation error",
			err:      &ValidationError{Field: "slot", Message: "must match H:MMAM - H:MMPM", Example: "9:00AM - 10:00AM"},
			expected: "Error: slot: must match H:MMAM - H:MMPM (e.g. 9:00AM - 10:00AM)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "schedules")
	if got != "Error: failed to load schedules" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestIsValidation(t *testing.T) {
	ve := NewValidation("password", "new password and confirmation do not match")
	wrapped := fmt.Errorf("change password: %w", ve)

	if !IsValidation(wrapped) {
		t.Error("IsValidation() = false for wrapped ValidationError")
	}
	if IsValidation(stderrors.New("plain")) {
		t.Error("IsValidation() = true for plain error")
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	tests := []struct {
		status int
		target error
		want   bool
	}{
		{http.StatusUnauthorized, ErrUnauthenticated, true},
		{http.StatusForbidden, ErrUnauthorized, true},
		{http.StatusInternalServerError, ErrUnauthenticated, false},
		{http.StatusBadRequest, ErrUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := fmt.Errorf("request: %w", &APIError{Status: tt.status})
			if got := stderrors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, tt.target, got, tt.want)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: http.StatusBadGateway, Path: "/appointments"}
	want := "server returned 502 for /appointments: Bad Gateway"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
