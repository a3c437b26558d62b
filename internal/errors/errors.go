package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"os"

	"github.com/julianstephens/chairside/internal/logger"
)

var (
	// ErrUnauthenticated is returned when there is no usable session token
	ErrUnauthenticated = stderrors.New("not logged in, run 'chairside login' first")
	// ErrUnauthorized is returned when a valid session lacks a required role
	ErrUnauthorized = stderrors.New("unauthorized: your account does not have access to this page")
	// ErrNetwork wraps transport failures talking to the backend
	ErrNetwork = stderrors.New("network error")
)

// ValidationError is a local, user-correctable input error. Requests that
// fail validation are never sent.
type ValidationError struct {
	Field   string
	Message string
	Example string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Example != "" {
		msg = fmt.Sprintf("%s (e.g. %s)", msg, e.Example)
	}
	return msg
}

// NewValidation creates a ValidationError without an example
func NewValidation(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return stderrors.As(err, &ve)
}

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Path != "" {
		return fmt.Sprintf("server returned %d for %s: %s", e.Status, e.Path, msg)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, msg)
}

// Unwrap maps 401 responses onto ErrUnauthenticated and 403 onto
// ErrUnauthorized so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
