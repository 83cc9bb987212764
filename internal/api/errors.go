// internal/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for comparison using errors.Is()
var (
	// ErrNotAuthenticated is returned when a call requiring a session is
	// made without a stored access token.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Error represents a non-2xx response from the storefront API. Message
// carries the server-supplied error string verbatim so pages can render
// it in an inline banner.
type Error struct {
	StatusCode int
	Message    string
	RequestID  string
}

// Error returns the string representation of the error
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// IsNotFound reports whether err is an API error with status 404
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error with status 401
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsConflict reports whether err is an API error with status 409
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// ValidationError is a local validation failure raised by a domain service
// before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the string representation of the error
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
