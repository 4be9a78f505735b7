package api

import (
	"errors"
	"fmt"
)

// AuthError indicates the access token is invalid or expired and the silent
// refresh failed. Stored credentials have been cleared by the time the
// caller sees this; the session must re-authenticate.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// RequestError wraps a transport failure or a non-401 server error. The
// request is not retried; state elsewhere is unchanged.
type RequestError struct {
	Method string
	Path   string

	// Status is the HTTP status code, or 0 for a transport failure.
	Status int

	Err error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"request failed: %s %s: %v", e.Method, e.Path, e.Err,
		)
	}
	return fmt.Sprintf(
		"request failed: %s %s: status %d", e.Method, e.Path, e.Status,
	)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
