package models

import (
	"errors"
	"fmt"
)

// Failure classes of a backend call.
var (
	// ErrTransport is wrapped when the request never completed.
	ErrTransport = errors.New("bank backend unreachable")
	// ErrMalformedResponse is wrapped when a successful response could not be decoded.
	ErrMalformedResponse = errors.New("malformed backend response")
	// ErrUnauthorized is wrapped when the backend rejected the credential.
	ErrUnauthorized = errors.New("credential rejected by backend")
)

// APIError is a request the backend answered with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bank backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("bank backend returned status %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Unwrap() error {
	if e.StatusCode == 401 {
		return ErrUnauthorized
	}
	return nil
}

// APIErrorMessage returns the backend message carried by err, if any.
func APIErrorMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
