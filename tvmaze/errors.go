package tvmaze

import (
	"errors"
	"fmt"
)

// Common errors returned by the TVMaze client.
var (
	// ErrTransport indicates a request that could not complete even after
	// the configured retries (network failure or non-404 HTTP error).
	ErrTransport = errors.New("tvmaze: request failed")

	// ErrDecode indicates a response body that was not valid JSON.
	ErrDecode = errors.New("tvmaze: invalid JSON in response")
)

// StatusError is a transport failure tied to an HTTP status code.
type StatusError struct {
	StatusCode int
	URL        string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("tvmaze: unexpected status %d from %s", e.StatusCode, e.URL)
}

// Unwrap makes errors.Is(err, ErrTransport) hold for status failures.
func (e *StatusError) Unwrap() error {
	return ErrTransport
}

// IsServerError reports whether the status is in the 5xx range.
func (e *StatusError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode <= 599
}
