package googlebooks

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no volume exists at the requested index
	// or for the requested volume ID.
	ErrNotFound = errors.New("volume not found")

	// ErrInvalidArgument is returned when a caller violates a call contract
	// (negative index, bad language code, unknown option value).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidData is returned when the provider payload does not look
	// like a volume resource.
	ErrInvalidData = errors.New("malformed volume data")
)

// StatusError is returned when the Google Books API responds with a
// non-2xx status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("google books: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("google books: unexpected status %d: %s", e.StatusCode, e.Body)
}
