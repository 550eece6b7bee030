package persist

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a named object does not exist.
var ErrNotFound = errors.New("object not found")

// MalformedError reports an object that exists but cannot be used.
type MalformedError struct {
	Path string // Path of the offending file, relative to the store root
	Err  error  // Decode or validation failure
}

// Error implements the error interface
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a missing-object error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformed checks if an error is a malformed-object error.
func IsMalformed(err error) bool {
	var malformed *MalformedError
	return errors.As(err, &malformed)
}
