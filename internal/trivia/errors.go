package trivia

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an empty result set or a missing resource.
	ErrNotFound = errors.New("resource not found")
	// ErrBadRequest marks malformed, missing or invalid client input.
	ErrBadRequest = errors.New("bad request")
)

// ValidationError describes why a request body was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrBadRequest }

// badRequest wraps a store failure that is reported to clients as 400.
func badRequest(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err)
}
