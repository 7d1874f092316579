package problem

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every input rejection.
	ErrValidation = errors.New("problem: invalid input")

	// ErrUnknownKind indicates a kind outside Kinds().
	ErrUnknownKind = errors.New("problem: unknown input kind")
)

// ValidationError names the offending field of rejected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
