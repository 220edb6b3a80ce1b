package sports

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAuthFailure is returned for any credential mismatch. It never says
	// which of username or password was wrong.
	ErrAuthFailure = errors.New("invalid username or password")
	// ErrForbidden is returned when a limited session asks for an admin action.
	ErrForbidden = errors.New("admin access required")
	// ErrValidation is matched by every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports malformed or missing input. Nothing is mutated
// when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
