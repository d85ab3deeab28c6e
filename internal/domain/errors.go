package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the single failure kind produced by the calculators.
// Every validation failure wraps it, so callers can test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes an out-of-range or malformed parameter.
type InputError struct {
	Field   string
	Message string
}

// NewInputError creates an InputError for field with a formatted message
func NewInputError(field, format string, args ...any) *InputError {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
