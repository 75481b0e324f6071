// services/errors.go - Error taxonomy shared by the engine services
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing challenges, achievements and check-in codes.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers duplicate unique-key actions, e.g. re-checking-in a
	// location that was already found.
	ErrConflict = errors.New("conflict")
	// ErrValidation covers malformed or missing input, rejected before any write.
	ErrValidation = errors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with detail.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Conflictf wraps ErrConflict with detail.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// Validationf wraps ErrValidation with detail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
