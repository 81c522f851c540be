package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrMappingNotFound = fmt.Errorf("%w: mapping", ErrNotFound)

	// Input errors
	ErrEmptyGrid   = errors.New("grid has no rows")
	ErrNoColumns   = errors.New("grid has no columns")
	ErrUnsupported = errors.New("unsupported file type")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyGrid) ||
		errors.Is(err, ErrNoColumns) ||
		errors.Is(err, ErrUnsupported)
}
