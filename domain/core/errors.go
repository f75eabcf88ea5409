package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)
	ErrUnknownStatistic = fmt.Errorf("%w: statistic", ErrNotFound)

	// Input errors
	ErrInvalidKey     = errors.New("key not on keypad")
	ErrInvalidParam   = errors.New("invalid calculator parameter")
	ErrNoNumericData  = errors.New("no numeric data in source")
	ErrUnsupportedExt = errors.New("unsupported data source type")
	ErrPathNotFound   = errors.New("json path not found")
)

// Error constructors with context

// NewNotFoundError reports a missing resource, e.g. an expired calculator
// session.
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewKeyError(key string, kind string) error {
	return fmt.Errorf("%w: %q for %s", ErrInvalidKey, key, kind)
}

func NewParamError(name string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParam, name, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidKey) ||
		errors.Is(err, ErrInvalidParam) ||
		errors.Is(err, ErrNoNumericData) ||
		errors.Is(err, ErrUnsupportedExt) ||
		errors.Is(err, ErrPathNotFound)
}
