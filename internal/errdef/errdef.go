// Package errdef defines the two error classes of stack synthesis.
//
// Configuration errors are raised synchronously while declaring resources or
// validating the config file; nothing is handed to the resolver when one
// occurs. Resolution errors belong to the resolver side, for example an
// output that references an attribute the resolver never reported.
package errdef

import (
	"errors"
	"fmt"
)

// NewConfiguration creates an error representing invalid input to a declaration.
func NewConfiguration(format string, a ...any) error {
	return configuration{fmt.Errorf(format, a...)}
}

type configuration struct{ error }

func (e configuration) Unwrap() error { return e.error }

// IsConfiguration returns true if err is, or wraps, a configuration error.
func IsConfiguration(err error) bool {
	var e configuration
	return errors.As(err, &e)
}

// NewResolution creates an error representing a failure to resolve a value
// that only the external resolver can provide.
func NewResolution(format string, a ...any) error {
	return resolution{fmt.Errorf(format, a...)}
}

type resolution struct{ error }

func (e resolution) Unwrap() error { return e.error }

// IsResolution returns true if err is, or wraps, a resolution error.
func IsResolution(err error) bool {
	var e resolution
	return errors.As(err, &e)
}
