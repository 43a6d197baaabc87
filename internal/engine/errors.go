package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-easter/internal/config"
)

// ErrInvalidInput is matched by every *InvalidInputError through errors.Is.
var ErrInvalidInput = errors.New(config.ErrInvalidInput)

// ErrNoYears is returned by Render when the configuration lists no years.
var ErrNoYears = errors.New(config.ErrNoYears)

// InvalidInputError reports a user-supplied value that cannot be used.
// It is a usage error: callers surface it and exit, never retry.
type InvalidInputError struct {
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %q: %s", config.ErrInvalidInput, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) hold.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(value, reason string) error {
	return &InvalidInputError{Value: value, Reason: reason}
}
