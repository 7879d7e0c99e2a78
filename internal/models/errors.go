package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("requested resource not found")

// ErrNoLocationSource indicates that live location tracking is not configured,
// so location pings cannot be recorded.
var ErrNoLocationSource = errors.New("live location tracking is not enabled")

// InvalidArgumentError reports malformed or missing input. The message is
// human-readable and safe to return to clients as-is.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string { return e.Message }

func NewInvalidArgument(format string, args ...any) error {
	return &InvalidArgumentError{Message: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err carries an InvalidArgumentError
// anywhere in its chain.
func IsInvalidArgument(err error) bool {
	var ia *InvalidArgumentError
	return errors.As(err, &ia)
}
