package layers

import (
	"errors"
	"fmt"
)

var (
	// ErrNotResolved is matched by every *NotResolvedError.
	ErrNotResolved = errors.New("layers: not resolved")
	// ErrTypeMismatch indicates a resolved value could not be converted to the
	// requested Go type.
	ErrTypeMismatch = errors.New("layers: type mismatch")
)

// NotResolvedError is returned when no layer holds a value satisfying the
// search.
type NotResolvedError struct {
	Key  string
	Mode Mode
	// Cause is the last producer error met during the search, if any.
	Cause error
}

func (e *NotResolvedError) Error() string {
	msg := fmt.Sprintf("layers: service [%s] was not resolved (mode %s)", e.Key, e.Mode)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *NotResolvedError) Unwrap() error { return e.Cause }

// Is makes errors.Is(err, ErrNotResolved) hold.
func (e *NotResolvedError) Is(target error) bool {
	return target == ErrNotResolved
}
