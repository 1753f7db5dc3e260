package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidSpec is the sentinel for all grid specification failures.
// Callers match it with errors.Is; the concrete *SpecError names the axis.
var ErrInvalidSpec = errors.New("invalid grid spec")

// SpecError reports a malformed axis specification.
type SpecError struct {
	Axis string
	Msg  string
}

func (e *SpecError) Error() string {
	if e.Axis == "" {
		return fmt.Sprintf("invalid grid spec: %s", e.Msg)
	}
	return fmt.Sprintf("invalid grid spec: axis %q: %s", e.Axis, e.Msg)
}

func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

func specErrorf(axis, format string, args ...any) error {
	return &SpecError{Axis: axis, Msg: fmt.Sprintf(format, args...)}
}
