package tree

import (
	"errors"
	"fmt"
)

// ErrIntegrity is the sentinel for structural build failures: key
// collisions with divergent content, missing base configuration, unknown
// parents. Matched with errors.Is.
var ErrIntegrity = errors.New("tree integrity error")

// IntegrityError reports a structural failure while building the tree.
type IntegrityError struct {
	Key string
	Msg string
}

func (e *IntegrityError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("tree integrity error: %s", e.Msg)
	}
	return fmt.Sprintf("tree integrity error: node %q: %s", e.Key, e.Msg)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

func integrityErrorf(key, format string, args ...any) error {
	return &IntegrityError{Key: key, Msg: fmt.Sprintf(format, args...)}
}
