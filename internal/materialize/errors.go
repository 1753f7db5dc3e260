package materialize

import (
	"errors"
	"fmt"
)

// ErrConflict is the sentinel for attempting to materialize into a target
// that already holds a campaign, without the force flag.
var ErrConflict = errors.New("target already materialized")

// ConflictError names the occupied target directory.
type ConflictError struct {
	Root string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("target already materialized: %s (re-run with force to overwrite configs and scripts)", e.Root)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
