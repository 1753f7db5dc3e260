package lifecycle

import (
	"errors"
	"fmt"
)

// ErrTransitionRejected is the sentinel for out-of-order or lost-race
// transitions. The concrete *TransitionError carries both states so the
// calling worker can decide on recovery.
var ErrTransitionRejected = errors.New("lifecycle transition rejected")

// ErrNotInitialized is returned when a node has no status record, i.e. it
// was never materialized (or the record was removed by campaign cleanup).
var ErrNotInitialized = errors.New("node status record not initialized")

// TransitionError reports a transition that was not committed.
type TransitionError struct {
	Node   string
	From   Status
	To     Status
	Actual Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("lifecycle transition rejected: node %q: attempted %s->%s, record is %s",
		e.Node, e.From, e.To, e.Actual)
}

func (e *TransitionError) Unwrap() error { return ErrTransitionRejected }
