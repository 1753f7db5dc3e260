package lifecycle

import (
	"context"

	"github.com/scantree/scantree/internal/nodepath"
)

// Store is the lifecycle tag interface: the only coordination channel
// between the materializer, out-of-process workers and supervisors.
type Store interface {
	// Init creates a node's record at PENDING. It is idempotent: an
	// existing record, whatever its state, is left untouched, which is
	// what makes forced re-materialization safe.
	Init(ctx context.Context, node nodepath.Path) error

	// Read returns a node's current record.
	Read(ctx context.Context, node nodepath.Path) (Record, error)

	// Transition atomically moves a node from one state to another.
	// Exactly one of two racing callers commits; the other receives an
	// error matching ErrTransitionRejected. The committed record is
	// returned on success.
	Transition(ctx context.Context, node nodepath.Path, from, to Status, log string) (Record, error)

	// Snapshot re-derives the state of the whole tree from storage. It is
	// read-only and never fails because of an individual damaged record.
	Snapshot(ctx context.Context) (map[string]Record, error)
}
