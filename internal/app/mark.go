package app

import (
	"context"
	"fmt"

	"github.com/scantree/scantree/internal/ctxlog"
	"github.com/scantree/scantree/internal/lifecycle"
	"github.com/scantree/scantree/internal/nodepath"
)

// markTransitions maps the worker-facing event names onto the state
// machine. The worker states what it believes; the store arbitrates.
var markTransitions = map[string][2]lifecycle.Status{
	"started":   {lifecycle.StatusPending, lifecycle.StatusStarted},
	"completed": {lifecycle.StatusStarted, lifecycle.StatusCompleted},
	"failed":    {lifecycle.StatusStarted, lifecycle.StatusFailed},
}

// Mark performs one atomic lifecycle transition on behalf of an external
// worker. A rejection propagates to the caller untouched: retry, skip or
// alert is the worker's decision, not ours.
func (a *App) Mark(ctx context.Context, cfg MarkConfig) error {
	logger := ctxlog.FromContext(ctx)

	states, ok := markTransitions[cfg.Event]
	if !ok {
		return fmt.Errorf("unknown mark event %q: must be 'started', 'completed' or 'failed'", cfg.Event)
	}
	node, err := nodepath.Parse(cfg.Node)
	if err != nil {
		return fmt.Errorf("invalid node path %q: %w", cfg.Node, err)
	}
	if node.IsRoot() {
		return fmt.Errorf("cannot mark the campaign root")
	}

	store := lifecycle.NewFileStore(cfg.Root)
	rec, err := store.Transition(ctx, node, states[0], states[1], cfg.Message)
	if err != nil {
		return err
	}

	logger.Info("Node marked.", "node", node.String(), "status", rec.Status, "seq", rec.Seq)
	fmt.Fprintf(a.outW, "%s %s (seq %d)\n", node.String(), rec.Status, rec.Seq)
	return nil
}
