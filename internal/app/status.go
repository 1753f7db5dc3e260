package app

import (
	"context"
	"fmt"

	"github.com/scantree/scantree/internal/lifecycle"
	"github.com/scantree/scantree/internal/nodepath"
)

// Status prints a single node's record, or the aggregate state of the
// whole tree re-derived from disk.
func (a *App) Status(ctx context.Context, cfg StatusConfig) error {
	store := lifecycle.NewFileStore(cfg.Root)

	if cfg.Node != "" {
		node, err := nodepath.Parse(cfg.Node)
		if err != nil {
			return fmt.Errorf("invalid node path %q: %w", cfg.Node, err)
		}
		rec, err := store.Read(ctx, node)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s %s (seq %d, updated %s)\n",
			node.String(), rec.Status, rec.Seq, rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"))
		if rec.Log != "" {
			fmt.Fprintf(a.outW, "  %s\n", rec.Log)
		}
		return nil
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		return err
	}
	summary := lifecycle.Summarize(snap)

	fmt.Fprintf(a.outW, "%d nodes: %d pending, %d started, %d completed, %d failed\n",
		summary.Total,
		summary.Counts[lifecycle.StatusPending],
		summary.Counts[lifecycle.StatusStarted],
		summary.Counts[lifecycle.StatusCompleted],
		summary.Counts[lifecycle.StatusFailed])
	for _, path := range summary.Incomplete {
		fmt.Fprintf(a.outW, "  %s %s\n", snap[path].Status, path)
	}
	if summary.Done() {
		fmt.Fprintln(a.outW, "campaign complete")
	}
	return nil
}
