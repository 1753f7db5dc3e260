package app

import (
	"context"
	"fmt"

	"github.com/scantree/scantree/internal/campaign"
	"github.com/scantree/scantree/internal/ctxlog"
	"github.com/scantree/scantree/internal/lifecycle"
	"github.com/scantree/scantree/internal/materialize"
	"github.com/scantree/scantree/internal/script"
)

// Generate runs the one-shot generation pipeline: load the scan spec,
// expand the grid, build the tree, materialize it. Any failure before the
// first filesystem write leaves nothing behind.
func (a *App) Generate(ctx context.Context, cfg GenerateConfig) error {
	logger := ctxlog.FromContext(ctx)

	c, err := campaign.Load(ctx, cfg.SpecPath)
	if err != nil {
		return err
	}
	if cfg.OutputRoot != "" {
		c.OutputRoot = cfg.OutputRoot
	}

	g, err := c.Grid()
	if err != nil {
		return err
	}
	logger.Debug("Grid expanded.", "raw_combinations", g.Size())

	t, err := c.BuildTree()
	if err != nil {
		return err
	}
	leaves := len(t.Leaves())
	logger.Info("Campaign tree built.",
		"campaign", c.Name, "nodes", t.Len()-1, "leaves", leaves,
		"pruned", g.Size()-leaves)

	if cfg.DryRun {
		fmt.Fprintf(a.outW, "campaign %s: %d nodes (%d leaves) would be written to %s\n",
			c.Name, t.Len()-1, leaves, c.OutputRoot)
		return nil
	}

	gen, err := scriptGenerator(cfg.Scheduler)
	if err != nil {
		return err
	}
	m := &materialize.Materializer{
		Root:     c.OutputRoot,
		Campaign: c.Name,
		Scripts:  gen,
		Store:    lifecycle.NewFileStore(c.OutputRoot),
		Force:    cfg.Force,
	}
	if err := m.Materialize(ctx, t); err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "campaign %s materialized: %d nodes (%d leaves) under %s\n",
		c.Name, t.Len()-1, leaves, c.OutputRoot)
	return nil
}

func scriptGenerator(name string) (script.Generator, error) {
	switch name {
	case "", "htcondor":
		return script.HTCondor{}, nil
	case "local":
		return script.Local{}, nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q: must be 'htcondor' or 'local'", name)
	}
}
