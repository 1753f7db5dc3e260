package app

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/scantree/scantree/internal/ctxlog"
	"github.com/scantree/scantree/internal/lifecycle"
	"github.com/scantree/scantree/internal/nodepath"
)

// Watch follows status records live and logs every committed transition
// until all nodes are terminal or the context is cancelled. The tree is
// static after materialization, so watching the existing node directories
// is enough; no directories appear later.
func (a *App) Watch(ctx context.Context, cfg WatchConfig) error {
	logger := ctxlog.FromContext(ctx)
	store := lifecycle.NewFileStore(cfg.Root)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watching campaign directories under %s: %w", cfg.Root, err)
	}

	known, err := store.Snapshot(ctx)
	if err != nil {
		return err
	}
	summary := lifecycle.Summarize(known)
	logger.Info("Watching campaign.", "root", cfg.Root, "nodes", summary.Total, "incomplete", len(summary.Incomplete))
	if summary.Done() {
		fmt.Fprintln(a.outW, "campaign complete")
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != lifecycle.RecordFile {
				continue
			}
			// Commits land via rename, which arrives as a create event;
			// accept writes too for robustness.
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}

			rel, err := filepath.Rel(cfg.Root, filepath.Dir(event.Name))
			if err != nil {
				continue
			}
			node, err := nodepath.Parse(filepath.ToSlash(rel))
			if err != nil {
				continue
			}
			rec, err := store.Read(ctx, node)
			if err != nil {
				logger.Warn("Could not read changed record.", "node", node.String(), "error", err)
				continue
			}
			if prev, ok := known[node.String()]; ok && prev.Seq >= rec.Seq {
				continue
			}
			known[node.String()] = rec

			logger.Info("Node transitioned.", "node", node.String(), "status", rec.Status, "seq", rec.Seq)
			fmt.Fprintf(a.outW, "%s %s (seq %d)\n", node.String(), rec.Status, rec.Seq)

			if summary := lifecycle.Summarize(known); summary.Done() {
				fmt.Fprintln(a.outW, "campaign complete")
				return nil
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error.", "error", watchErr)
		}
	}
}
