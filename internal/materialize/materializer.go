// Package materialize maps a built campaign tree onto the filesystem: one
// directory per node holding the node's resolved configuration, its run
// script and its lifecycle record, plus the tree descriptor at the root.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/scantree/scantree/internal/ctxlog"
	"github.com/scantree/scantree/internal/lifecycle"
	"github.com/scantree/scantree/internal/script"
	"github.com/scantree/scantree/internal/tree"
)

// ConfigFile is the per-node configuration file name. Its content is the
// node's fully resolved config; leaf jobs consume it as their sole input.
const ConfigFile = "config.yaml"

// Config keys the materializer interprets when assembling script jobs.
// Everything else in a node's config is opaque payload for the simulation.
const (
	keyCommand  = "command"
	keySetupEnv = "setup_env_script"
	keyFlavour  = "job_flavour"
	keyCpus     = "request_cpus"
)

// Materializer writes a tree under Root.
type Materializer struct {
	Root     string
	Campaign string
	Scripts  script.Generator
	Store    lifecycle.Store
	// Force allows writing over an existing campaign. Configs and scripts
	// are rewritten; lifecycle records beyond PENDING survive untouched.
	Force bool
}

// Materialize walks the tree depth-first and creates every node directory,
// parents strictly before children, then commits the tree descriptor at
// the root. The descriptor is written last so that a completed
// materialization is distinguishable from an interrupted one.
func (m *Materializer) Materialize(ctx context.Context, t *tree.Tree) error {
	logger := ctxlog.FromContext(ctx)

	occupied, err := targetOccupied(m.Root)
	if err != nil {
		return err
	}
	if occupied && !m.Force {
		return &ConflictError{Root: m.Root}
	}
	if occupied {
		logger.Info("Target already materialized, overwriting configs and scripts.", "root", m.Root)
	}

	setupEnv, _ := t.Root().Resolved[keySetupEnv].(string)

	if err := t.Walk(func(n *tree.Node) error {
		dir := n.Path.FSPath(m.Root)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating node directory %s: %w", dir, err)
		}
		if n.Path.IsRoot() {
			return nil
		}
		if err := m.writeConfig(dir, n); err != nil {
			return err
		}
		if err := m.writeScript(ctx, dir, n, setupEnv); err != nil {
			return err
		}
		if err := m.Store.Init(ctx, n.Path); err != nil {
			return fmt.Errorf("initializing lifecycle record for %q: %w", n.Path.String(), err)
		}
		return nil
	}); err != nil {
		return err
	}

	d := tree.NewDescriptor(t, m.Campaign)
	if err := d.WriteFile(filepath.Join(m.Root, tree.DescriptorFile)); err != nil {
		return err
	}

	logger.Info("Campaign materialized.", "root", m.Root, "nodes", t.Len()-1, "campaign", m.Campaign)
	return nil
}

func (m *Materializer) writeConfig(dir string, n *tree.Node) error {
	data, err := yaml.Marshal(map[string]any(n.Resolved))
	if err != nil {
		return fmt.Errorf("encoding config for %q: %w", n.Path.String(), err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("writing config for %q: %w", n.Path.String(), err)
	}
	return nil
}

// writeScript emits the node's run script. Nodes without a command (pure
// grouping nodes) get none.
func (m *Materializer) writeScript(ctx context.Context, dir string, n *tree.Node, setupEnv string) error {
	command, _ := n.Resolved[keyCommand].(string)
	if command == "" {
		return nil
	}
	flavour, _ := n.Resolved[keyFlavour].(string)
	cpus := 0
	if f, ok := n.Resolved[keyCpus].(float64); ok {
		cpus = int(f)
	}

	content, err := m.Scripts.Generate(ctx, script.Job{
		Node:       n.Path,
		ConfigFile: ConfigFile,
		Command:    command,
		SetupEnv:   setupEnv,
		Flavour:    flavour,
		Cpus:       cpus,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, script.FileName), []byte(content), 0o755); err != nil {
		return fmt.Errorf("writing run script for %q: %w", n.Path.String(), err)
	}
	return nil
}

// targetOccupied reports whether root already holds a materialized
// campaign. A descriptor is treated as proof; a non-empty directory
// without one counts too, to avoid trampling an interrupted run silently.
func targetOccupied(root string) (bool, error) {
	if _, err := os.Stat(filepath.Join(root, tree.DescriptorFile)); err == nil {
		return true, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspecting target %s: %w", root, err)
	}
	return len(entries) > 0, nil
}
