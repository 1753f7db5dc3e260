package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scantree/scantree/internal/lifecycle"
	"github.com/scantree/scantree/internal/script"
	"github.com/scantree/scantree/internal/tree"
)

const pipelineSpec = `
campaign "pipeline_test" {
  setup_env_script = "/opt/env/activate"
}

base {
  command = "python build.py"
  config = {
    optics_file = "optics.madx"
  }
}

axis "qx" {
  values = [62.31, 62.32]
}

split {
  count = 2
}

track {
  command       = "python track.py"
  n_turns       = 200
  delta_max     = 27e-5
  particle_dir  = "../particles"
  collider_file = "../collider/collider.json"
  job_flavour   = "workday"
  request_cpus  = 4
}
`

func newTestApp(out *bytes.Buffer) *App {
	return New(out, os.Stderr, &Config{LogLevel: "warn", LogFormat: "text"})
}

func writePipelineSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campaign.hcl")
	require.NoError(t, os.WriteFile(path, []byte(pipelineSpec), 0o644))
	return path
}

func TestGenerateDryRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	out := &bytes.Buffer{}
	a := newTestApp(out)

	root := filepath.Join(t.TempDir(), "scan")
	err := a.Generate(ctx, GenerateConfig{
		SpecPath:   writePipelineSpec(t),
		OutputRoot: root,
		Scheduler:  "local",
		DryRun:     true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "would be written")
	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr), "dry run must not touch the filesystem")
}

func TestGenerateMarkStatusRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	out := &bytes.Buffer{}
	a := newTestApp(out)

	root := filepath.Join(t.TempDir(), "scan")
	err := a.Generate(ctx, GenerateConfig{
		SpecPath:   writePipelineSpec(t),
		OutputRoot: root,
		Scheduler:  "local",
	})
	require.NoError(t, err)
	// 2 splits x 2 qx values = 4 leaves, plus the grouping node.
	assert.Contains(t, out.String(), "5 nodes (4 leaves)")

	require.FileExists(t, filepath.Join(root, tree.DescriptorFile))
	leafDir := filepath.Join(root, "base_collider", "scan_0000")
	require.FileExists(t, filepath.Join(leafDir, "config.yaml"))
	require.FileExists(t, filepath.Join(leafDir, script.FileName))
	require.FileExists(t, filepath.Join(leafDir, lifecycle.RecordFile))

	// A worker picks up the first leaf and runs it to completion.
	out.Reset()
	leaf := "base_collider/scan_0000"
	require.NoError(t, a.Mark(ctx, MarkConfig{Root: root, Node: leaf, Event: "started", Message: "host test"}))
	require.NoError(t, a.Mark(ctx, MarkConfig{Root: root, Node: leaf, Event: "completed"}))
	assert.Contains(t, out.String(), "base_collider/scan_0000 COMPLETED (seq 2)")

	// A second completion attempt loses: the record is already terminal.
	err = a.Mark(ctx, MarkConfig{Root: root, Node: leaf, Event: "completed"})
	require.ErrorIs(t, err, lifecycle.ErrTransitionRejected)

	out.Reset()
	require.NoError(t, a.Status(ctx, StatusConfig{Root: root}))
	assert.Contains(t, out.String(), "5 nodes: 4 pending, 0 started, 1 completed, 0 failed")
	assert.Contains(t, out.String(), "base_collider/scan_0001")

	out.Reset()
	require.NoError(t, a.Status(ctx, StatusConfig{Root: root, Node: leaf}))
	assert.Contains(t, out.String(), "COMPLETED")
}

func TestGenerateRefusesOccupiedTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	out := &bytes.Buffer{}
	a := newTestApp(out)

	spec := writePipelineSpec(t)
	root := filepath.Join(t.TempDir(), "scan")
	cfg := GenerateConfig{SpecPath: spec, OutputRoot: root, Scheduler: "local"}

	require.NoError(t, a.Generate(ctx, cfg))
	err := a.Generate(ctx, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")

	cfg.Force = true
	require.NoError(t, a.Generate(ctx, cfg))
}

func TestMarkRejectsUnknownEventAndRoot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	a := newTestApp(&bytes.Buffer{})

	err := a.Mark(ctx, MarkConfig{Root: t.TempDir(), Node: "base_collider/scan_0000", Event: "paused"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mark event")

	err = a.Mark(ctx, MarkConfig{Root: t.TempDir(), Node: "", Event: "started"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "campaign root")
}
