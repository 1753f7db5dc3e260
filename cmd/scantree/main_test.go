package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scantree/scantree/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The help flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"status", "--this-is-not-a-valid-flag"})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestRun_GenerateDryRun(t *testing.T) {
	t.Parallel()

	spec := `
campaign "smoke" {}

base {
  command = "python build.py"
  config = {
    optics_file = "optics.madx"
  }
}

axis "qx" {
  values = [62.31]
}

split {
  count = 1
}

track {
  command       = "python track.py"
  n_turns       = 100
  delta_max     = 27e-5
  particle_dir  = "../particles"
  collider_file = "../collider/collider.json"
  job_flavour   = "espresso"
  request_cpus  = 1
}
`
	dir := t.TempDir()
	specPath := filepath.Join(dir, "campaign.hcl")
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o644))

	out := &bytes.Buffer{}
	err := run(out, []string{
		"generate", "-dry-run", "-log-level", "warn",
		"-output", filepath.Join(dir, "scan"), "-spec", specPath,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "would be written")
}
