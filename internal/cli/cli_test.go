package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerate(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	cfg, exit, err := Parse([]string{
		"generate", "-spec", "campaign.hcl", "-output", "scans/run1",
		"-scheduler", "local", "-force", "-log-level", "debug",
	}, out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "generate", cfg.Command)
	assert.Equal(t, "campaign.hcl", cfg.Generate.SpecPath)
	assert.Equal(t, "scans/run1", cfg.Generate.OutputRoot)
	assert.Equal(t, "local", cfg.Generate.Scheduler)
	assert.True(t, cfg.Generate.Force)
	assert.False(t, cfg.Generate.DryRun)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParseGeneratePositionalSpec(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{"generate", "campaign.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	assert.Equal(t, "campaign.hcl", cfg.Generate.SpecPath)
	assert.Equal(t, "htcondor", cfg.Generate.Scheduler)
}

func TestParseMark(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{
		"mark", "-root", "scans/run1", "-node", "base_collider/scan_0003",
		"-m", "host lxplus901", "started",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "mark", cfg.Command)
	assert.Equal(t, "scans/run1", cfg.Mark.Root)
	assert.Equal(t, "base_collider/scan_0003", cfg.Mark.Node)
	assert.Equal(t, "started", cfg.Mark.Event)
	assert.Equal(t, "host lxplus901", cfg.Mark.Message)
}

func TestParseMarkEventFirst(t *testing.T) {
	t.Parallel()

	// Generated run scripts put the event before the flags.
	cfg, exit, err := Parse([]string{
		"mark", "completed", "--root", "scans/run1", "--node", "base_collider/scan_0003",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "completed", cfg.Mark.Event)
	assert.Equal(t, "scans/run1", cfg.Mark.Root)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		args    []string
		errPart string
	}{
		{"unknown command", []string{"destroy"}, `unknown command "destroy"`},
		{"generate without spec", []string{"generate"}, "spec file is required"},
		{"generate bad scheduler", []string{"generate", "-scheduler", "slurm", "x.hcl"}, "invalid scheduler"},
		{"mark without event", []string{"mark", "-root", "r", "-node", "n"}, "exactly one event"},
		{"mark without node", []string{"mark", "-root", "r", "started"}, "-root and -node are required"},
		{"status without root", []string{"status"}, "-root is required"},
		{"watch without root", []string{"watch"}, "-root is required"},
		{"bad log level", []string{"status", "-root", "r", "-log-level", "loud"}, "invalid log-level"},
		{"bad log format", []string{"status", "-root", "r", "-log-format", "xml"}, "invalid log-format"},
		{"unknown flag", []string{"status", "-no-such-flag"}, "flag provided but not defined"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errPart)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParseHelp(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-h"}, {"help"}, {"generate", "-h"}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
	}
}
