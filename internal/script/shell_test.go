package script

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scantree/scantree/internal/nodepath"
)

func TestLocalGenerate(t *testing.T) {
	job := Job{
		Node:       nodepath.New("base_collider", "scan_0003"),
		ConfigFile: "config.yaml",
		Command:    "python tune_and_track.py",
		SetupEnv:   "/opt/miniconda/bin/activate",
	}

	out, err := Local{}.Generate(context.Background(), job)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "#!/bin/bash\n"))
	assert.Contains(t, out, `ROOT="$(cd -- "$HERE/../.." && pwd)"`)
	assert.Contains(t, out, `NODE="base_collider/scan_0003"`)
	assert.Contains(t, out, `source "/opt/miniconda/bin/activate"`)
	assert.Contains(t, out, `scantree mark started --root "$ROOT" --node "$NODE"`)
	assert.Contains(t, out, `if python tune_and_track.py "$HERE/config.yaml"; then`)
	assert.Contains(t, out, `scantree mark completed`)
	assert.Contains(t, out, `scantree mark failed`)
	assert.NotContains(t, out, "#HTC")
}

func TestLocalGenerateWithoutEnv(t *testing.T) {
	job := Job{
		Node:    nodepath.New("base_collider"),
		Command: "python build_collider.py",
	}

	out, err := Local{}.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.NotContains(t, out, "source")
	assert.Contains(t, out, `ROOT="$(cd -- "$HERE/.." && pwd)"`)
	// Default config file name.
	assert.Contains(t, out, `"$HERE/config.yaml"`)
}

func TestHTCondorDirectives(t *testing.T) {
	job := Job{
		Node:    nodepath.New("base_collider", "scan_0000"),
		Command: "python tune_and_track.py",
		Flavour: "tomorrow",
		Cpus:    8,
	}

	out, err := HTCondor{}.Generate(context.Background(), job)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 3)
	assert.Equal(t, "#!/bin/bash", lines[0])
	assert.Equal(t, `#HTC +JobFlavour = "tomorrow"`, lines[1])
	assert.Equal(t, "#HTC RequestCpus = 8", lines[2])
}

func TestGenerateRequiresCommand(t *testing.T) {
	_, err := Local{}.Generate(context.Background(), Job{Node: nodepath.New("base_collider")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no simulation command")
}
