package campaign

import (
	"fmt"

	"github.com/scantree/scantree/internal/grid"
	"github.com/scantree/scantree/internal/tree"
)

// SplitAxis is the reserved axis name for the parallelization split. It is
// always the slowest-varying axis, matching the leaf numbering convention
// this tool has always used.
const SplitAxis = "split"

// Campaign is the fully resolved scan specification.
type Campaign struct {
	// Name identifies the study, e.g. "example_HL_tunescan".
	Name string
	// OutputRoot is the directory the tree materializes into.
	OutputRoot string
	// SetupEnv optionally points at an environment activation script
	// sourced by every generated run script.
	SetupEnv string
	// BaseKey is the first-generation node's child key.
	BaseKey string
	// Base is the base computation's configuration, command included.
	Base tree.Config
	// Axes are the scanned parameter dimensions, in declaration order.
	Axes []grid.Axis
	// SplitCount is the number of parallel split groups (at least 1).
	SplitCount int
	// Prune filters the raw product; nil keeps every combination.
	Prune grid.PruneFunc
	// Track configures the generation-2 leaves.
	Track Track
}

// Track holds the per-leaf tracking settings.
type Track struct {
	// Command is the simulation command each leaf script runs.
	Command string
	// NTurns and DeltaMax are tracking parameters copied into each leaf.
	NTurns   float64
	DeltaMax float64
	// ParticleDir locates the particle distribution files relative to the
	// leaf directory; split group N consumes <ParticleDir>/NN.parquet.
	ParticleDir string
	// ColliderFile is the shared collider artifact, relative to the leaf.
	ColliderFile string
	// Flavour and Cpus are scheduler resource hints.
	Flavour string
	Cpus    int
	// Extra is free-form additional leaf configuration.
	Extra tree.Config
}

// Grid assembles the expansion grid: the split axis first (slowest), then
// the declared axes in order.
func (c *Campaign) Grid() (*grid.Grid, error) {
	axes := make([]grid.Axis, 0, len(c.Axes)+1)
	axes = append(axes, grid.IntAxis(SplitAxis, c.SplitCount))
	axes = append(axes, c.Axes...)
	return grid.Product(axes...)
}

// BuildTree expands the grid and builds the full campaign tree with every
// node's configuration resolved.
func (c *Campaign) BuildTree() (*tree.Tree, error) {
	g, err := c.Grid()
	if err != nil {
		return nil, err
	}

	rootConfig := tree.Config{"campaign": c.Name}
	if c.SetupEnv != "" {
		rootConfig["setup_env_script"] = c.SetupEnv
	}

	b := tree.NewBuilder(rootConfig, c.BaseKey, c.Base)
	return b.Build(g, c.Prune, c.deriveLeaf)
}

// deriveLeaf produces one leaf's override configuration from a scan point:
// the scanned parameter values flat at the top level, the split-dependent
// particle file reference, and the tracking settings.
func (c *Campaign) deriveLeaf(p grid.Point) (tree.Config, error) {
	cfg := c.Track.Extra.Copy()
	for _, axis := range c.Axes {
		v, ok := p.Get(axis.Name)
		if !ok {
			return nil, fmt.Errorf("point has no value for axis %q", axis.Name)
		}
		cfg[axis.Name] = v
	}

	split, _ := p.Int(SplitAxis)
	if c.Track.ParticleDir != "" {
		cfg["particle_file"] = fmt.Sprintf("%s/%02d.parquet", c.Track.ParticleDir, split)
	}
	if c.Track.ColliderFile != "" {
		cfg["collider_file"] = c.Track.ColliderFile
	}

	cfg["command"] = c.Track.Command
	cfg["n_turns"] = c.Track.NTurns
	cfg["delta_max"] = c.Track.DeltaMax
	if c.Track.Flavour != "" {
		cfg["job_flavour"] = c.Track.Flavour
	}
	if c.Track.Cpus > 0 {
		cfg["request_cpus"] = float64(c.Track.Cpus)
	}
	return cfg, nil
}
