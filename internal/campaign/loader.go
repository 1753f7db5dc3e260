package campaign

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/scantree/scantree/internal/ctxlog"
	"github.com/scantree/scantree/internal/grid"
	"github.com/scantree/scantree/internal/tree"
)

// fileRoot mirrors the top-level blocks of a campaign file.
type fileRoot struct {
	Campaign *campaignBlock `hcl:"campaign,block"`
	Base     *baseBlock     `hcl:"base,block"`
	Axes     []*axisBlock   `hcl:"axis,block"`
	Split    *splitBlock    `hcl:"split,block"`
	Prune    *pruneBlock    `hcl:"prune,block"`
	Track    *trackBlock    `hcl:"track,block"`
}

type campaignBlock struct {
	Name       string `hcl:"name,label"`
	OutputRoot string `hcl:"output_root,optional"`
	SetupEnv   string `hcl:"setup_env_script,optional"`
	BaseKey    string `hcl:"base_key,optional"`
}

type baseBlock struct {
	Command string    `hcl:"command"`
	Config  cty.Value `hcl:"config,optional"`
}

type axisBlock struct {
	Name     string     `hcl:"name,label"`
	Values   *[]float64 `hcl:"values,optional"`
	Start    *float64   `hcl:"start,optional"`
	Stop     *float64   `hcl:"stop,optional"`
	Step     *float64   `hcl:"step,optional"`
	Decimals *int       `hcl:"decimals,optional"`
}

type splitBlock struct {
	Count int `hcl:"count"`
}

type pruneBlock struct {
	Rule      string   `hcl:"rule,label"`
	X         string   `hcl:"x"`
	Y         string   `hcl:"y"`
	Offset    float64  `hcl:"offset"`
	Tolerance *float64 `hcl:"tolerance,optional"`
}

type trackBlock struct {
	Command      string    `hcl:"command"`
	NTurns       float64   `hcl:"n_turns"`
	DeltaMax     *float64  `hcl:"delta_max,optional"`
	ParticleDir  string    `hcl:"particle_dir,optional"`
	ColliderFile string    `hcl:"collider_file,optional"`
	JobFlavour   string    `hcl:"job_flavour,optional"`
	RequestCpus  *int      `hcl:"request_cpus,optional"`
	Extra        cty.Value `hcl:"extra,optional"`
}

// defaultDecimals matches the rounding the tune-scan studies always used.
const defaultDecimals = 4

// Load parses and validates a campaign file. Every failure names the
// offending block or axis; nothing downstream runs on a partial spec.
func Load(ctx context.Context, path string) (*Campaign, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading campaign specification.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing campaign file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decoding campaign file %s: %w", path, diags)
	}

	if root.Campaign == nil {
		return nil, &grid.SpecError{Msg: "missing campaign block"}
	}
	if root.Base == nil {
		return nil, &grid.SpecError{Msg: "missing base block"}
	}
	if root.Track == nil {
		return nil, &grid.SpecError{Msg: "missing track block"}
	}
	if len(root.Axes) == 0 {
		return nil, &grid.SpecError{Msg: "no axis blocks declared"}
	}

	c := &Campaign{
		Name:       root.Campaign.Name,
		OutputRoot: root.Campaign.OutputRoot,
		SetupEnv:   root.Campaign.SetupEnv,
		BaseKey:    root.Campaign.BaseKey,
		SplitCount: 1,
	}
	if c.Name == "" {
		return nil, &grid.SpecError{Msg: "campaign block has empty name"}
	}
	if c.OutputRoot == "" {
		c.OutputRoot = filepath.Join("scans", c.Name)
	}
	if c.BaseKey == "" {
		c.BaseKey = "base_collider"
	}

	baseConfig, err := ctyToConfig(root.Base.Config)
	if err != nil {
		return nil, fmt.Errorf("base config: %w", err)
	}
	c.Base = tree.Merge(tree.Config(baseConfig), tree.Config{"command": root.Base.Command})

	for _, ab := range root.Axes {
		axis, err := translateAxis(ab)
		if err != nil {
			return nil, err
		}
		c.Axes = append(c.Axes, axis)
	}

	if root.Split != nil {
		if root.Split.Count < 1 {
			return nil, &grid.SpecError{Axis: SplitAxis, Msg: fmt.Sprintf("count must be at least 1, got %d", root.Split.Count)}
		}
		c.SplitCount = root.Split.Count
	}

	if root.Prune != nil {
		prune, err := translatePrune(root.Prune, c.Axes)
		if err != nil {
			return nil, err
		}
		c.Prune = prune
	}

	c.Track, err = translateTrack(root.Track)
	if err != nil {
		return nil, err
	}

	logger.Debug("Campaign specification loaded.",
		"campaign", c.Name, "axes", len(c.Axes), "split", c.SplitCount)
	return c, nil
}

func translateAxis(ab *axisBlock) (grid.Axis, error) {
	hasValues := ab.Values != nil
	hasRange := ab.Start != nil || ab.Stop != nil || ab.Step != nil

	switch {
	case hasValues && hasRange:
		return grid.Axis{}, &grid.SpecError{Axis: ab.Name, Msg: "declare either values or start/stop/step, not both"}
	case hasValues:
		return grid.NewAxis(ab.Name, *ab.Values), nil
	case hasRange:
		if ab.Start == nil || ab.Stop == nil || ab.Step == nil {
			return grid.Axis{}, &grid.SpecError{Axis: ab.Name, Msg: "range axis needs start, stop and step"}
		}
		decimals := defaultDecimals
		if ab.Decimals != nil {
			decimals = *ab.Decimals
		}
		return grid.RangeAxis(ab.Name, *ab.Start, *ab.Stop, *ab.Step, decimals), nil
	default:
		return grid.Axis{}, &grid.SpecError{Axis: ab.Name, Msg: "axis declares neither values nor a range"}
	}
}

func translatePrune(pb *pruneBlock, axes []grid.Axis) (grid.PruneFunc, error) {
	if pb.Rule != "upper_triangle" {
		return nil, &grid.SpecError{Msg: fmt.Sprintf("unknown prune rule %q", pb.Rule)}
	}
	names := make(map[string]struct{}, len(axes))
	for _, a := range axes {
		names[a.Name] = struct{}{}
	}
	for _, ref := range []string{pb.X, pb.Y} {
		if _, ok := names[ref]; !ok {
			return nil, &grid.SpecError{Axis: ref, Msg: "prune rule references undeclared axis"}
		}
	}
	tol := 0.0
	if pb.Tolerance != nil {
		tol = *pb.Tolerance
	}
	return grid.UpperTriangle(pb.X, pb.Y, pb.Offset, tol), nil
}

func translateTrack(tb *trackBlock) (Track, error) {
	extra, err := ctyToConfig(tb.Extra)
	if err != nil {
		return Track{}, fmt.Errorf("track extra config: %w", err)
	}
	track := Track{
		Command:      tb.Command,
		NTurns:       tb.NTurns,
		ParticleDir:  tb.ParticleDir,
		ColliderFile: tb.ColliderFile,
		Flavour:      tb.JobFlavour,
		Extra:        tree.Config(extra),
	}
	if tb.DeltaMax != nil {
		track.DeltaMax = *tb.DeltaMax
	}
	if tb.RequestCpus != nil {
		track.Cpus = *tb.RequestCpus
	}
	return track, nil
}
