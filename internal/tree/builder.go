package tree

import (
	"fmt"

	"github.com/scantree/scantree/internal/grid"
)

// LeafKeyPrefix prefixes every generation-2 scan node key.
const LeafKeyPrefix = "scan_"

// LeafKey formats the child key for a scan point. Keys are zero-padded so
// that lexicographic and numeric order agree for campaigns up to 10k raw
// combinations; beyond that the width grows and order is still unique.
func LeafKey(index int) string {
	return fmt.Sprintf("%s%04d", LeafKeyPrefix, index)
}

// DeriveFunc produces a leaf's override configuration from a scan point:
// the scanned parameters themselves plus derived fields such as relative
// artifact paths and tracking settings.
type DeriveFunc func(grid.Point) (Config, error)

// Builder assembles a campaign tree: root, one base node, scan leaves.
type Builder struct {
	rootConfig Config
	baseKey    string
	baseConfig Config
}

// NewBuilder creates a builder with the campaign's root settings and the
// base computation's key and shared configuration.
func NewBuilder(rootConfig Config, baseKey string, baseConfig Config) *Builder {
	return &Builder{
		rootConfig: rootConfig,
		baseKey:    baseKey,
		baseConfig: baseConfig,
	}
}

// Build expands the grid and assembles the full tree. Leaves are keyed by
// the raw product index in expansion order, so the key-to-parameter
// mapping is reconstructable from the scan spec alone. All configuration
// is resolved here; materialization performs no further merging.
func (b *Builder) Build(g *grid.Grid, prune grid.PruneFunc, derive DeriveFunc) (*Tree, error) {
	if b.baseKey == "" {
		return nil, integrityErrorf("", "base node key is empty")
	}
	if len(b.baseConfig) == 0 {
		return nil, integrityErrorf(b.baseKey, "base configuration is empty")
	}
	if derive == nil {
		return nil, integrityErrorf(b.baseKey, "no derive function for scan leaves")
	}

	t := New(b.rootConfig)
	base, err := t.Add(t.Root().Path, b.baseKey, b.baseConfig)
	if err != nil {
		return nil, err
	}

	for p := range g.Points(prune) {
		overrides, err := derive(p)
		if err != nil {
			return nil, fmt.Errorf("deriving config for %s: %w", LeafKey(p.Index), err)
		}
		if _, err := t.Add(base.Path, LeafKey(p.Index), overrides); err != nil {
			return nil, err
		}
	}
	return t, nil
}
