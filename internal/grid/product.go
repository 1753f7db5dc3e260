package grid

import "iter"

// PruneFunc decides whether a raw point is kept. Returning false skips the
// point entirely; it never becomes a node.
type PruneFunc func(Point) bool

// Grid is a validated set of axes ready for expansion.
type Grid struct {
	axes []Axis
}

// Product validates the axes and returns a grid over their cartesian
// product. An axis with zero values is a specification error, never a
// silently empty scan.
func Product(axes ...Axis) (*Grid, error) {
	if len(axes) == 0 {
		return nil, specErrorf("", "no axes declared")
	}
	seen := make(map[string]struct{}, len(axes))
	for _, axis := range axes {
		if axis.Name == "" {
			return nil, specErrorf("", "axis with empty name")
		}
		if _, dup := seen[axis.Name]; dup {
			return nil, specErrorf(axis.Name, "declared twice")
		}
		seen[axis.Name] = struct{}{}
		if len(axis.Values) == 0 {
			return nil, specErrorf(axis.Name, "expands to zero values")
		}
	}
	return &Grid{axes: axes}, nil
}

// Size returns the raw combination count before pruning.
func (g *Grid) Size() int {
	n := 1
	for _, axis := range g.axes {
		n *= len(axis.Values)
	}
	return n
}

// Axes returns the axis list in declaration order.
func (g *Grid) Axes() []Axis {
	out := make([]Axis, len(g.axes))
	copy(out, g.axes)
	return out
}

// Points lazily yields the cartesian product in row-major order over the
// axes as declared (first axis slowest). A nil prune keeps everything.
// Point.Index counts raw combinations including pruned ones, so the
// index-to-parameter correspondence stays reconstructable from the axis
// declarations alone.
func (g *Grid) Points(prune PruneFunc) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		idx := make([]int, len(g.axes))
		raw, kept := 0, 0
		for {
			values := make([]Value, len(g.axes))
			for i, axis := range g.axes {
				values[i] = Value{Name: axis.Name, Float: axis.Values[idx[i]]}
			}
			p := Point{Index: raw, Kept: kept, values: values}
			if prune == nil || prune(p) {
				if !yield(p) {
					return
				}
				kept++
			}
			raw++

			// Odometer increment, last axis fastest.
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(g.axes[i].Values) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Collect materializes the kept points into a slice.
func (g *Grid) Collect(prune PruneFunc) []Point {
	var out []Point
	for p := range g.Points(prune) {
		out = append(out, p)
	}
	return out
}
