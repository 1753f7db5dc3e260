package grid

// Value is a single named coordinate of a point.
type Value struct {
	Name  string
	Float float64
}

// Point is one parameter combination produced by the expansion. It is
// immutable once yielded: Index is the position in the raw (pre-prune)
// product and Kept is the position among the points that survived pruning.
type Point struct {
	Index  int
	Kept   int
	values []Value
}

// Get returns the coordinate with the given axis name.
func (p Point) Get(name string) (float64, bool) {
	for _, v := range p.values {
		if v.Name == name {
			return v.Float, true
		}
	}
	return 0, false
}

// Int returns the coordinate as an integer, for split-style axes.
func (p Point) Int(name string) (int, bool) {
	f, ok := p.Get(name)
	return int(f), ok
}

// Values returns the coordinates in axis declaration order.
func (p Point) Values() []Value {
	out := make([]Value, len(p.values))
	copy(out, p.values)
	return out
}
