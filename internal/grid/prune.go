package grid

// UpperTriangle keeps only the points where y >= x + offset - tol, i.e. the
// upper-triangular region of an x/y scan. For tune-tune scans this discards
// working points below (or too close to) the diagonal resonance, which
// cannot exist in the real machine.
//
// tol absorbs the floating-point rounding of range-generated axes so that
// points sitting exactly on the boundary are kept deterministically. The
// right value depends on the axis step and rounding precision, so it is a
// parameter of the rule rather than a constant.
func UpperTriangle(xName, yName string, offset, tol float64) PruneFunc {
	return func(p Point) bool {
		x, okx := p.Get(xName)
		y, oky := p.Get(yName)
		if !okx || !oky {
			// A rule referencing a missing axis keeps nothing rather
			// than silently keeping everything.
			return false
		}
		return y >= x+offset-tol
	}
}
