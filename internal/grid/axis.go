package grid

import "math"

// Axis is one dimension of the scan: a name and an ordered list of values.
// Values are fixed at construction; iteration never recomputes them, which
// is what makes repeated expansions of the same spec byte-identical.
type Axis struct {
	Name   string
	Values []float64
}

// NewAxis builds an axis from an explicit ordered value list.
func NewAxis(name string, values []float64) Axis {
	vs := make([]float64, len(values))
	copy(vs, values)
	return Axis{Name: name, Values: vs}
}

// IntAxis builds an axis of the integers 0..n-1, used for split groups.
func IntAxis(name string, n int) Axis {
	values := make([]float64, 0, max(n, 0))
	for i := 0; i < n; i++ {
		values = append(values, float64(i))
	}
	return Axis{Name: name, Values: values}
}

// RangeAxis builds an axis from the half-open range [start, stop) with the
// given step, rounding every element to decimals places. Rounding happens
// here, once, so that downstream consumers only ever see the corrected
// values (floating-point drift in start+i*step would otherwise leak into
// node keys and config files).
func RangeAxis(name string, start, stop, step float64, decimals int) Axis {
	values := []float64{}
	if step > 0 && stop > start {
		// Element count is fixed up front; the epsilon keeps stop itself
		// out when (stop-start)/step lands a hair above an integer.
		n := int(math.Ceil((stop-start)/step - 1e-9))
		for i := 0; i < n; i++ {
			values = append(values, roundTo(start+float64(i)*step, decimals))
		}
	}
	return Axis{Name: name, Values: values}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
