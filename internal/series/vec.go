package series

import "math"

// MaxDim is the largest supported vector dimension.
const MaxDim = 4

// Vec is a fixed-capacity vector. Only the first Dim() components of a
// series are meaningful; the rest stay zero.
type Vec [MaxDim]float64

// Slice returns the first n components as a fresh slice.
func (v Vec) Slice(n int) []float64 {
	out := make([]float64, n)
	copy(out, v[:n])
	return out
}

// IsValid reports whether the first n components are finite.
func (v Vec) IsValid(n int) bool {
	for _, c := range v[:n] {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func vecOf(src []float64) Vec {
	var v Vec
	copy(v[:], src)
	return v
}
