package series

import "sort"

// Flush discards samples that cannot affect a query at time t or later.
// The newest sample at or before t is kept as the left end of the segment
// containing t, so Curve and DCurve are unchanged for every time >= t.
func (s *Series) Flush(t float64) {
	k := sort.Search(len(s.samples), func(i int) bool { return s.samples[i].T > t })
	idx := k - 1
	if idx <= 0 {
		return
	}
	n := copy(s.samples, s.samples[idx:])
	s.samples = s.samples[:n]
}

// Curve returns the interpolated value at t. The returned slice is reused
// by the next call to Curve.
func (s *Series) Curve(t float64) []float64 {
	s.curve = s.eval(t, false)
	return s.curve[:s.dim]
}

// DCurve returns the time derivative of the curve at t. The returned slice
// is reused by the next call to DCurve.
func (s *Series) DCurve(t float64) []float64 {
	s.dcurve = s.eval(t, true)
	return s.dcurve[:s.dim]
}

// AppendCurve appends the value at t to dst and returns the extended slice.
func (s *Series) AppendCurve(dst []float64, t float64) []float64 {
	v := s.eval(t, false)
	return append(dst, v[:s.dim]...)
}

// AppendDCurve appends the derivative at t to dst and returns the extended
// slice.
func (s *Series) AppendDCurve(dst []float64, t float64) []float64 {
	v := s.eval(t, true)
	return append(dst, v[:s.dim]...)
}

// CurveVec returns the value at t by value.
func (s *Series) CurveVec(t float64) Vec { return s.eval(t, false) }

// DCurveVec returns the derivative at t by value.
func (s *Series) DCurveVec(t float64) Vec { return s.eval(t, true) }

// search returns the index of the last sample with T <= t, or -1.
func (s *Series) search(t float64) int {
	return sort.Search(len(s.samples), func(i int) bool { return s.samples[i].T > t }) - 1
}

func (s *Series) eval(t float64, deriv bool) Vec {
	n := len(s.samples)
	idx := s.search(t)

	switch {
	case idx >= n-1:
		return s.extrapolate(&s.samples[n-1], t, deriv)
	case idx < 0:
		return s.extrapolate(&s.samples[0], t, deriv)
	}

	a, b := &s.samples[idx], &s.samples[idx+1]
	dt := b.T - a.T
	if dt == 0 {
		dt = 1.0
	}
	u := (t - a.T) / dt

	var out Vec
	for i := 0; i < s.dim; i++ {
		m0 := a.Velocity[i] * dt
		m1 := b.Velocity[i] * dt
		if deriv {
			out[i] = hermiteDeriv(a.Value[i], m0, b.Value[i], m1, u) / dt
		} else {
			out[i] = hermite(a.Value[i], m0, b.Value[i], m1, u)
		}
	}
	return out
}

func (s *Series) extrapolate(base *Sample, t float64, deriv bool) Vec {
	var out Vec
	if deriv {
		copy(out[:s.dim], base.Velocity[:s.dim])
		return out
	}
	tf := t - base.T
	for i := 0; i < s.dim; i++ {
		out[i] = base.Value[i] + tf*base.Velocity[i]
	}
	return out
}
