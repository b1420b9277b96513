package series

// hermite evaluates the cubic Hermite basis on the unit interval.
func hermite(p0, m0, p1, m1, s float64) float64 {
	s2 := s * s
	s3 := s2 * s
	return (2*s3-3*s2+1)*p0 + (s3-2*s2+s)*m0 + (-2*s3+3*s2)*p1 + (s3-s2)*m1
}

// hermiteDeriv is d/ds of hermite.
func hermiteDeriv(p0, m0, p1, m1, s float64) float64 {
	s2 := s * s
	return (6*s2-6*s)*p0 + (3*s2-4*s+1)*m0 + (-6*s2+6*s)*p1 + (3*s2-2*s)*m1
}
