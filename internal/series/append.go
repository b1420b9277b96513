package series

// Push appends an absolute observation. Its velocity is the jump from the
// previous value divided by the elapsed time.
func (s *Series) Push(t float64, values ...float64) error {
	if err := s.checkArity("push", values); err != nil {
		return err
	}
	prev, ok := s.advance(t)
	if !ok {
		return nil
	}

	next := Sample{T: t}
	dt := t - prev.T
	for i := 0; i < s.dim; i++ {
		next.Value[i] = values[i]
		next.Velocity[i] = (values[i] - prev.Value[i]) / dt
	}
	s.samples = append(s.samples, next)
	return nil
}

// Set appends an absolute observation with zero velocity.
func (s *Series) Set(t float64, values ...float64) error {
	if err := s.checkArity("set", values); err != nil {
		return err
	}
	if _, ok := s.advance(t); !ok {
		return nil
	}

	next := Sample{T: t}
	copy(next.Value[:s.dim], values)
	s.samples = append(s.samples, next)
	return nil
}

// Move appends the previous value displaced by deltas, with the velocity
// that covers the displacement over the elapsed time.
func (s *Series) Move(t float64, deltas ...float64) error {
	if err := s.checkArity("move", deltas); err != nil {
		return err
	}
	prev, ok := s.advance(t)
	if !ok {
		return nil
	}

	next := Sample{T: t}
	dt := t - prev.T
	for i := 0; i < s.dim; i++ {
		next.Value[i] = prev.Value[i] + deltas[i]
		next.Velocity[i] = deltas[i] / dt
	}
	s.samples = append(s.samples, next)
	return nil
}

// Idle repeats the previous value at time t with zero velocity.
func (s *Series) Idle(t float64) {
	prev, ok := s.advance(t)
	if !ok {
		return
	}
	s.samples = append(s.samples, Sample{T: t, Value: prev.Value})
}

func (s *Series) checkArity(op string, values []float64) error {
	if len(values) != s.dim {
		return &ArityError{Op: op, Got: len(values), Want: s.dim}
	}
	return nil
}

// advance returns the tail sample when t moves time forward. NaN never
// compares greater, so it is dropped like a stale timestamp.
func (s *Series) advance(t float64) (Sample, bool) {
	prev := s.samples[len(s.samples)-1]
	if !(t > prev.T) {
		s.dropped++
		return prev, false
	}
	return prev, true
}
