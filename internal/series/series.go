package series

import "fmt"

// Sample is one observation: the value and velocity assigned at time T.
type Sample struct {
	T        float64
	Value    Vec
	Velocity Vec
}

// Series is an ordered history of samples with strictly increasing times.
// It always holds at least one sample.
type Series struct {
	dim     int
	samples []Sample
	dropped int

	curve  Vec
	dcurve Vec
}

type options struct {
	dim      int
	hasDim   bool
	state    []float64
	velocity []float64
	t0       float64
}

// Option configures the initial sample of a new Series.
type Option func(*options)

// WithDimension sets the dimension when no initial state is given.
func WithDimension(d int) Option {
	return func(o *options) {
		o.dim = d
		o.hasDim = true
	}
}

// WithState sets the initial value. Its length determines the dimension.
func WithState(v []float64) Option {
	return func(o *options) { o.state = v }
}

// WithVelocity sets the initial velocity. It must match the state length.
func WithVelocity(v []float64) Option {
	return func(o *options) { o.velocity = v }
}

// WithTime sets the timestamp of the initial sample.
func WithTime(t float64) Option {
	return func(o *options) { o.t0 = t }
}

// New creates a series holding a single initial sample. With no options the
// series is one-dimensional, zero-valued and starts at t=0.
func New(opts ...Option) (*Series, error) {
	o := options{dim: 1}
	for _, opt := range opts {
		opt(&o)
	}

	dim := o.dim
	switch {
	case o.state != nil:
		if o.hasDim && o.dim != len(o.state) {
			return nil, fmt.Errorf("%w: dimension %d conflicts with state of length %d",
				ErrInvalidDimension, o.dim, len(o.state))
		}
		dim = len(o.state)
	case o.velocity != nil && !o.hasDim:
		dim = len(o.velocity)
	}

	if dim < 1 || dim > MaxDim {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDimension, dim)
	}
	if o.velocity != nil && len(o.velocity) != dim {
		return nil, fmt.Errorf("%w: velocity length %d, state length %d",
			ErrInvalidDimension, len(o.velocity), dim)
	}

	first := Sample{T: o.t0, Value: vecOf(o.state), Velocity: vecOf(o.velocity)}
	return &Series{
		dim:     dim,
		samples: []Sample{first},
	}, nil
}

// Dim returns the number of components per vector.
func (s *Series) Dim() int { return s.dim }

// Len returns the number of retained samples.
func (s *Series) Len() int { return len(s.samples) }

// At returns the i-th retained sample, oldest first.
func (s *Series) At(i int) Sample { return s.samples[i] }

// Dropped returns how many appends were ignored because their timestamp
// did not advance past LastT.
func (s *Series) Dropped() int { return s.dropped }

// LastT returns the timestamp of the newest sample.
func (s *Series) LastT() float64 {
	return s.samples[len(s.samples)-1].T
}

// Stable reports whether every component of the newest velocity is zero.
func (s *Series) Stable() bool {
	last := &s.samples[len(s.samples)-1]
	for i := 0; i < s.dim; i++ {
		if last.Velocity[i] != 0 {
			return false
		}
	}
	return true
}
