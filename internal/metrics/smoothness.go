package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/filtvec/internal/playback"
)

// Smoothness is the mean change in velocity per second between consecutive
// frames. Lower is smoother; a perfectly linear path scores zero.
type Smoothness struct {
	prev    []float64
	prevT   float64
	changes []float64
}

func NewSmoothness() *Smoothness { return &Smoothness{} }

func (s *Smoothness) Name() string { return "smoothness" }

func (s *Smoothness) Observe(f playback.Frame) {
	if s.prev != nil && f.T > s.prevT && len(f.Velocity) == len(s.prev) {
		dv := floats.Distance(f.Velocity, s.prev, 2)
		s.changes = append(s.changes, dv/(f.T-s.prevT))
	}
	s.prev = append(s.prev[:0], f.Velocity...)
	s.prevT = f.T
}

func (s *Smoothness) Value() float64 {
	if len(s.changes) == 0 {
		return 0
	}
	return stat.Mean(s.changes, nil)
}

func (s *Smoothness) Reset() {
	s.prev = nil
	s.prevT = 0
	s.changes = s.changes[:0]
}
