package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/filtvec/internal/playback"
)

func frame(t float64, vel ...float64) playback.Frame {
	return playback.Frame{T: t, Value: make([]float64, len(vel)), Velocity: vel}
}

func TestSpeed(t *testing.T) {
	peak, mean := NewPeakSpeed(), NewMeanSpeed()
	for _, f := range []playback.Frame{frame(0, 3, 4), frame(1, 0, 1), frame(2, 0, 0)} {
		peak.Observe(f)
		mean.Observe(f)
	}

	if peak.Value() != 5 {
		t.Errorf("peak = %v, want 5", peak.Value())
	}
	if math.Abs(mean.Value()-2) > 1e-12 {
		t.Errorf("mean = %v, want 2", mean.Value())
	}

	peak.Reset()
	mean.Reset()
	if peak.Value() != 0 || mean.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSmoothness(t *testing.T) {
	s := NewSmoothness()
	for i := 0; i < 10; i++ {
		s.Observe(frame(float64(i)*0.1, 2, 2))
	}
	if s.Value() != 0 {
		t.Errorf("constant velocity should score 0, got %v", s.Value())
	}

	s.Reset()
	s.Observe(frame(0, 0))
	s.Observe(frame(0.5, 1))
	s.Observe(frame(1.0, 0))
	if math.Abs(s.Value()-2) > 1e-12 {
		t.Errorf("smoothness = %v, want 2", s.Value())
	}
}

func TestStableFraction(t *testing.T) {
	s := NewStableFraction()
	if s.Value() != 1 {
		t.Errorf("empty fraction = %v, want 1", s.Value())
	}
	for i := 0; i < 4; i++ {
		s.Observe(playback.Frame{Stable: i%2 == 0})
	}
	if s.Value() != 0.5 {
		t.Errorf("fraction = %v, want 0.5", s.Value())
	}
}

func TestPeakRetained(t *testing.T) {
	p := NewPeakRetained()
	for _, n := range []int{1, 4, 2} {
		p.Observe(playback.Frame{Retained: n})
	}
	if p.Value() != 4 {
		t.Errorf("peak = %v, want 4", p.Value())
	}
}

func TestDefaultsUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
