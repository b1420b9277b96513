package metrics

import "github.com/san-kum/filtvec/internal/playback"

// StableFraction is the share of frames rendered while the newest sample
// had zero velocity, i.e. frames a renderer could have skipped.
type StableFraction struct {
	stable  int
	samples int
}

func NewStableFraction() *StableFraction { return &StableFraction{} }

func (s *StableFraction) Name() string { return "stable_fraction" }

func (s *StableFraction) Observe(f playback.Frame) {
	s.samples++
	if f.Stable {
		s.stable++
	}
}

func (s *StableFraction) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.stable) / float64(s.samples)
}

func (s *StableFraction) Reset() {
	s.stable = 0
	s.samples = 0
}

// PeakRetained is the largest number of samples the series held after a
// flush. It stays small when flushing keeps memory bounded.
type PeakRetained struct {
	peak int
}

func NewPeakRetained() *PeakRetained { return &PeakRetained{} }

func (p *PeakRetained) Name() string { return "peak_retained" }

func (p *PeakRetained) Observe(f playback.Frame) {
	if f.Retained > p.peak {
		p.peak = f.Retained
	}
}

func (p *PeakRetained) Value() float64 { return float64(p.peak) }
func (p *PeakRetained) Reset()         { p.peak = 0 }

// Defaults returns the standard metric set.
func Defaults() []playback.Metric {
	return []playback.Metric{
		NewPeakSpeed(),
		NewMeanSpeed(),
		NewSmoothness(),
		NewStableFraction(),
		NewPeakRetained(),
	}
}
