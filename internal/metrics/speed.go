package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/filtvec/internal/playback"
)

// PeakSpeed is the largest velocity norm seen.
type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(f playback.Frame) {
	if s := floats.Norm(f.Velocity, 2); s > p.peak {
		p.peak = s
	}
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// MeanSpeed averages the velocity norm over all frames.
type MeanSpeed struct {
	speeds []float64
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(f playback.Frame) {
	m.speeds = append(m.speeds, floats.Norm(f.Velocity, 2))
}

func (m *MeanSpeed) Value() float64 {
	if len(m.speeds) == 0 {
		return 0
	}
	return stat.Mean(m.speeds, nil)
}

func (m *MeanSpeed) Reset() { m.speeds = m.speeds[:0] }
