package signal

import (
	"fmt"

	"github.com/san-kum/filtvec/internal/series"
)

// Params configures a generator built by the Registry.
type Params struct {
	Dim       int
	Seed      int64
	Timing    Timing
	Amplitude float64
	Frequency float64 // Hz, path speed or target retarget rate
	DropRate  float64 // probability a tick carries no input and is emitted as idle
	Events    []Event // Replay only
}

// DefaultParams returns a 2D, 60 Hz, lightly jittered configuration.
func DefaultParams() Params {
	return Params{
		Dim:  2,
		Seed: 1,
		Timing: Timing{
			Interval: 1.0 / 60.0,
			Jitter:   0.5,
			Duration: 10.0,
		},
		Amplitude: 10.0,
		Frequency: 0.25,
		DropRate:  0.05,
	}
}

func (p Params) validate() error {
	if p.Dim < 1 || p.Dim > series.MaxDim {
		return fmt.Errorf("%w: dimension must be between 1 and %d, got %d", ErrBadParams, series.MaxDim, p.Dim)
	}
	if p.DropRate < 0 || p.DropRate > 1 {
		return fmt.Errorf("%w: drop rate must be within [0, 1], got %f", ErrBadParams, p.DropRate)
	}
	return p.Timing.validate()
}
