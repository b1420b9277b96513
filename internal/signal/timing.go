package signal

import (
	"fmt"
	"math/rand"
)

// Timing controls when a generator emits events.
type Timing struct {
	Interval float64 // mean gap between events, seconds
	Jitter   float64 // fraction of Interval randomised, in [0, 1]
	Duration float64 // no events after this time
}

func (tm Timing) validate() error {
	if tm.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %f", ErrBadParams, tm.Interval)
	}
	if tm.Jitter < 0 || tm.Jitter > 1 {
		return fmt.Errorf("%w: jitter must be within [0, 1], got %f", ErrBadParams, tm.Jitter)
	}
	if tm.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrBadParams, tm.Duration)
	}
	return nil
}

// clock hands out irregular, strictly increasing event times.
type clock struct {
	timing Timing
	rng    *rand.Rand
	t      float64
}

func (c *clock) tick() (float64, float64, bool) {
	gap := c.timing.Interval * (1 + c.timing.Jitter*(2*c.rng.Float64()-1))
	if gap < c.timing.Interval*1e-3 {
		gap = c.timing.Interval * 1e-3
	}
	next := c.t + gap
	if next > c.timing.Duration {
		return 0, 0, false
	}
	c.t = next
	return next, gap, true
}
