package signal

import (
	"math"
	"math/rand"
)

// Circle pushes absolute positions sampled from a Lissajous path. Component
// i runs at (1 + i/2) times the base frequency, a quarter turn apart, so
// dimension 2 traces a figure rather than a line.
type Circle struct {
	dim       int
	amplitude float64
	omega     float64
	dropRate  float64
	clk       clock
}

func NewCircle(p Params) (*Circle, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Circle{
		dim:       p.Dim,
		amplitude: p.Amplitude,
		omega:     2 * math.Pi * p.Frequency,
		dropRate:  p.DropRate,
		clk:       clock{timing: p.Timing, rng: rand.New(rand.NewSource(p.Seed))},
	}, nil
}

func (c *Circle) Dim() int { return c.dim }

func (c *Circle) Next() (Event, bool) {
	t, _, ok := c.clk.tick()
	if !ok {
		return Event{}, false
	}
	if c.clk.rng.Float64() < c.dropRate {
		return Event{T: t, Op: OpIdle}, true
	}
	return Event{T: t, Op: OpPush, Values: c.Position(t)}, true
}

// Position returns the noise-free path position at t.
func (c *Circle) Position(t float64) []float64 {
	v := make([]float64, c.dim)
	for i := range v {
		rate := 1 + float64(i)/2
		v[i] = c.amplitude * math.Sin(c.omega*rate*t+float64(i)*math.Pi/2)
	}
	return v
}

// Teleport holds still and occasionally jumps to a random point inside
// [-Amplitude, Amplitude] on every axis.
type Teleport struct {
	dim       int
	amplitude float64
	dropRate  float64
	clk       clock
}

func NewTeleport(p Params) (*Teleport, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Teleport{
		dim:       p.Dim,
		amplitude: p.Amplitude,
		dropRate:  p.DropRate,
		clk:       clock{timing: p.Timing, rng: rand.New(rand.NewSource(p.Seed))},
	}, nil
}

func (tp *Teleport) Dim() int { return tp.dim }

func (tp *Teleport) Next() (Event, bool) {
	t, _, ok := tp.clk.tick()
	if !ok {
		return Event{}, false
	}
	rng := tp.clk.rng
	if rng.Float64() < tp.dropRate {
		return Event{T: t, Op: OpIdle}, true
	}
	v := make([]float64, tp.dim)
	for i := range v {
		v[i] = tp.amplitude * (2*rng.Float64() - 1)
	}
	return Event{T: t, Op: OpSet, Values: v}, true
}

// Drag emits relative displacements from a velocity that wanders with some
// persistence, like a hand moving a mouse.
type Drag struct {
	dim       int
	amplitude float64
	dropRate  float64
	vel       []float64
	clk       clock
}

const dragPersistence = 0.85

func NewDrag(p Params) (*Drag, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Drag{
		dim:       p.Dim,
		amplitude: p.Amplitude,
		dropRate:  p.DropRate,
		vel:       make([]float64, p.Dim),
		clk:       clock{timing: p.Timing, rng: rand.New(rand.NewSource(p.Seed))},
	}, nil
}

func (d *Drag) Dim() int { return d.dim }

func (d *Drag) Next() (Event, bool) {
	t, gap, ok := d.clk.tick()
	if !ok {
		return Event{}, false
	}
	rng := d.clk.rng
	for i := range d.vel {
		d.vel[i] = dragPersistence*d.vel[i] + (1-dragPersistence)*d.amplitude*rng.NormFloat64()
	}
	if rng.Float64() < d.dropRate {
		return Event{T: t, Op: OpIdle}, true
	}
	delta := make([]float64, d.dim)
	for i, v := range d.vel {
		delta[i] = v * gap
	}
	return Event{T: t, Op: OpMove, Values: delta}, true
}

// Replay yields a recorded event list in order.
type Replay struct {
	dim    int
	events []Event
	pos    int
}

func NewReplay(dim int, events []Event) *Replay {
	return &Replay{dim: dim, events: events}
}

func (r *Replay) Dim() int { return r.dim }

func (r *Replay) Next() (Event, bool) {
	if r.pos >= len(r.events) {
		return Event{}, false
	}
	e := r.events[r.pos]
	r.pos++
	return e, true
}
