package signal

import (
	"math"
	"math/rand"
)

const (
	DefaultStiffness = 40.0
	DefaultDamping   = 6.0
	springStep       = 1e-3
)

// Spring is a unit mass on a damped spring per axis, pulled toward a target
// that jumps to a new random point about every 1/Frequency seconds. The
// body is integrated with fixed RK4 steps and its position pushed at
// irregular times, the way a physics thread feeds a render thread.
type Spring struct {
	dim       int
	amplitude float64
	retarget  float64
	dropRate  float64
	Stiffness float64
	Damping   float64

	state    []float64 // positions then velocities
	target   []float64
	t        float64
	nextJump float64
	stepper  *rk4
	clk      clock
}

func NewSpring(p Params) (*Spring, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	retarget := math.Inf(1)
	if p.Frequency > 0 {
		retarget = 1 / p.Frequency
	}
	s := &Spring{
		dim:       p.Dim,
		amplitude: p.Amplitude,
		retarget:  retarget,
		dropRate:  p.DropRate,
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
		state:     make([]float64, 2*p.Dim),
		target:    make([]float64, p.Dim),
		stepper:   &rk4{},
		clk:       clock{timing: p.Timing, rng: rand.New(rand.NewSource(p.Seed))},
	}
	s.jump()
	return s, nil
}

func (s *Spring) Dim() int { return s.dim }

func (s *Spring) Next() (Event, bool) {
	t, _, ok := s.clk.tick()
	if !ok {
		return Event{}, false
	}
	s.advance(t)
	if s.clk.rng.Float64() < s.dropRate {
		return Event{T: t, Op: OpIdle}, true
	}
	pos := make([]float64, s.dim)
	copy(pos, s.state[:s.dim])
	return Event{T: t, Op: OpPush, Values: pos}, true
}

// Energy returns kinetic plus spring potential energy relative to the
// current target.
func (s *Spring) Energy() float64 {
	e := 0.0
	for i := 0; i < s.dim; i++ {
		stretch := s.state[i] - s.target[i]
		v := s.state[s.dim+i]
		e += 0.5*v*v + 0.5*s.Stiffness*stretch*stretch
	}
	return e
}

func (s *Spring) jump() {
	for i := range s.target {
		s.target[i] = s.amplitude * (2*s.clk.rng.Float64() - 1)
	}
	s.nextJump = s.t + s.retarget
}

func (s *Spring) advance(until float64) {
	for s.t < until {
		h := math.Min(springStep, until-s.t)
		s.stepper.step(s.derive, s.state, h)
		s.t += h
		if s.t >= s.nextJump {
			s.jump()
		}
	}
}

func (s *Spring) derive(x, dx []float64) {
	n := s.dim
	for i := 0; i < n; i++ {
		pos, vel := x[i], x[n+i]
		dx[i] = vel
		dx[n+i] = -s.Stiffness*(pos-s.target[i]) - s.Damping*vel
	}
}

// rk4 is a classic fourth-order Runge-Kutta stepper that integrates in
// place and keeps its stage buffers between steps.
type rk4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func (r *rk4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

func (r *rk4) step(derive func(x, dx []float64), x []float64, dt float64) {
	n := len(x)
	r.ensureScratch(n)

	derive(x, r.k1)
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	derive(r.scratch, r.k2)
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	derive(r.scratch, r.k3)
	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	derive(r.scratch, r.k4)

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		x[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}
