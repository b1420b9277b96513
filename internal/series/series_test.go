package series

import (
	"errors"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		dim      int
		value    []float64
		velocity []float64
		t0       float64
	}{
		{"defaults", nil, 1, []float64{0}, []float64{0}, 0},
		{"dimension", []Option{WithDimension(3)}, 3, []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"state", []Option{WithState([]float64{1, 2})}, 2, []float64{1, 2}, []float64{0, 0}, 0},
		{"state and time", []Option{WithState([]float64{1, 2}), WithTime(5)}, 2, []float64{1, 2}, []float64{0, 0}, 5},
		{"state and velocity", []Option{WithState([]float64{1}), WithVelocity([]float64{3})}, 1, []float64{1}, []float64{3}, 0},
		{"explicit", []Option{WithState([]float64{1, 2, 3, 4}), WithVelocity([]float64{4, 3, 2, 1}), WithTime(-1)}, 4, []float64{1, 2, 3, 4}, []float64{4, 3, 2, 1}, -1},
		{"matching dimension", []Option{WithDimension(2), WithState([]float64{7, 8})}, 2, []float64{7, 8}, []float64{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.opts...)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			if s.Dim() != tt.dim {
				t.Errorf("Dim() = %d, want %d", s.Dim(), tt.dim)
			}
			if s.Len() != 1 {
				t.Errorf("Len() = %d, want 1", s.Len())
			}
			first := s.At(0)
			if first.T != tt.t0 {
				t.Errorf("t0 = %v, want %v", first.T, tt.t0)
			}
			for i := range tt.value {
				if first.Value[i] != tt.value[i] || first.Velocity[i] != tt.velocity[i] {
					t.Errorf("component %d = (%v, %v), want (%v, %v)",
						i, first.Value[i], first.Velocity[i], tt.value[i], tt.velocity[i])
				}
			}
		})
	}
}

func TestNew_InvalidDimension(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"zero", []Option{WithDimension(0)}},
		{"negative", []Option{WithDimension(-2)}},
		{"five", []Option{WithDimension(5)}},
		{"empty state", []Option{WithState([]float64{})}},
		{"long state", []Option{WithState(make([]float64, 5))}},
		{"velocity mismatch", []Option{WithState([]float64{1, 2}), WithVelocity([]float64{1})}},
		{"dimension conflict", []Option{WithDimension(3), WithState([]float64{1, 2})}},
		{"velocity vs dimension", []Option{WithDimension(2), WithVelocity([]float64{1, 2, 3})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.opts...)
			if !errors.Is(err, ErrInvalidDimension) {
				t.Fatalf("expected ErrInvalidDimension, got %v", err)
			}
			if s != nil {
				t.Error("expected nil series on error")
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	state := []float64{1, 2}
	s, err := New(WithState(state))
	if err != nil {
		t.Fatal(err)
	}
	state[0] = 99
	if s.At(0).Value[0] != 1 {
		t.Error("series aliases caller state")
	}
}

func TestAppendOps(t *testing.T) {
	s, _ := New(WithState([]float64{1, 2}))

	if err := s.Push(2, 5, 0); err != nil {
		t.Fatal(err)
	}
	got := s.At(1)
	if got.Value[0] != 5 || got.Value[1] != 0 || got.Velocity[0] != 2 || got.Velocity[1] != -1 {
		t.Errorf("push: got %+v", got)
	}

	if err := s.Move(4, 2, -2); err != nil {
		t.Fatal(err)
	}
	got = s.At(2)
	if got.Value[0] != 7 || got.Value[1] != -2 || got.Velocity[0] != 1 || got.Velocity[1] != -1 {
		t.Errorf("move: got %+v", got)
	}

	if err := s.Set(5, 3, 3); err != nil {
		t.Fatal(err)
	}
	got = s.At(3)
	if got.Value[0] != 3 || got.Value[1] != 3 || got.Velocity != (Vec{}) {
		t.Errorf("set: got %+v", got)
	}

	s.Idle(6)
	got = s.At(4)
	if got.Value[0] != 3 || got.Value[1] != 3 || got.Velocity != (Vec{}) {
		t.Errorf("idle: got %+v", got)
	}

	if s.Len() != 5 || s.LastT() != 6 {
		t.Errorf("Len() = %d, LastT() = %v", s.Len(), s.LastT())
	}
}

func TestAppend_StaleIgnored(t *testing.T) {
	s, _ := New(WithDimension(1), WithTime(1))

	calls := []func(){
		func() { _ = s.Push(1, 10) },
		func() { _ = s.Push(0.5, 10) },
		func() { _ = s.Set(1, 10) },
		func() { _ = s.Move(-3, 10) },
		func() { s.Idle(1) },
		func() { _ = s.Push(math.NaN(), 10) },
	}
	for i, call := range calls {
		call()
		if s.Len() != 1 || s.LastT() != 1 {
			t.Fatalf("call %d changed the series: len=%d lastT=%v", i, s.Len(), s.LastT())
		}
	}
	if s.Dropped() != len(calls) {
		t.Errorf("Dropped() = %d, want %d", s.Dropped(), len(calls))
	}
}

func TestAppend_ArityMismatch(t *testing.T) {
	s, _ := New(WithDimension(2))

	for _, err := range []error{
		s.Push(1, 1),
		s.Set(1, 1, 2, 3),
		s.Move(1),
	} {
		if !errors.Is(err, ErrArityMismatch) {
			t.Errorf("expected ErrArityMismatch, got %v", err)
		}
		var ae *ArityError
		if !errors.As(err, &ae) || ae.Want != 2 {
			t.Errorf("expected *ArityError with Want=2, got %v", err)
		}
	}
	if s.Len() != 1 || s.Dropped() != 0 {
		t.Errorf("arity errors touched the series: len=%d dropped=%d", s.Len(), s.Dropped())
	}
}

func TestCurve_RoundTrip(t *testing.T) {
	s, _ := New(WithState([]float64{0, 0}))
	if err := s.Push(1, 10, 0); err != nil {
		t.Fatal(err)
	}

	if v := s.At(1).Velocity; v[0] != 10 || v[1] != 0 {
		t.Fatalf("velocity = %v, want (10, 0)", v)
	}

	mid := s.Curve(0.5)
	if math.Abs(mid[0]-3.75) > 1e-12 || mid[1] != 0 {
		t.Errorf("Curve(0.5) = %v, want (3.75, 0)", mid)
	}

	d := s.DCurve(0.5)
	if math.Abs(d[0]-12.5) > 1e-12 || d[1] != 0 {
		t.Errorf("DCurve(0.5) = %v, want (12.5, 0)", d)
	}

	ext := s.Curve(2.0)
	if ext[0] != 20 || ext[1] != 0 {
		t.Errorf("Curve(2) = %v, want (20, 0)", ext)
	}
	dext := s.DCurve(2.0)
	if dext[0] != 10 || dext[1] != 0 {
		t.Errorf("DCurve(2) = %v, want (10, 0)", dext)
	}
}

func TestCurve_BeforeFirstSample(t *testing.T) {
	s, _ := New(WithState([]float64{1}), WithVelocity([]float64{2}), WithTime(10))
	_ = s.Push(11, 5)

	if got := s.Curve(9)[0]; got != -1 {
		t.Errorf("Curve(9) = %v, want -1", got)
	}
	if got := s.DCurve(9)[0]; got != 2 {
		t.Errorf("DCurve(9) = %v, want 2", got)
	}
}

func TestCurve_SingleSample(t *testing.T) {
	s, _ := New(WithState([]float64{1, 1}), WithVelocity([]float64{1, -1}))

	for _, q := range []float64{-2, 0, 3} {
		v := s.Curve(q)
		if v[0] != 1+q || v[1] != 1-q {
			t.Errorf("Curve(%v) = %v", q, v)
		}
	}
}

func TestCurve_ScratchReuse(t *testing.T) {
	s, _ := New(WithState([]float64{0}), WithVelocity([]float64{1}))

	a := s.Curve(1)
	b := s.Curve(2)
	if &a[0] != &b[0] {
		t.Error("Curve should reuse its result buffer")
	}
	if a[0] != 2 {
		t.Errorf("previous result should be overwritten, got %v", a[0])
	}

	d := s.DCurve(1)
	if &d[0] == &a[0] {
		t.Error("Curve and DCurve must not share a buffer")
	}

	buf := s.AppendCurve(nil, 1)
	buf = s.AppendCurve(buf, 3)
	if len(buf) != 2 || buf[0] != 1 || buf[1] != 3 {
		t.Errorf("AppendCurve = %v", buf)
	}
	if s.CurveVec(4)[0] != 4 || s.DCurveVec(4)[0] != 1 {
		t.Error("Vec queries disagree with slice queries")
	}
}

func TestFlush_Example(t *testing.T) {
	s, _ := New(WithDimension(1))
	for _, ts := range []float64{1, 2, 3} {
		_ = s.Push(ts, ts*ts)
	}

	before := s.Curve(1.2)[0]
	s.Flush(1.5)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.At(0).T != 1 {
		t.Errorf("oldest sample at %v, want 1", s.At(0).T)
	}
	if after := s.Curve(1.2)[0]; after != before {
		t.Errorf("Curve(1.2) changed from %v to %v", before, after)
	}
}

func TestFlush_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		flushAt float64
		wantLen int
		wantT0  float64
	}{
		{"before first", -1, 4, 0},
		{"at first", 0, 4, 0},
		{"inside first segment", 0.5, 4, 0},
		{"at second knot", 1, 3, 1},
		{"at last", 3, 1, 3},
		{"past last", 10, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := New()
			for _, ts := range []float64{1, 2, 3} {
				_ = s.Push(ts, ts)
			}
			s.Flush(tt.flushAt)
			if s.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.wantLen)
			}
			if s.At(0).T != tt.wantT0 {
				t.Errorf("oldest = %v, want %v", s.At(0).T, tt.wantT0)
			}
			if s.LastT() != 3 {
				t.Errorf("newest sample removed, LastT() = %v", s.LastT())
			}
		})
	}
}

func TestStable(t *testing.T) {
	s, _ := New(WithDimension(3))
	if !s.Stable() {
		t.Error("fresh series should be stable")
	}
	_ = s.Push(1, 0, 1, 0)
	if s.Stable() {
		t.Error("push with displacement should not be stable")
	}
	_ = s.Set(2, 0, 1, 0)
	if !s.Stable() {
		t.Error("set should be stable")
	}
	_ = s.Move(3, 0, 0, 0.5)
	if s.Stable() {
		t.Error("move with displacement should not be stable")
	}
	s.Idle(4)
	if !s.Stable() {
		t.Error("idle should be stable")
	}
	_ = s.Push(5, 0, 1, 0.5)
	if !s.Stable() {
		t.Error("push without displacement should be stable")
	}
}

func TestHermiteBasis(t *testing.T) {
	if got := hermite(1, 5, 2, 7, 0); got != 1 {
		t.Errorf("h(0) = %v, want p0", got)
	}
	if got := hermite(1, 5, 2, 7, 1); got != 2 {
		t.Errorf("h(1) = %v, want p1", got)
	}
	if got := hermiteDeriv(1, 5, 2, 7, 0); got != 5 {
		t.Errorf("h'(0) = %v, want m0", got)
	}
	if got := hermiteDeriv(1, 5, 2, 7, 1); got != 7 {
		t.Errorf("h'(1) = %v, want m1", got)
	}
}
