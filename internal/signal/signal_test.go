package signal

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/filtvec/internal/series"
)

func drain(t *testing.T, src Source) []Event {
	t.Helper()
	var events []Event
	for {
		e, ok := src.Next()
		if !ok {
			return events
		}
		events = append(events, e)
		if len(events) > 1e6 {
			t.Fatal("source never ends")
		}
	}
}

func TestGenerators(t *testing.T) {
	reg := NewRegistry()
	p := DefaultParams()
	p.Timing.Duration = 2

	for _, name := range []string{"circle", "teleport", "drag", "spring"} {
		for dim := 1; dim <= series.MaxDim; dim++ {
			p.Dim = dim
			src, err := reg.Get(name, p)
			if err != nil {
				t.Fatalf("%s/%d: %v", name, dim, err)
			}
			if src.Dim() != dim {
				t.Errorf("%s: Dim() = %d, want %d", name, src.Dim(), dim)
			}

			events := drain(t, src)
			if len(events) < 60 {
				t.Errorf("%s/%d: only %d events in 2s at 60Hz", name, dim, len(events))
			}
			prev := 0.0
			for _, e := range events {
				if e.T <= prev || e.T > p.Timing.Duration {
					t.Fatalf("%s/%d: bad event time %v after %v", name, dim, e.T, prev)
				}
				prev = e.T
				if e.Op != OpIdle && len(e.Values) != dim {
					t.Fatalf("%s/%d: %d values", name, dim, len(e.Values))
				}
			}
		}
	}
}

func TestGenerators_Deterministic(t *testing.T) {
	p := DefaultParams()
	p.Timing.Duration = 1

	a, _ := NewDrag(p)
	b, _ := NewDrag(p)
	ea, eb := drain(t, a), drain(t, b)
	if len(ea) != len(eb) {
		t.Fatalf("lengths differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i].T != eb[i].T || ea[i].Op != eb[i].Op {
			t.Fatalf("event %d differs", i)
		}
	}
}

func TestGenerators_BadParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"dim zero", func(p *Params) { p.Dim = 0 }},
		{"dim five", func(p *Params) { p.Dim = 5 }},
		{"interval", func(p *Params) { p.Timing.Interval = 0 }},
		{"jitter", func(p *Params) { p.Timing.Jitter = 1.5 }},
		{"duration", func(p *Params) { p.Timing.Duration = -1 }},
		{"drop rate", func(p *Params) { p.DropRate = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			if _, err := NewCircle(p); !errors.Is(err, ErrBadParams) {
				t.Errorf("expected ErrBadParams, got %v", err)
			}
		})
	}
}

func TestRegistry_Unknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Get("nope", DefaultParams()); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}
	if _, err := reg.Get("replay", DefaultParams()); !errors.Is(err, ErrBadParams) {
		t.Errorf("expected ErrBadParams for empty replay, got %v", err)
	}
	if names := reg.List(); len(names) != 5 || names[0] != "circle" {
		t.Errorf("List() = %v", names)
	}
}

func TestSpring_SettlesOnTarget(t *testing.T) {
	p := DefaultParams()
	p.Frequency = 0
	p.DropRate = 0
	p.Timing.Duration = 5

	s, err := NewSpring(p)
	if err != nil {
		t.Fatal(err)
	}
	e0 := s.Energy()
	events := drain(t, s)
	last := events[len(events)-1]

	for i, v := range last.Values {
		if math.Abs(v-s.target[i]) > 1e-2 {
			t.Errorf("axis %d at %v, target %v", i, v, s.target[i])
		}
	}
	if s.Energy() >= e0 {
		t.Errorf("damped spring gained energy: %v -> %v", e0, s.Energy())
	}
}

func TestEventApply(t *testing.T) {
	s, _ := series.New(series.WithDimension(2))
	events := []Event{
		{T: 1, Op: OpPush, Values: []float64{1, 1}},
		{T: 2, Op: OpMove, Values: []float64{1, 0}},
		{T: 3, Op: OpSet, Values: []float64{0, 0}},
		{T: 4, Op: OpIdle},
	}
	for _, e := range events {
		if err := e.Apply(s); err != nil {
			t.Fatal(err)
		}
	}
	if s.Len() != 5 || !s.Stable() {
		t.Errorf("Len() = %d, Stable() = %v", s.Len(), s.Stable())
	}

	bad := Event{T: 5, Op: OpPush, Values: []float64{1}}
	if err := bad.Apply(s); !errors.Is(err, series.ErrArityMismatch) {
		t.Errorf("expected arity error, got %v", err)
	}
	if err := (Event{T: 6, Op: Op(9)}).Apply(s); !errors.Is(err, ErrUnknownOp) {
		t.Errorf("expected ErrUnknownOp, got %v", err)
	}
}

func TestEventLog(t *testing.T) {
	events := []Event{
		{T: 0.5, Op: OpPush, Values: []float64{1.25, -3}},
		{T: 0.75, Op: OpIdle},
		{T: 1, Op: OpMove, Values: []float64{0.1, 0.2}},
	}

	var buf bytes.Buffer
	if err := WriteEvents(&buf, 2, events); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "t,op,v0,v1\n") {
		t.Errorf("unexpected header in %q", buf.String())
	}

	got, dim, err := ReadEvents(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dim != 2 || len(got) != 3 {
		t.Fatalf("dim=%d len=%d", dim, len(got))
	}
	if got[0].Values[0] != 1.25 || got[1].Op != OpIdle || got[2].Op != OpMove {
		t.Errorf("got %+v", got)
	}
}

func TestReadEvents_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"empty", "", 1},
		{"header", "time,kind\n", 1},
		{"bad time", "t,op,v0\nabc,push,1\n", 2},
		{"bad op", "t,op,v0\n1,push,1\n2,jump,1\n", 3},
		{"missing value", "t,op,v0,v1\n1,set,1\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadEvents(strings.NewReader(tt.in))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Line != tt.line {
				t.Errorf("line = %d, want %d", pe.Line, tt.line)
			}
		})
	}
}
