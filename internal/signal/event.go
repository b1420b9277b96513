package signal

import (
	"fmt"
	"strings"

	"github.com/san-kum/filtvec/internal/series"
)

// Op selects the series append an event maps to.
type Op int

const (
	OpPush Op = iota
	OpSet
	OpMove
	OpIdle
)

var opNames = [...]string{"push", "set", "move", "idle"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// ParseOp is the inverse of Op.String.
func ParseOp(s string) (Op, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range opNames {
		if n == name {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Event is one input arrival. Values is empty for OpIdle.
type Event struct {
	T      float64
	Op     Op
	Values []float64
}

// Apply performs the event's append on s.
func (e Event) Apply(s *series.Series) error {
	switch e.Op {
	case OpPush:
		return s.Push(e.T, e.Values...)
	case OpSet:
		return s.Set(e.T, e.Values...)
	case OpMove:
		return s.Move(e.T, e.Values...)
	case OpIdle:
		s.Idle(e.T)
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnknownOp, e.Op)
}

// Source yields events with non-decreasing times. Next reports false once
// the source is exhausted.
type Source interface {
	Dim() int
	Next() (Event, bool)
}
