package signal

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSource = errors.New("signal: unknown source")
	ErrUnknownOp     = errors.New("signal: unknown operation")
	ErrBadParams     = errors.New("signal: invalid source parameters")
)

// ParseError locates a malformed row in an event log.
type ParseError struct {
	Line    int
	Wrapped error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("signal: line %d: %v", e.Line, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}
