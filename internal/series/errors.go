package series

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension indicates a dimension outside 1..MaxDim or
	// initial vectors of different lengths.
	ErrInvalidDimension = errors.New("series: invalid dimension, must be between 1 and 4")

	// ErrArityMismatch indicates an append supplied a component count
	// different from the series dimension.
	ErrArityMismatch = errors.New("series: component count does not match dimension")
)

// ArityError reports which append received the wrong number of components.
type ArityError struct {
	Op   string
	Got  int
	Want int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("series: %s: got %d components, want %d", e.Op, e.Got, e.Want)
}

func (e *ArityError) Unwrap() error {
	return ErrArityMismatch
}
