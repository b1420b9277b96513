package playback

import (
	"errors"
	"fmt"

	"github.com/san-kum/filtvec/internal/signal"
)

var (
	ErrInvalidConfig = errors.New("playback: invalid configuration")
	ErrInvalidFrame  = errors.New("playback: frame contains NaN or Inf")
)

// Frame is one rendered query. Value and Velocity are owned by the frame.
type Frame struct {
	T        float64 // display time the curve was evaluated at
	Value    []float64
	Velocity []float64
	Retained int  // samples held by the series after this frame's flush
	Stable   bool // newest sample has zero velocity
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}

type Config struct {
	FrameRate      float64 // frames per second
	Duration       float64 // wall time to render, seconds
	Delay          float64 // render latency behind the newest input
	FlushLag       float64 // extra history kept behind the display time
	ValidateFrames bool
}

func DefaultConfig() Config {
	return Config{
		FrameRate:      60,
		Duration:       10,
		Delay:          0.05,
		FlushLag:       0,
		ValidateFrames: true,
	}
}

func (c Config) Validate() error {
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive, got %f", ErrInvalidConfig, c.FrameRate)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative, got %f", ErrInvalidConfig, c.Delay)
	}
	if c.FlushLag < 0 {
		return fmt.Errorf("%w: flush lag must not be negative, got %f", ErrInvalidConfig, c.FlushLag)
	}
	return nil
}

type Result struct {
	Dim          int
	Events       []signal.Event
	Frames       []Frame
	Metrics      map[string]float64
	PeakRetained int
	Dropped      int
	Errors       []error
}

// FrameError records a frame that failed validation.
type FrameError struct {
	Frame int
	Time  float64
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, ErrInvalidFrame)
}

func (e FrameError) Unwrap() error {
	return ErrInvalidFrame
}
