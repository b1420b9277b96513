package playback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/filtvec/internal/series"
	"github.com/san-kum/filtvec/internal/signal"
)

type Runner struct {
	logger    *slog.Logger
	metrics   []Metric
	observers []Observer
}

// New returns a runner that logs through logger, or slog.Default when nil.
func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run renders src for cfg.Duration seconds of wall time.
func (r *Runner) Run(ctx context.Context, src signal.Source, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := series.New(series.WithDimension(src.Dim()))
	if err != nil {
		return nil, err
	}

	frames := int(cfg.Duration*cfg.FrameRate) + 1
	result := &Result{
		Dim:     src.Dim(),
		Events:  make([]signal.Event, 0),
		Frames:  make([]Frame, 0, frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	feed := &feeder{src: src}
	r.logger.Debug("playback started", "dim", src.Dim(), "frames", frames, "delay", cfg.Delay)

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		wall := float64(i) / cfg.FrameRate
		for {
			e, ok := feed.until(wall)
			if !ok {
				break
			}
			if err := e.Apply(s); err != nil {
				return result, fmt.Errorf("playback: event at t=%.4f: %w", e.T, err)
			}
			result.Events = append(result.Events, e)
		}

		display := wall - cfg.Delay
		f := Frame{
			T:        display,
			Value:    s.AppendCurve(nil, display),
			Velocity: s.AppendDCurve(nil, display),
			Stable:   s.Stable(),
		}

		s.Flush(display - cfg.FlushLag)
		f.Retained = s.Len()
		if f.Retained > result.PeakRetained {
			result.PeakRetained = f.Retained
		}

		if cfg.ValidateFrames && !(finite(f.Value) && finite(f.Velocity)) {
			err := FrameError{Frame: i, Time: display}
			r.logger.Warn("invalid frame", "frame", i, "t", display)
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range r.metrics {
			m.Observe(f)
		}
		for _, obs := range r.observers {
			obs.OnFrame(f)
		}
		result.Frames = append(result.Frames, f)
	}

	result.Dropped = s.Dropped()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.logger.Info("playback finished",
		"frames", len(result.Frames),
		"events", len(result.Events),
		"dropped", result.Dropped,
		"peak_retained", result.PeakRetained,
	)
	return result, nil
}

// feeder holds one event of lookahead so arrivals can be cut at a frame
// boundary.
type feeder struct {
	src     signal.Source
	pending *signal.Event
	done    bool
}

func (f *feeder) until(t float64) (signal.Event, bool) {
	if f.pending == nil && !f.done {
		e, ok := f.src.Next()
		if !ok {
			f.done = true
		} else {
			f.pending = &e
		}
	}
	if f.pending == nil || f.pending.T > t {
		return signal.Event{}, false
	}
	e := *f.pending
	f.pending = nil
	return e, true
}
