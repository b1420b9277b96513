package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/filtvec/internal/playback"
	"github.com/san-kum/filtvec/internal/series"
	"github.com/san-kum/filtvec/internal/signal"
)

const (
	DefaultSource    = "circle"
	DefaultDimension = 2
	DefaultDuration  = 10.0
	DefaultFrameRate = 60.0
	DefaultDelay     = 0.05
	DefaultInterval  = 1.0 / 60.0
	DefaultJitter    = 0.5
	DefaultAmplitude = 10.0
	DefaultFrequency = 0.25
	DefaultDropRate  = 0.05
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Source    string       `yaml:"source"`
	Dimension int          `yaml:"dimension"`
	Duration  float64      `yaml:"duration"`
	FrameRate float64      `yaml:"frame_rate"`
	Delay     float64      `yaml:"delay"`
	FlushLag  float64      `yaml:"flush_lag"`
	Seed      int64        `yaml:"seed"`
	Compress  bool         `yaml:"compress"`
	Signal    SignalConfig `yaml:"signal"`
}

type SignalConfig struct {
	Interval  float64 `yaml:"interval"`
	Jitter    float64 `yaml:"jitter"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	DropRate  float64 `yaml:"drop_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Source:    DefaultSource,
		Dimension: DefaultDimension,
		Duration:  DefaultDuration,
		FrameRate: DefaultFrameRate,
		Delay:     DefaultDelay,
		Seed:      1,
		Signal: SignalConfig{
			Interval:  DefaultInterval,
			Jitter:    DefaultJitter,
			Amplitude: DefaultAmplitude,
			Frequency: DefaultFrequency,
			DropRate:  DefaultDropRate,
		},
	}
}

// Load reads a YAML file over the defaults, so a partial file only
// overrides what it names.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: source is empty", ErrInvalid)
	}
	if c.Dimension < 1 || c.Dimension > series.MaxDim {
		return fmt.Errorf("%w: dimension must be between 1 and %d, got %d", ErrInvalid, series.MaxDim, c.Dimension)
	}
	if err := c.Playback().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Signal.Interval <= 0 {
		return fmt.Errorf("%w: signal interval must be positive, got %f", ErrInvalid, c.Signal.Interval)
	}
	if c.Signal.Jitter < 0 || c.Signal.Jitter > 1 {
		return fmt.Errorf("%w: signal jitter must be within [0, 1], got %f", ErrInvalid, c.Signal.Jitter)
	}
	if c.Signal.DropRate < 0 || c.Signal.DropRate > 1 {
		return fmt.Errorf("%w: drop rate must be within [0, 1], got %f", ErrInvalid, c.Signal.DropRate)
	}
	return nil
}

// SignalParams maps the config onto generator parameters. The source runs
// for the same duration the playback renders.
func (c *Config) SignalParams() signal.Params {
	return signal.Params{
		Dim:  c.Dimension,
		Seed: c.Seed,
		Timing: signal.Timing{
			Interval: c.Signal.Interval,
			Jitter:   c.Signal.Jitter,
			Duration: c.Duration,
		},
		Amplitude: c.Signal.Amplitude,
		Frequency: c.Signal.Frequency,
		DropRate:  c.Signal.DropRate,
	}
}

func (c *Config) Playback() playback.Config {
	return playback.Config{
		FrameRate:      c.FrameRate,
		Duration:       c.Duration,
		Delay:          c.Delay,
		FlushLag:       c.FlushLag,
		ValidateFrames: true,
	}
}
