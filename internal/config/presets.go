package config

import "sort"

func preset(source string, dim int, duration, interval, jitter, freq, drop float64) *Config {
	cfg := DefaultConfig()
	cfg.Source = source
	cfg.Dimension = dim
	cfg.Duration = duration
	cfg.Signal.Interval = interval
	cfg.Signal.Jitter = jitter
	cfg.Signal.Frequency = freq
	cfg.Signal.DropRate = drop
	return cfg
}

var Presets = map[string]map[string]*Config{
	"circle": {
		"smooth":  preset("circle", 2, 10, 1.0/120, 0.1, 0.25, 0),
		"jittery": preset("circle", 2, 10, 1.0/60, 0.9, 0.5, 0.05),
		"sparse":  preset("circle", 2, 10, 1.0/8, 0.5, 0.25, 0.2),
		"helix":   preset("circle", 3, 20, 1.0/60, 0.5, 0.1, 0),
	},
	"teleport": {
		"cuts": preset("teleport", 2, 10, 1.0/30, 0.3, 0.5, 0),
		"rare": preset("teleport", 1, 20, 1.0/30, 0.3, 0.05, 0),
	},
	"drag": {
		"mouse":    preset("drag", 2, 10, 1.0/125, 0.6, 0.25, 0.1),
		"joystick": preset("drag", 2, 10, 1.0/60, 0.2, 0.25, 0.02),
	},
	"spring": {
		"chase":  preset("spring", 2, 15, 1.0/60, 0.5, 0.5, 0),
		"lazy":   preset("spring", 2, 20, 1.0/30, 0.5, 0.1, 0.1),
		"camera": preset("spring", 3, 20, 1.0/60, 0.3, 0.2, 0),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(source, name string) *Config {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	cfg, ok := sourcePresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(source string) []string {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sourcePresets))
	for name := range sourcePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
