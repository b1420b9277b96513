package sweep

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/filtvec/internal/playback"
)

var ErrBadGrid = errors.New("sweep: invalid grid")

// Parameters a grid may vary, applied onto a playback.Config.
var setters = map[string]func(*playback.Config, float64){
	"delay":      func(c *playback.Config, v float64) { c.Delay = v },
	"flush_lag":  func(c *playback.Config, v float64) { c.FlushLag = v },
	"frame_rate": func(c *playback.Config, v float64) { c.FrameRate = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for n := range setters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type Grid struct {
	paramNames []string
	ranges     [][]float64
}

func NewGrid(params []string, ranges [][]float64) (*Grid, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("%w: %d parameters with %d ranges", ErrBadGrid, len(params), len(ranges))
	}
	for i, p := range params {
		if _, ok := setters[p]; !ok {
			return nil, fmt.Errorf("%w: unknown parameter %q (available: %s)", ErrBadGrid, p, strings.Join(ParamNames(), ", "))
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", ErrBadGrid, p)
		}
	}
	return &Grid{paramNames: params, ranges: ranges}, nil
}

// Points returns the cartesian product of the ranges, first parameter
// varying slowest.
func (g *Grid) Points() []map[string]float64 {
	points := make([]map[string]float64, 0)
	g.collect(0, make(map[string]float64), &points)
	return points
}

func (g *Grid) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val
		g.collect(depth+1, next, out)
	}
}

// Apply returns base with the point's parameters set.
func Apply(base playback.Config, point map[string]float64) playback.Config {
	cfg := base
	for name, v := range point {
		if set, ok := setters[name]; ok {
			set(&cfg, v)
		}
	}
	return cfg
}
