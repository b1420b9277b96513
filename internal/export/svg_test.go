package export

import (
	"strings"
	"testing"

	"github.com/san-kum/filtvec/internal/analysis"
	"github.com/san-kum/filtvec/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(3, 2)
	c.Set(0, 0)
	c.Set(5, 7)

	svg := CanvasToSVG(c, 4)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("malformed svg:\n%s", svg)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="24" height="32"`) {
		t.Errorf("unexpected size in\n%s", svg)
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	curve := [][]float64{{0, 0}, {1, 1}, {2, 0}}
	raw := [][]float64{{0, 0}, {2, 0}}
	p := analysis.NewPath(curve, raw, 0, 1)

	svg := TrajectoryToSVG(p, 200, 100)
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments in\n%s", svg)
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 sample dots in\n%s", svg)
	}
	if TrajectoryToSVG(analysis.NewPath(curve[:1], nil, 0, 1), 10, 10) != "" {
		t.Error("single point path should give empty output")
	}
}
