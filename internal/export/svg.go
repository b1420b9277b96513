package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/filtvec/internal/analysis"
	"github.com/san-kum/filtvec/internal/viz"
)

const (
	background  = "#0a0a0a"
	curveColor  = "#00ff88"
	sampleColor = "#ff9f43"
)

// CanvasToSVG converts a braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	dotsW, dotsH := canvas.Dots()
	width := float64(dotsW) * scale
	height := float64(dotsH) * scale

	var sb strings.Builder
	sb.WriteString(header(width, height))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", curveColor))

	dotRadius := scale * 0.4
	for y := 0; y < dotsH; y++ {
		for x := 0; x < dotsW; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws the smoothed path as a polyline and the raw input
// samples as dots, both scaled into a width x height image.
func TrajectoryToSVG(path *analysis.Path, width, height int) string {
	if path == nil || len(path.Curve) < 2 {
		return ""
	}

	minX, maxX, minY, maxY := path.Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY
	pos := func(p analysis.Point) (float64, float64) {
		return (p.X - minX) / rangeX * float64(width), float64(height) - (p.Y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))
	sb.WriteString(fmt.Sprintf("<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", curveColor))
	for i, p := range path.Curve {
		x, y := pos(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	if len(path.Raw) > 0 {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", sampleColor))
		for _, p := range path.Raw {
			x, y := pos(p)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"2\"/>\n", x, y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
