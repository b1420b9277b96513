package analysis

import "strings"

type Point struct{ X, Y float64 }

// Path holds the smoothed curve and the raw samples projected onto two
// components.
type Path struct {
	XIndex, YIndex int
	Curve          []Point
	Raw            []Point
}

// NewPath projects curve rows and raw rows onto components x and y. Rows
// too short for either index are skipped, as are empty raw rows (idle
// input).
func NewPath(curve, raw [][]float64, x, y int) *Path {
	p := &Path{
		XIndex: x,
		YIndex: y,
		Curve:  project(curve, x, y),
		Raw:    project(raw, x, y),
	}
	return p
}

func project(rows [][]float64, x, y int) []Point {
	pts := make([]Point, 0, len(rows))
	for _, r := range rows {
		if x >= len(r) || y >= len(r) {
			continue
		}
		pts = append(pts, Point{X: r[x], Y: r[y]})
	}
	return pts
}

// Bounds returns the extent of all points with 10% padding on each side.
func (p *Path) Bounds() (minX, maxX, minY, maxY float64) {
	all := append(append([]Point{}, p.Curve...), p.Raw...)
	if len(all) == 0 {
		return -1, 1, -1, 1
	}
	minX, maxX = all[0].X, all[0].X
	minY, maxY = all[0].Y, all[0].Y
	for _, pt := range all {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, maxX + rangeX*0.1, minY - rangeY*0.1, maxY + rangeY*0.1
}

// ASCII draws the curve with '•' and raw samples with 'o' on a
// width x height character grid, with axes where they are visible.
func (p *Path) ASCII(width, height int) string {
	if p == nil || (len(p.Curve) == 0 && len(p.Raw) == 0) || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := p.Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	cell := func(pt Point) (int, int, bool) {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		return row, col, row >= 0 && row < height && col >= 0 && col < width
	}

	if minX <= 0 && maxX >= 0 {
		_, col, _ := cell(Point{X: 0, Y: minY})
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row, _, _ := cell(Point{X: minX, Y: 0})
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Curve {
		if row, col, ok := cell(pt); ok {
			canvas[row][col] = '•'
		}
	}
	for _, pt := range p.Raw {
		if row, col, ok := cell(pt); ok {
			canvas[row][col] = 'o'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
