package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/filtvec/internal/series"
	"github.com/san-kum/filtvec/internal/signal"
)

const (
	trailCapacity = 240
	rawCapacity   = 120
	speedCapacity = 120
	delayStep     = 0.01
	statsWidth    = 42
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2).Foreground(lipgloss.Color("49"))
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(statsWidth)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type Config struct {
	FrameRate     float64
	Delay         float64 // initial render delay, seconds
	Extent        float64 // half-size of the viewport in world units
	Width, Height int     // canvas size in cells
}

func DefaultConfig() Config {
	return Config{FrameRate: 60, Delay: 0.05, Extent: 12, Width: 60, Height: 20}
}

type point struct{ t, x, y float64 }

// Model renders a series live: either fed by a signal source on a virtual
// clock, or by terminal mouse motion on the wall clock.
type Model struct {
	cfg       Config
	name      string
	newSource func() (signal.Source, error)
	mouse     bool
	now       func() time.Time
	start     time.Time

	series  *series.Series
	src     signal.Source
	pending *signal.Event

	wall, display float64
	delay         float64
	value         series.Vec
	velocity      series.Vec
	trail         []point
	raw           []point
	speeds        []float64
	markers       bool
	running       bool
	canvas        *Canvas
	err           error
}

// NewSourceModel renders events from the sources built by newSource; reset
// builds a fresh one.
func NewSourceModel(name string, newSource func() (signal.Source, error), cfg Config) (Model, error) {
	m := Model{cfg: cfg, name: name, newSource: newSource}
	if err := m.init(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// NewMouseModel pushes terminal mouse positions into a 2D series.
func NewMouseModel(cfg Config) (Model, error) {
	m := Model{cfg: cfg, name: "mouse", mouse: true}
	if err := m.init(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) init() error {
	if m.cfg.FrameRate <= 0 {
		return fmt.Errorf("viz: frame rate must be positive, got %f", m.cfg.FrameRate)
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.delay = m.cfg.Delay
	m.markers = true
	m.running = true
	m.canvas = NewCanvas(max(m.cfg.Width, 10), max(m.cfg.Height, 5))
	return m.reset()
}

func (m *Model) reset() error {
	dim := 2
	if !m.mouse {
		src, err := m.newSource()
		if err != nil {
			return err
		}
		m.src = src
		m.pending = nil
		dim = src.Dim()
	}

	s, err := series.New(series.WithDimension(dim))
	if err != nil {
		return err
	}
	m.series = s
	m.start = m.now()
	m.wall, m.display = 0, 0
	m.value, m.velocity = series.Vec{}, series.Vec{}
	m.trail = m.trail[:0]
	m.raw = m.raw[:0]
	m.speeds = m.speeds[:0]
	m.err = nil
	return nil
}

func tick(fps float64) tea.Cmd {
	return tea.Tick(time.Duration(float64(time.Second)/fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick(m.cfg.FrameRate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.err = err
			}
		case "m":
			m.markers = !m.markers
		case "+", "=":
			m.delay += delayStep
		case "-", "_":
			m.delay = math.Max(0, m.delay-delayStep)
		}
	case tea.WindowSizeMsg:
		w := max(msg.Width-statsWidth-8, 10)
		h := max(msg.Height-4, 5)
		if w != m.canvas.Width || h != m.canvas.Height {
			m.canvas = NewCanvas(w, h)
		}
	case tea.MouseMsg:
		if m.mouse && m.running && m.err == nil {
			m.pushMouse(msg.X, msg.Y)
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		return m, tick(m.cfg.FrameRate)
	}
	return m, nil
}

// step advances the clock one frame, ingests due input and evaluates the
// curve at the delayed display time.
func (m *Model) step() {
	if m.mouse {
		m.wall = m.now().Sub(m.start).Seconds()
	} else {
		m.wall += 1 / m.cfg.FrameRate
		m.ingest()
	}

	m.display = m.wall - m.delay
	m.value = m.series.CurveVec(m.display)
	m.velocity = m.series.DCurveVec(m.display)
	m.series.Flush(m.display)

	x, y := m.project(m.display, m.value)
	m.trail = appendCapped(m.trail, point{t: m.display, x: x, y: y}, trailCapacity)
	m.speeds = appendCapped(m.speeds, norm(m.velocity.Slice(m.series.Dim())), speedCapacity)
}

func (m *Model) ingest() {
	for {
		if m.pending == nil {
			e, ok := m.src.Next()
			if !ok {
				return
			}
			m.pending = &e
		}
		if m.pending.T > m.wall {
			return
		}
		e := *m.pending
		m.pending = nil

		before := m.series.Len()
		if err := e.Apply(m.series); err != nil {
			m.err = err
			return
		}
		if m.series.Len() > before {
			m.markRaw()
		}
	}
}

func (m *Model) pushMouse(col, row int) {
	t := m.now().Sub(m.start).Seconds()
	x, y := float64(col-2), -float64(row-1)
	if err := m.series.Push(t, x, y); err != nil {
		m.err = err
		return
	}
	if m.series.LastT() == t {
		m.markRaw()
	}
}

func (m *Model) markRaw() {
	newest := m.series.At(m.series.Len() - 1)
	x, y := m.project(newest.T, newest.Value)
	m.raw = appendCapped(m.raw, point{t: newest.T, x: x, y: y}, rawCapacity)
}

// project maps a sample to the plane: the first two components, or time
// against the value for a 1D series.
func (m *Model) project(t float64, v series.Vec) (float64, float64) {
	if m.series.Dim() == 1 {
		return t, v[0]
	}
	return v[0], v[1]
}

func (m *Model) viewport() Viewport {
	switch {
	case m.mouse:
		return Viewport{MinX: 0, MaxX: float64(m.canvas.Width), MinY: -float64(m.canvas.Height), MaxY: 0}
	case m.series.Dim() == 1:
		window := float64(trailCapacity) / m.cfg.FrameRate
		return Viewport{MinX: m.display - window, MaxX: m.display, MinY: -m.cfg.Extent, MaxY: m.cfg.Extent}
	default:
		return Symmetric(m.cfg.Extent)
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	vp := m.viewport()
	w, h := m.canvas.Dots()

	for i := 1; i < len(m.trail); i++ {
		x0, y0 := vp.Project(m.trail[i-1].x, m.trail[i-1].y, w, h)
		x1, y1 := vp.Project(m.trail[i].x, m.trail[i].y, w, h)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	if m.markers {
		for _, p := range m.raw {
			x, y := vp.Project(p.x, p.y, w, h)
			m.canvas.Cross(x, y)
		}
	}
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("ERROR: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(runningStyle.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	dim := m.series.Dim()
	stable := "no"
	if m.series.Stable() {
		stable = "yes"
	}
	rows := [][2]string{
		{"Time", fmt.Sprintf("%.2fs", m.wall)},
		{"Display", fmt.Sprintf("%.2fs", m.display)},
		{"Delay", fmt.Sprintf("%.0fms", m.delay*1000)},
		{"Last input", fmt.Sprintf("%.2fs", m.series.LastT())},
		{"Retained", fmt.Sprintf("%d", m.series.Len())},
		{"Dropped", fmt.Sprintf("%d", m.series.Dropped())},
		{"Stable", stable},
		{"Value", formatVec(m.value.Slice(dim))},
		{"Velocity", formatVec(m.velocity.Slice(dim))},
	}
	for _, r := range rows {
		s.WriteString(labelStyle.Render(r[0]) + valueStyle.Render(r[1]) + "\n")
	}

	if len(m.speeds) > 1 {
		chart := asciigraph.Plot(m.speeds, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit\nM:Markers +/-:Delay"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the program full screen, with mouse motion reporting in mouse
// mode.
func Run(m Model) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if m.mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	if len(s) >= capacity {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, c := range v {
		sum += c * c
	}
	return math.Sqrt(sum)
}

func formatVec(v []float64) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf("%.2f", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
