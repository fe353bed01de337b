package viz

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/cyclosim/internal/analysis"
	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	fps             = 60
	width           = 60
	height          = 24
	trailCapacity   = 1500
	historyCapacity = 600
)

type Status int

const (
	StatusAccelerating Status = iota
	StatusExtracted
	StatusStopped
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "Extracted"
	case StatusStopped:
		return "Stopped"
	case StatusPaused:
		return "Paused"
	}
	return "Accelerating"
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// slider is a live-tunable config parameter.
type slider struct {
	key, label string
	step       float64
	lo, hi     float64
}

var sliders = []slider{
	{"mass", "Mass", 0.1, 0.1, 10},
	{"charge", "Charge", 0.1, -5, 5},
	{"magnetic_field", "Field B", 0.1, 0.1, 5},
	{"voltage", "Voltage", 0.5, -20, 20},
	{"initial_speed", "Init speed", 0.5, 0, 50},
	{"boundary_radius", "Dee radius", 1, 5, 100},
}

type trailPoint struct {
	pos       r3.Vec
	extracted bool
}

// Model is the live cyclotron view. Parameters are re-read from cfg on
// every step, so slider changes act on the moving particle.
type Model struct {
	cfg     *config.Config
	initial *config.Config
	integ   *lorentz.Integrator
	state   *lorentz.State
	log     *slog.Logger

	stepsPerFrame int
	running       bool
	halted        bool
	err           error
	frame         int
	crossings     int

	width, height int
	canvas        *Canvas
	camera        *Camera
	trail         []trailPoint
	energyHistory []float64
	radiusHistory []float64

	selected int
	theme    Theme
	showHelp bool
}

func NewModel(cfg *config.Config, integ *lorentz.Integrator) Model {
	if integ == nil {
		integ = lorentz.New(nil)
	}
	m := Model{
		cfg:           cfg,
		initial:       cfg.Clone(),
		integ:         integ,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		stepsPerFrame: 2,
		running:       true,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(cfg.Boundary.Radius),
		trail:         make([]trailPoint, 0, trailCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
		radiusHistory: make([]float64, 0, historyCapacity),
		theme:         ThemeCyberpunk,
	}
	m.state = cfg.InitialState()
	m.camera.Snap(m.fitRadius())
	return m
}

// WithLogger routes gap crossings and wall events to l.
func (m Model) WithLogger(l *slog.Logger) Model {
	if l != nil {
		m.log = l
	}
	return m
}

func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "R":
			*m.cfg = *m.initial.Clone()
			m.reset()
		case "e":
			m.cfg.Boundary.ExtractionEnabled = !m.cfg.Boundary.ExtractionEnabled
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(sliders)
		case "shift+tab":
			m.selected = (m.selected + len(sliders) - 1) % len(sliders)
		case "up", "k":
			m.adjust(1)
		case "down", "j":
			m.adjust(-1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case ">", ".":
			m.stepsPerFrame = clamp(m.stepsPerFrame*2, 1, 64)
		case "<", ",":
			m.stepsPerFrame = clamp(m.stepsPerFrame/2, 1, 64)
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running && !m.halted {
			m.advance()
		}
		m.camera.Follow(m.fitRadius())
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjust(dir float64) {
	s := sliders[m.selected]
	v := m.cfg.GetParams()[s.key] + dir*s.step
	v = clamp(math.Round(v/s.step)*s.step, s.lo, s.hi)
	if err := m.cfg.SetParam(s.key, v); err != nil {
		m.err = err
	}
}

// advance runs one frame of physics.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerFrame; i++ {
		p := m.cfg.Params()
		rep, err := m.integ.Step(m.state, p)
		if err != nil {
			m.err, m.halted = err, true
			return
		}

		if rep.Impulse {
			m.crossings++
			m.log.Debug("gap crossing", "t", m.state.ElapsedTime, "speed", rep.SpeedAfter)
		}
		switch rep.Outcome {
		case lorentz.Extracted:
			m.log.Info("particle extracted", "t", m.state.ElapsedTime, "energy", m.state.KineticEnergy(p.Mass))
		case lorentz.Halted:
			m.log.Info("particle stopped at the dee edge", "t", m.state.ElapsedTime)
			m.halted = true
			return
		}
	}

	m.frame++
	if m.frame%trailEvery(m.state.Speed(), m.state.Radius()) == 0 {
		m.trail = append(m.trail, trailPoint{pos: m.state.Position, extracted: m.state.Extracted})
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
	}

	m.energyHistory = appendCapped(m.energyHistory, m.state.KineticEnergy(m.cfg.Particle.Mass), historyCapacity)
	m.radiusHistory = appendCapped(m.radiusHistory, m.state.Radius(), historyCapacity)
}

// trailEvery thins the trail for fast, wide orbits, which would otherwise
// flood the buffer with points on the same ring.
func trailEvery(speed, radius float64) int {
	bySpeed := clamp(int(speed/15), 1, 5)
	byRadius := clamp(int(radius/10), 1, 5)
	return min(bySpeed, byRadius)
}

func appendCapped(xs []float64, v float64, limit int) []float64 {
	xs = append(xs, v)
	if len(xs) > limit {
		xs = xs[1:]
	}
	return xs
}

// reset relaunches the particle with the current slider values.
func (m *Model) reset() {
	m.state = m.cfg.InitialState()
	m.trail = m.trail[:0]
	m.energyHistory = m.energyHistory[:0]
	m.radiusHistory = m.radiusHistory[:0]
	m.halted = false
	m.err = nil
	m.crossings = 0
	m.frame = 0
	m.camera.Snap(m.fitRadius())
}

func (m *Model) resize(w, h int) {
	cw := clamp(w-56, 20, 200)
	ch := clamp(h-4, 10, 100)
	m.width, m.height = cw, ch
	m.canvas = NewCanvas(cw, ch)
}

// fitRadius is the world radius the camera should keep in view.
func (m *Model) fitRadius() float64 {
	r := math.Max(m.cfg.Boundary.Radius, m.state.Radius())
	for _, p := range m.trail {
		if !p.extracted {
			continue
		}
		r = math.Max(r, math.Hypot(p.pos.X, p.pos.Z))
	}
	return r
}

func (m Model) Status() Status {
	switch {
	case m.state.Extracted:
		return StatusExtracted
	case m.halted:
		return StatusStopped
	case !m.running:
		return StatusPaused
	}
	return StatusAccelerating
}

func (m Model) State() *lorentz.State { return m.state }

func (m *Model) draw() {
	m.canvas.Clear()
	sw, sh := m.width*2, m.height*4
	cx, cy := m.camera.Project(0, 0, sw, sh)
	scale := m.camera.Scale(sw, sh)

	// gap between the dees
	_, top := m.camera.Project(0, m.camera.Extent, sw, sh)
	_, bottom := m.camera.Project(0, -m.camera.Extent, sw, sh)
	m.canvas.DrawDashedLine(cx, top, cx, bottom, 2, 2)

	if r := m.cfg.Boundary.Radius; r > 0 {
		m.canvas.DrawCircle(cx, cy, int(math.Round(r*scale)))
		if m.cfg.Boundary.ExtractionEnabled {
			tol := m.cfg.Boundary.ExtractionTolerance
			if tol <= 0 {
				tol = lorentz.DefaultExtractionTolerance
			}
			a := m.cfg.Boundary.ExtractionAngle
			for dr := 1.0; dr <= 3; dr++ {
				m.canvas.DrawArc(cx, cy, r*scale+dr, a-tol, a+tol)
			}
		}
	}

	var prev *trailPoint
	for i := range m.trail {
		p := &m.trail[i]
		x1, y1 := m.camera.Project(p.pos.X, p.pos.Z, sw, sh)
		if prev != nil {
			x0, y0 := m.camera.Project(prev.pos.X, prev.pos.Z, sw, sh)
			m.canvas.DrawLine(x0, y0, x1, y1)
		} else {
			m.canvas.Set(x1, y1)
		}
		prev = p
	}

	px, py := m.camera.Project(m.state.Position.X, m.state.Position.Z, sw, sh)
	m.canvas.Dot(px, py)
}

// View renders the TUI interface.
func (m Model) View() string {
	st := m.theme.styles()
	p := m.cfg.Params()
	speed := m.state.Speed()
	energy := m.state.KineticEnergy(p.Mass)

	var s strings.Builder
	s.WriteString(st.header.Render("CYCLOTRON · "+strings.ToUpper(m.cfg.Name)) + "\n")
	status := m.Status()
	s.WriteString(m.theme.statusStyle(status).Render(status.String()))
	if m.err != nil {
		s.WriteString("  " + lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()))
	}
	s.WriteString("\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	s.WriteString(st.label.Render("Energy trend") + SparklineChart(m.energyHistory, 24) + "\n")
	s.WriteString(st.label.Render("Radius trend") + SparklineChart(m.radiusHistory, 24) + "\n\n")

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2f s", m.state.ElapsedTime))
	row("Speed", fmt.Sprintf("%.2f units/s", speed))
	row("Radius", fmt.Sprintf("%.2f units", m.state.Radius()))
	row("Theor. radius", fmt.Sprintf("%.2f units", analysis.TheoreticalRadius(p.Mass, speed, p.Charge, p.MagneticField)))
	row("Energy", fmt.Sprintf("%.2f units", energy))
	row("Frequency", fmt.Sprintf("%.3f Hz", analysis.CyclotronFrequency(p.Charge, p.MagneticField, p.Mass)))
	row("Crossings", fmt.Sprintf("%d", m.crossings))
	if p.BoundaryRadius > 0 {
		target := analysis.ExtractionEnergy(p.Charge, p.MagneticField, p.BoundaryRadius, p.Mass)
		if target > 0 {
			s.WriteString(st.label.Render("To extraction") + ProgressBar(energy/target, 20) + "\n")
		}
	}
	extraction := "off"
	if p.ExtractionEnabled {
		extraction = "on"
	}
	row("Extraction", extraction)

	s.WriteString("\nPARAMETERS\n")
	values := m.cfg.GetParams()
	for i, sl := range sliders {
		line := fmt.Sprintf("%-10s %s %6.2f", sl.label, sliderBar(values[sl.key], sl.lo, sl.hi, 10), values[sl.key])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}
	s.WriteString(st.help.Render(fmt.Sprintf("SP:Pause R:Reset E:Extract Q:Quit\nTab:Param ↑↓:Tune +-:Zoom <>:Speed x%d\nT:Theme ?:Help", m.stepsPerFrame)))

	canvasView := st.canvas.Render(m.canvas.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  r        - Relaunch the particle    ║
║  R        - Restore launch settings  ║
║  e        - Toggle extraction        ║
║  Tab      - Next parameter           ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  + / -    - Zoom in / out            ║
║  > / <    - Faster / slower          ║
║  t        - Cycle themes             ║
║  q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the live view full screen and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
