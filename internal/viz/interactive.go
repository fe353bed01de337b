package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/experiment"
	"github.com/san-kum/cyclosim/internal/lorentz"
)

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

var presetInfo = map[string]string{
	"classic":    "proton-like, extracts",
	"gentle":     "small kicks, slow spiral",
	"heavy":      "m=4 q=2 in a stronger field",
	"decelerate": "reversed gap, spirals in",
	"contained":  "no extraction, stops at wall",
	"antiproton": "negative charge and voltage",
	"fast":       "strong field, fine dt",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// App is the launcher: pick a preset, tune it, then watch it live.
type App struct {
	state, cursor int
	presets       []string
	integrators   []string
	reg           *experiment.Registry

	cfg         *config.Config
	paramCursor int
	integCursor int
	editing     bool
	editBuf     string
	err         error

	liveModel Model
	sized     *tea.WindowSizeMsg
}

func NewInteractiveApp(reg *experiment.Registry) *App {
	if reg == nil {
		reg = experiment.NewRegistry()
	}
	return &App{
		state:       stateMenu,
		presets:     config.ListPresets(),
		integrators: reg.ListPushers(),
		reg:         reg,
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.sized = &msg
	}
	if m.state == stateSim {
		return m.forward(msg)
	}
	return m, nil
}

func (m App) forward(msg tea.Msg) (App, tea.Cmd) {
	next, cmd := m.liveModel.Update(msg)
	m.liveModel = next.(Model)
	return m, cmd
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		return m.forward(msg)
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
		m.integCursor = indexOf(m.integrators, m.cfg.Integrator)
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	names := config.ParamNames()
	name := names[m.paramCursor]

	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				m.err = m.cfg.SetParam(name, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(names)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", m.cfg.GetParams()[name])
	case "left", "h":
		m.err = m.cfg.SetParam(name, m.cfg.GetParams()[name]-0.1)
	case "right", "l":
		m.err = m.cfg.SetParam(name, m.cfg.GetParams()[name]+0.1)
	case "i":
		m.integCursor = (m.integCursor + 1) % len(m.integrators)
		m.cfg.Integrator = m.integrators[m.integCursor]
	case "x":
		m.cfg.Boundary.ExtractionEnabled = !m.cfg.Boundary.ExtractionEnabled
	case "s":
		return m.start()
	}
	return m, nil
}

func (m App) start() (App, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	pusher, err := m.reg.GetPusher(m.cfg.Integrator)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.liveModel = NewModel(m.cfg, lorentz.New(pusher))
	if m.sized != nil {
		m.liveModel.resize(m.sized.Width, m.sized.Height)
	}
	m.state = stateSim
	return m, m.liveModel.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("CYCLOSIM") + "\n    " + menuSub.Render("cyclotron particle accelerator") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuDesc.Render(presetInfo[name]))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(presetInfo[name]))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.cfg.Name)) + "\n    " + menuSub.Render(presetInfo[m.cfg.Name]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")

	values := m.cfg.GetParams()
	for i, name := range config.ParamNames() {
		valStr := fmt.Sprintf("%8.3f", values[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			fmt.Fprintf(&b, "    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-16s", name)), menuDesc.Bold(true).Render(valStr))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-16s", name)), menuIdle.Render(valStr))
		}
	}

	extraction := "off"
	if m.cfg.Boundary.ExtractionEnabled {
		extraction = "on"
	}
	fmt.Fprintf(&b, "\n    %s %s   %s %s\n", menuSub.Render("integrator"), menuDesc.Render(m.cfg.Integrator), menuSub.Render("extraction"), menuDesc.Render(extraction))
	if m.err != nil {
		b.WriteString("    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "enter", "edit", "i", "integrator", "x", "extraction", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return 0
}

func RunInteractive(reg *experiment.Registry) error {
	_, err := tea.NewProgram(NewInteractiveApp(reg), tea.WithAltScreen()).Run()
	return err
}
