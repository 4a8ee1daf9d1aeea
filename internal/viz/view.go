package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/experiment"
)

const (
	minPoints = 2
	maxPoints = 1 << 16
)

type keyMap struct {
	Method  key.Binding
	Refine  key.Binding
	Coarsen key.Binding
	Exact   key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Method:  key.NewBinding(key.WithKeys("m", "tab"), key.WithHelp("m", "method")),
		Refine:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "refine")),
		Coarsen: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "coarsen")),
		Exact:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "exact")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Method, k.Refine, k.Coarsen, k.Exact, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Method, k.Exact}, {k.Refine, k.Coarsen}, {k.Reset, k.Quit}}
}

// Model is a Bubble Tea viewer for one equation. Each key press that changes
// the method or grid re-integrates synchronously.
type Model struct {
	runner  *experiment.Runner
	base    config.Config
	cfg     config.Config
	methods []string
	method  int

	showExact     bool
	width, height int

	keys keyMap
	help help.Model

	result *experiment.Result
	err    error
}

func NewModel(runner *experiment.Runner, cfg *config.Config) Model {
	m := Model{
		runner:    runner,
		base:      *cfg,
		cfg:       *cfg,
		methods:   runner.Registry().ListMethods(),
		showExact: true,
		width:     80,
		height:    24,
		keys:      defaultKeys(),
		help:      newHelp(),
	}
	if m.cfg.Grid.Points < minPoints {
		m.cfg.Grid.Points = minPoints
		m.base.Grid.Points = minPoints
	}
	for i, name := range m.methods {
		if name == cfg.Method {
			m.method = i
		}
	}
	m.cfg.Method = m.methods[m.method]
	m.recompute()
	return m
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = KeyHint.Bold(true)
	h.Styles.ShortDesc = KeyHint
	h.Styles.FullKey = KeyHint.Bold(true)
	h.Styles.FullDesc = KeyHint
	return h
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Method):
		m.method = (m.method + 1) % len(m.methods)
		m.cfg.Method = m.methods[m.method]
	case key.Matches(msg, m.keys.Refine):
		if p := (m.cfg.Grid.Points-1)*2 + 1; p <= maxPoints {
			m.cfg.Grid.Points = p
		}
	case key.Matches(msg, m.keys.Coarsen):
		m.cfg.Grid.Points = max(minPoints, (m.cfg.Grid.Points-1)/2+1)
	case key.Matches(msg, m.keys.Exact):
		m.showExact = !m.showExact
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.cfg = m.base
		m.cfg.Method = m.methods[m.method]
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

func (m *Model) recompute() {
	m.result, m.err = m.runner.Run(context.Background(), &m.cfg)
}

func (m Model) Method() string  { return m.cfg.Method }
func (m Model) Points() int     { return m.cfg.Grid.Points }
func (m Model) ShowExact() bool { return m.showExact }

func (m Model) Result() *experiment.Result { return m.result }

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(Title.Render("ODESTEP") + "  " + Subtle.Render(m.cfg.Equation) + "\n\n")

	if m.err != nil {
		b.WriteString(StatusBad.Render("error: "+m.err.Error()) + "\n")
		b.WriteString("\n" + m.help.ShortHelpView([]key.Binding{m.keys.Reset, m.keys.Quit}) + "\n")
		return b.String()
	}

	res := m.result
	var exact []float64
	if m.showExact {
		exact = res.Exact
	}
	plot := Plot(res.Trajectory, exact, PlotOptions{
		Width:  max(20, m.width-16),
		Height: max(5, m.height-12),
	})
	if plot == "" {
		plot = StatusBad.Render("trajectory is not finite")
	}
	b.WriteString(Panel.Render(plot) + "\n")

	status := StatusOK.Render("valid")
	if !res.Valid {
		status = StatusBad.Render("non-finite")
	}
	stats := []string{
		metric("method", res.Method),
		metric("points", fmt.Sprintf("%d", len(res.Times))),
		metric("h", fmt.Sprintf("%.4g", res.Times.Step())),
		metric("final", fmt.Sprintf("%.8f", res.Trajectory.Last())),
		metric("evals", fmt.Sprintf("%d", res.Evaluations)),
	}
	if e := res.MaxError(); !math.IsNaN(e) {
		stats = append(stats, metric("max err", fmt.Sprintf("%.3e", e)))
	}
	stats = append(stats, status)
	b.WriteString(strings.Join(stats, "   ") + "\n\n")

	b.WriteString(m.help.View(m.keys) + "\n")
	return b.String()
}

func metric(label, value string) string {
	return MetricLabel.Render(label+" ") + MetricValue.Render(value)
}

// Run starts the viewer in the alternate screen and blocks until it exits.
func Run(runner *experiment.Runner, cfg *config.Config) error {
	_, err := tea.NewProgram(NewModel(runner, cfg), tea.WithAltScreen()).Run()
	return err
}
