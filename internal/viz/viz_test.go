package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/experiment"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	vm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return vm, cmd
}

func newTestModel(t *testing.T) Model {
	cfg := config.GetPreset("decay", "unit")
	cfg.Method = "euler"
	cfg.Grid.Points = 5
	return NewModel(experiment.NewRunner(), cfg)
}

func TestModel_CycleMethod(t *testing.T) {
	m := newTestModel(t)
	if m.Method() != "euler" {
		t.Fatalf("initial method = %q, want euler", m.Method())
	}

	var seen []string
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, keyPress('m'))
		seen = append(seen, m.Method())
	}
	want := []string{"rk2", "rk4", "euler"}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("cycle[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
	if m.Result().Method != "euler" {
		t.Errorf("result method = %q, want euler", m.Result().Method)
	}
}

func TestModel_RefineCoarsen(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyPress('+'))
	if m.Points() != 9 {
		t.Errorf("after refine points = %d, want 9", m.Points())
	}
	if got := len(m.Result().Trajectory); got != 9 {
		t.Errorf("trajectory len = %d, want 9", got)
	}

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, keyPress('-'))
	}
	if m.Points() != 2 {
		t.Errorf("after coarsening points = %d, want 2", m.Points())
	}

	m, _ = press(t, m, keyPress('r'))
	if m.Points() != 5 {
		t.Errorf("after reset points = %d, want 5", m.Points())
	}
}

func TestModel_RefineLowersError(t *testing.T) {
	m := newTestModel(t)
	coarse := m.Result().MaxError()
	m, _ = press(t, m, keyPress('+'))
	fine := m.Result().MaxError()
	if !(fine < coarse) {
		t.Errorf("refined error %e should be below %e", fine, coarse)
	}
}

func TestModel_ToggleExactAndQuit(t *testing.T) {
	m := newTestModel(t)
	if !m.ShowExact() {
		t.Fatal("exact overlay should start on")
	}
	m, _ = press(t, m, keyPress('e'))
	if m.ShowExact() {
		t.Error("exact overlay should be off after toggle")
	}

	_, cmd := press(t, m, keyPress('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	for _, want := range []string{"ODESTEP", "decay", "euler", "max err", "refine"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ViewError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Equation = "nonexistent"
	m := NewModel(experiment.NewRunner(), cfg)
	if !strings.Contains(m.View(), "error") {
		t.Error("View() should report the run error")
	}
}

func TestPlot(t *testing.T) {
	if got := Plot(nil, nil, PlotOptions{}); got != "" {
		t.Errorf("empty plot = %q, want empty", got)
	}
	if got := Plot(dynamo.Trajectory{math.NaN(), math.Inf(1)}, nil, PlotOptions{}); got != "" {
		t.Errorf("non-finite plot = %q, want empty", got)
	}
	if got := Plot(dynamo.Trajectory{1}, nil, PlotOptions{Width: 10, Height: 3}); got == "" {
		t.Error("single point should still plot")
	}

	traj := dynamo.Linspace(0, 1, 20)
	got := Plot(dynamo.Trajectory(traj), dynamo.Trajectory(traj), PlotOptions{Caption: "ramp"})
	if !strings.Contains(got, "ramp") {
		t.Error("plot missing caption")
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("Sparkline = %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty Sparkline = %q", got)
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"method", "final"}, [][]string{{"rk4", "0.79754751"}, {"euler", "0.85795049"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("Table produced %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "euler") || !strings.Contains(out, "0.85795049") {
		t.Errorf("Table missing row content:\n%s", out)
	}
}
