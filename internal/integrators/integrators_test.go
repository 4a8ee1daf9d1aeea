package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/equations"
)

func TestReferenceScenario(t *testing.T) {
	grid := dynamo.Linspace(1, 2, 4)

	tests := []struct {
		stepper dynamo.Stepper
		want    []float64
	}{
		{NewEuler(), []float64{0, 0.28049033, 0.59711379, 0.85795049}},
		{NewRK2(), []float64{0, 0.30556218, 0.60501975, 0.79511031}},
		{NewRK4(), []float64{0, 0.3027825, 0.5988007, 0.79754751}},
	}

	for _, tt := range tests {
		t.Run(tt.stepper.Name(), func(t *testing.T) {
			got := tt.stepper.Integrate(equations.Cubic, 0, grid)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-6 {
					t.Errorf("x[%d] = %.8f, want %.8f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConvergenceOrder(t *testing.T) {
	problems := []struct {
		name   string
		t0, t1 float64
	}{
		{"decay", 0, 1},
		{"cosine", 0, 1},
	}

	tests := []struct {
		stepper  dynamo.Stepper
		min, max float64
	}{
		{NewEuler(), 1.8, 2.2},
		{NewRK2(), 3.5, 4.5},
		{NewRK4(), 14, 18},
	}

	for _, p := range problems {
		eq, err := equations.Lookup(p.name)
		if err != nil {
			t.Fatal(err)
		}
		for _, tt := range tests {
			t.Run(p.name+"/"+tt.stepper.Name(), func(t *testing.T) {
				finalError := func(intervals int) float64 {
					grid := dynamo.Linspace(p.t0, p.t1, intervals+1)
					x := tt.stepper.Integrate(eq.F, 1, grid)
					return math.Abs(x.Last() - eq.Exact(1, p.t0, p.t1))
				}

				coarse, fine := finalError(20), finalError(40)
				ratio := coarse / fine
				if ratio < tt.min || ratio > tt.max {
					t.Errorf("error ratio = %.3f (coarse %.3e, fine %.3e), want in [%.1f, %.1f]",
						ratio, coarse, fine, tt.min, tt.max)
				}
			})
		}
	}
}

func TestNonUniformGridUsesFirstInterval(t *testing.T) {
	one := func(x, t float64) float64 { return 1 }
	grid := dynamo.Grid{0, 0.1, 0.5, 0.6}

	for _, s := range []dynamo.Stepper{NewEuler(), NewRK2(), NewRK4()} {
		x := s.Integrate(one, 0, grid)
		want := []float64{0, 0.1, 0.2, 0.3}
		for i := range want {
			if math.Abs(x[i]-want[i]) > 1e-12 {
				t.Errorf("%s: x[%d] = %v, want %v", s.Name(), i, x[i], want[i])
			}
		}
	}
}

func TestNonFiniteDerivativePropagates(t *testing.T) {
	nan := func(x, t float64) float64 { return math.NaN() }
	grid := dynamo.Linspace(0, 1, 5)

	for _, s := range []dynamo.Stepper{NewEuler(), NewRK2(), NewRK4()} {
		x := s.Integrate(nan, 1, grid)
		if x[0] != 1 {
			t.Errorf("%s: x[0] = %v, want 1", s.Name(), x[0])
		}
		if x.IsValid() {
			t.Errorf("%s: expected NaN to propagate, got %v", s.Name(), x)
		}
	}
}

func TestEmptyGrid(t *testing.T) {
	for _, s := range []dynamo.Stepper{NewEuler(), NewRK2(), NewRK4()} {
		x := s.Integrate(equations.Cubic, 1, dynamo.Grid{})
		if len(x) != 0 {
			t.Errorf("%s: len = %d, want 0", s.Name(), len(x))
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"euler", "euler"},
		{"rk2", "rk2"},
		{"midpoint", "rk2"},
		{"RK4", "rk4"},
		{" rk4 ", "rk4"},
	}

	for _, tt := range tests {
		s, err := Lookup(tt.name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.name, err)
			continue
		}
		if s.Name() != tt.want {
			t.Errorf("Lookup(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
		}
	}

	if _, err := Lookup("rk45"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestNames(t *testing.T) {
	got := Names()
	want := []string{"euler", "rk2", "rk4"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
