package equations

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/dynamo"
)

func TestCubic(t *testing.T) {
	// (-1)^3 + sin(3)
	want := -0.8588799919401328
	if got := Cubic(1, 3); math.Abs(got-want) > 1e-15 {
		t.Errorf("Cubic(1, 3) = %.16f, want %.16f", got, want)
	}
	if got := Cubic(0, 0); got != 0 {
		t.Errorf("Cubic(0, 0) = %v, want 0", got)
	}
}

// The closed forms must satisfy x(t0) = x0 and x'(t) = f(x(t), t).
func TestExactSolutionsSatisfyODE(t *testing.T) {
	const h = 1e-5
	for _, name := range Names() {
		eq, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if !eq.HasExact() {
			continue
		}
		t.Run(name, func(t *testing.T) {
			x0, t0 := 0.3, 0.5
			if got := eq.Exact(x0, t0, t0); math.Abs(got-x0) > 1e-12 {
				t.Fatalf("x(t0) = %v, want %v", got, x0)
			}
			for _, tt := range []float64{0.7, 1.2, 2.5} {
				slope := (eq.Exact(x0, t0, tt+h) - eq.Exact(x0, t0, tt-h)) / (2 * h)
				want := eq.F(eq.Exact(x0, t0, tt), tt)
				if math.Abs(slope-want) > 1e-6 {
					t.Errorf("t=%.2f: x' = %.8f, f(x, t) = %.8f", tt, slope, want)
				}
			}
		})
	}
}

func TestExactOn(t *testing.T) {
	eq, _ := Lookup("decay")
	grid := dynamo.Linspace(1, 3, 5)
	want, err := eq.ExactOn(2, grid)
	if err != nil {
		t.Fatalf("ExactOn: %v", err)
	}
	if len(want) != len(grid) {
		t.Fatalf("len = %d, want %d", len(want), len(grid))
	}
	if want[0] != 2 {
		t.Errorf("first value = %v, want 2", want[0])
	}

	cubic, _ := Lookup("cubic")
	if _, err := cubic.ExactOn(0, grid); !errors.Is(err, dynamo.ErrNoExactSolution) {
		t.Errorf("expected ErrNoExactSolution, got %v", err)
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("nonexistent"); !errors.Is(err, dynamo.ErrUnknownEquation) {
		t.Errorf("expected ErrUnknownEquation, got %v", err)
	}
}
