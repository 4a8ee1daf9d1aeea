package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/equations"
)

// Level is one refinement of a convergence study.
type Level struct {
	Points      int
	H           float64
	Error       float64
	Evaluations int64
	// Ratio is the previous level's error divided by this one. Zero on the
	// first level.
	Ratio float64
}

// Order is log2(Ratio), the order implied by this refinement alone.
func (l Level) Order() float64 {
	if l.Ratio <= 0 {
		return math.NaN()
	}
	return math.Log2(l.Ratio)
}

// Refine integrates eq over [t0, t1] with the interval count doubled at each
// of the given levels, starting from points grid points.
func Refine(s dynamo.Stepper, eq equations.Equation, x0, t0, t1 float64, points, levels int) ([]Level, error) {
	if !eq.HasExact() {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrNoExactSolution, eq.Name)
	}
	if points < 2 || levels < 1 {
		return nil, fmt.Errorf("%w: need points >= 2 and levels >= 1, got %d and %d",
			dynamo.ErrInvalidConfig, points, levels)
	}
	if !(t1 > t0) {
		return nil, fmt.Errorf("%w: need t1 > t0, got [%g, %g]", dynamo.ErrInvalidConfig, t0, t1)
	}

	out := make([]Level, 0, levels)
	intervals := points - 1
	for k := 0; k < levels; k++ {
		grid := dynamo.Linspace(t0, t1, intervals+1)
		f, calls := dynamo.CountCalls(eq.F)
		approx := s.Integrate(f, x0, grid)

		exact, err := eq.ExactOn(x0, grid)
		if err != nil {
			return nil, err
		}
		e, err := MaxError(approx, exact)
		if err != nil {
			return nil, err
		}

		lvl := Level{Points: len(grid), H: grid.Step(), Error: e, Evaluations: calls.Load()}
		if k > 0 && e > 0 {
			lvl.Ratio = out[k-1].Error / e
		}
		out = append(out, lvl)
		intervals *= 2
	}
	return out, nil
}

// ObservedOrder fits log(error) = a + p·log(h) over the levels with non-zero
// error and returns p. It is NaN when fewer than two such levels exist.
func ObservedOrder(levels []Level) float64 {
	xs := make([]float64, 0, len(levels))
	ys := make([]float64, 0, len(levels))
	for _, l := range levels {
		if l.Error > 0 && l.H > 0 {
			xs = append(xs, math.Log(l.H))
			ys = append(ys, math.Log(l.Error))
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}
