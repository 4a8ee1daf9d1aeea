package dynamo

import (
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// Func is the right-hand side of dx/dt = f(x, t). It must be pure.
type Func func(x, t float64) float64

// Grid is an ascending sequence of time points with uniform spacing.
type Grid []float64

// Linspace returns n evenly spaced points over [start, end], endpoints included.
func Linspace(start, end float64, n int) Grid {
	switch {
	case n <= 0:
		return Grid{}
	case n == 1:
		return Grid{start}
	}
	return Grid(floats.Span(make([]float64, n), start, end))
}

// Step returns t[1]-t[0], or 0 when the grid has fewer than two points.
func (g Grid) Step() float64 {
	if len(g) < 2 {
		return 0
	}
	return g[1] - g[0]
}

const (
	// epsilon is the spacing of float64 values around 1.
	epsilon = 0x1p-52
	// roundingULPs bounds the spacing error Linspace leaves at large offsets.
	roundingULPs = 4
)

// Validate checks that the grid is non-empty, strictly increasing and that
// every interval matches t[1]-t[0] within tol relative to the step, plus a
// few ulps of the interval endpoints.
func (g Grid) Validate(tol float64) error {
	if len(g) == 0 {
		return ErrEmptyGrid
	}
	h := g.Step()
	for i := 1; i < len(g); i++ {
		w := g[i] - g[i-1]
		if !(w > 0) {
			return &GridError{Index: i - 1, Want: h, Got: w, Wrapped: ErrNotIncreasing}
		}
		allow := tol*math.Abs(h) + roundingULPs*epsilon*math.Max(math.Abs(g[i-1]), math.Abs(g[i]))
		if math.Abs(w-h) > allow {
			return &GridError{Index: i - 1, Want: h, Got: w, Wrapped: ErrNonUniformGrid}
		}
	}
	return nil
}

// Trajectory holds one state value per grid point.
type Trajectory []float64

func (tr Trajectory) IsValid() bool {
	for _, v := range tr {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Last returns the final state, or NaN for an empty trajectory.
func (tr Trajectory) Last() float64 {
	if len(tr) == 0 {
		return math.NaN()
	}
	return tr[len(tr)-1]
}

// Stepper is a fixed-step explicit integrator.
type Stepper interface {
	Name() string
	// Order is the global order of accuracy.
	Order() int
	// Stages is the number of derivative evaluations per step.
	Stages() int
	// Step advances x from t by h.
	Step(f Func, x, t, h float64) float64
	// Integrate folds Step over t starting from x0.
	Integrate(f Func, x0 float64, t Grid) Trajectory
}

// Calls counts derivative evaluations.
type Calls struct {
	n atomic.Int64
}

func (c *Calls) Load() int64 { return c.n.Load() }

// CountCalls wraps f so that every evaluation is counted.
func CountCalls(f Func) (Func, *Calls) {
	c := &Calls{}
	return func(x, t float64) float64 {
		c.n.Add(1)
		return f(x, t)
	}, c
}

// Metric summarizes a trajectory one sample at a time.
type Metric interface {
	Name() string
	Observe(x, t float64)
	Value() float64
	Reset()
}
