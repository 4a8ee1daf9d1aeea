package metrics

import "math"

// ExactError tracks the largest deviation from a reference solution x(t).
type ExactError struct {
	name     string
	exact    func(t float64) float64
	maxError float64
	samples  int
}

func NewExactError(exact func(t float64) float64) *ExactError {
	return &ExactError{
		name:  "max_error",
		exact: exact,
	}
}

func (e *ExactError) Name() string { return e.name }

func (e *ExactError) Observe(x, t float64) {
	e.samples++
	e.maxError = math.Max(e.maxError, math.Abs(x-e.exact(t)))
}

func (e *ExactError) Value() float64 {
	if e.samples == 0 {
		return math.NaN()
	}
	return e.maxError
}

func (e *ExactError) Reset() {
	e.maxError = 0
	e.samples = 0
}
