package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// Euler is the forward Euler method. Global error is O(h).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }
func (e *Euler) Order() int   { return 1 }
func (e *Euler) Stages() int  { return 1 }

func (e *Euler) Step(f dynamo.Func, x, t, h float64) float64 {
	return x + h*f(x, t)
}

func (e *Euler) Integrate(f dynamo.Func, x0 float64, t dynamo.Grid) dynamo.Trajectory {
	return integrate(e, f, x0, t)
}
