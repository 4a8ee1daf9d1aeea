package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// RK2 is the midpoint form of second-order Runge-Kutta: a half Euler step
// predicts the midpoint, and the slope there advances the full step.
type RK2 struct{}

func NewRK2() *RK2 {
	return &RK2{}
}

func (r *RK2) Name() string { return "rk2" }
func (r *RK2) Order() int   { return 2 }
func (r *RK2) Stages() int  { return 2 }

func (r *RK2) Step(f dynamo.Func, x, t, h float64) float64 {
	k1 := h * f(x, t)
	k2 := h * f(x+0.5*k1, t+0.5*h)
	return x + k2
}

func (r *RK2) Integrate(f dynamo.Func, x0 float64, t dynamo.Grid) dynamo.Trajectory {
	return integrate(r, f, x0, t)
}
