package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// RK4 is the classical four-stage Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }
func (r *RK4) Order() int   { return 4 }
func (r *RK4) Stages() int  { return 4 }

func (r *RK4) Step(f dynamo.Func, x, t, h float64) float64 {
	k1 := h * f(x, t)
	k2 := h * f(x+0.5*k1, t+0.5*h)
	k3 := h * f(x+0.5*k2, t+0.5*h)
	k4 := h * f(x+k3, t+h)
	return x + (k1+2*k2+2*k3+k4)/6
}

func (r *RK4) Integrate(f dynamo.Func, x0 float64, t dynamo.Grid) dynamo.Trajectory {
	return integrate(r, f, x0, t)
}
