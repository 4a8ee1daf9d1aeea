package integrators

import "github.com/san-kum/odestep/internal/dynamo"

// integrate folds step over t with h fixed at t[1]-t[0].
func integrate(s dynamo.Stepper, f dynamo.Func, x0 float64, t dynamo.Grid) dynamo.Trajectory {
	if len(t) == 0 {
		return dynamo.Trajectory{}
	}
	h := t.Step()
	x := make(dynamo.Trajectory, len(t))
	x[0] = x0
	for i := 1; i < len(t); i++ {
		x[i] = s.Step(f, x[i-1], t[i-1], h)
	}
	return x
}
