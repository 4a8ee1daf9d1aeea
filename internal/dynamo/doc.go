// Package dynamo provides the core primitives for integrating scalar
// ordinary differential equations of the form dx/dt = f(x, t).
//
// The package defines:
//
//   - [Func]: the derivative function f(x, t)
//   - [Grid]: an ordered, uniformly spaced sequence of time points
//   - [Trajectory]: one approximated state per grid point
//   - [Stepper]: a fixed-step explicit integrator
//
// # Example
//
//	t := dynamo.Linspace(1, 2, 4)
//	x := integrators.NewRK4().Integrate(equations.Cubic, 0, t)
//
// # Step size
//
// Steppers derive h = t[1]-t[0] once and reuse it for every interval. A grid
// with uneven spacing is integrated as if it were uniform. Callers that want
// the precondition enforced should call [Grid.Validate] first.
//
// # Thread Safety
//
// Steppers hold no state between calls and may be shared across goroutines,
// provided the supplied [Func] is itself safe for concurrent use.
package dynamo
