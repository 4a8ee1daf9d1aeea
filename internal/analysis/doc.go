// Package analysis measures how well a stepper approximates a known solution.
//
// The package includes:
//
//   - [MaxError]: largest pointwise deviation from a reference trajectory
//   - [Refine]: error at successively halved step sizes
//   - [ObservedOrder]: least-squares slope of log(error) against log(h)
//   - [LyapunovExponent]: growth rate of a small perturbation of x0
//
// # Convergence
//
// A method of order p should see its error shrink by about 2^p each time
// the step is halved:
//
//	levels, _ := analysis.Refine(integrators.NewRK4(), eq, 1, 0, 1, 11, 4)
//	p := analysis.ObservedOrder(levels) // ≈ 4
package analysis
