package analysis

import (
	"math"

	"github.com/san-kum/odestep/internal/dynamo"
)

// LyapunovExponent estimates how fast two trajectories started perturbation
// apart diverge over the grid. Negative values mean nearby solutions
// converge; for x' = -x the exponent is -1.
//
// Algorithm:
// 1. Integrate from x0 and x0+perturbation
// 2. λ ≈ (1/T) * ln(|δx(T)| / |δx(0)|)
func LyapunovExponent(s dynamo.Stepper, f dynamo.Func, x0 float64, t dynamo.Grid, perturbation float64) float64 {
	if len(t) < 2 || perturbation == 0 {
		return math.NaN()
	}

	a := s.Integrate(f, x0, t)
	b := s.Integrate(f, x0+perturbation, t)

	d0 := math.Abs(perturbation)
	dT := math.Abs(b.Last() - a.Last())
	span := t[len(t)-1] - t[0]
	if dT == 0 || span <= 0 {
		return math.NaN()
	}

	return math.Log(dT/d0) / span
}
