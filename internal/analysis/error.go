package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/odestep/internal/dynamo"
)

// MaxError returns the infinity norm of approx - exact.
func MaxError(approx, exact dynamo.Trajectory) (float64, error) {
	if len(approx) != len(exact) {
		return 0, fmt.Errorf("analysis: length mismatch: %d vs %d", len(approx), len(exact))
	}
	if len(approx) == 0 {
		return 0, nil
	}
	return floats.Distance(approx, exact, math.Inf(1)), nil
}
