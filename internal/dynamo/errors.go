package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrEmptyGrid indicates a time grid with no points.
	ErrEmptyGrid = errors.New("dynamo: time grid is empty")

	// ErrNotIncreasing indicates a grid whose points are not strictly ascending.
	ErrNotIncreasing = errors.New("dynamo: time grid is not strictly increasing")

	// ErrNonUniformGrid indicates a grid whose spacing departs from t[1]-t[0].
	ErrNonUniformGrid = errors.New("dynamo: time grid is not uniformly spaced")

	// ErrUnknownMethod indicates a stepper name missing from the registry.
	ErrUnknownMethod = errors.New("dynamo: unknown integration method")

	// ErrUnknownEquation indicates an equation name missing from the catalogue.
	ErrUnknownEquation = errors.New("dynamo: unknown equation")

	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrNoExactSolution indicates an analysis that needs a closed form.
	ErrNoExactSolution = errors.New("dynamo: equation has no exact solution")
)

// GridError wraps a grid validation failure with the offending interval.
type GridError struct {
	Index   int
	Want    float64
	Got     float64
	Wrapped error
}

func (e *GridError) Error() string {
	return fmt.Sprintf("%v: interval %d has width %g, want %g", e.Wrapped, e.Index, e.Got, e.Want)
}

func (e *GridError) Unwrap() error {
	return e.Wrapped
}
