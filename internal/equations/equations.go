package equations

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/odestep/internal/dynamo"
)

// Solution is the closed form x(t) of an initial value problem x(t0) = x0.
type Solution func(x0, t0, t float64) float64

type Equation struct {
	Name        string
	Description string
	F           dynamo.Func
	Exact       Solution
}

func (e Equation) HasExact() bool { return e.Exact != nil }

// ExactOn evaluates the closed form on every grid point.
func (e Equation) ExactOn(x0 float64, t dynamo.Grid) (dynamo.Trajectory, error) {
	if e.Exact == nil {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrNoExactSolution, e.Name)
	}
	out := make(dynamo.Trajectory, len(t))
	if len(t) == 0 {
		return out, nil
	}
	for i, ti := range t {
		out[i] = e.Exact(x0, t[0], ti)
	}
	return out, nil
}

// Cubic is f(x, t) = (-x)^3 + sin(t).
func Cubic(x, t float64) float64 {
	return math.Pow(-x, 3) + math.Sin(t)
}

func Decay(x, t float64) float64 { return -x }

func Logistic(x, t float64) float64 { return x * (1 - x) }

func Cosine(x, t float64) float64 { return math.Cos(t) }

func Zero(x, t float64) float64 { return 0 }

var catalogue = map[string]Equation{
	"cubic": {
		Name:        "cubic",
		Description: "x' = (-x)^3 + sin(t)",
		F:           Cubic,
	},
	"decay": {
		Name:        "decay",
		Description: "x' = -x",
		F:           Decay,
		Exact: func(x0, t0, t float64) float64 {
			return x0 * math.Exp(-(t - t0))
		},
	},
	"logistic": {
		Name:        "logistic",
		Description: "x' = x(1 - x)",
		F:           Logistic,
		Exact: func(x0, t0, t float64) float64 {
			e := math.Exp(t - t0)
			return x0 * e / (1 - x0 + x0*e)
		},
	},
	"cosine": {
		Name:        "cosine",
		Description: "x' = cos(t)",
		F:           Cosine,
		Exact: func(x0, t0, t float64) float64 {
			return x0 + math.Sin(t) - math.Sin(t0)
		},
	},
	"zero": {
		Name:        "zero",
		Description: "x' = 0",
		F:           Zero,
		Exact: func(x0, t0, t float64) float64 {
			return x0
		},
	},
}

func Lookup(name string) (Equation, error) {
	eq, ok := catalogue[name]
	if !ok {
		return Equation{}, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownEquation, name, Names())
	}
	return eq, nil
}

func Names() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
