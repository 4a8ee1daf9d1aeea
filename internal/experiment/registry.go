package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/equations"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/metrics"
)

// Registry resolves equation and method names. Equations registered on it
// shadow the built-in catalogue.
type Registry struct {
	equations map[string]equations.Equation
}

func NewRegistry() *Registry {
	r := &Registry{equations: make(map[string]equations.Equation)}
	for _, name := range equations.Names() {
		eq, _ := equations.Lookup(name)
		r.equations[name] = eq
	}
	return r
}

func (r *Registry) RegisterEquation(eq equations.Equation) error {
	if eq.Name == "" || eq.F == nil {
		return fmt.Errorf("%w: equation needs a name and a derivative", dynamo.ErrInvalidConfig)
	}
	r.equations[eq.Name] = eq
	return nil
}

func (r *Registry) GetEquation(name string) (equations.Equation, error) {
	eq, ok := r.equations[name]
	if !ok {
		return equations.Equation{}, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownEquation, name, r.ListEquations())
	}
	return eq, nil
}

func (r *Registry) GetMethod(name string) (dynamo.Stepper, error) {
	return integrators.Lookup(name)
}

func (r *Registry) ListEquations() []string {
	names := make([]string, 0, len(r.equations))
	for name := range r.equations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []string {
	return integrators.Names()
}

// DefaultMetrics returns fresh metrics for a run of eq from x0 at t0.
func (r *Registry) DefaultMetrics(eq equations.Equation, x0, t0 float64) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewStability(1e6),
		metrics.NewMeanAbs(),
		metrics.NewPeak(),
	}
	if eq.HasExact() {
		ms = append(ms, metrics.NewExactError(func(t float64) float64 {
			return eq.Exact(x0, t0, t)
		}))
	}
	return ms
}
