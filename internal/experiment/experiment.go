package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/metrics"
)

// lyapunovPerturbation is the initial offset used for the sensitivity metric.
const lyapunovPerturbation = 1e-8

type Result struct {
	Equation    string
	Method      string
	X0          float64
	Times       dynamo.Grid
	Trajectory  dynamo.Trajectory
	Exact       dynamo.Trajectory
	Evaluations int64
	Elapsed     time.Duration
	Valid       bool
	Metrics     map[string]float64
}

// MaxError returns the max_error metric, or NaN without an exact solution.
func (r *Result) MaxError() float64 {
	if v, ok := r.Metrics["max_error"]; ok {
		return v
	}
	return math.NaN()
}

type Runner struct {
	registry *Registry
	logger   *zap.Logger
}

type Option func(*Runner)

func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

func WithRegistry(reg *Registry) Option {
	return func(r *Runner) {
		if reg != nil {
			r.registry = reg
		}
	}
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		registry: NewRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Registry() *Registry { return r.registry }

// Run integrates the configured problem on the grid described by cfg.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return r.RunGrid(ctx, cfg, cfg.TimeGrid())
}

// RunGrid integrates the configured problem on an explicit grid, ignoring
// cfg.Grid. With cfg.StrictGrid set the grid must be uniform.
func (r *Runner) RunGrid(ctx context.Context, cfg *config.Config, grid dynamo.Grid) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, dynamo.ErrEmptyGrid
	}
	if cfg.StrictGrid {
		if err := grid.Validate(cfg.Tolerance); err != nil {
			return nil, err
		}
	}

	eq, err := r.registry.GetEquation(cfg.Equation)
	if err != nil {
		return nil, err
	}
	stepper, err := r.registry.GetMethod(cfg.Method)
	if err != nil {
		return nil, err
	}

	log := r.logger.With(
		zap.String("equation", eq.Name),
		zap.String("method", stepper.Name()),
		zap.Int("points", len(grid)),
	)
	log.Debug("integrating", zap.Float64("x0", cfg.X0), zap.Float64("h", grid.Step()))

	f, calls := dynamo.CountCalls(eq.F)
	start := time.Now()
	traj := stepper.Integrate(f, cfg.X0, grid)
	elapsed := time.Since(start)

	res := &Result{
		Equation:    eq.Name,
		Method:      stepper.Name(),
		X0:          cfg.X0,
		Times:       grid,
		Trajectory:  traj,
		Evaluations: calls.Load(),
		Elapsed:     elapsed,
		Valid:       traj.IsValid(),
		Metrics:     make(map[string]float64),
	}

	if eq.HasExact() {
		if res.Exact, err = eq.ExactOn(cfg.X0, grid); err != nil {
			return nil, err
		}
	}

	ms := r.registry.DefaultMetrics(eq, cfg.X0, grid[0])
	for _, m := range ms {
		m.Reset()
	}
	for i := range traj {
		for _, m := range ms {
			m.Observe(traj[i], grid[i])
		}
	}
	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
		if st, ok := m.(*metrics.Stability); ok && !math.IsNaN(st.FirstEscape()) {
			res.Metrics["escape_time"] = st.FirstEscape()
		}
	}
	res.Metrics["final"] = traj.Last()
	res.Metrics["h"] = grid.Step()
	res.Metrics["evaluations"] = float64(res.Evaluations)
	if lambda := analysis.LyapunovExponent(stepper, eq.F, cfg.X0, grid, lyapunovPerturbation); !math.IsNaN(lambda) {
		res.Metrics["lyapunov"] = lambda
	}

	if !res.Valid {
		log.Warn("trajectory contains non-finite values")
	}
	log.Info("integration complete",
		zap.Int64("evaluations", res.Evaluations),
		zap.Duration("elapsed", elapsed),
		zap.Float64("final", traj.Last()),
	)

	return res, nil
}

// Converge runs a refinement study of cfg.Method on cfg.Equation starting
// from cfg.Grid.Points points.
func (r *Runner) Converge(ctx context.Context, cfg *config.Config, levels int) ([]analysis.Level, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	eq, err := r.registry.GetEquation(cfg.Equation)
	if err != nil {
		return nil, err
	}
	stepper, err := r.registry.GetMethod(cfg.Method)
	if err != nil {
		return nil, err
	}

	out, err := analysis.Refine(stepper, eq, cfg.X0, cfg.Grid.Start, cfg.Grid.End, cfg.Grid.Points, levels)
	if err != nil {
		return nil, fmt.Errorf("converge %s/%s: %w", eq.Name, stepper.Name(), err)
	}
	r.logger.Info("convergence study complete",
		zap.String("equation", eq.Name),
		zap.String("method", stepper.Name()),
		zap.Int("levels", len(out)),
		zap.Float64("observed_order", analysis.ObservedOrder(out)),
	)
	return out, nil
}
