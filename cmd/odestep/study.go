package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/automation"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/experiment"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/viz"
)

var (
	levels     int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [equation] [method1] [method2] ...",
		Short: "compare methods on the same problem",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareMethods,
	}
	addProblemFlags(cmd)
	return cmd
}

func newConvergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "converge [equation]",
		Short: "measure the observed order of a method",
		Long: "Integrates an equation with a closed form on successively doubled grids\n" +
			"and reports the error ratios. Without an equation or config file it studies\n" +
			"the " + convergeEquation + " equation on its " + convergePreset + " preset.",
		Args: cobra.MaximumNArgs(1),
		RunE: convergeStudy,
	}
	addProblemFlags(cmd)
	cmd.Flags().IntVar(&levels, "levels", 5, "number of refinement levels")
	return cmd
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [equation]",
		Short: "benchmark every method over several grid sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchEquation,
	}
	addProblemFlags(cmd)
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [equation]",
		Short: "repeat a run across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepParameter,
	}
	addProblemFlags(cmd)
	cmd.Flags().StringVar(&sweepParam, "param", automation.ParamX0, "parameter to sweep (x0, t1, points)")
	cmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	cmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	cmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	return cmd
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	methods := args[1:]
	if len(methods) == 0 {
		methods = integrators.Names()
	}

	results, err := newRunner().Batch(context.Background(), cfg, methods)
	if err != nil {
		return err
	}

	fmt.Printf("comparing methods for %s (x0=%g, grid=[%g, %g] x%d)\n\n",
		cfg.Equation, cfg.X0, cfg.Grid.Start, cfg.Grid.End, cfg.Grid.Points)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Method,
			strconv.FormatFloat(r.Trajectory.Last(), 'f', 8, 64),
			formatError(r.MaxError()),
			strconv.FormatInt(r.Evaluations, 10),
			fmt.Sprintf("%.3f", float64(r.Elapsed.Microseconds())/1000),
			viz.Sparkline(r.Trajectory, 24),
		})
	}
	fmt.Println(viz.Table([]string{"method", "final", "max err", "evals", "time ms", "trajectory"}, rows))

	return nil
}

// Used when neither an argument nor a config file names the equation. The
// global default equation has no closed form.
const (
	convergeEquation = "decay"
	convergePreset   = "unit"
)

func convergeStudy(cmd *cobra.Command, args []string) error {
	equation := firstArg(args)
	if equation == "" && configFile == "" {
		equation = convergeEquation
		if preset == "" {
			preset = convergePreset
		}
	}
	cfg, err := resolveConfig(cmd, equation)
	if err != nil {
		return err
	}

	lvls, err := newRunner().Converge(context.Background(), cfg, levels)
	if err != nil {
		return err
	}

	stepper, err := integrators.Lookup(cfg.Method)
	if err != nil {
		return err
	}

	fmt.Printf("convergence of %s on %s (expected order %d)\n\n", stepper.Name(), cfg.Equation, stepper.Order())

	rows := make([][]string, 0, len(lvls))
	for _, l := range lvls {
		ratio, order := "-", "-"
		if l.Ratio > 0 {
			ratio = fmt.Sprintf("%.3f", l.Ratio)
			order = fmt.Sprintf("%.3f", l.Order())
		}
		rows = append(rows, []string{
			strconv.Itoa(l.Points),
			fmt.Sprintf("%.4g", l.H),
			formatError(l.Error),
			strconv.FormatInt(l.Evaluations, 10),
			ratio,
			order,
		})
	}
	fmt.Println(viz.Table([]string{"points", "h", "max err", "evals", "ratio", "order"}, rows))
	fmt.Printf("\nobserved order: %.3f\n", analysis.ObservedOrder(lvls))

	return nil
}

func benchEquation(cmd *cobra.Command, args []string) error {
	runner := newRunner()
	cfg, err := resolveConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}

	eq, err := runner.Registry().GetEquation(cfg.Equation)
	if err != nil {
		return err
	}

	sizes := []int{11, 101, 1001, 10001}

	fmt.Printf("benchmarking %s on [%g, %g]\n\n", eq.Name, cfg.Grid.Start, cfg.Grid.End)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tPOINTS\tEVALS\tTIME\tSTEPS/SEC")

	for _, name := range integrators.Names() {
		stepper, err := integrators.Lookup(name)
		if err != nil {
			return err
		}
		for _, n := range sizes {
			grid := dynamo.Linspace(cfg.Grid.Start, cfg.Grid.End, n)
			f, calls := dynamo.CountCalls(eq.F)

			start := time.Now()
			stepper.Integrate(f, cfg.X0, grid)
			elapsed := time.Since(start)

			stepsPerSec := float64(n-1) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", name, n, calls.Load(), elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func sweepParameter(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:     *cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}

	results, err := automation.RunSweep(context.Background(), sweep, newRunner())
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %s over [%g, %g] for %s/%s\n\n", sweepParam, sweepMin, sweepMax, cfg.Equation, cfg.Method)

	rows := make([][]string, 0, len(results))
	finals := make([]float64, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			fmt.Sprintf("%g", r.ParamValue),
			strconv.FormatFloat(r.Final, 'f', 8, 64),
			formatError(r.MaxError),
			strconv.FormatInt(r.Evaluations, 10),
			strconv.FormatBool(r.Valid),
		})
		finals = append(finals, r.Final)
	}
	fmt.Println(viz.Table([]string{sweepParam, "final", "max err", "evals", "valid"}, rows))
	fmt.Printf("\nfinal values: %s\n", viz.Sparkline(finals, 40))

	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	results, runErr := automation.RunScenario(context.Background(), scenario, newRunner())

	rows := make([][]string, 0, len(results))
	for i, r := range results {
		rows = append(rows, scenarioRow(scenario.Steps[i].Name, r))
	}
	if len(rows) > 0 {
		fmt.Println(viz.Table([]string{"step", "equation", "method", "final", "max err", "evals"}, rows))
	}

	return runErr
}

func scenarioRow(name string, r *experiment.Result) []string {
	return []string{
		name,
		r.Equation,
		r.Method,
		strconv.FormatFloat(r.Trajectory.Last(), 'f', 8, 64),
		formatError(r.MaxError()),
		strconv.FormatInt(r.Evaluations, 10),
	}
}

func formatError(e float64) string {
	if math.IsNaN(e) {
		return "-"
	}
	return fmt.Sprintf("%.3e", e)
}
