package main

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/experiment"
	"github.com/san-kum/odestep/internal/storage"
)

var saveConfig string

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [equation]",
		Short: "solve an equation and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addProblemFlags(cmd)
	cmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved configuration to this yaml file")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("solving %s with %s...\n", cfg.Equation, cfg.Method)

	result, err := newRunner().Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	runID, err := st.Save(result)
	if err != nil {
		return err
	}
	logger.Debug("run stored", zap.String("run_id", runID), zap.String("dir", dataDir))

	printResult(runID, result)
	return nil
}

func printResult(runID string, result *experiment.Result) {
	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", len(result.Trajectory))
	fmt.Printf("evaluations: %d\n", result.Evaluations)
	fmt.Printf("final: %.8f\n", result.Trajectory.Last())
	if e := result.MaxError(); !math.IsNaN(e) {
		fmt.Printf("max error: %.3e\n", e)
	}
	if !result.Valid {
		fmt.Println("warning: trajectory contains non-finite values")
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}
}
