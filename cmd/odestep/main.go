package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/odestep/internal/experiment"
)

var (
	dataDir string
	verbose bool

	logger *zap.Logger
)

// main registers the odestep commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "odestep",
		Short:        "fixed-step ODE integration lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odestep", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newCompareCmd(),
		newConvergeCmd(),
		newBenchCmd(),
		newSweepCmd(),
		newScenarioCmd(),
		newViewCmd(),
		newPresetsCmd(),
		newEquationsCmd(),
		newMethodsCmd(),
	)

	return rootCmd
}

// newLogger writes JSON logs to stderr and leaves stdout to command output.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func newRunner() *experiment.Runner {
	if logger == nil {
		return experiment.NewRunner()
	}
	return experiment.NewRunner(experiment.WithLogger(logger))
}
