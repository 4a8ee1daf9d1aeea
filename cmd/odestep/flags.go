package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/config"
)

// Problem flags shared by every command that solves an equation.
var (
	method     string
	x0         float64
	t0         float64
	t1         float64
	points     int
	configFile string
	preset     string
	strictGrid bool
)

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "integration method")
	cmd.Flags().Float64Var(&x0, "x0", 0, "initial value")
	cmd.Flags().Float64Var(&t0, "t0", config.DefaultStart, "grid start")
	cmd.Flags().Float64Var(&t1, "t1", config.DefaultEnd, "grid end")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "number of grid points")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&strictGrid, "strict-grid", true, "reject non-uniform grids")
}

// resolveConfig layers the problem definition: defaults, then the preset,
// then the keys present in the config file, then explicitly set flags. A
// non-empty equation argument beats all of them.
func resolveConfig(cmd *cobra.Command, equation string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if equation != "" {
		cfg.Equation = equation
	}

	if preset != "" {
		p := config.GetPreset(cfg.Equation, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Equation))
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if equation != "" {
			cfg.Equation = equation
		}
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("t0") {
		cfg.Grid.Start = t0
	}
	if flags.Changed("t1") {
		cfg.Grid.End = t1
	}
	if flags.Changed("points") {
		cfg.Grid.Points = points
	}
	if flags.Changed("strict-grid") {
		cfg.StrictGrid = strictGrid
	}

	return cfg, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
