package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/equations"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/viz"
)

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [equation]",
		Short: "interactive trajectory viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, firstArg(args))
			if err != nil {
				return err
			}
			return viz.Run(newRunner(), cfg)
		},
	}
	addProblemFlags(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [equation]",
		Short: "list available presets for an equation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for equation: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Printf("  %-10s %s x0=%g grid=[%.4g, %.4g] x%d\n",
					p, cfg.Method, cfg.X0, cfg.Grid.Start, cfg.Grid.End, cfg.Grid.Points)
			}
			return nil
		},
	}
}

func newEquationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equations",
		Short: "list built-in equations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEXACT\tDESCRIPTION")
			for _, name := range equations.Names() {
				eq, err := equations.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%v\t%s\n", eq.Name, eq.HasExact(), eq.Description)
			}
			return w.Flush()
		},
	}
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tORDER\tSTAGES")
			for _, name := range integrators.Names() {
				s, err := integrators.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%d\n", s.Name(), s.Order(), s.Stages())
			}
			return w.Flush()
		},
	}
}
