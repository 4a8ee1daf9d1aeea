package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/odestep/internal/storage"
	"github.com/san-kum/odestep/internal/viz"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEQUATION\tMETHOD\tTIME\tX0\tGRID\tH\tEVALS\tVALID")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t[%g, %g] x%d\t%.4g\t%d\t%v\n",
			run.ID,
			run.Equation,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.X0,
			run.Start, run.End, run.Points,
			run.H,
			run.Evaluations,
			run.Valid,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, traj, exact, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("equation: %s  method: %s\n", meta.Equation, meta.Method)
	fmt.Printf("samples: %d over [%g, %g]\n\n", len(traj), times[0], times[len(times)-1])

	caption := "x(t)"
	if exact != nil {
		caption = "x(t) and exact solution"
	}
	graph := viz.Plot(traj, exact, viz.PlotOptions{Width: 80, Height: 12, Caption: caption})
	if graph == "" {
		return fmt.Errorf("trajectory has no finite values")
	}
	fmt.Println(graph)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	times, traj, exact, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(traj) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)

	header := []string{"time", "x"}
	if exact != nil {
		header = append(header, "exact")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range traj {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(traj[i], 'f', 8, 64),
		}
		if exact != nil {
			row = append(row, strconv.FormatFloat(exact[i], 'f', 8, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, traj, exact, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, times, traj, exact)
}
