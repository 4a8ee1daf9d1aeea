package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odestep/internal/dynamo"
)

type PlotOptions struct {
	Width   int
	Height  int
	Caption string
}

// Plot draws traj, and exact when it is non-nil, as an asciigraph chart.
// Non-finite states are drawn as gaps.
func Plot(traj, exact dynamo.Trajectory, opts PlotOptions) string {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 12
	}
	if !anyFinite(traj) {
		return ""
	}

	options := []asciigraph.Option{
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Precision(4),
	}
	if opts.Caption != "" {
		options = append(options, asciigraph.Caption(opts.Caption))
	}

	series := [][]float64{plottable(traj)}
	colors := []asciigraph.AnsiColor{asciigraph.Cyan}
	if exact != nil {
		series = append(series, plottable(exact))
		colors = append(colors, asciigraph.Red)
	}
	options = append(options, asciigraph.SeriesColors(colors...))

	return asciigraph.PlotMany(series, options...)
}

// plottable copies xs, replacing Inf with NaN. A single point is doubled so
// that asciigraph can draw a flat line.
func plottable(xs []float64) []float64 {
	out := make([]float64, len(xs), max(len(xs), 2))
	for i, v := range xs {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}

func anyFinite(xs []float64) bool {
	for _, v := range xs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
