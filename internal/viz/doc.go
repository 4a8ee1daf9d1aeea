// Package viz renders trajectories in the terminal.
//
//   - [Plot]: asciigraph line plot of a trajectory, optionally overlaid with
//     its exact solution
//   - [Model]: Bubble Tea viewer that re-integrates on every key press
//
// # Key Bindings
//
//	m / tab - Cycle integration method
//	+ / -   - Double / halve the number of intervals
//	e       - Toggle the exact-solution overlay
//	r       - Reset to the starting grid
//	q       - Quit
package viz
