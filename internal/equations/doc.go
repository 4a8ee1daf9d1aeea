// Package equations provides a catalogue of scalar test equations.
//
// [Cubic] is the reference right-hand side used throughout the examples and
// tests. The remaining entries carry closed-form solutions so that
// integration error and convergence order can be measured exactly.
package equations
