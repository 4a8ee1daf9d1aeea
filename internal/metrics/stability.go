package metrics

import "math"

// Stability is the fraction of samples that stay finite and within
// threshold of zero.
type Stability struct {
	bound    float64
	total    int
	escaped  int
	escapeAt float64
}

func NewStability(threshold float64) *Stability {
	s := &Stability{bound: threshold}
	s.Reset()
	return s
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x, t float64) {
	s.total++
	if !math.IsNaN(x) && math.Abs(x) <= s.bound {
		return
	}
	if s.escaped == 0 {
		s.escapeAt = t
	}
	s.escaped++
}

func (s *Stability) Value() float64 {
	if s.total == 0 {
		return 1
	}
	return float64(s.total-s.escaped) / float64(s.total)
}

// FirstEscape returns the time of the first out-of-bound sample, or NaN if
// every sample so far stayed bounded.
func (s *Stability) FirstEscape() float64 { return s.escapeAt }

func (s *Stability) Reset() {
	s.total, s.escaped = 0, 0
	s.escapeAt = math.NaN()
}
