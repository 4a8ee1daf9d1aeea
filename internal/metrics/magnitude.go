package metrics

import "math"

// MeanAbs is the mean of |x| over the observed samples.
type MeanAbs struct {
	name    string
	sum     float64
	samples int
}

func NewMeanAbs() *MeanAbs {
	return &MeanAbs{
		name: "mean_abs",
	}
}

func (m *MeanAbs) Name() string {
	return m.name
}

func (m *MeanAbs) Observe(x, t float64) {
	m.sum += math.Abs(x)
	m.samples++
}

func (m *MeanAbs) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanAbs) Reset() {
	m.sum = 0
	m.samples = 0
}

// Peak is the largest |x| observed.
type Peak struct {
	peak float64
}

func NewPeak() *Peak { return &Peak{} }

func (p *Peak) Name() string { return "peak" }

func (p *Peak) Observe(x, t float64) {
	p.peak = math.Max(p.peak, math.Abs(x))
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }
