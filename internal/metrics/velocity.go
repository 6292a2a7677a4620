package metrics

import (
	"math"

	"github.com/avshek/oscilab/internal/osc"
)

// PeakVelocity tracks the largest |velocity| seen over a run. The
// oscillator count n locates the velocity block within each state.
type PeakVelocity struct {
	name string
	n    int
	peak float64
}

func NewPeakVelocity(n int) *PeakVelocity {
	return &PeakVelocity{name: "peak_velocity", n: n}
}

func (p *PeakVelocity) Name() string { return p.name }

func (p *PeakVelocity) Observe(x osc.State, t float64) {
	for i := p.n; i < len(x); i++ {
		p.peak = math.Max(p.peak, math.Abs(x[i]))
	}
}

func (p *PeakVelocity) Value() float64 { return p.peak }

func (p *PeakVelocity) Reset() { p.peak = 0 }
