package osc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State holds the instantaneous system state: for a chain of n oscillators
// the first n entries are displacements, the last n are velocities.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is the right-hand side of a first-order ODE system.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one step of size h starting at time t.
type Integrator interface {
	Step(sys System, x State, t, h float64) State
}

// Metric accumulates a scalar observation over a simulation run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// TimeGrid is an ordered, strictly increasing sequence of time points.
// Spacing need not be uniform; integrators derive the step size from
// consecutive differences.
type TimeGrid []float64

// UniformGrid returns points evenly spaced time points covering [start, end]
// inclusive. Fewer than two points yields the degenerate grid [start].
func UniformGrid(start, end float64, points int) TimeGrid {
	if points < 2 {
		return TimeGrid{start}
	}
	grid := make(TimeGrid, points)
	floats.Span(grid, start, end)
	return grid
}

// Validate reports ErrBadGrid unless the grid is non-empty and strictly
// increasing.
func (g TimeGrid) Validate() error {
	if len(g) == 0 {
		return ErrBadGrid
	}
	for i := 1; i < len(g); i++ {
		if g[i] <= g[i-1] {
			return ErrBadGrid
		}
	}
	return nil
}
