package osc

import (
	"fmt"
	"math"
)

// Oscillator is one point mass and its row of the stiffness matrix. The
// coupling row has one entry per oscillator in the chain, self-term
// included. Immutable after construction.
type Oscillator struct {
	Mass     float64
	Coupling []float64
}

// Acceleration computes the restoring acceleration for this oscillator
// given the displacement vector of the whole chain:
//
//	a = -(coupling · displacements) / mass
func (o Oscillator) Acceleration(displacements []float64) float64 {
	force := 0.0
	for i, k := range o.Coupling {
		force -= k * displacements[i]
	}
	return force / o.Mass
}

// Chain is the full oscillator set. It implements System: the derivative of
// a 2n state [x | v] is [v | a], reducing the second-order equations of
// motion to first order.
type Chain struct {
	oscillators []Oscillator
}

// NewChain builds a chain from per-oscillator masses and the rows of a
// conditioned stiffness matrix. Every mass must be positive and every row
// must have length len(masses).
func NewChain(masses []float64, rows [][]float64) (*Chain, error) {
	n := len(masses)
	if n == 0 {
		return nil, fmt.Errorf("%w: no oscillators", ErrDimensionMismatch)
	}
	if len(rows) != n {
		return nil, fmt.Errorf("%w: %d masses but %d stiffness rows", ErrDimensionMismatch, n, len(rows))
	}
	oscillators := make([]Oscillator, n)
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mass[%d] = %g", ErrNonPositiveMass, i, m)
		}
		if len(rows[i]) != n {
			return nil, fmt.Errorf("%w: stiffness row %d has length %d, want %d", ErrDimensionMismatch, i, len(rows[i]), n)
		}
		coupling := make([]float64, n)
		copy(coupling, rows[i])
		oscillators[i] = Oscillator{Mass: m, Coupling: coupling}
	}
	return &Chain{oscillators: oscillators}, nil
}

func (c *Chain) Size() int     { return len(c.oscillators) }
func (c *Chain) StateDim() int { return len(c.oscillators) * 2 }

// Oscillators returns the model set. Callers must not modify the rows.
func (c *Chain) Oscillators() []Oscillator { return c.oscillators }

func (c *Chain) Derive(x State, _ float64) State {
	n := len(c.oscillators)
	dx := make(State, n*2)

	displacements := x[:n]
	copy(dx[:n], x[n:])

	for i := range c.oscillators {
		dx[n+i] = c.oscillators[i].Acceleration(displacements)
	}

	return dx
}

// Energy returns the total mechanical energy at state x: kinetic ½Σmᵢvᵢ²
// plus elastic ½xᵀKx over the coupling rows.
func (c *Chain) Energy(x State) float64 {
	n := len(c.oscillators)
	energy := 0.0
	for i, o := range c.oscillators {
		v := x[n+i]
		energy += 0.5 * o.Mass * v * v

		coupled := 0.0
		for j, k := range o.Coupling {
			coupled += k * x[j]
		}
		energy += 0.5 * x[i] * coupled
	}
	return energy
}

// MaxDisplacement returns the largest |displacement| across a trajectory.
func MaxDisplacement(states []State, n int) float64 {
	maxAmp := 0.0
	for _, s := range states {
		for i := 0; i < n && i < len(s); i++ {
			maxAmp = math.Max(maxAmp, math.Abs(s[i]))
		}
	}
	return maxAmp
}
