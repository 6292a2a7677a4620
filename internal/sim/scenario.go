package sim

import (
	"fmt"

	"github.com/avshek/oscilab/internal/osc"
)

// Scenario fully describes one simulation run. Scenarios are plain data
// passed into Simulator.Run; there is no process-wide scenario state.
type Scenario struct {
	Masses            []float64
	Stiffness         [][]float64
	InitDisplacements []float64
	InitVelocities    []float64

	// Grid, when set, is used verbatim (it may be non-uniform). Otherwise
	// a uniform grid of Points values over [Start, End] is generated.
	Grid   osc.TimeGrid
	Start  float64
	End    float64
	Points int

	// Floor for eigenvalue clamping; zero means stiffness.DefaultFloor.
	Floor float64
}

// Size returns the oscillator count n.
func (sc Scenario) Size() int { return len(sc.Masses) }

// Validate checks the scenario against the invalid-input taxonomy: the raw
// stiffness matrix must be n×n, each sequence must have length n, every
// mass must be positive, and an explicit grid must be strictly increasing.
// Nothing is computed for a scenario that fails validation.
func (sc Scenario) Validate() error {
	n := sc.Size()
	if n == 0 {
		return fmt.Errorf("%w: no oscillators", osc.ErrDimensionMismatch)
	}
	for i, m := range sc.Masses {
		if m <= 0 {
			return fmt.Errorf("%w: mass[%d] = %g", osc.ErrNonPositiveMass, i, m)
		}
	}
	if len(sc.Stiffness) != n {
		return fmt.Errorf("%w: stiffness has %d rows, want %d", osc.ErrNotSquare, len(sc.Stiffness), n)
	}
	for i, row := range sc.Stiffness {
		if len(row) != n {
			return fmt.Errorf("%w: stiffness row %d has %d columns, want %d", osc.ErrNotSquare, i, len(row), n)
		}
	}
	if len(sc.InitDisplacements) != n {
		return fmt.Errorf("%w: %d initial displacements for %d oscillators", osc.ErrDimensionMismatch, len(sc.InitDisplacements), n)
	}
	if len(sc.InitVelocities) != n {
		return fmt.Errorf("%w: %d initial velocities for %d oscillators", osc.ErrDimensionMismatch, len(sc.InitVelocities), n)
	}
	if sc.Grid != nil {
		if err := sc.Grid.Validate(); err != nil {
			return err
		}
	} else if sc.Points < 1 {
		return fmt.Errorf("%w: grid needs at least one point, got %d", osc.ErrBadGrid, sc.Points)
	} else if sc.Points > 1 && sc.End <= sc.Start {
		return fmt.Errorf("%w: interval [%g, %g] is empty", osc.ErrBadGrid, sc.Start, sc.End)
	}
	return nil
}

// TimeGrid resolves the effective integration grid.
func (sc Scenario) TimeGrid() osc.TimeGrid {
	if sc.Grid != nil {
		return sc.Grid
	}
	return osc.UniformGrid(sc.Start, sc.End, sc.Points)
}

// InitialState concatenates initial displacements and velocities.
func (sc Scenario) InitialState() osc.State {
	n := sc.Size()
	y0 := make(osc.State, n*2)
	copy(y0[:n], sc.InitDisplacements)
	copy(y0[n:], sc.InitVelocities)
	return y0
}
