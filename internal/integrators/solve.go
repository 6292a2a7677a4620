package integrators

import "github.com/avshek/oscilab/internal/osc"

// Solve advances y0 across every consecutive pair of grid points, deriving
// the step size from each interval, and returns the full trajectory. Row 0
// is an exact copy of y0; a grid with fewer than two points yields a
// single-row trajectory.
func Solve(integ osc.Integrator, sys osc.System, y0 osc.State, grid osc.TimeGrid) []osc.State {
	states := make([]osc.State, 0, len(grid))
	x := y0.Clone()
	states = append(states, x)

	for i := 0; i+1 < len(grid); i++ {
		h := grid[i+1] - grid[i]
		x = integ.Step(sys, x, grid[i], h)
		states = append(states, x)
	}

	return states
}

// ByName maps a CLI/config integrator name to an implementation.
func ByName(name string) (osc.Integrator, bool) {
	switch name {
	case "rk4", "":
		return NewRK4(), true
	case "euler":
		return NewEuler(), true
	default:
		return nil, false
	}
}
