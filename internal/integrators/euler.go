package integrators

import "github.com/avshek/oscilab/internal/osc"

// Euler is the explicit first-order scheme. Kept for accuracy comparisons
// against RK4; not recommended for production runs.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys osc.System, x osc.State, t, h float64) osc.State {
	dx := sys.Derive(x, t)
	result := make(osc.State, len(x))
	for i := range x {
		result[i] = x[i] + h*dx[i]
	}
	return result
}
