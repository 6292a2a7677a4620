// Package osc provides the core primitives for coupled-oscillator simulation.
//
// The package defines the fundamental types for numerical integration of a
// chain of mass-spring oscillators coupled through a stiffness matrix:
//
//   - [State]: vector of displacements followed by velocities
//   - [Oscillator]: one mass with its stiffness-matrix coupling row
//   - [Chain]: the full oscillator set; the right-hand side of the ODE system
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [TimeGrid]: strictly increasing sequence of integration time points
//
// # Example
//
//	chain, _ := osc.NewChain(masses, rows)
//	integ := integrators.NewRK4()
//	states := integrators.Solve(integ, chain, y0, grid)
//
// # Thread Safety
//
// Chain values are immutable after construction and safe for concurrent
// reads. Each simulation run owns its own trajectory buffer exclusively.
package osc
