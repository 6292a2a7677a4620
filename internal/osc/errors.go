package osc

import "errors"

// Domain errors for simulation setup and results.
var (
	// ErrNotSquare indicates a raw stiffness matrix that is not n×n.
	ErrNotSquare = errors.New("osc: stiffness matrix is not square")

	// ErrDimensionMismatch indicates mass, displacement or velocity
	// sequences whose lengths disagree with the oscillator count.
	ErrDimensionMismatch = errors.New("osc: dimension mismatch")

	// ErrNonPositiveMass indicates a mass that is zero or negative.
	ErrNonPositiveMass = errors.New("osc: mass must be positive")

	// ErrBadGrid indicates a time grid that is empty or not strictly
	// increasing.
	ErrBadGrid = errors.New("osc: time grid must be strictly increasing")

	// ErrZeroTrajectory indicates a computed trajectory whose displacements
	// are zero everywhere; no spacing scale can be derived for rendering.
	ErrZeroTrajectory = errors.New("osc: all displacement values are zero")
)
