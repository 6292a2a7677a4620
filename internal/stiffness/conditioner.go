// Package stiffness conditions raw stiffness matrices for stable dynamics.
package stiffness

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/avshek/oscilab/internal/osc"
)

// DefaultFloor replaces negative eigenvalues during conditioning. The value
// is configurable per call; this is only the conventional default.
const DefaultFloor = 1e-6

// Condition turns an arbitrary square real matrix into a symmetric,
// positive-semi-definite stiffness matrix:
//
//  1. symmetrize K' = (K + Kᵀ)/2
//  2. eigendecompose K' = V Λ Vᵀ
//  3. clamp every eigenvalue below zero to floor
//  4. reconstruct V Λ' Vᵀ
//
// A floor <= 0 falls back to DefaultFloor. Non-square input is rejected
// with osc.ErrNotSquare.
func Condition(raw [][]float64, floor float64) (*mat.SymDense, error) {
	n := len(raw)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty matrix", osc.ErrNotSquare)
	}
	for i, row := range raw {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", osc.ErrNotSquare, i, len(row), n)
		}
	}
	if floor <= 0 {
		floor = DefaultFloor
	}

	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (raw[i][j]+raw[j][i])/2)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		// EigenSym cannot fail on a real symmetric matrix of finite
		// entries; non-finite input is the only way here.
		return nil, fmt.Errorf("stiffness: eigendecomposition failed (non-finite matrix entries?)")
	}

	values := eig.Values(nil)
	for i, v := range values {
		if v < 0 {
			values[i] = floor
		}
	}

	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	var scaled, full mat.Dense
	scaled.Mul(&vectors, mat.NewDiagDense(n, values))
	full.Mul(&scaled, vectors.T())

	// Round-off can leave the reconstruction asymmetric in the last few
	// ulps; average the mirrored entries.
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, (full.At(i, j)+full.At(j, i))/2)
		}
	}
	return out, nil
}

// Rows flattens a conditioned matrix into per-oscillator coupling rows.
func Rows(k *mat.SymDense) [][]float64 {
	n, _ := k.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = k.At(i, j)
		}
	}
	return rows
}
