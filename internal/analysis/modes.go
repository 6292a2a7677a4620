package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/avshek/oscilab/internal/osc"
)

// NormalModes returns the natural angular frequencies of the chain in
// ascending order. The generalized eigenproblem K v = ω² M v with diagonal
// mass matrix reduces to the ordinary symmetric problem on
// M^{-1/2} K M^{-1/2}; frequencies are the square roots of its eigenvalues.
func NormalModes(masses []float64, conditioned *mat.SymDense) ([]float64, error) {
	n := len(masses)
	rows, _ := conditioned.Dims()
	if rows != n {
		return nil, fmt.Errorf("%w: %d masses for %d×%d stiffness", osc.ErrDimensionMismatch, n, rows, rows)
	}

	invSqrt := make([]float64, n)
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mass[%d] = %g", osc.ErrNonPositiveMass, i, m)
		}
		invSqrt[i] = 1 / math.Sqrt(m)
	}

	reduced := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			reduced.SetSym(i, j, invSqrt[i]*conditioned.At(i, j)*invSqrt[j])
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(reduced, false); !ok {
		return nil, fmt.Errorf("analysis: eigendecomposition failed")
	}

	values := eig.Values(nil)
	freqs := make([]float64, n)
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		freqs[i] = math.Sqrt(v)
	}
	sort.Float64s(freqs)
	return freqs, nil
}
