package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of a uniformly
// sampled series. Entry k corresponds to frequency k/(n*dt) Hz.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	coeffs := fft.FFTReal(series)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency (in Hz) of the strongest
// non-DC spectral component, given the sample interval dt.
func DominantFrequency(series []float64, dt float64) float64 {
	ps := PowerSpectrum(series)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(len(series)) * dt)
}
