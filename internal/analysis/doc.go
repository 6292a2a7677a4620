// Package analysis post-processes simulation results.
//
// Two views are provided: normal-mode frequencies computed directly from
// the conditioned stiffness matrix and masses, and an FFT power spectrum of
// a recorded displacement series. For a linear chain the dominant spectral
// peaks should line up with the normal modes.
package analysis
