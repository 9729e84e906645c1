// SPDX-License-Identifier: MIT

package evaluation

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/qdna/matrix"
)

// TraceDistance returns ½·Σ|λ_i| over the eigenvalues of a − b.
// Errors: ErrNilInput, matrix.ErrDimensionMismatch, matrix.ErrNonHermitian.
func TraceDistance(a, b *matrix.CDense) (float64, error) {
	if a == nil || b == nil {
		return 0, evalErrorf("TraceDistance", ErrNilInput)
	}
	diff, err := matrix.CAdd(a, -1, b)
	if err != nil {
		return 0, evalErrorf("TraceDistance", err)
	}
	vals, err := matrix.EigenHermitian(diff)
	if err != nil {
		return 0, evalErrorf("TraceDistance", err)
	}
	var sum float64
	for _, v := range vals {
		sum += math.Abs(v)
	}

	return sum / 2, nil
}

// Purity returns Re Tr(ρ²).
// Errors: ErrNilInput, matrix.ErrDimensionMismatch.
func Purity(rho *matrix.CDense) (float64, error) {
	if rho == nil {
		return 0, evalErrorf("Purity", ErrNilInput)
	}
	v, err := matrix.TraceProduct(rho, rho)
	if err != nil {
		return 0, evalErrorf("Purity", err)
	}

	return real(v), nil
}

// absSums returns Σ|ρ_ij| and Σ|ρ_ij|².
func absSums(rho *matrix.CDense) (l1, l2 float64) {
	for i := 0; i < rho.Rows(); i++ {
		for j := 0; j < rho.Cols(); j++ {
			v, _ := rho.At(i, j)
			a := cmplx.Abs(v)
			l1 += a
			l2 += a * a
		}
	}

	return l1, l2
}

// Coherence returns the l1 coherence Σ_{i≠j}|ρ_ij|, computed as
// Σ|ρ_ij| − Re Tr ρ.
func Coherence(rho *matrix.CDense) float64 {
	l1, _ := absSums(rho)

	return l1 - real(rho.Trace())
}

// IPR returns the inverse participation ratio (Σ|ρ_ij|)²/(N·Σ|ρ_ij|²):
// 1/N for a localized state, 1 for the maximally mixed state and N for a
// fully coherent delocalized state.
func IPR(rho *matrix.CDense) float64 {
	l1, l2 := absSums(rho)
	if l2 == 0 {
		return 0
	}

	return l1 * l1 / (float64(rho.Rows()) * l2)
}
