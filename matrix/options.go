// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for spectral kernels and numeric
// policy. This file defines:
//   - EigenOption (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherEigenOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each knob impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative tolerance used by symmetry/Hermiticity
	// checks and by Jacobi convergence (off-diagonal Frobenius norm relative
	// to the full Frobenius norm).
	DefaultEpsilon = 1e-12

	// DefaultMaxSweeps bounds the number of cyclic Jacobi sweeps. Quadratic
	// convergence makes 10..15 sweeps typical for n ≤ 200.
	DefaultMaxSweeps = 100

	// DefaultSortAscending orders eigenpairs by ascending eigenvalue.
	DefaultSortAscending = true

	// DefaultSymmetryTol is the absolute tolerance for the input symmetry check.
	DefaultSymmetryTol = 1e-9
)

// EigenOption configures Eigen/EigenSym/EigenHermitian.
type EigenOption func(*eigenOptions)

type eigenOptions struct {
	tol        float64 // relative convergence threshold
	symTol     float64 // absolute symmetry tolerance for input validation
	maxSweeps  int     // sweep budget
	sortAscend bool    // sort eigenpairs ascending by eigenvalue
}

// defaultEigenOptions returns the documented defaults.
func defaultEigenOptions() eigenOptions {
	return eigenOptions{
		tol:        DefaultEpsilon,
		symTol:     DefaultSymmetryTol,
		maxSweeps:  DefaultMaxSweeps,
		sortAscend: DefaultSortAscending,
	}
}

// gatherEigenOptions applies opts in order (last wins) over the defaults.
// Complexity: O(len(opts)).
func gatherEigenOptions(opts ...EigenOption) eigenOptions {
	o := defaultEigenOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithEigenTolerance sets the relative convergence threshold.
// Panics if tol is not a finite positive number.
func WithEigenTolerance(tol float64) EigenOption {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic("matrix: WithEigenTolerance requires a finite tol > 0")
	}
	return func(o *eigenOptions) { o.tol = tol }
}

// WithSymmetryTolerance sets the absolute tolerance used to accept an input
// as symmetric (real) or Hermitian (complex). Panics if tol < 0 or NaN.
func WithSymmetryTolerance(tol float64) EigenOption {
	if !(tol >= 0) || math.IsInf(tol, 0) {
		panic("matrix: WithSymmetryTolerance requires a finite tol >= 0")
	}
	return func(o *eigenOptions) { o.symTol = tol }
}

// WithMaxSweeps sets the cyclic Jacobi sweep budget. Panics if n < 1.
func WithMaxSweeps(n int) EigenOption {
	if n < 1 {
		panic("matrix: WithMaxSweeps requires n >= 1")
	}
	return func(o *eigenOptions) { o.maxSweeps = n }
}

// WithUnsorted keeps eigenpairs in the order the Jacobi sweeps leave them.
func WithUnsorted() EigenOption {
	return func(o *eigenOptions) { o.sortAscend = false }
}
