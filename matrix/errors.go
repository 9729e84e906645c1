// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels (optionally wrapped with an
// operation tag) and tests MUST check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping. Context is
// attached by the kernels via matrixErrorf(tag, err); callers match with
// errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> NaN/Inf -> dimension mismatch -> structural
// violations (asymmetry, non-Hermitian) -> convergence.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated symmetry
	// within the configured tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNonHermitian signals that a complex matrix expected to equal its own
	// adjoint violated that property within the configured tolerance.
	ErrNonHermitian = errors.New("matrix: matrix is not Hermitian within eps")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed indicates that the Jacobi routine failed to converge
	// under the given tolerance and sweep budget.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")

	// ErrGroundstateDim indicates a ground-state removal on a matrix that is too
	// small to carry a ground-state row/column (dimension < 2).
	ErrGroundstateDim = errors.New("matrix: no ground-state dimension to remove")
)
