// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/symmetry checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly with their own operation tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry/Hermiticity checks run O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"reflect"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including typed
// nil pointers stored in the interface.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if v := reflect.ValueOf(m); v.Kind() == reflect.Ptr && v.IsNil() {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b have equal dimensions.
// Assumes a and b are not nil.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric checks that m is square and |m[i,j]-m[j,i]| ≤ tol.
// Errors: ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrNaNInf.
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	n := m.Rows()
	var aij, aji float64
	var err error
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.IsNaN(aij) || math.IsInf(aij, 0) {
				return validatorErrorf("ValidateSymmetric", ErrNaNInf)
			}
			if i == j {
				continue
			}
			if aji, err = m.At(j, i); err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(aij-aji) > tol {
				return fmt.Errorf("ValidateSymmetric: (%d,%d): %w", i, j, ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateHermitian checks that c is square and |c[i,j]-conj(c[j,i])| ≤ tol.
// Errors: ErrNilMatrix, ErrNonSquare, ErrNonHermitian.
// Complexity: O(n²).
func ValidateHermitian(c *CDense, tol float64) error {
	if c == nil {
		return validatorErrorf("ValidateHermitian", ErrNilMatrix)
	}
	if c.r != c.c {
		return validatorErrorf("ValidateHermitian", ErrNonSquare)
	}
	n := c.r
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if cmplx.Abs(c.data[i*n+j]-cmplx.Conj(c.data[j*n+i])) > tol {
				return fmt.Errorf("ValidateHermitian: (%d,%d): %w", i, j, ErrNonHermitian)
			}
		}
	}

	return nil
}
