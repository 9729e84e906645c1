// SPDX-License-Identifier: MIT

// Package basis - unitary basis changes between the site basis and an
// eigenbasis.

package basis

import (
	"fmt"

	"github.com/katalvlaran/qdna/matrix"
)

const opChange = "Change"

// Change returns S·M·S†. In Liouville mode S is replaced by S ⊗ conj(S),
// for superoperators acting on vectorized density matrices (M then has
// dimension N² for an N×N transformation).
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch.
// Complexity: O(n³), n = dimension of M.
func Change(m, s *matrix.CDense, liouville bool) (*matrix.CDense, error) {
	if m == nil || s == nil {
		return nil, fmt.Errorf("%s: %w", opChange, matrix.ErrNilMatrix)
	}
	if liouville {
		var err error
		if s, err = matrix.CKron(s, matrix.Conj(s)); err != nil {
			return nil, fmt.Errorf("%s: %w", opChange, err)
		}
	}
	sm, err := matrix.CMul(s, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opChange, err)
	}
	out, err := matrix.NewCDense(sm.Rows(), s.Rows())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opChange, err)
	}
	if err = matrix.MulAdjointTo(out, sm, s); err != nil {
		return nil, fmt.Errorf("%s: %w", opChange, err)
	}

	return out, nil
}

// GlobalToLocal rotates M from the eigenbasis into the site basis; the
// columns of eigs are the eigenvectors expressed in the site basis.
func GlobalToLocal(m, eigs *matrix.CDense, liouville bool) (*matrix.CDense, error) {
	return Change(m, eigs, liouville)
}

// LocalToGlobal rotates M from the site basis into the eigenbasis.
func LocalToGlobal(m, eigs *matrix.CDense, liouville bool) (*matrix.CDense, error) {
	if eigs == nil {
		return nil, fmt.Errorf("%s: %w", opChange, matrix.ErrNilMatrix)
	}

	return Change(m, matrix.Adjoint(eigs), liouville)
}
