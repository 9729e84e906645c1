// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/qdna/matrix"
	"github.com/stretchr/testify/require"
)

func TestValidateNotNil(t *testing.T) {
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	var typed *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(typed), matrix.ErrNilMatrix)

	m, _ := matrix.NewDense(1, 1)
	require.NoError(t, matrix.ValidateNotNil(m))
}

func TestValidateSquareAndShape(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	b, _ := matrix.NewDense(3, 2)
	require.ErrorIs(t, matrix.ValidateSquare(a), matrix.ErrNonSquare)
	require.ErrorIs(t, matrix.ValidateSameShape(a, b), matrix.ErrDimensionMismatch)
}

func TestValidateSymmetricTolerance(t *testing.T) {
	m := mustRows(t, [][]float64{{0, 1}, {1 + 1e-6, 0}})
	require.ErrorIs(t, matrix.ValidateSymmetric(m, 1e-9), matrix.ErrAsymmetry)
	require.NoError(t, matrix.ValidateSymmetric(m, 1e-5))
}

func TestValidateHermitian(t *testing.T) {
	h := mustC(t, [][]complex128{{1, 2 + 1i}, {2 - 1i, 0}})
	require.NoError(t, matrix.ValidateHermitian(h, 1e-12))

	nh := mustC(t, [][]complex128{{1i, 0}, {0, 0}})
	require.ErrorIs(t, matrix.ValidateHermitian(nh, 1e-12), matrix.ErrNonHermitian)
	require.ErrorIs(t, matrix.ValidateHermitian(nil, 0), matrix.ErrNilMatrix)
}
