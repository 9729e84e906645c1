// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/qdna/matrix"
	"github.com/stretchr/testify/require"
)

func TestSparseExpectMatchesTraceProduct(t *testing.T) {
	s, err := matrix.NewSparse(3,
		matrix.Entry{Row: 0, Col: 1, Val: 1},
		matrix.Entry{Row: 2, Col: 2, Val: 2i},
		matrix.Entry{Row: 1, Col: 1, Val: 0},
	)
	require.NoError(t, err)
	require.Equal(t, 2, s.NNZ())

	rho, err := matrix.NewCDense(3, 3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.NoError(t, rho.Set(i, j, complex(float64(i+1), float64(j))))
		}
	}

	got, err := s.Expect(rho)
	require.NoError(t, err)
	want, err := matrix.TraceProduct(s.Dense(), rho)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = s.Expect(zeroC(t, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestSparseGroundstate(t *testing.T) {
	s, err := matrix.NewSparse(2, matrix.Entry{Row: 0, Col: 1, Val: 1})
	require.NoError(t, err)
	aug, err := matrix.AddGroundstateSparse(s)
	require.NoError(t, err)
	require.Equal(t, 3, aug.Dim())

	want, err := matrix.AddGroundstateC(s.Dense())
	require.NoError(t, err)
	require.Equal(t, want.String(), aug.Dense().String())
}

func TestSparseErrors(t *testing.T) {
	_, err := matrix.NewSparse(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewSparse(2, matrix.Entry{Row: 2, Col: 0, Val: 1})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func zeroC(t *testing.T, n int) *matrix.CDense {
	t.Helper()
	m, err := matrix.NewCDense(n, n)
	require.NoError(t, err)

	return m
}

func TestSandwichMatchesDense(t *testing.T) {
	l := mustC(t, [][]complex128{{0, 1, 0}, {0, 0, 2i}, {0.5, 0, 0}})
	rho := mustC(t, [][]complex128{{0.5, 0.1i, 0}, {-0.1i, 0.3, 0.2}, {0, 0.2, 0.2}})

	s, err := matrix.SparseFromDense(l)
	require.NoError(t, err)
	require.Equal(t, 3, s.NNZ())

	got := zeroC(t, 3)
	require.NoError(t, s.SandwichAddTo(got, rho, 2))

	lr, err := matrix.CMul(l, rho)
	require.NoError(t, err)
	want := zeroC(t, 3)
	require.NoError(t, matrix.MulAdjointTo(want, lr, l))
	want.ScaleInPlace(2)

	diff, err := matrix.CAdd(got, -1, want)
	require.NoError(t, err)
	require.True(t, diff.IsZero(1e-12))
}
