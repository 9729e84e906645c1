// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qdna/matrix"
	"github.com/stretchr/testify/require"
)

const tol = 1e-10

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func TestAddSubScale(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{4, 3}, {2, 1}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	require.Equal(t, "[5, 5]\n[5, 5]\n", sum.String())

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	require.Equal(t, "[-3, -1]\n[1, 3]\n", diff.String())

	sc, err := matrix.Scale(a, 2)
	require.NoError(t, err)
	require.Equal(t, "[2, 4]\n[6, 8]\n", sc.String())

	_, err = matrix.Scale(a, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	c := mustRows(t, [][]float64{{1, 2, 3}})
	_, err = matrix.Add(a, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Add(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMulTranspose(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	require.Equal(t, "[58, 64]\n[139, 154]\n", p.String())

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.Equal(t, 3, at.Rows())
	v, _ := at.At(2, 1)
	require.Equal(t, 6.0, v)
}

// TestKronElectronOuter checks the electron-outer block layout of a ⊗ b.
func TestKronElectronOuter(t *testing.T) {
	a := mustRows(t, [][]float64{{0, 1}, {1, 0}})
	id, err := matrix.NewIdentity(2)
	require.NoError(t, err)

	k, err := matrix.Kron(a, id)
	require.NoError(t, err)
	require.Equal(t, 4, k.Rows())
	// (e=0,h=1) couples to (e=1,h=1): row 1, col 3.
	v, _ := k.At(1, 3)
	require.Equal(t, 1.0, v)
	v, _ = k.At(0, 1)
	require.Equal(t, 0.0, v)

	k2, err := matrix.Kron(id, a)
	require.NoError(t, err)
	v, _ = k2.At(0, 1)
	require.Equal(t, 1.0, v)
	v, _ = k2.At(2, 3)
	require.Equal(t, 1.0, v)
}

// TestEigenSymTwoSite covers the two-site wire: eigenvalues ±t, eigenvectors (1,∓1)/√2.
func TestEigenSymTwoSite(t *testing.T) {
	h := mustRows(t, [][]float64{{0, 1}, {1, 0}})

	vals, vecs, err := matrix.EigenSym(h)
	require.NoError(t, err)
	require.InDelta(t, -1.0, vals[0], tol)
	require.InDelta(t, 1.0, vals[1], tol)

	v00, _ := vecs.At(0, 0)
	v10, _ := vecs.At(1, 0)
	require.InDelta(t, 1/math.Sqrt2, math.Abs(v00), tol)
	require.InDelta(t, -v00, v10, tol)

	v01, _ := vecs.At(0, 1)
	v11, _ := vecs.At(1, 1)
	require.InDelta(t, v01, v11, tol)
}

// TestEigenSymReconstruct checks Q·diag(λ)·Qᵀ = A on a 4×4 chain with on-site terms.
func TestEigenSymReconstruct(t *testing.T) {
	a := mustRows(t, [][]float64{
		{8.2, 0.3, 0, 0.1},
		{0.3, 7.9, -0.2, 0},
		{0, -0.2, 8.6, 0.05},
		{0.1, 0, 0.05, 8.1},
	})
	vals, q, err := matrix.EigenSym(a)
	require.NoError(t, err)
	for i := 1; i < len(vals); i++ {
		require.LessOrEqual(t, vals[i-1], vals[i])
	}

	d, err := matrix.NewDense(4, 4)
	require.NoError(t, err)
	for i, v := range vals {
		require.NoError(t, d.Set(i, i, v))
	}
	qd, err := matrix.Mul(q, d)
	require.NoError(t, err)
	qt, err := matrix.Transpose(q)
	require.NoError(t, err)
	back, err := matrix.Mul(qd, qt)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want, _ := a.At(i, j)
			got, _ := back.At(i, j)
			require.InDelta(t, want, got, 1e-9)
		}
	}
}

func TestEigenSymRejectsAsymmetric(t *testing.T) {
	a := mustRows(t, [][]float64{{0, 1}, {2, 0}})
	_, _, err := matrix.EigenSym(a)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	r := mustRows(t, [][]float64{{0, 1, 2}})
	_, _, err = matrix.EigenSym(r)
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestEigenSymSweepBudget(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 0.5, 0.2}, {0.5, 2, 0.3}, {0.2, 0.3, 3}})
	_, _, err := matrix.EigenSym(a, matrix.WithMaxSweeps(1), matrix.WithEigenTolerance(1e-15))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}
