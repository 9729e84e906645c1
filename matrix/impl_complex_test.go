// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qdna/matrix"
	"github.com/stretchr/testify/require"
)

func mustC(t *testing.T, rows [][]complex128) *matrix.CDense {
	t.Helper()
	m, err := matrix.NewCDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i, row := range rows {
		for j, v := range row {
			require.NoError(t, m.Set(i, j, v))
		}
	}

	return m
}

func TestCDenseBasics(t *testing.T) {
	_, err := matrix.NewCDense(0, 1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	p, err := matrix.NewBasisProjector(3, 1)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), p.Trace())

	_, err = matrix.NewBasisOperator(3, 0, 3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	m := mustC(t, [][]complex128{{1, 2i}, {-2i, 3}})
	require.InDelta(t, 3.0, m.MaxAbs(), tol)
	re := m.Real()
	v, _ := re.At(1, 1)
	require.Equal(t, 3.0, v)

	m.ScaleInPlace(2)
	z, _ := m.At(0, 1)
	require.Equal(t, 4i, z)

	m.Zero()
	require.True(t, m.IsZero(0))
}

func TestAddScaledAndCopyFrom(t *testing.T) {
	a := mustC(t, [][]complex128{{1, 0}, {0, 1}})
	b := mustC(t, [][]complex128{{0, 1}, {1, 0}})
	require.NoError(t, a.AddScaled(1i, b))
	v, _ := a.At(0, 1)
	require.Equal(t, 1i, v)

	dst, err := matrix.NewCDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, dst.CopyFrom(a))
	v, _ = dst.At(1, 0)
	require.Equal(t, 1i, v)

	small, _ := matrix.NewCDense(1, 1)
	require.ErrorIs(t, small.CopyFrom(a), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, small.AddScaled(1, a), matrix.ErrDimensionMismatch)
}

func TestMulAdjointTo(t *testing.T) {
	a := mustC(t, [][]complex128{{1, 1i}, {0, 2}})
	b := mustC(t, [][]complex128{{1i, 0}, {1, 1}})

	dst, _ := matrix.NewCDense(2, 2)
	require.NoError(t, matrix.MulAdjointTo(dst, a, b))

	want, err := matrix.CMul(a, matrix.Adjoint(b))
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			g, _ := dst.At(i, j)
			w, _ := want.At(i, j)
			require.InDelta(t, real(w), real(g), tol)
			require.InDelta(t, imag(w), imag(g), tol)
		}
	}

	bad, _ := matrix.NewCDense(3, 3)
	require.ErrorIs(t, matrix.MulAdjointTo(dst, a, bad), matrix.ErrDimensionMismatch)
}

func TestTraceProductIsExpectation(t *testing.T) {
	rho := mustC(t, [][]complex128{{0.25, 0.1i}, {-0.1i, 0.75}})
	proj, _ := matrix.NewBasisProjector(2, 1)

	e, err := matrix.TraceProduct(proj, rho)
	require.NoError(t, err)
	require.InDelta(t, 0.75, real(e), tol)

	full, err := matrix.CMul(proj, rho)
	require.NoError(t, err)
	require.InDelta(t, real(full.Trace()), real(e), tol)
}

func TestOuterAndCKron(t *testing.T) {
	o, err := matrix.Outer([]complex128{1, 0}, []complex128{0, 1i})
	require.NoError(t, err)
	v, _ := o.At(0, 1)
	require.Equal(t, -1i, v)

	x := mustC(t, [][]complex128{{0, 1}, {1, 0}})
	id, _ := matrix.NewCIdentity(2)
	k, err := matrix.CKron(id, x)
	require.NoError(t, err)
	v, _ = k.At(2, 3)
	require.Equal(t, complex(1, 0), v)
}

func TestEigenHermitian(t *testing.T) {
	// σ_y has eigenvalues ±1.
	sy := mustC(t, [][]complex128{{0, -1i}, {1i, 0}})
	vals, err := matrix.EigenHermitian(sy, matrix.WithUnsorted())
	require.NoError(t, err)
	require.Len(t, vals, 2)
	require.InDelta(t, -1.0, vals[0], 1e-9)
	require.InDelta(t, 1.0, vals[1], 1e-9)

	bad := mustC(t, [][]complex128{{0, 1i}, {1i, 0}})
	_, err = matrix.EigenHermitian(bad)
	require.ErrorIs(t, err, matrix.ErrNonHermitian)
}

func TestSkewToIsCommutator(t *testing.T) {
	h := mustC(t, [][]complex128{{1, 0.5}, {0.5, -1}})
	rho := mustC(t, [][]complex128{{0.7, 0.2i}, {-0.2i, 0.3}})

	hr, err := matrix.CMul(h, rho)
	require.NoError(t, err)
	rh, err := matrix.CMul(rho, h)
	require.NoError(t, err)
	comm, err := matrix.CAdd(hr, -1, rh)
	require.NoError(t, err)
	comm.ScaleInPlace(-1i)

	got := zeroC(t, 2)
	require.NoError(t, matrix.SkewTo(got, hr, -1i))
	diff, err := matrix.CAdd(got, -1, comm)
	require.NoError(t, err)
	require.True(t, diff.IsZero(1e-12))
}

func TestHermitizeAndNormInf(t *testing.T) {
	m := mustC(t, [][]complex128{{1 + 1i, 2}, {0, -3}})
	require.InDelta(t, 2+math.Sqrt2, m.NormInf(), 1e-12)

	require.NoError(t, m.Hermitize())
	require.NoError(t, matrix.ValidateHermitian(m, 0))
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), v)
}

func TestPartialTrace(t *testing.T) {
	// ρ = ρA ⊗ ρB traces back to its factors
	ra := mustC(t, [][]complex128{{0.6, 0.1i}, {-0.1i, 0.4}})
	rb := mustC(t, [][]complex128{{0.25, 0.2}, {0.2, 0.75}})
	rho, err := matrix.CKron(ra, rb)
	require.NoError(t, err)

	a, err := matrix.PartialTrace(rho, 2, 2, 0)
	require.NoError(t, err)
	diff, err := matrix.CAdd(a, -1, ra)
	require.NoError(t, err)
	require.True(t, diff.IsZero(1e-12))

	b, err := matrix.PartialTrace(rho, 2, 2, 1)
	require.NoError(t, err)
	diff, err = matrix.CAdd(b, -1, rb)
	require.NoError(t, err)
	require.True(t, diff.IsZero(1e-12))

	_, err = matrix.PartialTrace(rho, 3, 2, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
