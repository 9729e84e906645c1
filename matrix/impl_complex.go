// SPDX-License-Identifier: MIT

// Package matrix - CDense: complex row-major storage for density matrices,
// collapse operators and observables.
//
// Layout mirrors Dense (offset = i*cols + j). Accessors return errors instead
// of panicking; in-place kernels (AddScaled, ScaleInPlace, Zero, CopyFrom)
// exist so the master-equation integrator can reuse buffers across steps.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// cdenseErrorf mirrors denseErrorf for the complex type.
func cdenseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CDense.%s(%d,%d): %w", method, row, col, err)
}

// CDense is a concrete row-major complex matrix.
type CDense struct {
	r, c int
	data []complex128
}

var _ fmt.Stringer = (*CDense)(nil)

// NewCDense creates an r×c complex zero matrix.
// Errors: ErrInvalidDimensions.
// Complexity: O(r*c).
func NewCDense(rows, cols int) (*CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// NewCIdentity returns the n×n complex identity.
func NewCIdentity(n int) (*CDense, error) {
	m, err := NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// NewBasisProjector returns |k⟩⟨k| in dimension n (a Fock projector).
// Errors: ErrInvalidDimensions, ErrOutOfRange.
func NewBasisProjector(n, k int) (*CDense, error) {
	return NewBasisOperator(n, k, k)
}

// NewBasisOperator returns |i⟩⟨j| in dimension n.
// Errors: ErrInvalidDimensions, ErrOutOfRange.
func NewBasisOperator(n, i, j int) (*CDense, error) {
	m, err := NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	if err = m.Set(i, j, 1); err != nil {
		return nil, err
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *CDense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CDense) Cols() int { return m.c }

func (m *CDense) indexOf(method string, i, j int) (int, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, cdenseErrorf(method, i, j, ErrOutOfRange)
	}

	return i*m.c + j, nil
}

// At returns the element at (i,j). Errors: ErrOutOfRange.
func (m *CDense) At(i, j int) (complex128, error) {
	off, err := m.indexOf(ctxAt, i, j)
	if err != nil {
		return 0, err
	}

	return m.data[off], nil
}

// Set assigns v at (i,j). Errors: ErrOutOfRange, ErrNaNInf.
func (m *CDense) Set(i, j int, v complex128) error {
	off, err := m.indexOf(ctxSet, i, j)
	if err != nil {
		return err
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return cdenseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// AddAt accumulates v into (i,j). Errors: ErrOutOfRange, ErrNaNInf.
func (m *CDense) AddAt(i, j int, v complex128) error {
	off, err := m.indexOf(ctxAddAt, i, j)
	if err != nil {
		return err
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return cdenseErrorf(ctxAddAt, i, j, ErrNaNInf)
	}
	m.data[off] += v

	return nil
}

// Copy returns a deep copy.
func (m *CDense) Copy() *CDense {
	buf := make([]complex128, len(m.data))
	copy(buf, m.data)

	return &CDense{r: m.r, c: m.c, data: buf}
}

// CopyFrom overwrites m with src. Errors: ErrNilMatrix, ErrDimensionMismatch.
func (m *CDense) CopyFrom(src *CDense) error {
	if src == nil {
		return ErrNilMatrix
	}
	if m.r != src.r || m.c != src.c {
		return ErrDimensionMismatch
	}
	copy(m.data, src.data)

	return nil
}

// Zero resets every entry to 0 without reallocating.
func (m *CDense) Zero() {
	for k := range m.data {
		m.data[k] = 0
	}
}

// ScaleInPlace multiplies every entry by alpha.
func (m *CDense) ScaleInPlace(alpha complex128) {
	for k := range m.data {
		m.data[k] *= alpha
	}
}

// AddScaled performs m += alpha*x. Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func (m *CDense) AddScaled(alpha complex128, x *CDense) error {
	if x == nil {
		return ErrNilMatrix
	}
	if m.r != x.r || m.c != x.c {
		return ErrDimensionMismatch
	}
	for k, v := range x.data {
		m.data[k] += alpha * v
	}

	return nil
}

// Diag returns a copy of the main diagonal.
func (m *CDense) Diag() []complex128 {
	n := m.r
	if m.c < n {
		n = m.c
	}
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = m.data[i*m.c+i]
	}

	return out
}

// Trace returns Σ m[i,i] over the main diagonal.
func (m *CDense) Trace() complex128 {
	var tr complex128
	for _, v := range m.Diag() {
		tr += v
	}

	return tr
}

// Real returns the real part as a Dense.
func (m *CDense) Real() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for k, v := range m.data {
		out.data[k] = real(v)
	}

	return out
}

// IsZero reports whether every entry has modulus ≤ tol.
func (m *CDense) IsZero(tol float64) bool {
	for _, v := range m.data {
		if cmplx.Abs(v) > tol {
			return false
		}
	}

	return true
}

// MaxAbs returns the largest entry modulus.
func (m *CDense) MaxAbs() float64 {
	best := NormZero
	for _, v := range m.data {
		best = math.Max(best, cmplx.Abs(v))
	}

	return best
}

// NormInf returns the maximum absolute row sum, an upper bound on the
// spectral radius.
func (m *CDense) NormInf() float64 {
	best := NormZero
	for i := 0; i < m.r; i++ {
		var sum float64
		for _, v := range m.data[i*m.c : (i+1)*m.c] {
			sum += cmplx.Abs(v)
		}
		best = math.Max(best, sum)
	}

	return best
}

// Hermitize replaces a square m by (m + m†)/2 in place.
// Errors: ErrNonSquare.
func (m *CDense) Hermitize() error {
	if m.r != m.c {
		return ErrNonSquare
	}
	n := m.r
	for i := 0; i < n; i++ {
		m.data[i*n+i] = complex(real(m.data[i*n+i]), 0)
		for j := i + 1; j < n; j++ {
			v := (m.data[i*n+j] + cmplx.Conj(m.data[j*n+i])) / 2
			m.data[i*n+j] = v
			m.data[j*n+i] = cmplx.Conj(v)
		}
	}

	return nil
}

// String renders the matrix row by row with %g real/imag parts.
func (m *CDense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
