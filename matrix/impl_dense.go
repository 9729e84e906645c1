// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/AddAt return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Reject NaN/Inf on ingestion: a Hamiltonian entry that is not finite is a data error.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/AddAt: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxAddAt = "AddAt" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//
// Inputs:
//   - method: context tag (ctxAt/ctxSet/ctxAddAt)
//   - row, col: coordinates
//   - err: sentinel (e.g., ErrOutOfRange, ErrNaNInf)
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major real matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (> 0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewIdentity returns the n×n identity matrix.
// Errors: ErrInvalidDimensions for n <= 0.
func NewIdentity(n int) (*Dense, error) {
	d, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1
	}

	return d, nil
}

// NewDenseFromRows copies a rectangular [][]float64 into a new Dense.
//
// Errors:
//   - ErrInvalidDimensions for an empty input or an empty first row.
//   - ErrDimensionMismatch for ragged rows.
//   - ErrNaNInf for non-finite entries.
//
// Complexity: O(r*c).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	d := &Dense{r: r, c: c, data: make([]float64, r*c)}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("NewDenseFromRows: row %d has %d cols, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
			d.data[i*c+j] = v
		}
	}

	return d, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf validates (i,j) and returns the flat offset.
func (m *Dense) indexOf(method string, i, j int) (int, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(method, i, j, ErrOutOfRange)
	}

	return i*m.c + j, nil
}

// At returns the element at (i,j).
// Errors: ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(i, j int) (float64, error) {
	off, err := m.indexOf(ctxAt, i, j)
	if err != nil {
		return 0, err
	}

	return m.data[off], nil
}

// Set assigns v at (i,j).
// Errors: ErrOutOfRange, ErrNaNInf.
// Complexity: O(1).
func (m *Dense) Set(i, j int, v float64) error {
	off, err := m.indexOf(ctxSet, i, j)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// AddAt accumulates v into (i,j). It is the write primitive of every
// Hamiltonian assembly loop: coupling terms are summed, never overwritten.
// Errors: ErrOutOfRange, ErrNaNInf.
// Complexity: O(1).
func (m *Dense) AddAt(i, j int, v float64) error {
	off, err := m.indexOf(ctxAddAt, i, j)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxAddAt, i, j, ErrNaNInf)
	}
	m.data[off] += v

	return nil
}

// Clone returns a deep copy as Matrix.
func (m *Dense) Clone() Matrix { return m.Copy() }

// Copy returns a deep copy with the concrete type preserved.
// Complexity: O(r*c).
func (m *Dense) Copy() *Dense {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// Diag returns a copy of the main diagonal (length min(r,c)).
func (m *Dense) Diag() []float64 {
	n := m.r
	if m.c < n {
		n = m.c
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = m.data[i*m.c+i]
	}

	return out
}

// Col returns a copy of column j. Errors: ErrOutOfRange.
func (m *Dense) Col(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxAt, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// ToComplex lifts m into a CDense with zero imaginary parts.
// Complexity: O(r*c).
func (m *Dense) ToComplex() *CDense {
	out := &CDense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for k, v := range m.data {
		out.data[k] = complex(v, 0)
	}

	return out
}

// String renders the matrix row by row ("[a, b]\n[c, d]\n").
func (m *Dense) String() string {
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
