// SPDX-License-Identifier: MIT

// Package matrix - Sparse: square complex operators stored as a list of
// nonzero entries.
//
// Observables such as |a⟩⟨b| ⊗ I have N nonzero entries in an N²-dimensional
// space; keeping them as entry lists makes Tr(O·ρ) an O(nnz) kernel and keeps
// the observable set of large topologies in memory.

package matrix

import (
	"fmt"
	"math/cmplx"
)

const opSparse = "Sparse"

// Entry is one nonzero element of a Sparse operator.
type Entry struct {
	Row, Col int
	Val      complex128
}

// Sparse is an n×n complex operator given by its nonzero entries.
// Repeated (row, col) positions add up.
type Sparse struct {
	n       int
	entries []Entry
}

// NewSparse validates the entries against n and copies them.
// Errors: ErrInvalidDimensions, ErrOutOfRange.
func NewSparse(n int, entries ...Entry) (*Sparse, error) {
	if n <= 0 {
		return nil, matrixErrorf(opSparse, ErrInvalidDimensions)
	}
	out := &Sparse{n: n, entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n {
			return nil, fmt.Errorf("%s(%d,%d) in dim %d: %w", opSparse, e.Row, e.Col, n, ErrOutOfRange)
		}
		if e.Val != 0 {
			out.entries = append(out.entries, e)
		}
	}

	return out, nil
}

// Dim returns n.
func (s *Sparse) Dim() int { return s.n }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.entries) }

// Entries returns a copy of the stored entries.
func (s *Sparse) Entries() []Entry { return append([]Entry(nil), s.entries...) }

// Dense materializes the operator.
func (s *Sparse) Dense() *CDense {
	out := &CDense{r: s.n, c: s.n, data: make([]complex128, s.n*s.n)}
	for _, e := range s.entries {
		out.data[e.Row*s.n+e.Col] += e.Val
	}

	return out
}

// Expect returns Tr(S·ρ) = Σ v·ρ[col,row].
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz).
func (s *Sparse) Expect(rho *CDense) (complex128, error) {
	if rho == nil {
		return 0, matrixErrorf(opSparse, ErrNilMatrix)
	}
	if rho.r != s.n || rho.c != s.n {
		return 0, fmt.Errorf("%s: Expect on %dx%d with dim %d: %w", opSparse, rho.r, rho.c, s.n, ErrDimensionMismatch)
	}
	var tr complex128
	for _, e := range s.entries {
		tr += e.Val * rho.data[e.Col*s.n+e.Row]
	}

	return tr, nil
}

// AddGroundstateSparse returns s embedded at indices 1..n of an (n+1)-dim
// space, the sparse counterpart of AddGroundstateC.
func AddGroundstateSparse(s *Sparse) (*Sparse, error) {
	if s == nil {
		return nil, matrixErrorf(opAddGS, ErrNilMatrix)
	}
	out := &Sparse{n: s.n + 1, entries: make([]Entry, len(s.entries))}
	for k, e := range s.entries {
		out.entries[k] = Entry{Row: e.Row + 1, Col: e.Col + 1, Val: e.Val}
	}

	return out, nil
}

// SparseFromDense collects the nonzero entries of a square m.
// Errors: ErrNilMatrix, ErrNonSquare.
func SparseFromDense(m *CDense) (*Sparse, error) {
	if m == nil {
		return nil, matrixErrorf(opSparse, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opSparse, ErrNonSquare)
	}
	out := &Sparse{n: m.r}
	for k, v := range m.data {
		if v != 0 {
			out.entries = append(out.entries, Entry{Row: k / m.c, Col: k % m.c, Val: v})
		}
	}

	return out, nil
}

// SandwichAddTo performs dst += w·S·ρ·S†.
//
//	(SρS†)[i,k] = Σ s_ij·ρ[j,l]·conj(s_kl)
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz²).
func (s *Sparse) SandwichAddTo(dst, rho *CDense, w float64) error {
	if dst == nil || rho == nil {
		return matrixErrorf(opSparse, ErrNilMatrix)
	}
	if rho.r != s.n || rho.c != s.n || dst.r != s.n || dst.c != s.n {
		return matrixErrorf(opSparse, ErrDimensionMismatch)
	}
	cw := complex(w, 0)
	for _, a := range s.entries {
		wa := cw * a.Val
		row := a.Row * s.n
		src := a.Col * s.n
		for _, b := range s.entries {
			dst.data[row+b.Row] += wa * rho.data[src+b.Col] * complex(real(b.Val), -imag(b.Val))
		}
	}

	return nil
}

// GramAddTo performs dst += w·S†·S.
//
//	(S†S)[c,d] = Σ_a conj(s_ac)·s_ad
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(Σ_rows nnz(row)²).
func (s *Sparse) GramAddTo(dst *CDense, w float64) error {
	if dst == nil {
		return matrixErrorf(opSparse, ErrNilMatrix)
	}
	if dst.r != s.n || dst.c != s.n {
		return matrixErrorf(opSparse, ErrDimensionMismatch)
	}
	rows := make(map[int][]Entry)
	for _, e := range s.entries {
		rows[e.Row] = append(rows[e.Row], e)
	}
	cw := complex(w, 0)
	for _, row := range rows {
		for _, a := range row {
			ca := cw * cmplx.Conj(a.Val)
			for _, b := range row {
				dst.data[a.Col*s.n+b.Col] += ca * b.Val
			}
		}
	}

	return nil
}
