// SPDX-License-Identifier: MIT

// Package matrix - Superoperator: sparse linear maps on n×n matrices.
//
// The jump part Σ_k w_k·L_k ρ L_k† of a Lindblad generator is a single
// linear map on ρ. Collapse operators that share positions (every site
// operator of one eigenenergy gap, say) add into the same entries, so
// accumulating them here keeps one RHS evaluation at O(nnz) however many
// operators were supplied.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"slices"
)

const opSuperop = "Superoperator"

// Superoperator maps ρ to S(ρ) with S(ρ)[a,b] = Σ w·ρ[c,d] over its
// entries ((a,b), (c,d), w). The zero value is unusable; call
// NewSuperoperator.
type Superoperator struct {
	n   int
	acc map[int64]complex128

	// compacted form, rebuilt after every change
	dirty bool
	to    []int
	from  []int
	val   []complex128
}

// NewSuperoperator returns the zero map on n×n matrices.
// Errors: ErrInvalidDimensions.
func NewSuperoperator(n int) (*Superoperator, error) {
	if n <= 0 {
		return nil, matrixErrorf(opSuperop, ErrInvalidDimensions)
	}

	return &Superoperator{n: n, acc: make(map[int64]complex128)}, nil
}

// Dim returns n.
func (s *Superoperator) Dim() int { return s.n }

// AddSandwich accumulates ρ ↦ w·L·ρ·L†:
//
//	entry ((a.Row, b.Row), (a.Col, b.Col)) += w·a.Val·conj(b.Val)
//
// for every pair of entries a, b of l.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz(l)²).
func (s *Superoperator) AddSandwich(l *Sparse, w float64) error {
	if l == nil {
		return matrixErrorf(opSuperop, ErrNilMatrix)
	}
	if l.n != s.n {
		return fmt.Errorf("%s: operator dim %d, superoperator dim %d: %w", opSuperop, l.n, s.n, ErrDimensionMismatch)
	}
	if w == 0 {
		return nil
	}
	n := int64(s.n)
	cw := complex(w, 0)
	for _, a := range l.entries {
		wa := cw * a.Val
		for _, b := range l.entries {
			to := int64(a.Row)*n + int64(b.Row)
			from := int64(a.Col)*n + int64(b.Col)
			s.acc[to*n*n+from] += wa * cmplx.Conj(b.Val)
		}
	}
	s.dirty = true

	return nil
}

func (s *Superoperator) compact() {
	if !s.dirty {
		return
	}
	keys := make([]int64, 0, len(s.acc))
	for k, v := range s.acc {
		if v != 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	nn := int64(s.n) * int64(s.n)
	s.to = make([]int, len(keys))
	s.from = make([]int, len(keys))
	s.val = make([]complex128, len(keys))
	for i, k := range keys {
		s.to[i], s.from[i], s.val[i] = int(k/nn), int(k%nn), s.acc[k]
	}
	s.dirty = false
}

// NNZ returns the number of stored entries after merging.
func (s *Superoperator) NNZ() int {
	s.compact()

	return len(s.val)
}

// NormInf returns the maximum absolute row sum of the n²×n² matrix of the
// map, an upper bound on its spectral radius.
func (s *Superoperator) NormInf() float64 {
	s.compact()
	best, sum := NormZero, 0.0
	for i, v := range s.val {
		if i > 0 && s.to[i] != s.to[i-1] {
			best, sum = math.Max(best, sum), 0
		}
		sum += cmplx.Abs(v)
	}

	return math.Max(best, sum)
}

// ApplyAddTo performs dst += S(ρ). dst must not alias ρ.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(nnz).
func (s *Superoperator) ApplyAddTo(dst, rho *CDense) error {
	if dst == nil || rho == nil {
		return matrixErrorf(opSuperop, ErrNilMatrix)
	}
	if rho.r != s.n || rho.c != s.n || dst.r != s.n || dst.c != s.n {
		return matrixErrorf(opSuperop, ErrDimensionMismatch)
	}
	s.compact()
	for i, v := range s.val {
		dst.data[s.to[i]] += v * rho.data[s.from[i]]
	}

	return nil
}
