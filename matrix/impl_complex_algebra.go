// SPDX-License-Identifier: MIT

// Package matrix - complex kernels for density-matrix work.
//
// Purpose:
//   - Products (CMul, MulTo, MulAdjointTo) with buffer reuse for the Lindblad
//     right-hand side.
//   - Adjoint/Conj/CKron/Outer for operator construction and basis changes.
//   - TraceProduct for expectation values Tr(O·ρ) without forming O·ρ.
//   - EigenHermitian via the real symmetric embedding [[A,−B],[B,A]].
//
// All kernels skip exact zeros of the left operand; collapse operators and
// projectors are extremely sparse and this is the dominant saving.

package matrix

import (
	"fmt"
	"math/cmplx"
)

const (
	opCMul      = "CMul"
	opMulTo     = "MulTo"
	opMulAdjTo  = "MulAdjointTo"
	opCAdd      = "CAdd"
	opCKron     = "CKron"
	opOuter     = "Outer"
	opTraceProd = "TraceProduct"
	opEigenH    = "EigenHermitian"
	opSkewTo    = "SkewTo"
	opPartialTr = "PartialTrace"
)

// CMul returns a×b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c).
func CMul(a, b *CDense) (*CDense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opCMul, ErrNilMatrix)
	}
	out, err := NewCDense(a.r, b.c)
	if err != nil {
		return nil, matrixErrorf(opCMul, err)
	}
	if err = MulTo(out, a, b); err != nil {
		return nil, matrixErrorf(opCMul, err)
	}

	return out, nil
}

// MulTo writes a×b into dst (overwriting it). dst must not alias a or b.
//
// Implementation:
//   - Stage 1: shape checks (a.c == b.r, dst is a.r×b.c).
//   - Stage 2: zero dst; i→k→j loop, skipping a[i,k] == 0.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c) worst case, O(nnz(a)*c) in practice.
func MulTo(dst, a, b *CDense) error {
	if dst == nil || a == nil || b == nil {
		return matrixErrorf(opMulTo, ErrNilMatrix)
	}
	if a.c != b.r || dst.r != a.r || dst.c != b.c {
		return matrixErrorf(opMulTo, ErrDimensionMismatch)
	}
	dst.Zero()
	var aik complex128
	for i := 0; i < a.r; i++ {
		row := dst.data[i*dst.c : (i+1)*dst.c]
		for k := 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			bRow := b.data[k*b.c : (k+1)*b.c]
			for j, bkj := range bRow {
				row[j] += aik * bkj
			}
		}
	}

	return nil
}

// MulAdjointTo writes a×b† into dst without materializing b†.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*n*c).
func MulAdjointTo(dst, a, b *CDense) error {
	if dst == nil || a == nil || b == nil {
		return matrixErrorf(opMulAdjTo, ErrNilMatrix)
	}
	// (a b†)[i,j] = Σ_k a[i,k]·conj(b[j,k])
	if a.c != b.c || dst.r != a.r || dst.c != b.r {
		return matrixErrorf(opMulAdjTo, ErrDimensionMismatch)
	}
	dst.Zero()
	var aik complex128
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.r; j++ {
				bjk := b.data[j*b.c+k]
				if bjk != 0 {
					dst.data[i*dst.c+j] += aik * cmplx.Conj(bjk)
				}
			}
		}
	}

	return nil
}

// SkewTo writes alpha·(a − a†) into dst (overwriting it). With alpha = −i
// and a = H·ρ this is the commutator term −i[H, ρ] for Hermitian H and ρ.
// dst must not alias a.
// Errors: ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch.
// Complexity: O(n²).
func SkewTo(dst, a *CDense, alpha complex128) error {
	if dst == nil || a == nil {
		return matrixErrorf(opSkewTo, ErrNilMatrix)
	}
	if a.r != a.c {
		return matrixErrorf(opSkewTo, ErrNonSquare)
	}
	if dst.r != a.r || dst.c != a.c {
		return matrixErrorf(opSkewTo, ErrDimensionMismatch)
	}
	n := a.r
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.data[i*n+j] = alpha * (a.data[i*n+j] - cmplx.Conj(a.data[j*n+i]))
		}
	}

	return nil
}

// CAdd returns a + alpha*b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func CAdd(a *CDense, alpha complex128, b *CDense) (*CDense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opCAdd, ErrNilMatrix)
	}
	out := a.Copy()
	if err := out.AddScaled(alpha, b); err != nil {
		return nil, matrixErrorf(opCAdd, err)
	}

	return out, nil
}

// Adjoint returns the conjugate transpose m†.
func Adjoint(m *CDense) *CDense {
	out := &CDense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*out.c+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out
}

// Conj returns the elementwise complex conjugate.
func Conj(m *CDense) *CDense {
	out := m.Copy()
	for k, v := range out.data {
		out.data[k] = cmplx.Conj(v)
	}

	return out
}

// CKron returns the Kronecker product a ⊗ b for complex operands.
// Errors: ErrNilMatrix.
// Complexity: O(|a|·|b|).
func CKron(a, b *CDense) (*CDense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opCKron, ErrNilMatrix)
	}
	rows, cols := a.r*b.r, a.c*b.c
	out := &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}
	for i := 0; i < a.r; i++ {
		for j := 0; j < a.c; j++ {
			aij := a.data[i*a.c+j]
			if aij == 0 {
				continue
			}
			for k := 0; k < b.r; k++ {
				base := (i*b.r+k)*cols + j*b.c
				for l := 0; l < b.c; l++ {
					out.data[base+l] = aij * b.data[k*b.c+l]
				}
			}
		}
	}

	return out, nil
}

// Outer returns |u⟩⟨v| = u·v†.
// Errors: ErrInvalidDimensions for empty vectors.
func Outer(u, v []complex128) (*CDense, error) {
	out, err := NewCDense(len(u), len(v))
	if err != nil {
		return nil, matrixErrorf(opOuter, err)
	}
	for i, ui := range u {
		if ui == 0 {
			continue
		}
		for j, vj := range v {
			out.data[i*out.c+j] = ui * cmplx.Conj(vj)
		}
	}

	return out, nil
}

// TraceProduct returns Tr(a·b) = Σ_ij a[i,j]·b[j,i] in O(r*c) without
// forming the product.
// Errors: ErrNilMatrix, ErrDimensionMismatch (a must be r×c and b c×r).
func TraceProduct(a, b *CDense) (complex128, error) {
	if a == nil || b == nil {
		return 0, matrixErrorf(opTraceProd, ErrNilMatrix)
	}
	if a.r != b.c || a.c != b.r {
		return 0, matrixErrorf(opTraceProd, ErrDimensionMismatch)
	}
	var tr complex128
	for i := 0; i < a.r; i++ {
		for j := 0; j < a.c; j++ {
			aij := a.data[i*a.c+j]
			if aij != 0 {
				tr += aij * b.data[j*b.c+i]
			}
		}
	}

	return tr, nil
}

// EigenHermitian returns the eigenvalues of a Hermitian matrix in ascending
// order.
//
// Implementation:
//   - Stage 1: ValidateHermitian within the configured symmetry tolerance.
//   - Stage 2: build the real symmetric embedding E = [[A, −B], [B, A]] of
//     H = A + iB; every eigenvalue of H appears exactly twice in E.
//   - Stage 3: EigenSym(E) sorted ascending, keep every second value.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNonHermitian, ErrMatrixEigenFailed.
// Complexity: O(sweeps·(2n)^3).
func EigenHermitian(h *CDense, opts ...EigenOption) ([]float64, error) {
	o := gatherEigenOptions(opts...)
	if err := ValidateHermitian(h, o.symTol); err != nil {
		return nil, matrixErrorf(opEigenH, err)
	}
	n := h.r
	emb, err := NewDense(2*n, 2*n)
	if err != nil {
		return nil, matrixErrorf(opEigenH, err)
	}
	w := 2 * n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			// Symmetrize the tiny Hermiticity residue so EigenSym accepts it.
			v := (h.data[i*n+j] + cmplx.Conj(h.data[j*n+i])) / 2
			re, im := real(v), imag(v)
			emb.data[i*w+j] = re
			emb.data[(i+n)*w+(j+n)] = re
			emb.data[i*w+(j+n)] = -im
			emb.data[(i+n)*w+j] = im
		}
	}
	sorted := append(append([]EigenOption(nil), opts...), func(o *eigenOptions) { o.sortAscend = true })
	vals, _, err := EigenSym(emb, sorted...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opEigenH, err)
	}
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		out[k] = vals[2*k]
	}

	return out, nil
}

// PartialTrace traces one factor out of rho on a dA⊗dB space, the first
// factor being the outer (slow) index. keep = 0 returns the dA×dA block
// Σ_b ρ[(a,b),(a',b)], keep = 1 the dB×dB block Σ_a ρ[(a,b),(a,b')].
// Errors: ErrNilMatrix, ErrInvalidDimensions, ErrDimensionMismatch.
// Complexity: O(dA²·dB) or O(dA·dB²).
func PartialTrace(rho *CDense, dA, dB, keep int) (*CDense, error) {
	if rho == nil {
		return nil, matrixErrorf(opPartialTr, ErrNilMatrix)
	}
	if dA <= 0 || dB <= 0 || (keep != 0 && keep != 1) {
		return nil, matrixErrorf(opPartialTr, ErrInvalidDimensions)
	}
	n := dA * dB
	if rho.r != n || rho.c != n {
		return nil, fmt.Errorf("%s: %dx%d for %d⊗%d: %w", opPartialTr, rho.r, rho.c, dA, dB, ErrDimensionMismatch)
	}
	if keep == 0 {
		out := &CDense{r: dA, c: dA, data: make([]complex128, dA*dA)}
		for a := 0; a < dA; a++ {
			for a2 := 0; a2 < dA; a2++ {
				var sum complex128
				for b := 0; b < dB; b++ {
					sum += rho.data[(a*dB+b)*n+a2*dB+b]
				}
				out.data[a*dA+a2] = sum
			}
		}
		return out, nil
	}
	out := &CDense{r: dB, c: dB, data: make([]complex128, dB*dB)}
	for a := 0; a < dA; a++ {
		for b := 0; b < dB; b++ {
			for b2 := 0; b2 < dB; b2++ {
				out.data[b*dB+b2] += rho.data[(a*dB+b)*n+a*dB+b2]
			}
		}
	}

	return out, nil
}
