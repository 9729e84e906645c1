// SPDX-License-Identifier: MIT

// Package matrix - real linear-algebra kernels.
//
// Purpose:
//   - Elementwise Add/Sub/Scale, Mul, Transpose and the Kronecker product used
//     to lift single-particle operators onto the electron-hole product space.
//   - Symmetric eigendecomposition by cyclic Jacobi rotations (EigenSym).
//
// Every kernel accepts the Matrix interface and normalizes it to *Dense once
// (asDense); the hot loops then walk flat row-major slices only.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// Operation tags for error wrapping (no magic strings).
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opKron      = "Kron"
	opEigen     = "EigenSym"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting.
// Use only when err != nil.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// asDense returns m itself when it already is a *Dense, otherwise a Dense
// copy read through At. Nil input yields ErrNilMatrix.
// Complexity: O(1) fast path, O(r*c) fallback.
func asDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		if d == nil {
			return nil, ErrNilMatrix
		}
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
//
// Implementation:
//   - Stage 1: normalize both operands, check identical shapes.
//   - Stage 2: single flat loop over the row-major buffers.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with opTag).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err = ValidateSameShape(da, db); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out := &Dense{r: da.r, c: da.c, data: make([]float64, len(da.data))}
	for k := range out.data {
		out.data[k] = da.data[k] + sign*db.data[k]
	}

	return out, nil
}

// Add returns a + b. Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a - b. Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha*m as a new matrix.
// Errors: ErrNilMatrix, ErrNaNInf for non-finite alpha.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := d.Copy()
	for k := range out.data {
		out.data[k] *= alpha
	}

	return out, nil
}

// Mul returns the product a×b.
//
// Implementation:
//   - Stage 1: validate a.Cols == b.Rows.
//   - Stage 2: i→k→j loop order; the inner loop streams a row of b and a row
//     of the result, and zero a[i,k] entries are skipped (the TB matrices are
//     sparse).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if da.c != db.r {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}
	out := &Dense{r: da.r, c: db.c, data: make([]float64, da.r*db.c)}
	var aik float64
	for i := 0; i < da.r; i++ {
		row := out.data[i*out.c : (i+1)*out.c]
		for k := 0; k < da.c; k++ {
			aik = da.data[i*da.c+k]
			if aik == 0 {
				continue
			}
			bRow := db.data[k*db.c : (k+1)*db.c]
			for j, bkj := range bRow {
				row[j] += aik * bkj
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out := &Dense{r: d.c, c: d.r, data: make([]float64, len(d.data))}
	for i := 0; i < d.r; i++ {
		for j := 0; j < d.c; j++ {
			out.data[j*out.c+i] = d.data[i*d.c+j]
		}
	}

	return out, nil
}

// Kron returns the Kronecker product a ⊗ b.
//
// Implementation:
//   - Block (i,j) of the result is a[i,j]·b; element
//     (i*br + k, j*bc + l) = a[i,j]·b[k,l].
//
// Behavior highlights:
//   - With a = H_e (N×N) and b = I_N the result acts on the electron index
//     of the electron-outer pair basis; kron(I_N, H_h) acts on the hole.
//
// Complexity:
//   - Time O(ar*ac*br*bc), Space the same.
func Kron(a, b Matrix) (*Dense, error) {
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opKron, err)
	}
	rows, cols := da.r*db.r, da.c*db.c
	out := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
	var aij float64
	for i := 0; i < da.r; i++ {
		for j := 0; j < da.c; j++ {
			aij = da.data[i*da.c+j]
			if aij == 0 {
				continue
			}
			for k := 0; k < db.r; k++ {
				base := (i*db.r+k)*cols + j*db.c
				for l := 0; l < db.c; l++ {
					out.data[base+l] = aij * db.data[k*db.c+l]
				}
			}
		}
	}

	return out, nil
}

// EigenSym computes eigenvalues and eigenvectors of a real symmetric matrix
// via cyclic Jacobi sweeps.
//
// Implementation:
//   - Stage 1: Validate symmetric square input (not nil, square,
//     |A[i,j]-A[j,i]| ≤ symTol).
//   - Stage 2: Sweep all (p,q), p<q, in row-major order; rotate whenever
//     |A[p,q]| is not negligible. Rotation parameters follow the classic
//     θ = (aqq−app)/(2apq), t = sign(θ)/(|θ|+√(θ²+1)), c = 1/√(t²+1), s = t·c.
//   - Stage 3: Stop once the off-diagonal Frobenius norm is ≤ tol·‖A‖_F.
//   - Stage 4: Optionally sort eigenpairs ascending (default).
//
// Returns:
//   - []float64: eigenvalues.
//   - *Dense: Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrMatrixEigenFailed.
//
// Determinism:
//   - Fixed sweep order and stable sort produce identical output for equal input.
//
// Complexity:
//   - Time O(sweeps * n^3), Space O(n^2).
func EigenSym(m Matrix, opts ...EigenOption) ([]float64, *Dense, error) {
	o := gatherEigenOptions(opts...)
	if err := ValidateSymmetric(m, o.symTol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := src.r
	a := src.Copy()
	q, _ := NewIdentity(n)

	var (
		i, p, r            int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
		off, total         float64
		converged          bool
	)
	for _, v := range a.data {
		total += v * v
	}
	limit := o.tol * math.Sqrt(total)

	for sweep := 0; sweep <= o.maxSweeps; sweep++ {
		// S.1: convergence test on the off-diagonal Frobenius norm.
		off = NormZero
		for i = 0; i < n; i++ {
			for r = i + 1; r < n; r++ {
				off += 2 * a.data[i*n+r] * a.data[i*n+r]
			}
		}
		if math.Sqrt(off) <= limit {
			converged = true
			break
		}
		if sweep == o.maxSweeps {
			break
		}

		// S.2: one cyclic sweep.
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = a.data[p*n+r]
				if apq == 0 {
					continue
				}
				app = a.data[p*n+p]
				aqq = a.data[r*n+r]
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip = a.data[i*n+p]
					aiq = a.data[i*n+r]
					a.data[i*n+p] = c*aip - s*aiq
					a.data[p*n+i] = a.data[i*n+p]
					a.data[i*n+r] = s*aip + c*aiq
					a.data[r*n+i] = a.data[i*n+r]
				}
				a.data[p*n+p] = app - t*apq
				a.data[r*n+r] = aqq + t*apq
				a.data[p*n+r], a.data[r*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip = q.data[i*n+p]
					qiq = q.data[i*n+r]
					q.data[i*n+p] = c*qip - s*qiq
					q.data[i*n+r] = s*qip + c*qiq
				}
			}
		}
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	vals := a.Diag()
	if !o.sortAscend {
		return vals, q, nil
	}

	return sortEigenpairs(vals, q)
}

// sortEigenpairs orders eigenvalues ascending and permutes Q's columns to match.
// Complexity: O(n log n + n^2).
func sortEigenpairs(vals []float64, q *Dense) ([]float64, *Dense, error) {
	n := len(vals)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return vals[order[x]] < vals[order[y]] })

	sortedVals := make([]float64, n)
	sortedVecs, err := NewDense(q.r, q.c)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for newCol, oldCol := range order {
		sortedVals[newCol] = vals[oldCol]
		for i := 0; i < q.r; i++ {
			sortedVecs.data[i*q.c+newCol] = q.data[i*q.c+oldCol]
		}
	}

	return sortedVals, sortedVecs, nil
}
