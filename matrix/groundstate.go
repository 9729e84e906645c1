// SPDX-License-Identifier: MIT

// Package matrix - ground-state augmentation.
//
// The ground state always lives at index 0: AddGroundstate prepends one zero
// row and one zero column, DeleteGroundstate slices them off again. The pair
// is an exact round trip (no arithmetic touches the copied entries).

package matrix

const (
	opAddGS = "AddGroundstate"
	opDelGS = "DeleteGroundstate"
)

// AddGroundstate returns an (n+1)×(n+1) copy of the square matrix m with a
// zero row/column prepended at index 0.
// Errors: ErrNilMatrix, ErrNonSquare.
// Complexity: O(n²).
func AddGroundstate(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opAddGS, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opAddGS, ErrNonSquare)
	}
	n := m.r
	out := &Dense{r: n + 1, c: n + 1, data: make([]float64, (n+1)*(n+1))}
	for i := 0; i < n; i++ {
		copy(out.data[(i+1)*(n+1)+1:(i+2)*(n+1)], m.data[i*n:(i+1)*n])
	}

	return out, nil
}

// DeleteGroundstate returns the lower-right (n-1)×(n-1) block of m, the exact
// inverse of AddGroundstate.
// Errors: ErrNilMatrix, ErrNonSquare, ErrGroundstateDim.
func DeleteGroundstate(m *Dense) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf(opDelGS, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opDelGS, ErrNonSquare)
	}
	if m.r < 2 {
		return nil, matrixErrorf(opDelGS, ErrGroundstateDim)
	}
	n := m.r - 1
	out := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], m.data[(i+1)*(n+1)+1:(i+2)*(n+1)])
	}

	return out, nil
}

// AddGroundstateC is AddGroundstate for complex operators.
// Errors: ErrNilMatrix, ErrNonSquare.
func AddGroundstateC(m *CDense) (*CDense, error) {
	if m == nil {
		return nil, matrixErrorf(opAddGS, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opAddGS, ErrNonSquare)
	}
	n := m.r
	out := &CDense{r: n + 1, c: n + 1, data: make([]complex128, (n+1)*(n+1))}
	for i := 0; i < n; i++ {
		copy(out.data[(i+1)*(n+1)+1:(i+2)*(n+1)], m.data[i*n:(i+1)*n])
	}

	return out, nil
}

// DeleteGroundstateC is DeleteGroundstate for complex operators.
// Errors: ErrNilMatrix, ErrNonSquare, ErrGroundstateDim.
func DeleteGroundstateC(m *CDense) (*CDense, error) {
	if m == nil {
		return nil, matrixErrorf(opDelGS, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, matrixErrorf(opDelGS, ErrNonSquare)
	}
	if m.r < 2 {
		return nil, matrixErrorf(opDelGS, ErrGroundstateDim)
	}
	n := m.r - 1
	out := &CDense{r: n, c: n, data: make([]complex128, n*n)}
	for i := 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], m.data[(i+1)*(n+1)+1:(i+2)*(n+1)])
	}

	return out, nil
}
