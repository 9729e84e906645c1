// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear algebra qdna is built on.
//
// The package offers:
//
//   - Dense: a real row-major matrix used for tight-binding Hamiltonians and
//     eigenvector bases, with Add/Sub/Scale/Mul/Transpose/Kron kernels.
//   - EigenSym: cyclic Jacobi eigendecomposition for real symmetric input,
//     eigenpairs sorted ascending by default.
//   - CDense: a complex row-major matrix for density matrices, collapse
//     operators and observables, with buffer-reusing product kernels
//     (MulTo, MulAdjointTo) and expectation values (TraceProduct).
//   - Ground-state augmentation (AddGroundstate / DeleteGroundstate), an exact
//     round trip that prepends or removes index 0.
//
// All public kernels validate their inputs and return sentinel errors
// (ErrDimensionMismatch, ErrAsymmetry, ...) wrapped with an operation tag;
// match them with errors.Is.
package matrix
