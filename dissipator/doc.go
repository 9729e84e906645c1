// SPDX-License-Identifier: MIT

// Package dissipator builds the Lindblad collapse operators of a DNA
// tight-binding system coupled to its environment.
//
// Three channels are available and may be combined:
//
//	relaxation:   exciton on site k decays to the ground state (2P only)
//	dephasing:    LocalDephasing (site projectors) or GlobalDephasing
//	              (eigenstate projectors), with a fixed rate
//	thermalizing: LocalThermalizing or GlobalThermalizing, with rates
//	              from a Redfield bath (Debye or Ohmic spectral density)
//
// Local and global variants of one channel exclude each other; the sealed
// Dephasing and Thermalizing interfaces make that a type-level choice,
// FromFlags maps raw flags onto them and reports ErrConflictingModels.
//
// Observables (populations, coherences, ground state) are built alongside
// the operators as sparse matrices in the same dimension.
package dissipator
