// SPDX-License-Identifier: MIT

// Package hamiltonian builds tight-binding Hamiltonians for DNA sequences.
//
// A Hamiltonian couples the sites of a topology.Model with values taken
// from coupling-parameter tables (package params). Every coupling term
// (tag, target, source) of the model resolves to a key:
//
//	E            -> E_<base(source)>
//	t, h, r+, r- -> <tag>_<base(source)><base(target)>
//
// A coupling key missing from the table falls back to the reversed-base key
// <tag>_<base(target)><base(source)>. A key that cannot be resolved is a
// configuration error (ErrMissingParameter) naming the key.
//
// Descriptions:
//
//	1P: one carrier (electron or hole), dimension N.
//	2P: electron-hole pairs, dimension N², H = H_e ⊗ I + I ⊗ H_h, the
//	    electron being the outer index. An optional Coulomb-like
//	    interaction J/(1+3.4·d) is added on the diagonal, and with
//	    relaxation a ground state is prepended at index 0 (N²+1).
//
// Hamiltonian values are immutable. WithUnit, WithSource, WithInteraction
// and WithRelaxation return rebuilt values and leave the receiver intact.
package hamiltonian
