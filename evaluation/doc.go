// SPDX-License-Identifier: MIT

// Package evaluation derives physical quantities from a Hamiltonian or an
// integrated dynamics.Engine:
//
//   - charge separation ⟨3.4·d(e,h)⟩ in Å and the dipole moment in Debye;
//   - exciton transfer between the strands and onto the backbone;
//   - thermal and dephasing equilibrium states;
//   - density-matrix measures (trace distance, purity, l1 coherence, IPR);
//   - closed-system spectra: amplitudes and frequencies of the population
//     of one site, its time average and the IPR of every eigenstate.
package evaluation
