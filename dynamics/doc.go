// SPDX-License-Identifier: MIT

// Package dynamics integrates the Lindblad master equation
//
//	dρ/dt = −i[H, ρ] + Σ_k γ_k (L_k ρ L_k† − ½{L_k†L_k, ρ})
//
// for a hamiltonian.Hamiltonian and a dissipator.Dissipator, and derives
// populations, coherences, ground-state population and exciton lifetime.
//
// Construction converts both inputs to rad/<time unit> (fs or ps) and
// rejects under-resolved grids (t_steps/t_end ≤ 1/2) with ErrResolution
// before any integration. Integration is lazy: the first query runs a
// fixed-step RK4 with sub-steps chosen from a norm bound of the generator,
// and every query result is memoized. SetTEnd and SetTSteps rebuild the
// grid and drop all memoized results; Reset swaps the Hamiltonian and the
// Dissipator after a rebuild.
package dynamics
