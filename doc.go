// SPDX-License-Identifier: MIT

// Package qdna simulates charge and exciton dynamics on DNA sequences with
// tight-binding models and a Lindblad master equation.
//
// 🚀 What is qdna?
//
//	A pure-Go toolkit that takes a base sequence to observable dynamics:
//		• Topologies: wire, ladder, extended ladder, fishbone, fully connected
//		• Hamiltonians: single-particle (1P) or electron-hole (2P), optional ground state
//		• Dissipators: relaxation, local/global dephasing, local/global thermalizing (Redfield rates)
//		• Dynamics: RK4 Lindblad integration with memoized observables
//		• Evaluation: lifetime, charge separation, dipole moment, equilibrium states, spectra
//
// ✨ Why choose qdna?
//
//   - Explicit configuration – functional options validated once, tagged model variants
//   - Immutable building blocks – rebuild methods return new Hamiltonians
//   - Typed errors – every sentinel wraps a configuration or numeric-guard category
//   - Pure Go – no cgo, no BLAS
//
// Layout, bottom-up:
//
//	qerr/         error categories
//	matrix/       real/complex dense matrices, sparse operators, Jacobi eigensolvers
//	units/        energy, rate and time unit conversions
//	basis/        site and electron-hole bases, basis changes
//	topology/     tight-binding model graphs
//	sequence/     double-strand sequences bound to a topology
//	params/       parameter tables: files, memory, caching, retry
//	hamiltonian/  1P/2P Hamiltonian construction
//	dissipator/   Lindblad operators and bath rates
//	dynamics/     master-equation engine
//	evaluation/   derived observables
//	storage/      versioned result records (memory, sqlite)
//	simulation/   traced one-sequence pipeline
//	cmd/qdna      command-line front end
//
// Quick example:
//
//	seq, _ := sequence.New("GCG", topology.ELM)
//	model, _ := topology.Build(topology.ELM, seq.Dims())
//	ham, _ := hamiltonian.New(ctx, model, seq, params.NewFileSource("params"))
//	diss, _ := dissipator.New(ham)
//	eng, _ := dynamics.New(ham, diss, dynamics.WithTEnd(1), dynamics.WithTimeUnit(units.Picosecond))
//	lifetime, _ := eng.Lifetime(ctx) // fs
//
//	go install github.com/katalvlaran/qdna/cmd/qdna@latest
package qdna
