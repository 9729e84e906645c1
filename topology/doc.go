// SPDX-License-Identifier: MIT

// Package topology describes which tight-binding sites couple, and how.
//
// Seven named topologies are available:
//
//	WM   (1 strand)  wire: on-site energies + nearest-neighbor hops
//	LM   (2 strands) ladder: two antiparallel wires + rungs
//	ELM  (2 strands) extended ladder: ladder + r+/r- diagonal hops
//	FWM  (3 strands) fishbone wire: backbone | wire | backbone
//	FLM  (4 strands) fishbone ladder
//	FELM (4 strands) fishbone extended ladder
//	FC   (4 strands) fully connected: FELM + hops along both backbones
//
// Each is a composition of the primitives Wire, Ladder, ExtendedLadder,
// Fishbone and BackboneHops at fixed strand offsets. Compose and Custom are
// the escape hatch for other patterns.
//
// Quick start:
//
//	m, err := topology.Build(topology.ELM, basis.Dims{Strands: 2, Sites: 3})
//	for _, t := range m.Terms() { ... }
package topology
