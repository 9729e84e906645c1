// SPDX-License-Identifier: MIT
// Package: qdna/topology
//
// primitives.go - the composable coupling patterns.
//
// Contract:
//   - A Constructor emits terms for a fixed dims and never mutates shared state.
//   - Strand arguments are validated against dims (ErrInvalidTerm).
//   - Emission order is deterministic: on-site terms first, then hops by
//     increasing site index, then rungs, then diagonals.
//
// Every named topology is a composition of these primitives at different
// strand offsets (see models.go).

package topology

import (
	"fmt"

	"github.com/katalvlaran/qdna/basis"
)

const (
	methodWire     = "Wire"
	methodLadder   = "Ladder"
	methodExtended = "ExtendedLadder"
	methodFishbone = "Fishbone"
	methodBackbone = "BackboneHops"
)

// Term is one coupling (tag, target, source). The Hamiltonian writes the
// resolved value at (target, source) and, unless equal, at (source, target).
type Term struct {
	Tag    Tag
	Target basis.Site
	Source basis.Site
}

// String renders "(tag, target, source)".
func (t Term) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Tag, t.Target.Label(), t.Source.Label())
}

// Constructor emits the terms of one coupling pattern for the given dims.
type Constructor func(dims basis.Dims) ([]Term, error)

func site(strand, idx int) basis.Site { return basis.Site{Strand: strand, Index: idx} }

func checkStrands(method string, dims basis.Dims, strands ...int) error {
	for _, s := range strands {
		if s < 0 || s >= dims.Strands {
			return topologyErrorf(method, "strand %d outside dims %s: %w", s, dims, ErrInvalidTerm)
		}
	}

	return nil
}

// onSite emits E terms for every site of strand.
func onSite(strand, sites int) []Term {
	out := make([]Term, 0, sites)
	for k := 0; k < sites; k++ {
		out = append(out, Term{Tag: OnSite, Target: site(strand, k), Source: site(strand, k)})
	}

	return out
}

// Wire emits on-site energies and nearest-neighbor hops along strand:
// t((s,k+1),(s,k)), or t((s,k),(s,k+1)) when reversed.
func Wire(strand int, reversed bool) Constructor {
	return func(dims basis.Dims) ([]Term, error) {
		if err := checkStrands(methodWire, dims, strand); err != nil {
			return nil, err
		}
		out := onSite(strand, dims.Sites)
		for k := 0; k < dims.Sites-1; k++ {
			tgt, src := site(strand, k+1), site(strand, k)
			if reversed {
				tgt, src = src, tgt
			}
			out = append(out, Term{Tag: Hop, Target: tgt, Source: src})
		}

		return out, nil
	}
}

// Ladder is Wire(s1) + reversed Wire(s2) + rungs h((s1,k),(s2,k)).
// The lower strand runs antiparallel, hence the reversed wire.
func Ladder(s1, s2 int) Constructor {
	return func(dims basis.Dims) ([]Term, error) {
		if err := checkStrands(methodLadder, dims, s1, s2); err != nil {
			return nil, err
		}
		upper, _ := Wire(s1, false)(dims)
		lower, _ := Wire(s2, true)(dims)
		out := append(upper, lower...)
		for k := 0; k < dims.Sites; k++ {
			out = append(out, Term{Tag: Rung, Target: site(s1, k), Source: site(s2, k)})
		}

		return out, nil
	}
}

// ExtendedLadder is Ladder plus the diagonal families
// r+((s1,k),(s2,k+1)) and r-((s1,k+1),(s2,k)).
func ExtendedLadder(s1, s2 int) Constructor {
	return func(dims basis.Dims) ([]Term, error) {
		if err := checkStrands(methodExtended, dims, s1, s2); err != nil {
			return nil, err
		}
		out, _ := Ladder(s1, s2)(dims)
		for k := 0; k < dims.Sites-1; k++ {
			out = append(out, Term{Tag: DiagPlus, Target: site(s1, k), Source: site(s2, k+1)})
		}
		for k := 0; k < dims.Sites-1; k++ {
			out = append(out, Term{Tag: DiagMinus, Target: site(s1, k+1), Source: site(s2, k)})
		}

		return out, nil
	}
}

// Fishbone emits the backbone strands s1 and s2 flanking the core: on-site
// energies on both, and perpendicular rungs h((s1,k),(s1+1,k)) and
// h((s2-1,k),(s2,k)). No hops run along a backbone.
func Fishbone(s1, s2 int) Constructor {
	return func(dims basis.Dims) ([]Term, error) {
		if err := checkStrands(methodFishbone, dims, s1, s2, s1+1, s2-1); err != nil {
			return nil, err
		}
		out := append(onSite(s1, dims.Sites), onSite(s2, dims.Sites)...)
		for k := 0; k < dims.Sites; k++ {
			out = append(out, Term{Tag: Rung, Target: site(s1, k), Source: site(s1+1, k)})
		}
		for k := 0; k < dims.Sites; k++ {
			out = append(out, Term{Tag: Rung, Target: site(s2-1, k), Source: site(s2, k)})
		}

		return out, nil
	}
}

// BackboneHops adds intra-strand hops t((s,k),(s,k+1)) along a backbone
// strand, without on-site terms.
func BackboneHops(strand int) Constructor {
	return func(dims basis.Dims) ([]Term, error) {
		if err := checkStrands(methodBackbone, dims, strand); err != nil {
			return nil, err
		}
		out := make([]Term, 0, dims.Sites)
		for k := 0; k < dims.Sites-1; k++ {
			out = append(out, Term{Tag: Hop, Target: site(strand, k), Source: site(strand, k+1)})
		}

		return out, nil
	}
}
