// SPDX-License-Identifier: MIT

package dissipator

import (
	"fmt"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
)

// SiteKey addresses the population of one particle on one site.
type SiteKey struct {
	Particle basis.Particle
	Site     basis.Site
}

// String renders "electron_(0, 1)".
func (k SiteKey) String() string { return fmt.Sprintf("%s_%s", k.Particle, k.Site) }

// PairKey addresses the coherence |From⟩⟨To| of one particle.
type PairKey struct {
	Particle basis.Particle
	From, To basis.Site
}

// String renders "electron_(0, 1)_(0, 2)".
func (k PairKey) String() string { return fmt.Sprintf("%s_%s_%s", k.Particle, k.From, k.To) }

// Observable returns |from⟩⟨to| for particle on the pair basis:
//
//	electron: |from⟩⟨to| ⊗ I
//	hole:     I ⊗ |from⟩⟨to|
//	exciton:  |from⟩⟨to| ⊗ |from⟩⟨to|
//
// Errors: basis.ErrOutOfRange, basis.ErrUnknownParticle.
func Observable(idx basis.Indexer, particle basis.Particle, from, to basis.Site) (*matrix.Sparse, error) {
	a, err := idx.SiteIndex(from)
	if err != nil {
		return nil, err
	}
	b, err := idx.SiteIndex(to)
	if err != nil {
		return nil, err
	}
	n := idx.Size()
	var entries []matrix.Entry
	switch particle {
	case basis.Electron:
		for h := 0; h < n; h++ {
			entries = append(entries, matrix.Entry{Row: a*n + h, Col: b*n + h, Val: 1})
		}
	case basis.Hole:
		for e := 0; e < n; e++ {
			entries = append(entries, matrix.Entry{Row: e*n + a, Col: e*n + b, Val: 1})
		}
	case basis.Exciton:
		entries = []matrix.Entry{{Row: a*n + a, Col: b*n + b, Val: 1}}
	default:
		return nil, fmt.Errorf("Observable: %q: %w", string(particle), basis.ErrUnknownParticle)
	}

	return matrix.NewSparse(n*n, entries...)
}

// siteObservable returns |from⟩⟨to| on the single-particle basis.
func siteObservable(idx basis.Indexer, from, to basis.Site) (*matrix.Sparse, error) {
	a, err := idx.SiteIndex(from)
	if err != nil {
		return nil, err
	}
	b, err := idx.SiteIndex(to)
	if err != nil {
		return nil, err
	}

	return matrix.NewSparse(idx.Size(), matrix.Entry{Row: a, Col: b, Val: 1})
}

// Observables holds the expectation operators of a Hamiltonian, already
// in its dimension (ground-state augmented with relaxation).
type Observables struct {
	Populations map[SiteKey]*matrix.Sparse
	Coherences  map[PairKey]*matrix.Sparse
	// Groundstate is |0⟩⟨0|, nil without relaxation.
	Groundstate *matrix.Sparse
	// Sites lists the sites in basis order.
	Sites []basis.Site
	// Particles lists the observed particles.
	Particles []basis.Particle
}

// NewObservables builds population and coherence operators for every
// configured particle and every ordered site pair. In 1P they act on the
// site basis directly.
func NewObservables(ham *hamiltonian.Hamiltonian) (*Observables, error) {
	if ham == nil {
		return nil, dissErrorf("NewObservables", ErrNilHamiltonian)
	}
	idx := ham.Indexer()
	sites := idx.TBBasis()
	obs := &Observables{
		Populations: make(map[SiteKey]*matrix.Sparse),
		Coherences:  make(map[PairKey]*matrix.Sparse),
		Sites:       sites,
		Particles:   ham.Particles(),
	}
	for _, p := range obs.Particles {
		for _, s1 := range sites {
			for _, s2 := range sites {
				var op *matrix.Sparse
				var err error
				if ham.Description() == hamiltonian.TwoParticle {
					op, err = Observable(idx, p, s1, s2)
				} else {
					op, err = siteObservable(idx, s1, s2)
				}
				if err == nil && ham.Relaxation() {
					op, err = matrix.AddGroundstateSparse(op)
				}
				if err != nil {
					return nil, dissErrorf("NewObservables", err)
				}
				if s1 == s2 {
					obs.Populations[SiteKey{Particle: p, Site: s1}] = op
				} else {
					obs.Coherences[PairKey{Particle: p, From: s1, To: s2}] = op
				}
			}
		}
	}
	if ham.Relaxation() {
		gs, err := matrix.NewSparse(ham.Dim(), matrix.Entry{Row: 0, Col: 0, Val: 1})
		if err != nil {
			return nil, dissErrorf("NewObservables", err)
		}
		obs.Groundstate = gs
	}

	return obs, nil
}
