// SPDX-License-Identifier: MIT

// Package basis - electron-hole product basis.
//
// The pair basis is the Cartesian product of the site basis with the
// electron as the outer (slow) index:
//
//	EHIndex(Pair{e, h}) = index(e)*N + index(h)
//
// This is the layout produced by kron(H_e, I) + kron(I, H_h).

package basis

import "fmt"

// Particle selects which carrier an operator or observable refers to.
type Particle string

// Particles.
const (
	Electron Particle = "electron"
	Hole     Particle = "hole"
	Exciton  Particle = "exciton"
)

// ParseParticle validates a particle name. Errors: ErrUnknownParticle.
func ParseParticle(s string) (Particle, error) {
	switch p := Particle(s); p {
	case Electron, Hole, Exciton:
		return p, nil
	default:
		return "", basisErrorf("ParseParticle", fmt.Sprintf("%q", s), ErrUnknownParticle)
	}
}

// Pair is one electron-hole basis state.
type Pair struct {
	Electron Site
	Hole     Site
}

// Distance is the electron-hole separation in base-pair spacings.
func (p Pair) Distance() float64 { return Distance(p.Electron, p.Hole) }

// String renders "((se, ie), (sh, ih))".
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Electron.Label(), p.Hole.Label())
}

// EHDistance is Pair.Distance as a free function.
func EHDistance(p Pair) float64 { return p.Distance() }

// EHSize returns N².
func (x Indexer) EHSize() int { return x.Size() * x.Size() }

// EHBasis returns every pair in linear order (electron outer).
func (x Indexer) EHBasis() []Pair {
	sites := x.TBBasis()
	out := make([]Pair, 0, len(sites)*len(sites))
	for _, e := range sites {
		for _, h := range sites {
			out = append(out, Pair{Electron: e, Hole: h})
		}
	}

	return out
}

// EHIndex returns the linear index of p. Errors: ErrOutOfRange.
func (x Indexer) EHIndex(p Pair) (int, error) {
	ie, err := x.SiteIndex(p.Electron)
	if err != nil {
		return 0, basisErrorf("EHIndex", p, ErrOutOfRange)
	}
	ih, err := x.SiteIndex(p.Hole)
	if err != nil {
		return 0, basisErrorf("EHIndex", p, ErrOutOfRange)
	}

	return ie*x.Size() + ih, nil
}

// EHPair returns the pair at linear index idx. Errors: ErrOutOfRange.
func (x Indexer) EHPair(idx int) (Pair, error) {
	n := x.Size()
	if idx < 0 || idx >= n*n {
		return Pair{}, basisErrorf("EHPair", idx, ErrOutOfRange)
	}
	e, _ := x.Site(idx / n)
	h, _ := x.Site(idx % n)

	return Pair{Electron: e, Hole: h}, nil
}

// EHDistances returns Pair.Distance for every pair in linear order.
func (x Indexer) EHDistances() []float64 {
	pairs := x.EHBasis()
	out := make([]float64, len(pairs))
	for k, p := range pairs {
		out[k] = p.Distance()
	}

	return out
}

// ParticleStates lists the pairs in which particle sits on site:
// electron → (site, *), hole → (*, site), exciton → (site, site).
// Errors: ErrOutOfRange, ErrUnknownParticle.
func (x Indexer) ParticleStates(particle Particle, site Site) ([]Pair, error) {
	if !x.Contains(site) {
		return nil, basisErrorf("ParticleStates", site, ErrOutOfRange)
	}
	switch particle {
	case Electron:
		out := make([]Pair, 0, x.Size())
		for _, h := range x.TBBasis() {
			out = append(out, Pair{Electron: site, Hole: h})
		}
		return out, nil
	case Hole:
		out := make([]Pair, 0, x.Size())
		for _, e := range x.TBBasis() {
			out = append(out, Pair{Electron: e, Hole: site})
		}
		return out, nil
	case Exciton:
		return []Pair{{Electron: site, Hole: site}}, nil
	default:
		return nil, basisErrorf("ParticleStates", fmt.Sprintf("%q", string(particle)), ErrUnknownParticle)
	}
}
