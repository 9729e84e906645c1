// SPDX-License-Identifier: MIT

package evaluation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/hamiltonian"
)

const (
	opFourier     = "FourierSeries"
	opBackbonePop = "BackbonePopulation"
	opEigenIPR    = "EigenstateIPR"
)

// Fourier is the closed-system population of one site started from one
// basis state:
//
//	P(t) = Average + Σ_k Amplitudes[k]·cos(Frequencies[k]·t)
//
// Frequencies are eigenvalue gaps in the Hamiltonian's unit; t is in the
// conjugate time (use a rad/fs Hamiltonian for t in fs).
type Fourier struct {
	Amplitudes  []float64
	Frequencies []float64
	Average     float64
}

// Population evaluates P(t).
func (f Fourier) Population(t float64) float64 {
	p := f.Average
	for k, a := range f.Amplitudes {
		p += a * math.Cos(f.Frequencies[k]*t)
	}

	return p
}

// spectrum caches the eigensystem as rows of coefficients.
type spectrum struct {
	vals []float64
	// coef[s][i] is component s of eigenvector i.
	coef [][]float64
}

func newSpectrum(ham *hamiltonian.Hamiltonian) (*spectrum, error) {
	vals, vecs, err := ham.Eigensystem()
	if err != nil {
		return nil, err
	}
	n := len(vals)
	sp := &spectrum{vals: vals, coef: make([][]float64, n)}
	for s := 0; s < n; s++ {
		sp.coef[s] = make([]float64, n)
		for i := 0; i < n; i++ {
			if sp.coef[s][i], err = vecs.At(s, i); err != nil {
				return nil, err
			}
		}
	}

	return sp, nil
}

// add accumulates the series of init → end into f.
func (sp *spectrum) add(f *Fourier, init, end int) {
	n := len(sp.vals)
	for i := 0; i < n; i++ {
		ci := sp.coef[end][i] * sp.coef[init][i]
		f.Average += ci * ci
		for j := i + 1; j < n; j++ {
			f.Amplitudes = append(f.Amplitudes, 2*ci*sp.coef[end][j]*sp.coef[init][j])
			f.Frequencies = append(f.Frequencies, math.Abs(sp.vals[i]-sp.vals[j]))
		}
	}
}

// initIndex resolves the start state: the pair in 2P, the site of the
// tracked carrier in 1P.
func initIndex(ham *hamiltonian.Hamiltonian, init basis.Pair) (int, error) {
	idx := ham.Indexer()
	if ham.Description() == hamiltonian.TwoParticle {
		return idx.EHIndex(init)
	}
	if ham.Config().Particle() == basis.Hole {
		return idx.SiteIndex(init.Hole)
	}

	return idx.SiteIndex(init.Electron)
}

// FourierSeries returns, per particle, the closed-system population of
// site end started from init. In 2P the particle population sums every
// pair state that places the particle on end (basis.ParticleStates).
// Errors: ErrNilInput, basis.ErrOutOfRange, matrix.ErrMatrixEigenFailed.
// Complexity: O(dim²) terms per pair state.
func FourierSeries(ham *hamiltonian.Hamiltonian, init basis.Pair, end basis.Site) (map[basis.Particle]Fourier, error) {
	if ham == nil {
		return nil, evalErrorf(opFourier, ErrNilInput)
	}
	sp, err := newSpectrum(ham)
	if err != nil {
		return nil, evalErrorf(opFourier, err)
	}

	return fourier(ham, sp, init, end)
}

func fourier(ham *hamiltonian.Hamiltonian, sp *spectrum, init basis.Pair, end basis.Site) (map[basis.Particle]Fourier, error) {
	idx := ham.Indexer()
	from, err := initIndex(ham, init)
	if err != nil {
		return nil, evalErrorf(opFourier, err)
	}
	out := make(map[basis.Particle]Fourier)
	for _, p := range ham.Particles() {
		var f Fourier
		if ham.Description() != hamiltonian.TwoParticle {
			to, err := idx.SiteIndex(end)
			if err != nil {
				return nil, evalErrorf(opFourier, err)
			}
			sp.add(&f, from, to)
			out[p] = f
			continue
		}
		pairs, err := idx.ParticleStates(p, end)
		if err != nil {
			return nil, evalErrorf(opFourier, err)
		}
		for _, pair := range pairs {
			to, err := idx.EHIndex(pair)
			if err != nil {
				return nil, evalErrorf(opFourier, err)
			}
			sp.add(&f, from, to)
		}
		out[p] = f
	}

	return out, nil
}

// AveragePopulation returns the time-averaged closed-system population of
// end per particle.
// Errors: as FourierSeries.
func AveragePopulation(ham *hamiltonian.Hamiltonian, init basis.Pair, end basis.Site) (map[basis.Particle]float64, error) {
	series, err := FourierSeries(ham, init, end)
	if err != nil {
		return nil, err
	}
	out := make(map[basis.Particle]float64, len(series))
	for p, f := range series {
		out[p] = f.Average
	}

	return out, nil
}

// BackbonePopulation returns the time-averaged closed-system population
// of both backbone strands per particle. Defined for fishbone models only.
// Errors: ErrUnsupportedModel, and those of FourierSeries.
func BackbonePopulation(ham *hamiltonian.Hamiltonian, init basis.Pair) (map[basis.Particle]float64, error) {
	if ham == nil {
		return nil, evalErrorf(opBackbonePop, ErrNilInput)
	}
	if !ham.Backbone() {
		return nil, fmt.Errorf("%s: %s: %w", opBackbonePop, ham.Model().Name(), ErrUnsupportedModel)
	}
	sp, err := newSpectrum(ham)
	if err != nil {
		return nil, evalErrorf(opBackbonePop, err)
	}
	out := make(map[basis.Particle]float64)
	for _, site := range BackboneSites(ham.Indexer()) {
		series, err := fourier(ham, sp, init, site)
		if err != nil {
			return nil, evalErrorf(opBackbonePop, err)
		}
		for p, f := range series {
			out[p] += f.Average
		}
	}

	return out, nil
}

// EigenstateIPR returns 1/Σ_s c_s⁴ for every eigenstate, ascending in
// energy: 1 for a localized state, dim for a uniformly delocalized one.
// Errors: ErrNilInput, matrix.ErrMatrixEigenFailed.
func EigenstateIPR(ham *hamiltonian.Hamiltonian) ([]float64, error) {
	if ham == nil {
		return nil, evalErrorf(opEigenIPR, ErrNilInput)
	}
	sp, err := newSpectrum(ham)
	if err != nil {
		return nil, evalErrorf(opEigenIPR, err)
	}
	n := len(sp.vals)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for s := 0; s < n; s++ {
			c := sp.coef[s][i]
			sum += c * c * c * c
		}
		out[i] = 1 / sum
	}

	return out, nil
}
