// SPDX-License-Identifier: MIT

package dynamics

import (
	"fmt"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
)

// InitialMatrix returns the density matrix of s in the dimension of ham.
//
//	2P Localized:   |k⟩⟨k| with k = EHIndex(Electron, Hole), +1 with a ground state
//	2P Delocalized: (1/N) Σ_s |(s,s)⟩⟨(s,s)|
//	1P Localized:   |k⟩⟨k| on the site of the tracked carrier
//	1P Delocalized: I/N
//
// Errors: ErrInvalidInitialState.
func InitialMatrix(ham *hamiltonian.Hamiltonian, s InitialState) (*matrix.CDense, error) {
	if ham == nil {
		return nil, ErrNilInput
	}
	idx := ham.Indexer()
	n := idx.Size()
	off := 0
	if ham.Relaxation() {
		off = 1
	}
	rho, err := matrix.NewCDense(ham.Dim(), ham.Dim())
	if err != nil {
		return nil, err
	}
	twoP := ham.Description() == hamiltonian.TwoParticle

	switch v := s.(type) {
	case Localized:
		var k int
		switch {
		case twoP:
			k, err = idx.EHIndex(basis.Pair{Electron: v.Electron, Hole: v.Hole})
		case ham.Config().Particle() == basis.Hole:
			k, err = idx.SiteIndex(v.Hole)
		default:
			k, err = idx.SiteIndex(v.Electron)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", v, err, ErrInvalidInitialState)
		}
		err = rho.Set(k+off, k+off, 1)
	case Delocalized:
		w := complex(1/float64(n), 0)
		for i := 0; i < n && err == nil; i++ {
			k := i
			if twoP {
				k = i*n + i
			}
			err = rho.Set(k+off, k+off, w)
		}
	default:
		return nil, fmt.Errorf("%T: %w", s, ErrInvalidInitialState)
	}
	if err != nil {
		return nil, err
	}

	return rho, nil
}
