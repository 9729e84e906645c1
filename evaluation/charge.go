// SPDX-License-Identifier: MIT

package evaluation

import (
	"context"

	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/units"
)

const (
	opChargeSep = "ChargeSeparation"
	opDipole    = "DipoleMoment"
)

// Separation is the electron-hole separation over the time grid, in Å.
type Separation struct {
	Series  []float64
	Average float64
}

// ChargeSeparation returns Σ_k 3.4·d(pair_k)·ρ_kk(t) over the pair basis,
// the ground state excluded, and its time average. The published values
// are obtained without relaxation (dissipator.WithRelaxationRate(0)).
// Errors: ErrNilInput, ErrRequiresTwoParticle, ctx.Err().
func ChargeSeparation(ctx context.Context, e *dynamics.Engine) (Separation, error) {
	if e == nil {
		return Separation{}, evalErrorf(opChargeSep, ErrNilInput)
	}
	ham := e.Hamiltonian()
	if ham.Description() != hamiltonian.TwoParticle {
		return Separation{}, evalErrorf(opChargeSep, ErrRequiresTwoParticle)
	}
	traj, err := e.Trajectory(ctx)
	if err != nil {
		return Separation{}, evalErrorf(opChargeSep, err)
	}
	dist := ham.Indexer().EHDistances()
	off := 0
	if ham.Relaxation() {
		off = 1
	}
	out := Separation{Series: make([]float64, len(traj))}
	for k, rho := range traj {
		diag := rho.Diag()
		var sum float64
		for i, d := range dist {
			sum += hamiltonian.InteractionDecay * d * real(diag[i+off])
		}
		out.Series[k] = sum
		out.Average += sum
	}
	out.Average /= float64(len(traj))

	return out, nil
}

// DipoleMoment returns the time-averaged charge separation in Debye.
// Errors: as ChargeSeparation.
func DipoleMoment(ctx context.Context, e *dynamics.Engine) (float64, error) {
	sep, err := ChargeSeparation(ctx, e)
	if err != nil {
		return 0, evalErrorf(opDipole, err)
	}

	return units.ToDebye(sep.Average), nil
}
