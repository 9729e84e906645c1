// SPDX-License-Identifier: MIT

package dynamics

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/units"
)

const (
	opNew        = "New"
	opReset      = "Reset"
	opSetTEnd    = "SetTEnd"
	opSetTSteps  = "SetTSteps"
	opTrajectory = "Trajectory"
	opReduced    = "ReducedTrajectory"
	opPops       = "Populations"
	opCohs       = "Coherences"
	opGroundPop  = "GroundstatePopulation"
	opLifetime   = "Lifetime"
)

// LifetimeThreshold is the ground-state population 1 − 1/e that defines
// the exciton lifetime.
const LifetimeThreshold = 1 - 1/math.E

// Engine integrates the Lindblad master equation for one Hamiltonian and
// Dissipator and answers observable queries. Every query is computed on
// first use and memoized until the grid or the inputs change.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	cfg   config
	ham   *hamiltonian.Hamiltonian
	diss  *dissipator.Dissipator
	times []float64
	rho0  *matrix.CDense
	gen   *generator

	trajectory  cell[[]*matrix.CDense]
	reduced     map[basis.Particle]*cell[[]*matrix.CDense]
	populations cell[map[dissipator.SiteKey][]float64]
	coherences  cell[map[basis.Particle][]float64]
	groundstate cell[[]float64]
}

// New validates the grid and prepares the engine. The Hamiltonian and the
// Dissipator are converted to rad/<time unit>; no integration happens
// before the first query.
//
// Errors: ErrNilInput, ErrInvalidGrid, ErrResolution (before any matrix
// work), units.ErrUnknownTimeUnit, ErrIncompatible, ErrInvalidInitialState.
func New(ham *hamiltonian.Hamiltonian, diss *dissipator.Dissipator, opts ...Option) (*Engine, error) {
	cfg := newConfig(opts...)
	if err := validateGrid(cfg.tEnd, cfg.tSteps); err != nil {
		return nil, dynErrorf(opNew, err)
	}
	e := &Engine{cfg: cfg}
	if err := e.setInputs(ham, diss); err != nil {
		return nil, dynErrorf(opNew, err)
	}
	e.times = grid(cfg.tEnd, cfg.tSteps)

	return e, nil
}

func (e *Engine) setInputs(ham *hamiltonian.Hamiltonian, diss *dissipator.Dissipator) error {
	if ham == nil || diss == nil {
		return ErrNilInput
	}
	if ham.Dim() != diss.Dim() {
		return fmt.Errorf("hamiltonian dim %d, dissipator dim %d: %w", ham.Dim(), diss.Dim(), ErrIncompatible)
	}
	angular, err := e.cfg.tUnit.Angular()
	if err != nil {
		return err
	}
	if ham, err = ham.WithUnit(angular); err != nil {
		return err
	}
	if diss, err = diss.Rescale(angular); err != nil {
		return err
	}
	rho0, err := InitialMatrix(ham, e.cfg.init)
	if err != nil {
		return err
	}
	gen, err := newGenerator(ham.Matrix(), diss)
	if err != nil {
		return err
	}
	e.ham, e.diss, e.rho0, e.gen = ham, diss, rho0, gen
	e.clear()

	return nil
}

func grid(tEnd float64, tSteps int) []float64 {
	out := make([]float64, tSteps)
	step := tEnd / float64(tSteps-1)
	for k := range out {
		out[k] = float64(k) * step
	}
	out[tSteps-1] = tEnd

	return out
}

func (e *Engine) clear() {
	e.trajectory.reset()
	e.reduced = make(map[basis.Particle]*cell[[]*matrix.CDense])
	e.populations.reset()
	e.coherences.reset()
	e.groundstate.reset()
}

// Reset replaces the Hamiltonian and Dissipator, keeping the grid and the
// initial-state selection, and clears every memoized result.
// Errors: as New.
func (e *Engine) Reset(ham *hamiltonian.Hamiltonian, diss *dissipator.Dissipator) error {
	if err := e.setInputs(ham, diss); err != nil {
		return dynErrorf(opReset, err)
	}

	return nil
}

// SetTEnd changes the end of the window. An unchanged value keeps the
// memoized results.
// Errors: ErrInvalidGrid, ErrResolution.
func (e *Engine) SetTEnd(t float64) error {
	if t == e.cfg.tEnd {
		return nil
	}
	if err := validateGrid(t, e.cfg.tSteps); err != nil {
		return dynErrorf(opSetTEnd, err)
	}
	e.cfg.tEnd = t
	e.times = grid(e.cfg.tEnd, e.cfg.tSteps)
	e.clear()

	return nil
}

// SetTSteps changes the number of grid points. An unchanged value keeps
// the memoized results.
// Errors: ErrInvalidGrid, ErrResolution.
func (e *Engine) SetTSteps(n int) error {
	if n == e.cfg.tSteps {
		return nil
	}
	if err := validateGrid(e.cfg.tEnd, n); err != nil {
		return dynErrorf(opSetTSteps, err)
	}
	e.cfg.tSteps = n
	e.times = grid(e.cfg.tEnd, e.cfg.tSteps)
	e.clear()

	return nil
}

// Times returns a copy of the time grid, in the time unit.
func (e *Engine) Times() []float64 { return slices.Clone(e.times) }

// TEnd returns the end of the window.
func (e *Engine) TEnd() float64 { return e.cfg.tEnd }

// TSteps returns the number of grid points.
func (e *Engine) TSteps() int { return e.cfg.tSteps }

// TimeUnit returns fs or ps.
func (e *Engine) TimeUnit() units.TimeUnit { return e.cfg.tUnit }

// InitialState returns the configured initial-state variant.
func (e *Engine) InitialState() InitialState { return e.cfg.init }

// InitialMatrix returns a copy of ρ(0).
func (e *Engine) InitialMatrix() *matrix.CDense { return e.rho0.Copy() }

// Hamiltonian returns the Hamiltonian in rad/<time unit>.
func (e *Engine) Hamiltonian() *hamiltonian.Hamiltonian { return e.ham }

// Dissipator returns the Dissipator in rad/<time unit>.
func (e *Engine) Dissipator() *dissipator.Dissipator { return e.diss }

// Substeps returns the number of RK4 steps taken per grid interval.
func (e *Engine) Substeps() int {
	return e.gen.substeps(e.times[1]-e.times[0], e.cfg.stepFactor)
}

// Trajectory returns ρ(t) at every grid point. The matrices are shared
// with the cache and must not be modified.
//
// Implementation:
//   - fixed-step RK4 on the Lindblad generator, Substeps() steps per
//     grid interval, ρ re-Hermitized after every step;
//   - the jump terms of all collapse operators are merged into one sparse
//     map per frame; eigen-frame jumps are applied to U†ρU;
//   - ctx is checked once per grid interval.
//
// Errors: ctx.Err().
// Complexity: O(TSteps·Substeps·(dim³ + nnz(J))).
func (e *Engine) Trajectory(ctx context.Context) ([]*matrix.CDense, error) {
	out, err := e.trajectory.get(func() ([]*matrix.CDense, error) { return e.integrate(ctx) })
	if err != nil {
		return nil, dynErrorf(opTrajectory, err)
	}

	return out, nil
}

func (e *Engine) integrate(ctx context.Context) ([]*matrix.CDense, error) {
	stepper, err := newRK4(e.gen)
	if err != nil {
		return nil, err
	}
	dt := e.times[1] - e.times[0]
	m := e.Substeps()
	h := dt / float64(m)

	rho := e.rho0.Copy()
	out := make([]*matrix.CDense, len(e.times))
	out[0] = rho.Copy()
	for k := 1; k < len(e.times); k++ {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		for s := 0; s < m; s++ {
			if err = stepper.step(rho, h); err != nil {
				return nil, err
			}
		}
		out[k] = rho.Copy()
	}

	return out, nil
}

// ReducedTrajectory returns the reduced density matrix of particle at
// every grid point, ground state removed: the partial trace over the hole
// (electron), over the electron (hole), or the (s,s)-(s',s') block
// (exciton). In 1P it is the trajectory of the tracked carrier.
// Errors: ErrParticleNotTracked, ctx.Err().
func (e *Engine) ReducedTrajectory(ctx context.Context, p basis.Particle) ([]*matrix.CDense, error) {
	if !slices.Contains(e.ham.Particles(), p) {
		return nil, dynErrorf(opReduced, fmt.Errorf("%q: %w", string(p), ErrParticleNotTracked))
	}
	c, ok := e.reduced[p]
	if !ok {
		c = &cell[[]*matrix.CDense]{}
		e.reduced[p] = c
	}
	out, err := c.get(func() ([]*matrix.CDense, error) {
		traj, err := e.Trajectory(ctx)
		if err != nil {
			return nil, err
		}
		red := make([]*matrix.CDense, len(traj))
		for k, rho := range traj {
			if red[k], err = e.reduce(rho, p); err != nil {
				return nil, err
			}
		}
		return red, nil
	})
	if err != nil {
		return nil, dynErrorf(opReduced, err)
	}

	return out, nil
}

func (e *Engine) reduce(rho *matrix.CDense, p basis.Particle) (*matrix.CDense, error) {
	var err error
	if e.ham.Relaxation() {
		if rho, err = matrix.DeleteGroundstateC(rho); err != nil {
			return nil, err
		}
	}
	if e.ham.Description() != hamiltonian.TwoParticle {
		return rho.Copy(), nil
	}
	n := e.ham.Indexer().Size()
	switch p {
	case basis.Electron:
		return matrix.PartialTrace(rho, n, n, 0)
	case basis.Hole:
		return matrix.PartialTrace(rho, n, n, 1)
	}
	out, err := matrix.NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			v, err := rho.At(a*n+a, b*n+b)
			if err != nil {
				return nil, err
			}
			if err = out.Set(a, b, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// expect evaluates Re Tr(O·ρ(t)) over the trajectory.
func expect(op *matrix.Sparse, traj []*matrix.CDense) ([]float64, error) {
	out := make([]float64, len(traj))
	for k, rho := range traj {
		v, err := op.Expect(rho)
		if err != nil {
			return nil, err
		}
		out[k] = real(v)
	}

	return out, nil
}

// Populations returns the population time series of every configured
// particle on every site.
// Errors: ctx.Err().
func (e *Engine) Populations(ctx context.Context) (map[dissipator.SiteKey][]float64, error) {
	out, err := e.populations.get(func() (map[dissipator.SiteKey][]float64, error) {
		traj, err := e.Trajectory(ctx)
		if err != nil {
			return nil, err
		}
		obs := e.diss.Observables()
		pops := make(map[dissipator.SiteKey][]float64, len(obs.Populations))
		for key, op := range obs.Populations {
			if pops[key], err = expect(op, traj); err != nil {
				return nil, err
			}
		}
		return pops, nil
	})
	if err != nil {
		return nil, dynErrorf(opPops, err)
	}

	return out, nil
}

// Coherences returns, per particle, Σ_{s≠s'} |⟨|s⟩⟨s'|⟩(t)| over every
// ordered site pair.
// Errors: ctx.Err().
func (e *Engine) Coherences(ctx context.Context) (map[basis.Particle][]float64, error) {
	out, err := e.coherences.get(func() (map[basis.Particle][]float64, error) {
		traj, err := e.Trajectory(ctx)
		if err != nil {
			return nil, err
		}
		obs := e.diss.Observables()
		cohs := make(map[basis.Particle][]float64, len(obs.Particles))
		for _, p := range obs.Particles {
			cohs[p] = make([]float64, len(traj))
		}
		for key, op := range obs.Coherences {
			series := cohs[key.Particle]
			for k, rho := range traj {
				v, err := op.Expect(rho)
				if err != nil {
					return nil, err
				}
				series[k] += cmplx.Abs(v)
			}
		}
		return cohs, nil
	})
	if err != nil {
		return nil, dynErrorf(opCohs, err)
	}

	return out, nil
}

// GroundstatePopulation returns ⟨0|ρ(t)|0⟩ over the grid.
// Errors: dissipator.ErrNoGroundstate without relaxation, ctx.Err().
func (e *Engine) GroundstatePopulation(ctx context.Context) ([]float64, error) {
	gs, err := e.diss.Groundstate()
	if err != nil {
		return nil, dynErrorf(opGroundPop, err)
	}
	out, err := e.groundstate.get(func() ([]float64, error) {
		traj, err := e.Trajectory(ctx)
		if err != nil {
			return nil, err
		}
		return expect(gs, traj)
	})
	if err != nil {
		return nil, dynErrorf(opGroundPop, err)
	}

	return out, nil
}

// Lifetime returns the first grid time at which the ground-state
// population reaches LifetimeThreshold, converted to femtoseconds.
// Errors: ErrNoRelaxation when the threshold is never reached,
// dissipator.ErrNoGroundstate, ctx.Err().
func (e *Engine) Lifetime(ctx context.Context) (float64, error) {
	pop, err := e.GroundstatePopulation(ctx)
	if err != nil {
		return 0, dynErrorf(opLifetime, err)
	}
	for k, v := range pop {
		if v >= LifetimeThreshold {
			return e.times[k] * e.cfg.tUnit.ToFemtoseconds(), nil
		}
	}

	return 0, dynErrorf(opLifetime, ErrNoRelaxation)
}

// String summarizes the engine configuration.
func (e *Engine) String() string {
	return fmt.Sprintf("Engine(t_end=%g %s, t_steps=%d, init=%s, %s, %s)",
		e.cfg.tEnd, e.cfg.tUnit, e.cfg.tSteps, e.cfg.init, e.ham, e.diss)
}
