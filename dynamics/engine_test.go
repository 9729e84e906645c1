// SPDX-License-Identifier: MIT
package dynamics_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/topology"
	"github.com/katalvlaran/qdna/units"
)

var ctx = context.Background()

const hop = 0.7 // 100meV

// dimer builds a WM "GC" Hamiltonian with zero on-site energies and
// hopping hop for both carriers.
func dimer(tb testing.TB, opts ...hamiltonian.Option) *hamiltonian.Hamiltonian {
	tb.Helper()
	seq, err := sequence.New("GC", topology.WM)
	require.NoError(tb, err)
	model, err := topology.Build(topology.WM, seq.Dims())
	require.NoError(tb, err)

	src := params.NewMemorySource()
	for _, p := range []string{"electron", "hole"} {
		tab, err := params.NewTable(params.Key{Source: "dimer", Particle: p, Model: "WM"}, units.HundredMeV,
			map[string]float64{"E_G": 0, "E_C": 0, "t_GC": hop})
		require.NoError(tb, err)
		require.NoError(tb, src.Put(tab))
	}
	h, err := hamiltonian.New(ctx, model, seq, src,
		append([]hamiltonian.Option{hamiltonian.WithSource("dimer")}, opts...)...)
	require.NoError(tb, err)

	return h
}

func engine(tb testing.TB, h *hamiltonian.Hamiltonian, dopts []dissipator.Option, opts ...dynamics.Option) *dynamics.Engine {
	tb.Helper()
	d, err := dissipator.New(h, dopts...)
	require.NoError(tb, err)
	e, err := dynamics.New(h, d, opts...)
	require.NoError(tb, err)

	return e
}

func TestResolutionGuard(t *testing.T) {
	h := dimer(t)
	d, err := dissipator.New(h)
	require.NoError(t, err)

	_, err = dynamics.New(h, d, dynamics.WithTEnd(10), dynamics.WithTSteps(5))
	require.ErrorIs(t, err, dynamics.ErrResolution)
	require.ErrorIs(t, err, qerr.ErrNumericGuard)

	_, err = dynamics.New(h, d, dynamics.WithTEnd(0))
	require.ErrorIs(t, err, dynamics.ErrInvalidGrid)

	e, err := dynamics.New(h, d, dynamics.WithTEnd(10), dynamics.WithTSteps(21))
	require.NoError(t, err)
	require.ErrorIs(t, e.SetTEnd(100), dynamics.ErrResolution)
	require.ErrorIs(t, e.SetTSteps(1), dynamics.ErrInvalidGrid)
	require.Equal(t, 10.0, e.TEnd())
}

// TestClosedDimer checks Rabi oscillation pop₀(t) = cos²(J·t) of one
// carrier without any bath.
func TestClosedDimer(t *testing.T) {
	h := dimer(t, hamiltonian.WithDescription(hamiltonian.OneParticle))
	e := engine(t, h, nil, dynamics.WithTEnd(50), dynamics.WithTSteps(201))

	pops, err := e.Populations(ctx)
	require.NoError(t, err)
	p0 := pops[dissipator.SiteKey{Particle: basis.Electron, Site: basis.Site{Strand: 0, Index: 0}}]
	p1 := pops[dissipator.SiteKey{Particle: basis.Electron, Site: basis.Site{Strand: 0, Index: 1}}]
	require.Len(t, p0, 201)

	j := hop * units.MustConversion(units.HundredMeV, units.RadPerFs)
	for k, tk := range e.Times() {
		require.InDelta(t, math.Pow(math.Cos(j*tk), 2), p0[k], 1e-6, "t=%v", tk)
		require.InDelta(t, 1, p0[k]+p1[k], 1e-9)
	}
}

func TestRelaxationLifetime(t *testing.T) {
	h := dimer(t)
	e := engine(t, h, nil, dynamics.WithTEnd(100), dynamics.WithTSteps(401))

	gs, err := e.GroundstatePopulation(ctx)
	require.NoError(t, err)
	require.Zero(t, gs[0])
	for k := 1; k < len(gs); k++ {
		require.GreaterOrEqual(t, gs[k], gs[k-1]-1e-9)
	}

	life, err := e.Lifetime(ctx)
	require.NoError(t, err)
	times := e.Times()
	k := 0
	for times[k] < life {
		k++
	}
	require.Equal(t, times[k], life)
	require.GreaterOrEqual(t, gs[k], dynamics.LifetimeThreshold)
	require.Less(t, gs[k-1], dynamics.LifetimeThreshold)

	traj, err := e.Trajectory(ctx)
	require.NoError(t, err)
	for _, rho := range traj {
		require.InDelta(t, 1, real(rho.Trace()), 1e-9)
	}
}

func TestNoRelaxationObserved(t *testing.T) {
	h := dimer(t)
	e := engine(t, h, []dissipator.Option{dissipator.WithRelaxationRate(0)},
		dynamics.WithTEnd(10), dynamics.WithTSteps(41))
	_, err := e.Lifetime(ctx)
	require.ErrorIs(t, err, dynamics.ErrNoRelaxation)

	one := dimer(t, hamiltonian.WithDescription(hamiltonian.OneParticle))
	e = engine(t, one, nil, dynamics.WithTEnd(10), dynamics.WithTSteps(41))
	_, err = e.GroundstatePopulation(ctx)
	require.ErrorIs(t, err, dissipator.ErrNoGroundstate)
}

func TestPicosecondLifetimeIsInFemtoseconds(t *testing.T) {
	h := dimer(t)
	fs := engine(t, h, nil, dynamics.WithTEnd(100), dynamics.WithTSteps(401))
	ps := engine(t, h, nil, dynamics.WithTEnd(0.1), dynamics.WithTSteps(401), dynamics.WithTimeUnit(units.Picosecond))

	a, err := fs.Lifetime(ctx)
	require.NoError(t, err)
	b, err := ps.Lifetime(ctx)
	require.NoError(t, err)
	require.InDelta(t, a, b, 1e-6)
}

func TestMemoization(t *testing.T) {
	h := dimer(t, hamiltonian.WithRelaxation(false))
	e := engine(t, h, nil, dynamics.WithTEnd(10), dynamics.WithTSteps(21))

	a, err := e.Trajectory(ctx)
	require.NoError(t, err)
	b, err := e.Trajectory(ctx)
	require.NoError(t, err)
	require.Same(t, a[5], b[5])

	require.NoError(t, e.SetTEnd(10))
	b, err = e.Trajectory(ctx)
	require.NoError(t, err)
	require.Same(t, a[5], b[5])

	require.NoError(t, e.SetTSteps(41))
	b, err = e.Trajectory(ctx)
	require.NoError(t, err)
	require.Len(t, b, 41)
	require.NotSame(t, a[0], b[0])

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.NoError(t, e.SetTSteps(51))
	_, err = e.Trajectory(cancelled)
	require.ErrorIs(t, err, context.Canceled)
	// a failed run is not cached
	b, err = e.Trajectory(ctx)
	require.NoError(t, err)
	require.Len(t, b, 51)
}

func TestReducedTrajectory(t *testing.T) {
	h := dimer(t)
	e := engine(t, h, nil, dynamics.WithTEnd(20), dynamics.WithTSteps(81))

	el, err := e.ReducedTrajectory(ctx, basis.Electron)
	require.NoError(t, err)
	gs, err := e.GroundstatePopulation(ctx)
	require.NoError(t, err)
	pops, err := e.Populations(ctx)
	require.NoError(t, err)
	for k, rho := range el {
		require.Equal(t, 2, rho.Rows())
		// the excited manifold holds what the ground state has not taken
		require.InDelta(t, 1-gs[k], real(rho.Trace()), 1e-9)
		v, err := rho.At(0, 0)
		require.NoError(t, err)
		require.InDelta(t, pops[dissipator.SiteKey{Particle: basis.Electron}][k], real(v), 1e-9)
	}

	ex, err := e.ReducedTrajectory(ctx, basis.Exciton)
	require.NoError(t, err)
	require.Len(t, ex, 81)

	one := dimer(t, hamiltonian.WithDescription(hamiltonian.OneParticle))
	e = engine(t, one, nil, dynamics.WithTEnd(10), dynamics.WithTSteps(41))
	_, err = e.ReducedTrajectory(ctx, basis.Hole)
	require.ErrorIs(t, err, dynamics.ErrParticleNotTracked)
}

func TestLocalDephasingMixes(t *testing.T) {
	h := dimer(t, hamiltonian.WithDescription(hamiltonian.OneParticle))
	e := engine(t, h,
		[]dissipator.Option{dissipator.WithDephasing(dissipator.LocalDephasing{Rate: 1})},
		dynamics.WithTEnd(200), dynamics.WithTSteps(401))

	pops, err := e.Populations(ctx)
	require.NoError(t, err)
	p0 := pops[dissipator.SiteKey{Particle: basis.Electron}]
	require.InDelta(t, 0.5, p0[len(p0)-1], 1e-3)

	cohs, err := e.Coherences(ctx)
	require.NoError(t, err)
	c := cohs[basis.Electron]
	require.Zero(t, c[0])
	require.InDelta(t, 0, c[len(c)-1], 1e-3)
}

func TestInitialStates(t *testing.T) {
	h := dimer(t)

	rho, err := dynamics.InitialMatrix(h, dynamics.Localized{
		Electron: basis.Site{Index: 1}, Hole: basis.Site{Index: 0},
	})
	require.NoError(t, err)
	// pair (1,0) sits at 2, shifted by the ground state
	v, err := rho.At(3, 3)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), v)

	rho, err = dynamics.InitialMatrix(h, dynamics.Delocalized{})
	require.NoError(t, err)
	require.InDelta(t, 1, real(rho.Trace()), 1e-12)
	v, err = rho.At(4, 4)
	require.NoError(t, err)
	require.Equal(t, complex(0.5, 0), v)

	_, err = dynamics.InitialMatrix(h, dynamics.Localized{Electron: basis.Site{Index: 7}})
	require.ErrorIs(t, err, dynamics.ErrInvalidInitialState)

	hole := dimer(t, hamiltonian.WithDescription(hamiltonian.OneParticle), hamiltonian.WithParticles(basis.Hole))
	rho, err = dynamics.InitialMatrix(hole, dynamics.Localized{Hole: basis.Site{Index: 1}})
	require.NoError(t, err)
	v, err = rho.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, complex(1, 0), v)
}

func TestResetClearsResults(t *testing.T) {
	h := dimer(t)
	e := engine(t, h, nil, dynamics.WithTEnd(50), dynamics.WithTSteps(201))
	before, err := e.Lifetime(ctx)
	require.NoError(t, err)

	slow, err := dissipator.New(h, dissipator.WithRelaxationRate(1))
	require.NoError(t, err)
	require.NoError(t, e.Reset(h, slow))
	after, err := e.Lifetime(ctx)
	require.NoError(t, err)
	require.Greater(t, after, before)

	other := dimer(t, hamiltonian.WithRelaxation(false))
	require.ErrorIs(t, e.Reset(other, slow), dynamics.ErrIncompatible)
}
