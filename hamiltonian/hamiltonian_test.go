// SPDX-License-Identifier: MIT
package hamiltonian_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/topology"
	"github.com/katalvlaran/qdna/units"
)

var ctx = context.Background()

// uniformTable fills every key of every tag with on-site energy e and
// coupling c.
func uniformTable(t testing.TB, key params.Key, e, c float64) params.Table {
	t.Helper()
	letters := append(sequence.Bases(), sequence.Backbone)
	values := map[string]float64{}
	for _, a := range letters {
		values["E_"+a] = e
		for _, b := range letters {
			for _, tag := range []topology.Tag{topology.Hop, topology.Rung, topology.DiagPlus, topology.DiagMinus} {
				values[hamiltonian.ParameterKey(tag, a, b)] = c
			}
		}
	}
	tab, err := params.NewTable(key, units.HundredMeV, values)
	require.NoError(t, err)

	return tab
}

func uniformSource(t testing.TB, source, model string, e, c float64) *params.MemorySource {
	t.Helper()
	src := params.NewMemorySource()
	for _, p := range []string{"electron", "hole"} {
		require.NoError(t, src.Put(uniformTable(t, params.Key{Source: source, Particle: p, Model: model}, e, c)))
	}

	return src
}

func build(t *testing.T, name topology.Name, upper string) (*topology.Model, *sequence.Sequence) {
	t.Helper()
	seq, err := sequence.New(upper, name)
	require.NoError(t, err)
	model, err := topology.Build(name, seq.Dims())
	require.NoError(t, err)

	return model, seq
}

func requireSymmetric(t *testing.T, m *matrix.Dense) {
	t.Helper()
	require.NoError(t, matrix.ValidateSymmetric(m, 1e-12))
}

// TestTwoSiteWire checks the textbook dimer: eigenvalues ±t and vectors
// (1, ±1)/√2.
func TestTwoSiteWire(t *testing.T) {
	model, seq := build(t, topology.WM, "GC")
	tab, err := params.NewTable(params.Key{Source: "dimer", Particle: "electron", Model: "WM"}, units.HundredMeV,
		map[string]float64{"E_G": 0, "E_C": 0, "t_GC": 0.7})
	require.NoError(t, err)

	h, err := hamiltonian.New(ctx, model, seq, params.NewMemorySource(tab),
		hamiltonian.WithDescription(hamiltonian.OneParticle), hamiltonian.WithSource("dimer"))
	require.NoError(t, err)
	require.Equal(t, 2, h.Dim())
	require.False(t, h.Relaxation())

	vals, vecs, err := h.Eigensystem()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-0.7, 0.7}, vals, 1e-12)
	for k := 0; k < 2; k++ {
		col, err := vecs.Col(k)
		require.NoError(t, err)
		require.InDelta(t, 1/math.Sqrt2, math.Abs(col[0]), 1e-12)
		require.InDelta(t, 1/math.Sqrt2, math.Abs(col[1]), 1e-12)
	}
	col, _ := vecs.Col(0)
	require.Less(t, col[0]*col[1], 0.0)
}

// TestReversedKeyFallback checks that a coupling stored under the
// reversed bases resolves, while on-site energies never fall back.
func TestReversedKeyFallback(t *testing.T) {
	model, seq := build(t, topology.WM, "GC")
	key := params.Key{Source: "rev", Particle: "electron", Model: "WM"}

	tab, err := params.NewTable(key, units.HundredMeV, map[string]float64{"E_G": 1, "E_C": 2, "t_CG": 0.3})
	require.NoError(t, err)
	m, err := hamiltonian.Matrix1P(model, seq, tab)
	require.NoError(t, err)
	v, _ := m.At(0, 1)
	require.Equal(t, 0.3, v)
	v, _ = m.At(1, 1)
	require.Equal(t, 2.0, v)

	tab, err = params.NewTable(key, units.HundredMeV, map[string]float64{"E_G": 1, "t_GC": 0.3})
	require.NoError(t, err)
	_, err = hamiltonian.Matrix1P(model, seq, tab)
	require.ErrorIs(t, err, hamiltonian.ErrMissingParameter)
	require.ErrorIs(t, err, qerr.ErrConfiguration)
	require.ErrorContains(t, err, `"E_C"`)

	tab, err = params.NewTable(key, units.HundredMeV, map[string]float64{"E_G": 1, "E_C": 1})
	require.NoError(t, err)
	_, err = hamiltonian.Matrix1P(model, seq, tab)
	require.ErrorContains(t, err, `"t_GC"`)
}

func TestTwoParticleStructure(t *testing.T) {
	model, seq := build(t, topology.ELM, "GCG")
	src := uniformSource(t, hamiltonian.DefaultSource, "ELM", 0.5, 0.1)
	n := model.Size()

	h, err := hamiltonian.New(ctx, model, seq, src)
	require.NoError(t, err)
	require.Equal(t, hamiltonian.TwoParticle, h.Description())
	require.True(t, h.Relaxation())
	require.Equal(t, n*n+1, h.Dim())
	requireSymmetric(t, h.Matrix())
	require.Equal(t, []basis.Particle{basis.Electron, basis.Hole, basis.Exciton}, h.Particles())

	// Ground state row and column are zero.
	m := h.Matrix()
	for k := 0; k < h.Dim(); k++ {
		v, _ := m.At(0, k)
		require.Zero(t, v)
	}

	// Without the ground state the diagonal of H_e⊗I + I⊗H_h is E_e + E_h.
	plain, err := h.WithRelaxation(false)
	require.NoError(t, err)
	require.Equal(t, n*n, plain.Dim())
	requireSymmetric(t, plain.Matrix())
	for _, d := range plain.Matrix().Diag() {
		require.InDelta(t, 1.0, d, 1e-12)
	}

	back, err := matrix.DeleteGroundstate(h.Matrix())
	require.NoError(t, err)
	require.Equal(t, plain.Matrix(), back)

	// The receiver is unchanged by rebuilds.
	require.True(t, h.Relaxation())
	require.Equal(t, n*n+1, h.Dim())

	vals, _, err := h.Eigensystem()
	require.NoError(t, err)
	require.Len(t, vals, n*n)
}

func TestInteraction(t *testing.T) {
	model, seq := build(t, topology.WM, "GCG")
	src := uniformSource(t, hamiltonian.DefaultSource, "WM", 0, 0)
	const j = -2.0

	h, err := hamiltonian.New(ctx, model, seq, src,
		hamiltonian.WithRelaxation(false), hamiltonian.WithInteraction(j, false))
	require.NoError(t, err)
	idx := model.Indexer()
	diag := h.Matrix().Diag()
	for k, d := range idx.EHDistances() {
		require.InDelta(t, j/(1+3.4*d), diag[k], 1e-12)
	}

	cut, err := h.WithInteraction(j, true)
	require.NoError(t, err)
	diag = cut.Matrix().Diag()
	for k, d := range idx.EHDistances() {
		if d > 1 {
			require.Zero(t, diag[k])
		} else {
			require.NotZero(t, diag[k])
		}
	}

	// The interaction lands before the ground state.
	relaxed, err := cut.WithRelaxation(true)
	require.NoError(t, err)
	v, _ := relaxed.Matrix().At(1, 1)
	require.InDelta(t, j, v, 1e-12)
}

func TestWithUnit(t *testing.T) {
	model, seq := build(t, topology.LM, "AT")
	src := uniformSource(t, hamiltonian.DefaultSource, "LM", 0.5, 0.1)
	h, err := hamiltonian.New(ctx, model, seq, src, hamiltonian.WithInteraction(0.2, false))
	require.NoError(t, err)

	mev, err := h.WithUnit(units.MeV)
	require.NoError(t, err)
	require.Equal(t, units.MeV, mev.Unit())
	j, _ := mev.Interaction()
	require.InDelta(t, 20.0, j, 1e-9)

	scaled, err := matrix.Scale(h.Matrix(), 100)
	require.NoError(t, err)
	diff, err := matrix.Sub(scaled, mev.Matrix())
	require.NoError(t, err)
	for _, d := range diff.Diag() {
		require.InDelta(t, 0, d, 1e-9)
	}
	tab, ok := mev.Table(basis.Electron)
	require.True(t, ok)
	require.Equal(t, units.MeV, tab.Unit())
	v, _ := tab.Get("E_A")
	require.InDelta(t, 50.0, v, 1e-9)

	_, err = h.WithUnit("parsec")
	require.ErrorIs(t, err, units.ErrUnknownUnit)
}

func TestWithSource(t *testing.T) {
	model, seq := build(t, topology.WM, "GG")
	src := uniformSource(t, "A", "WM", 1, 0)
	for _, p := range []string{"electron", "hole"} {
		require.NoError(t, src.Put(uniformTable(t, params.Key{Source: "B", Particle: p, Model: "WM"}, 2, 0)))
	}

	h, err := hamiltonian.New(ctx, model, seq, src, hamiltonian.WithSource("A"), hamiltonian.WithRelaxation(false))
	require.NoError(t, err)
	hb, err := h.WithSource(ctx, "B")
	require.NoError(t, err)
	require.Equal(t, "B", hb.Source())
	require.InDelta(t, 4.0, hb.Matrix().Diag()[0], 1e-12)
	require.InDelta(t, 2.0, h.Matrix().Diag()[0], 1e-12)

	_, err = h.WithSource(ctx, "C")
	require.ErrorIs(t, err, params.ErrNotFound)
}

func TestConfigErrors(t *testing.T) {
	model, seq := build(t, topology.WM, "GC")
	src := uniformSource(t, hamiltonian.DefaultSource, "WM", 0, 0)

	tests := []struct {
		name string
		opts []hamiltonian.Option
		want error
	}{
		{"description", []hamiltonian.Option{hamiltonian.WithDescription("3P")}, hamiltonian.ErrUnknownDescription},
		{"1P exciton", []hamiltonian.Option{
			hamiltonian.WithDescription(hamiltonian.OneParticle),
			hamiltonian.WithParticles(basis.Exciton),
		}, hamiltonian.ErrInvalidParticles},
		{"1P two carriers", []hamiltonian.Option{
			hamiltonian.WithDescription(hamiltonian.OneParticle),
			hamiltonian.WithParticles(basis.Electron, basis.Hole),
		}, hamiltonian.ErrInvalidParticles},
		{"unknown particle", []hamiltonian.Option{hamiltonian.WithParticles("proton")}, basis.ErrUnknownParticle},
		{"unit", []hamiltonian.Option{hamiltonian.WithUnit("eV/2")}, units.ErrUnknownUnit},
		{"missing source", []hamiltonian.Option{hamiltonian.WithSource("Nobody2000")}, params.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hamiltonian.New(ctx, model, seq, src, tt.opts...)
			require.ErrorIs(t, err, tt.want)
			require.True(t, qerr.IsPermanent(err))
		})
	}

	other, err := sequence.New("GCG", topology.WM)
	require.NoError(t, err)
	_, err = hamiltonian.New(ctx, model, other, src)
	require.ErrorIs(t, err, hamiltonian.ErrSequenceMismatch)

	_, err = hamiltonian.New(ctx, model, seq, nil)
	require.ErrorIs(t, err, hamiltonian.ErrNilInput)

	require.Panics(t, func() { hamiltonian.WithSource("") })
	require.Panics(t, func() { hamiltonian.WithInteraction(math.NaN(), false) })
}

func TestOneParticleDisablesTwoParticleFeatures(t *testing.T) {
	model, seq := build(t, topology.WM, "GC")
	src := uniformSource(t, hamiltonian.DefaultSource, "WM", 0, 0.2)
	h, err := hamiltonian.New(ctx, model, seq, src,
		hamiltonian.WithDescription(hamiltonian.OneParticle),
		hamiltonian.WithParticles(basis.Hole),
		hamiltonian.WithInteraction(3, true))
	require.NoError(t, err)
	require.Equal(t, 2, h.Dim())
	j, cut := h.Interaction()
	require.Zero(t, j)
	require.False(t, cut)
	_, ok := h.Table(basis.Electron)
	require.False(t, ok)

	_, err = h.WithRelaxation(true)
	require.ErrorIs(t, err, hamiltonian.ErrRequiresTwoParticle)
	_, err = h.WithInteraction(1, false)
	require.ErrorIs(t, err, hamiltonian.ErrRequiresTwoParticle)
}

// TestHermitianAcrossTopologies builds every named topology in both
// descriptions.
func TestHermitianAcrossTopologies(t *testing.T) {
	for _, name := range topology.Names() {
		t.Run(string(name), func(t *testing.T) {
			model, seq := build(t, name, "AcG")
			src := uniformSource(t, hamiltonian.DefaultSource, string(name), 0.3, -0.1)

			h1, err := hamiltonian.New(ctx, model, seq, src, hamiltonian.WithDescription(hamiltonian.OneParticle))
			require.NoError(t, err)
			requireSymmetric(t, h1.Matrix())

			h2, err := hamiltonian.New(ctx, model, seq, src, hamiltonian.WithInteraction(0.5, false))
			require.NoError(t, err)
			requireSymmetric(t, h2.Matrix())
		})
	}
}
