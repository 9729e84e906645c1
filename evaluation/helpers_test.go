// SPDX-License-Identifier: MIT
package evaluation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/topology"
	"github.com/katalvlaran/qdna/units"
)

var ctx = context.Background()

const hop = 0.7 // 100meV

// uniformHamiltonian builds name over upper with zero on-site energies and
// every coupling equal to hop.
func uniformHamiltonian(t *testing.T, name topology.Name, upper string, opts ...hamiltonian.Option) *hamiltonian.Hamiltonian {
	t.Helper()

	return coupledHamiltonian(t, name, upper, hop, opts...)
}

// coupledHamiltonian is uniformHamiltonian with coupling c in 100meV.
func coupledHamiltonian(t *testing.T, name topology.Name, upper string, c float64, opts ...hamiltonian.Option) *hamiltonian.Hamiltonian {
	t.Helper()
	seq, err := sequence.New(upper, name)
	require.NoError(t, err)
	model, err := topology.Build(name, seq.Dims())
	require.NoError(t, err)

	letters := append(sequence.Bases(), sequence.Backbone)
	values := map[string]float64{}
	for _, a := range letters {
		values["E_"+a] = 0
		for _, b := range letters {
			for _, tag := range []topology.Tag{topology.Hop, topology.Rung, topology.DiagPlus, topology.DiagMinus} {
				values[hamiltonian.ParameterKey(tag, a, b)] = c
			}
		}
	}
	src := params.NewMemorySource()
	for _, p := range []string{"electron", "hole"} {
		tab, err := params.NewTable(params.Key{Source: "uniform", Particle: p, Model: string(name)}, units.HundredMeV, values)
		require.NoError(t, err)
		require.NoError(t, src.Put(tab))
	}
	h, err := hamiltonian.New(ctx, model, seq, src,
		append([]hamiltonian.Option{hamiltonian.WithSource("uniform")}, opts...)...)
	require.NoError(t, err)

	return h
}

func newEngine(t *testing.T, h *hamiltonian.Hamiltonian, dopts []dissipator.Option, opts ...dynamics.Option) *dynamics.Engine {
	t.Helper()
	d, err := dissipator.New(h, dopts...)
	require.NoError(t, err)
	e, err := dynamics.New(h, d, opts...)
	require.NoError(t, err)

	return e
}
