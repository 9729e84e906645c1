// SPDX-License-Identifier: MIT
package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/evaluation"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/topology"
	"github.com/katalvlaran/qdna/units"
)

// requireDensityMatrices checks unit trace, Hermiticity and positivity at
// every grid point.
func requireDensityMatrices(t *testing.T, traj []*matrix.CDense, negTol float64) {
	t.Helper()
	for k, rho := range traj {
		require.InDelta(t, 1, real(rho.Trace()), 1e-9, "k=%d", k)
		require.InDelta(t, 0, imag(rho.Trace()), 1e-9, "k=%d", k)
		require.NoError(t, matrix.ValidateHermitian(rho, 1e-12), "k=%d", k)
		vals, err := matrix.EigenHermitian(rho)
		require.NoError(t, err, "k=%d", k)
		require.GreaterOrEqual(t, vals[0], -negTol, "k=%d", k)
	}
}

// TestThermalizingDimer: on the 2P dimer (spectrum −2J, 0, 0, 2J) both
// thermalizing models drive any state to the Gibbs state.
func TestThermalizingDimer(t *testing.T) {
	// Bath rates read gaps in rad/ps.
	h := uniformHamiltonian(t, topology.WM, "GC", hamiltonian.WithRelaxation(false), hamiltonian.WithUnit(units.RadPerPs))
	gibbs, err := evaluation.ThermalEquilibrium(h, dissipator.DefaultTemperature)
	require.NoError(t, err)

	tests := []struct {
		name  string
		model dissipator.Thermalizing
		tEnd  float64 // ps
	}{
		{"global", dissipator.GlobalThermalizing{}, 30},
		{"local", dissipator.LocalThermalizing{}, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, h, []dissipator.Option{dissipator.WithThermalizing(tt.model)},
				dynamics.WithTimeUnit(units.Picosecond), dynamics.WithTEnd(tt.tEnd), dynamics.WithTSteps(2*int(tt.tEnd)+1))
			traj, err := e.Trajectory(ctx)
			require.NoError(t, err)
			requireDensityMatrices(t, traj, 1e-9)

			start, err := evaluation.TraceDistance(traj[0], gibbs)
			require.NoError(t, err)
			end, err := evaluation.TraceDistance(traj[len(traj)-1], gibbs)
			require.NoError(t, err)
			require.Greater(t, start, 0.5)
			require.Less(t, end, 1e-3)
		})
	}
}

// TestThermalizingLadder runs both models on a 2P extended ladder, whose
// spectrum is full of degenerate gaps, over a short window. The distance
// to the Gibbs state never grows under either model.
func TestThermalizingLadder(t *testing.T) {
	h := coupledHamiltonian(t, topology.ELM, "GCG", 0.05, hamiltonian.WithRelaxation(false), hamiltonian.WithUnit(units.RadPerPs))
	require.Equal(t, 36, h.Dim())
	gibbs, err := evaluation.ThermalEquilibrium(h, dissipator.DefaultTemperature)
	require.NoError(t, err)

	for _, model := range []dissipator.Thermalizing{dissipator.GlobalThermalizing{}, dissipator.LocalThermalizing{}} {
		t.Run(model.String(), func(t *testing.T) {
			e := newEngine(t, h, []dissipator.Option{dissipator.WithThermalizing(model)},
				dynamics.WithTimeUnit(units.Picosecond), dynamics.WithTEnd(0.1), dynamics.WithTSteps(3))
			traj, err := e.Trajectory(ctx)
			require.NoError(t, err)
			requireDensityMatrices(t, traj, 1e-8)

			prev, err := evaluation.TraceDistance(traj[0], gibbs)
			require.NoError(t, err)
			for k := 1; k < len(traj); k++ {
				d, err := evaluation.TraceDistance(traj[k], gibbs)
				require.NoError(t, err)
				require.Less(t, d, prev, "k=%d", k)
				prev = d
			}
		})
	}
}

// TestThermalizingWithRelaxation: the ground state only gains population
// while the excitations thermalize.
func TestThermalizingWithRelaxation(t *testing.T) {
	h := uniformHamiltonian(t, topology.WM, "GC", hamiltonian.WithUnit(units.RadPerPs))
	require.Equal(t, 5, h.Dim())

	for _, model := range []dissipator.Thermalizing{dissipator.GlobalThermalizing{}, dissipator.LocalThermalizing{}} {
		e := newEngine(t, h, []dissipator.Option{dissipator.WithThermalizing(model)},
			dynamics.WithTimeUnit(units.Picosecond), dynamics.WithTEnd(10), dynamics.WithTSteps(21))
		traj, err := e.Trajectory(ctx)
		require.NoError(t, err, "%s", model)
		requireDensityMatrices(t, traj, 1e-9)

		gs, err := e.GroundstatePopulation(ctx)
		require.NoError(t, err)
		require.Zero(t, gs[0])
		for k := 1; k < len(gs); k++ {
			require.GreaterOrEqual(t, gs[k], gs[k-1]-1e-12, "%s k=%d", model, k)
		}
		require.Greater(t, gs[len(gs)-1], 0.0, "%s", model)
	}
}
