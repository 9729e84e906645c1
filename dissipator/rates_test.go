// SPDX-License-Identifier: MIT
package dissipator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/units"
)

func TestSpectralDensities(t *testing.T) {
	require.Zero(t, dissipator.DebyeDensity(0, 20, 1))
	require.Zero(t, dissipator.DebyeDensity(-1, 20, 1))
	require.InDelta(t, 2*1*20*20/(400+400.0), dissipator.DebyeDensity(20, 20, 1), 1e-12)

	require.Zero(t, dissipator.OhmicDensity(-1, 20, 1))
	require.InDelta(t, math.Pi*math.Exp(-1), dissipator.OhmicDensity(20, 20, 1), 1e-12)
}

// TestDetailedBalance checks Rate(ω)/Rate(−ω) = exp(ħω·1e12/k_BT).
func TestDetailedBalance(t *testing.T) {
	b := dissipator.DefaultBath()
	for _, spectral := range []dissipator.SpectralDensity{dissipator.Debye, dissipator.Ohmic} {
		b.Spectral = spectral
		for _, w := range []float64{0.5, 3, 17} {
			want := math.Exp(units.Hbar * w * 1e12 / (units.Boltzmann * b.Temperature))
			require.InEpsilon(t, want, b.Rate(w)/b.Rate(-w), 1e-9, "%s ω=%v", spectral, w)
		}
	}
}

func TestZeroFrequencyRate(t *testing.T) {
	b := dissipator.DefaultBath()
	require.Equal(t, dissipator.DefaultDephasingRate, b.Rate(0))

	b.ClosedForm = true
	want := 4 * b.Reorganization * units.Boltzmann * b.Temperature / (units.Hbar * b.CutoffFreq * 1e12)
	require.InEpsilon(t, want, b.Rate(0), 1e-12)
}

// TestNearDegenerateGap checks that gaps at rounding-noise scale give the
// finite ω → 0 limit of the Redfield formula instead of +Inf.
func TestNearDegenerateGap(t *testing.T) {
	b := dissipator.DefaultBath()
	limit := dissipator.ZeroFrequencyRate(b.CutoffFreq, b.Reorganization, b.Temperature)
	for _, w := range []float64{1e-16, -1e-16, 1e-13, 1e-310, -1e-310} {
		r := b.Rate(w)
		require.False(t, math.IsInf(r, 0) || math.IsNaN(r), "ω=%v", w)
		require.InEpsilon(t, limit, r, 1e-9, "ω=%v", w)
	}
	require.False(t, math.IsInf(dissipator.Bose(1e-16, b.Temperature), 0))

	b.Spectral = dissipator.Ohmic
	require.InEpsilon(t, limit*math.Pi/2, b.Rate(1e-310), 1e-12)
	require.InEpsilon(t, limit*math.Pi/2, b.Rate(1e-16), 1e-9)
}

func TestZeroTemperature(t *testing.T) {
	b := dissipator.DefaultBath()
	b.Temperature = 0
	up, down := b.Rate(2), b.Rate(-2)
	require.False(t, math.IsNaN(up))
	require.InDelta(t, 2*dissipator.DebyeDensity(2, b.CutoffFreq, b.Reorganization), up, 1e-12)
	require.Zero(t, down)
}

func TestBathValidate(t *testing.T) {
	require.NoError(t, dissipator.DefaultBath().Validate())

	b := dissipator.DefaultBath()
	b.Spectral = "lorentz"
	require.ErrorIs(t, b.Validate(), dissipator.ErrInvalidBath)

	b = dissipator.DefaultBath()
	b.Temperature = -1
	require.ErrorIs(t, b.Validate(), dissipator.ErrInvalidBath)
}
