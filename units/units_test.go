// SPDX-License-Identifier: MIT
package units_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/units"
	"github.com/stretchr/testify/require"
)

func TestConversion(t *testing.T) {
	tests := []struct {
		from, to units.Unit
		want     float64
	}{
		{units.RadPerFs, units.HundredMeV, 6.582119569509065},
		{units.HundredMeV, units.RadPerFs, 1 / 6.582119569509065},
		{units.EV, units.MeV, 1000},
		{units.RadPerPs, units.RadPerFs, 1e-3},
		{units.InvFs, units.RadPerFs, 2 * 3.141592653589793},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			got, err := units.Conversion(tt.from, tt.to)
			require.NoError(t, err)
			require.InEpsilon(t, tt.want, got, 1e-12)
		})
	}
}

func TestReducedPlanck(t *testing.T) {
	require.InEpsilon(t, units.Planck, 2*math.Pi*units.Hbar, 1e-15)
	// ħ/e in eV·s
	require.InEpsilon(t, 6.582119569509066e-16, units.Hbar/units.ElementaryCharge, 1e-13)
}

func TestConversionRoundTrip(t *testing.T) {
	for _, a := range units.All() {
		for _, b := range units.All() {
			ab := units.MustConversion(a, b)
			ba := units.MustConversion(b, a)
			require.InEpsilon(t, 1.0, ab*ba, 1e-12)
		}
	}
}

func TestConvertTable(t *testing.T) {
	got, err := units.ConvertTable(map[string]float64{"A": 2, "B": 3}, units.HundredMeV, units.RadPerFs)
	require.NoError(t, err)
	require.InEpsilon(t, 0.3038534895757253, got["A"], 1e-12)
	require.InEpsilon(t, 0.45578023436358794, got["B"], 1e-12)
}

func TestUnknownUnit(t *testing.T) {
	_, err := units.Conversion("furlong", units.EV)
	require.ErrorIs(t, err, units.ErrUnknownUnit)
	require.ErrorIs(t, err, qerr.ErrConfiguration)
	require.True(t, units.IsUnknown(err))

	_, err = units.Parse("eV")
	require.NoError(t, err)

	_, err = units.ParseTimeUnit("ns")
	require.ErrorIs(t, err, units.ErrUnknownTimeUnit)
	require.Panics(t, func() { units.MustConversion("x", units.EV) })
}

func TestTimeUnits(t *testing.T) {
	u, err := units.Picosecond.Angular()
	require.NoError(t, err)
	require.Equal(t, units.RadPerPs, u)
	require.Equal(t, 1000.0, units.Picosecond.ToFemtoseconds())
	require.Equal(t, 1.0, units.Femtosecond.ToFemtoseconds())
}

// TestToDebye checks one base-pair separation (3.4 Å).
func TestToDebye(t *testing.T) {
	require.InEpsilon(t, 16.330896022738898, units.ToDebye(3.4), 1e-9)
}
