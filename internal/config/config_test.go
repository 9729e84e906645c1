// SPDX-License-Identifier: MIT
package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/internal/config"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/units"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadDefaultsBuiltIn(t *testing.T) {
	d, err := config.LoadDefaults("")
	require.NoError(t, err)
	require.Equal(t, hamiltonian.DefaultSource, d.Ham.Source)
	require.Equal(t, "2P", d.Ham.Description)
	require.True(t, d.Ham.Relaxation)
	require.Equal(t, dissipator.DefaultRelaxationRate, d.Diss.RelaxationRate)
	require.Equal(t, dynamics.DefaultTEnd, d.ME.TEnd)
	require.Equal(t, dynamics.DefaultTSteps, d.ME.TSteps)
	require.Equal(t, "(0, 0)", d.ME.InitElectron)

	hopts, err := d.HamiltonianOptions()
	require.NoError(t, err)
	require.Len(t, hopts, 5)
	dopts, err := d.DissipatorOptions()
	require.NoError(t, err)
	require.Len(t, dopts, 4)
	mopts, err := d.DynamicsOptions()
	require.NoError(t, err)
	require.Len(t, mopts, 4)
}

func TestLoadDefaultsFileAndEnv(t *testing.T) {
	path := writeFile(t, `
verbose: true
ham:
  source: Hawke2010
  description: 1P
  particles: [hole]
  unit: meV
diss:
  glob_deph_rate: 0.5
  loc_therm: true
  spectral_density: Ohmic
me:
  t_unit: ps
  init_e_state: "(1, 2)"
`)
	t.Setenv("QDNA_ME_T_END", "2.5")
	t.Setenv("QDNA_DISS_TEMPERATURE", "77")

	d, err := config.LoadDefaults(path)
	require.NoError(t, err)
	require.True(t, d.Verbose)
	require.Equal(t, "Hawke2010", d.Ham.Source)
	require.Equal(t, []string{"hole"}, d.Ham.Particles)
	require.Equal(t, 0.5, d.Diss.GlobalDephasingRate)
	require.True(t, d.Diss.LocalThermalizing)
	require.Equal(t, 77.0, d.Diss.Temperature)
	require.Equal(t, 2.5, d.ME.TEnd)
	require.Equal(t, units.Picosecond, units.TimeUnit(d.ME.TimeUnit))

	_, err = d.HamiltonianOptions()
	require.NoError(t, err)
	_, err = d.DissipatorOptions()
	require.NoError(t, err)
	_, err = d.DynamicsOptions()
	require.NoError(t, err)
}

func TestDefaultsConversionErrors(t *testing.T) {
	base, err := config.LoadDefaults("")
	require.NoError(t, err)

	d := base
	d.Ham.Description = "3P"
	_, err = d.HamiltonianOptions()
	require.ErrorIs(t, err, hamiltonian.ErrUnknownDescription)

	d = base
	d.Ham.Particles = []string{"proton"}
	_, err = d.HamiltonianOptions()
	require.ErrorIs(t, err, basis.ErrUnknownParticle)

	d = base
	d.Diss.LocalDephasingRate, d.Diss.GlobalDephasingRate = 1, 1
	_, err = d.DissipatorOptions()
	require.ErrorIs(t, err, dissipator.ErrConflictingModels)

	d = base
	d.Diss.SpectralDensity = "lorentz"
	_, err = d.DissipatorOptions()
	require.ErrorIs(t, err, dissipator.ErrInvalidBath)

	d = base
	d.ME.TSteps = 0
	_, err = d.DynamicsOptions()
	require.ErrorIs(t, err, config.ErrInvalidDefaults)
	require.ErrorIs(t, err, qerr.ErrConfiguration)

	d = base
	d.ME.InitHole = "1,1"
	_, err = d.DynamicsOptions()
	require.ErrorIs(t, err, basis.ErrBadLabel)

	_, err = config.LoadDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, config.IsInvalid(err))
	_, err = config.LoadDefaults(writeFile(t, "me: [unclosed"))
	require.ErrorIs(t, err, config.ErrInvalidDefaults)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("QDNA_PARAM_DIR", "/data/params")
	t.Setenv("QDNA_STORE", "sqlite")
	t.Setenv("QDNA_PARAM_RETRIES", "5")

	e, err := config.LoadEnv()
	require.NoError(t, err)
	require.Equal(t, "/data/params", e.ParamDir)
	require.Equal(t, "sqlite", e.StoreBackend)
	require.Equal(t, "qdna.db", e.SQLitePath)
	require.Equal(t, uint(5), e.ParamRetries)
	require.Equal(t, "qdna", e.ServiceName)

	t.Setenv("QDNA_PARAM_RETRIES", "many")
	_, err = config.LoadEnv()
	require.Error(t, err)
}
