// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/units"
)

// EnvPrefix prefixes every environment override of Defaults.
const EnvPrefix = "QDNA"

// ErrInvalidDefaults indicates a defaults file that cannot be read or
// converted into component options.
var ErrInvalidDefaults = fmt.Errorf("config: invalid defaults: %w", qerr.ErrConfiguration)

// Defaults mirrors the defaults file.
type Defaults struct {
	Verbose bool       `mapstructure:"verbose"`
	Ham     HamConfig  `mapstructure:"ham"`
	Diss    DissConfig `mapstructure:"diss"`
	ME      MEConfig   `mapstructure:"me"`
}

// HamConfig is the ham section.
type HamConfig struct {
	Source      string   `mapstructure:"source"`
	Description string   `mapstructure:"description"`
	Particles   []string `mapstructure:"particles"`
	Unit        string   `mapstructure:"unit"`
	Interaction float64  `mapstructure:"interaction"`
	NNCutoff    bool     `mapstructure:"nn_cutoff"`
	Relaxation  bool     `mapstructure:"relaxation"`
}

// DissConfig is the diss section.
type DissConfig struct {
	LocalDephasingRate  float64 `mapstructure:"loc_deph_rate"`
	GlobalDephasingRate float64 `mapstructure:"glob_deph_rate"`
	LocalThermalizing   bool    `mapstructure:"loc_therm"`
	GlobalThermalizing  bool    `mapstructure:"glob_therm"`
	RelaxationRate      float64 `mapstructure:"relax_rate"`
	DephasingRate       float64 `mapstructure:"deph_rate"`
	CutoffFreq          float64 `mapstructure:"cutoff_freq"`
	Reorganization      float64 `mapstructure:"reorg_energy"`
	Temperature         float64 `mapstructure:"temperature"`
	SpectralDensity     string  `mapstructure:"spectral_density"`
	Exponent            float64 `mapstructure:"exponent"`
}

// MEConfig is the me (master equation) section. An empty InitHole
// reuses InitElectron; Delocalized overrides both.
type MEConfig struct {
	TEnd         float64 `mapstructure:"t_end"`
	TSteps       int     `mapstructure:"t_steps"`
	TimeUnit     string  `mapstructure:"t_unit"`
	InitElectron string  `mapstructure:"init_e_state"`
	InitHole     string  `mapstructure:"init_h_state"`
	Delocalized  bool    `mapstructure:"delocalized"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)

	v.SetDefault("ham.source", hamiltonian.DefaultSource)
	v.SetDefault("ham.description", string(hamiltonian.DefaultDescription))
	v.SetDefault("ham.particles", []string{})
	v.SetDefault("ham.unit", string(hamiltonian.DefaultUnit))
	v.SetDefault("ham.interaction", hamiltonian.DefaultInteraction)
	v.SetDefault("ham.nn_cutoff", hamiltonian.DefaultNNCutoff)
	v.SetDefault("ham.relaxation", hamiltonian.DefaultRelaxation)

	bath := dissipator.DefaultBath()
	v.SetDefault("diss.loc_deph_rate", 0.0)
	v.SetDefault("diss.glob_deph_rate", 0.0)
	v.SetDefault("diss.loc_therm", false)
	v.SetDefault("diss.glob_therm", false)
	v.SetDefault("diss.relax_rate", dissipator.DefaultRelaxationRate)
	v.SetDefault("diss.deph_rate", bath.DephasingRate)
	v.SetDefault("diss.cutoff_freq", bath.CutoffFreq)
	v.SetDefault("diss.reorg_energy", bath.Reorganization)
	v.SetDefault("diss.temperature", bath.Temperature)
	v.SetDefault("diss.spectral_density", string(bath.Spectral))
	v.SetDefault("diss.exponent", bath.Exponent)

	v.SetDefault("me.t_end", dynamics.DefaultTEnd)
	v.SetDefault("me.t_steps", dynamics.DefaultTSteps)
	v.SetDefault("me.t_unit", string(dynamics.DefaultTimeUnit))
	v.SetDefault("me.init_e_state", basis.Site{}.Label())
	v.SetDefault("me.init_h_state", basis.Site{}.Label())
	v.SetDefault("me.delocalized", false)
}

// LoadDefaults reads the defaults file at path (YAML) over the built-in
// defaults, then applies QDNA_<SECTION>_<KEY> environment overrides. An
// empty path skips the file.
// Errors: ErrInvalidDefaults.
func LoadDefaults(path string) (Defaults, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Defaults{}, fmt.Errorf("read %s: %w: %w", path, ErrInvalidDefaults, err)
		}
	}

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return Defaults{}, fmt.Errorf("unmarshal defaults: %w: %w", ErrInvalidDefaults, err)
	}

	return d, nil
}

// HamiltonianOptions converts the ham section.
// Errors: hamiltonian.ErrUnknownDescription, units.ErrUnknownUnit,
// basis.ErrUnknownParticle.
func (d Defaults) HamiltonianOptions() ([]hamiltonian.Option, error) {
	desc, err := hamiltonian.ParseDescription(d.Ham.Description)
	if err != nil {
		return nil, err
	}
	u, err := units.Parse(d.Ham.Unit)
	if err != nil {
		return nil, err
	}
	opts := []hamiltonian.Option{
		hamiltonian.WithDescription(desc),
		hamiltonian.WithUnit(u),
		hamiltonian.WithInteraction(d.Ham.Interaction, d.Ham.NNCutoff),
		hamiltonian.WithRelaxation(d.Ham.Relaxation),
	}
	if d.Ham.Source != "" {
		opts = append(opts, hamiltonian.WithSource(d.Ham.Source))
	}
	if len(d.Ham.Particles) > 0 {
		ps := make([]basis.Particle, len(d.Ham.Particles))
		for i, s := range d.Ham.Particles {
			if ps[i], err = basis.ParseParticle(s); err != nil {
				return nil, err
			}
		}
		opts = append(opts, hamiltonian.WithParticles(ps...))
	}

	return opts, nil
}

// DissipatorOptions converts the diss section.
// Errors: dissipator.ErrConflictingModels, dissipator.ErrInvalidBath,
// dissipator.ErrNegativeRate.
func (d Defaults) DissipatorOptions() ([]dissipator.Option, error) {
	deph, therm, err := dissipator.FromFlags(dissipator.Flags{
		LocalDephasingRate:  d.Diss.LocalDephasingRate,
		GlobalDephasingRate: d.Diss.GlobalDephasingRate,
		LocalThermalizing:   d.Diss.LocalThermalizing,
		GlobalThermalizing:  d.Diss.GlobalThermalizing,
	})
	if err != nil {
		return nil, err
	}
	bath := dissipator.Bath{
		DephasingRate:  d.Diss.DephasingRate,
		CutoffFreq:     d.Diss.CutoffFreq,
		Reorganization: d.Diss.Reorganization,
		Temperature:    d.Diss.Temperature,
		Spectral:       dissipator.SpectralDensity(strings.ToLower(d.Diss.SpectralDensity)),
		Exponent:       d.Diss.Exponent,
	}
	if err = bath.Validate(); err != nil {
		return nil, err
	}
	if d.Diss.RelaxationRate < 0 {
		return nil, fmt.Errorf("relax_rate %v: %w", d.Diss.RelaxationRate, dissipator.ErrNegativeRate)
	}

	return []dissipator.Option{
		dissipator.WithDephasing(deph),
		dissipator.WithThermalizing(therm),
		dissipator.WithBath(bath),
		dissipator.WithRelaxationRate(d.Diss.RelaxationRate),
	}, nil
}

// DynamicsOptions converts the me section.
// Errors: units.ErrUnknownUnit, basis.ErrBadLabel, ErrInvalidDefaults
// for a non-positive grid.
func (d Defaults) DynamicsOptions() ([]dynamics.Option, error) {
	tu, err := units.ParseTimeUnit(d.ME.TimeUnit)
	if err != nil {
		return nil, err
	}
	if !(d.ME.TEnd > 0) || d.ME.TSteps <= 0 {
		return nil, fmt.Errorf("t_end=%v t_steps=%d: %w", d.ME.TEnd, d.ME.TSteps, ErrInvalidDefaults)
	}
	var init dynamics.InitialState = dynamics.Delocalized{}
	if !d.ME.Delocalized {
		e, err := basis.ParseLabel(d.ME.InitElectron)
		if err != nil {
			return nil, err
		}
		h := e
		if d.ME.InitHole != "" {
			if h, err = basis.ParseLabel(d.ME.InitHole); err != nil {
				return nil, err
			}
		}
		init = dynamics.Localized{Electron: e, Hole: h}
	}

	return []dynamics.Option{
		dynamics.WithTEnd(d.ME.TEnd),
		dynamics.WithTSteps(d.ME.TSteps),
		dynamics.WithTimeUnit(tu),
		dynamics.WithInitialState(init),
	}, nil
}

// IsInvalid reports whether err came from reading or converting defaults.
func IsInvalid(err error) bool { return errors.Is(err, ErrInvalidDefaults) }
