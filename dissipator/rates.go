// SPDX-License-Identifier: MIT

package dissipator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/units"
)

// SpectralDensity names the bath spectral density S(ω).
type SpectralDensity string

// Spectral densities.
const (
	Debye SpectralDensity = "debye"
	Ohmic SpectralDensity = "ohmic"
)

// Bath defaults.
const (
	DefaultDephasingRate  = 7.0
	DefaultCutoffFreq     = 20.0
	DefaultReorganization = 1.0
	DefaultTemperature    = 300.0 // K
	DefaultExponent       = 1.0
)

// Bath holds the parameters of the Redfield rate. Frequencies, energies
// and rates share the dissipator's unit at build time.
type Bath struct {
	// DephasingRate is the rate returned at ω = 0. When ClosedForm is set
	// it is replaced by 4λk_BT/(ħωc·1e12).
	DephasingRate float64
	ClosedForm    bool

	CutoffFreq     float64 // ωc
	Reorganization float64 // λ
	Temperature    float64 // K
	Spectral       SpectralDensity
	// Exponent is carried for the Ohmic family; the implemented Ohmic
	// density is the exponent-1 form.
	Exponent float64
}

// DefaultBath returns the bath used when no option overrides it.
func DefaultBath() Bath {
	return Bath{
		DephasingRate:  DefaultDephasingRate,
		CutoffFreq:     DefaultCutoffFreq,
		Reorganization: DefaultReorganization,
		Temperature:    DefaultTemperature,
		Spectral:       Debye,
		Exponent:       DefaultExponent,
	}
}

// Validate checks the bath parameters. Errors: ErrInvalidBath.
func (b Bath) Validate() error {
	switch {
	case b.Spectral != Debye && b.Spectral != Ohmic:
		return fmt.Errorf("spectral density %q: %w", string(b.Spectral), ErrInvalidBath)
	case !(b.CutoffFreq > 0):
		return fmt.Errorf("cutoff frequency %v must be > 0: %w", b.CutoffFreq, ErrInvalidBath)
	case b.Reorganization < 0 || math.IsNaN(b.Reorganization):
		return fmt.Errorf("reorganization energy %v must be >= 0: %w", b.Reorganization, ErrInvalidBath)
	case b.Temperature < 0 || math.IsNaN(b.Temperature):
		return fmt.Errorf("temperature %v must be >= 0: %w", b.Temperature, ErrInvalidBath)
	case !b.ClosedForm && (b.DephasingRate < 0 || math.IsNaN(b.DephasingRate)):
		return fmt.Errorf("dephasing rate %v must be >= 0: %w", b.DephasingRate, ErrInvalidBath)
	}

	return nil
}

// DebyeDensity returns 2λωωc/(ω²+ωc²) for ω > 0 and 0 otherwise.
func DebyeDensity(omega, cutoff, reorg float64) float64 {
	if omega <= 0 {
		return 0
	}

	return 2 * reorg * omega * cutoff / (omega*omega + cutoff*cutoff)
}

// OhmicDensity returns (πλω/ωc)·e^(−ω/ωc) for ω > 0 and 0 otherwise.
func OhmicDensity(omega, cutoff, reorg float64) float64 {
	if omega <= 0 {
		return 0
	}

	return (math.Pi * reorg * omega / cutoff) * math.Exp(-omega/cutoff)
}

// Bose returns the Bose-Einstein occupation 1/(exp(ħω·1e12/(k_B T)) − 1).
// At T = 0 it is 0 for ω > 0 and −1 for ω < 0. It diverges at ω = 0.
func Bose(omega, temperature float64) float64 {
	return 1 / math.Expm1(units.Hbar*omega*1e12/(units.Boltzmann*temperature))
}

// ZeroFrequencyRate returns the ω → 0 limit 4λk_BT/(ħωc·1e12).
func ZeroFrequencyRate(cutoff, reorg, temperature float64) float64 {
	return 4 * reorg * units.Boltzmann * temperature / (units.Hbar * cutoff * 1e12)
}

// smallGapRate is the limit of the Redfield formula for ω → 0±: the
// Debye form gives ZeroFrequencyRate, the Ohmic one π/2 of it.
func (b Bath) smallGapRate() float64 {
	r := ZeroFrequencyRate(b.CutoffFreq, b.Reorganization, b.Temperature)
	if b.Spectral == Ohmic {
		return r * math.Pi / 2
	}

	return r
}

// Density evaluates the configured spectral density.
func (b Bath) Density(omega float64) float64 {
	if b.Spectral == Ohmic {
		return OhmicDensity(omega, b.CutoffFreq, b.Reorganization)
	}

	return DebyeDensity(omega, b.CutoffFreq, b.Reorganization)
}

// Rate returns the Redfield rate 2[S(ω)(1+n(ω)) + S(−ω)n(−ω)] for the gap
// ω, or the zero-frequency rate at ω = 0. A gap so small that n(ω)
// overflows yields the ω → 0 limit of the formula.
func (b Bath) Rate(omega float64) float64 {
	if omega == 0 {
		if b.ClosedForm {
			return ZeroFrequencyRate(b.CutoffFreq, b.Reorganization, b.Temperature)
		}
		return b.DephasingRate
	}
	if n := Bose(math.Abs(omega), b.Temperature); math.IsInf(n, 0) || math.IsNaN(n) {
		return b.smallGapRate()
	}
	var up, down float64
	if s := b.Density(omega); s != 0 {
		up = s * (1 + Bose(omega, b.Temperature))
	}
	if s := b.Density(-omega); s != 0 {
		down = s * Bose(-omega, b.Temperature)
	}

	return 2 * (up + down)
}
