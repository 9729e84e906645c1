// SPDX-License-Identifier: MIT

// Package units holds the energy/rate unit table used by every qdna
// component and the physical constants behind it.
//
// Every unit is defined by its value in Joule; a conversion ratio is the
// quotient of two such values:
//
//	value_in_to = value_in_from * Conversion(from, to)
//
// Coupling-parameter tables are usually stored in 100meV, the integrator
// works in rad/fs or rad/ps, and the bath temperature enters through K.
package units

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/qerr"
)

// CODATA 2018 exact values (SI).
const (
	ElementaryCharge = 1.602176634e-19 // C
	Planck           = 6.62607015e-34  // J·s
	SpeedOfLight     = 299792458.0     // m/s
	Boltzmann        = 1.380649e-23    // J/K
)

// Hbar is the reduced Planck constant h/2π in J·s.
const Hbar = Planck / (2 * math.Pi)

// Unit names an energy (or energy-equivalent rate) unit.
type Unit string

// Supported units.
const (
	Joule      Unit = "J"
	EV         Unit = "eV"
	MeV        Unit = "meV"
	HundredMeV Unit = "100meV"
	RadPerFs   Unit = "rad/fs"
	RadPerPs   Unit = "rad/ps"
	InvCm      Unit = "1/cm"
	Kelvin     Unit = "K"
	InvFs      Unit = "1/fs"
	InvPs      Unit = "1/ps"
)

// DefaultUnit is the unit coupling-parameter tables are published in.
const DefaultUnit = HundredMeV

// TimeUnit is the time unit of the master-equation grid.
type TimeUnit string

// Supported time units.
const (
	Femtosecond TimeUnit = "fs"
	Picosecond  TimeUnit = "ps"
)

// ErrUnknownUnit is returned for names outside the unit table.
var ErrUnknownUnit = fmt.Errorf("units: unknown unit: %w", qerr.ErrConfiguration)

// ErrUnknownTimeUnit is returned for time units other than fs and ps.
var ErrUnknownTimeUnit = fmt.Errorf("units: unknown time unit: %w", qerr.ErrConfiguration)

var toJoule = map[Unit]float64{
	Joule:      1,
	EV:         ElementaryCharge,
	MeV:        1e-3 * ElementaryCharge,
	HundredMeV: 100 * 1e-3 * ElementaryCharge,
	RadPerFs:   Hbar / 1e-15,
	RadPerPs:   Hbar / 1e-12,
	InvCm:      SpeedOfLight / 1e-2 * 2 * math.Pi * Hbar,
	Kelvin:     Boltzmann,
	InvFs:      2 * math.Pi / 1e-15 * Hbar,
	InvPs:      2 * math.Pi / 1e-12 * Hbar,
}

// All returns the supported units in a fixed order.
func All() []Unit {
	return []Unit{Joule, EV, MeV, HundredMeV, RadPerFs, RadPerPs, InvCm, Kelvin, InvFs, InvPs}
}

// Parse validates s against the unit table.
func Parse(s string) (Unit, error) {
	u := Unit(s)
	if _, ok := toJoule[u]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownUnit)
	}

	return u, nil
}

// Valid reports whether u is in the unit table.
func (u Unit) Valid() bool {
	_, ok := toJoule[u]
	return ok
}

// InJoule returns the value of one u in Joule.
func (u Unit) InJoule() (float64, error) {
	j, ok := toJoule[u]
	if !ok {
		return 0, fmt.Errorf("%q: %w", string(u), ErrUnknownUnit)
	}

	return j, nil
}

// Conversion returns the factor that converts a value in from to a value in to.
// Errors: ErrUnknownUnit naming the offending unit.
func Conversion(from, to Unit) (float64, error) {
	jf, err := from.InJoule()
	if err != nil {
		return 0, err
	}
	jt, err := to.InJoule()
	if err != nil {
		return 0, err
	}

	return jf / jt, nil
}

// MustConversion is Conversion for units known to be valid at compile time.
// It panics on an unknown unit.
func MustConversion(from, to Unit) float64 {
	c, err := Conversion(from, to)
	if err != nil {
		panic(err)
	}

	return c
}

// ConvertTable returns a copy of table with every value converted from one
// unit to another.
func ConvertTable(table map[string]float64, from, to Unit) (map[string]float64, error) {
	c, err := Conversion(from, to)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(table))
	for k, v := range table {
		out[k] = v * c
	}

	return out, nil
}

// ParseTimeUnit validates s as fs or ps.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch t := TimeUnit(s); t {
	case Femtosecond, Picosecond:
		return t, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownTimeUnit)
	}
}

// Angular returns the rad/<t> energy unit that is conjugate to the time unit t.
func (t TimeUnit) Angular() (Unit, error) {
	switch t {
	case Femtosecond:
		return RadPerFs, nil
	case Picosecond:
		return RadPerPs, nil
	default:
		return "", fmt.Errorf("%q: %w", string(t), ErrUnknownTimeUnit)
	}
}

// ToFemtoseconds returns the factor converting a duration in t to fs.
func (t TimeUnit) ToFemtoseconds() float64 {
	if t == Picosecond {
		return 1000
	}

	return 1
}

// debyePerElectronAngstrom is e·Å expressed in Debye (1 D = 1e-21/c C·m).
const debyePerElectronAngstrom = ElementaryCharge * 1e-10 * SpeedOfLight / 1e-21

// ToDebye converts a charge separation in Ångström (one elementary charge)
// into a dipole moment in Debye.
func ToDebye(angstrom float64) float64 {
	return angstrom * debyePerElectronAngstrom
}

// IsUnknown reports whether err stems from an unknown unit or time unit.
func IsUnknown(err error) bool {
	return errors.Is(err, ErrUnknownUnit) || errors.Is(err, ErrUnknownTimeUnit)
}
