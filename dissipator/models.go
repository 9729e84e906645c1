// SPDX-License-Identifier: MIT

package dissipator

import (
	"fmt"
	"math"
)

// Dephasing is one of LocalDephasing or GlobalDephasing; nil selects no
// dephasing.
type Dephasing interface {
	dephasing()
	fmt.Stringer
}

// LocalDephasing projects onto every site (and particle in 2P).
type LocalDephasing struct{ Rate float64 }

// GlobalDephasing projects onto every eigenstate.
type GlobalDephasing struct{ Rate float64 }

func (LocalDephasing) dephasing()  {}
func (GlobalDephasing) dephasing() {}

func (d LocalDephasing) String() string  { return fmt.Sprintf("LocalDephasing(%g)", d.Rate) }
func (d GlobalDephasing) String() string { return fmt.Sprintf("GlobalDephasing(%g)", d.Rate) }

// Thermalizing is one of LocalThermalizing or GlobalThermalizing; nil
// selects no thermalization.
type Thermalizing interface {
	thermalizing()
	fmt.Stringer
}

// LocalThermalizing couples every site to the bath; one operator per
// distinct eigenenergy gap and site.
type LocalThermalizing struct{}

// GlobalThermalizing couples every ordered pair of distinct eigenstates.
type GlobalThermalizing struct{}

func (LocalThermalizing) thermalizing()  {}
func (GlobalThermalizing) thermalizing() {}

func (LocalThermalizing) String() string  { return "LocalThermalizing" }
func (GlobalThermalizing) String() string { return "GlobalThermalizing" }

// dephasingRate returns the rate of d and whether any operator is built.
func dephasingRate(d Dephasing) (float64, bool, error) {
	var rate float64
	switch v := d.(type) {
	case nil:
		return 0, false, nil
	case LocalDephasing:
		rate = v.Rate
	case GlobalDephasing:
		rate = v.Rate
	default:
		return 0, false, fmt.Errorf("%T: %w", d, ErrUnknownModel)
	}
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, false, fmt.Errorf("%s: %w", d, ErrNegativeRate)
	}

	return rate, rate != 0, nil
}

// Flags is the raw boolean/rate selection used by configuration files
// and the CLI.
type Flags struct {
	LocalDephasingRate  float64
	GlobalDephasingRate float64
	LocalThermalizing   bool
	GlobalThermalizing  bool
}

// FromFlags converts raw flags into the tagged variants. A zero rate
// selects no dephasing.
// Errors: ErrConflictingModels when both local and global dephasing (or
// both thermalizing models) are requested.
func FromFlags(f Flags) (Dephasing, Thermalizing, error) {
	var deph Dephasing
	switch {
	case f.LocalDephasingRate != 0 && f.GlobalDephasingRate != 0:
		return nil, nil, fmt.Errorf("local (%g) and global (%g) dephasing: %w",
			f.LocalDephasingRate, f.GlobalDephasingRate, ErrConflictingModels)
	case f.LocalDephasingRate != 0:
		deph = LocalDephasing{Rate: f.LocalDephasingRate}
	case f.GlobalDephasingRate != 0:
		deph = GlobalDephasing{Rate: f.GlobalDephasingRate}
	}

	var therm Thermalizing
	switch {
	case f.LocalThermalizing && f.GlobalThermalizing:
		return nil, nil, fmt.Errorf("local and global thermalizing: %w", ErrConflictingModels)
	case f.LocalThermalizing:
		therm = LocalThermalizing{}
	case f.GlobalThermalizing:
		therm = GlobalThermalizing{}
	}

	return deph, therm, nil
}
