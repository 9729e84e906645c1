// SPDX-License-Identifier: MIT

package evaluation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrRequiresTwoParticle indicates a quantity that only exists for
	// electron-hole pairs.
	ErrRequiresTwoParticle = fmt.Errorf("evaluation: requires a 2P description: %w", qerr.ErrConfiguration)

	// ErrUnsupportedModel indicates a topology the quantity is not defined
	// for, e.g. backbone transfer on a model without backbone.
	ErrUnsupportedModel = fmt.Errorf("evaluation: not defined for this topology: %w", qerr.ErrConfiguration)

	// ErrNoDephasing indicates a dephasing equilibrium requested without a
	// dephasing model.
	ErrNoDephasing = fmt.Errorf("evaluation: no dephasing model: %w", qerr.ErrConfiguration)

	// ErrInvalidTemperature indicates a negative or non-finite temperature.
	ErrInvalidTemperature = fmt.Errorf("evaluation: temperature must be finite and >= 0: %w", qerr.ErrConfiguration)

	// ErrNilInput indicates a nil engine, Hamiltonian or matrix.
	ErrNilInput = errors.New("evaluation: nil input")
)

func evalErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
