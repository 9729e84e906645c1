// SPDX-License-Identifier: MIT

package dissipator

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrConflictingModels indicates both local and global dephasing, or
	// both local and global thermalizing, in one request.
	ErrConflictingModels = fmt.Errorf("dissipator: conflicting bath models: %w", qerr.ErrConfiguration)

	// ErrUnknownModel indicates a Dephasing or Thermalizing value of a
	// foreign type.
	ErrUnknownModel = fmt.Errorf("dissipator: unknown bath model: %w", qerr.ErrConfiguration)

	// ErrNegativeRate indicates a negative or non-finite rate.
	ErrNegativeRate = fmt.Errorf("dissipator: rates must be finite and >= 0: %w", qerr.ErrConfiguration)

	// ErrInvalidBath indicates unusable Redfield bath parameters.
	ErrInvalidBath = fmt.Errorf("dissipator: invalid bath: %w", qerr.ErrConfiguration)

	// ErrNoGroundstate indicates a ground-state observable requested from
	// a Hamiltonian without relaxation.
	ErrNoGroundstate = fmt.Errorf("dissipator: no ground state: %w", qerr.ErrConfiguration)

	// ErrForeignOperator indicates an Operator that was not built by the
	// Dissipator it is handed to.
	ErrForeignOperator = errors.New("dissipator: operator does not belong to this dissipator")

	// ErrNilHamiltonian indicates a nil Hamiltonian.
	ErrNilHamiltonian = errors.New("dissipator: nil hamiltonian")
)

func dissErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
