// SPDX-License-Identifier: MIT

package hamiltonian

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrMissingParameter indicates a coupling key absent from the table,
	// including its reversed-base fallback.
	ErrMissingParameter = fmt.Errorf("hamiltonian: missing tight-binding parameter: %w", qerr.ErrConfiguration)

	// ErrUnknownDescription indicates a description other than 1P or 2P.
	ErrUnknownDescription = fmt.Errorf("hamiltonian: unknown description: %w", qerr.ErrConfiguration)

	// ErrInvalidParticles indicates a particle list that does not fit the
	// description (1P needs exactly electron or hole).
	ErrInvalidParticles = fmt.Errorf("hamiltonian: invalid particles: %w", qerr.ErrConfiguration)

	// ErrNoSource indicates an empty parameter source name.
	ErrNoSource = fmt.Errorf("hamiltonian: no parameter source: %w", qerr.ErrConfiguration)

	// ErrRequiresTwoParticle indicates an interaction or relaxation request
	// on a 1P Hamiltonian.
	ErrRequiresTwoParticle = fmt.Errorf("hamiltonian: operation requires the 2P description: %w", qerr.ErrConfiguration)

	// ErrSequenceMismatch indicates a sequence whose dims differ from the model's.
	ErrSequenceMismatch = fmt.Errorf("hamiltonian: sequence does not fit the model: %w", qerr.ErrConfiguration)

	// ErrNilInput indicates a nil model, sequence or parameter source.
	ErrNilInput = errors.New("hamiltonian: nil input")
)

// hamErrorf prefixes err with the operation tag.
func hamErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
