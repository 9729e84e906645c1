// SPDX-License-Identifier: MIT

package dynamics

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrResolution indicates a time grid with t_steps/t_end ≤ 1/2.
	ErrResolution = fmt.Errorf("dynamics: time grid cannot resolve the window: %w", qerr.ErrNumericGuard)

	// ErrInvalidGrid indicates t_end ≤ 0 or fewer than two time points.
	ErrInvalidGrid = fmt.Errorf("dynamics: invalid time grid: %w", qerr.ErrConfiguration)

	// ErrInvalidInitialState indicates an initial state that does not fit
	// the Hamiltonian (unknown site, foreign variant).
	ErrInvalidInitialState = fmt.Errorf("dynamics: invalid initial state: %w", qerr.ErrConfiguration)

	// ErrIncompatible indicates a Dissipator built for another dimension.
	ErrIncompatible = fmt.Errorf("dynamics: dissipator does not match hamiltonian: %w", qerr.ErrConfiguration)

	// ErrParticleNotTracked indicates a particle outside the Hamiltonian's
	// particle list.
	ErrParticleNotTracked = fmt.Errorf("dynamics: particle not tracked: %w", qerr.ErrConfiguration)

	// ErrNoRelaxation reports that the ground-state population never
	// reached 1−1/e within the time window.
	ErrNoRelaxation = errors.New("dynamics: no relaxation in the given time")

	// ErrNilInput indicates a nil Hamiltonian or Dissipator.
	ErrNilInput = errors.New("dynamics: nil input")
)

func dynErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
