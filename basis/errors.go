// SPDX-License-Identifier: MIT

package basis

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrOutOfRange is returned when an index, site or pair lies outside the
	// (strands, sites) dimensions of the indexer.
	ErrOutOfRange = errors.New("basis: out of range")

	// ErrBadLabel is returned when a label is not of the form "(s, i)".
	ErrBadLabel = errors.New("basis: malformed site label")

	// ErrInvalidDims is returned for non-positive strand or site counts.
	ErrInvalidDims = fmt.Errorf("basis: dimensions must be > 0: %w", qerr.ErrConfiguration)

	// ErrUnknownParticle is returned for particle names other than electron,
	// hole and exciton.
	ErrUnknownParticle = fmt.Errorf("basis: unknown particle: %w", qerr.ErrConfiguration)
)

// basisErrorf attaches an operation tag and the offending value.
func basisErrorf(op string, v any, err error) error {
	return fmt.Errorf("%s(%v): %w", op, v, err)
}
