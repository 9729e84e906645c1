// SPDX-License-Identifier: MIT

package storage

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qdna/qerr"
)

var (
	// ErrNotFound indicates no record matches the id or name.
	ErrNotFound = errors.New("storage: record not found")

	// ErrExists indicates a record with the same id is already stored.
	ErrExists = errors.New("storage: record already exists")

	// ErrInvalidRecord indicates an empty name or an unencodable payload.
	ErrInvalidRecord = fmt.Errorf("storage: invalid record: %w", qerr.ErrConfiguration)

	// ErrUnsupportedBackend indicates an unknown NewStore kind or a
	// missing sqlite path.
	ErrUnsupportedBackend = fmt.Errorf("storage: unsupported backend: %w", qerr.ErrConfiguration)

	// ErrNotInitialized indicates a call before Init or after Close.
	ErrNotInitialized = errors.New("storage: store is not initialized")
)

func storeErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
