// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Backend names accepted by NewStore.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

const (
	opInit   = "Init"
	opSave   = "Save"
	opGet    = "Get"
	opLatest = "Latest"
	opList   = "List"
)

// Store persists versioned records.
type Store interface {
	// Init prepares the backend. It is idempotent.
	Init(ctx context.Context) error
	// Save stores r as the next version of r.Name and returns it with ID,
	// Version and CreatedAt filled in.
	Save(ctx context.Context, r Record) (Record, error)
	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (Record, error)
	// Latest returns the highest version of name, or ErrNotFound.
	Latest(ctx context.Context, name string) (Record, error)
	// List returns every version of name in ascending order.
	List(ctx context.Context, name string) ([]Record, error)
	Close() error
}

// NewStore returns an uninitialized store for kind ("" means memory).
// Errors: ErrUnsupportedBackend.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		if strings.TrimSpace(sqlitePath) == "" {
			return nil, fmt.Errorf("sqlite path is required: %w", ErrUnsupportedBackend)
		}
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnsupportedBackend)
	}
}
