// SPDX-License-Identifier: MIT

package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	rec Record
	raw []byte
}

// MemoryStore keeps records in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	byID        map[uuid.UUID]memoryEntry
	byName      map[string][]uuid.UUID
	now         func() time.Time
}

// NewMemoryStore returns an uninitialized memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Init implements Store. Records saved before a second Init are kept.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true
	s.byID = make(map[uuid.UUID]memoryEntry)
	s.byName = make(map[string][]uuid.UUID)

	return nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, r Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, storeErrorf(opSave, err)
	}
	r, raw, err := prepare(r, s.now())
	if err != nil {
		return Record{}, storeErrorf(opSave, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return Record{}, storeErrorf(opSave, ErrNotInitialized)
	}
	if _, ok := s.byID[r.ID]; ok {
		return Record{}, fmt.Errorf("%s: %s: %w", opSave, r.ID, ErrExists)
	}
	r.Version = len(s.byName[r.Name]) + 1
	s.byID[r.ID] = memoryEntry{rec: Record{ID: r.ID, Name: r.Name, Version: r.Version, CreatedAt: r.CreatedAt}, raw: raw}
	s.byName[r.Name] = append(s.byName[r.Name], r.ID)

	return s.decode(r.ID)
}

// decode returns a fresh copy of the stored record; caller holds mu.
func (s *MemoryStore) decode(id uuid.UUID) (Record, error) {
	e := s.byID[id]
	out := e.rec
	if err := decodePayload(e.raw, &out); err != nil {
		return Record{}, err
	}

	return out, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Record{}, storeErrorf(opGet, ErrNotInitialized)
	}
	if _, ok := s.byID[id]; !ok {
		return Record{}, fmt.Errorf("%s: %s: %w", opGet, id, ErrNotFound)
	}
	r, err := s.decode(id)
	if err != nil {
		return Record{}, storeErrorf(opGet, err)
	}

	return r, nil
}

// Latest implements Store.
func (s *MemoryStore) Latest(_ context.Context, name string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Record{}, storeErrorf(opLatest, ErrNotInitialized)
	}
	ids := s.byName[strings.TrimSpace(name)]
	if len(ids) == 0 {
		return Record{}, fmt.Errorf("%s: %q: %w", opLatest, name, ErrNotFound)
	}
	r, err := s.decode(ids[len(ids)-1])
	if err != nil {
		return Record{}, storeErrorf(opLatest, err)
	}

	return r, nil
}

// List implements Store. An unknown name yields an empty slice.
func (s *MemoryStore) List(_ context.Context, name string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, storeErrorf(opList, ErrNotInitialized)
	}
	ids := s.byName[strings.TrimSpace(name)]
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		r, err := s.decode(id)
		if err != nil {
			return nil, storeErrorf(opList, err)
		}
		out = append(out, r)
	}

	return out, nil
}

// Close drops every record.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = false
	s.byID, s.byName = nil, nil

	return nil
}
