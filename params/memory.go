// SPDX-License-Identifier: MIT

package params

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource serves tables registered with Put. It is safe for
// concurrent use.
type MemorySource struct {
	mu     sync.RWMutex
	tables map[Key]Table
}

// NewMemorySource returns a source holding the given tables, keyed by
// their metadata.
func NewMemorySource(tables ...Table) *MemorySource {
	m := &MemorySource{tables: make(map[Key]Table, len(tables))}
	for _, t := range tables {
		m.tables[t.Meta.Key()] = t
	}

	return m
}

// Put registers or replaces a table under its metadata key.
// Errors: ErrInvalidKey.
func (m *MemorySource) Put(t Table) error {
	key := t.Meta.Key()
	if err := key.Validate(); err != nil {
		return fmt.Errorf("Put: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[key] = t

	return nil
}

// Load implements Source.
func (m *MemorySource) Load(ctx context.Context, key Key) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[key]
	if !ok {
		return Table{}, fmt.Errorf("Load(%s): %w", key, ErrNotFound)
	}

	return t, nil
}

// Cached memoizes successful loads of src per key. Failed loads are not
// cached.
type Cached struct {
	src Source

	mu    sync.Mutex
	cache map[Key]Table
}

// NewCached wraps src.
func NewCached(src Source) *Cached {
	return &Cached{src: src, cache: make(map[Key]Table)}
}

// Load implements Source.
func (c *Cached) Load(ctx context.Context, key Key) (Table, error) {
	c.mu.Lock()
	t, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return t, nil
	}
	t, err := c.src.Load(ctx, key)
	if err != nil {
		return Table{}, err
	}
	c.mu.Lock()
	c.cache[key] = t
	c.mu.Unlock()

	return t, nil
}
