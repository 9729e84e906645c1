// SPDX-License-Identifier: MIT

package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one stored result.
type Record struct {
	// ID is assigned by Save when nil.
	ID uuid.UUID
	// Name groups the versions of one result.
	Name string
	// Version starts at 1 and is assigned by Save.
	Version int
	// CreatedAt is assigned by Save, millisecond precision, UTC.
	CreatedAt time.Time
	Data      map[string]any
	Metadata  map[string]string
}

// Name joins non-empty parts with "_".
func Name(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, "_")
}

// String renders "name@v3 (id)".
func (r Record) String() string { return fmt.Sprintf("%s@v%d (%s)", r.Name, r.Version, r.ID) }

type payload struct {
	Data     map[string]any    `json:"data"`
	Metadata map[string]string `json:"metadata"`
}

func encodePayload(r Record) ([]byte, error) {
	raw, err := json.Marshal(payload{Data: r.Data, Metadata: r.Metadata})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	return raw, nil
}

func decodePayload(raw []byte, r *Record) error {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("decode %s: %w", r.ID, err)
	}
	r.Data, r.Metadata = p.Data, p.Metadata

	return nil
}

// prepare validates r and fills the fields Save assigns, except Version.
func prepare(r Record, now time.Time) (Record, []byte, error) {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return Record{}, nil, fmt.Errorf("empty name: %w", ErrInvalidRecord)
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = now.UTC().Truncate(time.Millisecond)
	raw, err := encodePayload(r)
	if err != nil {
		return Record{}, nil, err
	}

	return r, raw, nil
}
