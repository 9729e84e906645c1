// SPDX-License-Identifier: MIT

// Package params provides coupling-parameter tables for the Hamiltonian
// builder.
//
// A Table maps coupling keys to values in one energy unit:
//
//	E_G   on-site energy of guanine
//	t_GC  intra-strand hop from G to C
//	h_GC  inter-strand (or backbone) hop
//	r+_GC r-_GC  diagonal hops
//
// Tables are addressed by Key{Source, Particle, Model}. A Source loads
// them: FileSource reads JSON or YAML files, MemorySource serves tables
// registered in code, Cached memoizes any Source and Retrying wraps one
// with bounded exponential backoff.
package params

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/units"
)

var (
	// ErrNotFound indicates that no table exists for a key.
	ErrNotFound = fmt.Errorf("params: table not found: %w", qerr.ErrConfiguration)

	// ErrMalformed indicates a table file that cannot be decoded or whose
	// metadata contradicts the requested key.
	ErrMalformed = fmt.Errorf("params: malformed table: %w", qerr.ErrConfiguration)

	// ErrInvalidKey indicates a key with an empty component.
	ErrInvalidKey = fmt.Errorf("params: invalid key: %w", qerr.ErrConfiguration)

	// ErrExists indicates that Save would overwrite an existing table.
	ErrExists = errors.New("params: table already exists")
)

// Key addresses one parameter table.
type Key struct {
	Source   string // publication, e.g. "Hawke2010"
	Particle string // "electron", "hole" or "exciton"
	Model    string // topology name, e.g. "ELM"
}

// Filename returns the file stem "<source>_<particle>_<model>".
func (k Key) Filename() string {
	return strings.Join([]string{k.Source, k.Particle, k.Model}, "_")
}

// String implements fmt.Stringer.
func (k Key) String() string { return k.Filename() }

// Validate rejects keys with an empty component.
func (k Key) Validate() error {
	if k.Source == "" || k.Particle == "" || k.Model == "" {
		return fmt.Errorf("%q: %w", k.Filename(), ErrInvalidKey)
	}

	return nil
}

// Metadata describes a stored table.
type Metadata struct {
	Source   string     `json:"source" yaml:"source"`
	Particle string     `json:"particle" yaml:"particle"`
	Model    string     `json:"tb_model_name" yaml:"tb_model_name"`
	Unit     units.Unit `json:"unit,omitempty" yaml:"unit,omitempty"`
	Notes    string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Key returns the key the metadata describes.
func (m Metadata) Key() Key {
	return Key{Source: m.Source, Particle: m.Particle, Model: m.Model}
}

// Table is one coupling-parameter table.
type Table struct {
	Values map[string]float64
	Meta   Metadata
}

// NewTable builds a table for key in unit u. The values map is copied.
// Errors: ErrInvalidKey, units.ErrUnknownUnit.
func NewTable(key Key, u units.Unit, values map[string]float64) (Table, error) {
	if err := key.Validate(); err != nil {
		return Table{}, err
	}
	if !u.Valid() {
		return Table{}, fmt.Errorf("NewTable(%s): %q: %w", key, string(u), units.ErrUnknownUnit)
	}
	cp := make(map[string]float64, len(values))
	for k, v := range values {
		cp[k] = v
	}

	return Table{
		Values: cp,
		Meta:   Metadata{Source: key.Source, Particle: key.Particle, Model: key.Model, Unit: u},
	}, nil
}

// Unit returns the table's energy unit, defaulting to units.DefaultUnit.
func (t Table) Unit() units.Unit {
	if t.Meta.Unit == "" {
		return units.DefaultUnit
	}

	return t.Meta.Unit
}

// Get returns the value stored under key.
func (t Table) Get(key string) (float64, bool) {
	v, ok := t.Values[key]
	return v, ok
}

// Keys returns the stored keys in sorted order.
func (t Table) Keys() []string {
	out := make([]string, 0, len(t.Values))
	for k := range t.Values {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// Convert returns a copy of t with every value expressed in unit to.
// Errors: units.ErrUnknownUnit.
func (t Table) Convert(to units.Unit) (Table, error) {
	values, err := units.ConvertTable(t.Values, t.Unit(), to)
	if err != nil {
		return Table{}, fmt.Errorf("Convert(%s): %w", t.Meta.Key(), err)
	}
	meta := t.Meta
	meta.Unit = to

	return Table{Values: values, Meta: meta}, nil
}

// Source loads parameter tables.
type Source interface {
	Load(ctx context.Context, key Key) (Table, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, key Key) (Table, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context, key Key) (Table, error) { return f(ctx, key) }
