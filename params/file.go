// SPDX-License-Identifier: MIT

package params

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of a table.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// document is the on-disk shape shared by both formats.
type document struct {
	Data     map[string]float64 `json:"data" yaml:"data"`
	Metadata Metadata           `json:"metadata" yaml:"metadata"`
}

// extensions lists the lookup order of FileSource.
var extensions = []struct {
	ext    string
	format Format
}{
	{".json", JSON},
	{".yaml", YAML},
	{".yml", YAML},
}

// FileSource loads tables from <Dir>/<source>_<particle>_<model>.{json,yaml,yml}.
type FileSource struct {
	Dir string
}

// NewFileSource returns a source rooted at dir.
func NewFileSource(dir string) *FileSource { return &FileSource{Dir: dir} }

// Load implements Source.
// Errors: ErrInvalidKey, ErrNotFound, ErrMalformed, or the underlying I/O
// error for unreadable files.
func (s *FileSource) Load(ctx context.Context, key Key) (Table, error) {
	if err := key.Validate(); err != nil {
		return Table{}, fmt.Errorf("Load: %w", err)
	}
	for _, e := range extensions {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		path := filepath.Join(s.Dir, key.Filename()+e.ext)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Table{}, fmt.Errorf("Load(%s): %w", key, err)
		}

		return decode(raw, e.format, key, path)
	}

	return Table{}, fmt.Errorf("Load(%s) in %q: %w", key, s.Dir, ErrNotFound)
}

func decode(raw []byte, format Format, key Key, path string) (Table, error) {
	var doc document
	var err error
	switch format {
	case JSON:
		err = json.Unmarshal(raw, &doc)
	case YAML:
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%s: %v: %w", path, err, ErrMalformed)
	}
	if doc.Data == nil {
		return Table{}, fmt.Errorf("%s: no data section: %w", path, ErrMalformed)
	}

	meta := doc.Metadata
	if meta.Source == "" {
		meta.Source = key.Source
	}
	if meta.Particle == "" {
		meta.Particle = key.Particle
	}
	if meta.Model == "" {
		meta.Model = key.Model
	}
	if meta.Key() != key {
		return Table{}, fmt.Errorf("%s: metadata describes %s: %w", path, meta.Key(), ErrMalformed)
	}
	if meta.Unit != "" && !meta.Unit.Valid() {
		return Table{}, fmt.Errorf("%s: unit %q: %w", path, string(meta.Unit), ErrMalformed)
	}

	return Table{Values: doc.Data, Meta: meta}, nil
}

// Save writes t to dir as <source>_<particle>_<model>.<format> and returns
// the path. An existing file is never overwritten.
// Errors: ErrInvalidKey, ErrExists, ErrMalformed for an unknown format, or
// the underlying I/O error.
func Save(dir string, t Table, format Format) (string, error) {
	key := t.Meta.Key()
	if err := key.Validate(); err != nil {
		return "", fmt.Errorf("Save: %w", err)
	}
	doc := document{Data: t.Values, Metadata: t.Meta}
	doc.Metadata.Unit = t.Unit()

	var raw []byte
	var err error
	switch format {
	case JSON:
		raw, err = json.MarshalIndent(doc, "", "  ")
	case YAML:
		raw, err = yaml.Marshal(doc)
	default:
		return "", fmt.Errorf("Save(%s): format %q: %w", key, string(format), ErrMalformed)
	}
	if err != nil {
		return "", fmt.Errorf("Save(%s): %w", key, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("Save(%s): %w", key, err)
	}
	path := filepath.Join(dir, key.Filename()+"."+string(format))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("Save: %q: %w", path, ErrExists)
	}
	if err != nil {
		return "", fmt.Errorf("Save(%s): %w", key, err)
	}
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("Save(%s): %w", key, err)
	}

	return path, f.Close()
}
