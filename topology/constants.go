// SPDX-License-Identifier: MIT
// Package: qdna/topology
//
// constants.go - model names, coupling tags and the fixed per-name properties.

package topology

import (
	"fmt"
	"strings"
)

// Name is one of the named coupling topologies.
type Name string

// Named topologies.
const (
	WM   Name = "WM"   // wire
	LM   Name = "LM"   // ladder
	ELM  Name = "ELM"  // extended ladder
	FWM  Name = "FWM"  // fishbone wire
	FLM  Name = "FLM"  // fishbone ladder
	FELM Name = "FELM" // fishbone extended ladder
	FC   Name = "FC"   // fully connected
)

// Tag classifies a coupling term and prefixes its parameter key.
type Tag string

// Coupling tags.
const (
	OnSite    Tag = "E"  // on-site energy
	Hop       Tag = "t"  // intra-strand hopping
	Rung      Tag = "h"  // inter-strand or backbone hopping
	DiagPlus  Tag = "r+" // diagonal hop (s1,k)-(s2,k+1)
	DiagMinus Tag = "r-" // diagonal hop (s1,k+1)-(s2,k)
)

// Valid reports whether t is a known tag.
func (t Tag) Valid() bool {
	switch t {
	case OnSite, Hop, Rung, DiagPlus, DiagMinus:
		return true
	}
	return false
}

// Properties are the fixed structural facts of a topology.
type Properties struct {
	Strands        int  // required strand count (backbone strands included)
	Backbone       bool // flanking backbone strands at both ends
	DoubleStranded bool // carries a complementary lower strand
	Diagonal       bool // has r+/r- diagonal hopping
}

var registry = map[Name]Properties{
	WM:   {Strands: 1},
	LM:   {Strands: 2, DoubleStranded: true},
	ELM:  {Strands: 2, DoubleStranded: true, Diagonal: true},
	FWM:  {Strands: 3, Backbone: true},
	FLM:  {Strands: 4, Backbone: true, DoubleStranded: true},
	FELM: {Strands: 4, Backbone: true, DoubleStranded: true, Diagonal: true},
	FC:   {Strands: 4, Backbone: true, DoubleStranded: true, Diagonal: true},
}

// Names returns every named topology in canonical order.
func Names() []Name { return []Name{WM, LM, ELM, FWM, FLM, FELM, FC} }

// ParseName accepts a topology name case-insensitively.
// Errors: ErrUnknownModel.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := registry[n]; !ok {
		return "", fmt.Errorf("ParseName(%q): %w", s, ErrUnknownModel)
	}

	return n, nil
}

// PropertiesOf returns the fixed properties of a named topology.
// Errors: ErrUnknownModel.
func PropertiesOf(name Name) (Properties, error) {
	p, ok := registry[name]
	if !ok {
		return Properties{}, fmt.Errorf("PropertiesOf(%q): %w", string(name), ErrUnknownModel)
	}

	return p, nil
}
