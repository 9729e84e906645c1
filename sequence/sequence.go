// SPDX-License-Identifier: MIT

// Package sequence binds DNA letters to tight-binding sites.
//
// From an upper strand it derives the lower strand by base pairing
// (A↔T, G↔C, methylated cytosine c→G), applies methylation (every "cG" at
// position i in the upper strand puts c at lower[i+1]) and adds backbone
// strands of the filler base "B" when the topology has a backbone.
//
// Strand order matches the basis indexer's strand numbering:
//
//	backbone + double-stranded: (B, upper, lower, B)
//	double-stranded:            (upper, lower)
//	backbone:                   (B, upper, B)
//	otherwise:                  (upper)
package sequence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/topology"
)

// Backbone is the filler base of backbone strands.
const Backbone = "B"

// methylMarker is the methylated cytosine symbol.
const methylMarker = 'c'

var (
	// ErrUnknownBase indicates a letter outside A, T, G, C and c.
	ErrUnknownBase = fmt.Errorf("sequence: unknown base: %w", qerr.ErrConfiguration)

	// ErrLengthMismatch indicates an empty upper strand or one whose length
	// differs from the topology's sites per strand.
	ErrLengthMismatch = fmt.Errorf("sequence: length mismatch: %w", qerr.ErrConfiguration)

	// ErrNilModel indicates a nil topology model.
	ErrNilModel = errors.New("sequence: nil model")
)

var complement = map[rune]rune{
	'A': 'T',
	'T': 'A',
	'G': 'C',
	'C': 'G',
	'c': 'G',
}

// Bases returns the DNA alphabet accepted in an upper strand.
func Bases() []string { return []string{"A", "T", "G", "C", "c"} }

// Option configures sequence construction.
type Option func(*options)

type options struct {
	methylated bool
}

func gatherOptions(opts ...Option) options {
	o := options{methylated: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithMethylation toggles the methylation step (default on).
func WithMethylation(on bool) Option {
	return func(o *options) { o.methylated = on }
}

// Sequence is an immutable DNA sequence laid out on a topology's strands.
type Sequence struct {
	upper      string
	lower      string
	strands    []string
	props      topology.Properties
	methylated bool
}

// New builds the sequence for a named topology; the sites per strand are
// taken from len(upper).
// Errors: topology.ErrUnknownModel, ErrUnknownBase, ErrLengthMismatch.
func New(upper string, name topology.Name, opts ...Option) (*Sequence, error) {
	props, err := topology.PropertiesOf(name)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	return build(upper, props, opts...)
}

// Bind builds the sequence for an already constructed model and checks that
// len(upper) equals its sites per strand.
// Errors: ErrNilModel, ErrUnknownBase, ErrLengthMismatch.
func Bind(upper string, model *topology.Model, opts ...Option) (*Sequence, error) {
	if model == nil {
		return nil, fmt.Errorf("Bind(%q): %w", upper, ErrNilModel)
	}
	if len(upper) != model.Dims().Sites {
		return nil, fmt.Errorf("Bind(%q): %d bases for %d sites per strand: %w",
			upper, len(upper), model.Dims().Sites, ErrLengthMismatch)
	}

	return build(upper, model.Properties(), opts...)
}

func build(upper string, props topology.Properties, opts ...Option) (*Sequence, error) {
	if upper == "" {
		return nil, fmt.Errorf("empty upper strand: %w", ErrLengthMismatch)
	}
	for i, r := range upper {
		if _, ok := complement[r]; !ok {
			return nil, fmt.Errorf("%q position %d (%q): %w", upper, i, r, ErrUnknownBase)
		}
	}
	o := gatherOptions(opts...)
	seq := &Sequence{upper: upper, props: props, methylated: o.methylated}

	if props.DoubleStranded {
		seq.lower = lowerStrand(upper, o.methylated)
	}
	backbone := strings.Repeat(Backbone, len(upper))
	switch {
	case props.DoubleStranded && props.Backbone:
		seq.strands = []string{backbone, upper, seq.lower, backbone}
	case props.DoubleStranded:
		seq.strands = []string{upper, seq.lower}
	case props.Backbone:
		seq.strands = []string{backbone, upper, backbone}
	default:
		seq.strands = []string{upper}
	}

	return seq, nil
}

// lowerStrand pairs every base and applies methylation.
func lowerStrand(upper string, methylated bool) string {
	lower := make([]rune, 0, len(upper))
	for _, r := range upper {
		lower = append(lower, complement[r])
	}
	if methylated {
		for i := 0; i+1 < len(upper); i++ {
			if upper[i] == methylMarker && upper[i+1] == 'G' {
				lower[i+1] = methylMarker
			}
		}
	}

	return string(lower)
}

// Upper returns the upper strand.
func (s *Sequence) Upper() string { return s.upper }

// Lower returns the lower strand ("" for single-stranded topologies).
func (s *Sequence) Lower() string { return s.lower }

// Methylated reports whether the methylation step was applied.
func (s *Sequence) Methylated() bool { return s.methylated }

// Strands returns a copy of the strands in basis order.
func (s *Sequence) Strands() []string { return append([]string(nil), s.strands...) }

// Dims returns (number of strands, sites per strand).
func (s *Sequence) Dims() basis.Dims {
	return basis.Dims{Strands: len(s.strands), Sites: len(s.upper)}
}

// Base returns the letter bound to site. Errors: basis.ErrOutOfRange.
func (s *Sequence) Base(site basis.Site) (string, error) {
	if site.Strand < 0 || site.Strand >= len(s.strands) || site.Index < 0 || site.Index >= len(s.upper) {
		return "", fmt.Errorf("Base(%s): %w", site, basis.ErrOutOfRange)
	}

	return s.strands[site.Strand][site.Index : site.Index+1], nil
}

// Sites returns the letters in linear basis order, so Sites()[k] sits on
// the k-th site of the indexer with the same dims.
func (s *Sequence) Sites() []string {
	out := make([]string, 0, len(s.strands)*len(s.upper))
	for _, strand := range s.strands {
		for i := 0; i < len(strand); i++ {
			out = append(out, strand[i:i+1])
		}
	}

	return out
}

// String renders the strands joined by "/".
func (s *Sequence) String() string { return strings.Join(s.strands, "/") }
