// SPDX-License-Identifier: MIT
// Package: qdna/topology
//
// api.go - public entry points: Build (named), Compose and Custom (escape hatch).
//
// Design contract:
//   - One orchestrator (Compose) validates dims, runs constructors in order and
//     validates every emitted term; Build and Custom are thin front-ends.
//   - Model is immutable; accessors return copies.
//   - Errors are sentinels wrapped with context; nothing panics.

package topology

import (
	"fmt"

	"github.com/katalvlaran/qdna/basis"
)

const (
	methodBuild   = "Build"
	methodCompose = "Compose"
	methodCustom  = "Custom"
)

// Model is an immutable coupling topology over a fixed basis.
type Model struct {
	name    string
	props   Properties
	indexer basis.Indexer
	terms   []Term
}

// Name returns the topology name ("ELM", or the custom name).
func (m *Model) Name() string { return m.name }

// Properties returns the structural properties.
func (m *Model) Properties() Properties { return m.props }

// Dims returns (strands, sites per strand).
func (m *Model) Dims() basis.Dims { return m.indexer.Dims() }

// Indexer returns the site indexer for the model's dims.
func (m *Model) Indexer() basis.Indexer { return m.indexer }

// Size returns the number of sites N.
func (m *Model) Size() int { return m.indexer.Size() }

// Terms returns a copy of the ordered coupling terms.
func (m *Model) Terms() []Term {
	out := make([]Term, len(m.terms))
	copy(out, m.terms)

	return out
}

// constructorsFor maps each named topology to its composition.
func constructorsFor(name Name) []Constructor {
	switch name {
	case WM:
		return []Constructor{Wire(0, false)}
	case LM:
		return []Constructor{Ladder(0, 1)}
	case ELM:
		return []Constructor{ExtendedLadder(0, 1)}
	case FWM:
		return []Constructor{Fishbone(0, 2), Wire(1, false)}
	case FLM:
		return []Constructor{Fishbone(0, 3), Ladder(1, 2)}
	case FELM:
		return []Constructor{Fishbone(0, 3), ExtendedLadder(1, 2)}
	case FC:
		return append(constructorsFor(FELM), BackboneHops(0), BackboneHops(3))
	}

	return nil
}

// Build returns the named topology for dims.
//
// Implementation:
//   - Stage 1: resolve the name (ErrUnknownModel).
//   - Stage 2: dims.Strands must equal the name's fixed strand count
//     (ErrStrandMismatch); dims.Sites ≥ 1 (ErrTooFewSites).
//   - Stage 3: Compose the name's constructors.
//
// Complexity: O(strands*sites).
func Build(name Name, dims basis.Dims) (*Model, error) {
	props, err := PropertiesOf(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodBuild, err)
	}
	if dims.Strands != props.Strands {
		return nil, topologyErrorf(methodBuild, "%s needs %d strands, got %s: %w",
			name, props.Strands, dims, ErrStrandMismatch)
	}

	return Compose(string(name), dims, props, constructorsFor(name)...)
}

// Compose validates dims and runs the constructors in order. It is the
// escape hatch for topologies assembled from the primitives at custom
// strand offsets. props.Strands of 0 means "take dims.Strands".
func Compose(name string, dims basis.Dims, props Properties, cons ...Constructor) (*Model, error) {
	if dims.Sites < 1 {
		return nil, topologyErrorf(methodCompose, "%s sites=%d: %w", name, dims.Sites, ErrTooFewSites)
	}
	if props.Strands == 0 {
		props.Strands = dims.Strands
	}
	if dims.Strands != props.Strands {
		return nil, topologyErrorf(methodCompose, "%s needs %d strands, got %s: %w",
			name, props.Strands, dims, ErrStrandMismatch)
	}
	idx, err := basis.NewIndexer(dims.Strands, dims.Sites)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodCompose, err)
	}

	var terms []Term
	for i, c := range cons {
		if c == nil {
			return nil, topologyErrorf(methodCompose, "nil constructor at index %d: %w", i, ErrInvalidTerm)
		}
		ts, err := c(dims)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodCompose, err)
		}
		terms = append(terms, ts...)
	}

	return newModel(name, props, idx, terms)
}

// Custom builds a model from an explicit term list. Every term is checked
// against dims; on-site terms must have target == source.
func Custom(name string, dims basis.Dims, props Properties, terms []Term) (*Model, error) {
	if name == "" {
		return nil, topologyErrorf(methodCustom, "empty name: %w", ErrUnknownModel)
	}
	fixed := append([]Term(nil), terms...)
	m, err := Compose(name, dims, props, func(basis.Dims) ([]Term, error) { return fixed, nil })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodCustom, err)
	}

	return m, nil
}

func newModel(name string, props Properties, idx basis.Indexer, terms []Term) (*Model, error) {
	for _, t := range terms {
		if !t.Tag.Valid() {
			return nil, topologyErrorf(methodCompose, "%s: unknown tag: %w", t, ErrInvalidTerm)
		}
		if !idx.Contains(t.Target) || !idx.Contains(t.Source) {
			return nil, topologyErrorf(methodCompose, "%s outside %s: %w", t, idx.Dims(), ErrInvalidTerm)
		}
		if t.Tag == OnSite && t.Target != t.Source {
			return nil, topologyErrorf(methodCompose, "%s: on-site term spans two sites: %w", t, ErrInvalidTerm)
		}
	}

	return &Model{name: name, props: props, indexer: idx, terms: terms}, nil
}
