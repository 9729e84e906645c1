// SPDX-License-Identifier: MIT

package hamiltonian

import (
	"fmt"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/topology"
)

const (
	opMatrix1P       = "Matrix1P"
	opMatrix2P       = "Matrix2P"
	opAddInteraction = "AddInteraction"
)

// InteractionDecay is the distance scale of the electron-hole interaction:
// J/(1 + InteractionDecay·d).
const InteractionDecay = 3.4

// ParameterKey returns the table key of a coupling with the given tag
// between the bases on the source and target site.
func ParameterKey(tag topology.Tag, sourceBase, targetBase string) string {
	if tag == topology.OnSite {
		return fmt.Sprintf("%s_%s", tag, sourceBase)
	}

	return fmt.Sprintf("%s_%s%s", tag, sourceBase, targetBase)
}

// Resolve looks up the value of term on seq in table. Coupling terms fall
// back to the reversed-base key; on-site terms have no fallback.
// Errors: ErrMissingParameter naming the direct key, basis.ErrOutOfRange.
func Resolve(table params.Table, term topology.Term, seq *sequence.Sequence) (float64, error) {
	src, err := seq.Base(term.Source)
	if err != nil {
		return 0, err
	}
	dst, err := seq.Base(term.Target)
	if err != nil {
		return 0, err
	}

	key := ParameterKey(term.Tag, src, dst)
	if v, ok := table.Get(key); ok {
		return v, nil
	}
	if term.Tag != topology.OnSite {
		if v, ok := table.Get(ParameterKey(term.Tag, dst, src)); ok {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%q (term %s, table %s): %w", key, term, table.Meta.Key(), ErrMissingParameter)
}

// setElement adds v at (target, source) and, off the diagonal, at
// (source, target).
func setElement(m *matrix.Dense, v float64, target, source int) error {
	if err := m.AddAt(target, source, v); err != nil {
		return err
	}
	if target != source {
		return m.AddAt(source, target, v)
	}

	return nil
}

func checkInputs(model *topology.Model, seq *sequence.Sequence) error {
	if model == nil || seq == nil {
		return ErrNilInput
	}
	if seq.Dims() != model.Dims() {
		return fmt.Errorf("sequence %s on model %s%s: %w", seq.Dims(), model.Name(), model.Dims(), ErrSequenceMismatch)
	}

	return nil
}

// Matrix1P builds the single-carrier tight-binding matrix (N×N).
//
// Implementation:
//   - Stage 1: check that seq fits model.
//   - Stage 2: for every term resolve its value (Resolve) and add it at
//     (target, source) and symmetrically at (source, target).
//
// Errors: ErrNilInput, ErrSequenceMismatch, ErrMissingParameter.
// Complexity: O(N² + terms).
func Matrix1P(model *topology.Model, seq *sequence.Sequence, table params.Table) (*matrix.Dense, error) {
	if err := checkInputs(model, seq); err != nil {
		return nil, hamErrorf(opMatrix1P, err)
	}
	idx := model.Indexer()
	m, err := matrix.NewDense(model.Size(), model.Size())
	if err != nil {
		return nil, hamErrorf(opMatrix1P, err)
	}
	for _, term := range model.Terms() {
		v, err := Resolve(table, term, seq)
		if err != nil {
			return nil, hamErrorf(opMatrix1P, err)
		}
		target, err := idx.SiteIndex(term.Target)
		if err != nil {
			return nil, hamErrorf(opMatrix1P, err)
		}
		source, err := idx.SiteIndex(term.Source)
		if err != nil {
			return nil, hamErrorf(opMatrix1P, err)
		}
		if err = setElement(m, v, target, source); err != nil {
			return nil, hamErrorf(opMatrix1P, err)
		}
	}

	return m, nil
}

// Matrix2P builds the electron-hole matrix H_e ⊗ I + I ⊗ H_h (N²×N²).
// Errors: as Matrix1P.
// Complexity: O(N⁴).
func Matrix2P(model *topology.Model, seq *sequence.Sequence, electron, hole params.Table) (*matrix.Dense, error) {
	he, err := Matrix1P(model, seq, electron)
	if err != nil {
		return nil, hamErrorf(opMatrix2P, err)
	}
	hh, err := Matrix1P(model, seq, hole)
	if err != nil {
		return nil, hamErrorf(opMatrix2P, err)
	}
	id, err := matrix.NewIdentity(model.Size())
	if err != nil {
		return nil, hamErrorf(opMatrix2P, err)
	}
	left, err := matrix.Kron(he, id)
	if err != nil {
		return nil, hamErrorf(opMatrix2P, err)
	}
	right, err := matrix.Kron(id, hh)
	if err != nil {
		return nil, hamErrorf(opMatrix2P, err)
	}
	sum, err := matrix.Add(left, right)
	if err != nil {
		return nil, hamErrorf(opMatrix2P, err)
	}

	return sum, nil
}

// AddInteraction returns a copy of the electron-hole matrix m with
// J/(1+3.4·d) added to the diagonal of every pair at distance d. With
// nnCutoff, pairs farther apart than one site get no interaction.
// m must not carry a ground state.
// Errors: matrix.ErrDimensionMismatch when m is not N²×N².
func AddInteraction(m *matrix.Dense, idx basis.Indexer, j float64, nnCutoff bool) (*matrix.Dense, error) {
	if m == nil {
		return nil, hamErrorf(opAddInteraction, matrix.ErrNilMatrix)
	}
	if m.Rows() != idx.EHSize() || m.Cols() != idx.EHSize() {
		return nil, fmt.Errorf("%s: %dx%d for %d pairs: %w",
			opAddInteraction, m.Rows(), m.Cols(), idx.EHSize(), matrix.ErrDimensionMismatch)
	}
	out := m.Copy()
	for k, d := range idx.EHDistances() {
		if nnCutoff && d > 1 {
			continue
		}
		if err := setElement(out, j/(1+InteractionDecay*d), k, k); err != nil {
			return nil, hamErrorf(opAddInteraction, err)
		}
	}

	return out, nil
}
