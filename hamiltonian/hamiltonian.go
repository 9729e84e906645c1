// SPDX-License-Identifier: MIT

package hamiltonian

import (
	"context"
	"fmt"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/topology"
	"github.com/katalvlaran/qdna/units"
)

const (
	opNew            = "New"
	opEigensystem    = "Eigensystem"
	opWithUnit       = "WithUnit"
	opWithSource     = "WithSource"
	opWithInteract   = "WithInteraction"
	opWithRelaxation = "WithRelaxation"
)

// Hamiltonian is an immutable tight-binding Hamiltonian of one sequence on
// one topology.
type Hamiltonian struct {
	model  *topology.Model
	seq    *sequence.Sequence
	src    params.Source
	cfg    Config
	tables map[basis.Particle]params.Table
	m      *matrix.Dense
}

// New loads the parameter tables for the configured source and builds the
// Hamiltonian of seq on model.
//
// Implementation:
//   - Stage 1: resolve and validate the configuration (defaults: 2P,
//     Simserides2014, 100meV, no interaction, relaxation on).
//   - Stage 2: load the electron and hole tables (1P: only the configured
//     carrier) for Key{source, particle, model name}, converted to the unit.
//   - Stage 3: build the 1P or 2P matrix, add the interaction, then the
//     ground state.
//
// Errors: configuration errors from Config.Validate, ErrNilInput,
// ErrSequenceMismatch, ErrMissingParameter, and any error of src.
func New(ctx context.Context, model *topology.Model, seq *sequence.Sequence, src params.Source, opts ...Option) (*Hamiltonian, error) {
	if src == nil {
		return nil, hamErrorf(opNew, ErrNilInput)
	}
	if err := checkInputs(model, seq); err != nil {
		return nil, hamErrorf(opNew, err)
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, hamErrorf(opNew, err)
	}
	h := &Hamiltonian{model: model, seq: seq, src: src, cfg: cfg}
	if h.tables, err = h.loadTables(ctx); err != nil {
		return nil, hamErrorf(opNew, err)
	}
	if h.m, err = h.build(); err != nil {
		return nil, hamErrorf(opNew, err)
	}

	return h, nil
}

// carriers returns the particles whose tables the description needs.
func (h *Hamiltonian) carriers() []basis.Particle {
	if h.cfg.Description == OneParticle {
		return []basis.Particle{h.cfg.Particle()}
	}

	return []basis.Particle{basis.Electron, basis.Hole}
}

func (h *Hamiltonian) loadTables(ctx context.Context) (map[basis.Particle]params.Table, error) {
	out := make(map[basis.Particle]params.Table, 2)
	for _, p := range h.carriers() {
		key := params.Key{Source: h.cfg.Source, Particle: string(p), Model: h.model.Name()}
		t, err := h.src.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		if out[p], err = t.Convert(h.cfg.Unit); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (h *Hamiltonian) build() (*matrix.Dense, error) {
	if h.cfg.Description == OneParticle {
		return Matrix1P(h.model, h.seq, h.tables[h.cfg.Particle()])
	}
	m, err := Matrix2P(h.model, h.seq, h.tables[basis.Electron], h.tables[basis.Hole])
	if err != nil {
		return nil, err
	}
	if h.cfg.Interaction != 0 {
		if m, err = AddInteraction(m, h.model.Indexer(), h.cfg.Interaction, h.cfg.NNCutoff); err != nil {
			return nil, err
		}
	}
	if h.cfg.Relaxation {
		return matrix.AddGroundstate(m)
	}

	return m, nil
}

// clone returns a shallow copy sharing the immutable model, sequence,
// source and tables.
func (h *Hamiltonian) clone() *Hamiltonian {
	c := *h
	c.cfg.Particles = append([]basis.Particle{}, h.cfg.Particles...)

	return &c
}

// Matrix returns a copy of the Hamiltonian matrix.
func (h *Hamiltonian) Matrix() *matrix.Dense { return h.m.Copy() }

// Dim returns the matrix dimension: N (1P), N² (2P) or N²+1 (2P with
// relaxation).
func (h *Hamiltonian) Dim() int { return h.m.Rows() }

// Config returns a copy of the resolved configuration.
func (h *Hamiltonian) Config() Config {
	c := h.cfg
	c.Particles = append([]basis.Particle{}, h.cfg.Particles...)

	return c
}

// Description returns 1P or 2P.
func (h *Hamiltonian) Description() Description { return h.cfg.Description }

// Particles returns the configured particles.
func (h *Hamiltonian) Particles() []basis.Particle {
	return append([]basis.Particle{}, h.cfg.Particles...)
}

// Source returns the parameter source name.
func (h *Hamiltonian) Source() string { return h.cfg.Source }

// Unit returns the energy unit of the matrix.
func (h *Hamiltonian) Unit() units.Unit { return h.cfg.Unit }

// Interaction returns J in Unit() and the nearest-neighbour cutoff flag.
func (h *Hamiltonian) Interaction() (float64, bool) { return h.cfg.Interaction, h.cfg.NNCutoff }

// Relaxation reports whether the ground state is present at index 0.
func (h *Hamiltonian) Relaxation() bool { return h.cfg.Relaxation }

// Model returns the topology.
func (h *Hamiltonian) Model() *topology.Model { return h.model }

// Sequence returns the bound sequence.
func (h *Hamiltonian) Sequence() *sequence.Sequence { return h.seq }

// Indexer returns the site indexer of the topology.
func (h *Hamiltonian) Indexer() basis.Indexer { return h.model.Indexer() }

// Backbone reports whether the topology has backbone strands.
func (h *Hamiltonian) Backbone() bool { return h.model.Properties().Backbone }

// Table returns the parameter table of a carrier in Unit().
func (h *Hamiltonian) Table(p basis.Particle) (params.Table, bool) {
	t, ok := h.tables[p]
	return t, ok
}

// String implements fmt.Stringer.
func (h *Hamiltonian) String() string {
	return fmt.Sprintf("Hamiltonian(%s, %s, %s, %s, %s)",
		h.seq, h.model.Name(), h.cfg.Description, h.cfg.Source, h.cfg.Unit)
}

// Eigensystem diagonalizes the matrix without the ground state. Values
// are ascending; column k of the returned matrix is the eigenvector of
// value k.
// Errors: matrix.ErrMatrixEigenFailed.
func (h *Hamiltonian) Eigensystem() ([]float64, *matrix.Dense, error) {
	m := h.m
	if h.cfg.Relaxation {
		var err error
		if m, err = matrix.DeleteGroundstate(m); err != nil {
			return nil, nil, hamErrorf(opEigensystem, err)
		}
	}
	vals, vecs, err := matrix.EigenSym(m)
	if err != nil {
		return nil, nil, hamErrorf(opEigensystem, err)
	}

	return vals, vecs, nil
}

// WithUnit returns the Hamiltonian expressed in unit u: the matrix, J and
// the parameter tables are rescaled by the conversion ratio.
// Errors: units.ErrUnknownUnit.
func (h *Hamiltonian) WithUnit(u units.Unit) (*Hamiltonian, error) {
	ratio, err := units.Conversion(h.cfg.Unit, u)
	if err != nil {
		return nil, hamErrorf(opWithUnit, err)
	}
	out := h.clone()
	out.cfg.Unit = u
	out.cfg.Interaction *= ratio
	if out.m, err = matrix.Scale(h.m, ratio); err != nil {
		return nil, hamErrorf(opWithUnit, err)
	}
	out.tables = make(map[basis.Particle]params.Table, len(h.tables))
	for p, t := range h.tables {
		if out.tables[p], err = t.Convert(u); err != nil {
			return nil, hamErrorf(opWithUnit, err)
		}
	}

	return out, nil
}

// WithSource reloads the tables from another publication and rebuilds.
// Errors: ErrNoSource, ErrMissingParameter, and any error of the source.
func (h *Hamiltonian) WithSource(ctx context.Context, name string) (*Hamiltonian, error) {
	if name == "" {
		return nil, hamErrorf(opWithSource, ErrNoSource)
	}
	out := h.clone()
	out.cfg.Source = name
	var err error
	if out.tables, err = out.loadTables(ctx); err != nil {
		return nil, hamErrorf(opWithSource, err)
	}
	if out.m, err = out.build(); err != nil {
		return nil, hamErrorf(opWithSource, err)
	}

	return out, nil
}

// WithInteraction rebuilds with interaction J (in Unit()) and cutoff.
// Errors: ErrRequiresTwoParticle on a 1P Hamiltonian.
func (h *Hamiltonian) WithInteraction(j float64, nnCutoff bool) (*Hamiltonian, error) {
	if h.cfg.Description != TwoParticle {
		return nil, hamErrorf(opWithInteract, ErrRequiresTwoParticle)
	}
	out := h.clone()
	out.cfg.Interaction, out.cfg.NNCutoff = j, nnCutoff
	var err error
	if out.m, err = out.build(); err != nil {
		return nil, hamErrorf(opWithInteract, err)
	}

	return out, nil
}

// WithRelaxation adds or removes the ground state at index 0. The
// remaining block is carried over unchanged.
// Errors: ErrRequiresTwoParticle when enabling relaxation on 1P.
func (h *Hamiltonian) WithRelaxation(on bool) (*Hamiltonian, error) {
	if on == h.cfg.Relaxation {
		return h.clone(), nil
	}
	if on && h.cfg.Description != TwoParticle {
		return nil, hamErrorf(opWithRelaxation, ErrRequiresTwoParticle)
	}
	out := h.clone()
	out.cfg.Relaxation = on
	var err error
	if on {
		out.m, err = matrix.AddGroundstate(h.m)
	} else {
		out.m, err = matrix.DeleteGroundstate(h.m)
	}
	if err != nil {
		return nil, hamErrorf(opWithRelaxation, err)
	}

	return out, nil
}
