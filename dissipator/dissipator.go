// SPDX-License-Identifier: MIT

package dissipator

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/matrix"
	"github.com/katalvlaran/qdna/units"
)

const (
	opNew     = "New"
	opRescale = "Rescale"
)

// Kind labels the bath channel an Operator belongs to.
type Kind string

const (
	Relaxation        Kind = "relaxation"
	LocalDephasingOp  Kind = "local_dephasing"
	GlobalDephasingOp Kind = "global_dephasing"
	LocalThermalOp    Kind = "local_thermalizing"
	GlobalThermalOp   Kind = "global_thermalizing"
)

// Frame names the basis an Operator matrix is written in.
type Frame string

const (
	// SiteFrame is the site (1P) or electron-hole pair (2P) basis.
	SiteFrame Frame = "site"
	// EigenFrame is the eigenbasis of the Hamiltonian, ground state first
	// when present; Dissipator.Eigenbasis maps it to the site frame.
	EigenFrame Frame = "eigen"
)

// Operator is one Lindblad collapse operator: the channel acts as
// Weight·Op, so Weight² is the rate.
type Operator struct {
	Kind   Kind
	Frame  Frame
	Weight float64
	Op     *matrix.Sparse
}

// Rate returns Weight².
func (o Operator) Rate() float64 { return o.Weight * o.Weight }

// Weighted returns Weight·Op as a dense matrix in the operator's frame.
func (o Operator) Weighted() *matrix.CDense {
	out := o.Op.Dense()
	out.ScaleInPlace(complex(o.Weight, 0))

	return out
}

// Dissipator is the immutable set of collapse operators built for one
// Hamiltonian. Operators come in the order relaxation, dephasing,
// thermalizing. Weights are in the square root of Unit().
type Dissipator struct {
	ops          []Operator
	unit         units.Unit
	dim          int
	dephasing    Dephasing
	thermalizing Thermalizing
	bath         Bath
	relaxRates   map[string]float64
	relaxation   bool
	obs          *Observables
	eigen        *matrix.CDense
}

// New builds the collapse operators of ham.
//
// Implementation:
//   - Relaxation (only when ham.Relaxation()): for every site k with letter
//     b, √rate[b]·|0⟩⟨1+k(N+1)|, which drops the exciton at (k,k) to the
//     ground state. Zero or missing rates add nothing.
//   - Local dephasing: site projectors (electron and hole in 2P).
//   - Global dephasing: eigenstate projectors |v_i⟩⟨v_i|.
//   - Global thermalizing: |v_i⟩⟨v_j| for every i ≠ j with rate
//     Bath.Rate(ω_j − ω_i), the energy the jump releases. Gaps within the
//     gap tolerance count as 0.
//   - Local thermalizing: for every distinct gap g and every site m,
//     Σ_{ω_i−ω_j=g} conj(v_j[m])v_i[m]|v_j⟩⟨v_i| with rate Bath.Rate(g).
//     Gaps are grouped with the configured tolerance; identically zero
//     operators are skipped.
//
// Relaxation and local dephasing are written in SiteFrame, the eigenstate
// models in EigenFrame where each operator has one entry per eigenpair.
// All operators carry the ground state when relaxation is on. Rates are
// taken in the Hamiltonian's energy unit.
//
// Errors: ErrNilHamiltonian, ErrConflictingModels, ErrUnknownModel,
// ErrNegativeRate, ErrInvalidBath, matrix.ErrMatrixEigenFailed.
// Complexity: local thermalizing builds up to dim³ operators holding
// dim² entries in total per site.
func New(ham *hamiltonian.Hamiltonian, opts ...Option) (*Dissipator, error) {
	if ham == nil {
		return nil, dissErrorf(opNew, ErrNilHamiltonian)
	}
	cfg := newConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, dissErrorf(opNew, err)
	}
	obs, err := NewObservables(ham)
	if err != nil {
		return nil, dissErrorf(opNew, err)
	}
	d := &Dissipator{
		unit:         ham.Unit(),
		dim:          ham.Dim(),
		dephasing:    cfg.dephasing,
		thermalizing: cfg.thermalizing,
		bath:         cfg.bath,
		relaxRates:   cfg.relaxRates,
		relaxation:   ham.Relaxation(),
		obs:          obs,
	}
	b := &builder{ham: ham, cfg: cfg, dim: ham.Dim()}
	if ham.Relaxation() {
		b.off = 1
	}
	if err = b.build(); err != nil {
		return nil, dissErrorf(opNew, err)
	}
	d.ops = b.ops
	for _, op := range d.ops {
		if op.Frame == EigenFrame {
			d.eigen = b.u
			break
		}
	}

	return d, nil
}

// Operators returns the collapse operators in build order. The matrices
// are shared and must not be modified.
func (d *Dissipator) Operators() []Operator { return append([]Operator(nil), d.ops...) }

// Len returns the number of collapse operators.
func (d *Dissipator) Len() int { return len(d.ops) }

// Dim returns the dimension the operators act on.
func (d *Dissipator) Dim() int { return d.dim }

// Unit returns the energy unit of the rates.
func (d *Dissipator) Unit() units.Unit { return d.unit }

// Dephasing returns the configured dephasing model (nil for none).
func (d *Dissipator) Dephasing() Dephasing { return d.dephasing }

// Thermalizing returns the configured thermalizing model (nil for none).
func (d *Dissipator) Thermalizing() Thermalizing { return d.thermalizing }

// Bath returns the Redfield bath parameters.
func (d *Dissipator) Bath() Bath { return d.bath }

// RelaxationRates returns a copy of the per-base relaxation rates.
func (d *Dissipator) RelaxationRates() map[string]float64 {
	out := make(map[string]float64, len(d.relaxRates))
	for k, v := range d.relaxRates {
		out[k] = v
	}

	return out
}

// Relaxation reports whether relaxation operators were requested.
func (d *Dissipator) Relaxation() bool { return d.relaxation }

// Observables returns the population and coherence operators.
func (d *Dissipator) Observables() *Observables { return d.obs }

// Eigenbasis returns the unitary whose column k is eigenstate k of the
// EigenFrame, ground state first when present, or nil when every
// operator is in SiteFrame.
func (d *Dissipator) Eigenbasis() *matrix.CDense {
	if d.eigen == nil {
		return nil
	}

	return d.eigen.Copy()
}

// SiteMatrix returns op.Op in the site frame: U·Op·U† for EigenFrame
// operators.
// Errors: ErrForeignOperator when op does not fit this Dissipator.
func (d *Dissipator) SiteMatrix(op Operator) (*matrix.CDense, error) {
	if op.Op == nil || op.Op.Dim() != d.dim {
		return nil, ErrForeignOperator
	}
	if op.Frame != EigenFrame {
		return op.Op.Dense(), nil
	}
	if d.eigen == nil {
		return nil, ErrForeignOperator
	}
	lu, err := matrix.CMul(op.Op.Dense(), matrix.Adjoint(d.eigen))
	if err != nil {
		return nil, err
	}

	return matrix.CMul(d.eigen, lu)
}

// Groundstate returns |0⟩⟨0|. Errors: ErrNoGroundstate without relaxation.
func (d *Dissipator) Groundstate() (*matrix.Sparse, error) {
	if d.obs.Groundstate == nil {
		return nil, ErrNoGroundstate
	}

	return d.obs.Groundstate, nil
}

// Rescale returns the dissipator with rates expressed in unit u: every
// weight is multiplied by √ratio.
// Errors: units.ErrUnknownUnit.
func (d *Dissipator) Rescale(u units.Unit) (*Dissipator, error) {
	ratio, err := units.Conversion(d.unit, u)
	if err != nil {
		return nil, dissErrorf(opRescale, err)
	}
	out := *d
	out.unit = u
	f := math.Sqrt(ratio)
	out.ops = make([]Operator, len(d.ops))
	for k, op := range d.ops {
		op.Weight *= f
		out.ops[k] = op
	}

	return &out, nil
}

// String summarizes the configuration.
func (d *Dissipator) String() string {
	return fmt.Sprintf("Dissipator(dephasing=%v, thermalizing=%v, relaxation=%t, ops=%d, unit=%s)",
		d.dephasing, d.thermalizing, d.relaxation, len(d.ops), d.unit)
}

type builder struct {
	ham *hamiltonian.Hamiltonian
	cfg config
	dim int
	off int // 1 with a ground state
	ops []Operator

	vals []float64
	vecs [][]float64
	u    *matrix.CDense
}

func (b *builder) build() error {
	if b.off == 1 {
		if err := b.relaxation(); err != nil {
			return err
		}
	}
	rate, active, _ := dephasingRate(b.cfg.dephasing)
	if active {
		var err error
		switch b.cfg.dephasing.(type) {
		case LocalDephasing:
			err = b.localDephasing(rate)
		case GlobalDephasing:
			err = b.globalDephasing(rate)
		}
		if err != nil {
			return err
		}
	}
	switch b.cfg.thermalizing.(type) {
	case LocalThermalizing:
		return b.localThermalizing()
	case GlobalThermalizing:
		return b.globalThermalizing()
	}

	return nil
}

// addSite appends a site-frame operator, padding it with the ground state.
func (b *builder) addSite(kind Kind, rate float64, op *matrix.Sparse) error {
	if b.off == 1 {
		var err error
		if op, err = matrix.AddGroundstateSparse(op); err != nil {
			return err
		}
	}
	b.ops = append(b.ops, Operator{Kind: kind, Frame: SiteFrame, Weight: math.Sqrt(rate), Op: op})

	return nil
}

// addEigen appends an eigen-frame operator; indices are eigenstate
// numbers without the ground-state offset.
func (b *builder) addEigen(kind Kind, rate float64, entries ...matrix.Entry) error {
	for k := range entries {
		entries[k].Row += b.off
		entries[k].Col += b.off
	}
	op, err := matrix.NewSparse(b.dim, entries...)
	if err != nil {
		return err
	}
	b.ops = append(b.ops, Operator{Kind: kind, Frame: EigenFrame, Weight: math.Sqrt(rate), Op: op})

	return nil
}

func (b *builder) eigensystem() error {
	if b.vecs != nil {
		return nil
	}
	vals, q, err := b.ham.Eigensystem()
	if err != nil {
		return err
	}
	u, err := matrix.NewCDense(b.dim, b.dim)
	if err != nil {
		return err
	}
	if b.off == 1 {
		if err = u.Set(0, 0, 1); err != nil {
			return err
		}
	}
	b.vals = vals
	b.vecs = make([][]float64, len(vals))
	for j := range vals {
		col, err := q.Col(j)
		if err != nil {
			return err
		}
		b.vecs[j] = col
		for r, x := range col {
			if err = u.Set(r+b.off, j+b.off, complex(x, 0)); err != nil {
				return err
			}
		}
	}
	b.u = u

	return nil
}

func (b *builder) relaxation() error {
	letters := b.ham.Sequence().Sites()
	n := len(letters)
	for k, letter := range letters {
		rate := b.cfg.relaxRates[letter]
		if rate == 0 {
			continue
		}
		op, err := matrix.NewSparse(b.dim, matrix.Entry{Row: 0, Col: 1 + k*(n+1), Val: 1})
		if err != nil {
			return err
		}
		b.ops = append(b.ops, Operator{Kind: Relaxation, Frame: SiteFrame, Weight: math.Sqrt(rate), Op: op})
	}

	return nil
}

func (b *builder) localDephasing(rate float64) error {
	idx := b.ham.Indexer()
	if b.ham.Description() != hamiltonian.TwoParticle {
		for k := 0; k < idx.Size(); k++ {
			op, err := matrix.NewSparse(idx.Size(), matrix.Entry{Row: k, Col: k, Val: 1})
			if err != nil {
				return err
			}
			if err = b.addSite(LocalDephasingOp, rate, op); err != nil {
				return err
			}
		}
		return nil
	}
	for _, s := range idx.TBBasis() {
		for _, p := range []basis.Particle{basis.Electron, basis.Hole} {
			op, err := Observable(idx, p, s, s)
			if err != nil {
				return err
			}
			if err = b.addSite(LocalDephasingOp, rate, op); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) globalDephasing(rate float64) error {
	if err := b.eigensystem(); err != nil {
		return err
	}
	for i := range b.vals {
		if err := b.addEigen(GlobalDephasingOp, rate, matrix.Entry{Row: i, Col: i, Val: 1}); err != nil {
			return err
		}
	}

	return nil
}

func (b *builder) globalThermalizing() error {
	if err := b.eigensystem(); err != nil {
		return err
	}
	tol := gapTolerance(b.vals, b.cfg.gapTol)
	for i := range b.vals {
		for j := range b.vals {
			if i == j {
				continue
			}
			gap := b.vals[j] - b.vals[i]
			if math.Abs(gap) <= tol {
				gap = 0
			}
			if err := b.addEigen(GlobalThermalOp, b.cfg.bath.Rate(gap), matrix.Entry{Row: i, Col: j, Val: 1}); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) localThermalizing() error {
	if err := b.eigensystem(); err != nil {
		return err
	}
	sites := len(b.vals)
	for _, g := range groupGaps(b.vals, b.cfg.gapTol) {
		rate := b.cfg.bath.Rate(g.gap)
		for m := 0; m < sites; m++ {
			entries := make([]matrix.Entry, 0, len(g.pairs))
			for _, pr := range g.pairs {
				i, j := pr[0], pr[1]
				if c := b.vecs[j][m] * b.vecs[i][m]; c != 0 {
					entries = append(entries, matrix.Entry{Row: j, Col: i, Val: complex(c, 0)})
				}
			}
			if len(entries) == 0 {
				continue
			}
			if err := b.addEigen(LocalThermalOp, rate, entries...); err != nil {
				return err
			}
		}
	}

	return nil
}

// gapGroup collects the eigenpairs (i, j) whose gap ω_i − ω_j equals gap
// within tolerance.
type gapGroup struct {
	gap   float64
	pairs [][2]int
}

// gapTolerance scales the relative tolerance to tol·max(1, max|ω|).
func gapTolerance(vals []float64, tol float64) float64 {
	scale := 1.0
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}

	return tol * scale
}

// groupGaps sorts all ordered gaps and sweeps them into groups whose span
// stays within gapTolerance. A group holding a diagonal pair has gap
// exactly 0; other groups take their mean.
func groupGaps(vals []float64, tol float64) []gapGroup {
	type gapPair struct {
		gap  float64
		i, j int
	}
	tol = gapTolerance(vals, tol)

	all := make([]gapPair, 0, len(vals)*len(vals))
	for i := range vals {
		for j := range vals {
			all = append(all, gapPair{gap: vals[i] - vals[j], i: i, j: j})
		}
	}
	sort.SliceStable(all, func(a, b int) bool { return all[a].gap < all[b].gap })

	var groups []gapGroup
	var start, sum float64
	var diag bool
	flush := func() {
		g := &groups[len(groups)-1]
		if diag {
			g.gap = 0
		} else {
			g.gap = sum / float64(len(g.pairs))
		}
	}
	for k, p := range all {
		if k == 0 || p.gap-start > tol {
			if k > 0 {
				flush()
			}
			groups = append(groups, gapGroup{})
			start, sum, diag = p.gap, 0, false
		}
		g := &groups[len(groups)-1]
		g.pairs = append(g.pairs, [2]int{p.i, p.j})
		sum += p.gap
		diag = diag || p.i == p.j
	}
	if len(groups) > 0 {
		flush()
	}

	return groups
}
