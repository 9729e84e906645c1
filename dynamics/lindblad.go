// SPDX-License-Identifier: MIT

package dynamics

import (
	"math"

	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/matrix"
)

// generator evaluates the Lindblad right-hand side
//
//	dρ/dt = −i(H_eff·ρ − ρ·H_eff†) + J_site(ρ) + U·J_eigen(U†·ρ·U)·U†
//	H_eff = H − (i/2) Σ_k γ_k L_k† L_k
//
// for Hermitian ρ, where ρ·H_eff† = (H_eff·ρ)†. The jump maps J collect
// Σ_k γ_k L_k ρ L_k† of every operator in one frame; U is the eigenbasis
// of the dissipator, used only when some operator lives in EigenFrame.
type generator struct {
	dim   int
	heff  *matrix.CDense
	site  *matrix.Superoperator
	eigen *matrix.Superoperator
	u, ua *matrix.CDense

	hr, tmp, tr, tj *matrix.CDense
	// bound is an upper bound on the spectral radius of the generator.
	bound float64
}

func newGenerator(h *matrix.Dense, diss *dissipator.Dissipator) (*generator, error) {
	hc := h.ToComplex()
	dim := hc.Rows()
	g := &generator{dim: dim}

	shifted := hc.Copy()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, d := range hc.Diag() {
		lo, hi = math.Min(lo, real(d)), math.Max(hi, real(d))
	}
	mid := (lo + hi) / 2
	for i := 0; i < dim; i++ {
		if err := shifted.AddAt(i, i, complex(-mid, 0)); err != nil {
			return nil, err
		}
	}

	gamma := map[dissipator.Frame]*matrix.CDense{}
	for _, op := range diss.Operators() {
		rate := op.Rate()
		if rate == 0 {
			continue
		}
		sup, err := g.jumps(op.Frame)
		if err != nil {
			return nil, err
		}
		if err = sup.AddSandwich(op.Op, rate); err != nil {
			return nil, err
		}
		if gamma[op.Frame] == nil {
			if gamma[op.Frame], err = matrix.NewCDense(dim, dim); err != nil {
				return nil, err
			}
		}
		if err = op.Op.GramAddTo(gamma[op.Frame], rate); err != nil {
			return nil, err
		}
	}
	if ge := gamma[dissipator.EigenFrame]; ge != nil {
		g.u = diss.Eigenbasis()
		if g.u == nil {
			return nil, dissipator.ErrForeignOperator
		}
		g.ua = matrix.Adjoint(g.u)
		if err := g.toSite(ge); err != nil {
			return nil, err
		}
		if gs := gamma[dissipator.SiteFrame]; gs != nil {
			if err := gs.AddScaled(1, ge); err != nil {
				return nil, err
			}
		} else {
			gamma[dissipator.SiteFrame] = ge
		}
	}
	g.heff = shifted
	if gs := gamma[dissipator.SiteFrame]; gs != nil {
		if err := g.heff.AddScaled(complex(0, -0.5), gs); err != nil {
			return nil, err
		}
	}
	g.bound = 2 * g.heff.NormInf()
	for _, sup := range []*matrix.Superoperator{g.site, g.eigen} {
		if sup != nil {
			g.bound += sup.NormInf()
		}
	}

	for _, p := range []**matrix.CDense{&g.hr, &g.tmp, &g.tr, &g.tj} {
		m, err := matrix.NewCDense(dim, dim)
		if err != nil {
			return nil, err
		}
		*p = m
	}

	return g, nil
}

// jumps returns the jump map of frame f, creating it on first use.
func (g *generator) jumps(f dissipator.Frame) (*matrix.Superoperator, error) {
	slot := &g.site
	if f == dissipator.EigenFrame {
		slot = &g.eigen
	}
	if *slot == nil {
		sup, err := matrix.NewSuperoperator(g.dim)
		if err != nil {
			return nil, err
		}
		*slot = sup
	}

	return *slot, nil
}

// toSite replaces the eigen-frame matrix m by U·m·U† in place.
func (g *generator) toSite(m *matrix.CDense) error {
	tmp, err := matrix.CMul(g.u, m)
	if err != nil {
		return err
	}

	return matrix.MulAdjointTo(m, tmp, g.u)
}

// apply writes dρ/dt into dst.
func (g *generator) apply(dst, rho *matrix.CDense) error {
	if err := matrix.MulTo(g.hr, g.heff, rho); err != nil {
		return err
	}
	if err := matrix.SkewTo(dst, g.hr, -1i); err != nil {
		return err
	}
	if g.site != nil {
		if err := g.site.ApplyAddTo(dst, rho); err != nil {
			return err
		}
	}
	if g.eigen == nil {
		return nil
	}
	// tr = U†ρU, tj = J_eigen(tr), dst += U·tj·U†
	if err := matrix.MulTo(g.tmp, g.ua, rho); err != nil {
		return err
	}
	if err := matrix.MulTo(g.tr, g.tmp, g.u); err != nil {
		return err
	}
	g.tj.Zero()
	if err := g.eigen.ApplyAddTo(g.tj, g.tr); err != nil {
		return err
	}
	if err := matrix.MulTo(g.tmp, g.u, g.tj); err != nil {
		return err
	}
	if err := matrix.MulAdjointTo(g.tr, g.tmp, g.u); err != nil {
		return err
	}

	return dst.AddScaled(1, g.tr)
}

// substeps returns the number of RK4 steps per grid interval dt so that
// h·bound ≤ factor.
func (g *generator) substeps(dt, factor float64) int {
	m := int(math.Ceil(dt * g.bound / factor))
	if m < 1 {
		return 1
	}

	return m
}

// rk4 is a fixed-step classical Runge-Kutta integrator with reusable
// stage buffers.
type rk4 struct {
	g *generator

	k1, k2, k3, k4, tmp *matrix.CDense
}

func newRK4(g *generator) (*rk4, error) {
	r := &rk4{g: g}
	for _, p := range []**matrix.CDense{&r.k1, &r.k2, &r.k3, &r.k4, &r.tmp} {
		m, err := matrix.NewCDense(g.dim, g.dim)
		if err != nil {
			return nil, err
		}
		*p = m
	}

	return r, nil
}

// stage writes rho + a·k into r.tmp and evaluates the generator there.
func (r *rk4) stage(dst, rho, k *matrix.CDense, a float64) error {
	if err := r.tmp.CopyFrom(rho); err != nil {
		return err
	}
	if err := r.tmp.AddScaled(complex(a, 0), k); err != nil {
		return err
	}

	return r.g.apply(dst, r.tmp)
}

// step advances rho in place by h.
func (r *rk4) step(rho *matrix.CDense, h float64) error {
	if err := r.g.apply(r.k1, rho); err != nil {
		return err
	}
	if err := r.stage(r.k2, rho, r.k1, h/2); err != nil {
		return err
	}
	if err := r.stage(r.k3, rho, r.k2, h/2); err != nil {
		return err
	}
	if err := r.stage(r.k4, rho, r.k3, h); err != nil {
		return err
	}
	for _, s := range []struct {
		k *matrix.CDense
		w float64
	}{{r.k1, h / 6}, {r.k2, h / 3}, {r.k3, h / 3}, {r.k4, h / 6}} {
		if err := rho.AddScaled(complex(s.w, 0), s.k); err != nil {
			return err
		}
	}

	return rho.Hermitize()
}
