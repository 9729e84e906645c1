// SPDX-License-Identifier: MIT

package evaluation

import (
	"context"
	"fmt"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
)

const (
	opTransfer = "AverageTransfer"
	opExciton  = "ExcitonTransfer"
	opBackbone = "BackboneTransfer"
)

// Transfer is the summed population of a site set per particle: the time
// series and its mean.
type Transfer struct {
	Series  map[basis.Particle][]float64
	Average map[basis.Particle]float64
}

// AverageTransfer sums the populations of every configured particle over
// sites.
// Errors: ErrNilInput, basis.ErrOutOfRange, ctx.Err().
func AverageTransfer(ctx context.Context, e *dynamics.Engine, sites []basis.Site) (Transfer, error) {
	if e == nil {
		return Transfer{}, evalErrorf(opTransfer, ErrNilInput)
	}
	idx := e.Hamiltonian().Indexer()
	for _, s := range sites {
		if !idx.Contains(s) {
			return Transfer{}, fmt.Errorf("%s: %s: %w", opTransfer, s, basis.ErrOutOfRange)
		}
	}
	pops, err := e.Populations(ctx)
	if err != nil {
		return Transfer{}, evalErrorf(opTransfer, err)
	}
	out := Transfer{
		Series:  make(map[basis.Particle][]float64),
		Average: make(map[basis.Particle]float64),
	}
	n := e.TSteps()
	for _, p := range e.Hamiltonian().Particles() {
		series := make([]float64, n)
		for _, s := range sites {
			for k, v := range pops[dissipator.SiteKey{Particle: p, Site: s}] {
				series[k] += v
			}
		}
		var mean float64
		for _, v := range series {
			mean += v
		}
		out.Series[p] = series
		out.Average[p] = mean / float64(n)
	}

	return out, nil
}

func strandSites(idx basis.Indexer, strand int) []basis.Site {
	dims := idx.Dims()
	out := make([]basis.Site, dims.Sites)
	for i := range out {
		out[i] = basis.Site{Strand: strand, Index: i}
	}

	return out
}

// ExcitonTransfer returns the population held by the upper (strand 0)
// and lower (strand 1) strand. Defined for double-stranded models without
// backbone.
// Errors: ErrUnsupportedModel, and those of AverageTransfer.
func ExcitonTransfer(ctx context.Context, e *dynamics.Engine) (upper, lower Transfer, err error) {
	if e == nil {
		return Transfer{}, Transfer{}, evalErrorf(opExciton, ErrNilInput)
	}
	model := e.Hamiltonian().Model()
	props := model.Properties()
	if props.Backbone || !props.DoubleStranded {
		return Transfer{}, Transfer{}, fmt.Errorf("%s: %s: %w", opExciton, model.Name(), ErrUnsupportedModel)
	}
	idx := model.Indexer()
	if upper, err = AverageTransfer(ctx, e, strandSites(idx, 0)); err != nil {
		return Transfer{}, Transfer{}, evalErrorf(opExciton, err)
	}
	if lower, err = AverageTransfer(ctx, e, strandSites(idx, 1)); err != nil {
		return Transfer{}, Transfer{}, evalErrorf(opExciton, err)
	}

	return upper, lower, nil
}

// BackboneSites returns the sites of the first and last strand.
func BackboneSites(idx basis.Indexer) []basis.Site {
	return append(strandSites(idx, 0), strandSites(idx, idx.Dims().Strands-1)...)
}

// BackboneTransfer returns the population held by both backbone strands.
// Defined for fishbone models only.
// Errors: ErrUnsupportedModel, and those of AverageTransfer.
func BackboneTransfer(ctx context.Context, e *dynamics.Engine) (Transfer, error) {
	if e == nil {
		return Transfer{}, evalErrorf(opBackbone, ErrNilInput)
	}
	model := e.Hamiltonian().Model()
	if !model.Properties().Backbone {
		return Transfer{}, fmt.Errorf("%s: %s: %w", opBackbone, model.Name(), ErrUnsupportedModel)
	}
	out, err := AverageTransfer(ctx, e, BackboneSites(model.Indexer()))
	if err != nil {
		return Transfer{}, evalErrorf(opBackbone, err)
	}

	return out, nil
}
