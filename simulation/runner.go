// SPDX-License-Identifier: MIT

package simulation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/qdna/dissipator"
	"github.com/katalvlaran/qdna/dynamics"
	"github.com/katalvlaran/qdna/evaluation"
	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/qerr"
	"github.com/katalvlaran/qdna/sequence"
	"github.com/katalvlaran/qdna/storage"
	"github.com/katalvlaran/qdna/topology"
)

// Stage names, used for spans, log lines and error tags.
const (
	StageBuild     = "build"
	StageDissipate = "dissipator"
	StageIntegrate = "integrate"
	StagePersist   = "persist"
)

// Request describes one run.
type Request struct {
	// Upper is the upper strand, e.g. "GCG".
	Upper      string
	Model      topology.Name
	Methylated bool

	Hamiltonian []hamiltonian.Option
	Dissipator  []dissipator.Option
	Dynamics    []dynamics.Option

	// Save persists the result; Name defaults to upper_model_source.
	Save bool
	Name string
}

// Result holds the evaluated run.
type Result struct {
	Engine *dynamics.Engine

	// Lifetime in fs; valid when LifetimeObserved.
	Lifetime         float64
	LifetimeObserved bool

	// ChargeSeparation in Å and DipoleMoment in Debye; 2P only.
	ChargeSeparation float64
	DipoleMoment     float64

	// Record is the stored result when Request.Save was set.
	Record *storage.Record
}

// Runner executes requests against one parameter source.
type Runner struct {
	src  params.Source
	opts options
}

// New returns a Runner loading parameters from src.
func New(src params.Source, opts ...Option) *Runner {
	return &Runner{src: src, opts: gatherOptions(opts...)}
}

// stage runs fn inside a span and brackets it with log lines.
func (r *Runner) stage(ctx context.Context, name string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := r.opts.tracer.Tracer(TracerName).Start(ctx, "qdna."+name)
	defer span.End()

	start := time.Now()
	r.opts.logger.Printf("%s: start", name)
	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.opts.logger.Printf("%s: failed after %s: %v", name, time.Since(start).Round(time.Millisecond), err)
		return stageErrorf(name, err)
	}
	r.opts.logger.Printf("%s: done in %s", name, time.Since(start).Round(time.Millisecond))

	return nil
}

// Run builds and integrates req and evaluates the standard observables:
// the exciton lifetime with relaxation and, in 2P, the average charge
// separation and dipole moment.
// Errors: ErrNilSource, ErrNoStore, and the wrapped errors of every stage.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	if r.src == nil {
		return Result{}, ErrNilSource
	}
	if req.Save && r.opts.store == nil {
		return Result{}, ErrNoStore
	}

	var ham *hamiltonian.Hamiltonian
	err := r.stage(ctx, StageBuild, func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(
			attribute.String("qdna.sequence", req.Upper),
			attribute.String("qdna.model", string(req.Model)),
		)
		seq, err := sequence.New(req.Upper, req.Model, sequence.WithMethylation(req.Methylated))
		if err != nil {
			return err
		}
		model, err := topology.Build(req.Model, seq.Dims())
		if err != nil {
			return err
		}
		if ham, err = hamiltonian.New(ctx, model, seq, r.src, req.Hamiltonian...); err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("qdna.dim", ham.Dim()))
		if r.opts.verbose {
			r.opts.logger.Printf("%s: %s", StageBuild, ham)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	var diss *dissipator.Dissipator
	err = r.stage(ctx, StageDissipate, func(_ context.Context, span trace.Span) error {
		var err error
		if diss, err = dissipator.New(ham, req.Dissipator...); err != nil {
			return err
		}
		span.SetAttributes(attribute.Int("qdna.operators", diss.Len()))
		if r.opts.verbose {
			r.opts.logger.Printf("%s: %s", StageDissipate, diss)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	var res Result
	err = r.stage(ctx, StageIntegrate, func(ctx context.Context, span trace.Span) error {
		var err error
		if res.Engine, err = dynamics.New(ham, diss, req.Dynamics...); err != nil {
			return err
		}
		span.SetAttributes(
			attribute.Int("qdna.t_steps", res.Engine.TSteps()),
			attribute.Int("qdna.substeps", res.Engine.Substeps()),
		)
		return r.evaluate(ctx, &res)
	})
	if err != nil {
		return Result{}, err
	}

	if !req.Save {
		return res, nil
	}
	err = r.stage(ctx, StagePersist, func(ctx context.Context, span trace.Span) error {
		rec, err := r.persist(ctx, req, res)
		if err != nil {
			return err
		}
		span.SetAttributes(
			attribute.String("qdna.record", rec.ID.String()),
			attribute.Int("qdna.version", rec.Version),
		)
		res.Record = &rec
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

func (r *Runner) evaluate(ctx context.Context, res *Result) error {
	ham := res.Engine.Hamiltonian()
	if ham.Relaxation() {
		lt, err := res.Engine.Lifetime(ctx)
		switch {
		case err == nil:
			res.Lifetime, res.LifetimeObserved = lt, true
		case errors.Is(err, dynamics.ErrNoRelaxation):
			r.opts.logger.Printf("%s: no relaxation within t_end=%g %s", StageIntegrate, res.Engine.TEnd(), res.Engine.TimeUnit())
		default:
			return err
		}
	}
	if ham.Description() != hamiltonian.TwoParticle {
		return nil
	}
	sep, err := evaluation.ChargeSeparation(ctx, res.Engine)
	if err != nil {
		return err
	}
	res.ChargeSeparation = sep.Average
	res.DipoleMoment, err = evaluation.DipoleMoment(ctx, res.Engine)

	return err
}

// record renders res as a storage record.
func record(req Request, res Result) storage.Record {
	e := res.Engine
	ham := e.Hamiltonian()
	name := req.Name
	if name == "" {
		name = storage.Name(req.Upper, string(req.Model), ham.Source())
	}

	return storage.Record{
		Name: name,
		Data: map[string]any{
			"lifetime":          res.Lifetime,
			"lifetime_observed": res.LifetimeObserved,
			"charge_separation": res.ChargeSeparation,
			"dipole_moment":     res.DipoleMoment,
		},
		Metadata: map[string]string{
			"sequence":    req.Upper,
			"model":       string(req.Model),
			"methylated":  strconv.FormatBool(req.Methylated),
			"source":      ham.Source(),
			"description": string(ham.Description()),
			"dim":         strconv.Itoa(ham.Dim()),
			"dissipator":  e.Dissipator().String(),
			"t_end":       strconv.FormatFloat(e.TEnd(), 'g', -1, 64),
			"t_steps":     strconv.Itoa(e.TSteps()),
			"t_unit":      string(e.TimeUnit()),
			"init":        fmt.Sprint(e.InitialState()),
		},
	}
}

// persist saves the record with bounded exponential backoff. The id is
// fixed before the first attempt, so a retry after a save that landed
// reports storage.ErrExists instead of writing a second version.
func (r *Runner) persist(ctx context.Context, req Request, res Result) (storage.Record, error) {
	rec := record(req, res)
	rec.ID = uuid.New()
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.opts.saveInitial

	return backoff.Retry(ctx, func() (storage.Record, error) {
		out, err := r.opts.store.Save(ctx, rec)
		if err != nil && (qerr.IsPermanent(err) || errors.Is(err, storage.ErrExists)) {
			return storage.Record{}, backoff.Permanent(err)
		}
		return out, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.opts.saveTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.opts.logger.Printf("%s: retrying in %s: %v", StagePersist, next.Round(time.Millisecond), err)
		}),
	)
}
