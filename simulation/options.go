// SPDX-License-Identifier: MIT

package simulation

import (
	"fmt"
	"io"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/qdna/storage"
)

// TracerName is the instrumentation scope of the pipeline spans.
const TracerName = "github.com/katalvlaran/qdna/simulation"

// Save retry defaults.
const (
	DefaultSaveTries           uint = 3
	DefaultSaveInitialInterval      = 50 * time.Millisecond
)

// Option configures a Runner.
type Option func(*options)

type options struct {
	store       storage.Store
	logger      *log.Logger
	verbose     bool
	tracer      trace.TracerProvider
	saveTries   uint
	saveInitial time.Duration
}

func gatherOptions(opts ...Option) options {
	o := options{
		logger:      log.New(io.Discard, "", 0),
		saveTries:   DefaultSaveTries,
		saveInitial: DefaultSaveInitialInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.tracer == nil {
		o.tracer = otel.GetTracerProvider()
	}

	return o
}

// WithStore sets the result store used by Request.Save.
func WithStore(st storage.Store) Option {
	return func(o *options) { o.store = st }
}

// WithLogger sets the stage logger; nil discards.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		o.logger = l
	}
}

// WithVerbose additionally logs the built components.
func WithVerbose(on bool) Option {
	return func(o *options) { o.verbose = on }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracer = tp }
}

// WithSaveRetry bounds the persistence attempts. Panics if tries == 0 or
// initial <= 0.
func WithSaveRetry(tries uint, initial time.Duration) Option {
	if tries == 0 || initial <= 0 {
		panic(fmt.Sprintf("simulation: WithSaveRetry(%d, %s) requires tries > 0 and initial > 0", tries, initial))
	}
	return func(o *options) {
		o.saveTries = tries
		o.saveInitial = initial
	}
}
