// SPDX-License-Identifier: MIT

package params

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/katalvlaran/qdna/qerr"
)

// Retry defaults.
const (
	DefaultMaxTries        uint = 4
	DefaultInitialInterval      = 100 * time.Millisecond
	DefaultMaxInterval          = 2 * time.Second
)

// RetryOption configures Retrying.
type RetryOption func(*retryOptions)

type retryOptions struct {
	maxTries        uint
	initialInterval time.Duration
	maxInterval     time.Duration
	notify          func(err error, next time.Duration)
}

func gatherRetryOptions(opts ...RetryOption) retryOptions {
	o := retryOptions{
		maxTries:        DefaultMaxTries,
		initialInterval: DefaultInitialInterval,
		maxInterval:     DefaultMaxInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithMaxTries bounds the number of Load attempts. Panics if n == 0.
func WithMaxTries(n uint) RetryOption {
	if n == 0 {
		panic("params: WithMaxTries requires n > 0")
	}
	return func(o *retryOptions) { o.maxTries = n }
}

// WithInterval sets the initial and maximum backoff intervals.
// Panics if initial <= 0 or max < initial.
func WithInterval(initial, max time.Duration) RetryOption {
	if initial <= 0 || max < initial {
		panic(fmt.Sprintf("params: WithInterval(%s, %s) requires 0 < initial <= max", initial, max))
	}
	return func(o *retryOptions) {
		o.initialInterval = initial
		o.maxInterval = max
	}
}

// WithNotify registers a callback invoked before every retry.
func WithNotify(fn func(err error, next time.Duration)) RetryOption {
	return func(o *retryOptions) { o.notify = fn }
}

// Retrying wraps src with bounded exponential backoff. Configuration and
// numeric-guard errors are returned after the first attempt; other errors
// (I/O, remote sources) are retried up to the configured number of tries.
type Retrying struct {
	src  Source
	opts retryOptions
}

// NewRetrying wraps src.
func NewRetrying(src Source, opts ...RetryOption) *Retrying {
	return &Retrying{src: src, opts: gatherRetryOptions(opts...)}
}

// Load implements Source.
func (r *Retrying) Load(ctx context.Context, key Key) (Table, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.opts.initialInterval
	b.MaxInterval = r.opts.maxInterval

	retryOpts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.opts.maxTries),
	}
	if r.opts.notify != nil {
		retryOpts = append(retryOpts, backoff.WithNotify(r.opts.notify))
	}

	return backoff.Retry(ctx, func() (Table, error) {
		t, err := r.src.Load(ctx, key)
		if err != nil && qerr.IsPermanent(err) {
			return Table{}, backoff.Permanent(err)
		}
		return t, err
	}, retryOpts...)
}
