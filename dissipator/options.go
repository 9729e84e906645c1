// SPDX-License-Identifier: MIT

package dissipator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/sequence"
)

// DefaultRelaxationRate is the uniform relaxation rate.
const DefaultRelaxationRate = 3.0

// DefaultGapTolerance groups eigenenergy gaps closer than tol·max(1, max|ω|)
// into one local-thermalizing channel.
const DefaultGapTolerance = 1e-9

// Option configures New.
type Option func(*config)

type config struct {
	dephasing    Dephasing
	thermalizing Thermalizing
	bath         Bath
	relaxRates   map[string]float64
	gapTol       float64
	err          error
}

func newConfig(opts ...Option) config {
	cfg := config{
		bath:       DefaultBath(),
		relaxRates: UniformRates(DefaultRelaxationRate),
		gapTol:     DefaultGapTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func (c config) validate() error {
	if c.err != nil {
		return c.err
	}
	if _, _, err := dephasingRate(c.dephasing); err != nil {
		return err
	}
	switch c.thermalizing.(type) {
	case nil:
	case LocalThermalizing, GlobalThermalizing:
		if err := c.bath.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%T: %w", c.thermalizing, ErrUnknownModel)
	}
	for base, r := range c.relaxRates {
		if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("relaxation rate %q=%v: %w", base, r, ErrNegativeRate)
		}
	}

	return nil
}

// UniformRates broadcasts one relaxation rate to every base letter and the
// backbone filler.
func UniformRates(rate float64) map[string]float64 {
	out := make(map[string]float64)
	for _, b := range append(sequence.Bases(), sequence.Backbone) {
		out[b] = rate
	}

	return out
}

// WithDephasing selects the dephasing model (nil for none).
func WithDephasing(d Dephasing) Option {
	return func(c *config) { c.dephasing = d }
}

// WithThermalizing selects the thermalizing model (nil for none).
func WithThermalizing(t Thermalizing) Option {
	return func(c *config) { c.thermalizing = t }
}

// WithFlags selects both models from raw flags. Conflicting flags make
// New fail with ErrConflictingModels.
func WithFlags(f Flags) Option {
	d, t, err := FromFlags(f)
	return func(c *config) {
		c.dephasing, c.thermalizing, c.err = d, t, err
	}
}

// WithBath sets the Redfield bath parameters.
func WithBath(b Bath) Option {
	return func(c *config) { c.bath = b }
}

// WithRelaxationRate broadcasts one relaxation rate to every base.
func WithRelaxationRate(rate float64) Option {
	return func(c *config) { c.relaxRates = UniformRates(rate) }
}

// WithRelaxationRates sets per-base relaxation rates. Bases missing from
// rates do not relax.
func WithRelaxationRates(rates map[string]float64) Option {
	cp := make(map[string]float64, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return func(c *config) { c.relaxRates = cp }
}

// WithGapTolerance sets the relative tolerance used to group degenerate
// gaps. Panics if tol < 0.
func WithGapTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic(fmt.Sprintf("dissipator: WithGapTolerance(%v) requires tol >= 0", tol))
	}
	return func(c *config) { c.gapTol = tol }
}
