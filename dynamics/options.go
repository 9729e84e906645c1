// SPDX-License-Identifier: MIT

package dynamics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/units"
)

// Engine defaults.
const (
	DefaultTEnd       = 1000.0
	DefaultTSteps     = 2000
	DefaultTimeUnit   = units.Femtosecond
	DefaultStepFactor = 0.25
)

// InitialState is one of Localized or Delocalized.
type InitialState interface {
	initialState()
	fmt.Stringer
}

// Localized starts from one basis state: the pair (Electron, Hole) in 2P,
// or the site of the tracked carrier in 1P.
type Localized struct {
	Electron basis.Site
	Hole     basis.Site
}

// Delocalized starts from the uniform mixture of all excitons (s, s) in
// 2P, or of all sites in 1P.
type Delocalized struct{}

func (Localized) initialState()   {}
func (Delocalized) initialState() {}

func (l Localized) String() string { return fmt.Sprintf("Localized(%s, %s)", l.Electron, l.Hole) }
func (Delocalized) String() string { return "Delocalized" }

// Option configures New.
type Option func(*config)

type config struct {
	tEnd       float64
	tSteps     int
	tUnit      units.TimeUnit
	init       InitialState
	stepFactor float64
}

func newConfig(opts ...Option) config {
	cfg := config{
		tEnd:       DefaultTEnd,
		tSteps:     DefaultTSteps,
		tUnit:      DefaultTimeUnit,
		init:       Localized{},
		stepFactor: DefaultStepFactor,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// validateGrid checks the grid before any work.
// Errors: ErrInvalidGrid, ErrResolution.
func validateGrid(tEnd float64, tSteps int) error {
	if !(tEnd > 0) || math.IsInf(tEnd, 0) || tSteps < 2 {
		return fmt.Errorf("t_end=%v t_steps=%d: %w", tEnd, tSteps, ErrInvalidGrid)
	}
	if float64(tSteps)/tEnd <= 0.5 {
		return fmt.Errorf("t_end %v cannot be resolved by t_steps %d: %w", tEnd, tSteps, ErrResolution)
	}

	return nil
}

// WithTEnd sets the end of the time window, in the time unit.
func WithTEnd(t float64) Option {
	return func(c *config) { c.tEnd = t }
}

// WithTSteps sets the number of grid points, both ends included.
func WithTSteps(n int) Option {
	return func(c *config) { c.tSteps = n }
}

// WithTimeUnit selects fs or ps.
func WithTimeUnit(u units.TimeUnit) Option {
	return func(c *config) { c.tUnit = u }
}

// WithInitialState selects the initial density matrix.
func WithInitialState(s InitialState) Option {
	return func(c *config) { c.init = s }
}

// WithStepFactor bounds h·ν per RK4 sub-step, ν being a norm bound of the
// Lindblad generator. Panics if f ≤ 0.
func WithStepFactor(f float64) Option {
	if !(f > 0) {
		panic(fmt.Sprintf("dynamics: WithStepFactor(%v) requires f > 0", f))
	}
	return func(c *config) { c.stepFactor = f }
}
