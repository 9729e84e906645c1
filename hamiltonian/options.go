// SPDX-License-Identifier: MIT

package hamiltonian

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qdna/basis"
	"github.com/katalvlaran/qdna/units"
)

// Description selects the single-particle or electron-hole picture.
type Description string

// Descriptions.
const (
	OneParticle Description = "1P"
	TwoParticle Description = "2P"
)

// ParseDescription validates s. Errors: ErrUnknownDescription.
func ParseDescription(s string) (Description, error) {
	switch d := Description(s); d {
	case OneParticle, TwoParticle:
		return d, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownDescription)
	}
}

// Defaults.
const (
	DefaultSource      = "Simserides2014"
	DefaultDescription = TwoParticle
	DefaultUnit        = units.HundredMeV
	DefaultInteraction = 0.0
	DefaultRelaxation  = true
	DefaultNNCutoff    = false
)

// Option configures New.
type Option func(*Config)

// Config is the resolved Hamiltonian configuration. A nil Particles list
// selects the description's default.
type Config struct {
	Description Description
	Particles   []basis.Particle
	Source      string
	Unit        units.Unit
	Interaction float64 // J, in Unit
	NNCutoff    bool
	Relaxation  bool
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{
		Description: DefaultDescription,
		Source:      DefaultSource,
		Unit:        DefaultUnit,
		Interaction: DefaultInteraction,
		NNCutoff:    DefaultNNCutoff,
		Relaxation:  DefaultRelaxation,
	}
}

// newConfig applies opts over the defaults and validates the result.
func newConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for consistency and normalizes it:
// an empty particle list means [electron hole exciton] for 2P and
// [electron] for 1P, and 1P disables relaxation and interaction.
// Errors: ErrUnknownDescription, ErrInvalidParticles, ErrNoSource,
// units.ErrUnknownUnit.
func (c *Config) Validate() error {
	if _, err := ParseDescription(string(c.Description)); err != nil {
		return err
	}
	if !c.Unit.Valid() {
		return fmt.Errorf("%q: %w", string(c.Unit), units.ErrUnknownUnit)
	}
	if c.Source == "" {
		return ErrNoSource
	}
	if len(c.Particles) == 0 {
		c.Particles = []basis.Particle{basis.Electron}
		if c.Description == TwoParticle {
			c.Particles = []basis.Particle{basis.Electron, basis.Hole, basis.Exciton}
		}
	}
	seen := map[basis.Particle]bool{}
	for _, p := range c.Particles {
		if _, err := basis.ParseParticle(string(p)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidParticles, err)
		}
		if seen[p] {
			return fmt.Errorf("duplicate %q: %w", string(p), ErrInvalidParticles)
		}
		seen[p] = true
	}
	if c.Description == OneParticle {
		if len(c.Particles) != 1 || c.Particles[0] == basis.Exciton {
			return fmt.Errorf("1P needs exactly electron or hole, got %v: %w", c.Particles, ErrInvalidParticles)
		}
		c.Relaxation = false
		c.Interaction = 0
		c.NNCutoff = false
	}

	return nil
}

// Particle returns the carrier of a 1P configuration.
func (c Config) Particle() basis.Particle { return c.Particles[0] }

// WithDescription selects 1P or 2P.
func WithDescription(d Description) Option {
	return func(c *Config) { c.Description = d }
}

// WithParticles sets the particles observed (2P) or simulated (1P).
func WithParticles(ps ...basis.Particle) Option {
	return func(c *Config) { c.Particles = append([]basis.Particle{}, ps...) }
}

// WithSource selects the parameter publication, e.g. "Hawke2010".
// Panics on an empty name.
func WithSource(name string) Option {
	if name == "" {
		panic("hamiltonian: WithSource requires a non-empty name")
	}
	return func(c *Config) { c.Source = name }
}

// WithUnit selects the energy unit of the matrix.
func WithUnit(u units.Unit) Option {
	return func(c *Config) { c.Unit = u }
}

// WithInteraction sets the electron-hole interaction J (in the configured
// unit) and the nearest-neighbour cutoff. Panics on NaN or Inf.
func WithInteraction(j float64, nnCutoff bool) Option {
	if math.IsNaN(j) || math.IsInf(j, 0) {
		panic(fmt.Sprintf("hamiltonian: WithInteraction(%v) requires a finite value", j))
	}
	return func(c *Config) {
		c.Interaction = j
		c.NNCutoff = nnCutoff
	}
}

// WithRelaxation toggles the ground state at index 0 (2P only).
func WithRelaxation(on bool) Option {
	return func(c *Config) { c.Relaxation = on }
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
		c.Particles = append([]basis.Particle{}, cfg.Particles...)
	}
}
