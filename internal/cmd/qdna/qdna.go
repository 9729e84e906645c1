// SPDX-License-Identifier: MIT

// Package qdna implements the qdna command: simulate one DNA sequence
// and print its exciton lifetime, charge separation and dipole moment.
package qdna

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/qdna/hamiltonian"
	"github.com/katalvlaran/qdna/internal/config"
	"github.com/katalvlaran/qdna/internal/telemetry"
	"github.com/katalvlaran/qdna/params"
	"github.com/katalvlaran/qdna/simulation"
	"github.com/katalvlaran/qdna/storage"
	"github.com/katalvlaran/qdna/topology"
)

// Config holds qdna command configuration.
type Config struct {
	Env      config.Env
	Defaults config.Defaults

	Upper      string
	Model      topology.Name
	Methylated bool
	Save       bool
	Name       string
}

// ParseConfig parses the environment, the defaults file and flags, in
// increasing precedence.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return Config{}, err
	}

	var (
		cfg          Config
		model        string
		defaultsFile string
		tEnd         float64
		tSteps       int
		tUnit        string
		source       string
		description  string
		relaxRate    float64
		locDeph      float64
		globDeph     float64
		locTherm     bool
		globTherm    bool
		temperature  float64
		interaction  float64
		delocalized  bool
		verbose      bool
	)
	fs.StringVar(&cfg.Upper, "seq", "GCG", "upper strand, e.g. GCG")
	fs.StringVar(&model, "model", string(topology.ELM), "tight-binding model (WM, LM, ELM, FWM, FLM, FELM, FC)")
	fs.BoolVar(&cfg.Methylated, "methylated", false, "methylate CpG cytosines on the lower strand")
	fs.BoolVar(&cfg.Save, "save", false, "persist the result")
	fs.StringVar(&cfg.Name, "name", "", "record name (default seq_model_source)")
	fs.StringVar(&defaultsFile, "defaults", env.DefaultsFile, "simulation defaults file (YAML)")
	fs.StringVar(&env.ParamDir, "params", env.ParamDir, "parameter table directory")
	fs.StringVar(&env.StoreBackend, "store", env.StoreBackend, "result store backend (memory, sqlite)")
	fs.StringVar(&env.SQLitePath, "sqlite", env.SQLitePath, "sqlite database path")
	fs.StringVar(&env.OTLPEndpoint, "otlp", env.OTLPEndpoint, "OTLP/HTTP trace endpoint (empty disables tracing)")
	fs.Float64Var(&tEnd, "t-end", 0, "simulation end time (overrides defaults)")
	fs.IntVar(&tSteps, "t-steps", 0, "number of grid points (overrides defaults)")
	fs.StringVar(&tUnit, "t-unit", "", "time unit: fs or ps (overrides defaults)")
	fs.StringVar(&source, "source", "", "parameter publication (overrides defaults)")
	fs.StringVar(&description, "description", "", "1P or 2P (overrides defaults)")
	fs.Float64Var(&relaxRate, "relax-rate", 0, "relaxation rate (overrides defaults)")
	fs.Float64Var(&locDeph, "loc-deph", 0, "local dephasing rate")
	fs.Float64Var(&globDeph, "glob-deph", 0, "global dephasing rate")
	fs.BoolVar(&locTherm, "loc-therm", false, "local thermalizing")
	fs.BoolVar(&globTherm, "glob-therm", false, "global thermalizing")
	fs.Float64Var(&temperature, "temperature", 0, "bath temperature in K (overrides defaults)")
	fs.Float64Var(&interaction, "interaction", 0, "electron-hole interaction (overrides defaults)")
	fs.BoolVar(&delocalized, "delocalized", false, "start from the delocalized exciton")
	fs.BoolVar(&verbose, "verbose", false, "log every stage")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Model, err = topology.ParseName(model); err != nil {
		return Config{}, err
	}
	d, err := config.LoadDefaults(defaultsFile)
	if err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t-end":
			d.ME.TEnd = tEnd
		case "t-steps":
			d.ME.TSteps = tSteps
		case "t-unit":
			d.ME.TimeUnit = tUnit
		case "source":
			d.Ham.Source = source
		case "description":
			d.Ham.Description = description
		case "relax-rate":
			d.Diss.RelaxationRate = relaxRate
		case "loc-deph":
			d.Diss.LocalDephasingRate = locDeph
		case "glob-deph":
			d.Diss.GlobalDephasingRate = globDeph
		case "loc-therm":
			d.Diss.LocalThermalizing = locTherm
		case "glob-therm":
			d.Diss.GlobalThermalizing = globTherm
		case "temperature":
			d.Diss.Temperature = temperature
		case "interaction":
			d.Ham.Interaction = interaction
		case "delocalized":
			d.ME.Delocalized = delocalized
		case "verbose":
			d.Verbose = verbose
		}
	})
	cfg.Upper = strings.ToUpper(strings.TrimSpace(cfg.Upper))
	cfg.Env, cfg.Defaults = env, d

	return cfg, nil
}

// request converts cfg into a pipeline request.
func request(cfg Config) (simulation.Request, error) {
	hopts, err := cfg.Defaults.HamiltonianOptions()
	if err != nil {
		return simulation.Request{}, err
	}
	dopts, err := cfg.Defaults.DissipatorOptions()
	if err != nil {
		return simulation.Request{}, err
	}
	mopts, err := cfg.Defaults.DynamicsOptions()
	if err != nil {
		return simulation.Request{}, err
	}

	return simulation.Request{
		Upper:       cfg.Upper,
		Model:       cfg.Model,
		Methylated:  cfg.Methylated,
		Hamiltonian: hopts,
		Dissipator:  dopts,
		Dynamics:    mopts,
		Save:        cfg.Save,
		Name:        cfg.Name,
	}, nil
}

// Run executes the qdna command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) (err error) {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger := log.New(errOut, "qdna: ", 0)

	req, err := request(cfg)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Env.ServiceName, cfg.Env.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = errors.Join(err, shutdown(flushCtx))
	}()

	tries := cfg.Env.ParamRetries
	if tries == 0 {
		tries = 1
	}
	src := params.NewRetrying(params.NewCached(params.NewFileSource(cfg.Env.ParamDir)),
		params.WithMaxTries(tries),
		params.WithNotify(func(err error, next time.Duration) {
			logger.Printf("params: retrying in %s: %v", next.Round(time.Millisecond), err)
		}),
	)

	opts := []simulation.Option{simulation.WithVerbose(cfg.Defaults.Verbose)}
	if cfg.Defaults.Verbose {
		opts = append(opts, simulation.WithLogger(logger))
	}
	if cfg.Save {
		st, err := storage.NewStore(cfg.Env.StoreBackend, cfg.Env.SQLitePath)
		if err != nil {
			return err
		}
		if err := st.Init(ctx); err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, simulation.WithStore(st))
	}

	res, err := simulation.New(src, opts...).Run(ctx, req)
	if err != nil {
		return err
	}
	printResult(out, cfg, res)

	return nil
}

func printResult(out io.Writer, cfg Config, res simulation.Result) {
	ham := res.Engine.Hamiltonian()
	fmt.Fprintf(out, "sequence:          %s (%s, %s)\n", cfg.Upper, cfg.Model, ham.Description())
	fmt.Fprintf(out, "source:            %s\n", ham.Source())
	fmt.Fprintf(out, "dimension:         %s\n", humanize.Comma(int64(ham.Dim())))
	switch {
	case res.LifetimeObserved:
		fmt.Fprintf(out, "lifetime:          %s\n", humanize.SIWithDigits(res.Lifetime*1e-15, 2, "s"))
	case ham.Relaxation():
		fmt.Fprintf(out, "lifetime:          > %g %s\n", res.Engine.TEnd(), res.Engine.TimeUnit())
	}
	if ham.Description() == hamiltonian.TwoParticle {
		fmt.Fprintf(out, "charge separation: %.4f Å\n", res.ChargeSeparation)
		fmt.Fprintf(out, "dipole moment:     %.4f D\n", res.DipoleMoment)
	}
	if res.Record != nil {
		fmt.Fprintf(out, "saved:             %s\n", res.Record)
	}
}
