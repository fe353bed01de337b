package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/sim"
)

// Experiment is one configured run: a config, the simulator built from it
// and the particle state it advances.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	state     *lorentz.State
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the config and wires the named pusher, the default
// metrics and logger into a fresh simulator.
func (e *Experiment) Setup(reg *Registry, logger *slog.Logger) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	name := e.cfg.Integrator
	if name == "" {
		name = "leapfrog"
	}
	pusher, err := reg.GetPusher(name)
	if err != nil {
		return err
	}

	e.simulator = sim.New(lorentz.New(pusher), sim.StaticParams(e.cfg.Params()))
	e.simulator.SetLogger(logger)
	for _, m := range reg.DefaultMetrics() {
		e.simulator.AddMetric(m)
	}
	e.state = e.cfg.InitialState()
	return nil
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Duration:      e.cfg.Duration,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.state, e.SimConfig())
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// State returns the particle state; after Run it holds the final state.
func (e *Experiment) State() *lorentz.State { return e.state }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Run builds and runs an experiment for cfg in one call.
func Run(ctx context.Context, reg *Registry, cfg *config.Config, logger *slog.Logger) (*sim.Result, error) {
	exp := New(cfg)
	if err := exp.Setup(reg, logger); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
