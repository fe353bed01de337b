package automation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/experiment"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Params are applied with
// config.SetParam on top of the preset.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Integrator string             `yaml:"integrator"`
	Duration   float64            `yaml:"duration"`
	Dt         float64            `yaml:"dt"`
	Extraction *bool              `yaml:"extraction"`
	Params     map[string]float64 `yaml:"params"`
	SaveAs     string             `yaml:"save_as"`
}

// Saver persists a finished run. *storage.Store implements it.
type Saver interface {
	Save(cfg *config.Config, result *sim.Result) (string, error)
}

type StepResult struct {
	Config *config.Config
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Config builds the run configuration for the step.
func (s ScenarioStep) Config() (*config.Config, error) {
	preset := s.Preset
	if preset == "" {
		preset = "classic"
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", preset)
	}

	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Duration > 0 {
		cfg.Duration = s.Duration
	}
	if s.Dt > 0 {
		cfg.Dt = s.Dt
	}
	if s.Extraction != nil {
		cfg.Boundary.ExtractionEnabled = *s.Extraction
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps with save_as are handed
// to saver when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, saver Saver, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("running scenario step", "step", i+1, "of", len(scenario.Steps), "preset", cfg.Name)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, logger); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Config: cfg, Result: result}
		if step.SaveAs != "" && saver != nil {
			sr.RunID, err = saver.Save(cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig jitters the launch of Base to see how robust
// extraction is to the injection conditions.
type MonteCarloConfig struct {
	Base         *config.Config
	RadiusJitter float64
	SpeedJitter  float64
	NumTrials    int
	Seed         int64
	Parallel     int
}

type MonteCarloResult struct {
	TrialID       int
	InitialRadius float64
	InitialSpeed  float64
	Outcome       lorentz.Outcome
	FinalEnergy   float64
	Impulses      int
}

// RunMonteCarlo runs the trials concurrently. Trial i always draws the same
// launch for a given seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	name := cfg.Base.Integrator
	if name == "" {
		name = "leapfrog"
	}
	pusher, err := registry.GetPusher(name)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	trials := make([]MonteCarloResult, cfg.NumTrials)
	jobs := make([]sim.Job, cfg.NumTrials)
	for i := range jobs {
		trialCfg := cfg.Base.Clone()
		trialCfg.Particle.InitialRadius = max(0, trialCfg.Particle.InitialRadius+(rng.Float64()-0.5)*2*cfg.RadiusJitter)
		trialCfg.Particle.InitialSpeed = max(0, trialCfg.Particle.InitialSpeed+(rng.Float64()-0.5)*2*cfg.SpeedJitter)

		st := trialCfg.InitialState()
		trials[i] = MonteCarloResult{TrialID: i, InitialRadius: trialCfg.Particle.InitialRadius, InitialSpeed: st.Speed()}
		jobs[i] = sim.Job{
			State:  st,
			Params: sim.StaticParams(trialCfg.Params()),
			Config: sim.Config{Duration: trialCfg.Duration, SampleEvery: 100, StopOnExtract: true},
		}
	}

	factory := func(p sim.ParamSource) *sim.Simulator {
		return sim.New(lorentz.New(pusher), p)
	}
	results, err := sim.NewEnsemble(factory, cfg.Parallel).Run(ctx, jobs)
	if err != nil {
		return nil, err
	}

	for i, res := range results {
		trials[i].Outcome = res.Outcome
		trials[i].FinalEnergy = res.Final().Energy
		trials[i].Impulses = res.Impulses
	}
	return trials, nil
}

// MonteCarloStats counts trials per outcome.
func MonteCarloStats(results []MonteCarloResult) map[lorentz.Outcome]int {
	counts := make(map[lorentz.Outcome]int)
	for _, r := range results {
		counts[r.Outcome]++
	}
	return counts
}
