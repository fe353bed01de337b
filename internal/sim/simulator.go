package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/cyclosim/internal/lorentz"
)

type Simulator struct {
	stepper   Stepper
	params    ParamSource
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(stepper Stepper, params ParamSource) *Simulator {
	return &Simulator{
		stepper:   stepper,
		params:    params,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetLogger routes step diagnostics to l. A nil logger discards them.
func (s *Simulator) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.log = l
}

// Run steps st until the duration elapses, the particle halts at the wall
// or ctx is cancelled. st is advanced in place. On cancellation the partial
// result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, st *lorentz.State, cfg Config) (*Result, error) {
	if s.stepper == nil {
		return nil, ErrNoIntegrator
	}
	if s.params == nil {
		return nil, ErrNoParams
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	p := s.params.ParamsAt(0)
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("initial parameters: %w", err)
	}

	steps := int(math.Round(cfg.Duration / p.TimeStep))
	if cfg.MaxSteps > 0 && steps > cfg.MaxSteps {
		steps = cfg.MaxSteps
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Samples: make([]Sample, 0, steps/every+2),
		Events:  make([]Event, 0),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Samples = append(result.Samples, sampleOf(st, p, t, lorentz.Continuing))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, st)
			return result, ctx.Err()
		default:
		}

		p = s.params.ParamsAt(t)
		rep, err := s.stepper.Step(st, p)
		if err != nil {
			s.finish(result, st)
			return result, &SimulationError{Step: i, Time: t, Wrapped: err}
		}

		if rep.Outcome != lorentz.Halted {
			t += p.TimeStep
		}
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(st, p, rep)
		}
		for _, obs := range s.observers {
			obs.OnStep(st, rep, t)
		}
		s.record(result, st, rep, t)

		if cfg.ValidateState && !st.IsValid() {
			s.finish(result, st)
			return result, &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}

		last := i == steps-1
		stop := rep.Outcome == lorentz.Halted || (rep.Outcome == lorentz.Extracted && cfg.StopOnExtract)
		if i%every == every-1 || rep.Outcome != lorentz.Continuing || last || stop {
			result.Samples = append(result.Samples, sampleOf(st, p, t, rep.Outcome))
		}
		if stop {
			result.Outcome = rep.Outcome
			break
		}
	}

	s.finish(result, st)
	return result, nil
}

func (s *Simulator) record(result *Result, st *lorentz.State, rep lorentz.Report, t float64) {
	add := func(kind EventKind) {
		result.Events = append(result.Events, Event{Kind: kind, Time: t, Position: st.Position, Speed: rep.SpeedAfter})
	}

	switch {
	case rep.Impulse:
		result.Impulses++
		add(EventImpulse)
		s.log.Debug("gap crossing", "t", t, "speed_before", rep.SpeedBefore, "speed_after", rep.SpeedAfter)
		if rep.EnergyClamped {
			add(EventClamp)
			s.log.Debug("energy clamped to rest", "t", t)
		}
	case rep.Crossing:
		add(EventSuppressed)
		s.log.Debug("gap crossing suppressed", "t", t, "debounced", rep.Debounced, "speed_limited", rep.SpeedLimited)
	}

	if rep.Reflected {
		add(EventReflection)
		s.log.Debug("reflected at boundary", "t", t, "radius", st.Radius())
	}

	switch rep.Outcome {
	case lorentz.Extracted:
		add(EventExtraction)
		s.log.Info("particle extracted", "t", t, "speed", rep.SpeedAfter, "angle", st.Angle())
	case lorentz.Halted:
		add(EventHalt)
		s.log.Info("particle halted at boundary", "t", t, "radius", st.Radius())
	}
}

func (s *Simulator) finish(result *Result, st *lorentz.State) {
	if result.Outcome == lorentz.Continuing && st.Extracted {
		result.Outcome = lorentz.Extracted
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback steps st until the duration elapses or callback returns
// false. Nothing is recorded.
func (s *Simulator) RunWithCallback(ctx context.Context, st *lorentz.State, cfg Config, callback func(*lorentz.State, lorentz.Report, float64) bool) error {
	if s.stepper == nil {
		return ErrNoIntegrator
	}
	if s.params == nil {
		return ErrNoParams
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; t < cfg.Duration; i++ {
		if cfg.MaxSteps > 0 && i >= cfg.MaxSteps {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := s.params.ParamsAt(t)
		rep, err := s.stepper.Step(st, p)
		if err != nil {
			return &SimulationError{Step: i, Time: t, Wrapped: err}
		}
		if rep.Outcome == lorentz.Halted {
			callback(st, rep, t)
			return nil
		}
		t += p.TimeStep

		if !callback(st, rep, t) {
			return nil
		}
		if cfg.ValidateState && !st.IsValid() {
			return &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidRun, cfg.Duration)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrInvalidRun, cfg.SampleEvery)
	}
	return nil
}
