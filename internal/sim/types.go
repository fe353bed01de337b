package sim

import (
	"github.com/san-kum/cyclosim/internal/lorentz"
	"gonum.org/v1/gonum/spatial/r3"
)

// Stepper advances a particle by one time step. *lorentz.Integrator
// satisfies it.
type Stepper interface {
	Step(s *lorentz.State, p lorentz.Params) (lorentz.Report, error)
}

// ParamSource supplies the step parameters. It is sampled once per step
// with the run clock, so hosts can sweep a knob while the particle moves.
type ParamSource interface {
	ParamsAt(t float64) lorentz.Params
}

type StaticParams lorentz.Params

func (p StaticParams) ParamsAt(float64) lorentz.Params { return lorentz.Params(p) }

type ParamFunc func(t float64) lorentz.Params

func (f ParamFunc) ParamsAt(t float64) lorentz.Params { return f(t) }

type Metric interface {
	Name() string
	Observe(s *lorentz.State, p lorentz.Params, r lorentz.Report)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s *lorentz.State, r lorentz.Report, t float64)
}

type Config struct {
	// Duration is run time. The step count is Duration divided by the
	// time step of the first sampled parameters.
	Duration float64
	// SampleEvery records one sample per this many steps. Zero means 1.
	SampleEvery int
	// StopOnExtract ends the run on the step that latches extraction.
	StopOnExtract bool
	ValidateState bool
	// MaxSteps caps the step count when positive.
	MaxSteps int
}

type Sample struct {
	Time     float64
	Position r3.Vec
	Velocity r3.Vec
	Speed    float64
	Energy   float64
	Radius   float64
	Outcome  lorentz.Outcome
}

type EventKind int

const (
	EventImpulse EventKind = iota
	EventSuppressed
	EventClamp
	EventReflection
	EventExtraction
	EventHalt
)

func (k EventKind) String() string {
	switch k {
	case EventImpulse:
		return "impulse"
	case EventSuppressed:
		return "suppressed"
	case EventClamp:
		return "clamp"
	case EventReflection:
		return "reflection"
	case EventExtraction:
		return "extraction"
	case EventHalt:
		return "halt"
	}
	return "unknown"
}

type Event struct {
	Kind     EventKind
	Time     float64
	Position r3.Vec
	Speed    float64
}

type Result struct {
	Samples    []Sample
	Events     []Event
	Outcome    lorentz.Outcome
	StepsTaken int
	Impulses   int
	Metrics    map[string]float64
}

// Final returns the last recorded sample.
func (r *Result) Final() Sample {
	if len(r.Samples) == 0 {
		return Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}

func (r *Result) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func sampleOf(s *lorentz.State, p lorentz.Params, t float64, o lorentz.Outcome) Sample {
	return Sample{
		Time:     t,
		Position: s.Position,
		Velocity: s.Velocity,
		Speed:    s.Speed(),
		Energy:   s.KineticEnergy(p.Mass),
		Radius:   s.Radius(),
		Outcome:  o,
	}
}
