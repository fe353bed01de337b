package lorentz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultTimeStep            = 0.01
	DefaultCooldown            = 0.2
	DefaultMaxSpeed            = 200.0
	DefaultBoundaryRadius      = 30.0
	DefaultExtractionAngle     = 0.15
	DefaultExtractionTolerance = 0.05
)

// State is the kinematic state of one particle. Hosts that animate several
// particles keep one State per particle.
type State struct {
	Position    r3.Vec
	Velocity    r3.Vec
	ElapsedTime float64

	// Extracted latches once the particle leaves through the extraction
	// window. Only Reset clears it.
	Extracted bool

	LastGapCrossingTime float64
	PreviousQuadrant    Quadrant
	PreviousPosition    r3.Vec
}

// NewState returns a fresh state at pos moving with vel.
func NewState(pos, vel r3.Vec) *State {
	s := &State{}
	s.Reset(pos, vel)
	return s
}

// Reset replaces the whole state, clearing the extraction latch and the
// gap detector history.
func (s *State) Reset(pos, vel r3.Vec) {
	*s = State{
		Position:         pos,
		Velocity:         vel,
		PreviousPosition: pos,
	}
}

func (s *State) Clone() *State {
	c := *s
	return &c
}

func (s *State) Speed() float64 {
	return r3.Norm(s.Velocity)
}

func (s *State) KineticEnergy(mass float64) float64 {
	return 0.5 * mass * r3.Norm2(s.Velocity)
}

// Radius is the distance from the field axis, measured in the X-Z plane.
func (s *State) Radius() float64 {
	return math.Hypot(s.Position.X, s.Position.Z)
}

// Angle is the polar angle of the position in the X-Z plane, in (-π, π].
func (s *State) Angle() float64 {
	return math.Atan2(s.Position.Z, s.Position.X)
}

func (s *State) IsValid() bool {
	for _, v := range []float64{
		s.Position.X, s.Position.Y, s.Position.Z,
		s.Velocity.X, s.Velocity.Y, s.Velocity.Z,
		s.ElapsedTime,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Params are the step parameters sampled once per step by the host.
//
// A non-positive BoundaryRadius disables the wall, a non-positive MaxSpeed
// disables the speed clamp and a non-positive ExtractionTolerance falls back
// to DefaultExtractionTolerance.
type Params struct {
	Mass          float64
	Charge        float64
	MagneticField float64
	Voltage       float64
	TimeStep      float64

	BoundaryRadius      float64
	GapCrossingCooldown float64
	MaxSpeed            float64

	ExtractionEnabled   bool
	ExtractionAngle     float64
	ExtractionTolerance float64
}

func DefaultParams() Params {
	return Params{
		Mass:                1.0,
		Charge:              1.0,
		MagneticField:       0.5,
		Voltage:             3.0,
		TimeStep:            DefaultTimeStep,
		BoundaryRadius:      DefaultBoundaryRadius,
		GapCrossingCooldown: DefaultCooldown,
		MaxSpeed:            DefaultMaxSpeed,
		ExtractionEnabled:   true,
		ExtractionAngle:     DefaultExtractionAngle,
		ExtractionTolerance: DefaultExtractionTolerance,
	}
}

// Validate rejects parameters that would divide by zero.
func (p Params) Validate() error {
	if !(p.Mass > 0) || !(p.TimeStep > 0) {
		return ErrDegenerateParameters
	}
	return nil
}

// Field is the magnetic field vector. The field always points along +Y.
func (p Params) Field() r3.Vec {
	return r3.Vec{Y: p.MagneticField}
}

func (p Params) extractionTolerance() float64 {
	if p.ExtractionTolerance > 0 {
		return p.ExtractionTolerance
	}
	return DefaultExtractionTolerance
}

// Outcome tells the host how to react after a step.
type Outcome int

const (
	// Continuing is the normal result, including steps taken while the
	// particle is already coasting after extraction.
	Continuing Outcome = iota
	// Extracted is returned only on the step that latched extraction.
	Extracted
	// Halted means the particle hit the wall with extraction disabled.
	// The state was not advanced and the host should stop stepping.
	Halted
)

func (o Outcome) String() string {
	switch o {
	case Continuing:
		return "continuing"
	case Extracted:
		return "extracted"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	switch s {
	case "extracted":
		return Extracted
	case "halted":
		return Halted
	}
	return Continuing
}

// Report describes what happened during one step.
type Report struct {
	Outcome Outcome

	// Crossing is set when the gap detector fired, whether or not the
	// impulse was then applied.
	Crossing bool
	// Impulse is set when the electric kick was applied.
	Impulse bool
	// Debounced and SpeedLimited explain a crossing without an impulse.
	Debounced    bool
	SpeedLimited bool
	// EnergyClamped is set when the kick would have driven the kinetic
	// energy below zero and the particle was stopped instead.
	EnergyClamped bool

	Reflected bool

	SpeedBefore float64
	SpeedAfter  float64
}
