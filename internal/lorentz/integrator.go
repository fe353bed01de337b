package lorentz

import (
	"math"

	"github.com/san-kum/cyclosim/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

// Integrator steps a State under a pluggable magnetic pusher. The zero
// value uses the leapfrog scheme.
type Integrator struct {
	pusher integrators.Pusher
}

// New returns an integrator using p for the magnetic sub-step. A nil
// pusher selects leapfrog.
func New(p integrators.Pusher) *Integrator {
	return &Integrator{pusher: p}
}

var defaultIntegrator = New(integrators.NewLeapfrog())

// Step advances s with the leapfrog integrator.
func Step(s *State, p Params) (Report, error) {
	return defaultIntegrator.Step(s, p)
}

// Step advances s by one p.TimeStep:
//
//  1. an extracted particle only drifts in a straight line;
//  2. beyond the boundary the particle is extracted, reflected or halted;
//  3. the gap detector looks for a crossing since the previous step;
//  4. a crossing that passes the cooldown and speed guards adds q·V of
//     kinetic energy, keeping the direction of motion;
//  5. the magnetic sub-step bends the trajectory;
//  6. the speed is restored to its value before the magnetic sub-step;
//  7. the elapsed time advances.
//
// Only ErrDegenerateParameters is returned as an error, with s unchanged.
func (in *Integrator) Step(s *State, p Params) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, &StepError{Time: s.ElapsedTime, Mass: p.Mass, TimeStep: p.TimeStep, Wrapped: err}
	}

	rep := Report{Outcome: Continuing, SpeedBefore: s.Speed()}

	if s.Extracted {
		s.Position = r3.Add(s.Position, r3.Scale(p.TimeStep, s.Velocity))
		rep.SpeedAfter = rep.SpeedBefore
		return rep, nil
	}

	switch checkWall(s, p) {
	case wallHalt:
		rep.Outcome = Halted
		rep.SpeedAfter = rep.SpeedBefore
		return rep, nil
	case wallExtract:
		s.Position = r3.Add(s.Position, r3.Scale(p.TimeStep, s.Velocity))
		s.ElapsedTime += p.TimeStep
		rep.Outcome = Extracted
		rep.SpeedAfter = rep.SpeedBefore
		return rep, nil
	case wallReflect:
		rep.Reflected = true
	}

	speed := s.Speed()

	if observeGap(s) {
		rep.Crossing = true
		switch {
		case s.ElapsedTime-s.LastGapCrossingTime < p.GapCrossingCooldown:
			rep.Debounced = true
		case p.MaxSpeed > 0 && speed > p.MaxSpeed:
			rep.SpeedLimited = true
		default:
			s.LastGapCrossingTime = s.ElapsedTime
			speed, rep.EnergyClamped = kick(s, p, speed)
			rep.Impulse = true
		}
	}

	s.Position, s.Velocity = in.push(s.Position, s.Velocity, p.Charge/p.Mass, p.Field(), p.TimeStep)
	s.Velocity = withSpeed(s.Velocity, speed)

	s.ElapsedTime += p.TimeStep
	rep.SpeedAfter = speed
	return rep, nil
}

func (in *Integrator) push(pos, vel r3.Vec, qm float64, b r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	if in == nil || in.pusher == nil {
		return defaultIntegrator.pusher.Push(pos, vel, qm, b, dt)
	}
	return in.pusher.Push(pos, vel, qm, b, dt)
}

// kick applies the gap voltage as an energy change q·V and returns the new
// speed. Kinetic energy is floored at zero; the particle then stops.
func kick(s *State, p Params, speed float64) (float64, bool) {
	e0 := 0.5 * p.Mass * speed * speed
	e1 := e0 + p.Charge*p.Voltage

	clamped := false
	if e1 < 0 {
		e1, clamped = 0, true
	}

	v1 := math.Sqrt(2 * e1 / p.Mass)
	s.Velocity = withSpeed(s.Velocity, v1)
	if r3.Norm(s.Velocity) == 0 {
		return 0, clamped
	}
	return v1, clamped
}

// withSpeed rescales v to the given magnitude. A zero vector has no
// direction to keep; it is returned as is unless the target is also zero.
func withSpeed(v r3.Vec, speed float64) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return v
	}
	if speed == 0 {
		return r3.Vec{}
	}
	return r3.Scale(speed/n, v)
}
