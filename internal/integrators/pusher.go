// Package integrators provides single-step schemes for moving a charged
// particle through a uniform magnetic field.
//
// Every scheme implements [Pusher]. Pushers are stateless, so one value can
// be shared by any number of independent simulations.
//
//   - [Leapfrog]: half kick, drift, half kick (default)
//   - [Euler]: forward Euler, drifts outward every orbit
//   - [Boris]: exact rotation, preserves speed to rounding
//   - [RK4]: classical fourth-order Runge-Kutta on the Lorentz ODE
package integrators

import "gonum.org/v1/gonum/spatial/r3"

// Pusher advances position and velocity by dt under the magnetic force
// qm*(v × b), where qm is the charge-to-mass ratio.
type Pusher interface {
	Push(pos, vel r3.Vec, qm float64, b r3.Vec, dt float64) (r3.Vec, r3.Vec)
}

// Accel returns the Lorentz acceleration qm*(v × b).
func Accel(vel r3.Vec, qm float64, b r3.Vec) r3.Vec {
	return r3.Scale(qm, r3.Cross(vel, b))
}
