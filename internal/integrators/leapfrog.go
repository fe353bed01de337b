package integrators

import "gonum.org/v1/gonum/spatial/r3"

// Leapfrog splits the kick symmetrically around the drift. The second
// half kick is evaluated with the half-step velocity, so a pure magnetic
// step grows the speed only by a factor 1+(qm·b·dt/2)², which callers
// normalise away.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Push(pos, vel r3.Vec, qm float64, b r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	halfDt := dt * 0.5

	vel = r3.Add(vel, r3.Scale(halfDt, Accel(vel, qm, b)))
	pos = r3.Add(pos, r3.Scale(dt, vel))
	vel = r3.Add(vel, r3.Scale(halfDt, Accel(vel, qm, b)))

	return pos, vel
}
