package integrators

import "gonum.org/v1/gonum/spatial/r3"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Push(pos, vel r3.Vec, qm float64, b r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	acc := Accel(vel, qm, b)
	pos = r3.Add(pos, r3.Scale(dt, vel))
	vel = r3.Add(vel, r3.Scale(dt, acc))
	return pos, vel
}
