package integrators

import "gonum.org/v1/gonum/spatial/r3"

// Boris rotates the velocity about b by 2·atan(qm·|b|·dt/2), so |v| is
// unchanged up to rounding.
type Boris struct{}

func NewBoris() *Boris {
	return &Boris{}
}

func (bp *Boris) Push(pos, vel r3.Vec, qm float64, b r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	t := r3.Scale(qm*dt*0.5, b)
	s := r3.Scale(2/(1+r3.Norm2(t)), t)

	vPrime := r3.Add(vel, r3.Cross(vel, t))
	vel = r3.Add(vel, r3.Cross(vPrime, s))
	pos = r3.Add(pos, r3.Scale(dt, vel))

	return pos, vel
}
