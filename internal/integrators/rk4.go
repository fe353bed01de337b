package integrators

import "gonum.org/v1/gonum/spatial/r3"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Push(pos, vel r3.Vec, qm float64, b r3.Vec, dt float64) (r3.Vec, r3.Vec) {
	halfDt := dt * 0.5

	kx1 := vel
	kv1 := Accel(vel, qm, b)

	v2 := r3.Add(vel, r3.Scale(halfDt, kv1))
	kx2 := v2
	kv2 := Accel(v2, qm, b)

	v3 := r3.Add(vel, r3.Scale(halfDt, kv2))
	kx3 := v3
	kv3 := Accel(v3, qm, b)

	v4 := r3.Add(vel, r3.Scale(dt, kv3))
	kx4 := v4
	kv4 := Accel(v4, qm, b)

	dt6 := dt / 6.0
	pos = r3.Add(pos, r3.Scale(dt6, weighted(kx1, kx2, kx3, kx4)))
	vel = r3.Add(vel, r3.Scale(dt6, weighted(kv1, kv2, kv3, kv4)))

	return pos, vel
}

func weighted(k1, k2, k3, k4 r3.Vec) r3.Vec {
	return r3.Add(r3.Add(k1, r3.Scale(2, k2)), r3.Add(r3.Scale(2, k3), k4))
}
