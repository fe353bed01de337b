package lorentz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Reflect mirrors v about the plane with unit normal n: v - 2(v·n)n.
func Reflect(v, n r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(2*r3.Dot(v, n), n))
}

// OutwardNormal is the unit radial direction of p in the X-Z plane. It is
// the zero vector on the field axis.
func OutwardNormal(p r3.Vec) r3.Vec {
	r := math.Hypot(p.X, p.Z)
	if r == 0 {
		return r3.Vec{}
	}
	return r3.Vec{X: p.X / r, Z: p.Z / r}
}

// InExtractionWindow reports whether the polar angle of p lies within the
// tolerance of the configured extraction angle. The difference is wrapped
// into (-π, π] so windows near ±π work.
func InExtractionWindow(p r3.Vec, params Params) bool {
	angle := math.Atan2(p.Z, p.X)
	return math.Abs(wrapAngle(angle-params.ExtractionAngle)) < params.extractionTolerance()
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

type wallAction int

const (
	wallNone wallAction = iota
	wallReflect
	wallExtract
	wallHalt
)

// checkWall applies the containment policy for a particle beyond the
// boundary radius. Only velocities heading outward are mirrored; a particle
// already moving back inside is left alone so it cannot be bounced out.
func checkWall(s *State, p Params) wallAction {
	if p.BoundaryRadius <= 0 || s.Radius() <= p.BoundaryRadius {
		return wallNone
	}
	if !p.ExtractionEnabled {
		return wallHalt
	}
	if InExtractionWindow(s.Position, p) {
		s.Extracted = true
		return wallExtract
	}

	n := OutwardNormal(s.Position)
	// Still outside on the step after a bounce: mirroring again would send it back out.
	if r3.Dot(s.Velocity, n) <= 0 {
		return wallNone
	}
	s.Velocity = Reflect(s.Velocity, n)
	return wallReflect
}
