package lorentz

import "gonum.org/v1/gonum/spatial/r3"

// Quadrant is the angular sector of a position in the X-Z plane, counted
// counterclockwise from +X. QuadrantNone marks the origin and an
// unclassified history.
type Quadrant uint8

const (
	QuadrantNone Quadrant = iota
	Quadrant1
	Quadrant2
	Quadrant3
	Quadrant4
)

// QuadrantOf classifies p. Points on an axis belong to the quadrant that
// is entered when moving counterclockwise onto that axis:
//
//	x>0,  z>=0 -> 1
//	x<=0, z>0  -> 2
//	x<0,  z<=0 -> 3
//	x>=0, z<0  -> 4
func QuadrantOf(p r3.Vec) Quadrant {
	x, z := p.X, p.Z
	switch {
	case x > 0 && z >= 0:
		return Quadrant1
	case x <= 0 && z > 0:
		return Quadrant2
	case x < 0 && z <= 0:
		return Quadrant3
	case x >= 0 && z < 0:
		return Quadrant4
	}
	return QuadrantNone
}

// observeGap is the edge-triggered gap detector. The gap lies along the Z
// axis (x = 0), so it fires when the particle moved from quadrant 1 to 2
// or from 3 to 4, or when x changed sign since the previous observation
// while z is off the X axis. The sign test catches clockwise orbits and
// steps long enough to jump a whole quadrant.
//
// The first observation after a reset only records the quadrant. The
// detector history always advances to the current position, so a crossing
// suppressed by a guard is consumed rather than retried.
func observeGap(s *State) bool {
	prevQ, prevPos := s.PreviousQuadrant, s.PreviousPosition
	cur := QuadrantOf(s.Position)

	s.PreviousQuadrant = cur
	s.PreviousPosition = s.Position

	if prevQ == QuadrantNone {
		return false
	}

	transition := (prevQ == Quadrant1 && cur == Quadrant2) ||
		(prevQ == Quadrant3 && cur == Quadrant4)

	x := s.Position.X
	flipped := (prevPos.X >= 0 && x < 0) || (prevPos.X <= 0 && x > 0)

	return transition || (flipped && s.Position.Z != 0)
}
