package lorentz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestQuadrantOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    r3.Vec
		want Quadrant
	}{
		{"origin", r3.Vec{}, QuadrantNone},
		{"+x axis", r3.Vec{X: 1}, Quadrant1},
		{"first", r3.Vec{X: 1, Z: 1}, Quadrant1},
		{"+z axis", r3.Vec{Z: 1}, Quadrant2},
		{"second", r3.Vec{X: -1, Z: 1}, Quadrant2},
		{"-x axis", r3.Vec{X: -1}, Quadrant3},
		{"third", r3.Vec{X: -1, Z: -1}, Quadrant3},
		{"-z axis", r3.Vec{Z: -1}, Quadrant4},
		{"fourth", r3.Vec{X: 1, Z: -1}, Quadrant4},
		{"y ignored", r3.Vec{X: 1, Y: -9, Z: 1}, Quadrant1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuadrantOf(tt.p))
		})
	}
}

func TestObserveGap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		prevQ Quadrant
		prev  r3.Vec
		cur   r3.Vec
		want  bool
	}{
		{"no history", QuadrantNone, r3.Vec{X: 1, Z: 1}, r3.Vec{X: -1, Z: 1}, false},
		{"upper gap counterclockwise", Quadrant1, r3.Vec{X: 1, Z: 1}, r3.Vec{X: -1, Z: 1}, true},
		{"landing on the gap", Quadrant1, r3.Vec{X: 1, Z: 1}, r3.Vec{Z: 1}, true},
		{"lower gap counterclockwise", Quadrant3, r3.Vec{X: -1, Z: -1}, r3.Vec{X: 1, Z: -1}, true},
		{"upper gap clockwise", Quadrant2, r3.Vec{X: -1, Z: 1}, r3.Vec{X: 1, Z: 1}, true},
		{"lower gap clockwise", Quadrant4, r3.Vec{X: 1, Z: -1}, r3.Vec{X: -1, Z: -1}, true},
		{"crossing the x axis", Quadrant2, r3.Vec{X: -1, Z: 1}, r3.Vec{X: -1, Z: -1}, false},
		{"sign flip on the x axis", Quadrant1, r3.Vec{X: 1}, r3.Vec{X: -1}, false},
		{"same quadrant", Quadrant1, r3.Vec{X: 2, Z: 1}, r3.Vec{X: 1, Z: 2}, false},
		{"skipped quadrant", Quadrant4, r3.Vec{X: 1, Z: -0.1}, r3.Vec{X: -1, Z: 0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &State{Position: tt.cur, PreviousQuadrant: tt.prevQ, PreviousPosition: tt.prev}

			assert.Equal(t, tt.want, observeGap(s))
			assert.Equal(t, QuadrantOf(tt.cur), s.PreviousQuadrant)
			assert.Equal(t, tt.cur, s.PreviousPosition)
		})
	}
}
