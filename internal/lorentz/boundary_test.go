package lorentz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestReflect_NegatesNormalComponent(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	angle := 2.0
	pos := r3.Vec{X: p.BoundaryRadius * math.Cos(angle), Z: p.BoundaryRadius * math.Sin(angle)}
	n := OutwardNormal(pos)
	v := r3.Vec{X: 3, Y: -1, Z: 4}

	got := Reflect(v, n)

	normalBefore := r3.Dot(v, n)
	tangentBefore := r3.Sub(v, r3.Scale(normalBefore, n))
	normalAfter := r3.Dot(got, n)
	tangentAfter := r3.Sub(got, r3.Scale(normalAfter, n))

	assert.InDelta(t, -normalBefore, normalAfter, 1e-12)
	assert.InDelta(t, tangentBefore.X, tangentAfter.X, 1e-12)
	assert.InDelta(t, tangentBefore.Y, tangentAfter.Y, 1e-12)
	assert.InDelta(t, tangentBefore.Z, tangentAfter.Z, 1e-12)
	assert.InDelta(t, r3.Norm(v), r3.Norm(got), 1e-12)
}

func TestReflect_AxisAligned(t *testing.T) {
	t.Parallel()

	got := Reflect(r3.Vec{X: 2, Y: 5, Z: -3}, r3.Vec{Z: 1})
	assert.Equal(t, r3.Vec{X: 2, Y: 5, Z: 3}, got)
}

func TestOutwardNormal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, r3.Vec{}, OutwardNormal(r3.Vec{Y: 3}))

	n := OutwardNormal(r3.Vec{X: 3, Y: 7, Z: 4})
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.Equal(t, 0.0, n.Y)
	assert.InDelta(t, 0.8, n.Z, 1e-12)
}

func TestInExtractionWindow(t *testing.T) {
	t.Parallel()

	at := func(angle float64) r3.Vec {
		return r3.Vec{X: 31 * math.Cos(angle), Z: 31 * math.Sin(angle)}
	}

	p := DefaultParams()
	assert.True(t, InExtractionWindow(at(0.15), p))
	assert.True(t, InExtractionWindow(at(0.19), p))
	assert.False(t, InExtractionWindow(at(0.21), p))
	assert.False(t, InExtractionWindow(at(0.09), p))

	p.ExtractionAngle = math.Pi
	assert.True(t, InExtractionWindow(at(-math.Pi+0.01), p), "window wraps around ±π")

	p.ExtractionAngle = 0
	p.ExtractionTolerance = 0
	assert.True(t, InExtractionWindow(at(0.04), p), "zero tolerance falls back to the default")
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	for _, o := range []Outcome{Continuing, Extracted, Halted} {
		assert.Equal(t, o, ParseOutcome(o.String()))
	}
	assert.Equal(t, "unknown", Outcome(42).String())
}
