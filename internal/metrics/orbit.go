package metrics

import (
	"math"

	"github.com/san-kum/cyclosim/internal/lorentz"
)

type MaxRadius struct {
	name   string
	radius float64
}

func NewMaxRadius() *MaxRadius {
	return &MaxRadius{name: "max_radius"}
}

func (m *MaxRadius) Name() string { return m.name }

func (m *MaxRadius) Observe(s *lorentz.State, p lorentz.Params, r lorentz.Report) {
	m.radius = math.Max(m.radius, s.Radius())
}

func (m *MaxRadius) Value() float64 { return m.radius }

func (m *MaxRadius) Reset() { m.radius = 0 }

// Counter counts steps whose report matches a predicate.
type Counter struct {
	name  string
	match func(lorentz.Report) bool
	count int
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(s *lorentz.State, p lorentz.Params, r lorentz.Report) {
	if c.match(r) {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Reset() { c.count = 0 }

// NewCrossings counts gap crossings that delivered an impulse.
func NewCrossings() *Counter {
	return &Counter{name: "crossings", match: func(r lorentz.Report) bool { return r.Impulse }}
}

// NewSuppressed counts crossings rejected by the cooldown or speed guard.
func NewSuppressed() *Counter {
	return &Counter{name: "suppressed", match: func(r lorentz.Report) bool { return r.Crossing && !r.Impulse }}
}

func NewReflections() *Counter {
	return &Counter{name: "reflections", match: func(r lorentz.Report) bool { return r.Reflected }}
}
