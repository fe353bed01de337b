package metrics

import (
	"testing"

	"github.com/san-kum/cyclosim/internal/lorentz"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMaxRadius(t *testing.T) {
	m := NewMaxRadius()
	p := lorentz.DefaultParams()

	for _, pos := range []r3.Vec{{X: 3}, {X: 3, Z: 4}, {Z: -2}} {
		m.Observe(lorentz.NewState(pos, r3.Vec{}), p, lorentz.Report{})
	}
	if m.Value() != 5 {
		t.Errorf("expected max radius 5, got %f", m.Value())
	}
}

func TestCounters(t *testing.T) {
	reports := []lorentz.Report{
		{Crossing: true, Impulse: true},
		{Crossing: true, Debounced: true},
		{Reflected: true},
		{},
		{Crossing: true, Impulse: true, Reflected: true},
	}

	tests := []struct {
		metric   *Counter
		expected float64
	}{
		{NewCrossings(), 2},
		{NewSuppressed(), 1},
		{NewReflections(), 2},
	}

	s := lorentz.NewState(r3.Vec{}, r3.Vec{})
	for _, tt := range tests {
		for _, r := range reports {
			tt.metric.Observe(s, lorentz.Params{}, r)
		}
		if got := tt.metric.Value(); got != tt.expected {
			t.Errorf("%s: expected %f, got %f", tt.metric.Name(), tt.expected, got)
		}
		tt.metric.Reset()
		if tt.metric.Value() != 0 {
			t.Errorf("%s: expected zero after reset", tt.metric.Name())
		}
	}
}
