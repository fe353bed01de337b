package metrics

import (
	"math"

	"github.com/san-kum/cyclosim/internal/lorentz"
)

// FinalEnergy is the kinetic energy after the last observed step.
type FinalEnergy struct {
	name   string
	energy float64
}

func NewFinalEnergy() *FinalEnergy {
	return &FinalEnergy{name: "final_energy"}
}

func (e *FinalEnergy) Name() string { return e.name }

func (e *FinalEnergy) Observe(s *lorentz.State, p lorentz.Params, r lorentz.Report) {
	e.energy = s.KineticEnergy(p.Mass)
}

func (e *FinalEnergy) Value() float64 { return e.energy }

func (e *FinalEnergy) Reset() { e.energy = 0 }

// EnergyGain is the kinetic energy gained since the first observed step,
// measured from the speed the particle had entering it.
type EnergyGain struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewEnergyGain() *EnergyGain {
	return &EnergyGain{name: "energy_gain"}
}

func (e *EnergyGain) Name() string { return e.name }

func (e *EnergyGain) Observe(s *lorentz.State, p lorentz.Params, r lorentz.Report) {
	if e.samples == 0 {
		e.initial = 0.5 * p.Mass * r.SpeedBefore * r.SpeedBefore
	}
	e.current = s.KineticEnergy(p.Mass)
	e.samples++
}

func (e *EnergyGain) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.current - e.initial
}

func (e *EnergyGain) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}

// SpeedDrift is the largest relative speed change seen on a step without
// an impulse. The magnetic force does no work, so anything above rounding
// is integrator error.
type SpeedDrift struct {
	name     string
	ref      float64
	maxDrift float64
	samples  int
}

func NewSpeedDrift() *SpeedDrift {
	return &SpeedDrift{name: "speed_drift"}
}

func (d *SpeedDrift) Name() string { return d.name }

func (d *SpeedDrift) Observe(s *lorentz.State, p lorentz.Params, r lorentz.Report) {
	if d.samples == 0 {
		d.ref = r.SpeedBefore
	}
	d.samples++

	speed := s.Speed()
	if r.Impulse {
		d.ref = speed
		return
	}
	if d.ref > 0 {
		d.maxDrift = math.Max(d.maxDrift, math.Abs(speed-d.ref)/d.ref)
	}
}

func (d *SpeedDrift) Value() float64 { return d.maxDrift }

func (d *SpeedDrift) Reset() {
	d.ref = 0
	d.maxDrift = 0
	d.samples = 0
}
