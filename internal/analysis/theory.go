package analysis

import "math"

// AngularFrequency is ω = |q|B/m.
func AngularFrequency(charge, field, mass float64) float64 {
	return math.Abs(charge*field) / mass
}

// CyclotronFrequency is f = |q|B/(2πm). It does not depend on speed, which
// is what lets a fixed-frequency gap voltage keep accelerating the particle.
func CyclotronFrequency(charge, field, mass float64) float64 {
	return AngularFrequency(charge, field, mass) / (2 * math.Pi)
}

// Period returns +Inf when there is no field or no charge.
func Period(charge, field, mass float64) float64 {
	w := AngularFrequency(charge, field, mass)
	if w == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / w
}

// TheoreticalRadius is the gyration radius r = m·v/(|q|B).
func TheoreticalRadius(mass, speed, charge, field float64) float64 {
	qb := math.Abs(charge * field)
	if qb == 0 {
		return math.Inf(1)
	}
	return mass * speed / qb
}

func KineticEnergy(mass, speed float64) float64 {
	return 0.5 * mass * speed * speed
}

// SpeedForEnergy inverts KineticEnergy. Negative energies give zero.
func SpeedForEnergy(mass, energy float64) float64 {
	if energy <= 0 {
		return 0
	}
	return math.Sqrt(2 * energy / mass)
}

// ExtractionEnergy is the kinetic energy of a particle whose gyration
// radius equals the dee radius: (qBR)²/(2m).
func ExtractionEnergy(charge, field, radius, mass float64) float64 {
	p := charge * field * radius
	return p * p / (2 * mass)
}

// CrossingsToExtract estimates how many gap impulses of q·V take a particle
// from energy e0 to the extraction energy.
func CrossingsToExtract(e0, charge, voltage, field, radius, mass float64) int {
	gain := charge * voltage
	target := ExtractionEnergy(charge, field, radius, mass)
	if e0 >= target {
		return 0
	}
	if gain <= 0 {
		return -1
	}
	return int(math.Ceil((target - e0) / gain))
}
