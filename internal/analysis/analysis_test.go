package analysis

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/sim"
)

func TestTheory(t *testing.T) {
	assert.InDelta(t, 0.5, AngularFrequency(1, 0.5, 1), 1e-15)
	assert.InDelta(t, 0.5, AngularFrequency(-1, 0.5, 1), 1e-15)
	assert.InDelta(t, 1/(4*math.Pi), CyclotronFrequency(1, 0.5, 1), 1e-15)
	assert.InDelta(t, 4*math.Pi, Period(1, 0.5, 1), 1e-12)
	assert.True(t, math.IsInf(Period(0, 0.5, 1), 1))

	assert.InDelta(t, 6, TheoreticalRadius(1, 3, 1, 0.5), 1e-12)
	assert.True(t, math.IsInf(TheoreticalRadius(1, 3, 1, 0), 1))

	assert.InDelta(t, 4.5, KineticEnergy(1, 3), 1e-15)
	assert.InDelta(t, 3, SpeedForEnergy(1, 4.5), 1e-15)
	assert.Zero(t, SpeedForEnergy(1, -2))
}

func TestExtractionEnergy(t *testing.T) {
	assert.InDelta(t, 112.5, ExtractionEnergy(1, 0.5, 30, 1), 1e-12)

	assert.Equal(t, 36, CrossingsToExtract(4.5, 1, 3, 0.5, 30, 1))
	assert.Equal(t, 0, CrossingsToExtract(200, 1, 3, 0.5, 30, 1))
	assert.Equal(t, -1, CrossingsToExtract(4.5, 1, -3, 0.5, 30, 1))
}

func TestDominantFrequency(t *testing.T) {
	const dt = 0.01
	data := make([]float64, 1000)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	f, err := DominantFrequency(data, dt)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, f, 1e-6)

	_, err = DominantFrequency(data[:3], dt)
	assert.ErrorIs(t, err, ErrTooFewSamples)
}

func runOrbit(t *testing.T, duration float64, every int) []sim.Sample {
	t.Helper()
	p := lorentz.DefaultParams()
	p.Voltage = 0

	s := sim.New(lorentz.New(nil), sim.StaticParams(p))
	res, err := s.Run(context.Background(), lorentz.NewState(r3.Vec{X: 5}, r3.Vec{Z: 3}), sim.Config{Duration: duration, SampleEvery: every})
	require.NoError(t, err)
	return res.Samples
}

func TestOrbitFrequencyMatchesTheory(t *testing.T) {
	samples := runOrbit(t, 100, 5)

	f, err := OrbitFrequency(samples)
	require.NoError(t, err)
	assert.InDelta(t, CyclotronFrequency(1, 0.5, 1), f, 0.003)
}

func TestOrbitFrequencyIgnoresEventSamples(t *testing.T) {
	const dt, f0 = 0.1, 0.5
	at := func(tm float64) sim.Sample {
		return sim.Sample{Time: tm, Position: r3.Vec{X: 5 * math.Cos(2*math.Pi*f0*tm)}}
	}

	var samples []sim.Sample
	for i := 0; i < 400; i++ {
		tm := float64(i) * dt
		samples = append(samples, at(tm))
		if i == 123 {
			samples = append(samples, at(tm+0.03))
		}
	}
	samples = append(samples, at(39.95))

	grid, step := evenlySpaced(samples)
	assert.Len(t, grid, 400)
	assert.InDelta(t, dt, step, 1e-9)

	f, err := OrbitFrequency(samples)
	require.NoError(t, err)
	assert.InDelta(t, f0, f, 0.005)
}

func TestOrbitFrequencyThinnedRun(t *testing.T) {
	samples := runOrbit(t, 100, 7)

	f, err := OrbitFrequency(samples)
	require.NoError(t, err)
	assert.InDelta(t, CyclotronFrequency(1, 0.5, 1), f, 0.003)
}

func TestTurnRadii(t *testing.T) {
	// radius-6 orbit centred on (-1, 0, 0) crosses the +X axis at x = 5
	turns := TurnRadii(runOrbit(t, 30, 1))

	require.Len(t, turns, 2)
	period := Period(1, 0.5, 1)
	for i, tp := range turns {
		assert.InDelta(t, 5, tp.Radius, 0.01)
		assert.InDelta(t, 4.5, tp.Energy, 1e-9)
		assert.InDelta(t, float64(i+1)*period, tp.Time, 0.05)
	}
}

func TestOrbitToASCII(t *testing.T) {
	out := OrbitToASCII(runOrbit(t, 13, 1), 40, 20)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 20)
	assert.Contains(t, out, "•")
	assert.Contains(t, out, "┆")

	assert.Empty(t, OrbitToASCII(nil, 40, 20))
}
