package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/cyclosim/internal/sim"
)

var ErrTooFewSamples = errors.New("analysis: too few samples")

// PowerSpectrum returns |X(k)| for the non-negative frequency bins of data.
func PowerSpectrum(data []float64) []float64 {
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantFrequency finds the strongest non-zero frequency in data sampled
// every dt, refined by parabolic interpolation around the peak bin.
func DominantFrequency(data []float64, dt float64) (float64, error) {
	n := len(data)
	if n < 4 || dt <= 0 {
		return 0, ErrTooFewSamples
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}

	bin := float64(peak)
	if peak > 0 && peak < len(ps)-1 {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}
	return bin / (float64(n) * dt), nil
}

// OrbitFrequency is the revolution frequency of a run, taken from the X
// coordinate of its samples. Event samples the runner adds off its regular
// interval (extraction, halt, last step) are dropped first.
func OrbitFrequency(samples []sim.Sample) (float64, error) {
	samples, dt := evenlySpaced(samples)
	if len(samples) < 4 {
		return 0, ErrTooFewSamples
	}

	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Position.X
	}
	f, err := DominantFrequency(xs, dt)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, ErrTooFewSamples
	}
	return f, nil
}

// evenlySpaced keeps the samples that fall on the run's sampling grid. The
// grid spacing is the most common gap between consecutive samples; off-grid
// samples only ever shorten a gap.
func evenlySpaced(samples []sim.Sample) ([]sim.Sample, float64) {
	if len(samples) < 2 {
		return samples, 0
	}

	const quantum = 1e-9
	counts := make(map[int64]int)
	var mode int64
	for i := 1; i < len(samples); i++ {
		d := int64(math.Round((samples[i].Time - samples[i-1].Time) / quantum))
		if d <= 0 {
			continue
		}
		counts[d]++
		if counts[d] > counts[mode] || (counts[d] == counts[mode] && d > mode) {
			mode = d
		}
	}
	if mode == 0 {
		return nil, 0
	}
	dt := float64(mode) * quantum

	t0 := samples[0].Time
	tol := dt * 1e-6
	out := make([]sim.Sample, 0, len(samples))
	for _, s := range samples {
		want := t0 + float64(len(out))*dt
		if math.Abs(s.Time-want) <= tol {
			out = append(out, s)
		}
	}
	return out, dt
}
