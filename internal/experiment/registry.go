package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/cyclosim/internal/integrators"
	"github.com/san-kum/cyclosim/internal/metrics"
	"github.com/san-kum/cyclosim/internal/sim"
)

type Registry struct {
	pushers map[string]func() integrators.Pusher
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		pushers: make(map[string]func() integrators.Pusher),
		metrics: make(map[string]func() sim.Metric),
	}

	r.pushers["leapfrog"] = func() integrators.Pusher { return integrators.NewLeapfrog() }
	r.pushers["euler"] = func() integrators.Pusher { return integrators.NewEuler() }
	r.pushers["boris"] = func() integrators.Pusher { return integrators.NewBoris() }
	r.pushers["rk4"] = func() integrators.Pusher { return integrators.NewRK4() }

	r.metrics["final_energy"] = func() sim.Metric { return metrics.NewFinalEnergy() }
	r.metrics["energy_gain"] = func() sim.Metric { return metrics.NewEnergyGain() }
	r.metrics["max_radius"] = func() sim.Metric { return metrics.NewMaxRadius() }
	r.metrics["crossings"] = func() sim.Metric { return metrics.NewCrossings() }
	r.metrics["suppressed"] = func() sim.Metric { return metrics.NewSuppressed() }
	r.metrics["reflections"] = func() sim.Metric { return metrics.NewReflections() }
	r.metrics["speed_drift"] = func() sim.Metric { return metrics.NewSpeedDrift() }

	return r
}

func (r *Registry) GetPusher(name string) (integrators.Pusher, error) {
	fn, ok := r.pushers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListPushers() []string {
	return sortedKeys(r.pushers)
}

func (r *Registry) ListMetrics() []string {
	return sortedKeys(r.metrics)
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name]())
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
