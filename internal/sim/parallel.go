package sim

import (
	"context"

	"github.com/san-kum/cyclosim/internal/lorentz"
	"golang.org/x/sync/errgroup"
)

// Job is one independent particle run.
type Job struct {
	Name   string
	State  *lorentz.State
	Params ParamSource
	Config Config
}

// Factory builds a fresh simulator for a job. Metrics hold per-run state,
// so each job needs its own instances.
type Factory func(params ParamSource) *Simulator

type Ensemble struct {
	factory Factory
	limit   int
}

// NewEnsemble runs jobs with at most limit in flight. A non-positive limit
// means no bound.
func NewEnsemble(factory Factory, limit int) *Ensemble {
	return &Ensemble{factory: factory, limit: limit}
}

// Run executes every job and returns results in job order. The first
// failure cancels the remaining jobs.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			sim := e.factory(job.Params)
			res, err := sim.Run(ctx, job.State, job.Config)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
