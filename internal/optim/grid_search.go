package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/experiment"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"golang.org/x/sync/errgroup"
)

type Objective int

const (
	Minimize Objective = iota
	Maximize
)

// better reports whether a beats b under the objective.
func (o Objective) better(a, b float64) bool {
	if o == Maximize {
		return a > b
	}
	return a < b
}

// Point is one evaluated grid cell. Err is set when the cell's config was
// rejected or its run failed; such cells never win.
type Point struct {
	Params  map[string]float64
	Value   float64
	Outcome lorentz.Outcome
	Err     error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	limit      int
	logger     *slog.Logger
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// SetLimit bounds the number of runs in flight. Zero means no bound.
func (g *GridSearch) SetLimit(n int) { g.limit = n }

func (g *GridSearch) SetLogger(l *slog.Logger) { g.logger = l }

// Points enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	out := make([]map[string]float64, 0)
	g.combos(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) combos(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.combos(depth+1, newParams, out)
	}
}

// Search runs base with every grid combination applied and returns the
// best cell for metricName along with all evaluated cells in grid order.
// Ties keep the earliest cell.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	reg *experiment.Registry,
	metricName string,
	obj Objective,
) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("grid search: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if _, err := reg.GetMetric(metricName); err != nil {
		return Point{}, nil, err
	}

	combos := g.Points()
	points := make([]Point, len(combos))

	eg, ctx := errgroup.WithContext(ctx)
	if g.limit > 0 {
		eg.SetLimit(g.limit)
	}

	for i, params := range combos {
		eg.Go(func() error {
			points[i] = g.evaluate(ctx, base, reg, params, metricName)
			return ctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return Point{}, points, err
	}

	best := Point{Value: math.NaN()}
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		if math.IsNaN(best.Value) || obj.better(p.Value, best.Value) {
			best = p
		}
	}
	if best.Params == nil {
		return best, points, fmt.Errorf("grid search: no valid configuration among %d points", len(points))
	}
	return best, points, nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, reg *experiment.Registry, params map[string]float64, metricName string) Point {
	pt := Point{Params: params}

	cfg := base.Clone()
	for k, v := range params {
		if err := cfg.SetParam(k, v); err != nil {
			pt.Err = err
			return pt
		}
	}

	result, err := experiment.Run(ctx, reg, cfg, nil)
	if err != nil {
		pt.Err = err
		return pt
	}

	pt.Value = result.Metrics[metricName]
	pt.Outcome = result.Outcome
	if g.logger != nil {
		g.logger.Debug("grid point", "params", params, metricName, pt.Value, "outcome", pt.Outcome)
	}
	return pt
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// ParseRange reads "lo:hi:n" into Linspace(lo, hi, n), or a comma list of
// explicit values.
func ParseRange(s string) ([]float64, error) {
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("range %q: want lo:hi:n", s)
		}
		lo, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		hi, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("range %q: count must be a positive integer", s)
		}
		return Linspace(lo, hi, n), nil
	}

	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}
