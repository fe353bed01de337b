package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/cyclosim/internal/integrators"
	"github.com/san-kum/cyclosim/internal/lorentz"
	"github.com/san-kum/cyclosim/internal/sim"
)

type countingMetric struct {
	steps  int
	resets int
}

func (c *countingMetric) Name() string { return "steps" }
func (c *countingMetric) Observe(*lorentz.State, lorentz.Params, lorentz.Report) {
	c.steps++
}
func (c *countingMetric) Value() float64 { return float64(c.steps) }
func (c *countingMetric) Reset()         { c.steps = 0; c.resets++ }

type observerFunc func(*lorentz.State, lorentz.Report, float64)

func (f observerFunc) OnStep(s *lorentz.State, r lorentz.Report, t float64) { f(s, r, t) }

func classicState() *lorentz.State {
	return lorentz.NewState(r3.Vec{X: 5}, r3.Vec{Z: 3})
}

func windowState(radius float64) *lorentz.State {
	dir := r3.Vec{X: math.Cos(lorentz.DefaultExtractionAngle), Z: math.Sin(lorentz.DefaultExtractionAngle)}
	return lorentz.NewState(r3.Scale(radius, dir), r3.Scale(4, dir))
}

var _ = Describe("Simulator", func() {
	var (
		params lorentz.Params
		s      *sim.Simulator
		ctx    context.Context
	)

	BeforeEach(func() {
		params = lorentz.DefaultParams()
		s = sim.New(lorentz.New(integrators.NewLeapfrog()), sim.StaticParams(params))
		ctx = context.Background()
	})

	Describe("Run", func() {
		It("takes duration/dt steps and samples every step", func() {
			res, err := s.Run(ctx, classicState(), sim.Config{Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(100))
			Expect(res.Samples).To(HaveLen(101))
			Expect(res.Samples[0].Time).To(Equal(0.0))
			Expect(res.Final().Time).To(BeNumerically("~", 1.0, 1e-9))
			Expect(res.Outcome).To(Equal(lorentz.Continuing))
		})

		It("thins samples with SampleEvery", func() {
			res, err := s.Run(ctx, classicState(), sim.Config{Duration: 1, SampleEvery: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Samples).To(HaveLen(11))
		})

		It("caps the run with MaxSteps", func() {
			res, err := s.Run(ctx, classicState(), sim.Config{Duration: 100, MaxSteps: 25})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(25))
		})

		It("keeps the energy ledger over impulses", func() {
			st := classicState()
			e0 := st.KineticEnergy(params.Mass)

			res, err := s.Run(ctx, st, sim.Config{Duration: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Impulses).To(BeNumerically(">", 0))
			Expect(res.Count(sim.EventImpulse)).To(Equal(res.Impulses))

			want := e0 + float64(res.Impulses)*params.Charge*params.Voltage
			Expect(res.Final().Energy).To(BeNumerically("~", want, 1e-9*want))
		})

		It("stops when the particle halts at the wall", func() {
			params.ExtractionEnabled = false
			s = sim.New(lorentz.New(nil), sim.StaticParams(params))
			st := lorentz.NewState(r3.Vec{X: 35}, r3.Vec{X: 1})

			res, err := s.Run(ctx, st, sim.Config{Duration: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(lorentz.Halted))
			Expect(res.StepsTaken).To(Equal(1))
			Expect(res.Count(sim.EventHalt)).To(Equal(1))
			Expect(st.Position).To(Equal(r3.Vec{X: 35}))
			Expect(res.Final().Outcome).To(Equal(lorentz.Halted))
		})

		It("stops on extraction when asked", func() {
			res, err := s.Run(ctx, windowState(30.5), sim.Config{Duration: 10, StopOnExtract: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(lorentz.Extracted))
			Expect(res.StepsTaken).To(Equal(1))
		})

		It("keeps coasting after extraction otherwise", func() {
			st := windowState(30.5)
			res, err := s.Run(ctx, st, sim.Config{Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Outcome).To(Equal(lorentz.Extracted))
			Expect(res.StepsTaken).To(Equal(100))
			Expect(res.Count(sim.EventExtraction)).To(Equal(1))
			Expect(st.Radius()).To(BeNumerically("~", 34.5, 1e-9))
		})

		It("feeds metrics and observers every step", func() {
			m := &countingMetric{}
			calls := 0
			s.AddMetric(m)
			s.AddObserver(observerFunc(func(*lorentz.State, lorentz.Report, float64) { calls++ }))

			res, err := s.Run(ctx, classicState(), sim.Config{Duration: 0.5})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.resets).To(Equal(1))
			Expect(res.Metrics).To(HaveKeyWithValue("steps", 50.0))
			Expect(calls).To(Equal(50))
		})

		It("samples parameters with the run clock", func() {
			var seen []float64
			src := sim.ParamFunc(func(t float64) lorentz.Params {
				seen = append(seen, t)
				return params
			})
			s = sim.New(lorentz.New(nil), src)

			_, err := s.Run(ctx, classicState(), sim.Config{Duration: 0.03})
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).To(HaveLen(4))
			Expect(seen[3]).To(BeNumerically("~", 0.02, 1e-12))
		})

		It("returns the partial result on cancellation", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			res, err := s.Run(cctx, classicState(), sim.Config{Duration: 1})
			Expect(err).To(MatchError(context.Canceled))
			Expect(res).NotTo(BeNil())
			Expect(res.StepsTaken).To(Equal(0))
		})
	})

	Describe("errors", func() {
		It("rejects a missing integrator", func() {
			_, err := sim.New(nil, sim.StaticParams(params)).Run(ctx, classicState(), sim.Config{Duration: 1})
			Expect(err).To(MatchError(sim.ErrNoIntegrator))
		})

		It("rejects a missing parameter source", func() {
			_, err := sim.New(lorentz.New(nil), nil).Run(ctx, classicState(), sim.Config{Duration: 1})
			Expect(err).To(MatchError(sim.ErrNoParams))
		})

		It("rejects a non-positive duration", func() {
			_, err := s.Run(ctx, classicState(), sim.Config{})
			Expect(errors.Is(err, sim.ErrInvalidRun)).To(BeTrue())
		})

		It("rejects degenerate initial parameters", func() {
			params.Mass = 0
			s = sim.New(lorentz.New(nil), sim.StaticParams(params))
			_, err := s.Run(ctx, classicState(), sim.Config{Duration: 1})
			Expect(errors.Is(err, lorentz.ErrDegenerateParameters)).To(BeTrue())
		})

		It("reports a state that turns non-finite", func() {
			st := classicState()
			st.Velocity.X = math.NaN()

			res, err := s.Run(ctx, st, sim.Config{Duration: 1, ValidateState: true})
			Expect(errors.Is(err, sim.ErrInvalidState)).To(BeTrue())
			Expect(res.StepsTaken).To(Equal(1))
		})

		It("reports the step at which parameters degenerate", func() {
			src := sim.ParamFunc(func(t float64) lorentz.Params {
				p := params
				if t > 0.5 {
					p.TimeStep = 0
				}
				return p
			})
			s = sim.New(lorentz.New(nil), src)

			res, err := s.Run(ctx, classicState(), sim.Config{Duration: 1})
			var simErr *sim.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Step).To(Equal(res.StepsTaken))
			Expect(simErr.Time).To(BeNumerically(">", 0.5))
			Expect(errors.Is(err, lorentz.ErrDegenerateParameters)).To(BeTrue())
		})
	})

	Describe("RunWithCallback", func() {
		It("stops when the callback declines", func() {
			calls := 0
			err := s.RunWithCallback(ctx, classicState(), sim.Config{Duration: 10}, func(*lorentz.State, lorentz.Report, float64) bool {
				calls++
				return calls < 7
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(7))
		})
	})
})

var _ = Describe("Ensemble", func() {
	factory := func(p sim.ParamSource) *sim.Simulator {
		return sim.New(lorentz.New(integrators.NewBoris()), p)
	}

	It("returns results in job order", func() {
		voltages := []float64{0, 1, 2, 4}
		jobs := make([]sim.Job, len(voltages))
		for i, v := range voltages {
			p := lorentz.DefaultParams()
			p.Voltage = v
			jobs[i] = sim.Job{State: classicState(), Params: sim.StaticParams(p), Config: sim.Config{Duration: 20}}
		}

		results, err := sim.NewEnsemble(factory, 2).Run(context.Background(), jobs)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(jobs)))

		Expect(results[0].Final().Energy).To(BeNumerically("~", 4.5, 1e-9))
		for i := 1; i < len(results); i++ {
			Expect(results[i].Final().Energy).To(BeNumerically(">", results[i-1].Final().Energy))
		}
	})

	It("propagates the first failure", func() {
		jobs := []sim.Job{
			{State: classicState(), Params: sim.StaticParams(lorentz.DefaultParams()), Config: sim.Config{Duration: 1}},
			{State: classicState(), Params: sim.StaticParams(lorentz.DefaultParams()), Config: sim.Config{}},
		}

		_, err := sim.NewEnsemble(factory, 0).Run(context.Background(), jobs)
		Expect(errors.Is(err, sim.ErrInvalidRun)).To(BeTrue())
	})
})
