package experiment_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/experiment"
	"github.com/san-kum/cyclosim/internal/lorentz"
)

var _ = Describe("Registry", func() {
	reg := experiment.NewRegistry()

	It("lists the pushers in order", func() {
		Expect(reg.ListPushers()).To(Equal([]string{"boris", "euler", "leapfrog", "rk4"}))
	})

	It("builds every listed pusher", func() {
		for _, name := range reg.ListPushers() {
			p, err := reg.GetPusher(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(p).NotTo(BeNil())
		}
	})

	It("rejects unknown names", func() {
		_, err := reg.GetPusher("verlet")
		Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
		_, err = reg.GetMetric("bogus")
		Expect(err).To(MatchError(ContainSubstring("unknown metric")))
	})

	It("returns fresh metric instances", func() {
		a := reg.DefaultMetrics()
		b := reg.DefaultMetrics()
		Expect(a).To(HaveLen(len(reg.ListMetrics())))
		for i := range a {
			Expect(a[i]).NotTo(BeIdenticalTo(b[i]))
		}
	})
})

var _ = Describe("Experiment", func() {
	var (
		reg *experiment.Registry
		cfg *config.Config
	)

	BeforeEach(func() {
		reg = experiment.NewRegistry()
		cfg = config.DefaultConfig()
		cfg.Duration = 15
	})

	It("refuses to run before setup", func() {
		_, err := experiment.New(cfg).Run(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid config", func() {
		cfg.Particle.Mass = 0
		err := experiment.New(cfg).Setup(reg, nil)
		Expect(errors.Is(err, config.ErrInvalidConfig)).To(BeTrue())
	})

	It("rejects an unknown integrator", func() {
		cfg.Integrator = "verlet"
		Expect(experiment.New(cfg).Setup(reg, nil)).To(HaveOccurred())
	})

	It("accelerates the classic particle", func() {
		res, err := experiment.Run(context.Background(), reg, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Metrics["crossings"]).To(BeNumerically(">=", 2))
		Expect(res.Metrics["energy_gain"]).To(BeNumerically("~", res.Metrics["crossings"]*cfg.Field.Voltage, 1e-6))
		Expect(res.Metrics["max_radius"]).To(BeNumerically(">", cfg.Particle.InitialRadius))
		Expect(res.Metrics["speed_drift"]).To(BeNumerically("<", 1e-9))
		Expect(res.Outcome).To(Equal(lorentz.Continuing))
	})

	DescribeTable("every integrator keeps the energy ledger",
		func(name string) {
			cfg.Integrator = name
			res, err := experiment.Run(context.Background(), reg, cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics["energy_gain"]).To(BeNumerically("~", res.Metrics["crossings"]*cfg.Field.Voltage, 1e-6))
		},
		Entry("leapfrog", "leapfrog"),
		Entry("euler", "euler"),
		Entry("boris", "boris"),
		Entry("rk4", "rk4"),
	)

	It("halts the contained preset at the wall", func() {
		cfg = config.GetPreset("contained")
		cfg.Field.Voltage = 20
		cfg.Duration = 200

		res, err := experiment.Run(context.Background(), reg, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Outcome).To(Equal(lorentz.Halted))
		Expect(res.Final().Radius).To(BeNumerically(">", cfg.Boundary.Radius))
	})
})
