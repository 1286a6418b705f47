package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/physics"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/sim"
	"github.com/san-kum/varint/internal/symbolic"
)

// drift adds a constant to q and fails at step failAt.
type drift struct {
	failAt int
	calls  int
}

func (d *drift) Name() string { return "drift" }

func (d *drift) Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error) {
	d.calls++
	if d.calls == d.failAt {
		return dynamo.Pair{}, errors.New("boom")
	}
	return dynamo.Pair{P: x.P, Q: x.Q + dt}, nil
}

type poison struct{}

func (poison) Name() string { return "poison" }
func (poison) Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error) {
	return dynamo.Pair{P: math.NaN(), Q: x.Q}, nil
}

var _ = Describe("Integrate", func() {
	var (
		ctx  context.Context
		span dynamo.Span
		init dynamo.Pair
	)

	BeforeEach(func() {
		ctx = context.Background()
		span = dynamo.Span{Start: 0, End: 1}
		init = dynamo.Pair{P: 1, Q: 0}
	})

	It("records N+1 entries including the initial state", func() {
		tr, err := sim.Integrate(ctx, &drift{}, init, span, 0.1, func(p, q float64) float64 { return p + q })
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Steps).To(Equal(10))
		Expect(tr.Len()).To(Equal(11))
		Expect(tr.Complete()).To(BeTrue())
		Expect(tr.Times[0]).To(Equal(0.0))
		Expect(tr.Observables[0]).To(Equal(1.0))
		Expect(tr.Times[10]).To(BeNumerically("~", 1.0, 1e-12))
		Expect(tr.Positions[10]).To(BeNumerically("~", 1.0, 1e-12))
	})

	It("rounds a partial final step up", func() {
		Expect(sim.StepCount(dynamo.Span{Start: 0, End: 1}, 0.3)).To(Equal(4))
		Expect(sim.StepCount(dynamo.Span{Start: 2, End: 3}, 0.1)).To(Equal(10))
	})

	It("notifies observers for every recorded step", func() {
		var seen []int
		obs := sim.ObserverFunc(func(k int, t float64, x dynamo.Pair, v float64) { seen = append(seen, k) })
		_, err := sim.Integrate(ctx, &drift{}, init, span, 0.25, nil, sim.WithObserver(obs))
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]int{0, 1, 2, 3, 4}))
	})

	It("returns the partial trajectory with a convergence error", func() {
		tr, err := sim.Integrate(ctx, &drift{failAt: 4}, init, span, 0.1, nil)
		Expect(errors.Is(err, dynamo.ErrConvergence)).To(BeTrue())

		var ce *dynamo.ConvergenceError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Step).To(Equal(4))
		Expect(ce.Last.Q).To(BeNumerically("~", 0.3, 1e-12))
		Expect(tr.Len()).To(Equal(4))
		Expect(tr.Complete()).To(BeFalse())
	})

	It("treats a non-finite step as invalid state", func() {
		tr, err := sim.Integrate(ctx, poison{}, init, span, 0.1, nil)
		Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
		Expect(errors.Is(err, dynamo.ErrConvergence)).To(BeTrue())
		Expect(tr.Len()).To(Equal(1))
	})

	It("stops on cancellation", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		tr, err := sim.Integrate(cctx, &drift{}, init, span, 0.1, nil)
		Expect(errors.Is(err, dynamo.ErrContextCanceled)).To(BeTrue())
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		Expect(tr.Len()).To(Equal(1))
	})

	DescribeTable("rejects bad configuration",
		func(s dynamo.Span, dt float64) {
			_, err := sim.Integrate(ctx, &drift{}, init, s, dt, nil)
			Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
		},
		Entry("zero dt", dynamo.Span{Start: 0, End: 1}, 0.0),
		Entry("negative dt", dynamo.Span{Start: 0, End: 1}, -0.1),
		Entry("empty span", dynamo.Span{Start: 1, End: 1}, 0.1),
		Entry("reversed span", dynamo.Span{Start: 1, End: 0}, 0.1),
	)

	It("rejects a non-finite initial pair", func() {
		_, err := sim.Integrate(ctx, &drift{}, dynamo.Pair{P: math.Inf(1)}, span, 0.1, nil)
		Expect(errors.Is(err, dynamo.ErrInvalidState)).To(BeTrue())
	})
})

var _ = Describe("Steppers", func() {
	var (
		sy    dynamo.Symbols
		model *physics.Oscillator
		init  dynamo.Pair
		span  dynamo.Span
	)

	BeforeEach(func() {
		sy = dynamo.DefaultSymbols()
		model = physics.NewHarmonicOscillator()
		init = dynamo.Pair{P: 0, Q: 1}
		span = dynamo.Span{Start: 0, End: 2}
	})

	It("agrees between implicit and explicit stepping", func() {
		sys, err := integrators.FromFamily(3, model.Lagrangian, nil, quadrature.GaussLobatto, sy)
		Expect(err).NotTo(HaveOccurred())
		m, err := integrators.ExtractExplicit(sys)
		Expect(err).NotTo(HaveOccurred())

		ctx := context.Background()
		imp, err := sim.Integrate(ctx, sim.NewImplicit(sys, symbolic.DefaultPolicy()), init, span, 0.1, model.Energy)
		Expect(err).NotTo(HaveOccurred())
		exp, err := sim.Integrate(ctx, sim.NewExplicit(m), init, span, 0.1, model.Energy)
		Expect(err).NotTo(HaveOccurred())

		Expect(imp.Len()).To(Equal(exp.Len()))
		for i := 0; i < imp.Len(); i++ {
			Expect(imp.Positions[i]).To(BeNumerically("~", exp.Positions[i], 1e-9))
			Expect(imp.Momenta[i]).To(BeNumerically("~", exp.Momenta[i], 1e-9))
		}
	})

	It("refuses a step size other than the one a bound map was extracted for", func() {
		sys, err := integrators.FromFamily(3, model.Lagrangian, nil, quadrature.GaussLobatto, sy)
		Expect(err).NotTo(HaveOccurred())
		m, err := integrators.ExtractExplicit(sys.Bind(0.1))
		Expect(err).NotTo(HaveOccurred())

		stepper := sim.NewExplicit(m)
		_, err = stepper.Step(0, init, 0.1)
		Expect(err).NotTo(HaveOccurred())
		_, err = stepper.Step(0, init, 0.05)
		Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
	})

	It("tracks the exact solution", func() {
		sys, err := integrators.FromFamily(2, model.Lagrangian, nil, quadrature.NewtonCotes, sy)
		Expect(err).NotTo(HaveOccurred())
		m, err := integrators.ExtractExplicit(sys)
		Expect(err).NotTo(HaveOccurred())

		tr, err := sim.Integrate(context.Background(), sim.NewExplicit(m), init, span, 0.01, nil)
		Expect(err).NotTo(HaveOccurred())
		last := tr.Len() - 1
		Expect(tr.Positions[last]).To(BeNumerically("~", math.Cos(2), 1e-3))
		Expect(tr.Momenta[last]).To(BeNumerically("~", -math.Sin(2), 1e-3))
	})

	It("keeps the energy of a conservative system bounded", func() {
		sys, err := integrators.FromFamily(3, model.Lagrangian, nil, quadrature.NewtonCotes, sy)
		Expect(err).NotTo(HaveOccurred())
		m, err := integrators.ExtractExplicit(sys)
		Expect(err).NotTo(HaveOccurred())

		long := dynamo.Span{Start: 0, End: 200}
		tr, err := sim.Integrate(context.Background(), sim.NewExplicit(m), init, long, 0.1, model.Energy)
		Expect(err).NotTo(HaveOccurred())

		e0 := tr.Observables[0]
		for _, e := range tr.Observables {
			Expect(math.Abs(e-e0) / e0).To(BeNumerically("<", 0.01))
		}
	})

	It("steps the pendulum implicitly through Newton", func() {
		pend := physics.NewPendulum()
		sys, err := integrators.FromFamily(2, pend.Lagrangian, nil, quadrature.GaussLegendre, sy)
		Expect(err).NotTo(HaveOccurred())

		start := dynamo.Pair{P: 0, Q: 0.5}
		tr, err := sim.Integrate(context.Background(), sim.NewImplicit(sys, symbolic.DefaultPolicy()), start, dynamo.Span{End: 1}, 0.05, pend.Energy)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Complete()).To(BeTrue())
		e0 := tr.Observables[0]
		for _, e := range tr.Observables {
			Expect(e).To(BeNumerically("~", e0, 1e-3*e0))
		}
	})

	It("wraps reference integrators", func() {
		verlet, ok := integrators.NewReference("verlet")
		Expect(ok).To(BeTrue())
		st := sim.NewReference(verlet, model.Field)
		Expect(st.Name()).To(Equal("verlet"))

		tr, err := sim.Integrate(context.Background(), st, init, span, 0.01, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Positions[tr.Len()-1]).To(BeNumerically("~", math.Cos(2), 1e-3))
	})
})
