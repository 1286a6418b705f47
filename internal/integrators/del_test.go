package integrators

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

func freeParticle(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Scale(symbolic.Pow(dq, 2), 0.5)
}

func harmonic(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Scale(symbolic.Sub(symbolic.Pow(dq, 2), symbolic.Pow(q, 2)), 0.5)
}

func pendulum(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Add(symbolic.Scale(symbolic.Pow(dq, 2), 0.5), symbolic.Apply(symbolic.Cos, q))
}

func damping(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Scale(dq, -0.1)
}

func evalAt(g Gomega, e symbolic.Expr, env symbolic.Env) float64 {
	v, err := symbolic.Eval(e, env)
	g.Expect(err).NotTo(HaveOccurred())
	return v
}

func TestComputePQPinsBoundaries(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	rule, err := quadrature.Lookup(quadrature.GaussLegendre, 3)
	g.Expect(err).NotTo(HaveOccurred())
	times := sampleTimes(rule.Fractions(), sy.H)
	pos, vel, err := ComputePQ(times, sy, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(pos).To(HaveLen(3))
	g.Expect(vel).To(HaveLen(3))

	// a straight line through q[0] at 0 and q[2] at h has every sample on it
	env := symbolic.Env{sy.H: 0.5, sy.Qk(0): 1, sy.Qk(1): 2, sy.Qk(2): 3}
	for k := range pos {
		for _, s := range symbolic.Symbols(pos[k]) {
			g.Expect([]symbolic.Symbol{sy.H, sy.Qk(0), sy.Qk(1), sy.Qk(2)}).To(ContainElement(s))
		}
		g.Expect(evalAt(g, pos[k], env)).To(BeNumerically(">", 0))
	}

	line := symbolic.Env{sy.H: 2, sy.Qk(0): 0, sy.Qk(2): 2}
	mid := evalAt(g, times[1], symbolic.Env{sy.H: 2})
	line[sy.Qk(1)] = mid
	for k := range pos {
		tk := evalAt(g, times[k], symbolic.Env{sy.H: 2})
		g.Expect(evalAt(g, pos[k], line)).To(BeNumerically("~", tk, 1e-9))
		g.Expect(evalAt(g, vel[k], line)).To(BeNumerically("~", 1, 1e-9))
	}
}

func TestComputePQRejectsRepeatedTimes(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	h := sy.H.Expr()
	_, _, err := ComputePQ([]symbolic.Expr{symbolic.Scale(h, 0.5), symbolic.Scale(h, 0.5)}, sy, nil)
	g.Expect(errors.Is(err, dynamo.ErrReconstruction)).To(BeTrue())
}

func TestGaussLegendreFreeParticle(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	sys, err := FromFamily(2, freeParticle, nil, quadrature.GaussLegendre, sy)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sys.Equations).To(HaveLen(2))

	h := sy.H.Expr()
	q0, q1 := sy.Qk(0).Expr(), sy.Qk(1).Expr()
	want, _ := symbolic.Div(symbolic.Sub(q1, q0), h)

	g.Expect(sys.Equations[0].LHS.Equal(sy.Pk(0).Expr())).To(BeTrue())
	g.Expect(sys.Equations[0].RHS.Equal(want)).To(BeTrue(), sys.Equations[0].String())
	g.Expect(sys.Equations[1].LHS.Equal(sy.Pk(1).Expr())).To(BeTrue())
	g.Expect(sys.Equations[1].RHS.Equal(want)).To(BeTrue(), sys.Equations[1].String())
}

func TestNewtonCotesTrapezoidWeights(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	for _, f := range []quadrature.Family{quadrature.NewtonCotes, quadrature.Romberg} {
		sys, err := FromFamily(2, harmonic, nil, f, sy)
		g.Expect(err).NotTo(HaveOccurred())
		half := symbolic.Scale(sy.H.Expr(), 0.5)
		g.Expect(sys.Action.Weights).To(HaveLen(2))
		g.Expect(sys.Action.Weights[0].Equal(half)).To(BeTrue(), sys.Action.Weights[0].String())
		g.Expect(sys.Action.Weights[1].Equal(half)).To(BeTrue(), sys.Action.Weights[1].String())
	}
}

func TestSimpsonWeights(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()
	env := symbolic.Env{sy.H: 1}

	for _, f := range []quadrature.Family{quadrature.NewtonCotes, quadrature.Romberg} {
		sys, err := FromFamily(3, harmonic, nil, f, sy)
		g.Expect(err).NotTo(HaveOccurred())
		w := sys.Action.Weights
		g.Expect(evalAt(g, w[0], env)).To(BeNumerically("~", 1.0/6, 1e-12))
		g.Expect(evalAt(g, w[1], env)).To(BeNumerically("~", 2.0/3, 1e-12))
		g.Expect(evalAt(g, w[2], env)).To(BeNumerically("~", 1.0/6, 1e-12))
	}
}

func TestEulerLagrangeIsIdempotent(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	sys, err := FromFamily(3, pendulum, damping, quadrature.GaussLobatto, sy)
	g.Expect(err).NotTo(HaveOccurred())

	again, err := EulerLagrange(sys.N, sys.Action.DS, sys.Action.DF, sy)
	g.Expect(err).NotTo(HaveOccurred())
	for i := range again {
		g.Expect(again[i].Equal(sys.Equations[i])).To(BeTrue())
	}
	g.Expect(sys.Equations[1].LHS.IsZero()).To(BeTrue())

	_, err = EulerLagrange(3, sys.Action.DS, sys.Action.DF[:2], sy)
	g.Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
}

func TestConfigurationErrorsComeFirst(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()
	called := false
	spy := func(q, dq symbolic.Expr) symbolic.Expr {
		called = true
		return freeParticle(q, dq)
	}

	_, err := FromFamily(4, spy, nil, quadrature.Romberg, sy)
	g.Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
	_, err = FromFamily(4, spy, nil, quadrature.TakahasiMori, sy)
	g.Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
	_, err = FromRule(0, 1, []float64{0, 1.5}, []float64{0.5, 0.5}, spy, nil, sy)
	g.Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())
	g.Expect(called).To(BeFalse())
}

func TestFromRuleMatchesBuiltin(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	builtin, err := FromFamily(2, harmonic, nil, quadrature.ClenshawCurtis, sy)
	g.Expect(err).NotTo(HaveOccurred())
	// the same trapezoid rule on [0, 1]
	custom, err := FromRule(0, 1, []float64{1, 0}, []float64{0.5, 0.5}, harmonic, nil, sy)
	g.Expect(err).NotTo(HaveOccurred())

	for i := range builtin.Equations {
		g.Expect(custom.Equations[i].Equal(builtin.Equations[i])).To(BeTrue(),
			"%s vs %s", custom.Equations[i], builtin.Equations[i])
	}
}

func TestWithInterpolator(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()
	calls := 0
	counting := func(ts symbolic.Symbol, times, values []symbolic.Expr) (symbolic.Expr, error) {
		calls++
		return symbolic.Interpolate(ts, times, values)
	}

	_, err := FromFamily(3, harmonic, nil, quadrature.GaussLegendre, sy, WithInterpolator(counting))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(calls).To(Equal(1))
}

func TestDELTruncate(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	sys, err := FromFamily(2, harmonic, nil, quadrature.NewtonCotes, sy)
	g.Expect(err).NotTo(HaveOccurred())
	tr := sys.Truncate(0)
	for _, eq := range tr.Equations {
		g.Expect(symbolic.Degree(eq.RHS, sy.H)).To(Equal(0))
	}
	g.Expect(sys.Truncate(1).Equations[0].Equal(sys.Equations[0])).To(BeTrue())
}

func TestWeightedForcingTerms(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()
	env := symbolic.Env{sy.H: 0.2, sy.Qk(0): 1, sy.Qk(1): 1.5}

	// constant velocity 2.5 over the step, so every sample feels -0.25
	sys, err := FromFamily(2, freeParticle, damping, quadrature.GaussLegendre, sy)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sys.Action.DF).To(HaveLen(2))
	g.Expect(evalAt(g, sys.Action.DF[0], env)).To(BeNumerically("~", -0.025, 1e-12))
	g.Expect(evalAt(g, sys.Action.DF[1], env)).To(BeNumerically("~", -0.025, 1e-12))

	// F = -q weights each sample by how far it sits from the endpoint:
	// DF[0] = -h * int (1+f/2)(1-f), DF[1] = -h * int (1+f/2) f over [0,1]
	restoring := func(q, dq symbolic.Expr) symbolic.Expr { return symbolic.Neg(q) }
	sys, err = FromFamily(2, freeParticle, restoring, quadrature.GaussLegendre, sy)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(evalAt(g, sys.Action.DF[0], env)).To(BeNumerically("~", -0.2*(0.5+0.5/6), 1e-12))
	g.Expect(evalAt(g, sys.Action.DF[1], env)).To(BeNumerically("~", -0.2*(0.5+0.5/3), 1e-12))

	// the forcing reaches the momentum equations with the balance signs
	dS := sys.Action.DS
	p0 := -evalAt(g, symbolic.Diff(dS, sy.Qk(0)), env) - evalAt(g, sys.Action.DF[0], env)
	p1 := evalAt(g, symbolic.Diff(dS, sy.Qk(1)), env) + evalAt(g, sys.Action.DF[1], env)
	g.Expect(evalAt(g, sys.Equations[0].RHS, env)).To(BeNumerically("~", p0, 1e-12))
	g.Expect(evalAt(g, sys.Equations[1].RHS, env)).To(BeNumerically("~", p1, 1e-12))
}

func TestBindReplacesStep(t *testing.T) {
	g := NewWithT(t)
	sy := dynamo.DefaultSymbols()

	sys, err := FromFamily(3, harmonic, damping, quadrature.GaussLobatto, sy)
	g.Expect(err).NotTo(HaveOccurred())
	bound := sys.Bind(0.1)
	g.Expect(bound.Step).To(Equal(0.1))
	g.Expect(sys.Step).To(BeZero())

	env := symbolic.Env{sy.Pk(0): 0.3, sy.Qk(0): 0.8, sy.Qk(1): 0.85, sy.Qk(2): 0.9, sy.Pk(2): 0.2}
	withH := symbolic.Env{sy.H: 0.1}
	for k, v := range env {
		withH[k] = v
	}
	for i, eq := range bound.Equations {
		g.Expect(symbolic.Contains(eq.RHS, sy.H)).To(BeFalse())
		g.Expect(evalAt(g, eq.RHS, env)).To(BeNumerically("~", evalAt(g, sys.Equations[i].RHS, withH), 1e-12))
	}
}
