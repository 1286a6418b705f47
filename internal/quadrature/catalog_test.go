package quadrature

import (
	"errors"
	"math"
	"sort"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/varint/internal/dynamo"
)

func validCounts(f Family) []int {
	switch f {
	case Romberg:
		return []int{2, 3, 5, 9}
	case TakahasiMori:
		return []int{3, 5, 7, 9}
	case Chebyshev:
		return []int{2, 3, 4, 5, 6, 7, 9}
	}
	return []int{2, 3, 4, 5, 6}
}

func TestEveryRuleIsWellFormed(t *testing.T) {
	g := NewWithT(t)

	for _, f := range Families() {
		for _, n := range validCounts(f) {
			r, err := Lookup(f, n)
			g.Expect(err).NotTo(HaveOccurred(), "%s n=%d", f, n)
			g.Expect(r.Nodes).To(HaveLen(n), "%s n=%d", f, n)
			g.Expect(r.Weights).To(HaveLen(n), "%s n=%d", f, n)
			g.Expect(sort.Float64sAreSorted(r.Nodes)).To(BeTrue(), "%s n=%d", f, n)
			g.Expect(r.Nodes[0]).To(BeNumerically(">=", -1-1e-12))
			g.Expect(r.Nodes[n-1]).To(BeNumerically("<=", 1+1e-12))
			g.Expect(r.Total()).To(BeNumerically("~", 2, 1e-9), "%s n=%d", f, n)
		}
	}
}

func TestPolynomialExactness(t *testing.T) {
	g := NewWithT(t)

	cubic := func(x float64) float64 { return 4*x*x*x + 3*x*x - x + 1 }
	// integral over [-1, 1] is 2 + 2 = 4
	for _, f := range []Family{GaussLegendre, GaussLobatto, NewtonCotes, Romberg, ClenshawCurtis, Fejer1, Fejer2, Fejer3, Fejer4, Chebyshev} {
		r, err := Lookup(f, 5)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(r.Integrate(cubic)).To(BeNumerically("~", 4, 1e-9), f.String())
	}
}

func TestGaussLegendreTwoPoint(t *testing.T) {
	g := NewWithT(t)

	r, err := Lookup(GaussLegendre, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.Nodes[0]).To(BeNumerically("~", -1/math.Sqrt(3), 1e-14))
	g.Expect(r.Nodes[1]).To(BeNumerically("~", 1/math.Sqrt(3), 1e-14))
	g.Expect(r.Weights[0]).To(BeNumerically("~", 1, 1e-14))
	g.Expect(r.Weights[1]).To(BeNumerically("~", 1, 1e-14))
	g.Expect(r.Multiplier).To(Equal(1.0))
}

func TestGaussLobatto(t *testing.T) {
	g := NewWithT(t)

	r, err := Lookup(GaussLobatto, 3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.Nodes).To(HaveExactElements(-1.0, BeNumerically("~", 0, 1e-14), 1.0))
	g.Expect(r.Weights[0]).To(BeNumerically("~", 1.0/3, 1e-14))
	g.Expect(r.Weights[1]).To(BeNumerically("~", 4.0/3, 1e-14))

	r, err = Lookup(GaussLobatto, 4)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.Nodes[1]).To(BeNumerically("~", -1/math.Sqrt(5), 1e-12))
	g.Expect(r.Weights[0]).To(BeNumerically("~", 1.0/6, 1e-12))
	g.Expect(r.Weights[1]).To(BeNumerically("~", 5.0/6, 1e-12))
}

func TestSimpsonFromRombergAndNewtonCotes(t *testing.T) {
	g := NewWithT(t)

	for _, f := range []Family{Romberg, NewtonCotes, ClenshawCurtis} {
		r, err := Lookup(f, 3)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(r.Weights[0]).To(BeNumerically("~", 1.0/3, 1e-12), f.String())
		g.Expect(r.Weights[1]).To(BeNumerically("~", 4.0/3, 1e-12), f.String())
		g.Expect(r.Weights[2]).To(BeNumerically("~", 1.0/3, 1e-12), f.String())
	}

	r, err := Lookup(NewtonCotes, 2)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.Weights).To(HaveExactElements(BeNumerically("~", 1, 1e-14), BeNumerically("~", 1, 1e-14)))
}

func TestChebyshevNodes(t *testing.T) {
	g := NewWithT(t)

	r, err := Lookup(Chebyshev, 3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(r.Nodes[0]).To(BeNumerically("~", -1/math.Sqrt2, 1e-10))
	g.Expect(r.Nodes[1]).To(BeNumerically("~", 0, 1e-10))
	g.Expect(r.Nodes[2]).To(BeNumerically("~", 1/math.Sqrt2, 1e-10))
	g.Expect(r.Multiplier).To(BeNumerically("~", 2.0/3, 1e-15))
}

func TestConfigurationErrors(t *testing.T) {
	g := NewWithT(t)

	cases := []struct {
		f Family
		n int
	}{
		{Romberg, 4},
		{Romberg, 6},
		{TakahasiMori, 4},
		{TakahasiMori, 1},
		{Chebyshev, 8},
		{Chebyshev, 10},
		{GaussLegendre, 1},
		{Custom, 3},
	}
	for _, tc := range cases {
		_, err := Lookup(tc.f, tc.n)
		g.Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue(), "%s n=%d", tc.f, tc.n)

		var ce *dynamo.ConfigurationError
		g.Expect(errors.As(err, &ce)).To(BeTrue())
		g.Expect(ce.N).To(Equal(tc.n))
	}
}

func TestParseFamily(t *testing.T) {
	g := NewWithT(t)

	for _, f := range Families() {
		got, err := ParseFamily(f.String())
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(f))
	}

	got, err := ParseFamily("gauss-lobatto")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(Equal(GaussLobatto))

	_, err = ParseFamily("simpson")
	g.Expect(errors.Is(err, dynamo.ErrConfiguration)).To(BeTrue())

	var f Family
	g.Expect(f.UnmarshalText([]byte("clenshaw_curtis"))).To(Succeed())
	g.Expect(f).To(Equal(ClenshawCurtis))
}
