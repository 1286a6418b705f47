package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

// DELSystem is the set of discrete Euler-Lagrange equations of one step.
// Equation 1 defines p[0], equation N defines p[N-1], and the interior
// equations are 0 = ... stationarity conditions. Step is zero while h is
// symbolic and holds the step size after Bind.
type DELSystem struct {
	N         int
	Equations []symbolic.Equation
	Symbols   dynamo.Symbols
	Rule      *quadrature.Rule
	Action    *Action
	Step      float64
}

// EulerLagrange differentiates the discrete action dS, adding the forcing
// terms dF, into the n DEL equations.
func EulerLagrange(n int, dS symbolic.Expr, dF []symbolic.Expr, sy dynamo.Symbols) ([]symbolic.Equation, error) {
	if n < 2 || len(dF) != n {
		return nil, dynamo.Configf("", n, "%d forcing terms for %d samples", len(dF), n)
	}
	eqs := make([]symbolic.Equation, n)
	eqs[0] = symbolic.Eq(sy.Pk(0).Expr(),
		symbolic.Sub(symbolic.Neg(symbolic.Diff(dS, sy.Qk(0))), dF[0]))
	for k := 2; k < n; k++ {
		eqs[k-1] = symbolic.Eq(symbolic.Num(0),
			symbolic.Add(symbolic.Diff(dS, sy.Qk(k-1)), dF[k-1]))
	}
	eqs[n-1] = symbolic.Eq(sy.Pk(n-1).Expr(),
		symbolic.Add(symbolic.Diff(dS, sy.Qk(n-1)), dF[n-1]))
	return eqs, nil
}

// Unknowns are the quantities a step solves for: q[1..N-1] and p[N-1].
func (s *DELSystem) Unknowns() []symbolic.Symbol {
	out := make([]symbolic.Symbol, 0, s.N)
	for k := 1; k < s.N; k++ {
		out = append(out, s.Symbols.Qk(k))
	}
	return append(out, s.Symbols.Pk(s.N-1))
}

// Residuals returns lhs - rhs for every equation.
func (s *DELSystem) Residuals() []symbolic.Expr {
	out := make([]symbolic.Expr, len(s.Equations))
	for i, eq := range s.Equations {
		out[i] = eq.Residual()
	}
	return out
}

// Bind returns a copy with h replaced by a numeric step size. Extraction on
// a bound system works with numeric coefficients only.
func (s *DELSystem) Bind(h float64) *DELSystem {
	c := *s
	c.Equations = make([]symbolic.Equation, len(s.Equations))
	at := symbolic.Map{s.Symbols.H: symbolic.Num(h)}
	for i, eq := range s.Equations {
		c.Equations[i] = symbolic.Eq(symbolic.Subs(eq.LHS, at), symbolic.Subs(eq.RHS, at))
	}
	c.Step = h
	return &c
}

// Truncate returns a copy whose equations keep powers of h up to order.
func (s *DELSystem) Truncate(order int) *DELSystem {
	c := *s
	c.Equations = make([]symbolic.Equation, len(s.Equations))
	for i, eq := range s.Equations {
		c.Equations[i] = symbolic.Eq(
			symbolic.Truncate(eq.LHS, s.Symbols.H, order),
			symbolic.Truncate(eq.RHS, s.Symbols.H, order))
	}
	return &c
}

func (s *DELSystem) String() string {
	var b strings.Builder
	for i, eq := range s.Equations {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, eq)
	}
	return b.String()
}
