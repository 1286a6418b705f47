package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/symbolic"
)

// ExplicitMap is a one-step map. Equations[k-1] assigns q[k] for k < N and
// Equations[N-1] assigns p[N-1]. Every right-hand side depends only on p[0],
// q[0], h and model functions. A map extracted from a bound system has no h
// and is only valid for Step.
type ExplicitMap struct {
	N         int
	Equations []symbolic.Equation
	Symbols   dynamo.Symbols
	Step      float64
}

type ExtractOption func(*extractOptions)

type extractOptions struct {
	forcing []string
}

// WithForcingFuncs names the function atoms that belong to the forcing term.
// They are kept as a separate part while isolating each unknown.
func WithForcingFuncs(names ...string) ExtractOption {
	return func(o *extractOptions) { o.forcing = append(o.forcing, names...) }
}

// ExtractExplicit eliminates the interior samples of sys. Equation N is the
// momentum balance p[0] - rhs_1 + sum rhs_k. Unknowns are then isolated from
// q[N-1] down to q[1], each from the running balance with the later unknowns
// substituted, and a forward pass makes every assignment explicit.
func ExtractExplicit(sys *DELSystem, opts ...ExtractOption) (*ExplicitMap, error) {
	var o extractOptions
	for _, opt := range opts {
		opt(&o)
	}
	n, sy := sys.N, sys.Symbols
	rhs := func(k int) symbolic.Expr { return sys.Equations[k-1].RHS }
	p0 := sy.Pk(0).Expr()

	// balance(i) = p[0] - rhs_1 + sum_{k=2}^{i} rhs_k
	balance := func(i int) symbolic.Expr {
		parts := []symbolic.Expr{p0, symbolic.Neg(rhs(1))}
		for k := 2; k <= i; k++ {
			parts = append(parts, rhs(k))
		}
		return symbolic.Add(parts...)
	}

	ext := make([]symbolic.Expr, n+1)
	ext[n] = balance(n)

	var err error
	ext[n-1], err = o.extractVar("isolate", n-1, sys.Equations[n-2].Residual(), sy.Qk(n-1), sy.Qk(n-2))
	if err != nil {
		return nil, err
	}

	for i := n - 2; i >= 1; i-- {
		eq := balance(i)
		for j := n - 1; j > i; j-- {
			eq = symbolic.Subs(eq, symbolic.Map{sy.Qk(j): ext[j]})
		}
		ext[i], err = o.extractVar("eliminate", i, eq, sy.Qk(i), sy.Qk(i-1))
		if err != nil {
			return nil, err
		}
	}

	for i := 2; i <= n; i++ {
		for j := i - 1; j >= 1; j-- {
			ext[i] = symbolic.Subs(ext[i], symbolic.Map{sy.Qk(j): ext[j]})
		}
	}

	out := &ExplicitMap{N: n, Symbols: sy, Step: sys.Step, Equations: make([]symbolic.Equation, n)}
	for k := 1; k <= n; k++ {
		for _, u := range sys.Unknowns() {
			if symbolic.Contains(ext[k], u) {
				return nil, &dynamo.ExtractionError{
					Stage:  "substitute",
					Index:  k,
					Reason: fmt.Sprintf("%s remains after substitution", u),
				}
			}
		}
		lhs := sy.Qk(k)
		if k == n {
			lhs = sy.Pk(n - 1)
		}
		out.Equations[k-1] = symbolic.Eq(lhs.Expr(), ext[k])
	}
	return out, nil
}

// extractVar solves eq = 0 for target. The solved right-hand side is built
// from three parts, the terms in next, the forcing terms and the rest, each
// divided by the coefficient of target.
func (o extractOptions) extractVar(stage string, index int, eq symbolic.Expr, target, next symbolic.Symbol) (symbolic.Expr, error) {
	matches := symbolic.TermsWith(eq, target)
	fail := func(reason string) error {
		return &dynamo.ExtractionError{Stage: stage, Index: index, Matches: matches, Reason: reason}
	}
	if symbolic.ContainsInAtom(eq, target) {
		return symbolic.Expr{}, fail(fmt.Sprintf("%s occurs inside a function", target))
	}
	coeff := symbolic.Coefficient(eq, target, 1)
	if coeff.Len() != matches {
		return symbolic.Expr{}, fail(fmt.Sprintf("%s occurs non-linearly", target))
	}
	if coeff.IsZero() {
		return symbolic.Expr{}, fail(fmt.Sprintf("%s does not occur", target))
	}
	den := symbolic.Neg(coeff)
	rest := symbolic.Coefficient(eq, target, 0)

	nextPart, other := symbolic.Partition(rest, func(t symbolic.Expr) bool { return symbolic.Contains(t, next) })
	forcePart, remainder := symbolic.Partition(other, o.isForcing)

	out := make([]symbolic.Expr, 0, 3)
	for _, part := range []symbolic.Expr{nextPart, forcePart, remainder} {
		v, err := symbolic.Div(part, den)
		if err != nil {
			return symbolic.Expr{}, fail(err.Error())
		}
		out = append(out, v)
	}
	return symbolic.Add(out...), nil
}

func (o extractOptions) isForcing(t symbolic.Expr) bool {
	for _, name := range o.forcing {
		if symbolic.ContainsFunc(t, name) {
			return true
		}
	}
	return false
}

// Bind substitutes a numeric step size. A map that is already bound is
// returned as is.
func (m *ExplicitMap) Bind(h float64) *ExplicitMap {
	if m.Step != 0 {
		return m
	}
	c := *m
	c.Step = h
	c.Equations = make([]symbolic.Equation, len(m.Equations))
	at := symbolic.Map{m.Symbols.H: symbolic.Num(h)}
	for i, eq := range m.Equations {
		c.Equations[i] = symbolic.Eq(eq.LHS, symbolic.Subs(eq.RHS, at))
	}
	return &c
}

// Evaluate applies the map to (p0, q0) in ascending order and returns the
// outgoing pair. env supplies any further symbols, h included when unbound.
func (m *ExplicitMap) Evaluate(x dynamo.Pair, env symbolic.Env) (dynamo.Pair, error) {
	local := make(symbolic.Env, len(env)+m.N+2)
	for k, v := range env {
		local[k] = v
	}
	local[m.Symbols.Pk(0)] = x.P
	local[m.Symbols.Qk(0)] = x.Q
	for k, eq := range m.Equations {
		v, err := symbolic.Eval(eq.RHS, local)
		if err != nil {
			return dynamo.Pair{}, fmt.Errorf("explicit map equation %d: %w", k+1, err)
		}
		if k < m.N-1 {
			local[m.Symbols.Qk(k+1)] = v
		} else {
			local[m.Symbols.Pk(m.N-1)] = v
		}
	}
	return dynamo.Pair{P: local[m.Symbols.Pk(m.N-1)], Q: local[m.Symbols.Qk(m.N-1)]}, nil
}

func (m *ExplicitMap) String() string {
	var b strings.Builder
	for i, eq := range m.Equations {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, eq)
	}
	return b.String()
}
