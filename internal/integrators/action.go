package integrators

import (
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

// Action is the discrete action over one step and its virtual work terms.
// DF[l] is the forcing contribution paired with q[l].
type Action struct {
	DS         symbolic.Expr
	DF         []symbolic.Expr
	Weights    []symbolic.Expr
	Times      []symbolic.Expr
	Positions  []symbolic.Expr
	Velocities []symbolic.Expr
}

// Assemble builds the discrete action for rule. Newton-Cotes and Romberg
// rules recover their weights symbolically; every other rule, including user
// rules, uses its weights directly.
func Assemble(rule *quadrature.Rule, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, interp Interpolator) (*Action, error) {
	switch rule.Family {
	case quadrature.NewtonCotes:
		return newtonCotesAction(rule.N, L, F, sy, interp)
	case quadrature.Romberg:
		return rombergAction(rule.N, L, F, sy, interp)
	}
	return weightedAction(rule, L, F, sy, interp)
}

func weightedAction(rule *quadrature.Rule, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, interp Interpolator) (*Action, error) {
	n := rule.N
	times := sampleTimes(rule.Fractions(), sy.H)
	pos, vel, err := ComputePQ(times, sy, interp)
	if err != nil {
		return nil, err
	}

	scale := rule.Multiplier / rule.Width()
	weights := make([]symbolic.Expr, n)
	parts := make([]symbolic.Expr, n)
	for k := range pos {
		weights[k] = symbolic.Scale(sy.H.Expr(), rule.Weights[k]*scale)
		parts[k] = symbolic.Mul(weights[k], L(pos[k], vel[k]))
	}

	df := make([]symbolic.Expr, n)
	if F != nil {
		forces := make([]symbolic.Expr, n)
		for k := range pos {
			forces[k] = symbolic.Mul(weights[k], F(pos[k], vel[k]))
		}
		for l := 0; l < n; l++ {
			ql := sy.Qk(l)
			terms := make([]symbolic.Expr, 0, n)
			for k := range pos {
				terms = append(terms, symbolic.Mul(forces[k], symbolic.Diff(pos[k], ql)))
			}
			df[l] = symbolic.Add(terms...)
		}
	}

	return &Action{
		DS:         symbolic.Add(parts...),
		DF:         df,
		Weights:    weights,
		Times:      times,
		Positions:  pos,
		Velocities: vel,
	}, nil
}

func equalTimes(n int, h symbolic.Symbol) []symbolic.Expr {
	fr := make([]float64, n)
	for k := range fr {
		fr[k] = float64(k) / float64(n-1)
	}
	return sampleTimes(fr, h)
}

func placeholders(n int) []symbolic.Symbol {
	out := make([]symbolic.Symbol, n)
	for k := range out {
		out[k] = symbolic.Indexed("L", k)
	}
	return out
}

// newtonCotesAction integrates the interpolant of the Lagrangian values at
// equally spaced times exactly, then reads each weight off as the
// coefficient of the matching placeholder.
func newtonCotesAction(n int, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, interp Interpolator) (*Action, error) {
	if interp == nil {
		interp = symbolic.Interpolate
	}
	times := equalTimes(n, sy.H)
	ph := placeholders(n)
	values := make([]symbolic.Expr, n)
	for k, s := range ph {
		values[k] = s.Expr()
	}
	poly, err := interp(sy.T, times, values)
	if err != nil {
		return nil, &dynamo.ReconstructionError{N: n, Wrapped: err}
	}
	integral, err := symbolic.Integrate(poly, sy.T, symbolic.Num(0), sy.H.Expr())
	if err != nil {
		return nil, &dynamo.ReconstructionError{N: n, Wrapped: err}
	}
	weights, err := extractWeights("newton-cotes weight", integral, ph)
	if err != nil {
		return nil, err
	}
	return placeholderAction(times, weights, L, F, sy, interp)
}

// rombergAction Richardson-extrapolates trapezoid sums at 1+2^i samples,
// i = 0..m, and reads the weights off the extrapolated sum.
func rombergAction(n int, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, interp Interpolator) (*Action, error) {
	m := 0
	for 1<<m < n-1 {
		m++
	}
	ph := placeholders(n)
	R := make([]symbolic.Expr, m+1)
	for i := 0; i <= m; i++ {
		stride := 1 << (m - i)
		terms := make([]symbolic.Expr, 0, 1<<i+1)
		for k := 0; k < n; k += stride {
			c := 1.0
			if k == 0 || k == n-1 {
				c = 0.5
			}
			terms = append(terms, symbolic.Scale(ph[k].Expr(), c))
		}
		R[i] = symbolic.Mul(symbolic.Scale(sy.H.Expr(), 1/float64(int(1)<<i)), symbolic.Add(terms...))
	}
	for j := 1; j <= m; j++ {
		f := float64(int(1) << (2 * j))
		for i := m; i >= j; i-- {
			R[i] = symbolic.Scale(symbolic.Sub(symbolic.Scale(R[i], f), R[i-1]), 1/(f-1))
		}
	}
	weights, err := extractWeights("romberg portion", R[m], ph)
	if err != nil {
		return nil, err
	}
	return placeholderAction(equalTimes(n, sy.H), weights, L, F, sy, interp)
}

// extractWeights requires exactly one term per placeholder in sum.
func extractWeights(stage string, sum symbolic.Expr, ph []symbolic.Symbol) ([]symbolic.Expr, error) {
	out := make([]symbolic.Expr, len(ph))
	for k, s := range ph {
		matches := symbolic.TermsWith(sum, s)
		if matches != 1 || symbolic.ContainsInAtom(sum, s) || symbolic.Degree(sum, s) != 1 {
			return nil, &dynamo.ExtractionError{
				Stage:   stage,
				Index:   k + 1,
				Matches: matches,
				Reason:  "expected exactly one linear term",
			}
		}
		out[k] = symbolic.Coefficient(sum, s, 1)
	}
	return out, nil
}

// placeholderAction evaluates the Lagrangian on the reconstructed path at the
// sample times. Forcing pairs each weight with its own sample.
func placeholderAction(times, weights []symbolic.Expr, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, interp Interpolator) (*Action, error) {
	n := len(times)
	pos, vel, err := ComputePQ(times, sy, interp)
	if err != nil {
		return nil, err
	}
	parts := make([]symbolic.Expr, n)
	df := make([]symbolic.Expr, n)
	for k := range pos {
		parts[k] = symbolic.Mul(weights[k], L(pos[k], vel[k]))
		if F != nil {
			df[k] = symbolic.Mul(weights[k], F(pos[k], vel[k]))
		}
	}
	return &Action{
		DS:         symbolic.Add(parts...),
		DF:         df,
		Weights:    weights,
		Times:      times,
		Positions:  pos,
		Velocities: vel,
	}, nil
}
