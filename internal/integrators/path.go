package integrators

import (
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/symbolic"
)

// Interpolator builds a polynomial in t through (times[i], values[i]).
type Interpolator func(t symbolic.Symbol, times, values []symbolic.Expr) (symbolic.Expr, error)

// ComputePQ reconstructs the path inside one step. It interpolates the n
// samples at times, then pins the interpolant to the step's start and end
// positions by solving for the two outermost samples. The returned position
// and velocity at each sample time are functions of q[0..n-1] and h, where
// q[0] and q[n-1] are the step's boundary positions.
func ComputePQ(times []symbolic.Expr, sy dynamo.Symbols, interp Interpolator) (pos, vel []symbolic.Expr, err error) {
	n := len(times)
	if n < 2 {
		return nil, nil, &dynamo.ReconstructionError{N: n, Wrapped: symbolic.ErrDimension}
	}
	if interp == nil {
		interp = symbolic.Interpolate
	}

	ghost := func(k int) symbolic.Symbol { return symbolic.Indexed(sy.Q+"~", k) }
	values := make([]symbolic.Expr, n)
	for k := 1; k <= n; k++ {
		values[k-1] = ghost(k).Expr()
	}

	path, err := interp(sy.T, times, values)
	if err != nil {
		return nil, nil, &dynamo.ReconstructionError{N: n, Wrapped: err}
	}

	boundary := []symbolic.Expr{
		symbolic.Sub(symbolic.Subs(path, symbolic.Map{sy.T: symbolic.Num(0)}), ghost(0).Expr()),
		symbolic.Sub(symbolic.Subs(path, symbolic.Map{sy.T: sy.H.Expr()}), ghost(n+1).Expr()),
	}
	sol, err := symbolic.SolveLinear(boundary, []symbolic.Symbol{ghost(1), ghost(n)})
	if err != nil {
		return nil, nil, &dynamo.ReconstructionError{N: n, Wrapped: err}
	}
	path = symbolic.Subs(path, sol)

	rename := symbolic.Map{
		ghost(0):     sy.Qk(0).Expr(),
		ghost(n + 1): sy.Qk(n - 1).Expr(),
	}
	for k := 2; k < n; k++ {
		rename[ghost(k)] = sy.Qk(k - 1).Expr()
	}
	path = symbolic.Subs(path, rename)
	rate := symbolic.Diff(path, sy.T)

	pos = make([]symbolic.Expr, n)
	vel = make([]symbolic.Expr, n)
	for k, tk := range times {
		at := symbolic.Map{sy.T: tk}
		pos[k] = symbolic.Subs(path, at)
		vel[k] = symbolic.Subs(rate, at)
	}
	return pos, vel, nil
}

// sampleTimes maps rule nodes into [0, h].
func sampleTimes(fractions []float64, h symbolic.Symbol) []symbolic.Expr {
	out := make([]symbolic.Expr, len(fractions))
	for i, f := range fractions {
		out[i] = symbolic.Scale(h.Expr(), f)
	}
	return out
}
