package symbolic

import "fmt"

// Integrate returns the definite integral of e over s from lo to hi. e must be
// a polynomial in s with non-negative powers.
func Integrate(e Expr, s Symbol, lo, hi Expr) (Expr, error) {
	if ContainsInAtom(e, s) {
		return Expr{}, fmt.Errorf("%w: %s occurs inside a function", ErrNotPolynomial, s)
	}
	parts := make([]Expr, 0, len(e.terms))
	for _, t := range e.terms {
		k, _ := directExp(t, s)
		if k < 0 {
			return Expr{}, fmt.Errorf("%w: %s^%d", ErrNotPolynomial, s, k)
		}
		rest := withoutSymbol(t, s)
		rest.coeff /= float64(k + 1)
		parts = append(parts, Mul(termExpr(rest), atomExpr(s, k+1)))
	}
	anti := Add(parts...)
	return Sub(Subs(anti, Map{s: hi}), Subs(anti, Map{s: lo})), nil
}

// Interpolate returns the Lagrange interpolating polynomial in t through the
// points (times[i], values[i]).
func Interpolate(t Symbol, times, values []Expr) (Expr, error) {
	if len(times) != len(values) {
		return Expr{}, fmt.Errorf("%w: %d times, %d values", ErrDimension, len(times), len(values))
	}
	parts := make([]Expr, 0, len(times))
	for i := range times {
		basis := values[i]
		for j := range times {
			if i == j {
				continue
			}
			den := Sub(times[i], times[j])
			if den.IsZero() {
				return Expr{}, fmt.Errorf("%w: repeated sample time %s", ErrSingular, times[i])
			}
			q, err := Div(Sub(t.Expr(), times[j]), den)
			if err != nil {
				return Expr{}, err
			}
			basis = Mul(basis, q)
		}
		parts = append(parts, basis)
	}
	return Add(parts...), nil
}
