package symbolic

import (
	"fmt"
	"math"
)

// Map is a simultaneous substitution.
type Map map[Symbol]Expr

// Env binds symbols to numbers for evaluation.
type Env map[Symbol]float64

// Diff differentiates e with respect to s.
func Diff(e Expr, s Symbol) Expr {
	parts := make([]Expr, 0, len(e.terms))
	for _, t := range e.terms {
		for i, f := range t.mono {
			d := diffAtom(f.atom, s)
			if d.IsZero() {
				continue
			}
			mono := make([]factor, 0, len(t.mono))
			mono = append(mono, t.mono[:i]...)
			if f.exp != 1 {
				mono = append(mono, factor{atom: f.atom, exp: f.exp - 1})
			}
			mono = append(mono, t.mono[i+1:]...)
			parts = append(parts, Mul(termExpr(newTerm(t.coeff*float64(f.exp), mono)), d))
		}
	}
	return Add(parts...)
}

func diffAtom(a Atom, s Symbol) Expr {
	switch v := a.(type) {
	case Symbol:
		if v == s {
			return Num(1)
		}
	case *call:
		du := Diff(v.arg, s)
		if !du.IsZero() {
			return Mul(v.fn.derivative(v.arg), du)
		}
	case *recip:
		dd := Diff(v.den, s)
		if !dd.IsZero() {
			return Neg(Mul(dd, atomExpr(v, 2)))
		}
	}
	return Expr{}
}

// Subs replaces every symbol in m simultaneously, including inside function
// arguments and reciprocals.
func Subs(e Expr, m Map) Expr {
	if len(m) == 0 {
		return e
	}
	parts := make([]Expr, 0, len(e.terms))
	for _, t := range e.terms {
		changed := false
		factors := make([]Expr, 0, len(t.mono)+1)
		factors = append(factors, Num(t.coeff))
		for _, f := range t.mono {
			r, ok := subsAtom(f.atom, m)
			changed = changed || ok
			factors = append(factors, Pow(r, f.exp))
		}
		if !changed {
			parts = append(parts, termExpr(t))
			continue
		}
		parts = append(parts, Mul(factors...))
	}
	return Add(parts...)
}

func subsAtom(a Atom, m Map) (Expr, bool) {
	switch v := a.(type) {
	case Symbol:
		if r, ok := m[v]; ok {
			return r, true
		}
	case *call:
		if touches(v.arg, m) {
			return Apply(v.fn, Subs(v.arg, m)), true
		}
	case *recip:
		if touches(v.den, m) {
			return reciprocal(Subs(v.den, m)), true
		}
	}
	return atomExpr(a, 1), false
}

func touches(e Expr, m Map) bool {
	for s := range m {
		if Contains(e, s) {
			return true
		}
	}
	return false
}

// Eval evaluates e numerically.
func Eval(e Expr, env Env) (float64, error) {
	total := 0.0
	for _, t := range e.terms {
		v := t.coeff
		for _, f := range t.mono {
			a, err := evalAtom(f.atom, env)
			if err != nil {
				return 0, err
			}
			v *= powInt(a, f.exp)
		}
		total += v
	}
	return total, nil
}

func evalAtom(a Atom, env Env) (float64, error) {
	switch v := a.(type) {
	case Symbol:
		x, ok := env[v]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnbound, v.name)
		}
		return x, nil
	case *call:
		if v.fn.Eval == nil {
			return 0, fmt.Errorf("%w: %s", ErrNoEval, v.fn.Name)
		}
		x, err := Eval(v.arg, env)
		if err != nil {
			return 0, err
		}
		return v.fn.Eval(x), nil
	case *recip:
		x, err := Eval(v.den, env)
		if err != nil {
			return 0, err
		}
		return 1 / x, nil
	}
	return 0, fmt.Errorf("symbolic: unknown atom %s", a)
}

func powInt(x float64, k int) float64 {
	switch k {
	case 1:
		return x
	case 2:
		return x * x
	case -1:
		return 1 / x
	}
	return math.Pow(x, float64(k))
}
