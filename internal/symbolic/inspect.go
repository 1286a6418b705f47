package symbolic

import "sort"

func directExp(t term, s Symbol) (int, bool) {
	for _, f := range t.mono {
		if sym, ok := f.atom.(Symbol); ok && sym == s {
			return f.exp, true
		}
	}
	return 0, false
}

func withoutSymbol(t term, s Symbol) term {
	mono := make([]factor, 0, len(t.mono))
	for _, f := range t.mono {
		if sym, ok := f.atom.(Symbol); ok && sym == s {
			continue
		}
		mono = append(mono, f)
	}
	return newTerm(t.coeff, mono)
}

// Coefficient returns the coefficient of s^degree in e. Occurrences of s
// inside function arguments or reciprocals are not separated out; use
// ContainsInAtom to detect them.
func Coefficient(e Expr, s Symbol, degree int) Expr {
	out := make([]term, 0)
	for _, t := range e.terms {
		k, ok := directExp(t, s)
		if !ok {
			k = 0
		}
		if k != degree {
			continue
		}
		if ok {
			t = withoutSymbol(t, s)
		}
		out = append(out, t)
	}
	return normalize(out)
}

// Degree returns the largest direct power of s in e, or 0 when absent.
func Degree(e Expr, s Symbol) int {
	deg := 0
	for _, t := range e.terms {
		if k, ok := directExp(t, s); ok && k > deg {
			deg = k
		}
	}
	return deg
}

// TermsWith counts the terms in which s appears as a direct factor.
func TermsWith(e Expr, s Symbol) int {
	n := 0
	for _, t := range e.terms {
		if _, ok := directExp(t, s); ok {
			n++
		}
	}
	return n
}

// Contains reports whether s occurs anywhere in e.
func Contains(e Expr, s Symbol) bool {
	for _, t := range e.terms {
		for _, f := range t.mono {
			if atomContains(f.atom, s) {
				return true
			}
		}
	}
	return false
}

func atomContains(a Atom, s Symbol) bool {
	switch v := a.(type) {
	case Symbol:
		return v == s
	case *call:
		return Contains(v.arg, s)
	case *recip:
		return Contains(v.den, s)
	}
	return false
}

// ContainsInAtom reports whether s occurs inside a function argument or a
// reciprocal of e.
func ContainsInAtom(e Expr, s Symbol) bool {
	for _, t := range e.terms {
		for _, f := range t.mono {
			if _, ok := f.atom.(Symbol); ok {
				continue
			}
			if atomContains(f.atom, s) {
				return true
			}
		}
	}
	return false
}

// ContainsFunc reports whether a call of the named function occurs in e.
func ContainsFunc(e Expr, name string) bool {
	for _, t := range e.terms {
		if termContainsFunc(t, name) {
			return true
		}
	}
	return false
}

func termContainsFunc(t term, name string) bool {
	for _, f := range t.mono {
		switch v := f.atom.(type) {
		case *call:
			if v.fn.Name == name || ContainsFunc(v.arg, name) {
				return true
			}
		case *recip:
			if ContainsFunc(v.den, name) {
				return true
			}
		}
	}
	return false
}

// Partition splits e into the terms for which keep reports true and the rest.
func Partition(e Expr, keep func(Expr) bool) (in, out Expr) {
	var a, b []term
	for _, t := range e.terms {
		if keep(termExpr(t)) {
			a = append(a, t)
		} else {
			b = append(b, t)
		}
	}
	return Expr{terms: a}, Expr{terms: b}
}

// linearIn reports whether e is at most affine in s with s never hidden
// inside an atom.
func linearIn(e Expr, s Symbol) bool {
	if ContainsInAtom(e, s) {
		return false
	}
	for _, t := range e.terms {
		if k, ok := directExp(t, s); ok && k != 1 {
			return false
		}
	}
	return true
}

// Symbols returns every symbol occurring in e, sorted by name.
func Symbols(e Expr) []Symbol {
	seen := make(map[Symbol]struct{})
	collectSymbols(e, seen)
	out := make([]Symbol, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func collectSymbols(e Expr, seen map[Symbol]struct{}) {
	for _, t := range e.terms {
		for _, f := range t.mono {
			switch v := f.atom.(type) {
			case Symbol:
				seen[v] = struct{}{}
			case *call:
				collectSymbols(v.arg, seen)
			case *recip:
				collectSymbols(v.den, seen)
			}
		}
	}
}

// Truncate drops every term whose direct power of s exceeds order, i.e. the
// truncated series of e in s.
func Truncate(e Expr, s Symbol, order int) Expr {
	out := make([]term, 0, len(e.terms))
	for _, t := range e.terms {
		if k, ok := directExp(t, s); ok && k > order {
			continue
		}
		out = append(out, t)
	}
	return Expr{terms: out}
}
