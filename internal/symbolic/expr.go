package symbolic

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ZeroTolerance is the relative size under which a coefficient produced by
// cancellation is dropped. The reference magnitude is the largest
// contribution that went into the cancelled sum.
var ZeroTolerance = 1e-10

// Atom is an indivisible factor of a monomial.
type Atom interface {
	key() string
	String() string
}

type factor struct {
	atom Atom
	exp  int
}

type term struct {
	coeff float64
	mono  []factor
	mkey  string
}

func newTerm(c float64, mono []factor) term {
	return term{coeff: c, mono: mono, mkey: monoKey(mono)}
}

func monoKey(mono []factor) string {
	if len(mono) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range mono {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(f.atom.key())
		b.WriteByte('^')
		b.WriteString(strconv.Itoa(f.exp))
	}
	return b.String()
}

// Expr is an immutable expression in canonical expanded form. The zero value
// is the constant 0.
type Expr struct {
	terms []term
}

func normalize(in []term) Expr {
	type group struct {
		t        term
		sum, mag float64
	}
	idx := make(map[string]int, len(in))
	groups := make([]group, 0, len(in))
	for _, t := range in {
		if t.coeff == 0 {
			continue
		}
		if i, ok := idx[t.mkey]; ok {
			groups[i].sum += t.coeff
			groups[i].mag = math.Max(groups[i].mag, math.Abs(t.coeff))
			continue
		}
		idx[t.mkey] = len(groups)
		groups = append(groups, group{t: t, sum: t.coeff, mag: math.Abs(t.coeff)})
	}

	out := make([]term, 0, len(groups))
	for _, g := range groups {
		if g.sum == 0 || math.Abs(g.sum) <= ZeroTolerance*g.mag {
			continue
		}
		out = append(out, term{coeff: g.sum, mono: g.t.mono, mkey: g.t.mkey})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].mkey < out[j].mkey })
	return Expr{terms: out}
}

// Num returns the constant v.
func Num(v float64) Expr {
	if v == 0 {
		return Expr{}
	}
	return Expr{terms: []term{newTerm(v, nil)}}
}

func atomExpr(a Atom, exp int) Expr {
	if exp == 0 {
		return Num(1)
	}
	return Expr{terms: []term{newTerm(1, []factor{{atom: a, exp: exp}})}}
}

func termExpr(t term) Expr {
	if t.coeff == 0 {
		return Expr{}
	}
	return Expr{terms: []term{t}}
}

// Add returns the sum of xs.
func Add(xs ...Expr) Expr {
	n := 0
	for _, x := range xs {
		n += len(x.terms)
	}
	all := make([]term, 0, n)
	for _, x := range xs {
		all = append(all, x.terms...)
	}
	return normalize(all)
}

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Neg returns -a.
func Neg(a Expr) Expr { return Scale(a, -1) }

// Scale multiplies every coefficient of a by c.
func Scale(a Expr, c float64) Expr {
	if c == 0 {
		return Expr{}
	}
	out := make([]term, len(a.terms))
	for i, t := range a.terms {
		out[i] = term{coeff: t.coeff * c, mono: t.mono, mkey: t.mkey}
	}
	return Expr{terms: out}
}

func mulMono(a, b []factor) []factor {
	out := make([]factor, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ka, kb := a[i].atom.key(), b[j].atom.key()
		switch {
		case ka < kb:
			out = append(out, a[i])
			i++
		case ka > kb:
			out = append(out, b[j])
			j++
		default:
			if e := a[i].exp + b[j].exp; e != 0 {
				out = append(out, factor{atom: a[i].atom, exp: e})
			}
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func mul2(a, b Expr) Expr {
	if len(a.terms) == 0 || len(b.terms) == 0 {
		return Expr{}
	}
	out := make([]term, 0, len(a.terms)*len(b.terms))
	for _, ta := range a.terms {
		for _, tb := range b.terms {
			out = append(out, newTerm(ta.coeff*tb.coeff, mulMono(ta.mono, tb.mono)))
		}
	}
	return normalize(out)
}

// Mul returns the expanded product of xs.
func Mul(xs ...Expr) Expr {
	if len(xs) == 0 {
		return Num(1)
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = mul2(acc, x)
	}
	return acc
}

func invertMono(m []factor) []factor {
	out := make([]factor, len(m))
	for i, f := range m {
		out[i] = factor{atom: f.atom, exp: -f.exp}
	}
	return out
}

// reciprocal never fails: a zero divisor yields +Inf, which surfaces later as
// an invalid numeric state.
func reciprocal(d Expr) Expr {
	switch len(d.terms) {
	case 0:
		return Num(math.Inf(1))
	case 1:
		t := d.terms[0]
		return termExpr(newTerm(1/t.coeff, invertMono(t.mono)))
	}
	lead := d.terms[0].coeff
	monic := Scale(d, 1/lead)
	return Scale(atomExpr(newRecip(monic), 1), 1/lead)
}

// Pow raises a to the integer power k.
func Pow(a Expr, k int) Expr {
	switch {
	case k == 0:
		return Num(1)
	case k < 0:
		return Pow(reciprocal(a), -k)
	}
	result := Num(1)
	base := a
	for k > 0 {
		if k&1 == 1 {
			result = mul2(result, base)
		}
		k >>= 1
		if k > 0 {
			base = mul2(base, base)
		}
	}
	return result
}

// Div returns a / b. Monomial divisors are inverted exactly; any other divisor
// becomes a reciprocal atom.
func Div(a, b Expr) (Expr, error) {
	if b.IsZero() {
		return Expr{}, ErrDivisionByZero
	}
	return Mul(a, reciprocal(b)), nil
}

// IsZero reports whether e is the constant 0.
func (e Expr) IsZero() bool { return len(e.terms) == 0 }

// IsConst reports whether e contains no atoms.
func (e Expr) IsConst() bool {
	return len(e.terms) == 0 || (len(e.terms) == 1 && len(e.terms[0].mono) == 0)
}

// Const returns the value of a constant expression.
func (e Expr) Const() (float64, bool) {
	if !e.IsConst() {
		return 0, false
	}
	if len(e.terms) == 0 {
		return 0, true
	}
	return e.terms[0].coeff, true
}

// Len returns the number of terms.
func (e Expr) Len() int { return len(e.terms) }

// Key is a deterministic structural fingerprint. Coefficients are rounded to
// 12 significant digits so that rounding noise does not split atoms.
func (e Expr) Key() string {
	var b strings.Builder
	for i, t := range e.terms {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.FormatFloat(t.coeff, 'g', 12, 64))
		if t.mkey != "" {
			b.WriteByte('.')
			b.WriteString(t.mkey)
		}
	}
	return b.String()
}

// Equal reports structural equality.
func (e Expr) Equal(o Expr) bool { return e.Key() == o.Key() }

func (e Expr) String() string {
	if len(e.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range e.terms {
		c := t.coeff
		switch {
		case i == 0 && c < 0:
			b.WriteByte('-')
			c = -c
		case i > 0 && c < 0:
			b.WriteString(" - ")
			c = -c
		case i > 0:
			b.WriteString(" + ")
		}
		ms := monoString(t.mono)
		switch {
		case ms == "":
			b.WriteString(formatCoeff(c))
		case c == 1:
			b.WriteString(ms)
		default:
			b.WriteString(formatCoeff(c))
			b.WriteByte('*')
			b.WriteString(ms)
		}
	}
	return b.String()
}

func formatCoeff(c float64) string { return strconv.FormatFloat(c, 'g', 8, 64) }

func monoString(m []factor) string {
	parts := make([]string, len(m))
	for i, f := range m {
		s := f.atom.String()
		if f.exp != 1 {
			s += "^" + strconv.Itoa(f.exp)
		}
		parts[i] = s
	}
	return strings.Join(parts, "*")
}
