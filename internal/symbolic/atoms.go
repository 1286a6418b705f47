package symbolic

import (
	"math"
	"strconv"
)

// Symbol is an opaque algebraic name.
type Symbol struct {
	name string
}

// Sym returns the symbol called name.
func Sym(name string) Symbol { return Symbol{name: name} }

// Indexed returns the symbol base[k], e.g. q[0].
func Indexed(base string, k int) Symbol {
	return Symbol{name: base + "[" + strconv.Itoa(k) + "]"}
}

func (s Symbol) Name() string   { return s.name }
func (s Symbol) String() string { return s.name }
func (s Symbol) key() string    { return "s:" + s.name }

// Expr returns the symbol as an expression.
func (s Symbol) Expr() Expr { return atomExpr(s, 1) }

// Func is a scalar function usable inside expressions. Eval may be nil for a
// purely formal function; Deriv may be nil, in which case the derivative is
// the formal function named Name + "'".
type Func struct {
	Name  string
	Eval  func(float64) float64
	Deriv func(arg Expr) Expr
}

// NewFunc builds a function descriptor.
func NewFunc(name string, eval func(float64) float64, deriv func(arg Expr) Expr) *Func {
	return &Func{Name: name, Eval: eval, Deriv: deriv}
}

var (
	Sin = &Func{Name: "sin", Eval: math.Sin}
	Cos = &Func{Name: "cos", Eval: math.Cos}
	Exp = &Func{Name: "exp", Eval: math.Exp}
)

func init() {
	Sin.Deriv = func(u Expr) Expr { return Apply(Cos, u) }
	Cos.Deriv = func(u Expr) Expr { return Neg(Apply(Sin, u)) }
	Exp.Deriv = func(u Expr) Expr { return Apply(Exp, u) }
}

func (f *Func) derivative(arg Expr) Expr {
	if f.Deriv != nil {
		return f.Deriv(arg)
	}
	return Apply(&Func{Name: f.Name + "'"}, arg)
}

// Apply returns f(arg), folding constants when f can be evaluated.
func Apply(f *Func, arg Expr) Expr {
	if v, ok := arg.Const(); ok && f.Eval != nil {
		return Num(f.Eval(v))
	}
	return atomExpr(&call{fn: f, arg: arg, k: "f:" + f.Name + "(" + arg.Key() + ")"}, 1)
}

type call struct {
	fn  *Func
	arg Expr
	k   string
}

func (c *call) key() string    { return c.k }
func (c *call) String() string { return c.fn.Name + "(" + c.arg.String() + ")" }

// recip is 1/den for a den with more than one term, normalized so its first
// term has coefficient 1.
type recip struct {
	den Expr
	k   string
}

func newRecip(den Expr) *recip {
	return &recip{den: den, k: "r:(" + den.Key() + ")"}
}

func (r *recip) key() string    { return r.k }
func (r *recip) String() string { return "1/(" + r.den.String() + ")" }
