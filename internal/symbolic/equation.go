package symbolic

// Equation is LHS = RHS.
type Equation struct {
	LHS, RHS Expr
}

// Eq builds an equation.
func Eq(lhs, rhs Expr) Equation { return Equation{LHS: lhs, RHS: rhs} }

// Residual returns LHS - RHS.
func (e Equation) Residual() Expr { return Sub(e.LHS, e.RHS) }

func (e Equation) Equal(o Equation) bool { return e.LHS.Equal(o.LHS) && e.RHS.Equal(o.RHS) }

func (e Equation) String() string { return e.LHS.String() + " = " + e.RHS.String() }
