package symbolic

import "errors"

var (
	ErrDivisionByZero = errors.New("symbolic: division by zero")
	ErrUnbound        = errors.New("symbolic: unbound symbol")
	ErrNoEval         = errors.New("symbolic: function has no numeric form")
	ErrNotLinear      = errors.New("symbolic: system is not linear in the unknowns")
	ErrSingular       = errors.New("symbolic: singular system")
	ErrNotPolynomial  = errors.New("symbolic: expression is not a polynomial in the variable")
	ErrNoConvergence  = errors.New("symbolic: root finding did not converge")
	ErrDimension      = errors.New("symbolic: dimension mismatch")
)
