package symbolic

import (
	"fmt"
	"math"
)

// SolveLinear solves eqs[i] = 0 for the unknowns exactly, by Gaussian
// elimination over expressions. Constant pivots are preferred, largest
// magnitude first.
func SolveLinear(eqs []Expr, unknowns []Symbol) (Map, error) {
	n := len(unknowns)
	if len(eqs) != n {
		return nil, fmt.Errorf("%w: %d equations, %d unknowns", ErrDimension, len(eqs), n)
	}

	zeros := make(Map, n)
	for _, u := range unknowns {
		zeros[u] = Expr{}
	}

	a := make([][]Expr, n)
	b := make([]Expr, n)
	for i, eq := range eqs {
		a[i] = make([]Expr, n)
		for j, u := range unknowns {
			if !linearIn(eq, u) {
				return nil, fmt.Errorf("%w: equation %d in %s", ErrNotLinear, i+1, u)
			}
			c := Coefficient(eq, u, 1)
			for _, v := range unknowns {
				if Contains(c, v) {
					return nil, fmt.Errorf("%w: product of %s and %s in equation %d", ErrNotLinear, u, v, i+1)
				}
			}
			a[i][j] = c
		}
		b[i] = Neg(Subs(eq, zeros))
	}

	for col := 0; col < n; col++ {
		piv := pickPivot(a, col)
		if piv < 0 {
			return nil, fmt.Errorf("%w: no pivot for %s", ErrSingular, unknowns[col])
		}
		a[col], a[piv] = a[piv], a[col]
		b[col], b[piv] = b[piv], b[col]

		for r := col + 1; r < n; r++ {
			if a[r][col].IsZero() {
				continue
			}
			f, err := Div(a[r][col], a[col][col])
			if err != nil {
				return nil, err
			}
			a[r][col] = Expr{}
			for c := col + 1; c < n; c++ {
				a[r][c] = Sub(a[r][c], Mul(f, a[col][c]))
			}
			b[r] = Sub(b[r], Mul(f, b[col]))
		}
	}

	x := make([]Expr, n)
	for i := n - 1; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j < n; j++ {
			s = Sub(s, Mul(a[i][j], x[j]))
		}
		v, err := Div(s, a[i][i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSingular, unknowns[i])
		}
		x[i] = v
	}

	out := make(Map, n)
	for i, u := range unknowns {
		out[u] = x[i]
	}
	return out, nil
}

func pickPivot(a [][]Expr, col int) int {
	best, bestMag := -1, 0.0
	fallback, fallbackLen := -1, math.MaxInt
	for r := col; r < len(a); r++ {
		e := a[r][col]
		if e.IsZero() {
			continue
		}
		if v, ok := e.Const(); ok {
			if math.Abs(v) > bestMag {
				best, bestMag = r, math.Abs(v)
			}
			continue
		}
		if e.Len() < fallbackLen {
			fallback, fallbackLen = r, e.Len()
		}
	}
	if best >= 0 {
		return best
	}
	return fallback
}

// Isolate solves eq = 0 for target, which must occur affinely.
func Isolate(eq Expr, target Symbol) (Expr, error) {
	if !linearIn(eq, target) {
		return Expr{}, fmt.Errorf("%w: in %s", ErrNotLinear, target)
	}
	c := Coefficient(eq, target, 1)
	if c.IsZero() {
		return Expr{}, fmt.Errorf("%w: %s does not occur", ErrSingular, target)
	}
	return Div(Neg(Coefficient(eq, target, 0)), c)
}
