package symbolic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// NewtonOptions configures Newton.
type NewtonOptions struct {
	Tolerance     float64
	MaxIterations int
}

// Newton solves eqs[i] = 0 numerically for the unknowns starting at guess.
// The Jacobian is differentiated symbolically once and evaluated per iteration.
func Newton(eqs []Expr, unknowns []Symbol, guess []float64, env Env, opts NewtonOptions) ([]float64, error) {
	n := len(unknowns)
	if len(eqs) != n || len(guess) != n {
		return nil, fmt.Errorf("%w: %d equations, %d unknowns, %d guesses", ErrDimension, len(eqs), n, len(guess))
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-12
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 50
	}

	jac := make([][]Expr, n)
	for i, eq := range eqs {
		jac[i] = make([]Expr, n)
		for j, u := range unknowns {
			jac[i][j] = Diff(eq, u)
		}
	}

	local := make(Env, len(env)+n)
	for k, v := range env {
		local[k] = v
	}
	x := make([]float64, n)
	copy(x, guess)
	fx := make([]float64, n)
	jx := mat.NewDense(n, n, nil)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		for i, u := range unknowns {
			local[u] = x[i]
		}
		for i, eq := range eqs {
			v, err := Eval(eq, local)
			if err != nil {
				return nil, err
			}
			fx[i] = v
		}
		if floats.Norm(fx, math.Inf(1)) <= opts.Tolerance {
			return x, nil
		}
		for i := range jac {
			for j := range jac[i] {
				v, err := Eval(jac[i][j], local)
				if err != nil {
					return nil, err
				}
				jx.Set(i, j, v)
			}
		}

		var dx mat.VecDense
		if err := dx.SolveVec(jx, mat.NewVecDense(n, fx)); err != nil {
			return nil, fmt.Errorf("%w: singular Jacobian at iteration %d", ErrNoConvergence, iter)
		}
		for i := range x {
			x[i] -= dx.AtVec(i)
		}
		if hasNaN(x) {
			return nil, fmt.Errorf("%w: iterate diverged at iteration %d", ErrNoConvergence, iter)
		}
		if floats.Norm(dx.RawVector().Data, math.Inf(1)) <= opts.Tolerance*(1+floats.Norm(x, math.Inf(1))) {
			return x, nil
		}
	}
	return nil, fmt.Errorf("%w: %d iterations", ErrNoConvergence, opts.MaxIterations)
}

func hasNaN(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
