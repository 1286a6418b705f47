package symbolic

import (
	"errors"
	"fmt"
)

// Policy picks between exact and numeric solving: a system that is linear in
// its unknowns and has at most ExactMaxTerms terms after substitution is
// solved exactly, everything else goes to Newton.
type Policy struct {
	ExactMaxTerms int
	Tolerance     float64
	MaxIterations int
}

func DefaultPolicy() Policy {
	return Policy{
		ExactMaxTerms: 400,
		Tolerance:     1e-12,
		MaxIterations: 50,
	}
}

// Solve binds env, then solves eqs[i] = 0 for the unknowns. guess seeds the
// numeric path only.
func (p Policy) Solve(eqs []Expr, unknowns []Symbol, guess []float64, env Env) ([]float64, error) {
	bind := make(Map, len(env))
	for s, v := range env {
		bind[s] = Num(v)
	}
	reduced := make([]Expr, len(eqs))
	size := 0
	for i, eq := range eqs {
		reduced[i] = Subs(eq, bind)
		size += reduced[i].Len()
	}

	if size <= p.ExactMaxTerms {
		sol, err := SolveLinear(reduced, unknowns)
		switch {
		case err == nil:
			return evalSolution(sol, unknowns)
		case errors.Is(err, ErrNotLinear):
		default:
			return nil, err
		}
	}
	return Newton(reduced, unknowns, guess, nil, NewtonOptions{
		Tolerance:     p.Tolerance,
		MaxIterations: p.MaxIterations,
	})
}

func evalSolution(sol Map, unknowns []Symbol) ([]float64, error) {
	out := make([]float64, len(unknowns))
	for i, u := range unknowns {
		v, err := Eval(sol[u], nil)
		if err != nil {
			return nil, fmt.Errorf("solution for %s is not numeric: %w", u, err)
		}
		out[i] = v
	}
	return out, nil
}
