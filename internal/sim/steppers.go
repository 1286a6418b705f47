package sim

import (
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/symbolic"
)

// Implicit steps a DEL system by solving for q[1..n-1] and p[n-1] each step.
// The previous step's solution seeds the next solve.
type Implicit struct {
	sys    *integrators.DELSystem
	policy symbolic.Policy

	unknowns []symbolic.Symbol
	boundDt  float64
	bound    []symbolic.Expr
	guess    []float64
}

func NewImplicit(sys *integrators.DELSystem, policy symbolic.Policy) *Implicit {
	return &Implicit{sys: sys, policy: policy, unknowns: sys.Unknowns()}
}

func (s *Implicit) Name() string { return "implicit " + s.sys.Rule.String() }

func (s *Implicit) bind(dt float64) {
	if s.bound != nil && s.boundDt == dt {
		return
	}
	at := symbolic.Map{s.sys.Symbols.H: symbolic.Num(dt)}
	res := s.sys.Residuals()
	s.bound = make([]symbolic.Expr, len(res))
	for i, r := range res {
		s.bound[i] = symbolic.Subs(r, at)
	}
	s.boundDt = dt
}

func (s *Implicit) Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error) {
	s.bind(dt)
	n := s.sys.N
	if s.guess == nil {
		s.guess = make([]float64, n)
		for i := 0; i < n-1; i++ {
			s.guess[i] = x.Q
		}
		s.guess[n-1] = x.P
	}
	sy := s.sys.Symbols
	env := symbolic.Env{sy.Pk(0): x.P, sy.Qk(0): x.Q}

	sol, err := s.policy.Solve(s.bound, s.unknowns, s.guess, env)
	if err != nil {
		return dynamo.Pair{}, err
	}
	// next step starts where this one ended; shift the interior guess
	for i := 0; i < n-1; i++ {
		s.guess[i] = sol[i] - x.Q + sol[n-2]
	}
	s.guess[n-1] = sol[n-1]
	return dynamo.Pair{P: sol[n-1], Q: sol[n-2]}, nil
}

// Explicit steps by evaluating an explicit map.
type Explicit struct {
	m       *integrators.ExplicitMap
	boundDt float64
	bound   *integrators.ExplicitMap
}

func NewExplicit(m *integrators.ExplicitMap) *Explicit {
	return &Explicit{m: m}
}

func (s *Explicit) Name() string { return "explicit" }

func (s *Explicit) Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error) {
	if s.m.Step != 0 && dt != s.m.Step {
		return dynamo.Pair{}, dynamo.Configf("", s.m.N, "map extracted for dt=%g, stepped with dt=%g", s.m.Step, dt)
	}
	if s.bound == nil || s.boundDt != dt {
		s.bound, s.boundDt = s.m.Bind(dt), dt
	}
	return s.bound.Evaluate(x, nil)
}

// Reference steps a classical integrator over a model's vector field.
type Reference struct {
	integ integrators.Reference
	field dynamo.Field
}

func NewReference(integ integrators.Reference, field dynamo.Field) *Reference {
	return &Reference{integ: integ, field: field}
}

func (s *Reference) Name() string { return s.integ.Name() }

func (s *Reference) Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error) {
	return s.integ.Step(s.field, x, t, dt), nil
}
