package integrators

import (
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/quadrature"
)

type Option func(*options)

type options struct {
	interp Interpolator
}

// WithInterpolator replaces the Lagrange interpolant used for path
// reconstruction.
func WithInterpolator(f Interpolator) Option {
	return func(o *options) { o.interp = f }
}

// FromFamily derives the DEL system of the n-node rule of family.
func FromFamily(n int, L dynamo.Lagrangian, F dynamo.Forcing, family quadrature.Family, sy dynamo.Symbols, opts ...Option) (*DELSystem, error) {
	rule, err := quadrature.Lookup(family, n)
	if err != nil {
		return nil, err
	}
	return FromQuadrature(rule, L, F, sy, opts...)
}

// FromRule derives the DEL system of a user rule on [lo, hi].
func FromRule(lo, hi float64, nodes, weights []float64, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, opts ...Option) (*DELSystem, error) {
	rule, err := quadrature.NewCustom(lo, hi, nodes, weights)
	if err != nil {
		return nil, err
	}
	return FromQuadrature(rule, L, F, sy, opts...)
}

// FromQuadrature derives the DEL system of an already validated rule.
func FromQuadrature(rule *quadrature.Rule, L dynamo.Lagrangian, F dynamo.Forcing, sy dynamo.Symbols, opts ...Option) (*DELSystem, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	action, err := Assemble(rule, L, F, sy, o.interp)
	if err != nil {
		return nil, err
	}
	eqs, err := EulerLagrange(rule.N, action.DS, action.DF, sy)
	if err != nil {
		return nil, err
	}
	return &DELSystem{
		N:         rule.N,
		Equations: eqs,
		Symbols:   sy,
		Rule:      rule,
		Action:    action,
	}, nil
}
