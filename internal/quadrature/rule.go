package quadrature

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Rule approximates the integral over [Lo, Hi] as
// Multiplier * sum_k Weights[k] * f(Nodes[k]).
type Rule struct {
	Family     Family    `json:"family"`
	N          int       `json:"n"`
	Nodes      []float64 `json:"nodes"`
	Weights    []float64 `json:"weights"`
	Multiplier float64   `json:"multiplier"`
	Lo         float64   `json:"lo"`
	Hi         float64   `json:"hi"`
}

func newRule(f Family, nodes, weights []float64, multiplier float64) *Rule {
	nodes, weights = SortNodes(nodes, weights)
	return &Rule{
		Family:     f,
		N:          len(nodes),
		Nodes:      nodes,
		Weights:    weights,
		Multiplier: multiplier,
		Lo:         -1,
		Hi:         1,
	}
}

// Width is Hi - Lo.
func (r *Rule) Width() float64 { return r.Hi - r.Lo }

// Total returns Multiplier * sum(Weights), which equals Width for a rule that
// integrates constants exactly.
func (r *Rule) Total() float64 { return r.Multiplier * floats.Sum(r.Weights) }

// Integrate applies the rule to f.
func (r *Rule) Integrate(f func(float64) float64) float64 {
	s := 0.0
	for i, x := range r.Nodes {
		s += r.Weights[i] * f(x)
	}
	return r.Multiplier * s
}

// Fractions maps each node to its position in [0, 1].
func (r *Rule) Fractions() []float64 {
	out := make([]float64, r.N)
	w := r.Width()
	for i, x := range r.Nodes {
		out[i] = (x - r.Lo) / w
	}
	return out
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s(n=%d)", r.Family, r.N)
}
