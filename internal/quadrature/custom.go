package quadrature

import (
	"math"

	"github.com/san-kum/varint/internal/dynamo"
)

// NewCustom validates a user rule on [lo, hi] and sorts it.
func NewCustom(lo, hi float64, nodes, weights []float64) (*Rule, error) {
	n := len(nodes)
	name := Custom.String()
	if len(weights) != n {
		return nil, dynamo.Configf(name, n, "%d nodes but %d weights", n, len(weights))
	}
	if n < 2 {
		return nil, dynamo.Configf(name, n, "at least 2 nodes are required")
	}
	if !(lo < hi) {
		return nil, dynamo.Configf(name, n, "empty interval [%g, %g]", lo, hi)
	}
	for i, x := range nodes {
		if math.IsNaN(x) || x < lo || x > hi {
			return nil, dynamo.Configf(name, n, "node %d (%g) outside [%g, %g]", i+1, x, lo, hi)
		}
	}
	r := newRule(Custom, nodes, weights, 1)
	r.Lo, r.Hi = lo, hi
	return r, nil
}
