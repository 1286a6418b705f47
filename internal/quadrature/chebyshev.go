package quadrature

import (
	"errors"
	"math"
	"sort"

	"github.com/san-kum/varint/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

var errEigen = errors.New("eigenvalue decomposition failed")

// chebyshev builds the equal-weight rule: all weights 1 with multiplier 2/n.
// The nodes have power sums n/(k+1) for even k and 0 for odd k; Newton's
// identities turn those into the monic polynomial whose roots they are.
func chebyshev(n int) (*Rule, error) {
	s := make([]float64, n+1)
	for k := 1; k <= n; k++ {
		if k%2 == 0 {
			s[k] = float64(n) / float64(k+1)
		}
	}
	e := make([]float64, n+1)
	e[0] = 1
	for k := 1; k <= n; k++ {
		acc := 0.0
		sign := 1.0
		for i := 1; i <= k; i++ {
			acc += sign * e[k-i] * s[i]
			sign = -sign
		}
		e[k] = acc / float64(k)
	}

	// x^n - e1 x^(n-1) + e2 x^(n-2) - ...; companion matrix first row holds
	// the negated lower coefficients.
	comp := mat.NewDense(n, n, nil)
	sign := -1.0
	for k := 1; k <= n; k++ {
		comp.Set(0, k-1, -sign*e[k])
		sign = -sign
	}
	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(comp, mat.EigenNone); !ok {
		return nil, dynamo.Configf(Chebyshev.String(), n, "%v", errEigen)
	}
	x := make([]float64, 0, n)
	for _, v := range eig.Values(nil) {
		if math.Abs(imag(v)) > 1e-8 {
			return nil, dynamo.Configf(Chebyshev.String(), n, "complex node %v", v)
		}
		x = append(x, real(v))
	}
	sort.Float64s(x)

	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return newRule(Chebyshev, x, w, 2/float64(n)), nil
}
