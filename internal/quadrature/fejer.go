package quadrature

import (
	"math"

	"github.com/san-kum/varint/internal/dynamo"
	"gonum.org/v1/gonum/integrate/quad"
)

// fejer1 uses the Chebyshev points of the first kind (open rule).
func fejer1(n int) *Rule {
	x := make([]float64, n)
	w := make([]float64, n)
	fn := float64(n)
	for k := 1; k <= n; k++ {
		theta := float64(2*k-1) * math.Pi / (2 * fn)
		s := 0.0
		for j := 1; j <= n/2; j++ {
			fj := float64(j)
			s += math.Cos(2*fj*theta) / (4*fj*fj - 1)
		}
		x[k-1] = math.Cos(theta)
		w[k-1] = 2 / fn * (1 - 2*s)
	}
	return newRule(Fejer1, x, w, 1)
}

// fejer2 uses the interior Chebyshev extrema (open rule).
func fejer2(n int) *Rule {
	x := make([]float64, n)
	w := make([]float64, n)
	fn := float64(n + 1)
	for k := 1; k <= n; k++ {
		theta := float64(k) * math.Pi / fn
		s := 0.0
		for j := 1; j <= (n+1)/2; j++ {
			m := float64(2*j - 1)
			s += math.Sin(m*theta) / m
		}
		x[k-1] = math.Cos(theta)
		w[k-1] = 4 * math.Sin(theta) / fn * s
	}
	return newRule(Fejer2, x, w, 1)
}

// clenshawCurtis uses all Chebyshev extrema including the endpoints.
func clenshawCurtis(n int) *Rule {
	N := n - 1
	fN := float64(N)
	x := make([]float64, n)
	w := make([]float64, n)
	for k := 0; k <= N; k++ {
		theta := float64(k) * math.Pi / fN
		c := 2.0
		if k == 0 || k == N {
			c = 1
		}
		s := 0.0
		for j := 1; j <= N/2; j++ {
			b := 2.0
			if 2*j == N {
				b = 1
			}
			fj := float64(j)
			s += b / (4*fj*fj - 1) * math.Cos(2*fj*theta)
		}
		x[k] = math.Cos(theta)
		w[k] = c / fN * (1 - s)
	}
	// cos(pi/2) is not exactly zero
	if N%2 == 0 {
		x[N/2] = 0
	}
	return newRule(ClenshawCurtis, x, w, 1)
}

// fejer3 uses the zeros of the third-kind Chebyshev polynomial V_n.
func fejer3(n int) (*Rule, error) {
	x := make([]float64, n)
	for k := 1; k <= n; k++ {
		x[k-1] = math.Cos(float64(2*k-1) * math.Pi / float64(2*n+1))
	}
	return interpolatory(Fejer3, x)
}

// fejer4 uses the zeros of the fourth-kind Chebyshev polynomial W_n.
func fejer4(n int) (*Rule, error) {
	x := make([]float64, n)
	for k := 1; k <= n; k++ {
		x[k-1] = math.Cos(float64(2*k) * math.Pi / float64(2*n+1))
	}
	return interpolatory(Fejer4, x)
}

// interpolatory integrates each Lagrange basis polynomial over [-1, 1] with
// a Gauss-Legendre rule that is exact for its degree.
func interpolatory(f Family, x []float64) (*Rule, error) {
	n := len(x)
	w := make([]float64, n)
	for i := range x {
		basis := func(t float64) float64 {
			v := 1.0
			for j, xj := range x {
				if j != i {
					v *= (t - xj) / (x[i] - xj)
				}
			}
			return v
		}
		w[i] = quad.Fixed(basis, -1, 1, n/2+1, quad.Legendre{}, 1)
		if math.IsNaN(w[i]) {
			return nil, dynamo.Configf(f.String(), n, "repeated node %g", x[i])
		}
	}
	return newRule(f, x, w, 1), nil
}
