package quadrature

import (
	"math"

	"github.com/san-kum/varint/internal/dynamo"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

func gaussLegendre(n int) *Rule {
	x := make([]float64, n)
	w := make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	return newRule(GaussLegendre, x, w, 1)
}

// gaussLobatto places nodes at both ends and at the roots of P'_{n-1}, which
// are the Gauss-Jacobi(1,1) nodes. Weights are 2/(n(n-1)P_{n-1}(x)^2).
func gaussLobatto(n int) (*Rule, error) {
	interior, err := jacobiNodes(n-2, 1, 1)
	if err != nil {
		return nil, dynamo.Configf(GaussLobatto.String(), n, "%v", err)
	}
	x := make([]float64, 0, n)
	x = append(x, -1)
	x = append(x, interior...)
	x = append(x, 1)

	w := make([]float64, n)
	nn := float64(n * (n - 1))
	for i, xi := range x {
		p := legendreP(n-1, xi)
		w[i] = 2 / (nn * p * p)
	}
	return newRule(GaussLobatto, x, w, 1), nil
}

// jacobiNodes returns the m Gauss-Jacobi nodes by Golub-Welsch: the
// eigenvalues of the symmetric tridiagonal Jacobi matrix.
func jacobiNodes(m int, alpha, beta float64) ([]float64, error) {
	if m <= 0 {
		return nil, nil
	}
	ab := alpha + beta
	J := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		h1 := 2*float64(i) + ab
		if h1 != 0 {
			J.SetSym(i, i, (beta*beta-alpha*alpha)/(h1*(h1+2)))
		}
	}
	for i := 1; i < m; i++ {
		fi := float64(i)
		h := 2*fi + ab
		b := 2 / h * math.Sqrt(fi*(fi+ab)*(fi+alpha)*(fi+beta)/((h-1)*(h+1)))
		J.SetSym(i-1, i, b)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(J, false); !ok {
		return nil, errEigen
	}
	return eig.Values(nil), nil
}

// legendreP evaluates P_n(x) by the three-term recurrence.
func legendreP(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	p0, p1 := 1.0, x
	for k := 2; k <= n; k++ {
		fk := float64(k)
		p0, p1 = p1, ((2*fk-1)*x*p1-(fk-1)*p0)/fk
	}
	return p1
}
