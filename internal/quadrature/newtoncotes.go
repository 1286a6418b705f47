package quadrature

import "gonum.org/v1/gonum/floats"

func equallySpaced(n int) []float64 {
	x := make([]float64, n)
	for k := range x {
		x[k] = -1 + 2*float64(k)/float64(n-1)
	}
	return x
}

func newtonCotes(n int) (*Rule, error) {
	return interpolatory(NewtonCotes, equallySpaced(n))
}

// romberg extrapolates trapezoid sums at 1+2^i points, i = 0..m, with
// n = 1+2^m. The result is a weight vector over the finest grid.
func romberg(n int) *Rule {
	m := 0
	for 1<<m < n-1 {
		m++
	}
	R := make([][]float64, m+1)
	for i := 0; i <= m; i++ {
		R[i] = trapezoid(n, 1<<(m-i))
	}
	for j := 1; j <= m; j++ {
		f := float64(int(1) << (2 * j))
		for i := m; i >= j; i-- {
			next := make([]float64, n)
			floats.AddScaled(next, f, R[i])
			floats.AddScaled(next, -1, R[i-1])
			floats.Scale(1/(f-1), next)
			R[i] = next
		}
	}
	return newRule(Romberg, equallySpaced(n), R[m], 1)
}

// trapezoid returns the composite trapezoid weights on [-1, 1] using every
// stride-th point of an n-point grid.
func trapezoid(n, stride int) []float64 {
	w := make([]float64, n)
	panels := (n - 1) / stride
	width := 2 / float64(panels)
	for k := 0; k < n; k += stride {
		w[k] = width
	}
	w[0] /= 2
	w[n-1] /= 2
	return w
}
