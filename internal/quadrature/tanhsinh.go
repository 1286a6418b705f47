package quadrature

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// tanhSinhRange truncates the double exponential transform at |u| <= 3.
const tanhSinhRange = 3.0

// takahasiMori is the tanh-sinh rule with n = 2m+1 equally spaced points in
// the transformed variable. The multiplier rescales the weights to sum to 2.
func takahasiMori(n int) *Rule {
	m := (n - 1) / 2
	step := tanhSinhRange / float64(m)
	x := make([]float64, 0, n)
	w := make([]float64, 0, n)
	for k := -m; k <= m; k++ {
		u := float64(k) * step
		s := math.Pi / 2 * math.Sinh(u)
		c := math.Cosh(s)
		x = append(x, math.Tanh(s))
		w = append(w, step*math.Pi/2*math.Cosh(u)/(c*c))
	}
	return newRule(TakahasiMori, x, w, 2/floats.Sum(w))
}
