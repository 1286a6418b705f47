package integrators

import (
	"testing"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	x := dynamo.Pair{P: 0, Q: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(oscillatorField, x, 0, 0.01)
	}
}

func BenchmarkVerlet(b *testing.B) {
	integrator := NewVerlet()
	x := dynamo.Pair{P: 0, Q: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(oscillatorField, x, 0, 0.01)
	}
}

func BenchmarkFromFamilyLobatto4(b *testing.B) {
	sy := dynamo.DefaultSymbols()
	for i := 0; i < b.N; i++ {
		if _, err := FromFamily(4, pendulum, nil, quadrature.GaussLobatto, sy); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExplicitMapEvaluate(b *testing.B) {
	sy := dynamo.DefaultSymbols()
	sys, err := FromFamily(3, harmonic, nil, quadrature.NewtonCotes, sy)
	if err != nil {
		b.Fatal(err)
	}
	m, err := ExtractExplicit(sys)
	if err != nil {
		b.Fatal(err)
	}
	m = m.Bind(0.01)
	x := dynamo.Pair{P: 0, Q: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, _ = m.Evaluate(x, symbolic.Env{})
	}
}
