package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/varint/internal/dynamo"
)

func oscillatorField(t float64, x dynamo.Pair) dynamo.Pair {
	return dynamo.Pair{P: -x.Q, Q: x.P}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := dynamo.Pair{P: 0, Q: 1}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(oscillatorField, x, float64(i)*dt, dt)
	}

	expectedQ := math.Cos(float64(steps) * dt)
	expectedP := -math.Sin(float64(steps) * dt)

	if math.Abs(x.Q-expectedQ) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x.Q, expectedQ)
	}
	if math.Abs(x.P-expectedP) > 1e-8 {
		t.Errorf("momentum error too large: got %.10f, expected %.10f", x.P, expectedP)
	}
}

func TestVerletEnergyBounded(t *testing.T) {
	integ := NewVerlet()

	x := dynamo.Pair{P: 0, Q: 1}
	e0 := 0.5 * (x.P*x.P + x.Q*x.Q)
	dt := 0.1
	maxDev := 0.0

	for i := 0; i < 10000; i++ {
		x = integ.Step(oscillatorField, x, float64(i)*dt, dt)
		e := 0.5 * (x.P*x.P + x.Q*x.Q)
		maxDev = math.Max(maxDev, math.Abs(e-e0))
	}

	if maxDev > 0.01 {
		t.Errorf("energy deviation too large: %.6f", maxDev)
	}
}

func TestNewReference(t *testing.T) {
	for _, name := range []string{"rk4", "verlet"} {
		r, ok := NewReference(name)
		if !ok || r.Name() != name {
			t.Errorf("expected reference %q", name)
		}
	}
	if _, ok := NewReference("euler"); ok {
		t.Error("expected unknown reference to be rejected")
	}
}
