package integrators

import "github.com/san-kum/varint/internal/dynamo"

// RK4 is the classical fourth order Runge-Kutta method on (p, q).
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(f dynamo.Field, x dynamo.Pair, t, dt float64) dynamo.Pair {
	k1 := f(t, x)
	k2 := f(t+dt*0.5, x.Add(k1.Scale(dt*0.5)))
	k3 := f(t+dt*0.5, x.Add(k2.Scale(dt*0.5)))
	k4 := f(t+dt, x.Add(k3.Scale(dt)))

	dt6 := dt / 6.0
	return dynamo.Pair{
		P: x.P + dt6*(k1.P+2*k2.P+2*k3.P+k4.P),
		Q: x.Q + dt6*(k1.Q+2*k2.Q+2*k3.Q+k4.Q),
	}
}
