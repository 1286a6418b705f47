package integrators

import "github.com/san-kum/varint/internal/dynamo"

// Verlet is the velocity Verlet (Stormer-Verlet) scheme in kick-drift-kick
// form. It is symplectic when the force depends on q only.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(f dynamo.Field, x dynamo.Pair, t, dt float64) dynamo.Pair {
	halfDt := 0.5 * dt

	pHalf := x.P + halfDt*f(t, x).P
	mid := dynamo.Pair{P: pHalf, Q: x.Q}
	q1 := x.Q + dt*f(t+halfDt, mid).Q

	kick := f(t+dt, dynamo.Pair{P: pHalf, Q: q1})
	return dynamo.Pair{P: pHalf + halfDt*kick.P, Q: q1}
}

// Reference is a classical one-step integrator over a Field.
type Reference interface {
	Name() string
	Step(f dynamo.Field, x dynamo.Pair, t, dt float64) dynamo.Pair
}

// NewReference returns the reference integrator with the given name.
func NewReference(name string) (Reference, bool) {
	switch name {
	case "rk4":
		return NewRK4(), true
	case "verlet":
		return NewVerlet(), true
	}
	return nil, false
}
