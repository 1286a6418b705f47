package physics

import (
	"fmt"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/symbolic"
)

// DoubleWell models a particle in the bistable potential A (q^2 - B)^2.
type DoubleWell struct {
	A, B, Mass, Damping float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0, Mass: 1.0, Damping: 0.0}
}

func (d *DoubleWell) Name() string { return "doublewell" }

func (d *DoubleWell) Lagrangian(q, dq symbolic.Expr) symbolic.Expr {
	well := symbolic.Pow(symbolic.Sub(symbolic.Pow(q, 2), symbolic.Num(d.B)), 2)
	return symbolic.Sub(kinetic(d.Mass, dq), symbolic.Scale(well, d.A))
}

func (d *DoubleWell) Forcing() dynamo.Forcing { return viscous(d.Damping) }

func (d *DoubleWell) Energy(p, x float64) float64 {
	w := x*x - d.B
	return p*p/(2*d.Mass) + d.A*w*w
}

func (d *DoubleWell) Field(t float64, s dynamo.Pair) dynamo.Pair {
	x, v := s.Q, s.P/d.Mass
	return dynamo.Pair{P: -4*d.A*x*(x*x-d.B) - d.Damping*v, Q: v}
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B, "mass": d.Mass, "damping": d.Damping}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	case "mass":
		d.Mass = v
	case "damping":
		d.Damping = v
	default:
		return fmt.Errorf("unknown param: %s", n)
	}
	return nil
}
