package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/symbolic"
)

// Pendulum is a point mass on a rigid rod; q is the angle from the bottom.
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.0,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Name() string { return "pendulum" }

func (p *Pendulum) inertia() float64 { return p.Mass * p.Length * p.Length }

// L = 1/2 m l^2 dq^2 + m g l cos(q)
func (p *Pendulum) Lagrangian(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Add(
		kinetic(p.inertia(), dq),
		symbolic.Scale(symbolic.Apply(symbolic.Cos, q), p.Mass*p.Gravity*p.Length),
	)
}

func (p *Pendulum) Forcing() dynamo.Forcing { return viscous(p.Damping) }

func (p *Pendulum) Energy(mom, q float64) float64 {
	ke := mom * mom / (2 * p.inertia())
	pe := p.Mass * p.Gravity * p.Length * (1.0 - math.Cos(q))
	return ke + pe
}

func (p *Pendulum) Field(t float64, x dynamo.Pair) dynamo.Pair {
	omega := x.P / p.inertia()
	torque := -p.Mass*p.Gravity*p.Length*math.Sin(x.Q) - p.Damping*omega
	return dynamo.Pair{P: torque, Q: omega}
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
