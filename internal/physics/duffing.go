package physics

import (
	"fmt"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/symbolic"
)

// Duffing is the unforced Duffing oscillator with potential
// alpha q^2/2 + beta q^4/4 and damping delta.
type Duffing struct {
	Mass, Alpha, Beta, Delta float64
}

func NewDuffing() *Duffing {
	return &Duffing{Mass: 1.0, Alpha: -1.0, Beta: 1.0, Delta: 0.0}
}

func (d *Duffing) Name() string { return "duffing" }

func (d *Duffing) Lagrangian(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Add(
		kinetic(d.Mass, dq),
		symbolic.Scale(symbolic.Pow(q, 2), -0.5*d.Alpha),
		symbolic.Scale(symbolic.Pow(q, 4), -0.25*d.Beta),
	)
}

func (d *Duffing) Forcing() dynamo.Forcing { return viscous(d.Delta) }

func (d *Duffing) Energy(p, x float64) float64 {
	return p*p/(2*d.Mass) + 0.5*d.Alpha*x*x + 0.25*d.Beta*x*x*x*x
}

func (d *Duffing) Field(t float64, s dynamo.Pair) dynamo.Pair {
	x, v := s.Q, s.P/d.Mass
	return dynamo.Pair{P: -d.Delta*v - d.Alpha*x - d.Beta*x*x*x, Q: v}
}

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"mass": d.Mass, "alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "mass":
		d.Mass = v
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	default:
		return fmt.Errorf("unknown param: %s", n)
	}
	return nil
}
