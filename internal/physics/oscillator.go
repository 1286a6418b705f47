package physics

import (
	"fmt"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/symbolic"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 1.0
)

func kinetic(mass float64, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Scale(symbolic.Pow(dq, 2), 0.5*mass)
}

// viscous returns F = -c dq, or nil when c is zero.
func viscous(c float64) dynamo.Forcing {
	if c == 0 {
		return nil
	}
	return func(q, dq symbolic.Expr) symbolic.Expr { return symbolic.Scale(dq, -c) }
}

// FreeParticle has no potential.
type FreeParticle struct {
	Mass float64
}

func NewFreeParticle() *FreeParticle { return &FreeParticle{Mass: DefaultMass} }

func (f *FreeParticle) Name() string { return "free" }

func (f *FreeParticle) Lagrangian(q, dq symbolic.Expr) symbolic.Expr { return kinetic(f.Mass, dq) }
func (f *FreeParticle) Forcing() dynamo.Forcing                     { return nil }
func (f *FreeParticle) Energy(p, q float64) float64                 { return p * p / (2 * f.Mass) }

func (f *FreeParticle) Field(t float64, x dynamo.Pair) dynamo.Pair {
	return dynamo.Pair{P: 0, Q: x.P / f.Mass}
}

func (f *FreeParticle) GetParams() map[string]float64 {
	return map[string]float64{"mass": f.Mass}
}

func (f *FreeParticle) SetParam(name string, value float64) error {
	if name != "mass" {
		return fmt.Errorf("unknown param: %s", name)
	}
	f.Mass = value
	return nil
}

// Oscillator is a linear spring with optional viscous damping.
type Oscillator struct {
	Mass      float64
	Stiffness float64
	Damping   float64
}

func NewHarmonicOscillator() *Oscillator {
	return &Oscillator{Mass: DefaultMass, Stiffness: DefaultStiffness}
}

func NewDampedOscillator() *Oscillator {
	return &Oscillator{Mass: DefaultMass, Stiffness: DefaultStiffness, Damping: 0.1}
}

func (o *Oscillator) Name() string {
	if o.Damping != 0 {
		return "damped"
	}
	return "harmonic"
}

// L = 1/2 m dq^2 - 1/2 k q^2
func (o *Oscillator) Lagrangian(q, dq symbolic.Expr) symbolic.Expr {
	return symbolic.Sub(kinetic(o.Mass, dq), symbolic.Scale(symbolic.Pow(q, 2), 0.5*o.Stiffness))
}

func (o *Oscillator) Forcing() dynamo.Forcing { return viscous(o.Damping) }

func (o *Oscillator) Energy(p, q float64) float64 {
	return p*p/(2*o.Mass) + 0.5*o.Stiffness*q*q
}

func (o *Oscillator) Field(t float64, x dynamo.Pair) dynamo.Pair {
	v := x.P / o.Mass
	return dynamo.Pair{P: -o.Stiffness*x.Q - o.Damping*v, Q: v}
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{"mass": o.Mass, "stiffness": o.Stiffness, "damping": o.Damping}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		o.Mass = value
	case "stiffness":
		o.Stiffness = value
	case "damping":
		o.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
