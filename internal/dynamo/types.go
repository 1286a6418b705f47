package dynamo

import (
	"fmt"
	"math"

	"github.com/san-kum/varint/internal/symbolic"
)

// Symbols names the quantities of one step: indexed momentum and position
// bases, the step size and the time variable.
type Symbols struct {
	P string
	Q string
	H symbolic.Symbol
	T symbolic.Symbol
}

func DefaultSymbols() Symbols {
	return Symbols{P: "p", Q: "q", H: symbolic.Sym("h"), T: symbolic.Sym("t")}
}

func (s Symbols) Pk(k int) symbolic.Symbol { return symbolic.Indexed(s.P, k) }
func (s Symbols) Qk(k int) symbolic.Symbol { return symbolic.Indexed(s.Q, k) }

// Lagrangian returns L(q, dq) for position and velocity expressions.
type Lagrangian func(q, dq symbolic.Expr) symbolic.Expr

// Forcing returns the generalized force F(q, dq). A nil Forcing is zero.
type Forcing func(q, dq symbolic.Expr) symbolic.Expr

// Observable is an energy-like function of a step boundary pair.
type Observable func(p, q float64) float64

// Pair is the momentum and position at a step boundary.
type Pair struct {
	P float64 `json:"p"`
	Q float64 `json:"q"`
}

func (x Pair) IsValid() bool {
	return !math.IsNaN(x.P) && !math.IsInf(x.P, 0) && !math.IsNaN(x.Q) && !math.IsInf(x.Q, 0)
}

func (x Pair) Add(o Pair) Pair      { return Pair{P: x.P + o.P, Q: x.Q + o.Q} }
func (x Pair) Sub(o Pair) Pair      { return Pair{P: x.P - o.P, Q: x.Q - o.Q} }
func (x Pair) Scale(f float64) Pair { return Pair{P: x.P * f, Q: x.Q * f} }
func (x Pair) Norm() float64        { return math.Hypot(x.P, x.Q) }

func (x Pair) String() string { return fmt.Sprintf("(p=%.6g, q=%.6g)", x.P, x.Q) }

// Span is a closed time interval.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (s Span) Duration() float64 { return s.End - s.Start }

// Field is the first-order form of a model: it returns (dp/dt, dq/dt) in a Pair.
type Field func(t float64, x Pair) Pair

// Model bundles what a physical system provides to derivation and stepping.
type Model interface {
	Name() string
	Lagrangian(q, dq symbolic.Expr) symbolic.Expr
	// Forcing returns nil for conservative models.
	Forcing() Forcing
	Energy(p, q float64) float64
	Field(t float64, x Pair) Pair
}

// Configurable models expose their parameters by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
