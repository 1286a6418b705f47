package metrics

import "github.com/san-kum/varint/internal/dynamo"

// Metric accumulates a scalar over the steps of a run. Every Metric is a
// sim.Observer and can be passed to sim.WithObserver.
type Metric interface {
	Name() string
	OnStep(k int, t float64, x dynamo.Pair, value float64)
	Value() float64
	Reset()
}

// Standard returns the metrics reported by default for a run.
func Standard() []Metric {
	return []Metric{NewMean(), NewDrift(), NewStability(1e6)}
}
