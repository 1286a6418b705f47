package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes an observable series after a run.
type Summary struct {
	Initial  float64 `json:"initial"`
	Final    float64 `json:"final"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	StdDev   float64 `json:"std_dev"`
	MaxDrift float64 `json:"max_drift"`
}

// Summarize computes a Summary for values. Drift is relative to the first
// value, or absolute when it is zero.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{
		Initial: values[0],
		Final:   values[len(values)-1],
		Min:     floats.Min(values),
		Max:     floats.Max(values),
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	dev := math.Max(math.Abs(s.Max-s.Initial), math.Abs(s.Min-s.Initial))
	if s.Initial != 0 {
		dev /= math.Abs(s.Initial)
	}
	s.MaxDrift = dev
	return s
}
