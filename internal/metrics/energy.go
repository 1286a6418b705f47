package metrics

import (
	"math"

	"github.com/san-kum/varint/internal/dynamo"
)

// Mean is the average observable over all recorded steps.
type Mean struct {
	name    string
	samples int
	total   float64
}

func NewMean() *Mean {
	return &Mean{name: "observable_mean"}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) OnStep(k int, t float64, x dynamo.Pair, value float64) {
	m.total += value
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Mean) Reset() {
	m.total = 0
	m.samples = 0
}

// Drift is the largest deviation of the observable from its step 0 value,
// relative to that value. When the initial value is zero the deviation is
// absolute.
type Drift struct {
	name     string
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewDrift() *Drift {
	return &Drift{name: "observable_drift"}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) OnStep(k int, t float64, x dynamo.Pair, value float64) {
	if d.samples == 0 {
		d.initial = value
	}
	d.current = value
	d.samples++

	dev := math.Abs(value - d.initial)
	if d.initial != 0 {
		dev /= math.Abs(d.initial)
	}
	d.maxDrift = math.Max(d.maxDrift, dev)
}

func (d *Drift) Value() float64 { return d.maxDrift }

// Final is the relative drift at the last observed step.
func (d *Drift) Final() float64 {
	if d.initial == 0 {
		return d.current
	}
	return (d.current - d.initial) / math.Abs(d.initial)
}

func (d *Drift) Reset() {
	d.initial = 0
	d.current = 0
	d.maxDrift = 0
	d.samples = 0
}
