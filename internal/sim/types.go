package sim

import "github.com/san-kum/varint/internal/dynamo"

// Stepper advances one step boundary pair by dt.
type Stepper interface {
	Name() string
	Step(t float64, x dynamo.Pair, dt float64) (dynamo.Pair, error)
}

// Observer is notified after every recorded step, step 0 included.
type Observer interface {
	OnStep(k int, t float64, x dynamo.Pair, value float64)
}

type ObserverFunc func(k int, t float64, x dynamo.Pair, value float64)

func (f ObserverFunc) OnStep(k int, t float64, x dynamo.Pair, value float64) { f(k, t, x, value) }

// Trajectory holds one entry per recorded step. Steps is the planned step
// count; a run that stopped early has fewer than Steps+1 entries.
type Trajectory struct {
	Times       []float64 `json:"times"`
	Momenta     []float64 `json:"momenta"`
	Positions   []float64 `json:"positions"`
	Observables []float64 `json:"observables"`
	Steps       int       `json:"steps"`
}

func newTrajectory(steps int) *Trajectory {
	return &Trajectory{
		Times:       make([]float64, 0, steps+1),
		Momenta:     make([]float64, 0, steps+1),
		Positions:   make([]float64, 0, steps+1),
		Observables: make([]float64, 0, steps+1),
		Steps:       steps,
	}
}

func (tr *Trajectory) append(t float64, x dynamo.Pair, value float64) {
	tr.Times = append(tr.Times, t)
	tr.Momenta = append(tr.Momenta, x.P)
	tr.Positions = append(tr.Positions, x.Q)
	tr.Observables = append(tr.Observables, value)
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Pair returns the state recorded at index i.
func (tr *Trajectory) Pair(i int) dynamo.Pair {
	return dynamo.Pair{P: tr.Momenta[i], Q: tr.Positions[i]}
}

// Complete reports whether every planned step was recorded.
func (tr *Trajectory) Complete() bool { return tr.Len() == tr.Steps+1 }
