package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/varint/internal/config"
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/metrics"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/sim"
)

type Experiment struct {
	cfg     *config.Config
	sy      dynamo.Symbols
	model   dynamo.Model
	ref     integrators.Reference
	system  *integrators.DELSystem
	mapping *integrators.ExplicitMap
	stepper sim.Stepper
	metrics []metrics.Metric
}

// Result is one finished (or failed) run.
type Result struct {
	Name       string
	Model      string
	Trajectory *sim.Trajectory
	Metrics    map[string]float64
	Summary    metrics.Summary
	Elapsed    time.Duration
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg, sy: dynamo.DefaultSymbols()}
}

// Setup validates the configuration, builds the model and derives the
// stepper. Deriving can be slow for large node counts.
func (e *Experiment) Setup(r *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	model, err := r.GetModel(e.cfg.Model, e.cfg.Params)
	if err != nil {
		return err
	}
	e.model = model
	e.metrics = r.DefaultMetrics()

	if e.cfg.Reference != "" {
		ref, err := r.GetReference(e.cfg.Reference)
		if err != nil {
			return err
		}
		e.ref = ref
		e.stepper = e.newStepper()
		return nil
	}

	sys, err := e.derive()
	if err != nil {
		return err
	}
	e.system = sys

	if e.cfg.Explicit {
		// extracted at the configured dt; see DELSystem.Bind
		m, err := integrators.ExtractExplicit(sys.Bind(e.cfg.Dt))
		if err != nil {
			return fmt.Errorf("explicit map for %s: %w", e.Name(), err)
		}
		e.mapping = m
	}
	e.stepper = e.newStepper()
	return nil
}

func (e *Experiment) newStepper() sim.Stepper {
	switch {
	case e.ref != nil:
		return sim.NewReference(e.ref, e.model.Field)
	case e.mapping != nil:
		return sim.NewExplicit(e.mapping)
	default:
		return sim.NewImplicit(e.system, e.cfg.Policy())
	}
}

// Fork returns an experiment that shares the model and the derived system
// or map but starts from init, with its own stepper and metrics. Forks of
// one experiment can run concurrently.
func (e *Experiment) Fork(init dynamo.Pair) (*Experiment, error) {
	if e.stepper == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	cfg := *e.cfg
	cfg.P0, cfg.Q0 = init.P, init.Q
	f := *e
	f.cfg = &cfg
	f.metrics = metrics.Standard()
	f.stepper = f.newStepper()
	return &f, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) derive() (*integrators.DELSystem, error) {
	if e.cfg.IsCustom() {
		rule := e.cfg.Rule
		return integrators.FromRule(rule.Lo, rule.Hi, rule.Nodes, rule.Weights, e.model.Lagrangian, e.model.Forcing(), e.sy)
	}
	family, err := quadrature.ParseFamily(e.cfg.Family)
	if err != nil {
		return nil, err
	}
	return integrators.FromFamily(e.cfg.Nodes, e.model.Lagrangian, e.model.Forcing(), family, e.sy)
}

// Name identifies the integrator, e.g. "GaussLobatto/3 explicit".
func (e *Experiment) Name() string {
	switch {
	case e.cfg.Reference != "":
		return e.cfg.Reference
	case e.cfg.IsCustom():
		return "custom"
	}
	mode := "implicit"
	if e.cfg.Explicit {
		mode = "explicit"
	}
	return fmt.Sprintf("%s/%d %s", e.cfg.Family, e.cfg.Nodes, mode)
}

func (e *Experiment) Model() dynamo.Model { return e.model }

func (e *Experiment) Stepper() sim.Stepper { return e.stepper }

// System is nil for reference runs.
func (e *Experiment) System() *integrators.DELSystem { return e.system }

// Map is nil unless the run is explicit.
func (e *Experiment) Map() *integrators.ExplicitMap { return e.mapping }

// Run integrates with the model energy as the observable. A failed run still
// returns the partial result.
func (e *Experiment) Run(ctx context.Context, opts ...sim.Option) (*Result, error) {
	if e.stepper == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	for _, m := range e.metrics {
		m.Reset()
		opts = append(opts, sim.WithObserver(m))
	}

	start := time.Now()
	tr, err := sim.Integrate(ctx, e.stepper, e.cfg.Init(), e.cfg.Span(), e.cfg.Dt, e.model.Energy, opts...)
	if tr == nil {
		return nil, err
	}

	res := &Result{
		Name:       e.Name(),
		Model:      e.model.Name(),
		Trajectory: tr,
		Metrics:    make(map[string]float64, len(e.metrics)),
		Summary:    metrics.Summarize(tr.Observables),
		Elapsed:    time.Since(start),
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, err
}
