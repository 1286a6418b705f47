package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/integrators"
	"github.com/san-kum/varint/internal/metrics"
	"github.com/san-kum/varint/internal/physics"
)

type Registry struct {
	models     map[string]func() dynamo.Model
	references map[string]func() integrators.Reference
}

func NewRegistry() *Registry {
	r := &Registry{
		models:     make(map[string]func() dynamo.Model),
		references: make(map[string]func() integrators.Reference),
	}

	for _, name := range physics.Names() {
		name := name
		r.models[name] = func() dynamo.Model {
			m, _ := physics.New(name)
			return m
		}
	}

	r.references["rk4"] = func() integrators.Reference { return integrators.NewRK4() }
	r.references["verlet"] = func() integrators.Reference { return integrators.NewVerlet() }

	return r
}

// Register adds or replaces a model factory.
func (r *Registry) Register(name string, fn func() dynamo.Model) {
	r.models[name] = fn
}

// GetModel returns a fresh model with params applied.
func (r *Registry) GetModel(name string, params map[string]float64) (dynamo.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown model: %s", dynamo.ErrConfiguration, name)
	}
	m := fn()
	if err := physics.Configure(m, params); err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrConfiguration, err)
	}
	return m, nil
}

func (r *Registry) GetReference(name string) (integrators.Reference, error) {
	fn, ok := r.references[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown reference integrator: %s", dynamo.ErrConfiguration, name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListReferences() []string {
	names := make([]string, 0, len(r.references))
	for name := range r.references {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []metrics.Metric {
	return metrics.Standard()
}
