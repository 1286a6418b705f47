package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/varint/internal/dynamo"
)

var models = map[string]func() dynamo.Model{
	"free":       func() dynamo.Model { return NewFreeParticle() },
	"harmonic":   func() dynamo.Model { return NewHarmonicOscillator() },
	"damped":     func() dynamo.Model { return NewDampedOscillator() },
	"pendulum":   func() dynamo.Model { return NewPendulum() },
	"duffing":    func() dynamo.Model { return NewDuffing() },
	"doublewell": func() dynamo.Model { return NewDoubleWell() },
}

// New returns a fresh model with default parameters.
func New(name string) (dynamo.Model, error) {
	fn, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

// Names lists the registered models alphabetically.
func Names() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Configure applies params to m when it is configurable.
func Configure(m dynamo.Model, params map[string]float64) error {
	if len(params) == 0 {
		return nil
	}
	c, ok := m.(dynamo.Configurable)
	if !ok {
		return fmt.Errorf("model %s has no parameters", m.Name())
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.SetParam(k, params[k]); err != nil {
			return fmt.Errorf("model %s: %w", m.Name(), err)
		}
	}
	return nil
}
