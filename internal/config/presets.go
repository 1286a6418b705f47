package config

import "sort"

var Presets = map[string]map[string]*Config{
	"harmonic": {
		"verlet": {
			Model: "harmonic", Family: "NewtonCotes", Nodes: 2, Explicit: true,
			Dt: 0.1, End: 50.0, Q0: 1.0,
		},
		"lobatto": {
			Model: "harmonic", Family: "GaussLobatto", Nodes: 4, Explicit: true,
			Dt: 0.2, End: 50.0, Q0: 1.0,
		},
		"simpson": {
			Model: "harmonic", Family: "NewtonCotes", Nodes: 3, Explicit: true,
			Dt: 0.1, End: 50.0, Q0: 1.0,
		},
	},
	"free": {
		"gauss": {
			Model: "free", Family: "GaussLegendre", Nodes: 2, Explicit: true,
			Dt: 0.1, End: 10.0, P0: 1.0,
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Family: "GaussLegendre", Nodes: 2,
			Dt: 0.05, End: 20.0, Q0: 0.2,
		},
		"large": {
			Model: "pendulum", Family: "GaussLegendre", Nodes: 2,
			Dt: 0.02, End: 20.0, Q0: 2.5,
		},
		"lobatto": {
			Model: "pendulum", Family: "GaussLobatto", Nodes: 3,
			Dt: 0.05, End: 20.0, Q0: 1.0,
		},
	},
	"damped": {
		"decay": {
			Model: "damped", Family: "NewtonCotes", Nodes: 2, Explicit: true,
			Dt: 0.05, End: 30.0, Q0: 1.0,
		},
	},
	"duffing": {
		"well": {
			Model: "duffing", Family: "GaussLobatto", Nodes: 3,
			Dt: 0.05, End: 30.0, Q0: 0.5, P0: 0.2,
		},
	},
	"doublewell": {
		"hop": {
			Model: "doublewell", Family: "NewtonCotes", Nodes: 2, Explicit: true,
			Dt: 0.01, End: 20.0, Q0: 1.0, P0: 1.5,
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	out := *cfg
	out.Solver = DefaultConfig().Solver
	return &out
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
