package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/varint/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "harmonic" {
		t.Errorf("expected model harmonic, got %s", cfg.Model)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Q0 != 0.2 {
		t.Errorf("expected q0 0.2, got %f", cfg.Q0)
	}
	cfg.Q0 = 9
	if GetPreset("pendulum", "small").Q0 != 0.2 {
		t.Error("expected presets to be copied")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("pendulum", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "small") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestPresetsValidate(t *testing.T) {
	for model := range Presets {
		for _, name := range ListPresets(model) {
			if err := GetPreset(model, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", model, name, err)
			}
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"empty span", func(c *Config) { c.End = c.Start }},
		{"no model", func(c *Config) { c.Model = "" }},
		{"unknown family", func(c *Config) { c.Family = "simpsons" }},
		{"romberg n=4", func(c *Config) { c.Family = "Romberg"; c.Nodes = 4 }},
		{"takahasi-mori even", func(c *Config) { c.Family = "TakahasiMori"; c.Nodes = 4 }},
		{"one node", func(c *Config) { c.Nodes = 1 }},
		{"custom without rule", func(c *Config) { c.Family = "custom" }},
		{"custom node outside", func(c *Config) {
			c.Family = "custom"
			c.Rule = &RuleConfig{Lo: 0, Hi: 1, Nodes: []float64{0, 2}, Weights: []float64{0.5, 0.5}}
		}},
		{"bad reference", func(c *Config) { c.Reference = "euler" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, dynamo.ErrConfiguration) {
			t.Errorf("%s: expected configuration error, got %v", tt.name, err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Family = "custom"
	cfg.Rule = &RuleConfig{Lo: 0, Hi: 1, Nodes: []float64{1, 0}, Weights: []float64{0.5, 0.5}}
	cfg.Params = map[string]float64{"stiffness": 4}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Family != "custom" || got.Rule == nil || len(got.Rule.Nodes) != 2 {
		t.Errorf("unexpected rule after round trip: %+v", got.Rule)
	}
	if got.Params["stiffness"] != 4 {
		t.Errorf("expected stiffness 4, got %v", got.Params)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("expected loaded config to validate, got %v", err)
	}
}

func TestPolicyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = SolverConfig{Tolerance: 1e-8}
	p := cfg.Policy()
	if p.Tolerance != 1e-8 {
		t.Errorf("expected tolerance override, got %g", p.Tolerance)
	}
	if p.MaxIterations <= 0 || p.ExactMaxTerms <= 0 {
		t.Error("expected defaults for unset solver fields")
	}
}
