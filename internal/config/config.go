package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/quadrature"
	"github.com/san-kum/varint/internal/symbolic"
)

const (
	DefaultDt       = 0.05
	DefaultDuration = 10.0
	DefaultNodes    = 3
	DefaultQ0       = 0.5
)

type Config struct {
	Model  string             `yaml:"model"`
	Params map[string]float64 `yaml:"params,omitempty"`

	// Family is a quadrature family name or "custom". Reference, when set,
	// replaces the variational integrator with rk4 or verlet.
	Family    string      `yaml:"family"`
	Nodes     int         `yaml:"nodes"`
	Explicit  bool        `yaml:"explicit"`
	Reference string      `yaml:"reference,omitempty"`
	Rule      *RuleConfig `yaml:"rule,omitempty"`

	Dt    float64 `yaml:"dt"`
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	P0    float64 `yaml:"p0"`
	Q0    float64 `yaml:"q0"`

	Solver SolverConfig `yaml:"solver"`
}

// RuleConfig is a user quadrature rule on [Lo, Hi].
type RuleConfig struct {
	Lo      float64   `yaml:"lo"`
	Hi      float64   `yaml:"hi"`
	Nodes   []float64 `yaml:"nodes"`
	Weights []float64 `yaml:"weights"`
}

type SolverConfig struct {
	ExactMaxTerms int     `yaml:"exact_max_terms"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

func DefaultConfig() *Config {
	p := symbolic.DefaultPolicy()
	return &Config{
		Model:    "harmonic",
		Family:   quadrature.GaussLobatto.String(),
		Nodes:    DefaultNodes,
		Explicit: true,
		Dt:       DefaultDt,
		Start:    0,
		End:      DefaultDuration,
		Q0:       DefaultQ0,
		Solver: SolverConfig{
			ExactMaxTerms: p.ExactMaxTerms,
			Tolerance:     p.Tolerance,
			MaxIterations: p.MaxIterations,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IsCustom reports whether the run uses a user rule.
func (c *Config) IsCustom() bool { return strings.EqualFold(c.Family, "custom") }

func (c *Config) Span() dynamo.Span { return dynamo.Span{Start: c.Start, End: c.End} }

func (c *Config) Init() dynamo.Pair { return dynamo.Pair{P: c.P0, Q: c.Q0} }

func (c *Config) Policy() symbolic.Policy {
	p := symbolic.DefaultPolicy()
	if c.Solver.ExactMaxTerms > 0 {
		p.ExactMaxTerms = c.Solver.ExactMaxTerms
	}
	if c.Solver.Tolerance > 0 {
		p.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MaxIterations > 0 {
		p.MaxIterations = c.Solver.MaxIterations
	}
	return p
}

// Validate checks everything that can be checked without deriving the
// integrator. Family and node count problems are ConfigurationErrors.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", dynamo.ErrConfiguration)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrConfiguration, c.Dt)
	}
	if !(c.End > c.Start) {
		return fmt.Errorf("%w: end %g must be after start %g", dynamo.ErrConfiguration, c.End, c.Start)
	}
	if !c.Init().IsValid() {
		return fmt.Errorf("%w: initial pair %v", dynamo.ErrConfiguration, c.Init())
	}

	switch c.Reference {
	case "":
	case "rk4", "verlet":
		return nil
	default:
		return fmt.Errorf("%w: unknown reference integrator %q", dynamo.ErrConfiguration, c.Reference)
	}

	if c.IsCustom() {
		if c.Rule == nil {
			return dynamo.Configf("custom", 0, "rule is required")
		}
		_, err := quadrature.NewCustom(c.Rule.Lo, c.Rule.Hi, c.Rule.Nodes, c.Rule.Weights)
		return err
	}
	f, err := quadrature.ParseFamily(c.Family)
	if err != nil {
		return err
	}
	return f.Validate(c.Nodes)
}
