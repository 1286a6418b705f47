// Package automation runs scripted batches of experiments: scenario files
// and perturbed initial-condition trials.
package automation

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/varint/internal/config"
	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/experiment"
	"github.com/san-kum/varint/internal/storage"
)

// Scenario defines a scripted simulation sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Fields left out of the file keep the values of
// config.DefaultConfig.
type ScenarioStep struct {
	config.Config `yaml:",inline"`
	Save          bool `yaml:"save"`
}

func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	type plain ScenarioStep
	p := plain{Config: *config.DefaultConfig()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = ScenarioStep(p)
	return nil
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepResult is the outcome of one scenario step. RunID is set when the
// step was saved.
type StepResult struct {
	Result *experiment.Result
	RunID  string
}

// RunScenario executes the steps in order and stops at the first failure,
// returning the results so far. Steps marked save are written to st when
// st is non-nil. Progress goes to log.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, log io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i := range scenario.Steps {
		step := &scenario.Steps[i]
		fmt.Fprintf(log, "running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Model)

		exp := experiment.New(&step.Config)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Result: result}
		if step.Save && st != nil {
			id, err := st.Save(storage.NewMetadata(&step.Config, result.Name, result.Metrics), result.Trajectory)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial pair of Base uniformly by up to
// Perturbation in each coordinate.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult is one trial.
type MonteCarloResult struct {
	TrialID int
	Init    dynamo.Pair
	Final   dynamo.Pair
	Drift   float64
	Stable  bool
	Err     error
}

// RunMonteCarlo sets up Base once and runs forks of it concurrently, one per
// trial. A trial is stable when it completed and never left the stability
// bound.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("number of trials must be positive, got %d", cfg.NumTrials)
	}
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// derive once; every trial forks the same system or map
	base := experiment.New(cfg.Base)
	if err := base.Setup(registry); err != nil {
		return nil, err
	}
	exps := make([]*experiment.Experiment, cfg.NumTrials)
	for i := range exps {
		start := cfg.Base.Init()
		start.P += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		start.Q += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		fork, err := base.Fork(start)
		if err != nil {
			return nil, err
		}
		exps[i] = fork
	}

	outcomes := experiment.RunAll(ctx, exps)
	results := make([]MonteCarloResult, len(outcomes))
	for i, o := range outcomes {
		r := MonteCarloResult{TrialID: i, Init: o.Config.Init(), Err: o.Err, Drift: math.NaN()}
		if o.Result != nil {
			tr := o.Result.Trajectory
			r.Final = tr.Pair(tr.Len() - 1)
			r.Drift = o.Result.Summary.MaxDrift
			r.Stable = o.Err == nil && o.Result.Metrics["stability"] == 1
		}
		results[i] = r
	}
	return results, ctx.Err()
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
