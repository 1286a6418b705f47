package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/varint/internal/config"
)

// Outcome pairs a comparison entry with its result or error.
type Outcome struct {
	Config *config.Config
	Result *Result
	Err    error
}

// Compare sets up and runs every configuration on its own goroutine. Outcomes
// keep the input order; one failure does not stop the others.
func Compare(ctx context.Context, r *Registry, cfgs []*config.Config) []Outcome {
	out := make([]Outcome, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		wg.Add(1)
		go func(idx int, cfg *config.Config) {
			defer wg.Done()

			out[idx].Config = cfg
			exp := New(cfg)
			if err := exp.Setup(r); err != nil {
				out[idx].Err = err
				return
			}
			out[idx].Result, out[idx].Err = exp.Run(ctx)
		}(i, cfg)
	}

	wg.Wait()
	return out
}

// RunAll runs experiments that are already set up, each on its own
// goroutine. Outcomes keep the input order.
func RunAll(ctx context.Context, exps []*Experiment) []Outcome {
	out := make([]Outcome, len(exps))

	var wg sync.WaitGroup
	for i, exp := range exps {
		wg.Add(1)
		go func(idx int, exp *Experiment) {
			defer wg.Done()

			out[idx].Config = exp.Config()
			out[idx].Result, out[idx].Err = exp.Run(ctx)
		}(i, exp)
	}

	wg.Wait()
	return out
}

// Variants copies base once per family/node pair.
func Variants(base *config.Config, families []string, nodes int) []*config.Config {
	out := make([]*config.Config, 0, len(families))
	for _, f := range families {
		c := *base
		c.Family = f
		c.Nodes = nodes
		c.Rule = nil
		if f == "rk4" || f == "verlet" {
			c.Reference = f
		}
		out = append(out, &c)
	}
	return out
}
