// Package optim searches run settings for the integrator that best keeps a
// metric small.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/varint/internal/config"
	"github.com/san-kum/varint/internal/experiment"
)

// Axis names a setting and the values to try. "dt" and "nodes" address the
// integrator; any other name is a model parameter.
type Axis struct {
	Name   string
	Values []float64
}

// Point is one evaluated grid cell.
type Point struct {
	Values map[string]float64
	Metric float64
	Err    error
}

type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Size is the number of grid cells.
func (g *GridSearch) Size() int {
	n := 1
	for _, a := range g.axes {
		n *= len(a.Values)
	}
	return n
}

// Apply returns a copy of base with values set.
func Apply(base *config.Config, values map[string]float64) *config.Config {
	c := *base
	c.Params = make(map[string]float64, len(base.Params))
	for k, v := range base.Params {
		c.Params[k] = v
	}
	for k, v := range values {
		switch k {
		case "dt":
			c.Dt = v
		case "nodes":
			c.Nodes = int(v)
		default:
			c.Params[k] = v
		}
	}
	return &c
}

// Search runs every cell and returns the one with the smallest metric plus
// all points in grid order. Failed cells are kept with their error.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(values map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Point, []Point, error) {
	best := Point{Metric: math.Inf(1)}
	points := make([]Point, 0, g.Size())

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &points)

	if err := ctx.Err(); err != nil {
		return best, points, err
	}
	if best.Values == nil {
		return best, points, fmt.Errorf("no grid point succeeded: %w", firstErr(points))
	}
	return best, points, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *Point,
	points *[]Point,
) {
	if ctx.Err() != nil {
		return
	}
	if depth == len(g.axes) {
		p := evaluate(ctx, current, buildExperiment, metricName)
		*points = append(*points, p)
		if p.Err == nil && p.Metric < best.Metric {
			*best = p
		}
		return
	}

	axis := g.axes[depth]
	for _, val := range axis.Values {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[axis.Name] = val

		g.searchRecursive(ctx, depth+1, next, buildExperiment, metricName, best, points)
	}
}

func evaluate(
	ctx context.Context,
	values map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
) Point {
	p := Point{Values: values, Metric: math.NaN()}
	exp, err := buildExperiment(values)
	if err != nil {
		p.Err = err
		return p
	}
	result, err := exp.Run(ctx)
	if err != nil {
		p.Err = err
		return p
	}
	v, ok := result.Metrics[metricName]
	if !ok {
		p.Err = fmt.Errorf("unknown metric: %s", metricName)
		return p
	}
	p.Metric = v
	return p
}

// Names lists the axis names of a point in sorted order.
func (p Point) Names() []string {
	names := make([]string, 0, len(p.Values))
	for k := range p.Values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func firstErr(points []Point) error {
	for _, p := range points {
		if p.Err != nil {
			return p.Err
		}
	}
	return errors.New("empty grid")
}
