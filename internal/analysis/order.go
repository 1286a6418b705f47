package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/varint/internal/dynamo"
	"github.com/san-kum/varint/internal/sim"
)

// StepperFactory returns a fresh stepper for step size dt.
type StepperFactory func(dt float64) (sim.Stepper, error)

// OrderEstimate holds the halving sequence. Errors[i] is the distance
// between the final states at Dts[i] and Dts[i]/2.
type OrderEstimate struct {
	Dts    []float64 `json:"dts"`
	Errors []float64 `json:"errors"`
	Order  float64   `json:"order"`
}

// ConvergenceOrder runs the stepper at dt, dt/2, ..., dt/2^levels and fits
// log(error) against log(dt). dt should divide the span so every resolution
// ends at the same time.
func ConvergenceOrder(ctx context.Context, newStepper StepperFactory, init dynamo.Pair, span dynamo.Span, dt float64, levels int) (OrderEstimate, error) {
	if levels < 2 {
		return OrderEstimate{}, fmt.Errorf("%w: need at least 2 levels, got %d", ErrDegenerate, levels)
	}

	finals := make([]dynamo.Pair, levels+1)
	h := dt
	var end float64
	for i := range finals {
		stepper, err := newStepper(h)
		if err != nil {
			return OrderEstimate{}, err
		}
		tr, err := sim.Integrate(ctx, stepper, init, span, h, nil)
		if err != nil {
			return OrderEstimate{}, fmt.Errorf("dt=%g: %w", h, err)
		}
		last := tr.Len() - 1
		if i == 0 {
			end = tr.Times[last]
		} else if math.Abs(tr.Times[last]-end) > 1e-9*math.Max(1, math.Abs(end)) {
			return OrderEstimate{}, fmt.Errorf("%w: dt=%g ends at %g, not %g", ErrDegenerate, h, tr.Times[last], end)
		}
		finals[i] = tr.Pair(last)
		h /= 2
	}

	est := OrderEstimate{
		Dts:    make([]float64, levels),
		Errors: make([]float64, levels),
	}
	logH := make([]float64, levels)
	logE := make([]float64, levels)
	h = dt
	for i := 0; i < levels; i++ {
		e := finals[i].Sub(finals[i+1]).Norm()
		est.Dts[i], est.Errors[i] = h, e
		if !(e > 0) {
			return est, fmt.Errorf("%w: zero difference at dt=%g", ErrDegenerate, h)
		}
		logH[i], logE[i] = math.Log(h), math.Log(e)
		h /= 2
	}

	_, est.Order = stat.LinearRegression(logH, logE, nil, false)
	return est, nil
}
