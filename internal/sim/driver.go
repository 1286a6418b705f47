package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/varint/internal/dynamo"
)

type Option func(*runOptions)

type runOptions struct {
	observers []Observer
}

// WithObserver registers o for every recorded step.
func WithObserver(o Observer) Option {
	return func(r *runOptions) { r.observers = append(r.observers, o) }
}

// StepCount is ceil(duration/dt), ignoring rounding noise in the ratio.
func StepCount(span dynamo.Span, dt float64) int {
	return int(math.Ceil(span.Duration()/dt - 1e-9))
}

// Integrate runs stepper from init over span with step dt. The observable is
// recorded at every step including step 0. A failed step ends the run with
// a ConvergenceError; the trajectory up to the last good step is returned
// alongside it.
func Integrate(ctx context.Context, stepper Stepper, init dynamo.Pair, span dynamo.Span, dt float64, observable dynamo.Observable, opts ...Option) (*Trajectory, error) {
	if err := validate(init, span, dt); err != nil {
		return nil, err
	}
	var ro runOptions
	for _, opt := range opts {
		opt(&ro)
	}
	if observable == nil {
		observable = func(p, q float64) float64 { return 0 }
	}

	steps := StepCount(span, dt)
	tr := newTrajectory(steps)
	record := func(k int, t float64, x dynamo.Pair) {
		v := observable(x.P, x.Q)
		tr.append(t, x, v)
		for _, o := range ro.observers {
			o.OnStep(k, t, x, v)
		}
	}

	x := init
	record(0, span.Start, x)

	for k := 0; k < steps; k++ {
		select {
		case <-ctx.Done():
			return tr, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		t := span.Start + float64(k)*dt
		next, err := stepper.Step(t, x, dt)
		if err == nil && !next.IsValid() {
			err = dynamo.ErrInvalidState
		}
		if err != nil {
			return tr, &dynamo.ConvergenceError{Step: k + 1, Time: t + dt, Last: x, Wrapped: err}
		}

		x = next
		record(k+1, span.Start+float64(k+1)*dt, x)
	}

	return tr, nil
}

func validate(init dynamo.Pair, span dynamo.Span, dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return dynamo.Configf("", 0, "dt must be positive, got %g", dt)
	}
	if !(span.End > span.Start) {
		return dynamo.Configf("", 0, "empty time span [%g, %g]", span.Start, span.End)
	}
	if !init.IsValid() {
		return fmt.Errorf("initial pair %v: %w", init, dynamo.ErrInvalidState)
	}
	return nil
}
