package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for derivation and stepping.
var (
	// ErrConfiguration indicates an invalid family, node count or user rule.
	ErrConfiguration = errors.New("dynamo: invalid quadrature configuration")

	// ErrExtractionAmbiguity indicates a weight or unknown could not be
	// isolated to exactly one term.
	ErrExtractionAmbiguity = errors.New("dynamo: ambiguous extraction")

	// ErrReconstruction indicates the path boundary system has no unique solution.
	ErrReconstruction = errors.New("dynamo: path reconstruction failed")

	// ErrConvergence indicates a per-step solve failed.
	ErrConvergence = errors.New("dynamo: step did not converge")

	// ErrInvalidState indicates a NaN or Inf in a step result.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrContextCanceled indicates the integration was interrupted.
	ErrContextCanceled = errors.New("dynamo: integration canceled by context")
)

// ConfigurationError is raised before any symbolic work begins.
type ConfigurationError struct {
	Family string
	N      int
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Family == "" {
		return fmt.Sprintf("%v: n=%d: %s", ErrConfiguration, e.N, e.Reason)
	}
	return fmt.Sprintf("%v: %s n=%d: %s", ErrConfiguration, e.Family, e.N, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Configf builds a ConfigurationError.
func Configf(family string, n int, format string, args ...any) error {
	return &ConfigurationError{Family: family, N: n, Reason: fmt.Sprintf(format, args...)}
}

// ExtractionError reports the stage and 1-based index at which a weight or an
// unknown could not be isolated. Matches is the number of terms found.
type ExtractionError struct {
	Stage   string
	Index   int
	Matches int
	Reason  string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: %s index %d (%d matches): %s", ErrExtractionAmbiguity, e.Stage, e.Index, e.Matches, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return ErrExtractionAmbiguity }

// ReconstructionError wraps the solver failure for an n-sample path.
type ReconstructionError struct {
	N       int
	Wrapped error
}

func (e *ReconstructionError) Error() string {
	return fmt.Sprintf("%v: n=%d: %v", ErrReconstruction, e.N, e.Wrapped)
}

func (e *ReconstructionError) Unwrap() []error { return []error{ErrReconstruction, e.Wrapped} }

// ConvergenceError carries the failing step and the last good pair.
type ConvergenceError struct {
	Step    int
	Time    float64
	Last    Pair
	Wrapped error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v: step %d at t=%.6g from (p=%.6g, q=%.6g): %v",
		ErrConvergence, e.Step, e.Time, e.Last.P, e.Last.Q, e.Wrapped)
}

func (e *ConvergenceError) Unwrap() []error { return []error{ErrConvergence, e.Wrapped} }
