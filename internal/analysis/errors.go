package analysis

import "errors"

var (
	ErrTooShort      = errors.New("series too short")
	ErrNoOscillation = errors.New("no oscillation found")
	ErrDegenerate    = errors.New("degenerate convergence data")
)
