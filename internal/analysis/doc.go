// Package analysis inspects finished trajectories and measures integrators.
//
//   - [PowerSpectrum] and [DominantPeriod]: spectral content of a sampled series
//   - [CrossingPeriod]: oscillation period from mean crossings
//   - [ConvergenceOrder]: empirical order of a stepper by step halving
//
// A variational integrator built from an n-node rule should show an order
// close to the rule's degree of precision; the period estimates expose the
// phase error that remains even when energy is bounded:
//
//	est, err := analysis.ConvergenceOrder(ctx, newStepper, init, span, 0.1, 3)
//	fmt.Printf("order %.2f\n", est.Order)
package analysis
