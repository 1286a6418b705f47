// Package dynamo holds the domain types shared by the derivation and
// stepping packages:
//
//   - [Symbols]: the names used for momentum, position, step size and time
//   - [Lagrangian], [Forcing]: model callbacks over symbolic expressions
//   - [Pair], [Span]: the numeric state of one step boundary and a time range
//   - [Field]: first-order form of a model for reference integrators
//
// It also defines the error taxonomy. Every error returned by the derivation
// and stepping packages matches one of the sentinels below with [errors.Is].
//
// # Example
//
//	sys, _ := integrators.FromFamily(3, osc.Lagrangian, nil, quadrature.GaussLobatto, dynamo.DefaultSymbols())
//	traj, _ := sim.Integrate(ctx, sim.NewImplicit(sys, symbolic.DefaultPolicy()), dynamo.Pair{P: 0, Q: 1}, dynamo.Span{End: 10}, 0.1, osc.Energy)
package dynamo
