// Package physics provides one degree of freedom mechanical models.
//
// Every model implements [dynamo.Model]: a symbolic Lagrangian and optional
// forcing for deriving variational integrators, plus an energy and a
// first-order vector field for reference integration and drift checks.
//
//   - [FreeParticle]
//   - [Oscillator]: harmonic, optionally damped
//   - [Pendulum]
//   - [Duffing]
//   - [DoubleWell]
//
// All models implement [dynamo.Configurable].
package physics
