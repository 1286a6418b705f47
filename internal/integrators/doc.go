// Package integrators derives variational integrators. A quadrature rule and
// a Lagrangian give a discrete action over one step; its derivatives are the
// discrete Euler-Lagrange (DEL) equations, and for separable Lagrangians
// [ExtractExplicit] turns them into an explicit one-step map.
//
// The package also carries two classical integrators, [RK4] and [Verlet],
// used as references when comparing trajectories.
package integrators
