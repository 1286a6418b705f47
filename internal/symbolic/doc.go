// Package symbolic provides the small computer-algebra kernel used to derive
// variational integrators.
//
// Expressions are kept in one canonical form: an expanded sum of terms, each a
// float64 coefficient times a monomial of atoms raised to integer powers.
// Atoms are:
//
//   - [Symbol]: an opaque name such as q[0], p[0] or h
//   - function applications built with [Apply] (sin, cos, exp or user [Func]s)
//   - reciprocals of sums, produced by [Div] when the divisor is not a monomial
//
// Because the form is canonical, simplification and expansion happen on
// construction and structural comparison is a key comparison.
//
// # Capabilities
//
//   - [Diff], [Subs], [Eval]: differentiation, simultaneous substitution, evaluation
//   - [Coefficient], [Degree], [TermsWith], [Truncate]: coefficient extraction
//   - [Interpolate], [Integrate]: Lagrange interpolation, polynomial integration
//   - [SolveLinear], [Isolate], [Newton], [Policy]: exact and numeric solving
//
// # Example
//
//	x := symbolic.Sym("x")
//	e := symbolic.Mul(x.Expr(), x.Expr())       // x^2
//	d := symbolic.Diff(e, x)                     // 2 x
//	v, _ := symbolic.Eval(d, symbolic.Env{x: 3}) // 6
package symbolic
