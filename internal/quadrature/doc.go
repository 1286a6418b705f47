// Package quadrature is the catalog of quadrature rules used to discretize
// the action over one step. Every built-in rule lives on [-1, 1]; user rules
// carry their own bounds.
package quadrature
