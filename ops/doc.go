// Package ops is the operator authoring surface: a small library
// of concrete Node constructors — Array, Sum, Concatenation, Cache,
// Cholesky, CovarianceBuild, NormalizeCorrelatedVarsTwoWays — built on
// core and typefuncs. Each constructor follows the same shape: declare
// inputs/outputs (or an input strategy that will grow them), register a
// type function from typefuncs, register one or more compute functions,
// and optionally a post-allocate hook.
package ops
