// Package linalg implements the small set of dense linear-algebra
// operations the engine's Gaussian constraint needs: Cholesky
// decomposition and the forward/backward triangular solves built on it. No
// example repo in the corpus imports a third-party linear-algebra library
// (no gonum, no BLAS/LAPACK binding), so this stays on the standard library
// by necessity rather than preference — see DESIGN.md.
package linalg
