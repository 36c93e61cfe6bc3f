// Package typefuncs is the reusable library of type-function building
// blocks: checks that validate a Node's Inputs/Outputs during the
// UpdateTypes pass, and propagation helpers that copy dtype/shape/edges/
// meshes from inputs to outputs. Operators compose these into their own
// core.TypeFunc instead of hand-rolling validation.
package typefuncs
