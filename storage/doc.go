// Package storage implements NodeStorage, a hierarchical, dot-separated-key
// container of nodes, inputs, outputs, and parameters produced by the
// replicate package (and usable directly for hand-built graphs). It
// provides strict/fuzzy connect operators, label import, and a minimal
// tabular/DOT export surface.
package storage
