// Package replicate implements the Replicate combinator: batch
// instantiation of a parameterized node family over a set of index-tuple
// keys, wired into a hierarchical storage.NodeStorage, plus
// FromArgs for key-matched wiring across two such containers.
package replicate
