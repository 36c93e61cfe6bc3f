// Package core implements the computational graph engine: typed
// Input/Output endpoints, Node lifecycle (type-check, allocate, close/open),
// lazy taint-driven evaluation, and the Graph registry that owns them.
//
// The engine is strictly single-threaded and cooperative: a Graph and its
// Nodes carry no internal locks, and no method here starts a goroutine.
// Callers that need concurrent access must serialize it themselves.
package core
