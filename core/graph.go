package core

import "github.com/google/uuid"

// Graph is the registry of Nodes created within its scope, plus the shared
// Logger and debug flag they inherit by default. It carries no locks: the
// engine requires exclusive single-threaded access to a Graph, never
// concurrent mutation from multiple goroutines.
type Graph struct {
	id    uuid.UUID
	name  string
	log   Logger
	debug bool

	nodes []*Node
}

// GraphOption configures a Graph before use.
type GraphOption func(*Graph)

func WithGraphLogger(l Logger) GraphOption { return func(g *Graph) { g.log = l } }
func WithGraphDebug(v bool) GraphOption    { return func(g *Graph) { g.debug = v } }
func WithGraphName(name string) GraphOption { return func(g *Graph) { g.name = name } }

// NewGraph creates an empty Graph.
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{id: uuid.New()}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = GetDefaultLogger()
	}
	return g
}

func (g *Graph) ID() uuid.UUID  { return g.id }
func (g *Graph) Name() string   { return g.name }
func (g *Graph) Logger() Logger { return g.log }
func (g *Graph) Debug() bool    { return g.debug }
func (g *Graph) Nodes() []*Node { return g.nodes }

func (g *Graph) register(n *Node) {
	g.nodes = append(g.nodes, n)
}

// UpdateTypes runs UpdateTypes on every registered node in an order where
// every node's parents run first, by repeatedly draining nodes whose
// parents are already up to date. This is the worklist analogue of a
// topological-sort visit, avoiding recursion over arbitrarily deep chains.
func (g *Graph) UpdateTypes() error {
	done := make(map[*Node]bool, len(g.nodes))
	pending := append([]*Node(nil), g.nodes...)

	for len(pending) > 0 {
		progressed := false
		next := pending[:0:0]
		for _, n := range pending {
			ready := true
			for p := range n.parents {
				if !done[p] {
					ready = false
					break
				}
			}
			if !ready {
				next = append(next, n)
				continue
			}
			if err := n.UpdateTypes(); err != nil {
				return err
			}
			done[n] = true
			progressed = true
		}
		pending = next
		if !progressed && len(pending) > 0 {
			return NewError(KindTypeFunction, "cycle detected while updating types")
		}
	}
	return nil
}

// CloseAll closes every registered node. It first runs a debug-only cycle
// check per node (logged as a warning, never fatal) and then a single
// UpdateTypes pass before allocating, matching the two-phase lifecycle.
func (g *Graph) CloseAll() error {
	if g.debug {
		for _, n := range g.nodes {
			if cyc := DetectCycle(n); cyc != nil {
				g.log.Warn("cycle detected reachable from node %q", n.Name())
			}
		}
	}
	if err := g.UpdateTypes(); err != nil {
		return err
	}
	for _, n := range g.nodes {
		if err := n.Close(); err != nil {
			return err
		}
	}
	return nil
}

// OpenAll reopens every registered node.
func (g *Graph) OpenAll() error {
	for _, n := range g.nodes {
		if err := n.Open(); err != nil {
			return err
		}
	}
	return nil
}
