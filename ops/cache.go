package ops

import "github.com/katalvlaran/dagflow/core"

// NewCache builds a one-input, one-output passthrough Node that computes
// once and then freezes itself, so later taints arriving from its parent
// latch (core/cascade.go) instead of triggering a recompute, until Recache
// is called explicitly. Grounded on
// original_source/src/dagflow/lib/common/cache.py, whose _function copies
// input to output and then sets self.fd.frozen = True by hand.
func NewCache(name string, opts ...core.NodeOption) *core.Node {
	allOpts := append([]core.NodeOption{
		core.WithNodeTypeFunc(cacheTypeFunc),
		core.WithNodeCompute("main", cacheCompute),
	}, opts...)
	n := core.NewNode(name, allOpts...)
	n.AddPair("value", []core.InputOption{core.WithInputAllocatable(true)}, nil)
	return n
}

func cacheTypeFunc(n *core.Node) error {
	in := n.Inputs().At(0)
	dd := in.DD()
	if dd == nil {
		return core.NewError(core.KindTypeFunction, "cache input has no data descriptor", core.WithInput(in))
	}
	n.Outputs().At(0).SetDD(dd.Clone())
	return nil
}

func cacheCompute(n *core.Node) error {
	out := n.Outputs().At(0)
	copy(out.DataUnsafe(), n.Inputs().At(0).Data())
	n.Freeze()
	return nil
}

// Recache forces a cached node to recompute immediately: it lifts the
// freeze, then touches with forceComputation so the recompute runs
// regardless of the node's current taint state. cacheCompute's trailing
// Freeze re-latches it for the next round, the Go rendering of cache.py's
// recache(): unfreeze() followed by touch(force_computation=True).
func Recache(n *core.Node) error {
	n.Unfreeze()
	return n.Touch(true)
}
