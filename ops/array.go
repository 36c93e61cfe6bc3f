package ops

import "github.com/katalvlaran/dagflow/core"

// NewArray builds a source Node carrying a single "array" output with a
// fixed-size float64 buffer. It is the graph's only operator with no
// inputs: its compute function is a no-op because the buffer is written
// directly, either once when the node is allocated (the constant case) or later by a
// parameters.Parameter wrapping the same output. Grounded on
// original_source/src/dagflow/lib/common/array.py's "store"/"store_weak"
// modes, collapsed to the one mode this engine's core actually needs —
// the core never interprets an Array's data, so store vs store_weak is a
// distinction without a difference here.
func NewArray(name string, data []float64, opts ...core.NodeOption) *core.Node {
	initial := append([]float64(nil), data...)
	allOpts := append([]core.NodeOption{
		core.WithNodeTypeFunc(func(n *core.Node) error {
			out := n.Outputs().At(0)
			if out.DD() == nil {
				out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, len(initial)))
			}
			return nil
		}),
		core.WithNodeCompute("store", func(n *core.Node) error { return nil }),
		core.WithNodePostAllocate(func(n *core.Node) error {
			copy(n.Outputs().At(0).DataUnsafe(), initial)
			return nil
		}),
	}, opts...)
	n := core.NewNode(name, allOpts...)
	n.AddOutput("array")
	return n
}

// SetArrayData overwrites the buffer behind an Array-shaped output (any
// output with no allocating parent of its own) and taints its owning node,
// used directly by callers that don't want the indirection of a
// parameters.Parameter for a one-off what-if write.
func SetArrayData(out *core.Output, data []float64) {
	copy(out.DataUnsafe(), data)
	out.Node().Taint()
}
