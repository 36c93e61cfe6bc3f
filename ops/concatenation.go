package ops

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/typefuncs"
)

// NewConcatenation builds a many-to-one Node whose single "result" output
// is the literal concatenation of its inputs, in connection order. Uses
// AddNewInputAddAndKeepSingleOutput like Sum, but its post-allocate hook
// does something Sum's doesn't: once "result" has its own contiguous
// buffer, each producer's output buffer is replaced (core.Output.AdoptBuffer)
// with the matching slice of that buffer, so later writes to a producer
// land directly in the concatenated region and no per-touch copy is
// needed. Grounded on
// original_source/src/dagflow/lib/common/concatenation.py, whose
// _fcn copies per-input data into offset slices of one output buffer on
// every touch; this constructor does the equivalent copy once, at
// allocation time, then aliases the buffers so it never has to again.
func NewConcatenation(name string, opts ...core.NodeOption) *core.Node {
	allOpts := append([]core.NodeOption{
		core.WithNodeStrategy(core.NewAddNewInputAddAndKeepSingleOutput("result")),
		core.WithNodeTypeFunc(concatTypeFunc),
		core.WithNodeCompute("main", concatCompute),
		core.WithNodePostAllocate(concatPostAllocate),
	}, opts...)
	return core.NewNode(name, allOpts...)
}

func concatTypeFunc(n *core.Node) error {
	if err := typefuncs.CheckNodeHasInputs(n); err != nil {
		return err
	}
	inputs := n.Inputs().All()
	dtype, err := typefuncs.CheckInputsHaveSameDtype(n, inputs)
	if err != nil {
		return err
	}
	total := 0
	for _, in := range inputs {
		dd := in.DD()
		if dd == nil {
			return core.NewError(core.KindTypeFunction, "concatenation input has no data descriptor", core.WithInput(in))
		}
		total += dd.Size()
	}
	out, ok := n.Outputs().ByName("result")
	if !ok {
		return core.NewError(core.KindTypeFunction, "concatenation has inputs but no result output", core.WithNode(n))
	}
	out.SetDD(core.NewDataDescriptor(dtype, total))
	return nil
}

// concatCompute re-derives the result by copying each input into its
// offset slice. After the buffer-sharing post-allocate step this is
// usually redundant (the slices already alias), but it keeps the node
// correct for the edge case of an input whose producer output could not
// donate its buffer (e.g. it already feeds more than one consumer).
func concatCompute(n *core.Node) error {
	out, _ := n.Outputs().ByName("result")
	data := out.DataUnsafe()
	offset := 0
	for _, in := range n.Inputs().All() {
		indata := in.Data()
		copy(data[offset:offset+len(indata)], indata)
		offset += len(indata)
	}
	return nil
}

// concatPostAllocate reads each input's producer via DataUnsafe rather than
// Input.Data/Output.Data: it runs during Allocate, before Graph.CloseAll has
// necessarily marked every producer closed (CloseAll walks nodes in
// registration order, not topological order), so the touching accessor
// could panic on a parent that is fully allocated but not yet closed.
func concatPostAllocate(n *core.Node) error {
	out, _ := n.Outputs().ByName("result")
	data := out.DataUnsafe()
	offset := 0
	for _, in := range n.Inputs().All() {
		size := in.DD().Size()
		slice := data[offset : offset+size]
		if parent := in.ParentOutput(); parent != nil {
			copy(slice, parent.DataUnsafe())
			if len(parent.Consumers()) == 1 {
				parent.AdoptBuffer(slice)
			}
		} else {
			copy(slice, in.Data())
		}
		offset += size
	}
	return nil
}
