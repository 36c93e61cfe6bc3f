package ops

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/typefuncs"
)

// NewSum builds a many-to-one Node: every connected input must share one
// shape, and the single "result" output holds their elementwise sum.
// Uses AddNewInputAddAndKeepSingleOutput (see core/strategy.go), the
// growth strategy shared by the other reduction-style operators in this
// package. The sum here is elementwise across inputs of equal shape, not
// a per-array reduction to a scalar like
// original_source/src/dagflow/lib/summation/array_sum.py's ArraySum.
func NewSum(name string, opts ...core.NodeOption) *core.Node {
	allOpts := append([]core.NodeOption{
		core.WithNodeStrategy(core.NewAddNewInputAddAndKeepSingleOutput("result")),
		core.WithNodeTypeFunc(sumTypeFunc),
		core.WithNodeCompute("main", sumCompute),
	}, opts...)
	return core.NewNode(name, allOpts...)
}

func sumTypeFunc(n *core.Node) error {
	if err := typefuncs.CheckNodeHasInputs(n); err != nil {
		return err
	}
	inputs := n.Inputs().All()
	shape, err := typefuncs.CheckInputsHaveSameShape(n, inputs)
	if err != nil {
		return err
	}
	dtype, err := typefuncs.CheckInputsHaveSameDtype(n, inputs)
	if err != nil {
		return err
	}
	out, ok := n.Outputs().ByName("result")
	if !ok {
		return core.NewError(core.KindTypeFunction, "sum has inputs but no result output", core.WithNode(n))
	}
	out.SetDD(core.NewDataDescriptor(dtype, shape...))
	return nil
}

func sumCompute(n *core.Node) error {
	out, _ := n.Outputs().ByName("result")
	data := out.DataUnsafe()
	for i := range data {
		data[i] = 0
	}
	for _, in := range n.Inputs().All() {
		for i, v := range in.Data() {
			data[i] += v
		}
	}
	return nil
}
