package typefuncs

import "github.com/katalvlaran/dagflow/core"

// CopyOptions selects which aspects CopyFromInputsToOutputs propagates.
type CopyOptions struct {
	Dtype bool
	Shape bool
	Edges bool
	Meshes bool

	// PreferLargestInput, when more than one input is given, picks the
	// single largest input as the copy source instead of zipping inputs to
	// outputs 1:1.
	PreferLargestInput bool
}

// DefaultCopyOptions copies dtype, shape, edges and meshes.
func DefaultCopyOptions() CopyOptions {
	return CopyOptions{Dtype: true, Shape: true, Edges: true, Meshes: true}
}

// CopyFromInputsToOutputs propagates dtype/shape/edges/meshes from inputs to
// outputs as selected by opts. If len(inputs) == 1, that one input's
// descriptor is copied to every output; otherwise inputs and outputs are
// zipped pairwise and must have equal length.
func CopyFromInputsToOutputs(node *core.Node, inputs []*core.Input, outputs []*core.Output, opts CopyOptions) error {
	if !opts.Dtype && !opts.Shape && !opts.Edges && !opts.Meshes {
		return nil
	}
	if opts.PreferLargestInput && len(inputs) > 1 {
		largest := inputs[0]
		largestSize := largest.DD().Size()
		for _, in := range inputs[1:] {
			if size := in.DD().Size(); size > largestSize {
				largest, largestSize = in, size
			}
		}
		inputs = []*core.Input{largest}
	}

	var source func(i int) *core.Input
	switch {
	case len(inputs) == 1:
		source = func(int) *core.Input { return inputs[0] }
	case len(inputs) == len(outputs):
		source = func(i int) *core.Input { return inputs[i] }
	default:
		return typeErr(node, "inputs and outputs have mismatched lengths for copy")
	}

	for i, out := range outputs {
		in := source(i)
		dd := out.DD()
		if dd == nil {
			dd = core.NewDataDescriptor(in.DD().Dtype, in.DD().Shape...)
		}
		if opts.Dtype {
			dd.Dtype = in.DD().Dtype
		}
		if opts.Shape {
			shape := make([]int, len(in.DD().Shape))
			copy(shape, in.DD().Shape)
			dd.Shape = shape
		}
		if opts.Edges {
			dd.AxesEdges = in.DD().AxesEdges
		}
		if opts.Meshes {
			dd.AxesMeshes = in.DD().AxesMeshes
		}
		out.SetDD(dd)
	}
	return nil
}

// CopyDtypeFromInputsToOutputs is the single-concern shortcut for
// CopyFromInputsToOutputs with only Dtype set.
func CopyDtypeFromInputsToOutputs(node *core.Node, inputs []*core.Input, outputs []*core.Output) error {
	return CopyFromInputsToOutputs(node, inputs, outputs, CopyOptions{Dtype: true})
}

// CopyShapeFromInputsToOutputs is the single-concern shortcut for
// CopyFromInputsToOutputs with only Shape set.
func CopyShapeFromInputsToOutputs(node *core.Node, inputs []*core.Input, outputs []*core.Output) error {
	return CopyFromInputsToOutputs(node, inputs, outputs, CopyOptions{Shape: true})
}

// widestDtype picks the dtype that can represent every dtype in dtypes,
// under the ordering bool < int64 < float64 — the Go stand-in for numpy's
// result_type over this engine's three supported dtypes.
func widestDtype(dtypes []core.Dtype) core.Dtype {
	widest := core.DtypeBool
	rank := func(d core.Dtype) int {
		switch d {
		case core.DtypeFloat64:
			return 2
		case core.DtypeInt64:
			return 1
		default:
			return 0
		}
	}
	for _, d := range dtypes {
		if rank(d) > rank(widest) {
			widest = d
		}
	}
	return widest
}

// EvaluateDtypeOfOutputs sets every output's dtype to the widest dtype
// among inputs.
func EvaluateDtypeOfOutputs(node *core.Node, inputs []*core.Input, outputs []*core.Output) error {
	dtypes := make([]core.Dtype, len(inputs))
	for i, in := range inputs {
		dtypes[i] = in.DD().Dtype
	}
	dtype := widestDtype(dtypes)
	for _, out := range outputs {
		dd := out.DD()
		if dd == nil {
			dd = core.NewDataDescriptor(dtype)
		} else {
			dd.Dtype = dtype
		}
		out.SetDD(dd)
	}
	return nil
}
