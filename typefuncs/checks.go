package typefuncs

import (
	"reflect"

	"github.com/katalvlaran/dagflow/core"
)

func typeErr(node *core.Node, msg string, opts ...core.ErrorOption) error {
	opts = append([]core.ErrorOption{core.WithNode(node)}, opts...)
	return core.NewError(core.KindTypeFunction, msg, opts...)
}

// CheckNodeHasInputs requires node to have at least one input.
func CheckNodeHasInputs(node *core.Node) error {
	if node.Inputs().Len() == 0 {
		return typeErr(node, "the node must have at least one input")
	}
	return nil
}

// CheckNumberOfInputs requires node to have exactly n inputs.
func CheckNumberOfInputs(node *core.Node, n int) error {
	if got := node.Inputs().Len(); got != n {
		return typeErr(node, "the node must have only a fixed number of inputs")
	}
	return nil
}

// CheckNumberOfOutputs requires node to have exactly n outputs.
func CheckNumberOfOutputs(node *core.Node, n int) error {
	if got := node.Outputs().Len(); got != n {
		return typeErr(node, "the node must have only a fixed number of outputs")
	}
	return nil
}

// CheckDimensionOfInputs requires every input in inputs to have rank ndim.
func CheckDimensionOfInputs(node *core.Node, inputs []*core.Input, ndim int) error {
	for _, in := range inputs {
		if dim := in.DD().Rank(); dim != ndim {
			return typeErr(node, "input has the wrong dimensionality", core.WithInput(in))
		}
	}
	return nil
}

// CheckShapeOfInputs requires every input in inputs to have one of shapes.
func CheckShapeOfInputs(node *core.Node, inputs []*core.Input, shapes ...[]int) error {
	for _, in := range inputs {
		cur := in.DD().Shape
		ok := false
		for _, shape := range shapes {
			if reflect.DeepEqual(cur, shape) {
				ok = true
				break
			}
		}
		if !ok {
			return typeErr(node, "input has an unsupported shape", core.WithInput(in))
		}
	}
	return nil
}

// SizeConstraint bounds an input's element count; zero value of each field
// means "unconstrained".
type SizeConstraint struct {
	Exact int
	Min   int
	Max   int
}

// CheckSizeOfInputs requires every input's element count to satisfy c.
func CheckSizeOfInputs(node *core.Node, inputs []*core.Input, c SizeConstraint) error {
	for _, in := range inputs {
		size := in.DD().Size()
		if c.Exact != 0 && size != c.Exact {
			return typeErr(node, "input size does not match the required exact size", core.WithInput(in))
		}
		if c.Min != 0 && size < c.Min {
			return typeErr(node, "input size is below the required minimum", core.WithInput(in))
		}
		if c.Max != 0 && size > c.Max {
			return typeErr(node, "input size is above the required maximum", core.WithInput(in))
		}
	}
	return nil
}

// CheckDtypeOfInputs requires every input in inputs to carry dtype.
func CheckDtypeOfInputs(node *core.Node, inputs []*core.Input, dtype core.Dtype) error {
	for _, in := range inputs {
		if in.DD().Dtype != dtype {
			return typeErr(node, "input has an unsupported dtype", core.WithInput(in))
		}
	}
	return nil
}

// CheckInputsAreSquareMatrices requires every input to be a 2D square
// matrix.
func CheckInputsAreSquareMatrices(node *core.Node, inputs []*core.Input) error {
	for _, in := range inputs {
		shape := in.DD().Shape
		if len(shape) != 2 || shape[0] != shape[1] {
			return typeErr(node, "input must be a square matrix", core.WithInput(in))
		}
	}
	return nil
}

func checkBlockOrDiag(node *core.Node, in *core.Input, checkSquare bool) (int, error) {
	shape := in.DD().Shape
	dim := len(shape)
	if dim > 2 {
		return 0, typeErr(node, "input must be 1d or 2d", core.WithInput(in))
	}
	if dim == 2 {
		if checkSquare && shape[0] != shape[1] {
			return 0, typeErr(node, "input must be square (or 1d as a diagonal)", core.WithInput(in))
		}
	} else if dim != 1 {
		return 0, typeErr(node, "input must be a matrix (or 1d as a diagonal)", core.WithInput(in))
	}
	return dim, nil
}

// CheckInputsAreMatricesOrDiagonals requires every input to be a 2D matrix
// (optionally square) or its 1D diagonal. It returns the maximal rank seen.
func CheckInputsAreMatricesOrDiagonals(node *core.Node, inputs []*core.Input, checkSquare bool) (int, error) {
	dimMax := 0
	for _, in := range inputs {
		dim, err := checkBlockOrDiag(node, in, checkSquare)
		if err != nil {
			return 0, err
		}
		if dim > dimMax {
			dimMax = dim
		}
	}
	return dimMax, nil
}

// CheckInputsConsistentSquareOrDiagonal requires every input to be a square
// matrix or its diagonal, all of the same size. It returns the maximal
// rank seen.
func CheckInputsConsistentSquareOrDiagonal(node *core.Node, inputs []*core.Input) (int, error) {
	if len(inputs) == 0 {
		return 0, typeErr(node, "no inputs to check")
	}
	dimMax := 0
	size0 := inputs[0].DD().Shape[0]
	for _, in := range inputs {
		dim, err := checkBlockOrDiag(node, in, true)
		if err != nil {
			return 0, err
		}
		if dim > dimMax {
			dimMax = dim
		}
		if size := in.DD().Shape[0]; size != size0 {
			return 0, typeErr(node, "inputs must all have the same size", core.WithInput(in))
		}
	}
	return dimMax, nil
}

// EquivalenceOptions controls which aspects of DataDescriptor
// CheckInputsEquivalence compares.
type EquivalenceOptions struct {
	CheckDtype bool
	CheckShape bool
	CheckEdges bool
}

// DefaultEquivalenceOptions compares dtype, shape and axis edges; the edges
// comparison only applies where both inputs carry edges, so it is harmless
// in the common case (most operators don't carry edges/meshes metadata).
func DefaultEquivalenceOptions() EquivalenceOptions {
	return EquivalenceOptions{CheckDtype: true, CheckShape: true, CheckEdges: true}
}

// CheckInputsEquivalence requires all of inputs to agree on the aspects
// selected by opts, relative to the first input.
func CheckInputsEquivalence(node *core.Node, inputs []*core.Input, opts EquivalenceOptions) error {
	if len(inputs) == 0 {
		return typeErr(node, "no inputs to check")
	}
	first := inputs[0].DD()
	for _, in := range inputs[1:] {
		dd := in.DD()
		if opts.CheckDtype && dd.Dtype != first.Dtype {
			return typeErr(node, "inputs have inconsistent dtypes", core.WithInput(in))
		}
		if opts.CheckShape && !reflect.DeepEqual(dd.Shape, first.Shape) {
			return typeErr(node, "inputs have inconsistent shapes", core.WithInput(in))
		}
		if opts.CheckEdges && len(dd.AxesEdges) > 0 && len(first.AxesEdges) > 0 &&
			!reflect.DeepEqual(dd.AxesEdges, first.AxesEdges) {
			return typeErr(node, "inputs have inconsistent axis edges", core.WithInput(in))
		}
	}
	return nil
}

// CheckInputsHaveSameDtype requires all of inputs to share one dtype and
// returns it.
func CheckInputsHaveSameDtype(node *core.Node, inputs []*core.Input) (core.Dtype, error) {
	if len(inputs) == 0 {
		return core.DtypeUnset, typeErr(node, "no inputs to check")
	}
	dtype := inputs[0].DD().Dtype
	for _, in := range inputs[1:] {
		if in.DD().Dtype != dtype {
			return core.DtypeUnset, typeErr(node, "inputs have inconsistent dtypes", core.WithInput(in))
		}
	}
	return dtype, nil
}

// CheckInputsHaveSameShape requires all of inputs to share one shape and
// returns it.
func CheckInputsHaveSameShape(node *core.Node, inputs []*core.Input) ([]int, error) {
	if len(inputs) == 0 {
		return nil, typeErr(node, "no inputs to check")
	}
	shape := inputs[0].DD().Shape
	for _, in := range inputs[1:] {
		if !reflect.DeepEqual(in.DD().Shape, shape) {
			return nil, typeErr(node, "inputs have inconsistent shapes", core.WithInput(in))
		}
	}
	return shape, nil
}

// CheckInputsAreMatrixMultipliable requires each pair (left[i], right[i])
// (broadcasting a length-1 side) to be matrix-multipliable, and returns the
// resulting shapes.
func CheckInputsAreMatrixMultipliable(node *core.Node, left, right []*core.Input) ([][2]int, error) {
	switch {
	case len(left) == len(right):
	case len(left) == 1:
		l := left[0]
		left = make([]*core.Input, len(right))
		for i := range left {
			left[i] = l
		}
	case len(right) == 1:
		r := right[0]
		right = make([]*core.Input, len(left))
		for i := range right {
			right[i] = r
		}
	default:
		return nil, typeErr(node, "mismatched number of inputs for matrix multiplication")
	}

	result := make([][2]int, 0, len(left))
	for i := range left {
		ls, rs := left[i].DD().Shape, right[i].DD().Shape
		if ls[len(ls)-1] != rs[0] {
			return nil, typeErr(node, "inputs are not matrix-multipliable", core.WithInput(left[i]))
		}
		result = append(result, [2]int{ls[0], rs[len(rs)-1]})
	}
	return result, nil
}

// FindMaxSizeOfInputs returns the largest element count among inputs.
func FindMaxSizeOfInputs(node *core.Node, inputs []*core.Input) (int, error) {
	if len(inputs) == 0 {
		return 0, typeErr(node, "no inputs to check")
	}
	max := inputs[0].DD().Size()
	for _, in := range inputs[1:] {
		if s := in.DD().Size(); s > max {
			max = s
		}
	}
	return max, nil
}

// CheckInputsNumberIsDivisibleByN requires the node's input count to be a
// multiple of n.
func CheckInputsNumberIsDivisibleByN(node *core.Node, n int) error {
	if n == 1 {
		return nil
	}
	if got := node.Inputs().Len(); got%n != 0 {
		return typeErr(node, "node requires a multiple of N inputs")
	}
	return nil
}
