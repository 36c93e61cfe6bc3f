package ops

import (
	"math"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/linalg"
	"github.com/katalvlaran/dagflow/typefuncs"
)

// NewCholesky builds a Node that factors a covariance-like "matrix" input
// into a lower-triangular Cholesky factor, or, if the input is given as a
// 1D diagonal, its elementwise square root. The active compute function is
// picked by the type function once the input's rank is known, the Go
// rendering of the reference implementation's square/diagonal dispatch.
// Grounded on original_source/src/dagflow/lib/linalg/cholesky.py
// (_fcn_square / _fcn_diagonal, chosen via check_inputs_are_matrices_or_diagonals)
// and linalg.Cholesky for the actual factorization.
func NewCholesky(name string, opts ...core.NodeOption) *core.Node {
	allOpts := append([]core.NodeOption{
		core.WithNodeTypeFunc(choleskyTypeFunc),
		core.WithNodeCompute("square", choleskySquareCompute),
		core.WithNodeCompute("diagonal", choleskyDiagonalCompute),
	}, opts...)
	n := core.NewNode(name, allOpts...)
	n.AddPair("matrix", nil, nil)
	return n
}

func choleskyTypeFunc(n *core.Node) error {
	inputs := n.Inputs().All()
	dim, err := typefuncs.CheckInputsAreMatricesOrDiagonals(n, inputs, true)
	if err != nil {
		return err
	}
	shape := inputs[0].DD().Shape
	out := n.Outputs().At(0)
	if dim == 2 {
		out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, shape[0], shape[0]))
		return n.SetFunction("square")
	}
	out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, shape[0]))
	return n.SetFunction("diagonal")
}

func choleskySquareCompute(n *core.Node) error {
	in := n.Inputs().At(0)
	size := in.DD().Shape[0]
	l, err := linalg.Cholesky(toMatrix(in.Data(), size))
	if err != nil {
		return core.NewError(core.KindCalculation, err.Error(), core.WithNode(n))
	}
	fromMatrix(n.Outputs().At(0).DataUnsafe(), l)
	return nil
}

func choleskyDiagonalCompute(n *core.Node) error {
	in := n.Inputs().At(0)
	out := n.Outputs().At(0).DataUnsafe()
	for i, v := range in.Data() {
		out[i] = math.Sqrt(v)
	}
	return nil
}
