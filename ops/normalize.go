package ops

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/linalg"
	"github.com/katalvlaran/dagflow/typefuncs"
)

// NormalizeMode selects which direction of the raw/normalized transform a
// NewNormalizeCorrelatedVarsTwoWays node exposes.
type NormalizeMode int

const (
	// NormalizeForward computes normvalue = Lm1 * (value - central).
	NormalizeForward NormalizeMode = iota
	// NormalizeBackward computes value = central + L * normvalue.
	NormalizeBackward
)

// NewNormalizeCorrelatedVarsTwoWays builds one direction of the raw/normalized
// parameter transform central to a Gaussian-constrained parameter group:
// given a central value and a Cholesky factor (or, for independent
// parameters, its diagonal square root of variance), it converts between a
// group's raw values and its normalized (uncorrelated, zero-mean,
// unit-sigma) coordinates. A full round trip needs one node of each mode,
// since a core.Node exposes one fixed output shape per close, not a value
// that recomputes differently depending on who reads it. Grounded on
// original_source/src/dagflow/lib/parameters/normalize.py's
// NormalizeCorrelatedVars2, fused here into two single-direction nodes
// sharing their compute dispatch, and on linalg.ForwardSubstitution/MatVec
// for the actual triangular solve.
func NewNormalizeCorrelatedVarsTwoWays(name string, mode NormalizeMode, opts ...core.NodeOption) *core.Node {
	allOpts := append([]core.NodeOption{
		core.WithNodeTypeFunc(func(n *core.Node) error { return normalizeTypeFunc(n, mode) }),
		core.WithNodeCompute("forward1d", normalizeForward1D),
		core.WithNodeCompute("forward2d", normalizeForward2D),
		core.WithNodeCompute("backward1d", normalizeBackward1D),
		core.WithNodeCompute("backward2d", normalizeBackward2D),
	}, opts...)
	n := core.NewNode(name, allOpts...)
	n.AddInput("central")
	n.AddInput("matrix")
	if mode == NormalizeForward {
		n.AddInput("value")
		n.AddOutput("normvalue")
	} else {
		n.AddInput("normvalue")
		n.AddOutput("value")
	}
	return n
}

func normalizeTypeFunc(n *core.Node, mode NormalizeMode) error {
	central, _ := n.Inputs().ByName("central")
	matrix, _ := n.Inputs().ByName("matrix")
	if err := typefuncs.CheckDimensionOfInputs(n, []*core.Input{central}, 1); err != nil {
		return err
	}
	dim, err := typefuncs.CheckInputsAreMatricesOrDiagonals(n, []*core.Input{matrix}, true)
	if err != nil {
		return err
	}
	size := central.DD().Shape[0]
	if matrix.DD().Shape[0] != size {
		return core.NewError(core.KindTypeFunction, "matrix size does not match central", core.WithInput(matrix))
	}

	var srcName, dstName string
	if mode == NormalizeForward {
		srcName, dstName = "value", "normvalue"
	} else {
		srcName, dstName = "normvalue", "value"
	}
	src, _ := n.Inputs().ByName(srcName)
	if err := typefuncs.CheckSizeOfInputs(n, []*core.Input{src}, typefuncs.SizeConstraint{Exact: size}); err != nil {
		return err
	}
	out, _ := n.Outputs().ByName(dstName)
	out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, size))

	fname := "backward"
	if mode == NormalizeForward {
		fname = "forward"
	}
	if dim == 2 {
		return n.SetFunction(fname + "2d")
	}
	return n.SetFunction(fname + "1d")
}

func normalizeForward1D(n *core.Node) error {
	central, _ := n.Inputs().ByName("central")
	matrix, _ := n.Inputs().ByName("matrix")
	value, _ := n.Inputs().ByName("value")
	out, _ := n.Outputs().ByName("normvalue")

	cd, md, vd, od := central.Data(), matrix.Data(), value.Data(), out.DataUnsafe()
	for i := range od {
		od[i] = (vd[i] - cd[i]) / md[i]
	}
	return nil
}

func normalizeForward2D(n *core.Node) error {
	central, _ := n.Inputs().ByName("central")
	matrix, _ := n.Inputs().ByName("matrix")
	value, _ := n.Inputs().ByName("value")
	out, _ := n.Outputs().ByName("normvalue")

	size := central.DD().Shape[0]
	l := toMatrix(matrix.Data(), size)
	diff := make([]float64, size)
	cd, vd := central.Data(), value.Data()
	for i := range diff {
		diff[i] = vd[i] - cd[i]
	}
	z, err := linalg.ForwardSubstitution(l, diff)
	if err != nil {
		return core.NewError(core.KindCalculation, err.Error(), core.WithNode(n))
	}
	copy(out.DataUnsafe(), z)
	return nil
}

func normalizeBackward1D(n *core.Node) error {
	central, _ := n.Inputs().ByName("central")
	matrix, _ := n.Inputs().ByName("matrix")
	normvalue, _ := n.Inputs().ByName("normvalue")
	out, _ := n.Outputs().ByName("value")

	cd, md, zd, od := central.Data(), matrix.Data(), normvalue.Data(), out.DataUnsafe()
	for i := range od {
		od[i] = cd[i] + md[i]*zd[i]
	}
	return nil
}

func normalizeBackward2D(n *core.Node) error {
	central, _ := n.Inputs().ByName("central")
	matrix, _ := n.Inputs().ByName("matrix")
	normvalue, _ := n.Inputs().ByName("normvalue")
	out, _ := n.Outputs().ByName("value")

	size := central.DD().Shape[0]
	l := toMatrix(matrix.Data(), size)
	raw := linalg.MatVec(l, normvalue.Data())
	cd, od := central.Data(), out.DataUnsafe()
	for i := range od {
		od[i] = cd[i] + raw[i]
	}
	return nil
}
