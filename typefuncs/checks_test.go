package typefuncs_test

import (
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/typefuncs"
	"github.com/stretchr/testify/require"
)

func inputWithShape(node *core.Node, name string, dtype core.Dtype, shape ...int) *core.Input {
	in := node.AddInput(name, core.WithInputOwnsBuffer(true))
	dd := core.NewDataDescriptor(dtype, shape...)
	in.SetOwnData(dd, make([]float64, dd.Size()))
	return in
}

func TestCheckNumberOfInputs(t *testing.T) {
	n := core.NewNode("n")
	inputWithShape(n, "a", core.DtypeFloat64, 3)

	require.NoError(t, typefuncs.CheckNumberOfInputs(n, 1))
	require.Error(t, typefuncs.CheckNumberOfInputs(n, 2))
}

func TestCheckShapeOfInputs(t *testing.T) {
	n := core.NewNode("n")
	a := inputWithShape(n, "a", core.DtypeFloat64, 3)

	require.NoError(t, typefuncs.CheckShapeOfInputs(n, []*core.Input{a}, []int{3}))
	require.Error(t, typefuncs.CheckShapeOfInputs(n, []*core.Input{a}, []int{4}))
}

func TestCheckInputsEquivalence(t *testing.T) {
	n := core.NewNode("n")
	a := inputWithShape(n, "a", core.DtypeFloat64, 3)
	b := inputWithShape(n, "b", core.DtypeFloat64, 3)
	c := inputWithShape(n, "c", core.DtypeFloat64, 4)

	require.NoError(t, typefuncs.CheckInputsEquivalence(n, []*core.Input{a, b}, typefuncs.DefaultEquivalenceOptions()))
	require.Error(t, typefuncs.CheckInputsEquivalence(n, []*core.Input{a, c}, typefuncs.DefaultEquivalenceOptions()))
}

func TestCheckInputsAreSquareMatrices(t *testing.T) {
	n := core.NewNode("n")
	sq := inputWithShape(n, "sq", core.DtypeFloat64, 2, 2)
	rect := inputWithShape(n, "rect", core.DtypeFloat64, 2, 3)

	require.NoError(t, typefuncs.CheckInputsAreSquareMatrices(n, []*core.Input{sq}))
	require.Error(t, typefuncs.CheckInputsAreSquareMatrices(n, []*core.Input{rect}))
}

func TestCheckInputsAreMatrixMultipliable(t *testing.T) {
	n := core.NewNode("n")
	left := inputWithShape(n, "left", core.DtypeFloat64, 2, 3)
	right := inputWithShape(n, "right", core.DtypeFloat64, 3, 4)

	shapes, err := typefuncs.CheckInputsAreMatrixMultipliable(n, []*core.Input{left}, []*core.Input{right})
	require.NoError(t, err)
	require.Equal(t, [][2]int{{2, 4}}, shapes)
}

func TestCopyFromInputsToOutputs(t *testing.T) {
	n := core.NewNode("n")
	a := inputWithShape(n, "a", core.DtypeFloat64, 5)
	out := n.AddOutput("out")

	require.NoError(t, typefuncs.CopyFromInputsToOutputs(n, []*core.Input{a}, []*core.Output{out}, typefuncs.DefaultCopyOptions()))
	require.Equal(t, core.DtypeFloat64, out.DD().Dtype)
	require.Equal(t, []int{5}, out.DD().Shape)
}

func TestEvaluateDtypeOfOutputs(t *testing.T) {
	n := core.NewNode("n")
	a := inputWithShape(n, "a", core.DtypeInt64, 1)
	b := inputWithShape(n, "b", core.DtypeFloat64, 1)
	out := n.AddOutput("out")

	require.NoError(t, typefuncs.EvaluateDtypeOfOutputs(n, []*core.Input{a, b}, []*core.Output{out}))
	require.Equal(t, core.DtypeFloat64, out.DD().Dtype)
}
