package ops_test

import (
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/ops"
	"github.com/stretchr/testify/require"
)

func closeAndTouch(t *testing.T, g *core.Graph, n *core.Node) {
	t.Helper()
	require.NoError(t, g.CloseAll())
	require.NoError(t, n.Touch())
}

func TestSum_ElementwiseAcrossInputs(t *testing.T) {
	g := core.NewGraph()
	a := ops.NewArray("a", []float64{1, 2, 3}, core.WithNodeGraph(g))
	b := ops.NewArray("b", []float64{10, 20, 30}, core.WithNodeGraph(g))
	sum := ops.NewSum("sum", core.WithNodeGraph(g))
	_, err := a.Outputs().At(0).ConnectToNode(sum)
	require.NoError(t, err)
	_, err = b.Outputs().At(0).ConnectToNode(sum)
	require.NoError(t, err)

	closeAndTouch(t, g, sum)
	require.Equal(t, []float64{11, 22, 33}, sum.Outputs().At(0).Data())
}

func TestSum_RejectsMismatchedShapes(t *testing.T) {
	g := core.NewGraph()
	a := ops.NewArray("a", []float64{1, 2}, core.WithNodeGraph(g))
	b := ops.NewArray("b", []float64{1, 2, 3}, core.WithNodeGraph(g))
	sum := ops.NewSum("sum", core.WithNodeGraph(g))
	_, err := a.Outputs().At(0).ConnectToNode(sum)
	require.NoError(t, err)
	_, err = b.Outputs().At(0).ConnectToNode(sum)
	require.NoError(t, err)

	require.Error(t, g.CloseAll())
}

func TestCache_FreezesAfterFirstComputeAndRecaches(t *testing.T) {
	g := core.NewGraph()
	a := ops.NewArray("a", []float64{1.0}, core.WithNodeGraph(g))
	c := ops.NewCache("c", core.WithNodeGraph(g))
	valueIn, ok := c.Inputs().ByName("value")
	require.True(t, ok)
	require.NoError(t, a.Outputs().At(0).ConnectTo(valueIn, false))

	closeAndTouch(t, g, c)
	require.Equal(t, []float64{1.0}, c.Outputs().At(0).Data())

	ops.SetArrayData(a.Outputs().At(0), []float64{5.0})
	require.NoError(t, c.Touch())
	require.Equal(t, []float64{1.0}, c.Outputs().At(0).Data(), "frozen cache must not pick up the new value")

	require.NoError(t, ops.Recache(c))
	require.Equal(t, []float64{5.0}, c.Outputs().At(0).Data())
}

func TestConcatenation_SharesBufferWithSources(t *testing.T) {
	g := core.NewGraph()
	a := ops.NewArray("a", []float64{1, 2, 3}, core.WithNodeGraph(g))
	b := ops.NewArray("b", []float64{10, 20}, core.WithNodeGraph(g))
	cat := ops.NewConcatenation("cat", core.WithNodeGraph(g))
	_, err := a.Outputs().At(0).ConnectToNode(cat)
	require.NoError(t, err)
	_, err = b.Outputs().At(0).ConnectToNode(cat)
	require.NoError(t, err)

	closeAndTouch(t, g, cat)
	require.Equal(t, []float64{1, 2, 3, 10, 20}, cat.Outputs().At(0).Data())

	ops.SetArrayData(a.Outputs().At(0), []float64{100, 200, 300})
	require.NoError(t, cat.Touch())
	require.Equal(t, []float64{100, 200, 300, 10, 20}, cat.Outputs().At(0).Data())
}

func TestCholesky_SquareMatrixFactorization(t *testing.T) {
	g := core.NewGraph()
	// [[4, 2], [2, 2]] = L Lt with L = [[2, 0], [1, 1]]
	cov := ops.NewArray("cov", []float64{4, 2, 2, 2}, core.WithNodeGraph(g))
	l := ops.NewCholesky("l", core.WithNodeGraph(g))
	matrixIn, ok := l.Inputs().ByName("matrix")
	require.True(t, ok)
	covOut := cov.Outputs().At(0)
	covOut.SetDD(core.NewDataDescriptor(core.DtypeFloat64, 2, 2))
	require.NoError(t, covOut.ConnectTo(matrixIn, false))

	closeAndTouch(t, g, l)
	require.Equal(t, []float64{2, 0, 1, 1}, l.Outputs().At(0).Data())
}

func TestCholesky_DiagonalDispatch(t *testing.T) {
	g := core.NewGraph()
	diag := ops.NewArray("diag", []float64{4, 9}, core.WithNodeGraph(g))
	l := ops.NewCholesky("l", core.WithNodeGraph(g))
	matrixIn, ok := l.Inputs().ByName("matrix")
	require.True(t, ok)
	require.NoError(t, diag.Outputs().At(0).ConnectTo(matrixIn, false))

	closeAndTouch(t, g, l)
	require.Equal(t, []float64{2, 3}, l.Outputs().At(0).Data())
}

func TestCovarianceBuild_DiagonalWithoutCorrelation(t *testing.T) {
	g := core.NewGraph()
	sigma := ops.NewArray("sigma", []float64{2, 3}, core.WithNodeGraph(g))
	cb := ops.NewCovarianceBuild("cov", core.WithNodeGraph(g))
	sigmaIn, ok := cb.Inputs().ByName("sigma")
	require.True(t, ok)
	require.NoError(t, sigma.Outputs().At(0).ConnectTo(sigmaIn, false))

	closeAndTouch(t, g, cb)
	require.Equal(t, []float64{4, 0, 0, 9}, cb.Outputs().At(0).Data())
}

func TestNormalizeCorrelatedVarsTwoWays_ForwardBackwardRoundTrip(t *testing.T) {
	g := core.NewGraph()
	central := ops.NewArray("central", []float64{5}, core.WithNodeGraph(g))
	sigma := ops.NewArray("sigma", []float64{2}, core.WithNodeGraph(g))
	matrix := ops.NewCholesky("l", core.WithNodeGraph(g))
	cov := ops.NewCovarianceBuild("cov", core.WithNodeGraph(g))
	sigmaIn, _ := cov.Inputs().ByName("sigma")
	require.NoError(t, sigma.Outputs().At(0).ConnectTo(sigmaIn, false))
	matrixIn, _ := matrix.Inputs().ByName("matrix")
	require.NoError(t, cov.Outputs().At(0).ConnectTo(matrixIn, false))

	value := ops.NewArray("value", []float64{7}, core.WithNodeGraph(g))
	forward := ops.NewNormalizeCorrelatedVarsTwoWays("forward", ops.NormalizeForward, core.WithNodeGraph(g))
	fCentral, _ := forward.Inputs().ByName("central")
	fMatrix, _ := forward.Inputs().ByName("matrix")
	fValue, _ := forward.Inputs().ByName("value")
	require.NoError(t, central.Outputs().At(0).ConnectTo(fCentral, false))
	require.NoError(t, matrix.Outputs().At(0).ConnectTo(fMatrix, false))
	require.NoError(t, value.Outputs().At(0).ConnectTo(fValue, false))

	z := ops.NewArray("z", []float64{0}, core.WithNodeGraph(g))
	backward := ops.NewNormalizeCorrelatedVarsTwoWays("backward", ops.NormalizeBackward, core.WithNodeGraph(g))
	bCentral, _ := backward.Inputs().ByName("central")
	bMatrix, _ := backward.Inputs().ByName("matrix")
	bNorm, _ := backward.Inputs().ByName("normvalue")
	require.NoError(t, central.Outputs().At(0).ConnectTo(bCentral, false))
	require.NoError(t, matrix.Outputs().At(0).ConnectTo(bMatrix, false))
	require.NoError(t, z.Outputs().At(0).ConnectTo(bNorm, false))

	require.NoError(t, g.CloseAll())
	require.NoError(t, forward.Touch())
	require.InDeltaSlice(t, []float64{1}, forward.Outputs().At(0).Data(), 1e-9)

	ops.SetArrayData(z.Outputs().At(0), []float64{1})
	require.NoError(t, backward.Touch())
	require.InDeltaSlice(t, []float64{7}, backward.Outputs().At(0).Data(), 1e-9)
}

func TestArray_SetArrayDataTaintsOwningNode(t *testing.T) {
	g := core.NewGraph()
	a := ops.NewArray("a", []float64{1, 2}, core.WithNodeGraph(g))
	require.NoError(t, g.CloseAll())
	require.NoError(t, a.Touch())
	require.Equal(t, []float64{1, 2}, a.Outputs().At(0).Data())

	ops.SetArrayData(a.Outputs().At(0), []float64{9, 9})
	require.True(t, a.Tainted())
	require.NoError(t, a.Touch())
	require.Equal(t, []float64{9, 9}, a.Outputs().At(0).Data())
}
