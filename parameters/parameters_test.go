package parameters_test

import (
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/ops"
	"github.com/katalvlaran/dagflow/parameters"
	"github.com/katalvlaran/dagflow/storage"
	"github.com/stretchr/testify/require"
)

func TestParameter_PushPopRestoresOriginalValue(t *testing.T) {
	g := core.NewGraph()
	p := parameters.FromNumbers("p", []float64{1.0, 2.0}, []string{"a", "b"}, true, core.WithNodeGraph(g))
	require.NoError(t, g.CloseAll())

	a, ok := p.ByName("a")
	require.True(t, ok)
	require.Equal(t, 1.0, a.Value())

	a.Push(10.0)
	require.Equal(t, 10.0, a.Value())

	a.Pop()
	require.Equal(t, 1.0, a.Value())
}

func TestParameter_PopWithoutPushIsNoOp(t *testing.T) {
	g := core.NewGraph()
	p := parameters.FromNumbers("p", []float64{3.0}, nil, true, core.WithNodeGraph(g))
	require.NoError(t, g.CloseAll())

	par := p.At(0)
	par.Pop()
	require.Equal(t, 3.0, par.Value())
}

func TestParameters_ValuesAndToDict(t *testing.T) {
	g := core.NewGraph()
	p := parameters.FromNumbers("p", []float64{1.0, 2.0, 3.0}, []string{"x", "y", "z"}, true, core.WithNodeGraph(g))
	require.NoError(t, g.CloseAll())

	require.Equal(t, []float64{1.0, 2.0, 3.0}, p.Values())
	require.Equal(t, map[string]float64{"x": 1.0, "y": 2.0, "z": 3.0}, p.ToDict())
}

func TestMakeFcn_SafeEvaluationDoesNotLeakWhatIfValues(t *testing.T) {
	g := core.NewGraph()
	a := parameters.FromNumbers("a", []float64{1.0}, []string{"a"}, true, core.WithNodeGraph(g))
	b := parameters.FromNumbers("b", []float64{2.0}, []string{"b"}, true, core.WithNodeGraph(g))
	sum := ops.NewSum("sum", core.WithNodeGraph(g))
	_, err := a.Output().ConnectToNode(sum)
	require.NoError(t, err)
	_, err = b.Output().ConnectToNode(sum)
	require.NoError(t, err)
	require.NoError(t, g.CloseAll())

	store := storage.New()
	require.NoError(t, store.Set("p.a", a.At(0)))
	require.NoError(t, store.Set("p.b", b.At(0)))

	f, err := parameters.MakeFcn(sum, store, []string{"a", "b"})
	require.NoError(t, err)

	result, err := f(map[string]float64{"a": 10.0, "b": 20.0})
	require.NoError(t, err)
	require.Equal(t, []float64{30.0}, result)

	require.Equal(t, 1.0, a.At(0).Value())
	require.Equal(t, 2.0, b.At(0).Value())
}

func TestMakeFcn_UnknownParameterNameFails(t *testing.T) {
	g := core.NewGraph()
	a := parameters.FromNumbers("a", []float64{1.0}, []string{"a"}, true, core.WithNodeGraph(g))
	require.NoError(t, g.CloseAll())

	store := storage.New()
	require.NoError(t, store.Set("p.a", a.At(0)))

	_, err := parameters.MakeFcn(a.Node(), store, []string{"missing"})
	require.Error(t, err)
}

func TestGaussianConstraint_NormalizeRoundTrip(t *testing.T) {
	g := core.NewGraph()
	x := parameters.FromNumbers("x", []float64{7.0}, []string{"x"}, true, core.WithNodeGraph(g))
	gc := parameters.NewGaussianConstraint(x, []float64{5.0}, parameters.WithSigma([]float64{2.0}))
	x.SetConstraint(gc)
	require.NoError(t, g.CloseAll())

	require.InDeltaSlice(t, []float64{1.0}, gc.Normalized(), 1e-9)

	gc.SetNormalized([]float64{-2.0})
	require.NoError(t, gc.ApplyNormalized())
	require.InDeltaSlice(t, []float64{1.0}, x.Values(), 1e-9)

	x.At(0).Pop()
	require.InDeltaSlice(t, []float64{7.0}, x.Values(), 1e-9)
}

func TestGaussianConstraint_RegistersNodesOnCallerGraph(t *testing.T) {
	g := core.NewGraph()
	before := len(g.Nodes())
	x := parameters.FromNumbers("x", []float64{1.0}, []string{"x"}, true, core.WithNodeGraph(g))
	_ = parameters.NewGaussianConstraint(x, []float64{0.0}, parameters.WithSigma([]float64{1.0}))

	require.Greater(t, len(g.Nodes()), before+1, "GaussianConstraint must register its internal nodes on the group's graph")
}
