package core_test

import (
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/stretchr/testify/require"
)

func TestGraph_UpdateTypesRunsParentsFirst(t *testing.T) {
	var order []string
	g := core.NewGraph()

	parent := core.NewNode("parent", core.WithNodeGraph(g), core.WithNodeTypeFunc(func(n *core.Node) error {
		order = append(order, "parent")
		return nil
	}))
	parentOut := parent.AddOutput("out")

	child := core.NewNode("child", core.WithNodeGraph(g), core.WithNodeTypeFunc(func(n *core.Node) error {
		order = append(order, "child")
		return nil
	}))
	childIn := child.AddInput("in")
	require.NoError(t, parentOut.ConnectTo(childIn, false))

	require.NoError(t, g.UpdateTypes())
	require.Equal(t, []string{"parent", "child"}, order)
}

func TestGraph_CloseAllClosesEveryNode(t *testing.T) {
	g := core.NewGraph()
	a := core.NewNode("a", core.WithNodeGraph(g), core.WithNodeTypeFunc(func(n *core.Node) error {
		n.Outputs().At(0).SetDD(core.NewDataDescriptor(core.DtypeFloat64, 3))
		return nil
	}))
	a.AddOutput("out")

	require.NoError(t, g.CloseAll())
	require.True(t, a.Closed())

	require.NoError(t, g.OpenAll())
	require.False(t, a.Closed())
}
