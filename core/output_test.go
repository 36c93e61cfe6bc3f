package core_test

import (
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/stretchr/testify/require"
)

func TestOutput_ForbidReallocationRefusesAllocatableInput(t *testing.T) {
	producer := core.NewNode("producer", core.WithNodeCompute("main", func(n *core.Node) error { return nil }))
	out := producer.AddOutput("out", core.WithOutputForbidReallocation(true))

	consumer := core.NewNode("consumer", core.WithNodeCompute("main", func(n *core.Node) error { return nil }))
	in := consumer.AddInput("in", core.WithInputAllocatable(true))

	err := out.ConnectTo(in, false)
	require.Error(t, err, "a forbid-reallocation output must refuse an allocatable input")
	require.True(t, core.IsKind(err, core.KindConnection))
	require.False(t, in.Connected(), "the refused connection must not have been wired")
}

func TestOutput_ForbidReallocationAllowsNonAllocatableInput(t *testing.T) {
	producer := core.NewNode("producer", core.WithNodeCompute("main", func(n *core.Node) error { return nil }))
	out := producer.AddOutput("out", core.WithOutputForbidReallocation(true))

	consumer := core.NewNode("consumer", core.WithNodeCompute("main", func(n *core.Node) error { return nil }))
	in := consumer.AddInput("in")

	require.NoError(t, out.ConnectTo(in, false))
	require.True(t, in.Connected())
}

func TestOutput_DataPanicsBeforeClose(t *testing.T) {
	n := core.NewNode("n", core.WithNodeCompute("main", func(n *core.Node) error { return nil }))
	out := n.AddOutput("out")
	out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, 1))

	require.Panics(t, func() { out.Data() }, "reading Data before the owning node is closed must panic")
}

func TestOutput_DataTouchesOnRead(t *testing.T) {
	calls := 0
	n := core.NewNode("n", core.WithNodeCompute("main", func(n *core.Node) error {
		calls++
		copy(n.Outputs().At(0).DataUnsafe(), []float64{42})
		return nil
	}))
	out := n.AddOutput("out")
	out.SetDD(core.NewDataDescriptor(core.DtypeFloat64, 1))
	require.NoError(t, n.Allocate())
	require.NoError(t, n.Close())

	require.Equal(t, 0, calls, "close must not itself trigger a compute")
	data := out.Data()
	require.Equal(t, 1, calls, "reading Data on a tainted, closed node must touch")
	require.Equal(t, []float64{42}, data)

	_ = out.Data()
	require.Equal(t, 1, calls, "a second read with no intervening taint must not recompute")
}
