package core_test

import (
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/stretchr/testify/require"
)

func TestFlags_NewIsTainted(t *testing.T) {
	f := core.NewFlags()
	require.True(t, f.Tainted())
	require.True(t, f.TypesTainted())
	require.False(t, f.Closed())
	require.False(t, f.Allocated())
}

func TestFlags_TouchClearsTaint(t *testing.T) {
	f := core.NewFlags()
	f.Touch()
	require.False(t, f.Tainted())
}

func TestFlags_TaintWhileFrozenLatches(t *testing.T) {
	f := core.NewFlags()
	f.Touch()
	f.Freeze()
	f.Taint()
	require.False(t, f.Tainted(), "taint must not apply directly while frozen")
	require.True(t, f.FrozenTainted())

	f.Unfreeze()
	require.True(t, f.Tainted(), "unfreeze must promote a latched frozen-taint")
	require.False(t, f.FrozenTainted())
}

func TestFlags_UnfreezeWithoutLatchLeavesUntainted(t *testing.T) {
	f := core.NewFlags()
	f.Touch()
	f.Freeze()
	f.Unfreeze()
	require.False(t, f.Tainted())
}

func TestFlags_CloseOpenRoundTrip(t *testing.T) {
	f := core.NewFlags()
	f.Touch()
	f.Close()
	f.MarkAllocated()
	require.True(t, f.Closed())
	require.True(t, f.Allocated())

	f.Open()
	require.False(t, f.Closed())
	require.False(t, f.Allocated())
	require.True(t, f.Tainted(), "open must retaint")
}
