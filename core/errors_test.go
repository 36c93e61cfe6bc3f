package core_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/stretchr/testify/require"
)

func TestError_IsKind(t *testing.T) {
	n := core.NewNode("n")
	err := core.NewError(core.KindAllocation, "boom", core.WithNode(n))
	require.True(t, core.IsKind(err, core.KindAllocation))
	require.False(t, core.IsKind(err, core.KindClosing))
	require.Contains(t, err.Error(), "node=n")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := core.NewError(core.KindCalculation, "failed", core.WithCause(cause))
	require.ErrorIs(t, err, err)
	require.Equal(t, cause, errors.Unwrap(err))
}

func TestKind_Critical(t *testing.T) {
	require.False(t, core.KindNoncritical.Critical())
	require.True(t, core.KindAllocation.Critical())
}
