package storage_test

import (
	"bytes"
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/storage"
	"github.com/stretchr/testify/require"
)

func TestNodeStorage_SetGet(t *testing.T) {
	s := storage.New()
	n := core.NewNode("n")
	require.NoError(t, s.Set("group.sub.node", n))

	v, ok := s.Get("group.sub.node")
	require.True(t, ok)
	require.Same(t, n, v)

	_, ok = s.Get("group.sub.missing")
	require.False(t, ok)
}

func TestNodeStorage_SetCollision(t *testing.T) {
	s := storage.New()
	require.NoError(t, s.Set("a.b", core.NewNode("n1")))
	require.Error(t, s.Set("a.b", core.NewNode("n2")))
}

func TestNodeStorage_MergeStrictRejectsCollision(t *testing.T) {
	a := storage.New()
	require.NoError(t, a.Set("x", core.NewNode("n1")))
	b := storage.New()
	require.NoError(t, b.Set("x", core.NewNode("n2")))

	require.Error(t, a.Merge(b, true))
}

func TestNodeStorage_MergeNonStrictOverwrites(t *testing.T) {
	a := storage.New()
	require.NoError(t, a.Set("x", core.NewNode("n1")))
	b := storage.New()
	n2 := core.NewNode("n2")
	require.NoError(t, b.Set("x", n2))

	require.NoError(t, a.Merge(b, false))
	v, _ := a.Get("x")
	require.Same(t, n2, v)
}

func TestConnectStrict(t *testing.T) {
	outputs := storage.New()
	inputs := storage.New()

	producer := core.NewNode("producer")
	out := producer.AddOutput("value")
	require.NoError(t, outputs.Set("value", out))

	consumer := core.NewNode("consumer")
	in := consumer.AddInput("value")
	require.NoError(t, inputs.Set("value", in))

	require.NoError(t, storage.ConnectStrict(outputs, inputs))
	require.True(t, in.Connected())
}

func TestConnectStrict_MissingOutputFails(t *testing.T) {
	outputs := storage.New()
	inputs := storage.New()

	consumer := core.NewNode("consumer")
	in := consumer.AddInput("value")
	require.NoError(t, inputs.Set("value", in))

	require.Error(t, storage.ConnectStrict(outputs, inputs))
}

func TestWriteDOT(t *testing.T) {
	s := storage.New()
	n := core.NewNode("n")
	require.NoError(t, s.Set("n", n))

	var buf bytes.Buffer
	require.NoError(t, storage.WriteDOT(&buf, s))
	require.Contains(t, buf.String(), "digraph dagflow")
	require.Contains(t, buf.String(), `"n"`)
}
