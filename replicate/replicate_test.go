package replicate_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/replicate"
	"github.com/katalvlaran/dagflow/storage"
	"github.com/stretchr/testify/require"
)

func sourceCtor(g *core.Graph, key replicate.Key) (*replicate.Instance, error) {
	n := core.NewNode("source", core.WithNodeGraph(g))
	out := n.AddOutput("value")
	return &replicate.Instance{Node: n, Outputs: map[string]*core.Output{"value": out}}, nil
}

func sinkCtor(g *core.Graph, key replicate.Key) (*replicate.Instance, error) {
	n := core.NewNode("sink", core.WithNodeGraph(g))
	in := n.AddInput("value")
	return &replicate.Instance{Node: n, Inputs: map[string]*core.Input{"value": in}}, nil
}

func TestReplicate_BuildsOneInstancePerKey(t *testing.T) {
	g := core.NewGraph()
	keys := []replicate.Key{{"a"}, {"b"}}

	s, err := replicate.Replicate(g, "source", keys, sourceCtor)
	require.NoError(t, err)

	_, ok := s.Get("source.a.node")
	require.True(t, ok)
	_, ok = s.Get("source.b.node")
	require.True(t, ok)
}

func TestReplicate_KeyCollisionFails(t *testing.T) {
	g := core.NewGraph()
	keys := []replicate.Key{{"a"}, {"a"}}

	_, err := replicate.Replicate(g, "source", keys, sourceCtor)
	require.Error(t, err)
}

func TestFromArgs_WiresMatchedKeys(t *testing.T) {
	g := core.NewGraph()
	sources, err := replicate.Replicate(g, "source", []replicate.Key{{"a"}, {"b"}}, sourceCtor)
	require.NoError(t, err)
	sinks, err := replicate.Replicate(g, "sink", []replicate.Key{{"a"}, {"b"}}, sinkCtor)
	require.NoError(t, err)

	// Reparent sinks under the same paths as sources so FromArgs's
	// path-matching lines up (FromArgs matches dest/src leaves by identical
	// dotted path, and Replicate files inputs under "inputs" but outputs
	// under "outputs").
	flat := rekeyByTail(sinks, "sink", "source")

	require.NoError(t, replicate.FromArgs(flat, sources))

	in, _ := flat.Get("source.a.outputs.value")
	require.True(t, in.(*core.Input).Connected())
}

// rekeyByTail rebuilds a NodeStorage, replacing the given name prefix with
// newPrefix and the ".inputs." segment with ".outputs." on every path, used
// only to align this test's two independently replicated families onto
// matching paths.
func rekeyByTail(s *storage.NodeStorage, oldPrefix, newPrefix string) *storage.NodeStorage {
	out := storage.New()
	_ = s.Walk(func(path string, v any) error {
		np := newPrefix + strings.Replace(path[len(oldPrefix):], ".inputs.", ".outputs.", 1)
		return out.Set(np, v)
	})
	return out
}
