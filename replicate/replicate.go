package replicate

import (
	"strings"

	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/storage"
)

// Key is an index tuple identifying one instance within a replicated node
// family, e.g. []string{"reactor1", "detector2"}.
type Key []string

func (k Key) dotted() string { return strings.Join(k, ".") }

// Instance is what a Constructor returns for one key: the node it built
// plus the outputs/inputs that should be addressable in the resulting
// storage under name.key.<field>.
type Instance struct {
	Node    *core.Node
	Outputs map[string]*core.Output
	Inputs  map[string]*core.Input
}

// Constructor builds one instance of a replicated node family for the given
// key. Grounded on the reference builder's Constructor func(g *core.Graph,
// cfg builderConfig) error signature, adapted to return the built Instance
// instead of mutating a shared graph in place.
type Constructor func(g *core.Graph, key Key) (*Instance, error)

type config struct {
	strict bool
}

// Option configures a Replicate call.
type Option func(*config)

// WithStrictMerge requires every instance's storage subtree to occupy keys
// disjoint from its siblings (the default). Passing false allows later
// instances to overwrite earlier ones, which is rarely what a caller wants
// but is occasionally useful when deliberately re-replicating over a
// shrinking key set.
func WithStrictMerge(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// Replicate instantiates ctor once per key in keys, passing g to ctor
// (which decides whether its node registers on g), and returns a
// NodeStorage with each instance's node,
// outputs, and inputs filed under "name.<key...>.<field>". Keys must
// address disjoint storage subtrees; by default a collision is an error
// (see WithStrictMerge).
func Replicate(g *core.Graph, name string, keys []Key, ctor Constructor, opts ...Option) (*storage.NodeStorage, error) {
	cfg := config{strict: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	result := storage.New()
	for _, key := range keys {
		inst, err := ctor(g, key)
		if err != nil {
			return nil, core.NewError(core.KindInitialization, "replicate: constructor failed for key "+key.dotted(), core.WithCause(err))
		}

		prefix := name
		if len(key) > 0 {
			prefix = name + "." + key.dotted()
		}

		set := result.Set
		if !cfg.strict {
			set = result.SetOverwrite
		}

		if err := set(prefix+".node", inst.Node); err != nil {
			return nil, core.NewError(core.KindInitialization, "replicate: key collision for "+prefix, core.WithCause(err))
		}
		for fname, out := range inst.Outputs {
			if err := set(prefix+".outputs."+fname, out); err != nil {
				return nil, err
			}
		}
		for fname, in := range inst.Inputs {
			if err := set(prefix+".inputs."+fname, in); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}
