package core

import "github.com/google/uuid"

// TypeFunc validates and propagates data descriptors from a Node's inputs
// to its outputs. It runs once per UpdateTypes pass, strictly after all
// parent nodes have already run theirs.
type TypeFunc func(n *Node) error

// ComputeFunc performs the node's actual numeric work, reading Input.Data()
// and writing into Output.DataUnsafe(). It is the payload of touch().
type ComputeFunc func(n *Node) error

// PostAllocateFunc runs once, immediately after Allocate, for nodes that
// need to do setup that depends on concrete buffers being in place (e.g.
// precomputing a Cholesky factor once shapes are known).
type PostAllocateFunc func(n *Node) error

// Node is one vertex of the computational graph: a named bundle of
// Inputs/Outputs plus a type function and one or more compute functions,
// carrying its own lifecycle flags.
type Node struct {
	id   uuid.UUID
	name string

	graph *Graph
	log   Logger

	inputs  *Inputs
	outputs *Outputs

	strategy InputStrategy

	flags *Flags

	typeFunc     TypeFunc
	functions    map[string]ComputeFunc
	function     ComputeFunc
	postAllocate PostAllocateFunc

	immediate bool

	children map[*Node]struct{}
	parents  map[*Node]struct{}

	closed bool // mirrors flags.closed; kept for quick access from Output.ConnectTo

	lastError *Error
}

// NodeOption configures a Node at construction time.
type NodeOption func(*Node)

func WithNodeGraph(g *Graph) NodeOption { return func(n *Node) { n.graph = g } }
func WithNodeLogger(l Logger) NodeOption { return func(n *Node) { n.log = l } }
func WithNodeImmediate(v bool) NodeOption { return func(n *Node) { n.immediate = v } }
func WithNodeStrategy(s InputStrategy) NodeOption { return func(n *Node) { n.strategy = s } }
func WithNodeTypeFunc(f TypeFunc) NodeOption { return func(n *Node) { n.typeFunc = f } }
func WithNodeCompute(name string, f ComputeFunc) NodeOption {
	return func(n *Node) {
		if n.functions == nil {
			n.functions = make(map[string]ComputeFunc)
		}
		n.functions[name] = f
		if n.function == nil {
			n.function = f
		}
	}
}
func WithNodePostAllocate(f PostAllocateFunc) NodeOption {
	return func(n *Node) { n.postAllocate = f }
}

// NewNode constructs a Node. If no strategy is given, AddNewInputAddNewOutput
// is used, matching the reference implementation's InputStrategyBase
// default.
func NewNode(name string, opts ...NodeOption) *Node {
	n := &Node{
		id:       uuid.New(),
		name:     name,
		inputs:   newInputs(),
		outputs:  newOutputs(),
		flags:    NewFlags(),
		children: make(map[*Node]struct{}),
		parents:  make(map[*Node]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.strategy == nil {
		n.strategy = &AddNewInputAddNewOutput{}
	}
	if n.log == nil {
		if n.graph != nil {
			n.log = n.graph.Logger()
		} else {
			n.log = GetDefaultLogger()
		}
	}
	if n.graph != nil {
		n.graph.register(n)
	}
	return n
}

func (n *Node) ID() uuid.UUID   { return n.id }
func (n *Node) Name() string    { return n.name }
func (n *Node) Graph() *Graph   { return n.graph }
func (n *Node) Inputs() *Inputs { return n.inputs }
func (n *Node) Outputs() *Outputs { return n.outputs }
func (n *Node) Immediate() bool { return n.immediate }
func (n *Node) LastError() *Error { return n.lastError }

func (n *Node) Tainted() bool      { return n.flags.Tainted() }
func (n *Node) Frozen() bool       { return n.flags.Frozen() }
func (n *Node) Closed() bool       { return n.flags.Closed() }
func (n *Node) Allocated() bool    { return n.flags.Allocated() }

// AddInput grows a new input on the node directly (bypassing the input
// strategy), for constructors that want explicit control over their input
// set.
func (n *Node) AddInput(name string, opts ...InputOption) *Input {
	return n.addInput(name, opts...)
}

func (n *Node) addInput(name string, opts ...InputOption) *Input {
	in := newInput(n, name, opts...)
	n.inputs.add(in)
	return in
}

// AddOutput grows a new output on the node.
func (n *Node) AddOutput(name string, opts ...OutputOption) *Output {
	return n.addOutput(name, opts...)
}

func (n *Node) addOutput(name string, opts ...OutputOption) *Output {
	out := newOutput(n, name, opts...)
	n.outputs.add(out)
	return out
}

// AddPair grows a matched input/output pair in one call, the common case
// for elementwise operators.
func (n *Node) AddPair(name string, inOpts []InputOption, outOpts []OutputOption) (*Input, *Output) {
	return n.addInput(name, inOpts...), n.addOutput(name, outOpts...)
}

func (n *Node) addChild(child *Node) {
	n.children[child] = struct{}{}
	child.parents[n] = struct{}{}
}

func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for c := range n.children {
		out = append(out, c)
	}
	return out
}

func (n *Node) Parents() []*Node {
	out := make([]*Node, 0, len(n.parents))
	for p := range n.parents {
		out = append(out, p)
	}
	return out
}

// SetFunction selects which of the registered compute functions is active,
// the Go analogue of assigning Node._functions_dict[key] to Node.function;
// type functions call this to pick e.g. a matrix-mode vs diagonal-mode
// kernel once shapes are known.
func (n *Node) SetFunction(name string) error {
	f, ok := n.functions[name]
	if !ok {
		return NewError(KindTypeFunction, "no compute function registered as "+name, WithNode(n))
	}
	n.function = f
	return nil
}

// UpdateTypes runs the node's type function. Callers must ensure all parent
// nodes have already had UpdateTypes called (Graph.UpdateTypes does this in
// topological order).
func (n *Node) UpdateTypes() error {
	if n.typeFunc == nil {
		return nil
	}
	if err := n.typeFunc(n); err != nil {
		n.recordError(err)
		return err
	}
	n.flags.ClearTypesTainted()
	return nil
}

// Allocate gives every output its buffer (an output with an allocating
// input allocates that input's buffer and aliases it). Callers
// must ensure UpdateTypes has already run so data descriptors are in
// place. It first recurses into any parent not yet allocated, so a node
// whose buffer-sharing post-allocate hook
// reaches into a parent's output (e.g. ops.NewConcatenation donating a
// slice of its own buffer back to each producer) can rely on that parent
// already holding its own buffer. Allocate is idempotent: a node already
// allocated returns immediately, since Open is the only path that clears
// the allocated flag again.
func (n *Node) Allocate() error {
	if n.flags.Allocated() {
		return nil
	}
	for p := range n.parents {
		if !p.flags.Allocated() {
			if err := p.Allocate(); err != nil {
				return err
			}
		}
	}
	for _, out := range n.outputs.All() {
		if err := out.allocate(); err != nil {
			n.recordError(err)
			return err
		}
	}
	n.flags.MarkAllocated()
	n.flags.ClearNeedsReallocation()
	if n.postAllocate != nil {
		if err := n.postAllocate(n); err != nil {
			n.recordError(err)
			return err
		}
		n.flags.ClearNeedsPostAllocate()
	}
	return nil
}

// closeConfig holds the options a Close call was built with. See the
// With* constructors below for their meaning.
type closeConfig struct {
	closeParents  bool
	strict        bool
	closeChildren bool
	together      []*Node
}

// CloseOption configures a Close call.
type CloseOption func(*closeConfig)

// WithCloseParents controls whether Close recursively closes every parent
// node (running its own UpdateTypes/Allocate) before sealing this node.
// Defaults to true.
func WithCloseParents(v bool) CloseOption { return func(c *closeConfig) { c.closeParents = v } }

// WithCloseStrict controls the propagation policy for a type or allocation
// failure on this node (or a node in WithCloseTogether): strict (the
// default) aborts the call immediately with that error. Non-strict records
// the failure on the offending node (LastError) and continues, leaving the
// node unclosed rather than aborting the whole close — for callers that
// close many independent nodes and want one bad branch to not block the
// rest. Parent closes triggered by WithCloseParents still run strictly
// regardless of this node's own setting, while child closes triggered by
// WithCloseChildren inherit it, matching original_source/core/node.py:649-690's close(), whose
// recursive parent-close call omits strict (so it defaults true) while its
// recursive child-close call passes strict through explicitly.
func WithCloseStrict(v bool) CloseOption { return func(c *closeConfig) { c.strict = v } }

// WithCloseChildren additionally closes every downstream consumer once this
// node is sealed. Defaults to false.
func WithCloseChildren(v bool) CloseOption { return func(c *closeConfig) { c.closeChildren = v } }

// WithCloseTogether closes nodes alongside this one: they run through the
// same UpdateTypes/Allocate passes as this node before any of the group is
// sealed, for node groups whose type functions assume a sibling has already
// settled.
func WithCloseTogether(nodes ...*Node) CloseOption {
	return func(c *closeConfig) { c.together = nodes }
}

// Close seals the node: UpdateTypes then Allocate then post-allocate, then
// marks closed, recursing into parents first by default. With no options it
// behaves exactly as a bare Close always did (strict, close_parents,
// neither together nor close_children), matching the reference
// implementation's close(close_parents=True, strict=True,
// close_children=False, together=[]). Close is idempotent.
func (n *Node) Close(opts ...CloseOption) error {
	cfg := &closeConfig{closeParents: true, strict: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return n.closeWith(cfg)
}

func (n *Node) closeWith(cfg *closeConfig) error {
	if n.flags.Closed() {
		return nil
	}

	group := append([]*Node{n}, cfg.together...)
	for _, node := range group {
		if err := node.UpdateTypes(); err != nil {
			if cfg.strict {
				return NewError(KindClosing, "type update failed while closing", WithNode(node), WithCause(err))
			}
			node.recordError(err)
		}
	}
	for _, node := range group {
		if err := node.Allocate(); err != nil {
			if cfg.strict {
				return NewError(KindClosing, "allocation failed while closing", WithNode(node), WithCause(err))
			}
			node.recordError(err)
		}
	}

	if cfg.closeParents {
		for p := range n.parents {
			if err := p.closeWith(&closeConfig{closeParents: true, strict: true}); err != nil {
				return err
			}
		}
	}
	for _, node := range cfg.together {
		if err := node.closeWith(&closeConfig{closeParents: cfg.closeParents, strict: true}); err != nil {
			return err
		}
	}

	if n.flags.Allocated() {
		n.flags.Close()
		n.closed = true
	}
	if cfg.strict && !n.flags.Closed() {
		return NewError(KindClosing, "node failed to close", WithNode(n))
	}

	if cfg.closeChildren {
		for c := range n.children {
			if err := c.closeWith(&closeConfig{closeChildren: true, strict: cfg.strict}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Open reverses Close: unfreezes, retaints, and clears closed/allocated so
// the node can be restructured and closed again.
func (n *Node) Open() error {
	n.flags.Open()
	n.closed = false
	return nil
}

// Touch recomputes the node's outputs if tainted, then clears the taint. It
// is a no-op if the node is not tainted, unless forceComputation is passed
// as true, in which case it recomputes unconditionally — the taint and
// closed checks below are skipped entirely, the path ops.Recache uses after
// Unfreeze. Without forceComputation, touching a tainted node before it is
// closed fails with KindUnclosedGraph instead of computing against
// possibly-unsettled descriptors or buffers, matching
// original_source/core/node.py:514-520's touch(force_computation=False).
//
// forceComputation is variadic (at most its first value is read) so every
// existing no-argument call site — the overwhelming majority, since forcing
// is the rare case — keeps compiling unchanged.
func (n *Node) Touch(forceComputation ...bool) error {
	force := len(forceComputation) > 0 && forceComputation[0]
	if !force {
		if !n.flags.Tainted() {
			return nil
		}
		if !n.closed {
			err := NewError(KindUnclosedGraph, "cannot touch a tainted node before it is closed", WithNode(n))
			n.recordError(err)
			return err
		}
	}
	if n.function == nil {
		n.flags.Touch()
		return nil
	}
	if err := n.function(n); err != nil {
		n.recordError(NewError(KindCalculation, err.Error(), WithNode(n), WithCause(err)))
		return n.lastError
	}
	n.flags.Touch()
	return nil
}

// Taint marks the node dirty and cascades the taint to its children via an
// iterative worklist (see cascade.go). A frozen node only latches the taint
// as frozenTainted and cascades nothing; Unfreeze resumes the cascade. If
// the node is immediate, it recomputes synchronously instead of waiting for
// a future Touch.
func (n *Node) Taint() {
	if n.flags.tainted && !n.flags.frozen {
		return
	}
	n.flags.Taint()
	if n.flags.frozen {
		return
	}
	cascadeTaint(n)
	if n.immediate {
		_ = n.Touch()
	}
}

// Freeze suspends taint propagation out of this node.
func (n *Node) Freeze() { n.flags.Freeze() }

// Unfreeze lifts a freeze, promoting any latched frozen-taint to a real one
// and cascading it onward.
func (n *Node) Unfreeze() {
	wasFrozenTainted := n.flags.frozenTainted
	n.flags.Unfreeze()
	if wasFrozenTainted {
		cascadeTaint(n)
	}
}

func (n *Node) recordError(err error) {
	if ce, ok := err.(*Error); ok {
		n.lastError = ce
	} else {
		n.lastError = NewError(KindCalculation, err.Error(), WithNode(n), WithCause(err))
	}
}

// WireFrom connects, for every named input of n not yet connected, the
// like-named output found in outputs (the Go rendering of `node << storage`).
func (n *Node) WireFrom(outputs map[string]*Output) error {
	for name, out := range outputs {
		in, ok := n.inputs.ByName(name)
		if !ok || in.Connected() {
			continue
		}
		n.log.Debug("wiring input %q from matching output", name)
		if err := out.ConnectTo(in, false); err != nil {
			return err
		}
	}
	return nil
}
