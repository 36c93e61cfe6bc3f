package core

// Output is one producing endpoint of a Node. It owns its buffer unless it
// donates allocation to a single downstream "allocating input" (the
// zero-copy buffer-sharing pattern): at most one Input may be registered as
// an Output's allocatingInput.
type Output struct {
	name string
	node *Node

	dd   *DataDescriptor
	data []float64

	owned             bool // this output allocates and owns its buffer
	forbidReallocation bool // an allocating input may not adopt this output's allocation
	allocatingInput   *Input // the single input this output's buffer is donated to, if any

	consumers []*Input
}

// OutputOption configures an Output at construction time.
type OutputOption func(*Output)

func WithOutputOwned(v bool) OutputOption { return func(o *Output) { o.owned = v } }

// WithOutputForbidReallocation marks an output whose buffer may never be
// replaced by a downstream allocating input's own allocation: ConnectTo
// refuses to pair it with an allocatable input (KindConnection).
func WithOutputForbidReallocation(v bool) OutputOption {
	return func(o *Output) { o.forbidReallocation = v }
}

func newOutput(node *Node, name string, opts ...OutputOption) *Output {
	out := &Output{name: name, node: node, owned: true}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

func (o *Output) Name() string         { return o.name }
func (o *Output) Node() *Node          { return o.node }
func (o *Output) DD() *DataDescriptor  { return o.dd }
func (o *Output) Owned() bool          { return o.owned }
func (o *Output) ForbidReallocation() bool { return o.forbidReallocation }
func (o *Output) AllocatingInput() *Input { return o.allocatingInput }
func (o *Output) Consumers() []*Input  { return o.consumers }

// Data reads the output's buffer, recomputing it first if stale: it calls
// touch on the owning node, mirroring original_source/core/output.py's
// `data` property (output.py:170-179), which does the same before handing
// back `_data_ro`. It panics if the owning node is not yet closed, the Go
// analogue of that property raising UnclosedGraphError: reading a value out
// of a graph that hasn't finished type/allocation bookkeeping is a caller
// bug, not a recoverable runtime condition, the same way the rest of this
// package treats invalid API sequencing (e.g. SetParentOutput's reconnection
// check is the one place that condition is instead a normal *Error, because
// there it is reachable through ordinary graph construction, not just a
// read happening too early).
//
// Compute functions and post-allocate hooks must not call Data on their own
// output — doing so mid-touch would recurse into the very computation that
// is already running. They use DataUnsafe instead.
func (o *Output) Data() []float64 {
	if !o.node.closed {
		panic(NewError(KindUnclosedGraph, "cannot read output data before its node is closed", WithOutput(o)))
	}
	_ = o.node.Touch()
	return o.data
}

// DataRO is a read-only alias of Data; in Go there is no runtime
// write-protection for a slice, so this simply documents the caller's
// intent not to mutate the returned buffer in place.
func (o *Output) DataRO() []float64 { return o.Data() }

// DataUnsafe returns the output's buffer exactly as currently held, with no
// touch and no closed check: the internal counterpart of Data, grounded on
// original_source's iter_data_unsafe, which compute functions and
// post-allocate hooks use for the same reason — reading or writing one's
// own not-yet-finished output (or a parent's output before the whole graph
// has finished closing) must not go through the touching, closed-gated
// accessor a downstream consumer uses.
func (o *Output) DataUnsafe() []float64 { return o.data }

// SetDD installs the descriptor computed by the owning node's type
// function. It does not allocate; Allocate does that separately. Type
// functions (typefuncs package) call this during UpdateTypes.
func (o *Output) SetDD(dd *DataDescriptor) { o.dd = dd }

// allocate gives the output its own buffer, unless it has donated
// allocation to an allocating input, in which case the input's buffer is
// aliased here instead (buffer sharing: no new backing array is made).
func (o *Output) allocate() error {
	if o.dd == nil {
		return NewError(KindAllocation, "cannot allocate output with no data descriptor", WithOutput(o))
	}
	if o.allocatingInput != nil {
		o.allocatingInput.allocate(o.dd)
		o.data = o.allocatingInput.data
		return nil
	}
	o.data = make([]float64, o.dd.Size())
	return nil
}

// AdoptBuffer replaces this output's own buffer with data, a view into
// someone else's backing storage. It exists for consumers that need to be
// the sole owner of a contiguous region built from several producers (see
// ops.NewConcatenation): after the consumer allocates its own output, it
// hands each producer a slice of that buffer via AdoptBuffer instead of
// leaving the producer with its own separately-allocated array, so no copy
// is needed to read the concatenated result. len(data) must already match
// the descriptor's declared size; callers are responsible for having
// copied any existing contents into data first.
func (o *Output) AdoptBuffer(data []float64) {
	o.data = data
	o.owned = false
}

// ConnectTo wires this output as the data source for in. forceTaint behaves
// as documented on Input.SetParentOutput. An allocatable input may not be
// paired with a forbid-reallocation output: the output's buffer must stay
// the one it allocates for itself, never replaced by the input's own
// allocation.
func (o *Output) ConnectTo(in *Input, forceTaint bool) error {
	if in.node != nil && in.node.closed {
		return NewError(KindClosedGraph, "cannot connect into a closed node", WithInput(in), WithOutput(o))
	}
	if in.allocatable && o.forbidReallocation {
		return NewError(KindConnection, "allocatable input cannot attach to a forbid-reallocation output",
			WithInput(in), WithOutput(o))
	}
	if err := in.SetParentOutput(o, forceTaint); err != nil {
		return err
	}
	o.consumers = append(o.consumers, in)

	if in.allocatable && o.allocatingInput == nil {
		o.allocatingInput = in
		in.setAllocatingInput(true)
	}
	o.node.addChild(in.node)
	return nil
}

// ConnectToNode finds or grows a free input on node (via its InputStrategy)
// and connects this output to it.
func (o *Output) ConnectToNode(node *Node) (*Input, error) {
	var in *Input
	for _, cand := range node.inputs.All() {
		if !cand.Connected() {
			in = cand
			break
		}
	}
	if in == nil {
		var err error
		if in, err = node.strategy.AddInput(node, o.name, o); err != nil {
			return nil, err
		}
	}
	if err := o.ConnectTo(in, false); err != nil {
		return nil, err
	}
	return in, nil
}

// ConnectSequence connects each of outs, in order, to successive inputs of
// node (the Go rendering of `sequence >> node`).
func ConnectSequence(outs []*Output, node *Node) error {
	for _, out := range outs {
		if _, err := out.ConnectToNode(node); err != nil {
			return err
		}
	}
	return nil
}

// Outputs is the ordered, named collection of a Node's outputs.
type Outputs struct {
	items  []*Output
	byName map[string]*Output
}

func newOutputs() *Outputs {
	return &Outputs{byName: make(map[string]*Output)}
}

func (outs *Outputs) add(out *Output) {
	outs.items = append(outs.items, out)
	if out.name != "" {
		outs.byName[out.name] = out
	}
}

func (outs *Outputs) Len() int { return len(outs.items) }

func (outs *Outputs) At(idx int) *Output { return outs.items[idx] }

func (outs *Outputs) ByName(name string) (*Output, bool) {
	out, ok := outs.byName[name]
	return out, ok
}

func (outs *Outputs) All() []*Output { return outs.items }
