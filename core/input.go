package core

// Input is one consuming endpoint of a Node. It does not own data itself
// unless OwnsBuffer is set (a "weak" input holding its own constant
// buffer); ordinarily it delegates Data/DD/Tainted to its ParentOutput.
type Input struct {
	name   string
	node   *Node
	parent *Output // the Output this input is connected to

	allocatable       bool // may receive an allocated (not just borrowed) buffer
	ownsBuffer        bool // holds its own buffer rather than aliasing parent's
	allocatingInput   bool // this input is its parent output's allocating input

	dd   *DataDescriptor
	data []float64
}

// InputOption configures an Input at construction time.
type InputOption func(*Input)

func WithInputAllocatable(v bool) InputOption { return func(i *Input) { i.allocatable = v } }
func WithInputOwnsBuffer(v bool) InputOption  { return func(i *Input) { i.ownsBuffer = v } }

func newInput(node *Node, name string, opts ...InputOption) *Input {
	in := &Input{name: name, node: node}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

func (i *Input) Name() string  { return i.name }
func (i *Input) Node() *Node   { return i.node }
func (i *Input) Connected() bool { return i.parent != nil }
func (i *Input) ParentOutput() *Output { return i.parent }
func (i *Input) Allocatable() bool     { return i.allocatable }
func (i *Input) OwnsBuffer() bool      { return i.ownsBuffer }
func (i *Input) AllocatingInput() bool { return i.allocatingInput }

// DD returns the data descriptor visible through this input: its own if it
// owns a buffer, otherwise its parent output's.
func (i *Input) DD() *DataDescriptor {
	if i.ownsBuffer {
		return i.dd
	}
	if i.parent != nil {
		return i.parent.DD()
	}
	return i.dd
}

// Data returns the buffer visible through this input. For a connected
// input this reads through the parent Output's own Data, which recomputes
// it first if stale; an input with no parent (a weak, own-buffer input)
// just returns its constant buffer.
func (i *Input) Data() []float64 {
	if i.ownsBuffer {
		return i.data
	}
	if i.parent != nil {
		return i.parent.Data()
	}
	return i.data
}

// Tainted reports whether the value behind this input is stale.
func (i *Input) Tainted() bool {
	if i.parent != nil {
		return i.parent.node.Tainted()
	}
	return false
}

// SetParentOutput wires this input to out. Reconnection is only allowed
// before the input has received concrete data; forceTaint requests that
// out's node be retainted even if it was already untainted, to force a
// recompute downstream of the new edge.
func (i *Input) SetParentOutput(out *Output, forceTaint bool) error {
	if i.parent != nil && i.data != nil {
		return NewError(KindReconnection, "input already has data and cannot be reconnected",
			WithInput(i))
	}
	i.parent = out
	if forceTaint {
		out.node.Taint()
	}
	return nil
}

func (i *Input) setAllocatingInput(v bool) { i.allocatingInput = v }

// SetOwnData installs a constant buffer directly on a weak (OwnsBuffer)
// input that has no upstream output, the Go analogue of the reference
// implementation's `own_data` constructor path used by source nodes like
// Array.
func (i *Input) SetOwnData(dd *DataDescriptor, data []float64) {
	i.ownsBuffer = true
	i.dd = dd
	i.data = data
}

// allocate gives this input its own buffer. Called only by Output.allocate,
// for the input registered as that output's allocating input; the output
// then aliases the same buffer.
func (i *Input) allocate(dd *DataDescriptor) {
	i.dd = dd
	i.data = make([]float64, dd.Size())
}

// Inputs is the ordered, named collection of a Node's inputs.
type Inputs struct {
	items []*Input
	byName map[string]*Input
}

func newInputs() *Inputs {
	return &Inputs{byName: make(map[string]*Input)}
}

func (ins *Inputs) add(in *Input) {
	ins.items = append(ins.items, in)
	if in.name != "" {
		ins.byName[in.name] = in
	}
}

func (ins *Inputs) Len() int { return len(ins.items) }

func (ins *Inputs) At(idx int) *Input { return ins.items[idx] }

func (ins *Inputs) ByName(name string) (*Input, bool) {
	in, ok := ins.byName[name]
	return in, ok
}

func (ins *Inputs) All() []*Input { return ins.items }
