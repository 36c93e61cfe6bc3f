package parameters

import "github.com/katalvlaran/dagflow/core"

// Parameter is one named scalar slot inside a Parameters group's shared
// Array output: an index into the buffer, plus a push/pop stack so a
// caller can try a what-if value and restore the original exactly.
// Grounded on original_source/src/dagflow/parameters/parameters.py's
// Parameter, and on core/make_fcn.py's push-then-pop usage pattern.
type Parameter struct {
	name   string
	output *core.Output
	index  int
	stack  []float64
}

func newParameter(name string, output *core.Output, index int) *Parameter {
	return &Parameter{name: name, output: output, index: index}
}

func (p *Parameter) Name() string  { return p.name }
func (p *Parameter) Index() int    { return p.index }

// Value reads the parameter's current value; Output.Data touches the
// owning node so it reflects the latest computation.
func (p *Parameter) Value() float64 {
	return p.output.Data()[p.index]
}

// SetValue overwrites the parameter's value in place and taints its owning
// node so dependents recompute on next read. It writes through DataUnsafe
// since the owning Array node's output is not itself being recomputed here.
func (p *Parameter) SetValue(v float64) {
	p.output.DataUnsafe()[p.index] = v
	p.output.Node().Taint()
}

// Push saves the current value on an internal stack and installs v.
func (p *Parameter) Push(v float64) {
	p.stack = append(p.stack, p.Value())
	p.SetValue(v)
}

// Pop restores the value most recently saved by Push. A no-op if nothing
// is pending.
func (p *Parameter) Pop() {
	n := len(p.stack)
	if n == 0 {
		return
	}
	v := p.stack[n-1]
	p.stack = p.stack[:n-1]
	p.SetValue(v)
}
