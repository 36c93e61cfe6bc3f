package parameters

import (
	"github.com/katalvlaran/dagflow/core"
	"github.com/katalvlaran/dagflow/ops"
)

// Constraint narrows a Parameters group's allowed values. GaussianConstraint
// is the only implementation the engine ships, but the interface keeps
// Parameters.IsConstrained generic.
type Constraint interface {
	// Normalized returns the group's current normalized (uncorrelated,
	// zero-mean, unit-sigma) coordinates.
	Normalized() []float64
}

// Parameters is a named group of scalar Parameter values backed by one
// shared core.Node (an ops.Array). Grounded on
// original_source/src/dagflow/parameters/parameters.py's Parameters class:
// `_pars`/`_names`/`_is_variable`/`_constraint` become `pars`/`names`/
// `isVariable`/`constraint` here, and `iteritems`/`to_dict` become
// ToDict.
type Parameters struct {
	name       string
	node       *core.Node
	output     *core.Output
	pars       []*Parameter
	names      map[string]*Parameter
	isVariable bool
	constraint Constraint
}

// FromNumbers builds a Parameters group from a flat list of initial
// values, the Go analogue of Parameters.from_numbers: one ops.Array node
// backs the whole group, and each slot becomes a Parameter. names may be
// shorter than values or contain empty strings; unnamed slots fall back to
// the group's own name.
func FromNumbers(name string, values []float64, names []string, variable bool, opts ...core.NodeOption) *Parameters {
	node := ops.NewArray(name, values, opts...)
	out := node.Outputs().At(0)
	p := &Parameters{
		name:       name,
		node:       node,
		output:     out,
		names:      make(map[string]*Parameter, len(values)),
		isVariable: variable,
	}
	for i := range values {
		pname := name
		if i < len(names) && names[i] != "" {
			pname = names[i]
		}
		par := newParameter(pname, out, i)
		p.pars = append(p.pars, par)
		p.names[pname] = par
	}
	return p
}

func (p *Parameters) Name() string         { return p.name }
func (p *Parameters) Node() *core.Node     { return p.node }
func (p *Parameters) Output() *core.Output { return p.output }
func (p *Parameters) Len() int             { return len(p.pars) }
func (p *Parameters) At(i int) *Parameter  { return p.pars[i] }
func (p *Parameters) All() []*Parameter    { return p.pars }

func (p *Parameters) ByName(name string) (*Parameter, bool) {
	par, ok := p.names[name]
	return par, ok
}

func (p *Parameters) IsVariable() bool    { return p.isVariable }
func (p *Parameters) IsFixed() bool       { return !p.isVariable }
func (p *Parameters) IsConstrained() bool { return p.constraint != nil }
func (p *Parameters) IsFree() bool        { return p.isVariable && p.constraint == nil }
func (p *Parameters) IsCorrelated() bool  { return p.IsConstrained() }

// SetConstraint attaches c (typically a *GaussianConstraint) to the group.
func (p *Parameters) SetConstraint(c Constraint) { p.constraint = c }
func (p *Parameters) ConstraintOf() Constraint    { return p.constraint }

// Values reads every parameter's current value in declaration order;
// Output.Data touches the underlying node.
func (p *Parameters) Values() []float64 {
	out := make([]float64, len(p.pars))
	copy(out, p.output.Data())
	return out
}

// ToDict returns name -> value for every parameter in the group.
func (p *Parameters) ToDict() map[string]float64 {
	values := p.Values()
	d := make(map[string]float64, len(p.pars))
	for i, par := range p.pars {
		d[par.name] = values[i]
	}
	return d
}
