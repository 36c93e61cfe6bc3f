package core

import "fmt"

// InputStrategy decides what happens when an Output is connected to a Node
// that does not already have a free input for it: whether to grow a new
// input (and possibly a matching output), reuse a single shared output, or
// batch inputs into fixed-size blocks that each get their own output.
type InputStrategy interface {
	// AddInput is called when out is connected to node and no existing free
	// input can accept it. It returns the Input that should receive the
	// connection.
	AddInput(node *Node, name string, out *Output) (*Input, error)
	// IdxScope reports the strategy's running index counter, used to keep
	// batched connect operations (output sequences >> node) consistent
	// across calls.
	IdxScope() int
}

// AddNewInputAddNewOutput always grows a fresh input and a matching fresh
// output, pairing them 1:1. This is the default strategy: every new input
// gets its own same-named output (e.g. arithmetic nodes with N inputs and N
// outputs is not what's wanted in general, but a few reference operators —
// notably elementwise transforms — use exactly this pairing).
type AddNewInputAddNewOutput struct {
	idxScope int
}

func (s *AddNewInputAddNewOutput) IdxScope() int { return s.idxScope }

func (s *AddNewInputAddNewOutput) AddInput(node *Node, name string, out *Output) (*Input, error) {
	s.idxScope++
	in := node.addInput(name, WithInputAllocatable(true))
	node.addOutput(name)
	return in, nil
}

// AddNewInputAddAndKeepSingleOutput grows a new input for every connection
// but creates the node's single output only once; every subsequent input
// shares that one output, the pattern used by reduction-style nodes (Sum,
// Product) that fan many inputs into one result.
type AddNewInputAddAndKeepSingleOutput struct {
	idxScope     int
	outputName   string
	outputCreated bool
}

func NewAddNewInputAddAndKeepSingleOutput(outputName string) *AddNewInputAddAndKeepSingleOutput {
	return &AddNewInputAddAndKeepSingleOutput{outputName: outputName}
}

func (s *AddNewInputAddAndKeepSingleOutput) IdxScope() int { return s.idxScope }

func (s *AddNewInputAddAndKeepSingleOutput) AddInput(node *Node, name string, out *Output) (*Input, error) {
	if !s.outputCreated {
		node.addOutput(s.outputName)
		s.outputCreated = true
	}
	// Every connection feeds the same output, so inputs are named
	// positionally rather than after the source's own output name, which
	// would otherwise collide whenever two sources happen to share a name
	// (e.g. two Array nodes both named "array").
	in := node.addInput(fmt.Sprintf("%s_%d", name, s.idxScope))
	s.idxScope++
	return in, nil
}

// AddNewInputAddNewOutputForBlock batches inputs into fixed-size blocks of
// BlockSize; every BlockSize-th input triggers a new output, so block k's
// inputs all share output k. Used by nodes that consume several arrays per
// logical unit of work (e.g. one mean + one sigma input per output bin).
type AddNewInputAddNewOutputForBlock struct {
	BlockSize int
	idxScope  int
	inBlock   int
}

func NewAddNewInputAddNewOutputForBlock(blockSize int) *AddNewInputAddNewOutputForBlock {
	return &AddNewInputAddNewOutputForBlock{BlockSize: blockSize}
}

func (s *AddNewInputAddNewOutputForBlock) IdxScope() int { return s.idxScope }

func (s *AddNewInputAddNewOutputForBlock) AddInput(node *Node, name string, out *Output) (*Input, error) {
	if s.inBlock == 0 {
		node.addOutput(fmt.Sprintf("%s_%d", name, s.idxScope))
		s.idxScope++
	}
	in := node.addInput(fmt.Sprintf("%s_%d_%d", name, s.idxScope-1, s.inBlock))
	s.inBlock = (s.inBlock + 1) % s.BlockSize
	return in, nil
}
