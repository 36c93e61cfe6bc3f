package core

// Flags is the node state machine described by the engine's lifecycle:
// taint/freeze for lazy evaluation, closed/allocated for the two-phase
// lifecycle, and the auxiliary bits the allocator and type-checker use to
// request follow-up work. Each method below is one transition, mirroring
// the reference implementation's one-property-per-trigger shape. Only Taint
// (latching while frozen) and Unfreeze (promoting a latched taint) branch
// on the current state; Freeze, TaintTypes and Close apply unconditionally,
// so Freeze does not refuse a tainted node.
type Flags struct {
	tainted           bool
	frozen            bool
	frozenTainted     bool
	closed            bool
	allocated         bool
	invalid           bool
	typesTainted      bool
	needsReallocation bool
	needsPostAllocate bool
}

func NewFlags() *Flags {
	return &Flags{tainted: true, typesTainted: true}
}

func (f *Flags) Tainted() bool           { return f.tainted }
func (f *Flags) Frozen() bool            { return f.frozen }
func (f *Flags) FrozenTainted() bool     { return f.frozenTainted }
func (f *Flags) Closed() bool            { return f.closed }
func (f *Flags) Allocated() bool         { return f.allocated }
func (f *Flags) Invalid() bool           { return f.invalid }
func (f *Flags) TypesTainted() bool      { return f.typesTainted }
func (f *Flags) NeedsReallocation() bool { return f.needsReallocation }
func (f *Flags) NeedsPostAllocate() bool { return f.needsPostAllocate }

// Taint marks the node dirty. If the node is frozen the taint latches as
// frozenTainted instead of propagating; Unfreeze later promotes it back to
// a real taint. Taint is idempotent.
func (f *Flags) Taint() {
	if f.frozen {
		f.frozenTainted = true
		return
	}
	f.tainted = true
}

// TaintTypes marks the node's type information stale (and taints the node);
// the next successful UpdateTypes clears the mark.
func (f *Flags) TaintTypes() {
	f.typesTainted = true
	f.Taint()
}

// Touch clears the taint. Callers are expected to have just recomputed (or
// determined no recompute is needed) before calling this; Touch itself does
// not run any computation.
func (f *Flags) Touch() {
	f.tainted = false
}

// Freeze suspends taint propagation into this node. While frozen, Taint
// calls latch into frozenTainted rather than setting tainted directly.
func (f *Flags) Freeze() {
	f.frozen = true
}

// Unfreeze lifts the freeze. A latched frozenTainted is promoted to a real
// taint so the next Touch recomputes.
func (f *Flags) Unfreeze() {
	f.frozen = false
	if f.frozenTainted {
		f.frozenTainted = false
		f.tainted = true
	}
}

// Close marks the node sealed: no further structural changes are allowed.
// No-op if already closed.
func (f *Flags) Close() {
	f.closed = true
}

// Open reverses Close, unfreezes, and re-taints so a subsequent close will
// recompute from scratch.
func (f *Flags) Open() {
	f.closed = false
	f.allocated = false
	f.Unfreeze()
	f.Taint()
}

func (f *Flags) MarkAllocated()          { f.allocated = true }
func (f *Flags) MarkInvalid()            { f.invalid = true }
func (f *Flags) ClearInvalid()           { f.invalid = false }
func (f *Flags) ClearTypesTainted()      { f.typesTainted = false }
func (f *Flags) MarkNeedsReallocation()  { f.needsReallocation = true }
func (f *Flags) ClearNeedsReallocation() { f.needsReallocation = false }
func (f *Flags) MarkNeedsPostAllocate()  { f.needsPostAllocate = true }
func (f *Flags) ClearNeedsPostAllocate() { f.needsPostAllocate = false }
