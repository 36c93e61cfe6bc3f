package core

import "fmt"

// Kind classifies a dagflow Error. The Critical kinds mirror the
// DagflowError subclasses of the reference implementation; Noncritical is
// reserved for diagnostics that do not abort the calling operation.
type Kind int

const (
	KindNoncritical Kind = iota
	KindInitialization
	KindAllocation
	KindClosing
	KindOpening
	KindClosedGraph
	KindUnclosedGraph
	KindTypeFunction
	KindReconnection
	KindConnection
	KindCalculation
)

func (k Kind) String() string {
	switch k {
	case KindNoncritical:
		return "noncritical"
	case KindInitialization:
		return "initialization"
	case KindAllocation:
		return "allocation"
	case KindClosing:
		return "closing"
	case KindOpening:
		return "opening"
	case KindClosedGraph:
		return "closed-graph"
	case KindUnclosedGraph:
		return "unclosed-graph"
	case KindTypeFunction:
		return "type-function"
	case KindReconnection:
		return "reconnection"
	case KindConnection:
		return "connection"
	case KindCalculation:
		return "calculation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type raised by the engine. It carries enough
// context (Kind plus the offending Node/Input/Output, when known) for a
// caller to both branch on core.IsKind(err, core.KindX) (or
// errors.Is(err, &core.Error{Kind: core.KindX})) and print a useful
// diagnostic.
type Error struct {
	Kind    Kind
	Message string
	Node    *Node
	Input   *Input
	Output  *Output
	Cause   error
}

// NewError builds an *Error of the given kind. opts may set Node/Input/
// Output/Cause via the With* helpers below.
func NewError(kind Kind, message string, opts ...ErrorOption) *Error {
	e := &Error{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ErrorOption attaches optional context to an *Error.
type ErrorOption func(*Error)

func WithNode(n *Node) ErrorOption     { return func(e *Error) { e.Node = n } }
func WithInput(i *Input) ErrorOption   { return func(e *Error) { e.Input = i } }
func WithOutput(o *Output) ErrorOption { return func(e *Error) { e.Output = o } }
func WithCause(err error) ErrorOption  { return func(e *Error) { e.Cause = err } }

func (e *Error) Error() string {
	msg := e.Message
	if e.Node != nil {
		msg = fmt.Sprintf("%s [node=%s]", msg, e.Node.Name())
	}
	if e.Input != nil {
		msg = fmt.Sprintf("%s [input=%s]", msg, e.Input.Name())
	}
	if e.Output != nil {
		msg = fmt.Sprintf("%s [output=%s]", msg, e.Output.Name())
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error carrying the same Kind, so callers
// can write errors.Is(err, &core.Error{Kind: core.KindAllocation}) — or, more
// conveniently, use IsKind below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ce, ok := err.(*Error); ok {
			e = ce
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}

// Critical reports whether the Kind represents a critical (abort-worthy)
// condition as opposed to a diagnostic.
func (k Kind) Critical() bool { return k != KindNoncritical }
