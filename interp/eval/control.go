package eval

import (
	"time"

	"github.com/loturtle/logocore/interp/value"
)

// Node is the opaque node handle threaded through observer callbacks;
// concretely the *value.List cons cell the evaluator is currently
// dispatching on.
type Node = *value.List

// Control is the suspension/cancellation surface the evaluator consults
// at every call site. It is implemented by the Interpreter facade and
// injected into the Evaluator so this package never needs to know about
// contexts, channels, or pause/break bookkeeping directly — the
// cooperative-suspension design note (spec.md §9) calls for wrapping the
// host's native suspension primitive at exactly one point; Control is
// that seam.
type Control interface {
	// CheckBreak is called before every performCall. It blocks while
	// paused and returns a *lerr.BreakError the moment a cancellation
	// has been requested.
	CheckBreak() error
	// OnCall notifies an installed oncall observer, if any, that fn is
	// about to be invoked with args. body/node locate the call in
	// source.
	OnCall(fn Proc, args []value.Value, body *value.List, node Node)
	// OnValue notifies an installed onvalue observer, if any, that v is
	// the result of evaluating body/node.
	OnValue(v value.Value, body *value.List, node Node)
	// OnPrint notifies an installed onprint observer, if any.
	OnPrint(s string)
	// Sleep blocks for d, or returns a break error early if the host
	// cancels first. Used by the `wait` builtin.
	Sleep(d time.Duration) error
}

// noopControl is used when an Evaluator is constructed without an
// explicit Control (e.g. in unit tests that don't exercise
// pause/break/observers).
type noopControl struct{}

func (noopControl) CheckBreak() error                             { return nil }
func (noopControl) OnCall(Proc, []value.Value, *value.List, Node) {}
func (noopControl) OnValue(value.Value, *value.List, Node)        {}
func (noopControl) OnPrint(string)                                {}
func (noopControl) Sleep(d time.Duration) error                   { time.Sleep(d); return nil }
