// Package builtin implements the fixed registry of host-independent
// procedures installed into every Interpreter's procedure scope at
// construction (spec.md §4.7): arithmetic, logic, word/list operations,
// output, variable access, predicates, control flow, and templates.
// Turtle graphics and other embedder-specific collaborators are never
// registered here — they remain the embedder's job (spec.md §1).
package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/value"
)

// proc adapts a plain Go function to eval.Proc. arity is the exact
// count handleFixed collects before invoking, and the minimum count
// handleVariadic requires through the "( … )" form.
type proc struct {
	name  string
	arity int
	fn    func(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error)
}

func (p *proc) Params() int { return p.arity }
func (p *proc) Call(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error) {
	return p.fn(ev, args)
}

// command wraps a side-effecting builtin that never produces a value.
func command(name string, arity int, fn func(ev *eval.Evaluator, args []value.Value) error) *proc {
	return &proc{name: name, arity: arity, fn: func(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error) {
		if err := fn(ev, args); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}}
}

// operator wraps a builtin that always produces a value.
func operator(name string, arity int, fn func(ev *eval.Evaluator, args []value.Value) (value.Value, error)) *proc {
	return &proc{name: name, arity: arity, fn: func(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error) {
		v, err := fn(ev, args)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}}
}
