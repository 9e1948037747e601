package eval

import (
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
)

// Proc is any callable installed in the procedure scope: a host/builtin
// function or a user-defined `to ... end` procedure. Builtins and
// user-defined procedures are indistinguishable at the call site, per
// spec.md §4.7/§6.
type Proc interface {
	// Params is the declared positional arity: handleFixed stops
	// collecting arguments once this many have been gathered.
	Params() int
	// Call invokes the procedure with already-evaluated positional
	// args (len(args) >= Params(), extras present only for a variadic
	// invocation). hasValue is false for a command that produced no
	// output.
	Call(ev *Evaluator, args []value.Value) (result value.Value, hasValue bool, err error)
}

// Procedure is a user-defined `to name :a :b ... end` procedure.
type Procedure struct {
	Name    string
	Params_ []string // argument names, sigil already stripped
	Body    *value.List
}

func (p *Procedure) Params() int { return len(p.Params_) }

// Call creates a new variable scope parented to the caller's, binds
// each argument name to its corresponding actual value (excess actuals
// are ignored; missing actuals leave the parameter unbound in the new
// scope, so reading it resolves through the caller's scopes and fails
// as an unbound-variable error only if none of them binds it), pushes a
// fresh Context, evaluates the saved body, and pops both on every exit
// path.
func (p *Procedure) Call(ev *Evaluator, args []value.Value) (value.Value, bool, error) {
	callerVars := ev.vars
	vars := scope.New[value.Value](callerVars)
	for i, name := range p.Params_ {
		if i < len(args) {
			vars.BindValue(name, args[i])
		}
	}

	ctx := scope.NewContext()

	savedVars, savedCtx := ev.vars, ev.ctx
	ev.vars, ev.ctx = vars, ctx
	defer func() { ev.vars, ev.ctx = savedVars, savedCtx }()

	if _, _, err := ev.Evaluate(p.Body); err != nil {
		return nil, false, err
	}
	return ctx.Output, ctx.HasOutput, nil
}
