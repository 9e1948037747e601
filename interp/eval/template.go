package eval

import (
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
)

// CallTemplate invokes a template (spec.md §4.6, used by the `apply`,
// `invoke`, `foreach`, and `map` builtins): either (a) a procedure name,
// called directly with args, or (b) a list `[[argnames…] body…]`, which
// pushes a fresh variable scope parented to the current one, binds the
// argument names positionally, evaluates the body, and returns its
// result. Templates without an argument-name list fail.
func (ev *Evaluator) CallTemplate(tmpl value.Value, args []value.Value) (value.Value, bool, error) {
	switch t := tmpl.(type) {
	case value.Word:
		proc, ok := ev.procScope.Get(string(t))
		if !ok {
			return nil, false, &lerr.UnboundError{Kind: "procedure", Name: string(t)}
		}
		return ev.callProc(proc, args, nil)
	case *value.List:
		return ev.callListTemplate(t, args)
	default:
		return nil, false, &lerr.TypeError{Msg: "template must be a procedure name or a list"}
	}
}

func (ev *Evaluator) callListTemplate(tmpl *value.List, args []value.Value) (value.Value, bool, error) {
	if tmpl.IsEmpty() {
		return nil, false, &lerr.TypeError{Msg: "template requires an argument-name list"}
	}
	names, ok := tmpl.Head.(*value.List)
	if !ok {
		return nil, false, &lerr.TypeError{Msg: "template's first element must be an argument-name list"}
	}

	vars := scope.New[value.Value](ev.vars)
	i := 0
	for cur := names; !cur.IsEmpty(); cur = cur.Tail {
		name, ok := cur.Head.(value.Word)
		if !ok {
			return nil, false, &lerr.TypeError{Msg: "template argument name must be a word"}
		}
		if i < len(args) {
			vars.BindValue(string(name), args[i])
		}
		i++
	}

	savedVars := ev.vars
	ev.vars = vars
	defer func() { ev.vars = savedVars }()

	result, hasResult, err := ev.Evaluate(tmpl.Tail)
	if err != nil {
		return nil, false, err
	}
	return result, hasResult, nil
}
