package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
)

func nameOf(procName string, v value.Value) (string, error) {
	w, ok := v.(value.Word)
	if !ok {
		return "", &lerr.TypeError{Proc: procName, Msg: "expected a variable name (word), got " + describe(v)}
	}
	return string(w), nil
}

func variableProcs() []*proc {
	return []*proc{
		operator("thing", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			name, err := nameOf("thing", args[0])
			if err != nil {
				return nil, err
			}
			v, ok := ev.Vars().Get(name)
			if !ok {
				return nil, &lerr.UnboundError{Kind: "variable", Name: name}
			}
			return v, nil
		}),
		command("make", 2, func(ev *eval.Evaluator, args []value.Value) error {
			name, err := nameOf("make", args[0])
			if err != nil {
				return err
			}
			ev.Vars().Set(name, args[1])
			return nil
		}),
		// local binds name to an initial value in the current scope,
		// shadowing any outer binding of the same name — a pragmatic
		// adaptation of UCBLogo's one-argument "reserve the name"
		// `local` to this package's typed Binding[value.Value], which
		// always holds a value.
		command("local", 2, func(ev *eval.Evaluator, args []value.Value) error {
			name, err := nameOf("local", args[0])
			if err != nil {
				return err
			}
			ev.Vars().BindValue(name, args[1])
			return nil
		}),
		command("global", 1, func(ev *eval.Evaluator, args []value.Value) error {
			name, err := nameOf("global", args[0])
			if err != nil {
				return err
			}
			root := ev.Vars().Root()
			b, ok := root.GetBinding(name)
			if !ok {
				root.BindValue(name, value.Bool(false))
				b, _ = root.GetBinding(name)
			}
			ev.Vars().Bind(name, b)
			return nil
		}),
		command("push", 2, func(ev *eval.Evaluator, args []value.Value) error {
			name, err := nameOf("push", args[0])
			if err != nil {
				return err
			}
			b, ok := ev.Vars().GetBinding(name)
			if !ok {
				return &lerr.UnboundError{Kind: "variable", Name: name}
			}
			l, ok := b.Val.(*value.List)
			if !ok {
				return &lerr.TypeError{Proc: "push", Msg: "\"" + name + "\" is not a list"}
			}
			b.Val = value.New(args[1], l)
			return nil
		}),
	}
}
