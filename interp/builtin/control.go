package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
)

// raw wraps a builtin that needs to pass through an arbitrary
// (value, hasValue) pair rather than always-a-value (operator) or
// never-a-value (command) — used by `run`/`runresult`, whose result
// depends on whether the list they evaluate happens to produce one.
func raw(name string, arity int, fn func(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error)) *proc {
	return &proc{name: name, arity: arity, fn: fn}
}

// controlProcs registers `stop`, `output`, `run`, `runresult`,
// `repeat`, `forever`, `if`, `ifelse`. None of these push a new
// variable scope around the list they evaluate — only templates do
// that (spec.md §4.6) — so `stop`/`output` inside their bodies act on
// the same Context as the procedure that called them, exactly as
// spec.md §3 describes for "if/repeat/template bodies".
func controlProcs() []*proc {
	return []*proc{
		command("stop", 0, func(ev *eval.Evaluator, args []value.Value) error {
			if ev.Ctx().Global {
				return &lerr.SyntaxError{Msg: "\"stop\" used outside a procedure"}
			}
			ev.Ctx().Stop = true
			return nil
		}),
		command("output", 1, func(ev *eval.Evaluator, args []value.Value) error {
			if ev.Ctx().Global {
				return &lerr.SyntaxError{Msg: "\"output\" used outside a procedure"}
			}
			ev.Ctx().SetOutput(args[0])
			return nil
		}),
		raw("run", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, bool, error) {
			l, err := asList("run", args[0])
			if err != nil {
				return nil, false, err
			}
			return ev.Evaluate(l)
		}),
		operator("runresult", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			l, err := asList("runresult", args[0])
			if err != nil {
				return nil, err
			}
			v, has, err := ev.Evaluate(l)
			if err != nil {
				return nil, err
			}
			if !has {
				return value.Empty, nil
			}
			return value.New(v, value.Empty), nil
		}),
		command("repeat", 2, func(ev *eval.Evaluator, args []value.Value) error {
			n, err := asNumber("repeat", args[0])
			if err != nil {
				return err
			}
			body, err := asList("repeat", args[1])
			if err != nil {
				return err
			}
			for i := 0; i < int(n); i++ {
				if err := ev.CheckBreak(); err != nil {
					return err
				}
				if _, _, err := ev.Evaluate(body); err != nil {
					return err
				}
				if ev.Ctx().Stop {
					break
				}
			}
			return nil
		}),
		command("forever", 1, func(ev *eval.Evaluator, args []value.Value) error {
			body, err := asList("forever", args[0])
			if err != nil {
				return err
			}
			for {
				if err := ev.CheckBreak(); err != nil {
					return err
				}
				if _, _, err := ev.Evaluate(body); err != nil {
					return err
				}
				if ev.Ctx().Stop {
					return nil
				}
			}
		}),
		command("if", 2, func(ev *eval.Evaluator, args []value.Value) error {
			cond, err := boolOf("if", args[0])
			if err != nil {
				return err
			}
			if !cond {
				return nil
			}
			body, err := asList("if", args[1])
			if err != nil {
				return err
			}
			_, _, err = ev.Evaluate(body)
			return err
		}),
		// ifelse evaluates exactly one of the two branches based on
		// cond (spec.md §9: the intended semantics, not the source's
		// unbound-`block` quirk).
		command("ifelse", 3, func(ev *eval.Evaluator, args []value.Value) error {
			cond, err := boolOf("ifelse", args[0])
			if err != nil {
				return err
			}
			branch := args[2]
			if cond {
				branch = args[1]
			}
			body, err := asList("ifelse", branch)
			if err != nil {
				return err
			}
			_, _, err = ev.Evaluate(body)
			return err
		}),
	}
}
