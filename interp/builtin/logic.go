package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
)

func boolOf(procName string, v value.Value) (bool, error) {
	b, ok := value.IsTruthy(v)
	if !ok {
		return false, &lerr.TypeError{Proc: procName, Msg: "expected true/false, got " + describe(v)}
	}
	return b, nil
}

// logicProcs registers `true`/`false`/`and`/`or`/`not`.
//
// and/or still reduce over args the same way here, but the real
// short-circuiting (spec.md §4.7: "and/or short-circuit on the first
// falsy/truthy argument") happens one layer up, in the evaluator's
// handleFixed/handleVariadic dispatch (see eval.walker.handleAndOr):
// once a determining argument is found, later argument expressions are
// walked only far enough to consume their tokens and are never actually
// invoked, so args here is already a short prefix — this loop only ever
// runs until it hits the value that already decided the call.
func logicProcs() []*proc {
	return []*proc{
		operator("true", 0, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			return value.Bool(true), nil
		}),
		operator("false", 0, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			return value.Bool(false), nil
		}),
		operator("and", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			for _, a := range args {
				b, err := boolOf("and", a)
				if err != nil {
					return nil, err
				}
				if !b {
					return value.Bool(false), nil
				}
			}
			return value.Bool(true), nil
		}),
		operator("or", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			for _, a := range args {
				b, err := boolOf("or", a)
				if err != nil {
					return nil, err
				}
				if b {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}),
		operator("not", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			b, err := boolOf("not", args[0])
			if err != nil {
				return nil, err
			}
			return value.Bool(!b), nil
		}),
	}
}
