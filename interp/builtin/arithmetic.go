package builtin

import (
	"math"

	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
)

func numArgs(procName string, args []value.Value) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		n, err := asNumber(procName, a)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// arithmeticProcs registers the named arithmetic procedures. "+ - * /"
// and "< > =" are also registered under their operator spellings so the
// evaluator's infix dispatch (the procScope lookup in handleOperator) routes through
// the same builtins and the same observer hooks as any other call, per
// spec.md §4.7 listing them as builtins in their own right.
func arithmeticProcs() []*proc {
	return []*proc{
		operator("+", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("+", args)
			if err != nil {
				return nil, err
			}
			return value.Number(ns[0] + ns[1]), nil
		}),
		operator("-", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("-", args)
			if err != nil {
				return nil, err
			}
			return value.Number(ns[0] - ns[1]), nil
		}),
		operator("*", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("*", args)
			if err != nil {
				return nil, err
			}
			return value.Number(ns[0] * ns[1]), nil
		}),
		operator("/", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("/", args)
			if err != nil {
				return nil, err
			}
			if ns[1] == 0 {
				return nil, &lerr.TypeError{Proc: "/", Msg: "division by zero"}
			}
			return value.Number(ns[0] / ns[1]), nil
		}),
		operator("<", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("<", args)
			if err != nil {
				return nil, err
			}
			return value.Bool(ns[0] < ns[1]), nil
		}),
		operator(">", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs(">", args)
			if err != nil {
				return nil, err
			}
			return value.Bool(ns[0] > ns[1]), nil
		}),
		operator("=", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			return value.Bool(value.Equal(args[0], args[1])), nil
		}),
		operator("sum", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("sum", args)
			if err != nil {
				return nil, err
			}
			total := 0.0
			for _, n := range ns {
				total += n
			}
			return value.Number(total), nil
		}),
		operator("difference", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("difference", args)
			if err != nil {
				return nil, err
			}
			return value.Number(ns[0] - ns[1]), nil
		}),
		operator("product", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("product", args)
			if err != nil {
				return nil, err
			}
			total := 1.0
			for _, n := range ns {
				total *= n
			}
			return value.Number(total), nil
		}),
		operator("quotient", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("quotient", args)
			if err != nil {
				return nil, err
			}
			if ns[1] == 0 {
				return nil, &lerr.TypeError{Proc: "quotient", Msg: "division by zero"}
			}
			return value.Number(ns[0] / ns[1]), nil
		}),
		operator("remainder", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			ns, err := numArgs("remainder", args)
			if err != nil {
				return nil, err
			}
			return value.Number(math.Mod(ns[0], ns[1])), nil
		}),
	}
}
