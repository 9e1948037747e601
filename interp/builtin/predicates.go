package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/value"
)

func predicateProcs() []*proc {
	return []*proc{
		operator("emptyp", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				return value.Bool(t.IsEmpty()), nil
			case value.Word:
				return value.Bool(len(t) == 0), nil
			default:
				return value.Bool(false), nil
			}
		}),
		operator("equalp", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			return value.Bool(value.Equal(args[0], args[1])), nil
		}),
		operator("listp", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			_, ok := args[0].(*value.List)
			return value.Bool(ok), nil
		}),
		// memberp is genuine value iteration over the list (spec.md §9:
		// the source's "for … in" iterates property names rather than
		// values; the intent is clearly value iteration).
		operator("memberp", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			l, err := asList("memberp", args[1])
			if err != nil {
				return nil, err
			}
			for cur := l; !cur.IsEmpty(); cur = cur.Tail {
				if value.Equal(cur.Head, args[0]) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		}),
		operator("numberp", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.Number)
			return value.Bool(ok), nil
		}),
		operator("wordp", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			_, ok := args[0].(value.Word)
			return value.Bool(ok), nil
		}),
	}
}
