package builtin

import (
	"strings"

	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
	"github.com/samber/lo"
)

func wordsAndListsProcs() []*proc {
	return []*proc{
		operator("word", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			var b strings.Builder
			for _, a := range args {
				s, err := toWordText("word", a)
				if err != nil {
					return nil, err
				}
				b.WriteString(s)
			}
			return value.Word(b.String()), nil
		}),
		operator("se", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			flat := lo.FlatMap(args, func(a value.Value, _ int) []value.Value {
				if l, ok := a.(*value.List); ok {
					return l.Values()
				}
				return []value.Value{a}
			})
			return value.FromSlice(flat), nil
		}),
		operator("list", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			out := make([]value.Value, len(args))
			copy(out, args)
			return value.FromSlice(out), nil
		}),
		operator("fput", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			l, err := asList("fput", args[1])
			if err != nil {
				return nil, err
			}
			return value.New(args[0], l), nil
		}),
		operator("lput", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			l, err := asList("lput", args[1])
			if err != nil {
				return nil, err
			}
			vals := append(append([]value.Value{}, l.Values()...), args[0])
			return value.FromSlice(vals), nil
		}),
		operator("combine", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			if l, ok := args[1].(*value.List); ok {
				return value.New(args[0], l), nil
			}
			a, err := toWordText("combine", args[0])
			if err != nil {
				return nil, err
			}
			b, err := toWordText("combine", args[1])
			if err != nil {
				return nil, err
			}
			return value.Word(a + b), nil
		}),
		operator("reverse", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			l, err := asList("reverse", args[0])
			if err != nil {
				return nil, err
			}
			return l.Reverse(), nil
		}),
		operator("count", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				return value.Number(t.Count()), nil
			case value.Word:
				return value.Number(len([]rune(string(t)))), nil
			default:
				return nil, &lerr.TypeError{Proc: "count", Msg: "expected a list or word, got " + describe(args[0])}
			}
		}),
		operator("first", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				if t.IsEmpty() {
					return nil, &lerr.TypeError{Proc: "first", Msg: "list is empty"}
				}
				return t.Head, nil
			case value.Word:
				r := []rune(string(t))
				if len(r) == 0 {
					return nil, &lerr.TypeError{Proc: "first", Msg: "word is empty"}
				}
				return value.Word(string(r[0])), nil
			default:
				return nil, &lerr.TypeError{Proc: "first", Msg: "expected a list or word, got " + describe(args[0])}
			}
		}),
		operator("last", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				end := t.End()
				if end == nil {
					return nil, &lerr.TypeError{Proc: "last", Msg: "list is empty"}
				}
				return end.Head, nil
			case value.Word:
				r := []rune(string(t))
				if len(r) == 0 {
					return nil, &lerr.TypeError{Proc: "last", Msg: "word is empty"}
				}
				return value.Word(string(r[len(r)-1])), nil
			default:
				return nil, &lerr.TypeError{Proc: "last", Msg: "expected a list or word, got " + describe(args[0])}
			}
		}),
		operator("butfirst", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				if t.IsEmpty() {
					return nil, &lerr.TypeError{Proc: "butfirst", Msg: "list is empty"}
				}
				return t.Tail, nil
			case value.Word:
				r := []rune(string(t))
				if len(r) == 0 {
					return nil, &lerr.TypeError{Proc: "butfirst", Msg: "word is empty"}
				}
				return value.Word(string(r[1:])), nil
			default:
				return nil, &lerr.TypeError{Proc: "butfirst", Msg: "expected a list or word, got " + describe(args[0])}
			}
		}),
		// butlast on a word drops its last rune (spec.md §9: the
		// original's substr(0,-1) returns empty, the intent is "drop
		// last character").
		operator("butlast", 1, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			switch t := args[0].(type) {
			case *value.List:
				vals := t.Values()
				if len(vals) == 0 {
					return nil, &lerr.TypeError{Proc: "butlast", Msg: "list is empty"}
				}
				return value.FromSlice(vals[:len(vals)-1]), nil
			case value.Word:
				r := []rune(string(t))
				if len(r) == 0 {
					return nil, &lerr.TypeError{Proc: "butlast", Msg: "word is empty"}
				}
				return value.Word(string(r[:len(r)-1])), nil
			default:
				return nil, &lerr.TypeError{Proc: "butlast", Msg: "expected a list or word, got " + describe(args[0])}
			}
		}),
		operator("item", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			n, err := asNumber("item", args[0])
			if err != nil {
				return nil, err
			}
			idx := int(n)
			switch t := args[1].(type) {
			case *value.List:
				vals := t.Values()
				if idx < 1 || idx > len(vals) {
					return nil, &lerr.TypeError{Proc: "item", Msg: "index out of range"}
				}
				return vals[idx-1], nil
			case value.Word:
				r := []rune(string(t))
				if idx < 1 || idx > len(r) {
					return nil, &lerr.TypeError{Proc: "item", Msg: "index out of range"}
				}
				return value.Word(string(r[idx-1])), nil
			default:
				return nil, &lerr.TypeError{Proc: "item", Msg: "expected a list or word, got " + describe(args[1])}
			}
		}),
		operator("remove", 2, func(ev *eval.Evaluator, args []value.Value) (value.Value, error) {
			l, err := asList("remove", args[1])
			if err != nil {
				return nil, err
			}
			return l.Filter(func(v value.Value) bool { return !value.Equal(v, args[0]) }), nil
		}),
	}
}
