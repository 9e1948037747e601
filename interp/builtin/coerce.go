package builtin

import (
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
	"github.com/spf13/cast"
)

// toWordText coerces v to its word/print text. Numbers and words render
// via their own String(); anything else goes through spf13/cast against
// the underlying Go primitive, matching 4.7a's coercion note.
func toWordText(proc string, v value.Value) (string, error) {
	switch t := v.(type) {
	case value.Word:
		return string(t), nil
	case value.Number:
		return t.String(), nil
	case value.Bool:
		return t.String(), nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", &lerr.TypeError{Proc: proc, Msg: "cannot coerce " + describe(v) + " to a word"}
		}
		return s, nil
	}
}

func asList(proc string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, &lerr.TypeError{Proc: proc, Msg: "expected a list, got " + describe(v)}
	}
	return l, nil
}

func asNumber(proc string, v value.Value) (float64, error) {
	n, err := eval.ToNumber(v)
	if err != nil {
		return 0, &lerr.TypeError{Proc: proc, Msg: err.Error()}
	}
	return n, nil
}

func describe(v value.Value) string {
	switch v.(type) {
	case *value.List:
		return "a list"
	case value.Bool:
		return "a boolean"
	case value.Word:
		return "a word"
	case value.Number:
		return "a number"
	default:
		return "a value"
	}
}
