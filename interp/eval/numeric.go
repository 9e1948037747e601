package eval

import (
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/value"
	"github.com/spf13/cast"
)

// precedence is the infix operator table from spec.md §4.4: `* /` bind
// tighter than `+ -`, which bind tighter than the comparators.
var precedence = map[string]int{
	"*": 10, "/": 10,
	"+": 5, "-": 5,
	"<": 1, ">": 1, "=": 1,
}

func isOperatorText(s string) bool {
	_, ok := precedence[s]
	return ok
}

// ToNumber coerces v to a float64 following the host's coercion rules
// (spec.md §4.7, "arithmetic on non-numbers follows the host's coercion
// rules"): a Number converts directly, a Word or Bool goes through
// spf13/cast against its underlying Go primitive, and a list or a failed
// cast is a type error.
func ToNumber(v value.Value) (float64, error) {
	if n, ok := v.(value.Number); ok {
		return float64(n), nil
	}
	var raw any
	switch t := v.(type) {
	case value.Word:
		raw = string(t)
	case value.Bool:
		raw = bool(t)
	default:
		return 0, &lerr.TypeError{Msg: "expected a number, got " + describe(v)}
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, &lerr.TypeError{Msg: "expected a number, got " + describe(v)}
	}
	return f, nil
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

// applyOperator evaluates one infix application. `< > =` compare
// numerically except `=` also accepts structural equality of
// non-numeric operands (lists, words, booleans).
func applyOperator(op string, left, right value.Value) (value.Value, error) {
	if op == "=" {
		if ln, lok := left.(value.Number); lok {
			if rn, rok := right.(value.Number); rok {
				return value.Bool(ln == rn), nil
			}
		}
		return value.Bool(value.Equal(left, right)), nil
	}

	l, err := ToNumber(left)
	if err != nil {
		return nil, err
	}
	r, err := ToNumber(right)
	if err != nil {
		return nil, err
	}
	switch op {
	case "+":
		return value.Number(l + r), nil
	case "-":
		return value.Number(l - r), nil
	case "*":
		return value.Number(l * r), nil
	case "/":
		if r == 0 {
			return nil, &lerr.TypeError{Msg: "division by zero"}
		}
		return value.Number(l / r), nil
	case "<":
		return value.Bool(l < r), nil
	case ">":
		return value.Bool(l > r), nil
	}
	return nil, &lerr.TypeError{Msg: "unknown operator " + op}
}

// applyUnaryMinus implements spec.md §4.4's "unary minus" rule: a `-`
// found where an expression is expected negates the single operand that
// follows it, as if it were an arity-1 callable.
func applyUnaryMinus(operand value.Value) (value.Value, error) {
	n, err := ToNumber(operand)
	if err != nil {
		return nil, err
	}
	return value.Number(-n), nil
}
