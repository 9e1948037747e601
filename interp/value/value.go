// Package value implements the Logo value universe: numbers, booleans,
// words, and lists. The universe is a small closed tag set, modeled as a
// Go interface with an unexported marker method rather than a class
// hierarchy, matching the "dynamic dispatch on values" design note: a
// language with sum types should use a tagged variant.
package value

import "fmt"

// Value is any Logo runtime value: a Number, a Bool, a Word, or a *List.
type Value interface {
	isValue()
	// String renders the value the way Logo source or `print` would.
	String() string
}

// Number is a double-precision Logo number.
type Number float64

func (Number) isValue() {}

func (n Number) String() string {
	f := float64(n)
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Bool is a Logo boolean, as returned by predicates and comparators.
type Bool bool

func (Bool) isValue() {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Word is a Logo word: a bare, quoted, or constructed string value. In a
// parsed program a Word keeps its leading sigil ("\"" for a quoted
// literal, ":" for a variable reference); the evaluator strips the quote
// or looks the variable up when it turns that token into a runtime value.
type Word string

func (Word) isValue() {}

func (w Word) String() string { return string(w) }

// Equal reports structural equality between two values: numbers and
// booleans compare by value, words compare by text, and lists compare
// recursively head-by-head (see List.Equal).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Word:
		bv, ok := b.(Word)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		return ok && av.Equal(bv)
	default:
		return false
	}
}

// IsTruthy reports whether v counts as "true" in and/or/if/ifelse/while
// style conditions. Only Bool participates; anything else is a type
// error for the caller to raise.
func IsTruthy(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}
