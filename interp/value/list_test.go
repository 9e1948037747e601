package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(ss ...string) []Value {
	out := make([]Value, len(ss))
	for i, s := range ss {
		out[i] = Word(s)
	}
	return out
}

func TestEmptySentinelIdentity(t *testing.T) {
	assert.True(t, Empty.IsEmpty())
	assert.Same(t, Empty, Empty.Tail)
}

func TestListFromSliceRoundTrips(t *testing.T) {
	src := words("a", "b", "c")
	l := FromSlice(src)
	require.Equal(t, 3, l.Count())
	assert.Equal(t, src, l.Values())
}

func TestReverseTwiceIsIdentity(t *testing.T) {
	l := FromSlice(words("a", "b", "c"))
	assert.True(t, l.Reverse().Reverse().Equal(l))
}

func TestReverseOrder(t *testing.T) {
	l := FromSlice(words("a", "b", "c"))
	assert.Equal(t, words("c", "b", "a"), l.Reverse().Values())
}

func TestBuilderPushAttach(t *testing.T) {
	var b ListBuilder
	b.Push(Word("a"))
	b.Push(Word("b"))
	b.Attach(FromSlice(words("c", "d")))
	assert.Equal(t, words("a", "b", "c", "d"), b.List().Values())
}

func TestEqualStructural(t *testing.T) {
	a := FromSlice([]Value{Word("a"), FromSlice(words("b", "c"))})
	b := FromSlice([]Value{Word("a"), FromSlice(words("b", "c"))})
	assert.True(t, a.Equal(b))
}

func TestStringDefaultDelimiters(t *testing.T) {
	l := FromSlice([]Value{Word("a"), FromSlice(words("b", "c")), Word("d")})
	assert.Equal(t, "[a [b c] d]", l.String())
}

func TestStringRecursiveCycle(t *testing.T) {
	// A list that contains itself as an element: stringify must detect
	// the cycle via the explicit visitation stack rather than recursing
	// forever.
	l := New(Word("a"), Empty)
	l.Head = l
	assert.Contains(t, l.String(), "<recursive>")
}

func TestStringRecursiveTailCycle(t *testing.T) {
	l := New(Word("a"), Empty)
	l.Tail = l
	assert.Contains(t, l.String(), "<recursive>")
}

func TestMapFilter(t *testing.T) {
	l := FromSlice([]Value{Number(1), Number(2), Number(3), Number(4)})
	doubled := l.Map(func(v Value) Value { return v.(Number) * 2 })
	assert.Equal(t, []Value{Number(2), Number(4), Number(6), Number(8)}, doubled.Values())

	evens := l.Filter(func(v Value) bool { return int(v.(Number))%2 == 0 })
	assert.Equal(t, []Value{Number(2), Number(4)}, evens.Values())
}
