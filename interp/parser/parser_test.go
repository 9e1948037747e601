package parser

import (
	"testing"

	"github.com/loturtle/logocore/interp/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlatAtoms(t *testing.T) {
	l, _, err := Parse("print 1 + 2")
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Word("print"), value.Number(1), value.Word("+"), value.Number(2)}, l.Values())
}

func TestParseNestedList(t *testing.T) {
	l, _, err := Parse("print [a b c]")
	require.NoError(t, err)
	vals := l.Values()
	require.Len(t, vals, 2)
	sub, ok := vals[1].(*value.List)
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Word("a"), value.Word("b"), value.Word("c")}, sub.Values())
}

func TestParseQuotedAndVariableKeepSigils(t *testing.T) {
	l, _, err := Parse(`make "n :m`)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Word("make"), value.Word(`"n`), value.Word(":m")}, l.Values())
}

func TestParseUnbalancedBracketFails(t *testing.T) {
	_, _, err := Parse("print [a b")
	assert.Error(t, err)
}

func TestParseUnexpectedCloseBracketFails(t *testing.T) {
	_, _, err := Parse("print a]")
	assert.Error(t, err)
}

func TestParseLosslessStringification(t *testing.T) {
	src := "print [a [b c] d]"
	l, _, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "[print [a [b c] d]]", l.String())
}

func TestSourceMapCoversEveryAtom(t *testing.T) {
	l, sm, err := Parse("print 1")
	require.NoError(t, err)
	for cur := l; !cur.IsEmpty(); cur = cur.Tail {
		span, ok := sm[cur]
		require.True(t, ok)
		assert.NotEmpty(t, span.Text)
	}
}

func TestSourceMapCoversNestedList(t *testing.T) {
	l, sm, err := Parse("repeat 4 [ forward 10 ]")
	require.NoError(t, err)
	// the bracket span is keyed on the cons cell that holds the nested
	// list, not on the nested list's own first cell.
	cell := l.Tail.Tail
	require.IsType(t, &value.List{}, cell.Head)
	span, ok := sm[cell]
	require.True(t, ok)
	assert.Equal(t, "[ forward 10 ]", span.Text)
}
