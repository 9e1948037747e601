package lexer

import (
	"testing"

	"github.com/loturtle/logocore/interp/lerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var out []Token
	for {
		tok, ok, err := l.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}

func TestUnaryVsBinaryMinus(t *testing.T) {
	toks := tokenize(t, "print -3 + 4")
	require.Len(t, toks, 4)
	assert.Equal(t, KindNumber, toks[1].Kind)
	assert.Equal(t, "-3", toks[1].Text)
	assert.Equal(t, KindOperator, toks[2].Kind)
}

func TestBinaryMinusBecomesNumberWhenSpacedAndFollowedByDigit(t *testing.T) {
	toks := tokenize(t, "print 3 -4")
	require.Len(t, toks, 3)
	assert.Equal(t, KindNumber, toks[1].Kind)
	assert.Equal(t, "3", toks[1].Text)
	assert.Equal(t, KindNumber, toks[2].Kind)
	assert.Equal(t, "-4", toks[2].Text)
}

func TestMinusAsOperatorWhenNotFollowedByDigit(t *testing.T) {
	toks := tokenize(t, "3 - 4")
	require.Len(t, toks, 3)
	assert.Equal(t, KindOperator, toks[1].Kind)
	assert.Equal(t, "-", toks[1].Text)
}

func TestQuotedWordKeepsSigil(t *testing.T) {
	toks := tokenize(t, `"hello`)
	require.Len(t, toks, 1)
	assert.Equal(t, KindQuoted, toks[0].Kind)
	assert.Equal(t, `"hello`, toks[0].Text)
}

func TestQuotedOperatorLiteral(t *testing.T) {
	toks := tokenize(t, `"+`)
	require.Len(t, toks, 1)
	assert.Equal(t, KindQuoted, toks[0].Kind)
	assert.Equal(t, `"+`, toks[0].Text)
}

func TestVariableKeepsSigil(t *testing.T) {
	toks := tokenize(t, ":n")
	require.Len(t, toks, 1)
	assert.Equal(t, KindVariable, toks[0].Kind)
	assert.Equal(t, ":n", toks[0].Text)
}

func TestBrackets(t *testing.T) {
	toks := tokenize(t, "[a b c]")
	require.Len(t, toks, 5)
	assert.Equal(t, KindLBracket, toks[0].Kind)
	assert.Equal(t, KindRBracket, toks[4].Kind)
}

func TestCommentStrippedToEndOfLine(t *testing.T) {
	toks := tokenize(t, "print 1 ; this is a comment\nprint 2")
	var texts []string
	for _, tok := range toks {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"print", "1", "print", "2"}, texts)
}

func TestNumberWithFractionAndExponent(t *testing.T) {
	toks := tokenize(t, "1.5e-2 end")
	require.Len(t, toks, 2)
	assert.Equal(t, KindNumber, toks[0].Kind)
	assert.Equal(t, "1.5e-2", toks[0].Text)
}

func TestFractionRequiresDigitAfterDot(t *testing.T) {
	// no digit follows the '.', so "3." is not a complete number and the
	// lexer reports a syntax error rather than splitting it into tokens.
	tok, ok, err := New("3.end").Next()
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, Token{}, tok)
	var syntaxErr *lerr.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestUnbalancedListLexesCleanlyToEOF(t *testing.T) {
	l := New("[a b")
	var lastErr error
	for {
		_, ok, err := l.Next()
		if err != nil {
			lastErr = err
			break
		}
		if !ok {
			break
		}
	}
	// the lexer itself does not track bracket balance (that is the
	// parser's job per spec.md §4.3); this test documents that the
	// token stream ends cleanly and leaves balance-checking to the
	// parser.
	assert.NoError(t, lastErr)
}

func TestBackslashEscape(t *testing.T) {
	toks := tokenize(t, `a\ b`)
	require.Len(t, toks, 1)
	assert.Equal(t, "a b", toks[0].Text)
}
