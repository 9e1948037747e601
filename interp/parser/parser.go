// Package parser turns Logo source text into a nested list of tokens,
// tracking a source-position span for every node it produces. The
// parser performs no semantic interpretation: "to"/"end", procedure
// calls, infix operators, and literal sigils are all decided later by
// the evaluator (package eval). This mirrors the teacher interpreter's
// own separation between its scanner/parser stage (which only builds an
// AST) and its cfg/run stage (which assigns meaning to it).
package parser

import (
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/lexer"
	"github.com/loturtle/logocore/interp/value"
)

// Node is an opaque handle to a parsed list node, used by observer hooks
// (oncall/onvalue) and resolved back to a source Span via a SourceMap.
// Concretely it is *value.List, but it is given a distinct exported name
// so embedders never depend on that.
type Node = *value.List

// Span locates a parsed node in the original source text.
type Span = lerr.Span

// SourceMap resolves a parsed node back to the span of source text that
// produced it. It is a plain map keyed by node identity (pointer
// equality) rather than a weak map — Go has no ergonomic weak-map type —
// so callers must let the SourceMap itself go out of scope once a
// program's execution finishes, rather than retaining it on long-lived
// state, to avoid pinning source text in memory after it is no longer
// needed (see spec.md §9, "source map without weak references").
type SourceMap map[Node]Span

// Parse tokenizes and structures src into a single flat list whose items
// are atoms (numbers, quoted words, variables, operators, punctuation,
// bare identifiers) and nested lists, plus a SourceMap covering every
// node produced — including each individual element's own cons cell, not
// just the enclosing list, per spec.md §4.3 ("each recorded token's
// cursor is inserted into the active source map").
func Parse(src string) (*value.List, SourceMap, error) {
	p := &parser{lex: lexer.New(src), src: src, sm: SourceMap{}}
	root, start, end, err := p.parseUntil(false)
	if err != nil {
		return nil, nil, err
	}
	if start >= 0 {
		p.record(root, start, end)
	}
	return root, p.sm, nil
}

type parser struct {
	lex     *lexer.Lexer
	src     string
	sm      SourceMap
	lookTok lexer.Token
	lookOK  bool
	lookErr error
	primed  bool
	lastEnd int // End offset of the most recently consumed token
}

func (p *parser) peek() (lexer.Token, bool, error) {
	if !p.primed {
		p.lookTok, p.lookOK, p.lookErr = p.lex.Next()
		p.primed = true
	}
	return p.lookTok, p.lookOK, p.lookErr
}

func (p *parser) advance() (lexer.Token, bool, error) {
	tok, ok, err := p.peek()
	p.primed = false
	if ok {
		p.lastEnd = tok.End
	}
	return tok, ok, err
}

func (p *parser) record(n Node, start, end int) {
	p.sm[n] = Span{Text: p.src[start:end], Start: start, End: end}
}

// parseUntil parses atoms until end of input (inBracket=false) or a
// closing "]" (inBracket=true, which is consumed). It returns the byte
// offsets spanning the parsed run (start=-1 if it parsed zero atoms) so
// the caller can record a span covering the whole run, including its
// enclosing brackets if any.
func (p *parser) parseUntil(inBracket bool) (list *value.List, start, end int, err error) {
	var b value.ListBuilder
	start = -1
	for {
		tok, ok, perr := p.peek()
		if perr != nil {
			return nil, 0, 0, perr
		}
		if !ok {
			if inBracket {
				return nil, 0, 0, &lerr.SyntaxError{Msg: "unexpected end of input: unbalanced \"[\""}
			}
			break
		}
		if tok.Kind == lexer.KindRBracket {
			if !inBracket {
				return nil, 0, 0, &lerr.SyntaxError{Msg: "unexpected \"]\""}
			}
			p.advance()
			break
		}
		if start < 0 {
			start = tok.Start
		}

		v, aStart, aEnd, perr := p.parseAtom()
		if perr != nil {
			return nil, 0, 0, perr
		}
		node := b.Push(v)
		p.record(node, aStart, aEnd)
		end = aEnd
	}
	return b.List(), start, end, nil
}

// parseAtom consumes and returns exactly one value (a nested list for
// "[", or a scalar atom otherwise) plus the byte span it occupied in
// source, including enclosing brackets for a nested list.
func (p *parser) parseAtom() (value.Value, int, int, error) {
	tok, ok, err := p.peek()
	if err != nil {
		return nil, 0, 0, err
	}
	if !ok {
		return nil, 0, 0, &lerr.SyntaxError{Msg: "unexpected end of input"}
	}

	if tok.Kind == lexer.KindLBracket {
		openStart := tok.Start
		p.advance()
		sub, _, _, err := p.parseUntil(true)
		if err != nil {
			return nil, 0, 0, err
		}
		// the ']' was already consumed inside parseUntil via advance(),
		// which records its end offset on the parser.
		return sub, openStart, p.lastEnd, nil
	}

	p.advance()
	switch tok.Kind {
	case lexer.KindNumber:
		v, err := parseNumberLiteral(tok.Text)
		return v, tok.Start, tok.End, err
	default:
		return value.Word(tok.Text), tok.Start, tok.End, nil
	}
}

func parseNumberLiteral(text string) (value.Value, error) {
	n, err := parseFloat(text)
	if err != nil {
		return nil, &lerr.SyntaxError{Msg: "invalid number literal " + text}
	}
	return value.Number(n), nil
}
