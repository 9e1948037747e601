// Package eval implements the recursive-descent evaluator: the mutually
// recursive handlers (handleArg, handleLiteral, handleFixed,
// handleVariadic, handleOperator, handleTo) that walk a parsed program
// list and give it meaning. The parser produces plain data (lists of
// Number/Word/nested *List); every semantic decision — what a bare word
// means, where a literal's sigil goes, how infix operators chain — is
// made here.
package eval

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/parser"
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
)

// Evaluator holds the state shared across one evaluate() invocation and
// everything nested inside it: the two independent scope chains, the
// active activation record, the host's suspension/observer surface, a
// call-depth circuit breaker, and the source map used to resolve nodes
// back to spans for observers.
type Evaluator struct {
	procScope *scope.Scope[Proc]
	vars      *scope.Scope[value.Value]
	ctx       *scope.Context
	control   Control

	depth    int
	maxDepth int

	sm     parser.SourceMap
	logger *slog.Logger
}

// New constructs an Evaluator. control may be nil (a no-op stand-in,
// useful in tests that don't exercise pause/break/observers); maxDepth
// <= 0 defaults to 10000; logger nil defaults to slog.Default().
func New(procScope *scope.Scope[Proc], vars *scope.Scope[value.Value], ctx *scope.Context, control Control, maxDepth int, sm parser.SourceMap, logger *slog.Logger) *Evaluator {
	if control == nil {
		control = noopControl{}
	}
	if maxDepth <= 0 {
		maxDepth = 10000
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{procScope: procScope, vars: vars, ctx: ctx, control: control, maxDepth: maxDepth, sm: sm, logger: logger}
}

// Vars exposes the current variable scope to builtins implementing
// `thing`/`make`/`local`/`global`/`push`.
func (ev *Evaluator) Vars() *scope.Scope[value.Value] { return ev.vars }

// SetVars replaces the current variable scope, for a builtin that
// evaluates a sub-body under a scope of its own without going through a
// full Procedure call. The control builtins (`repeat`, `forever`, `if`,
// `ifelse`) do not call it: they evaluate in the caller's scope.
func (ev *Evaluator) SetVars(s *scope.Scope[value.Value]) { ev.vars = s }

// ProcScope exposes the procedure scope for builtins that need to look
// up or install callables (templates resolved by name).
func (ev *Evaluator) ProcScope() *scope.Scope[Proc] { return ev.procScope }

// Ctx exposes the active activation record to `stop`/`output`/`run`.
func (ev *Evaluator) Ctx() *scope.Context { return ev.ctx }

// SourceMap exposes the parse-time source map to builtins/observers
// that resolve a node back to its source span.
func (ev *Evaluator) SourceMap() parser.SourceMap { return ev.sm }

// Print forwards s to the host's onprint observer, if any.
func (ev *Evaluator) Print(s string) { ev.control.OnPrint(s) }

// Sleep blocks for d (the `wait` builtin's delay), returning early with
// a break error if the host cancels first.
func (ev *Evaluator) Sleep(d time.Duration) error { return ev.control.Sleep(d) }

// CheckBreak reports a pending cancellation without waiting for the
// next performCall — used by builtins with their own internal loops
// (e.g. `repeat`, `forever`) to stay responsive to break between
// iterations.
func (ev *Evaluator) CheckBreak() error { return ev.control.CheckBreak() }

// Evaluate walks body to completion following the `evaluate(body)`
// contract of spec.md §4.4 and returns its final value, if any.
func (ev *Evaluator) Evaluate(body *value.List) (value.Value, bool, error) {
	w := &walker{ev: ev, cur: body}
	return w.run()
}

// walker is the mutable cursor a single evaluate() pass advances through
// body. It is recreated per Evaluate call but shares the Evaluator's
// scopes/context, exactly as the handlers in spec.md §4.4 describe a
// single shared `iter` threaded through the mutually recursive handlers.
type walker struct {
	ev  *Evaluator
	cur *value.List

	// suppress is set only while handleAndOr walks an and/or argument
	// that can no longer affect the result: the cursor still has to
	// advance past it token-by-token, but nothing it calls may actually
	// run. performCall and handleLiteral's variable lookup both check
	// it and stand in a harmless value instead of doing real work.
	suppress bool
}

func (w *walker) advance() {
	if !w.cur.IsEmpty() {
		w.cur = w.cur.Tail
	}
}

func (w *walker) run() (value.Value, bool, error) {
	var result value.Value
	hasResult := false
	statements := 0
	for {
		if hasResult && !w.cur.IsEmpty() {
			return nil, false, &lerr.SyntaxError{Msg: "extra instructions after value"}
		}
		if w.ev.ctx.Stop {
			return w.ev.ctx.Output, w.ev.ctx.HasOutput, nil
		}
		if w.cur.IsEmpty() {
			return result, hasResult, nil
		}
		if word, ok := w.cur.Head.(value.Word); ok && string(word) == "to" {
			if err := w.handleTo(); err != nil {
				return nil, false, err
			}
			hasResult = false
			statements++
			continue
		}
		// A bare literal can't follow a completed statement: a Logo
		// program is a sequence of commands, and a literal sitting
		// where the next command is expected has nowhere to go
		// (spec.md §8 scenario 6: "print 3 -4" lexes as two adjacent
		// number literals with no joining operator, which must be
		// rejected here rather than silently discarded). The very
		// first statement of a run() is exempt: a body consisting of
		// one bare expression is exactly how template bodies and
		// `run`/`runresult` report their result.
		if statements > 0 && isLiteralHead(w.cur) {
			return nil, false, &lerr.SyntaxError{Msg: "a value cannot be used as a statement on its own"}
		}
		v, has, err := w.handleArg(0)
		if err != nil {
			return nil, false, err
		}
		result, hasResult = v, has
		statements++
	}
}

func isQuotedWord(s string) bool   { return strings.HasPrefix(s, `"`) }
func isVariableWord(s string) bool { return strings.HasPrefix(s, ":") }
func isBareWord(s string) bool {
	return !isQuotedWord(s) && !isVariableWord(s) && !isOperatorText(s) && s != "(" && s != ")"
}

// isLiteralHead reports whether n's head is one of the literal classes
// handleLiteral accepts: a list, a number, a quoted word, or a
// variable reference. It does not match "(" (a variadic call head) or
// a bare word (a procedure call head), since both of those can stand
// on their own as a statement.
func isLiteralHead(n *value.List) bool {
	if n.IsEmpty() {
		return false
	}
	switch t := n.Head.(type) {
	case *value.List, value.Number:
		return true
	case value.Word:
		return isQuotedWord(string(t)) || isVariableWord(string(t))
	default:
		return false
	}
}

// handleArg parses one expression at or above precedence prio,
// including any infix tail (spec.md §4.4 "handleArg").
func (w *walker) handleArg(prio int) (value.Value, bool, error) {
	v, has, err := w.parsePrimary(prio)
	if err != nil || !has {
		return v, has, err
	}
	v, err = w.handleOperator(v, prio)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// parsePrimary dispatches on the current token without consuming any
// trailing infix operator — the part of handleArg's contract before "if
// the next token is an operator, delegate handleOperator".
func (w *walker) parsePrimary(prio int) (value.Value, bool, error) {
	if w.cur.IsEmpty() {
		return nil, false, &lerr.SyntaxError{Msg: "expected an expression, found end of input"}
	}
	switch h := w.cur.Head.(type) {
	case *value.List:
		return w.handleLiteral()
	case value.Number:
		return w.handleLiteral()
	case value.Word:
		s := string(h)
		switch {
		case s == "(":
			return w.handleVariadic()
		case isQuotedWord(s), isVariableWord(s):
			return w.handleLiteral()
		case s == "-":
			return w.handleUnaryMinus(prio)
		case isOperatorText(s):
			return nil, false, &lerr.SyntaxError{Msg: "unexpected operator \"" + s + "\""}
		case s == ")":
			return nil, false, &lerr.SyntaxError{Msg: "unexpected \")\""}
		default:
			return w.handleFixed()
		}
	default:
		return nil, false, &lerr.TypeError{Msg: "unrecognized value in program"}
	}
}

// handleUnaryMinus implements spec.md §4.4's "unary minus" rule: a `-`
// where an expression is expected negates the single primary that
// follows, binding tighter than any infix chain.
func (w *walker) handleUnaryMinus(prio int) (value.Value, bool, error) {
	w.advance() // consume '-'
	operand, has, err := w.parsePrimary(prio)
	if err != nil {
		return nil, false, err
	}
	if !has {
		return nil, false, &lerr.SyntaxError{Msg: "unary \"-\" requires an operand"}
	}
	v, err := applyUnaryMinus(operand)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// handleLiteral consumes the current cursor and returns the literal
// value it denotes (spec.md §4.4 "handleLiteral").
func (w *walker) handleLiteral() (value.Value, bool, error) {
	head := w.cur.Head
	w.advance()
	switch h := head.(type) {
	case *value.List:
		return h, true, nil
	case value.Number:
		return h, true, nil
	case value.Word:
		s := string(h)
		switch {
		case isQuotedWord(s):
			return value.Word(s[1:]), true, nil
		case isVariableWord(s):
			name := s[1:]
			v, ok := w.ev.vars.Get(name)
			if !ok {
				if w.suppress {
					return value.Bool(false), true, nil
				}
				return nil, false, &lerr.UnboundError{Kind: "variable", Name: name}
			}
			return v, true, nil
		default:
			return nil, false, &lerr.SyntaxError{Msg: "invalid token \"" + s + "\" in literal position"}
		}
	default:
		return nil, false, &lerr.TypeError{Msg: "invalid literal"}
	}
}

// handleFixed treats the current cursor's head as a procedure name,
// collects its declared arity's worth of arguments, and invokes it
// (spec.md §4.4 "handleFixed").
func (w *walker) handleFixed() (value.Value, bool, error) {
	node := w.cur
	name := string(node.Head.(value.Word))
	proc, ok := w.ev.procScope.Get(name)
	if !ok {
		return nil, false, &lerr.UnboundError{Kind: "procedure", Name: name}
	}
	w.advance()

	if name == "and" || name == "or" {
		return w.handleAndOr(proc, name, node, proc.Params(), false)
	}

	arity := proc.Params()
	args := make([]value.Value, 0, arity)
	for len(args) < arity {
		v, has, err := w.handleArg(0)
		if err != nil {
			return nil, false, err
		}
		if !has {
			return nil, false, &lerr.SyntaxError{Msg: "\"" + name + "\" expected an expression but got a command with no value"}
		}
		args = append(args, v)
	}
	return w.performCall(proc, args, node)
}

// handleAndOr gives `and`/`or` the true short-circuiting spec.md §4.7
// requires ("`and`/`or` short-circuit on the first falsy/truthy
// argument"), something handleFixed's/handleVariadic's generic
// argument-collection loop can't do: that loop always evaluates every
// positional argument before the builtin it's collecting for ever runs.
// handleAndOr instead decides the result as soon as a determining
// argument is seen, and walks any arguments after that under
// suppression — still consuming their tokens, so the cursor ends up in
// the right place, but never calling anything they reference. minArgs
// is the declared arity (both are arity 2); variadic continues
// consuming up to the closing ")" instead of stopping at minArgs.
func (w *walker) handleAndOr(proc Proc, name string, node *value.List, minArgs int, variadic bool) (value.Value, bool, error) {
	isOr := name == "or"
	determined := false
	var args []value.Value

	for i := 0; ; i++ {
		if variadic {
			if w.cur.IsEmpty() {
				return nil, false, &lerr.SyntaxError{Msg: "unexpected end of input: unbalanced \"(\""}
			}
			if rw, ok := headWord(w.cur); ok && rw == ")" {
				if i < minArgs {
					return nil, false, &lerr.SyntaxError{Msg: "too few arguments to \"" + name + "\""}
				}
				w.advance()
				break
			}
		} else if i >= minArgs {
			break
		}

		prevSuppress := w.suppress
		if determined {
			w.suppress = true
		}
		v, has, err := w.handleArg(0)
		w.suppress = prevSuppress
		if err != nil {
			return nil, false, err
		}
		if !has {
			return nil, false, &lerr.SyntaxError{Msg: "\"" + name + "\" expected an expression but got a command with no value"}
		}
		if !determined {
			b, ok := value.IsTruthy(v)
			if !ok {
				return nil, false, &lerr.TypeError{Proc: name, Msg: "expected true/false, got a non-boolean value"}
			}
			args = append(args, v)
			if b == isOr {
				determined = true
			}
		}
	}
	return w.performCall(proc, args, node)
}

// handleVariadic implements the "( … )" form (spec.md §4.4
// "handleVariadic"): optionally a procedure name applied to every
// argument up to the matching ")", or else exactly one expression.
func (w *walker) handleVariadic() (value.Value, bool, error) {
	w.advance() // consume '('

	if word, ok := headWord(w.cur); ok && isBareWord(word) {
		if proc, found := w.ev.procScope.Get(word); found {
			node := w.cur
			w.advance()
			if word == "and" || word == "or" {
				return w.handleAndOr(proc, word, node, proc.Params(), true)
			}
			var args []value.Value
			for {
				if w.cur.IsEmpty() {
					return nil, false, &lerr.SyntaxError{Msg: "unexpected end of input: unbalanced \"(\""}
				}
				if rw, ok := headWord(w.cur); ok && rw == ")" {
					w.advance()
					break
				}
				v, has, err := w.handleArg(0)
				if err != nil {
					return nil, false, err
				}
				if !has {
					return nil, false, &lerr.SyntaxError{Msg: "expected an expression inside \"( )\""}
				}
				args = append(args, v)
			}
			if len(args) < proc.Params() {
				return nil, false, &lerr.SyntaxError{Msg: "too few arguments to \"" + word + "\""}
			}
			return w.performCall(proc, args, node)
		}
	}

	v, has, err := w.handleArg(0)
	if err != nil {
		return nil, false, err
	}
	if w.cur.IsEmpty() {
		return nil, false, &lerr.SyntaxError{Msg: "unexpected end of input: unbalanced \"(\""}
	}
	if rw, ok := headWord(w.cur); !ok || rw != ")" {
		return nil, false, &lerr.SyntaxError{Msg: "expected \")\""}
	}
	w.advance()
	return v, has, nil
}

func headWord(l *value.List) (string, bool) {
	if l.IsEmpty() {
		return "", false
	}
	w, ok := l.Head.(value.Word)
	return string(w), ok
}

// handleOperator is operator-precedence climbing (spec.md §4.4
// "handleOperator"): it consumes a chain of infix operators whose
// priority is at least oldPrio, applying left-to-right within one
// priority level and recursing one level higher for a tighter-binding
// operator that follows.
func (w *walker) handleOperator(left value.Value, oldPrio int) (value.Value, error) {
	for {
		opText, ok := headWord(w.cur)
		if !ok {
			return left, nil
		}
		p, isOp := precedence[opText]
		if !isOp || p < oldPrio {
			return left, nil
		}
		node := w.cur
		w.advance()
		right, has, err := w.handleArg(p + 1)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, &lerr.SyntaxError{Msg: "operator \"" + opText + "\" expects a right-hand operand"}
		}

		// Operators are dispatched through the procedure scope when the
		// embedder has registered a builtin under the operator's own
		// name (spec.md §4.7 lists "+ - * /" as builtins too), so
		// observer hooks see operator application the same way they see
		// any other call. Falling back to the built-in numeric table
		// keeps bare evaluation working with no procedure scope wired
		// at all.
		var result value.Value
		if proc, ok := w.ev.procScope.Get(opText); ok {
			result, _, err = w.performCall(proc, []value.Value{left, right}, node)
		} else {
			result, err = applyOperator(opText, left, right)
		}
		if err != nil {
			return nil, err
		}
		left = result
	}
}

// handleTo reads a `to NAME :arg … <body> end` definition starting
// after (and including consuming) the "to" keyword, and installs the
// resulting Procedure in the procedure scope (spec.md §4.4 "handleTo").
func (w *walker) handleTo() error {
	w.advance() // consume 'to'
	if w.cur.IsEmpty() {
		return &lerr.SyntaxError{Msg: "expected a procedure name after \"to\""}
	}
	nameWord, ok := w.cur.Head.(value.Word)
	if !ok || !isBareWord(string(nameWord)) {
		return &lerr.SyntaxError{Msg: "expected a procedure name after \"to\""}
	}
	name := string(nameWord)
	w.advance()

	var params []string
	for {
		if w.cur.IsEmpty() {
			return &lerr.SyntaxError{Msg: "unexpected end of input: unterminated \"to " + name + "\""}
		}
		word, ok := w.cur.Head.(value.Word)
		if !ok || !isVariableWord(string(word)) {
			break
		}
		params = append(params, string(word)[1:])
		w.advance()
	}

	var b value.ListBuilder
	for {
		if w.cur.IsEmpty() {
			return &lerr.SyntaxError{Msg: "unexpected end of input: unterminated \"to " + name + "\""}
		}
		if word, ok := w.cur.Head.(value.Word); ok && string(word) == "end" {
			w.advance()
			break
		}
		src := w.cur
		node := b.Push(src.Head)
		if w.ev.sm != nil {
			if span, ok := w.ev.sm[src]; ok {
				w.ev.sm[node] = span
			}
		}
		w.advance()
	}

	proc := &Procedure{Name: name, Params_: params, Body: b.List()}
	if _, exists := w.ev.procScope.Get(name); exists {
		w.ev.logger.Warn("procedure redefined", "name", name)
	}
	w.ev.procScope.BindValue(name, proc)
	return nil
}

// performCall is the evaluator's single suspension point (spec.md §5
// "performCall"): it checks for a pending break, notifies oncall, bumps
// the recursion-depth breaker, invokes the procedure, and notifies
// onvalue if it produced one.
func (w *walker) performCall(proc Proc, args []value.Value, node *value.List) (value.Value, bool, error) {
	if w.suppress {
		return value.Bool(false), true, nil
	}
	return w.ev.callProc(proc, args, node)
}

// callProc is the shared call path behind performCall and template
// invocation: check-break, oncall, recursion-depth guard, the call
// itself, then onvalue. node may be nil when there is no source
// position to report (e.g. a template invoked from a builtin).
func (ev *Evaluator) callProc(proc Proc, args []value.Value, node *value.List) (value.Value, bool, error) {
	if err := ev.control.CheckBreak(); err != nil {
		return nil, false, err
	}
	ev.control.OnCall(proc, args, bodyOf(proc), node)

	if ev.depth >= ev.maxDepth {
		return nil, false, &lerr.TypeError{Msg: "maximum call depth exceeded"}
	}
	ev.depth++
	result, has, err := ev.safeCall(proc, args)
	ev.depth--
	if err != nil {
		return nil, false, err
	}
	if has {
		ev.control.OnValue(result, bodyOf(proc), node)
	}
	return result, has, nil
}

// safeCall invokes proc.Call behind a recover(): a panic inside a
// builtin, or inside a third-party helper it leans on (samber/lo,
// spf13/cast) given unexpected input, is logged and surfaced as a
// *lerr.TypeError instead of taking down the whole Execute goroutine.
func (ev *Evaluator) safeCall(proc Proc, args []value.Value) (result value.Value, has bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ev.logger.Warn("builtin panic recovered", "proc", procName(proc), "panic", r)
			err = &lerr.TypeError{Proc: procName(proc), Msg: fmt.Sprintf("internal error: %v", r)}
		}
	}()
	return proc.Call(ev, args)
}

// procName resolves a best-effort name for a Proc for logging/error
// messages: user-defined procedures know their own name; builtins and
// templates have none the eval package can see, so they fall back to
// their Go type.
func procName(proc Proc) string {
	if p, ok := proc.(*Procedure); ok {
		return p.Name
	}
	return fmt.Sprintf("%T", proc)
}

func bodyOf(proc Proc) *value.List {
	if p, ok := proc.(*Procedure); ok {
		return p.Body
	}
	return nil
}
