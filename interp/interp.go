// Package interp assembles the parser, evaluator, scopes, and builtin
// registry from its subpackages into one embeddable facade:
// Interpreter. It owns the cooperative suspension machinery (pause,
// continue, break) and the observer hooks an embedder registers to
// watch a program run, mirroring the role the teacher interpreter's own
// top-level Interpreter type plays over its scanner/cfg/run stages.
package interp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/loturtle/logocore/interp/builtin"
	"github.com/loturtle/logocore/interp/eval"
	"github.com/loturtle/logocore/interp/lerr"
	"github.com/loturtle/logocore/interp/parser"
	"github.com/loturtle/logocore/interp/scope"
	"github.com/loturtle/logocore/interp/value"
)

// Options configures a New Interpreter.
type Options struct {
	// Stdout is where the default onprint sink writes if the embedder
	// never registers its own via OnPrint. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxCallDepth bounds procedure-call recursion depth (a circuit
	// breaker for untrusted Logo source; see DESIGN.md). Defaults to
	// 10000.
	MaxCallDepth int
	// Logger receives internal diagnostic logging (procedure
	// redefinition, recovered builtin panics). Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Interpreter is a single-threaded, re-entry-guarded Logo execution
// context: one procedure scope, one global variable scope, and the
// pause/continue/break state for whatever program is currently running
// in Execute.
type Interpreter struct {
	procScope *scope.Scope[eval.Proc]
	vars      *scope.Scope[value.Value]
	opts      Options

	mu       sync.Mutex
	running  bool
	paused   bool
	cancel   context.CancelFunc
	doneCh   <-chan struct{}
	resumeCh chan struct{}
	sm       parser.SourceMap

	onCall     func(fn eval.Proc, args []value.Value, body *value.List, node parser.Node)
	onValue    func(v value.Value, body *value.List, node parser.Node)
	onPrint    func(s string)
	onBreak    func(reason error)
	onContinue func()
}

// New returns an Interpreter with the core builtin registry already
// installed into its procedure scope. Embedder-specific collaborators
// (turtle graphics, host I/O) are the caller's job to install via
// ProcedureScope().BindValue, per spec's "core ships no
// embedder-specific builtins" stance.
func New(opts Options) *Interpreter {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.MaxCallDepth == 0 {
		opts.MaxCallDepth = 10000
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ps := scope.New[eval.Proc](nil)
	builtin.Install(ps)

	return &Interpreter{
		procScope: ps,
		vars:      scope.New[value.Value](nil),
		opts:      opts,
		resumeCh:  make(chan struct{}, 1),
	}
}

// ProcedureScope returns the root procedure scope, for an embedder to
// install additional builtins (turtle commands, host I/O) before the
// first Execute.
func (ip *Interpreter) ProcedureScope() *scope.Scope[eval.Proc] { return ip.procScope }

// GlobalScope returns the root variable scope.
func (ip *Interpreter) GlobalScope() *scope.Scope[value.Value] { return ip.vars }

// OnCall registers the hook fired immediately before every procedure
// invocation, fixed or variadic, operator or template. Overwrites any
// previously registered hook.
func (ip *Interpreter) OnCall(f func(fn eval.Proc, args []value.Value, body *value.List, node parser.Node)) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.onCall = f
}

// OnValue registers the hook fired after a call that produced a value.
func (ip *Interpreter) OnValue(f func(v value.Value, body *value.List, node parser.Node)) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.onValue = f
}

// OnPrint registers the hook fired by `print`/`show`. If none is
// registered, Execute writes to Options.Stdout instead.
func (ip *Interpreter) OnPrint(f func(s string)) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.onPrint = f
}

// OnBreak registers the hook Execute invokes, with the *lerr.BreakError
// it is about to return, once a cancelled program's evaluation goroutine
// has exited. Break itself does not invoke it; an in-flight `wait`
// aborts through Sleep's own cancellation check instead.
func (ip *Interpreter) OnBreak(f func(reason error)) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.onBreak = f
}

// OnContinue registers the hook invoked when a paused program resumes.
func (ip *Interpreter) OnContinue(f func()) {
	ip.mu.Lock()
	defer ip.mu.Unlock()
	ip.onContinue = f
}

// Parse tokenizes and structures source without executing it.
func (ip *Interpreter) Parse(source string) (*value.List, parser.SourceMap, error) {
	return parser.Parse(source)
}

// SourceForNode resolves a node handle from an OnCall/OnValue hook back
// to the span of source text that produced it, using the source map
// built by the most recent Execute call. Parse does not store the map it
// returns, so nodes from a Parse-only call do not resolve here.
func (ip *Interpreter) SourceForNode(n parser.Node) (parser.Span, bool) {
	ip.mu.Lock()
	sm := ip.sm
	ip.mu.Unlock()
	if sm == nil {
		return parser.Span{}, false
	}
	span, ok := sm[n]
	return span, ok
}

// Execute parses and evaluates source against the Interpreter's
// persistent global scope. It fails with *lerr.AlreadyRunningError if
// called while another Execute on the same Interpreter is still in
// flight, and with *lerr.BreakError if ctx is cancelled or Break is
// called before evaluation finishes. running, the pause flag, and any
// parked continuation are always cleared before Execute returns, even
// on error — partial side effects (prints already emitted, embedder
// state already mutated) are never rolled back.
func (ip *Interpreter) Execute(ctx context.Context, source string) error {
	ip.mu.Lock()
	if ip.running {
		ip.mu.Unlock()
		return &lerr.AlreadyRunningError{}
	}
	runCtx, cancel := context.WithCancel(ctx)
	ip.running = true
	ip.paused = false
	ip.cancel = cancel
	ip.doneCh = runCtx.Done()
	drain(ip.resumeCh)
	ip.mu.Unlock()

	defer func() {
		ip.mu.Lock()
		ip.running = false
		ip.paused = false
		ip.cancel = nil
		ip.doneCh = nil
		drain(ip.resumeCh)
		ip.mu.Unlock()
		cancel()
	}()

	body, sm, err := parser.Parse(source)
	if err != nil {
		return err
	}
	ip.mu.Lock()
	ip.sm = sm
	ip.mu.Unlock()

	ev := eval.New(ip.procScope, ip.vars, scope.NewGlobalContext(), control{ip}, ip.opts.MaxCallDepth, sm, ip.opts.Logger)

	done := make(chan struct{})
	var evalErr error
	go func() {
		defer close(done)
		_, _, evalErr = ev.Evaluate(body)
	}()

	select {
	case <-done:
	case <-runCtx.Done():
		// Wait for the evaluation goroutine to actually observe the
		// cancellation at its next CheckBreak/Sleep and exit, so the
		// running guard is never cleared while it's still touching the
		// shared scopes.
		<-done
	}
	if runCtx.Err() != nil {
		reason := &lerr.BreakError{}
		ip.mu.Lock()
		onBreak := ip.onBreak
		ip.mu.Unlock()
		if onBreak != nil {
			onBreak(reason)
		}
		return reason
	}
	return evalErr
}

func drain(ch chan struct{}) {
	select {
	case <-ch:
	default:
	}
}

// Pause requests that the running program park at its next suspension
// point (the next CheckBreak, called from every procedure invocation
// and every repeat/forever iteration).
func (ip *Interpreter) Pause() {
	ip.mu.Lock()
	ip.paused = true
	ip.mu.Unlock()
}

// Continue resumes a paused program and fires OnContinue.
func (ip *Interpreter) Continue() {
	ip.mu.Lock()
	was := ip.paused
	ip.paused = false
	resumeCh := ip.resumeCh
	onContinue := ip.onContinue
	ip.mu.Unlock()
	if was {
		select {
		case resumeCh <- struct{}{}:
		default:
		}
		if onContinue != nil {
			onContinue()
		}
	}
}

// Break cancels the running program: an in-flight `wait` returns at
// once and the next CheckBreak fails. The OnBreak hook is not called
// here; Execute calls it after evaluation has stopped. Calling Break while paused also resumes the parked computation, so
// the break error actually gets thrown on the next suspension check
// rather than staying parked forever.
func (ip *Interpreter) Break() {
	ip.mu.Lock()
	cancel := ip.cancel
	wasPaused := ip.paused
	ip.paused = false
	resumeCh := ip.resumeCh
	ip.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if wasPaused {
		select {
		case resumeCh <- struct{}{}:
		default:
		}
	}
}

// control adapts an *Interpreter to eval.Control. It exists as a
// separate type, rather than implementing the interface directly on
// *Interpreter, because the public facade's OnCall/OnValue/OnPrint are
// registration setters (spec.md §6's Go surface sketch) and would
// otherwise collide with eval.Control's same-named invocation hooks.
type control struct{ ip *Interpreter }

// CheckBreak is the single suspension point every procedure call and
// every repeat/forever iteration passes through: a non-blocking check
// for cancellation, then — if paused — a blocking wait for Continue or
// Break, whichever comes first.
func (c control) CheckBreak() error {
	ip := c.ip
	ip.mu.Lock()
	doneCh := ip.doneCh
	paused := ip.paused
	resumeCh := ip.resumeCh
	ip.mu.Unlock()

	select {
	case <-doneCh:
		return &lerr.BreakError{}
	default:
	}
	if !paused {
		return nil
	}
	select {
	case <-doneCh:
		return &lerr.BreakError{}
	case <-resumeCh:
		return nil
	}
}

func (c control) OnCall(fn eval.Proc, args []value.Value, body *value.List, node eval.Node) {
	c.ip.mu.Lock()
	hook := c.ip.onCall
	c.ip.mu.Unlock()
	if hook != nil {
		hook(fn, args, body, node)
	}
}

func (c control) OnValue(v value.Value, body *value.List, node eval.Node) {
	c.ip.mu.Lock()
	hook := c.ip.onValue
	c.ip.mu.Unlock()
	if hook != nil {
		hook(v, body, node)
	}
}

// OnPrint forwards to the registered embedder hook, or writes a
// newline-terminated line to Options.Stdout if none is registered.
func (c control) OnPrint(s string) {
	c.ip.mu.Lock()
	hook := c.ip.onPrint
	stdout := c.ip.opts.Stdout
	c.ip.mu.Unlock()
	if hook != nil {
		hook(s)
		return
	}
	io.WriteString(stdout, s+"\n")
}

// Sleep backs `wait`: it delays for d but returns *lerr.BreakError early
// if the program is cancelled mid-sleep rather than blocking the whole
// delay out.
func (c control) Sleep(d time.Duration) error {
	c.ip.mu.Lock()
	doneCh := c.ip.doneCh
	c.ip.mu.Unlock()
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-doneCh:
		return &lerr.BreakError{}
	case <-t.C:
		return nil
	}
}
