package scope

import "github.com/loturtle/logocore/interp/value"

// Context is the activation record of one procedure invocation: it
// carries the procedure's return-value slot (Output) and its Stop flag.
// `if`/`repeat`/template bodies reuse the enclosing Context so that
// `stop`/`output` used inside them returns from the surrounding
// procedure rather than from the control-flow construct itself.
type Context struct {
	// Output holds the value passed to `output`, if any.
	Output value.Value
	// HasOutput distinguishes "output was never called" (a command-only
	// procedure) from "output was called with a value" — the zero
	// value.Value interface can't carry that distinction on its own.
	HasOutput bool
	// Stop is set by the `stop`/`output` builtins to unwind the rest of
	// the enclosing body without raising an error.
	Stop bool
	// Global marks the process-wide top-level context. `stop`/`output`
	// used against the global context are errors (spec.md §3): there is
	// no surrounding procedure call for them to return from.
	Global bool
}

// NewContext returns a fresh, unstopped activation record with no
// output set yet.
func NewContext() *Context {
	return &Context{}
}

// NewGlobalContext returns the process-wide top-level context.
func NewGlobalContext() *Context {
	return &Context{Global: true}
}

// SetOutput records v as the procedure's return value and requests
// unwinding of the remaining body, exactly as `stop` does.
func (c *Context) SetOutput(v value.Value) {
	c.Output = v
	c.HasOutput = true
	c.Stop = true
}
