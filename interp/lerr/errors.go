// Package lerr defines the Logo core's error taxonomy, each a distinct
// type rather than a bare fmt.Errorf string, so embedders can
// errors.As/errors.Is a specific category instead of string-matching a
// message — the same shape as the teacher interpreter's own Panic type,
// which carries structured fields (Value, Callers, Stack) behind a plain
// Error() string rather than just formatting and discarding them.
package lerr

import "fmt"

// Span locates an error in source text. Zero value means "no span
// available" (e.g. a runtime type error raised deep inside a builtin
// that never saw source positions).
type Span struct {
	Text       string
	Start, End int
}

// SyntaxError reports a malformed program: unbalanced brackets,
// unterminated numbers, extra instructions after a value, and so on.
type SyntaxError struct {
	Msg  string
	Span Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.Msg)
}

// UnboundError reports a reference to an undeclared procedure or
// variable.
type UnboundError struct {
	Kind string // "variable" or "procedure"
	Name string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("%s %q is not defined", e.Kind, e.Name)
}

// TypeError reports a builtin argument of the wrong shape or type.
type TypeError struct {
	Proc string
	Msg  string
}

func (e *TypeError) Error() string {
	if e.Proc == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Proc, e.Msg)
}

// BreakError is returned from Execute when the host cancels a running
// program via Interpreter.Break.
type BreakError struct{}

func (e *BreakError) Error() string { return "Break requested" }

// AlreadyRunningError is returned by Execute when called re-entrantly
// on an Interpreter already running a program.
type AlreadyRunningError struct{}

func (e *AlreadyRunningError) Error() string { return "already running" }
