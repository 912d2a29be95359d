package engine

import (
	"fmt"

	"github.com/robertkrimen/otto/ast"
)

// Statement is the subset of otto/ast node types the rule processor
// dispatches on for statement evaluation; aliased rather than redefined so
// rules_stmt.go can switch directly on the concrete *ast.XStatement types
// the parser produces.
type Statement = ast.Statement

// Completion implements the ES5.1 §8.9 Completion specification type. The
// four concrete kinds below cover normal function return, break, continue,
// and throw; a nil Completion (plain nil error) from a statement evaluator
// means "normal completion, no value" (ES5.1 calls this an empty
// completion).
type Completion interface {
	error
	completionMarker()
}

// ReturnCompletion unwinds to the nearest function call boundary carrying
// Value (ES5.1 §12.9).
type ReturnCompletion struct {
	Value JSValue
}

func (*ReturnCompletion) Error() string    { return "return" }
func (*ReturnCompletion) completionMarker() {}

// BreakCompletion unwinds to the nearest enclosing loop/switch (or the
// labelled statement named Label, if non-empty) per ES5.1 §12.8.
type BreakCompletion struct {
	Label string
}

func (b *BreakCompletion) Error() string {
	if b.Label == "" {
		return "break"
	}
	return "break " + b.Label
}
func (*BreakCompletion) completionMarker() {}

// ContinueCompletion unwinds to the top of the nearest enclosing loop (or
// the loop labelled Label) per ES5.1 §12.7.
type ContinueCompletion struct {
	Label string
}

func (c *ContinueCompletion) Error() string {
	if c.Label == "" {
		return "continue"
	}
	return "continue " + c.Label
}
func (*ContinueCompletion) completionMarker() {}

// ThrowCompletion carries a thrown JS value up the Go call stack as an
// error, letting rules_stmt.go's try/catch handling use ordinary Go error
// unwrapping instead of a hand-rolled signal channel.
//
// Recoverable marks exceptions raised by the built-in library itself (via
// throwNamedError) as opposed to a program-level `throw` statement: only
// the former are eligible for native-exception recovery mode, since
// substituting Unknown for a value the program itself decided to throw
// would silently change what the program does.
type ThrowCompletion struct {
	Value       JSValue
	Recoverable bool
}

func (t *ThrowCompletion) Error() string {
	if obj, ok := t.Value.(*Object); ok {
		if msgVal, ok := obj.properties[PropName("message")]; ok {
			if s, ok := msgVal.Value.(String); ok {
				return fmt.Sprintf("%s: %s", obj.ClassName, s)
			}
		}
	}
	return "uncaught exception"
}
func (*ThrowCompletion) completionMarker() {}

// fatalError wraps a Go-level bug (not a JS-level exception) that should
// abort the whole analysis run rather than be catchable by a JS try/catch.
type fatalError struct {
	cause error
}

func (f *fatalError) Error() string { return "fatal: " + f.cause.Error() }
func (f *fatalError) Unwrap() error { return f.cause }

func newFatalError(format string, args ...any) error {
	return &fatalError{cause: fmt.Errorf(format, args...)}
}

// asThrowValue extracts the JS value carried by a ThrowCompletion, or
// synthesizes a generic Error object from any other Go error reaching a
// catch clause (e.g. a fatalError that recovery-mode policy has decided is
// actually catchable here).
func asThrowValue(vm *VM, err error) JSValue {
	if tc, ok := err.(*ThrowCompletion); ok {
		return tc.Value
	}
	return vm.newErrorObject("Error", err.Error())
}
