package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// SkippedSectionID correlates a speculative "skipped mode" dry-run pass
// with the alternate-value entries it produced, both internally (the
// counter) and to plugins (the uuid label). A SkippedSectionID of zero
// value means "not in skipped mode".
type SkippedSectionID struct {
	seq uint64
	tag uuid.UUID
}

func (id SkippedSectionID) String() string {
	return fmt.Sprintf("skip-%d-%s", id.seq, id.tag)
}

// Config is the caller-supplied, load-once configuration for an Engine run.
// It is a plain struct populated by the driver (cmd/titanium-analyze) via
// viper/cobra before NewEngine is called; the core never reads environment
// variables, flags, or files itself.
type Config struct {
	// ExactMode disables Unknown entirely: every operation that would have
	// produced Unknown instead panics (MakeUnknown's invariant), used by
	// callers who already know the input program has no indeterminacy (e.g.
	// the test262 conformance harness). ExactMode also forces every
	// recoverable native exception to a real throw, since a substituted
	// Unknown result would itself violate the no-Unknown invariant.
	ExactMode bool

	// InvokeMethods governs whether Object.Invoke actually executes a
	// called function's body. When false, a call yields Unknown
	// immediately, but the body still runs once in skipped mode so
	// analyzers observing property references still see the API surface
	// the call would have touched. Per-call call sites may override this
	// with their own invoke/decline decision; see Object.Invoke.
	InvokeMethods bool

	// NativeExceptionRecovery, when true, turns a recoverable native
	// exception (one raised via throwNamedError/Throw*Error, not a program
	// `throw`) into a reported diagnostic plus an Unknown substituted for
	// the result, rather than aborting the run — unless ExactMode is set or
	// the throw occurs inside a try/catch, either of which takes priority.
	NativeExceptionRecovery bool

	// MaxRecursionLimit bounds closure-call depth; invokeClosure counts
	// active AST-backed calls against it and throws a RangeError once
	// exceeded, the same way a real engine's C stack would overflow.
	// Zero means unbounded.
	MaxRecursionLimit int

	// MaxCycles bounds loop iteration counts during static evaluation,
	// guarding against runaway `while(true)` analysis.
	MaxCycles int

	// Blacklist lists fully-qualified native call names
	// (e.g. "Array.prototype.forEach") that ProcessInSkippedMode should
	// refuse to dry-run, since some natives have externally visible side
	// effects even under speculative execution. NewEngine replaces a nil
	// Blacklist with engine.go's DefaultBlacklist().
	Blacklist map[string]bool

	StrictGlobal bool
}

// ExecutionContext implements ES5.1 §10.3: the lexical/variable
// environment pair, `this` binding, and strict flag active at one point in
// the call stack, plus the engine's own ambiguous-mode nesting counter.
type ExecutionContext struct {
	LexicalEnvironment  *LexicalEnvironment
	VariableEnvironment *LexicalEnvironment
	ThisBinding         JSValue
	Strict              bool
	IsFunctionContext   bool

	// ambiguousBlock counts how many nested ambiguous-mode blocks (branches
	// gated on an Unknown condition) are currently open in this context; see
	// EnterAmbiguousBlock/ExitAmbiguousBlock.
	ambiguousBlock int

	// inTryCatch counts nested try/catch frames, used by exceptions.go to
	// decide whether a thrown error is catchable here or must propagate as
	// a fatal program exception.
	inTryCatch int

	labels []string
}

func (ctx *ExecutionContext) InAmbiguousMode() bool { return ctx.ambiguousBlock > 0 }

// VM is the root of one analysis run: global object/environment, the
// execution-context stack, skipped-mode state, configuration, diagnostics
// sink, and plugin registry. One VM corresponds to one Engine.Run call (see
// engine.go); it is not safe for concurrent use from multiple goroutines —
// callers running several analyses concurrently should use one VM per
// goroutine.
type VM struct {
	Config Config

	GlobalObject *Object
	GlobalEnv    *LexicalEnvironment

	contexts []*ExecutionContext

	// skippedStack supports nested ProcessInSkippedMode calls; only the top
	// entry is "current" for definePrimary/SetMutableBinding purposes.
	skippedStack   []SkippedSectionID
	skippedCounter uint64

	// callDepth counts active AST-backed closure invocations, checked
	// against Config.MaxRecursionLimit by invokeClosure.
	callDepth int

	Prototypes builtinPrototypes

	diagnostics *diagnosticsSink
	plugins     []Plugin
	overrides   *overrideTable
	poisonPill  *Object
}

func (vm *VM) top() *ExecutionContext {
	return vm.contexts[len(vm.contexts)-1]
}

// PushContext implements entering a new execution context (ES5.1 §10.4).
func (vm *VM) PushContext(ctx *ExecutionContext) {
	vm.contexts = append(vm.contexts, ctx)
}

// PopContext implements leaving an execution context.
func (vm *VM) PopContext() {
	vm.contexts = vm.contexts[:len(vm.contexts)-1]
}

func (vm *VM) CurrentLexicalEnvironment() *LexicalEnvironment {
	return vm.top().LexicalEnvironment
}

func (vm *VM) CurrentThis() JSValue {
	return vm.top().ThisBinding
}

func (vm *VM) IsStrict() bool {
	return vm.top().Strict
}

// EnterAmbiguousBlock is called by the rule processor before evaluating a
// branch whose guard condition evaluated to Unknown, so nested diagnostics
// know they're under a condition the analysis couldn't resolve.
func (vm *VM) EnterAmbiguousBlock() {
	vm.top().ambiguousBlock++
}

// ExitAmbiguousBlock restores the previous nesting level. It is the
// caller's responsibility (rules_stmt.go) to call this via defer so the
// counter is restored even if the branch throws.
func (vm *VM) ExitAmbiguousBlock() {
	vm.top().ambiguousBlock--
}

func (vm *VM) InAmbiguousMode() bool {
	return vm.top().InAmbiguousMode()
}

// currentSkippedSection reports the active skipped-section id, if any.
func (vm *VM) currentSkippedSection() (SkippedSectionID, bool) {
	if len(vm.skippedStack) == 0 {
		return SkippedSectionID{}, false
	}
	return vm.skippedStack[len(vm.skippedStack)-1], true
}

func (vm *VM) InSkippedMode() bool {
	return len(vm.skippedStack) > 0
}

// ProcessInSkippedMode runs fn as a speculative dry run: writes it performs
// are diverted to alternate-value maps rather than primary storage, and any
// error it returns is swallowed rather than propagated, except when name
// matches the configured blacklist, in which case fn is not run at all and
// ran is false.
func (vm *VM) ProcessInSkippedMode(name string, fn func() error) (ran bool) {
	if vm.Config.Blacklist != nil && vm.Config.Blacklist[name] {
		return false
	}
	section := SkippedSectionID{seq: vm.skippedCounter, tag: uuid.New()}
	vm.skippedCounter++
	vm.skippedStack = append(vm.skippedStack, section)
	defer func() {
		vm.skippedStack = vm.skippedStack[:len(vm.skippedStack)-1]
		_ = recover() // a panicking native must not abort the enclosing analysis
	}()
	_ = fn()
	return true
}

// ThrowTypeError constructs and returns a TypeError per ES5.1 §15.11.6.5,
// routed through the single throwNamedError chokepoint so every thrown error
// gets a consistent stack-less message object and a diagnostic emission.
func (vm *VM) ThrowTypeError(format string, args ...any) error {
	return vm.throwNamedError("TypeError", format, args...)
}

func (vm *VM) ThrowReferenceError(format string, args ...any) error {
	return vm.throwNamedError("ReferenceError", format, args...)
}

func (vm *VM) ThrowRangeError(format string, args ...any) error {
	return vm.throwNamedError("RangeError", format, args...)
}

func (vm *VM) ThrowSyntaxError(format string, args ...any) error {
	return vm.throwNamedError("SyntaxError", format, args...)
}

func (vm *VM) throwNamedError(kind, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	errObj := vm.newErrorObject(kind, msg)
	vm.emitErrorReported(kind, msg)
	return &ThrowCompletion{Value: errObj, Recoverable: true}
}

// shouldDeclineInvoke reports whether Invoke should skip actually running an
// AST-backed closure's body and substitute Unknown instead. ExactMode and a
// per-call AlwaysInvoke override both force real execution: ExactMode can
// never produce Unknown, and AlwaysInvoke says this particular call site
// needs the real value back.
func (vm *VM) shouldDeclineInvoke(flags FunctionFlags) bool {
	if vm.Config.ExactMode || flags.AlwaysInvoke {
		return false
	}
	return !vm.Config.InvokeMethods
}

// shouldRecoverException reports whether a recoverable ThrowCompletion
// reaching the current point should be swallowed (diagnostic + Unknown)
// rather than propagated as a real throw: NativeExceptionRecovery must be
// on, ExactMode must be off, and there must be no enclosing try/catch in
// the current execution context, since a try/catch always gets first
// chance at catching what the program itself could observe.
func (vm *VM) shouldRecoverException() bool {
	if !vm.Config.NativeExceptionRecovery || vm.Config.ExactMode {
		return false
	}
	if len(vm.contexts) == 0 {
		return false
	}
	return vm.top().inTryCatch == 0
}
