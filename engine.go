package engine

import (
	"fmt"
	"io"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/parser"
	"go.uber.org/zap"
)

// builtinPrototypes collects the well-known prototype objects set up once
// per VM, scoped per-VM instead of per-process so two Engine runs never
// share mutable prototype state.
type builtinPrototypes struct {
	Object   *Object
	Function *Object
	Array    *Object
	String   *Object
	Number   *Object
	Boolean  *Object
	Date     *Object
	RegExp   *Object
	Error    *Object

	ErrorCtors map[string]*Object // TypeError, RangeError, ReferenceError, SyntaxError, EvalError, URIError
}

// Engine is the embeddable entry point: one Engine per independent
// analysis configuration, producing a fresh VM (and therefore fresh global
// object) per Run call so repeated analyses of different files never leak
// global state into each other.
type Engine struct {
	config Config
	logger *zap.Logger
}

// NewEngine constructs an Engine from a Config assembled by the driver.
// logger may be nil, in which case diagnostics are collected but not
// emitted to any zap sink.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if cfg.MaxCycles == 0 {
		cfg.MaxCycles = 1 << 20
	}
	if cfg.Blacklist == nil {
		cfg.Blacklist = DefaultBlacklist()
	}
	return &Engine{config: cfg, logger: logger}
}

// Run parses src as filename and evaluates it as an ES5.1 Program (ES5.1
// §14), returning the diagnostic reports collected along the way. A parse
// error is returned directly; an uncaught runtime (analysis-time)
// exception aborts the run and is returned. Exceptions raised through the
// engine's Throw* helpers are also recorded as diagnostics when they are
// created; a value thrown by a program `throw` statement is not.
func (e *Engine) Run(src io.Reader, filename string) ([]Report, error) {
	program, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	vm := e.newVM()
	vm.emitEnteredFile(filename)

	strict := e.config.StrictGlobal || programIsStrict(program)
	checkProgram(vm, program.Body, strict)

	globalCtx := &ExecutionContext{
		LexicalEnvironment:  vm.GlobalEnv,
		VariableEnvironment: vm.GlobalEnv,
		ThisBinding:         vm.GlobalObject,
		Strict:              strict,
	}
	vm.PushContext(globalCtx)
	defer vm.PopContext()

	if err := instantiateDeclarationBindings(vm, program.Body, nil, nil, strict); err != nil {
		return vm.Reports(), err
	}

	for _, stmt := range program.Body {
		if _, err := evalStatement(vm, stmt); err != nil {
			if _, isReturn := err.(*ReturnCompletion); isReturn {
				continue
			}
			return vm.Reports(), err
		}
	}
	return vm.Reports(), nil
}

func programIsStrict(p *ast.Program) bool {
	for _, stmt := range p.Body {
		exprStmt, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			break
		}
		lit, ok := exprStmt.Expression.(*ast.StringLiteral)
		if !ok {
			break
		}
		if lit.Literal == `"use strict"` || lit.Literal == `'use strict'` {
			return true
		}
	}
	return false
}

// newVM allocates a fresh global object/environment and wires up the
// built-in library.
func (e *Engine) newVM() *VM {
	vm := &VM{
		Config:      e.config,
		diagnostics: newDiagnosticsSink(e.logger),
	}
	setupGlobals(vm)
	return vm
}

// newErrorObject builds an Error/TypeError/.../instance with message set,
// the single chokepoint every Throw* helper goes through. The script-visible
// error constructors build their instances in builtins_error.go instead.
func (vm *VM) newErrorObject(class, message string) *Object {
	proto := vm.Prototypes.Error
	if ctor, ok := vm.Prototypes.ErrorCtors[class]; ok {
		if protoVal, _ := ctor.Get(vm, PropName("prototype")); protoVal != nil {
			if p, ok := protoVal.(*Object); ok {
				proto = p
			}
		}
	}
	obj := NewObject(proto)
	obj.ClassName = "Error"
	obj.setOwn(PropName("message"), dataDescriptor(String(message), true, false, true))
	obj.setOwn(PropName("name"), dataDescriptor(String(class), true, false, true))
	return obj
}

func (vm *VM) newBooleanWrapper(b Boolean) *Object {
	obj := NewObject(vm.Prototypes.Boolean)
	obj.ClassName = "Boolean"
	obj.Prim = b
	return obj
}

func (vm *VM) newNumberWrapper(n Number) *Object {
	obj := NewObject(vm.Prototypes.Number)
	obj.ClassName = "Number"
	obj.Prim = n
	return obj
}

func (vm *VM) newStringWrapper(s String) *Object {
	obj := NewObject(vm.Prototypes.String)
	obj.ClassName = "String"
	obj.Prim = s
	return obj
}

// Invoke implements [[Call]] for both native and AST-backed function
// objects. Native functions always run for real -- they model a built-in's
// semantics directly rather than deriving them from an AST body, so there's
// nothing to gain by declining them. An AST-backed closure instead consults
// the engine's invoke policy: when the engine declines to invoke (see
// shouldDeclineInvoke), the call yields Unknown immediately but its body
// still runs once in skipped mode, so an analyzer watching for API
// references still observes what the call would have touched.
func (o *Object) Invoke(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
	if !o.IsCallable() {
		return nil, vm.ThrowTypeError("value is not a function")
	}
	fn := o.Function
	if fn.Native != nil {
		return fn.Native(vm, this, args, flags)
	}
	if vm.shouldDeclineInvoke(flags) {
		vm.ProcessInSkippedMode("decline-invoke:"+fn.Name, func() error {
			_, err := invokeClosure(vm, o, this, args, flags)
			return err
		})
		return vm.MakeUnknown(), nil
	}
	return invokeClosure(vm, o, this, args, flags)
}

// DoNew implements [[Construct]] (ES5.1 §13.2.2): allocate a fresh object
// linked to Fn's `prototype`, invoke Fn with IsNew set, and substitute the
// allocated object for a non-object return value.
func DoNew(vm *VM, fn *Object, args []JSValue) (JSValue, error) {
	if !fn.IsCallable() {
		return nil, vm.ThrowTypeError("value is not a constructor")
	}
	protoVal, err := fn.Get(vm, PropName("prototype"))
	if err != nil {
		return nil, err
	}
	proto, _ := protoVal.(*Object)
	if proto == nil {
		proto = vm.Prototypes.Object
	}
	obj := NewObject(proto)
	obj.creationEnv = vm.CurrentLexicalEnvironment()

	result, err := fn.Invoke(vm, obj, args, FunctionFlags{IsNew: true})
	if err != nil {
		return nil, err
	}
	if resObj, ok := result.(*Object); ok {
		return resObj, nil
	}
	return obj, nil
}

// DefaultBlacklist returns the default set of fully-qualified native call
// names ProcessInSkippedMode refuses to dry-run, since some natives have
// externally visible effects even under speculative execution. Callers may
// override it entirely via Config.Blacklist, and the driver
// (cmd/titanium-analyze) reads a user-editable replacement from
// $HOME/.titanium-analyze-blacklist.json, falling back to this set.
func DefaultBlacklist() map[string]bool {
	return map[string]bool{
		"Math.random": true,
	}
}
