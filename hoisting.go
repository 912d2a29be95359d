package engine

import "github.com/robertkrimen/otto/ast"

// instantiateDeclarationBindings implements ES5.1 §10.5's declaration
// binding instantiation: bind formal parameters, the `arguments` object,
// every function declaration (hoisted, initialized immediately), and every
// var declaration (hoisted, left Undefined unless already bound), following
// ES5.1's exact ordered algorithm so redeclaration conflicts follow its
// rules (a non-configurable existing binding that a function declaration
// would overwrite is a TypeError, ES5.1 §10.5 step 5e).
func instantiateDeclarationBindings(vm *VM, body []ast.Statement, paramNames []string, args []JSValue, strict bool) error {
	ctx := vm.top()
	env := ctx.VariableEnvironment.Record

	for i, name := range paramNames {
		n := PropName(name)
		var v JSValue = Undefined{}
		if i < len(args) {
			v = args[i]
		}
		if !env.HasBinding(vm, n) {
			if err := env.CreateMutableBinding(vm, n, false); err != nil {
				return err
			}
		}
		if err := env.SetMutableBinding(vm, n, v, false); err != nil {
			return err
		}
	}

	if ctx.IsFunctionContext {
		argsObj := newArgumentsObject(vm, paramNames, args, strict)
		argName := PropName("arguments")
		if !env.HasBinding(vm, argName) {
			if err := env.CreateMutableBinding(vm, argName, false); err != nil {
				return err
			}
			if err := env.SetMutableBinding(vm, argName, argsObj, false); err != nil {
				return err
			}
		}
	}

	for _, fn := range collectFunctionDeclarations(body) {
		fnName := PropName(fn.Function.Name.Name)
		fnObj := makeClosure(vm, fn.Function)
		existing := objectEnvHasOwn(env, fnName)
		if existing != nil && !existing.Configurable && !(ctx.VariableEnvironment == vm.GlobalEnv && fnName.text == "") {
			if existing.IsAccessorDescriptor() || (!existing.Writable || !existing.Enumerable) {
				return vm.ThrowTypeError("cannot redeclare function '%s'", fnName)
			}
		}
		if !env.HasBinding(vm, fnName) {
			if err := env.CreateMutableBinding(vm, fnName, ctx.VariableEnvironment != vm.GlobalEnv); err != nil {
				return err
			}
		}
		if err := env.SetMutableBinding(vm, fnName, fnObj, false); err != nil {
			return err
		}
	}

	for _, varName := range collectVarNames(body) {
		n := PropName(varName)
		if !env.HasBinding(vm, n) {
			if err := env.CreateMutableBinding(vm, n, ctx.VariableEnvironment != vm.GlobalEnv); err != nil {
				return err
			}
			if err := env.SetMutableBinding(vm, n, Undefined{}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// objectEnvHasOwn returns the own descriptor for name when env is backed by
// an object (global code), or nil for a declarative record (function code,
// where ES5.1's "already has a property" check is vacuous since declarative
// records have no descriptors to inspect).
func objectEnvHasOwn(env EnvironmentRecord, name Name) *PropertyDescriptor {
	objEnv, ok := env.(*ObjectEnvironmentRecord)
	if !ok {
		return nil
	}
	return objEnv.Bindings.GetOwnProperty(name)
}

// collectVarNames walks body recursively (but never descending into a
// nested FunctionStatement/FunctionLiteral's own body) collecting every
// `var` binding name of a VariableStatement or a ForStatement's var
// initializer, per ES5.1 §10.5. The variable of a `for (var k in o)`
// statement is not collected here.
func collectVarNames(body []ast.Statement) []string {
	var names []string
	var walkStmt func(ast.Statement)
	walkExpr := func(ast.Expression) {}

	walkStmt = func(s ast.Statement) {
		switch t := s.(type) {
		case *ast.VariableStatement:
			for _, item := range t.List {
				if id, ok := item.(*ast.Identifier); ok {
					names = append(names, id.Name)
				} else if ve, ok := item.(*ast.VariableExpression); ok {
					names = append(names, ve.Name)
				} else if asn, ok := item.(*ast.AssignExpression); ok {
					if id, ok := asn.Left.(*ast.Identifier); ok {
						names = append(names, id.Name)
					}
				}
			}
		case *ast.BlockStatement:
			for _, inner := range t.List {
				walkStmt(inner)
			}
		case *ast.IfStatement:
			walkStmt(t.Consequent)
			if t.Alternate != nil {
				walkStmt(t.Alternate)
			}
		case *ast.ForStatement:
			if ve, ok := t.Initializer.(*ast.VariableExpression); ok {
				names = append(names, ve.Name)
			} else if seq, ok := t.Initializer.(*ast.SequenceExpression); ok {
				for _, e := range seq.Sequence {
					if ve, ok := e.(*ast.VariableExpression); ok {
						names = append(names, ve.Name)
					}
				}
			}
			walkStmt(t.Body)
		case *ast.ForInStatement:
			walkStmt(t.Body)
		case *ast.WhileStatement:
			walkStmt(t.Body)
		case *ast.DoWhileStatement:
			walkStmt(t.Body)
		case *ast.TryStatement:
			walkStmt(t.Body)
			if t.Catch != nil {
				walkStmt(t.Catch.Body)
			}
			if t.Finally != nil {
				walkStmt(t.Finally)
			}
		case *ast.SwitchStatement:
			for _, c := range t.Body {
				for _, inner := range c.Consequent {
					walkStmt(inner)
				}
			}
		case *ast.LabelledStatement:
			walkStmt(t.Statement)
		case *ast.WithStatement:
			walkStmt(t.Body)
		}
		_ = walkExpr
	}
	for _, s := range body {
		walkStmt(s)
	}
	return names
}

// collectFunctionDeclarations returns every top-level FunctionStatement in
// body: ES5.1 hoists only function declarations that are direct statements
// of the enclosing function/program body, not ones nested inside an if/for
// in ES5 strict interpretation.
func collectFunctionDeclarations(body []ast.Statement) []*ast.FunctionStatement {
	var out []*ast.FunctionStatement
	for _, s := range body {
		if fn, ok := s.(*ast.FunctionStatement); ok {
			out = append(out, fn)
		}
	}
	return out
}
