package engine

import "github.com/robertkrimen/otto/ast"

// evalStatement dispatches one AST statement node, implementing ES5.1
// §12's per-statement-kind evaluation rules. It returns a non-nil error
// either as a Completion (Return/Break/Continue/Throw, all handled by
// enclosing constructs) or a genuine Go error (parse/fatal bug).
func evalStatement(vm *VM, stmt ast.Statement) (JSValue, error) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		return evalBlock(vm, s.List)

	case *ast.ExpressionStatement:
		v, err := evalExpression(vm, s.Expression)
		if err != nil {
			return nil, err
		}
		return GetValue(vm, v)

	case *ast.VariableStatement:
		for _, item := range s.List {
			switch item.(type) {
			case *ast.AssignExpression, *ast.VariableExpression:
				if _, err := evalExpression(vm, item); err != nil {
					return nil, err
				}
			}
		}
		return Undefined{}, nil

	case *ast.EmptyStatement:
		return Undefined{}, nil

	case *ast.IfStatement:
		return evalIfStatement(vm, s)

	case *ast.ForStatement:
		return evalForStatement(vm, s)

	case *ast.ForInStatement:
		return evalForInStatement(vm, s)

	case *ast.WhileStatement:
		return evalWhileStatement(vm, s)

	case *ast.DoWhileStatement:
		return evalDoWhileStatement(vm, s)

	case *ast.BranchStatement:
		return evalBranchStatement(vm, s)

	case *ast.ReturnStatement:
		var v JSValue = Undefined{}
		if s.Argument != nil {
			rv, err := evalExpression(vm, s.Argument)
			if err != nil {
				return nil, err
			}
			rv, err = GetValue(vm, rv)
			if err != nil {
				return nil, err
			}
			v = rv
		}
		return nil, &ReturnCompletion{Value: v}

	case *ast.ThrowStatement:
		v, err := evalExpression(vm, s.Argument)
		if err != nil {
			return nil, err
		}
		v, err = GetValue(vm, v)
		if err != nil {
			return nil, err
		}
		return nil, &ThrowCompletion{Value: v}

	case *ast.TryStatement:
		return evalTryStatement(vm, s)

	case *ast.SwitchStatement:
		return evalSwitchStatement(vm, s)

	case *ast.LabelledStatement:
		return evalLabelledStatement(vm, s)

	case *ast.WithStatement:
		return evalWithStatement(vm, s)

	case *ast.FunctionStatement:
		// already bound by instantiateDeclarationBindings; re-executing is a
		// no-op, matching ES5.1 §12's treatment of FunctionDeclaration as
		// producing an empty completion when reached as a statement.
		return Undefined{}, nil

	case *ast.DebuggerStatement:
		return Undefined{}, nil

	default:
		return nil, newFatalError("unsupported statement node %T", stmt)
	}
}

// evalBlock evaluates a statement list in order. If a statement yields a
// non-normal completion (return/break/continue/throw), the remaining
// statements are not evaluated for real, but they're still run once in
// skipped mode so an analyzer watching for API references sees the code
// that would have run after the early exit.
func evalBlock(vm *VM, list []ast.Statement) (JSValue, error) {
	var result JSValue = Undefined{}
	for i, inner := range list {
		v, err := evalStatement(vm, inner)
		if err != nil {
			if _, isCompletion := err.(Completion); isCompletion {
				if remainder := list[i+1:]; len(remainder) > 0 {
					vm.ProcessInSkippedMode("block-remainder", func() error {
						_, rerr := evalBlock(vm, remainder)
						return rerr
					})
				}
			}
			return nil, err
		}
		if v != nil {
			result = v
		}
	}
	return result, nil
}

func evalIfStatement(vm *VM, s *ast.IfStatement) (JSValue, error) {
	cond, err := evalExpression(vm, s.Test)
	if err != nil {
		return nil, err
	}
	cond, err = GetValue(vm, cond)
	if err != nil {
		return nil, err
	}
	b := ToBoolean(vm, cond)

	if _, isUnknown := b.(Unknown); isUnknown {
		// ambiguous mode: evaluate both arms, since the analysis can't
		// prove which one runs, rather than picking one arbitrarily.
		vm.EnterAmbiguousBlock()
		defer vm.ExitAmbiguousBlock()
		if _, err := evalStatement(vm, s.Consequent); err != nil {
			return nil, err
		}
		if s.Alternate != nil {
			if _, err := evalStatement(vm, s.Alternate); err != nil {
				return nil, err
			}
		}
		return Undefined{}, nil
	}

	if MustBoolean(b) {
		return evalStatement(vm, s.Consequent)
	}
	if s.Alternate != nil {
		return evalStatement(vm, s.Alternate)
	}
	return Undefined{}, nil
}

// loopGuard enforces Config.MaxCycles against runaway static evaluation of
// a loop whose termination condition the engine cannot prove.
type loopGuard struct {
	max   int
	count int
}

func newLoopGuard(vm *VM) *loopGuard { return &loopGuard{max: vm.Config.MaxCycles} }

func (g *loopGuard) tick() bool {
	g.count++
	return g.count <= g.max
}

func evalWhileStatement(vm *VM, s *ast.WhileStatement) (JSValue, error) {
	guard := newLoopGuard(vm)
	for guard.tick() {
		cond, err := evalExpression(vm, s.Test)
		if err != nil {
			return nil, err
		}
		cond, err = GetValue(vm, cond)
		if err != nil {
			return nil, err
		}
		b := ToBoolean(vm, cond)
		if _, unknown := b.(Unknown); unknown {
			vm.EnterAmbiguousBlock()
			_, err := evalStatement(vm, s.Body)
			vm.ExitAmbiguousBlock()
			if err != nil && !isLoopControl(err, "") {
				return nil, err
			}
			break
		}
		if !MustBoolean(b) {
			break
		}
		if err := runLoopBody(vm, s.Body, ""); err != nil {
			if stop, e := handleLoopCompletion(err, ""); stop {
				return nil, e
			}
		}
	}
	return Undefined{}, nil
}

func evalDoWhileStatement(vm *VM, s *ast.DoWhileStatement) (JSValue, error) {
	guard := newLoopGuard(vm)
	for {
		if err := runLoopBody(vm, s.Body, ""); err != nil {
			if stop, e := handleLoopCompletion(err, ""); stop {
				return nil, e
			}
		}
		if !guard.tick() {
			break
		}
		cond, err := evalExpression(vm, s.Test)
		if err != nil {
			return nil, err
		}
		cond, err = GetValue(vm, cond)
		if err != nil {
			return nil, err
		}
		b := ToBoolean(vm, cond)
		if _, unknown := b.(Unknown); unknown {
			break
		}
		if !MustBoolean(b) {
			break
		}
	}
	return Undefined{}, nil
}

func evalForStatement(vm *VM, s *ast.ForStatement) (JSValue, error) {
	if s.Initializer != nil {
		if _, err := evalExpression(vm, s.Initializer); err != nil {
			return nil, err
		}
	}
	guard := newLoopGuard(vm)
	for guard.tick() {
		if s.Test != nil {
			cond, err := evalExpression(vm, s.Test)
			if err != nil {
				return nil, err
			}
			cond, err = GetValue(vm, cond)
			if err != nil {
				return nil, err
			}
			b := ToBoolean(vm, cond)
			if _, unknown := b.(Unknown); unknown {
				vm.EnterAmbiguousBlock()
				_, err := evalStatement(vm, s.Body)
				vm.ExitAmbiguousBlock()
				if err != nil {
					if stop, e := handleLoopCompletion(err, ""); stop {
						return nil, e
					}
				}
				break
			}
			if !MustBoolean(b) {
				break
			}
		}
		if err := runLoopBody(vm, s.Body, ""); err != nil {
			if stop, e := handleLoopCompletion(err, ""); stop {
				return nil, e
			}
		}
		if s.Update != nil {
			if _, err := evalExpression(vm, s.Update); err != nil {
				return nil, err
			}
		}
	}
	return Undefined{}, nil
}

func evalForInStatement(vm *VM, s *ast.ForInStatement) (JSValue, error) {
	src, err := evalExpression(vm, s.Source)
	if err != nil {
		return nil, err
	}
	src, err = GetValue(vm, src)
	if err != nil {
		return nil, err
	}
	switch src.(type) {
	case Undefined, Null:
		return Undefined{}, nil
	case Unknown:
		vm.EnterAmbiguousBlock()
		defer vm.ExitAmbiguousBlock()
		_, err := evalStatement(vm, s.Body)
		return Undefined{}, err
	}
	obj, err := ToObject(vm, src)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return Undefined{}, nil
	}

	visited := make(map[Name]bool)
	guard := newLoopGuard(vm)
	for cur := obj; cur != nil; cur = cur.Prototype {
		for _, name := range cur.OwnPropertyNames() {
			if visited[name] {
				continue
			}
			visited[name] = true
			d := cur.GetOwnProperty(name)
			if d == nil || !d.Enumerable {
				continue
			}
			if !guard.tick() {
				return Undefined{}, nil
			}
			if err := bindForInTarget(vm, s.Into, name); err != nil {
				return nil, err
			}
			if err := runLoopBody(vm, s.Body, ""); err != nil {
				if stop, e := handleLoopCompletion(err, ""); stop {
					return nil, e
				}
			}
		}
		if cur.Prototype == cur {
			break
		}
	}
	return Undefined{}, nil
}

func bindForInTarget(vm *VM, into ast.ForInto, name Name) error {
	switch t := into.(type) {
	case *ast.ForIntoVar:
		ref, err := GetIdentifierReference(vm, vm.CurrentLexicalEnvironment(), PropName(t.Variable.Name), vm.IsStrict())
		if err != nil {
			return err
		}
		return PutValue(vm, ref, String(name.String()))
	case *ast.ForIntoExpression:
		ref, err := evalExpression(vm, t.Expression)
		if err != nil {
			return err
		}
		return PutValue(vm, ref, String(name.String()))
	}
	return nil
}

// runLoopBody executes a loop's body statement, translating a bare
// ContinueCompletion targeting no label (or this loop's own label) into a
// normal return so the caller's for/while loop continues iterating.
func runLoopBody(vm *VM, body ast.Statement, label string) error {
	_, err := evalStatement(vm, body)
	return err
}

// handleLoopCompletion inspects a Completion produced by a loop body and
// decides whether the enclosing loop should stop (propagating e, possibly
// nil for a plain break) or has already been absorbed (continue).
func handleLoopCompletion(err error, label string) (stop bool, propagate error) {
	switch c := err.(type) {
	case *ContinueCompletion:
		if c.Label == "" || c.Label == label {
			return false, nil
		}
		return true, err
	case *BreakCompletion:
		if c.Label == "" || c.Label == label {
			return true, nil
		}
		return true, err
	default:
		return true, err
	}
}

func isLoopControl(err error, label string) bool {
	switch c := err.(type) {
	case *ContinueCompletion:
		return c.Label == "" || c.Label == label
	case *BreakCompletion:
		return c.Label == "" || c.Label == label
	}
	return false
}

func evalBranchStatement(vm *VM, s *ast.BranchStatement) (JSValue, error) {
	label := ""
	if s.Label != nil {
		label = s.Label.Name
	}
	if s.Token.String() == "continue" {
		return nil, &ContinueCompletion{Label: label}
	}
	return nil, &BreakCompletion{Label: label}
}

func evalTryStatement(vm *VM, s *ast.TryStatement) (JSValue, error) {
	ctx := vm.top()
	ctx.inTryCatch++
	_, err := evalStatement(vm, s.Body)
	ctx.inTryCatch--

	if tc, ok := err.(*ThrowCompletion); ok && s.Catch != nil {
		catchEnv := NewDeclarativeEnvironment(ctx.LexicalEnvironment)
		catchEnv.Record.(*DeclarativeEnvironmentRecord).CreateMutableBinding(vm, PropName(s.Catch.Parameter.Name), false)
		catchEnv.Record.SetMutableBinding(vm, PropName(s.Catch.Parameter.Name), tc.Value, false)

		savedEnv := ctx.LexicalEnvironment
		ctx.LexicalEnvironment = catchEnv
		_, err = evalStatement(vm, s.Catch.Body)
		ctx.LexicalEnvironment = savedEnv
	}

	if s.Finally != nil {
		_, finallyErr := evalStatement(vm, s.Finally)
		if finallyErr != nil {
			return nil, finallyErr
		}
	}
	return Undefined{}, err
}

func evalSwitchStatement(vm *VM, s *ast.SwitchStatement) (JSValue, error) {
	disc, err := evalExpression(vm, s.Discriminant)
	if err != nil {
		return nil, err
	}
	disc, err = GetValue(vm, disc)
	if err != nil {
		return nil, err
	}

	matched := -1
	defaultIdx := -1
	for i, c := range s.Body {
		if c.Test == nil {
			defaultIdx = i
			continue
		}
		tv, err := evalExpression(vm, c.Test)
		if err != nil {
			return nil, err
		}
		tv, err = GetValue(vm, tv)
		if err != nil {
			return nil, err
		}
		if eq := StrictEquals(disc, tv); MustBoolean(eq) {
			matched = i
			break
		}
	}
	if matched == -1 {
		matched = defaultIdx
	}
	if matched == -1 {
		return Undefined{}, nil
	}
	for i := matched; i < len(s.Body); i++ {
		for _, inner := range s.Body[i].Consequent {
			if _, err := evalStatement(vm, inner); err != nil {
				if stop, e := handleLoopCompletion(err, ""); stop {
					if _, isBreak := err.(*BreakCompletion); isBreak && e == nil {
						return Undefined{}, nil
					}
					return nil, e
				}
			}
		}
	}
	return Undefined{}, nil
}

func evalLabelledStatement(vm *VM, s *ast.LabelledStatement) (JSValue, error) {
	v, err := evalStatement(vm, s.Statement)
	if err != nil {
		if stop, e := handleLoopCompletion(err, s.Label.Name); stop && e == nil {
			return Undefined{}, nil
		} else if e != nil {
			return nil, e
		}
	}
	return v, nil
}

func evalWithStatement(vm *VM, s *ast.WithStatement) (JSValue, error) {
	obj, err := evalExpression(vm, s.Object)
	if err != nil {
		return nil, err
	}
	obj, err = GetValue(vm, obj)
	if err != nil {
		return nil, err
	}
	baseObj, err := ToObject(vm, obj)
	if err != nil {
		return nil, err
	}
	if baseObj == nil {
		vm.EnterAmbiguousBlock()
		defer vm.ExitAmbiguousBlock()
		return evalStatement(vm, s.Body)
	}

	ctx := vm.top()
	withEnv := NewObjectEnvironment(baseObj, ctx.LexicalEnvironment, true)
	saved := ctx.LexicalEnvironment
	ctx.LexicalEnvironment = withEnv
	v, err := evalStatement(vm, s.Body)
	ctx.LexicalEnvironment = saved
	return v, err
}

// makeClosure builds a function Object from an AST function literal/
// declaration, capturing the current lexical environment as both its
// invocation closure and its creation closure (value.go's creationEnv).
func makeClosure(vm *VM, lit *ast.FunctionLiteral) *Object {
	params := make([]string, len(lit.ParameterList.List))
	for i, p := range lit.ParameterList.List {
		params[i] = p.Name
	}
	fn := NewObject(vm.Prototypes.Function)
	fn.ClassName = "Function"
	fn.creationEnv = vm.CurrentLexicalEnvironment()
	name := ""
	if lit.Name != nil {
		name = lit.Name.Name
	}
	fn.Function = &FunctionData{
		ParamNames: params,
		Body:       bodyOf(lit),
		Closure:    vm.CurrentLexicalEnvironment(),
		Name:       name,
		IsStrict:   vm.IsStrict() || literalIsStrict(lit),
	}
	fn.setOwn(PropName("length"), dataDescriptor(Number(len(params)), false, false, false))
	proto := NewObject(vm.Prototypes.Object)
	proto.setOwn(PropName("constructor"), dataDescriptor(fn, true, false, true))
	fn.setOwn(PropName("prototype"), dataDescriptor(proto, true, false, false))
	fn.setOwn(PropName("name"), dataDescriptor(String(name), false, false, true))
	return fn
}

func bodyOf(lit *ast.FunctionLiteral) Statement {
	return &ast.BlockStatement{List: lit.Body.(*ast.BlockStatement).List}
}

func literalIsStrict(lit *ast.FunctionLiteral) bool {
	block, ok := lit.Body.(*ast.BlockStatement)
	if !ok {
		return false
	}
	return programIsStrict(&ast.Program{Body: block.List})
}

// invokeClosure implements calling an AST-backed function object: push a
// new execution context, run declaration binding instantiation over the
// formal parameters and hoisted declarations, evaluate the body, and
// translate a ReturnCompletion into a plain value.
func invokeClosure(vm *VM, fnObj *Object, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
	if vm.Config.MaxRecursionLimit > 0 && vm.callDepth >= vm.Config.MaxRecursionLimit {
		return nil, vm.ThrowRangeError("maximum call stack size exceeded")
	}
	vm.callDepth++
	defer func() { vm.callDepth-- }()

	fn := fnObj.Function
	thisBinding := this
	if !fn.IsStrict {
		switch this.(type) {
		case Undefined, Null, nil:
			thisBinding = vm.GlobalObject
		default:
			if _, isObj := this.(*Object); !isObj {
				if boxed, err := ToObject(vm, this); err == nil && boxed != nil {
					thisBinding = boxed
				}
			}
		}
	}

	funcEnv := NewDeclarativeEnvironment(fn.Closure)
	ctx := &ExecutionContext{
		LexicalEnvironment:  funcEnv,
		VariableEnvironment: funcEnv,
		ThisBinding:         thisBinding,
		Strict:              fn.IsStrict,
		IsFunctionContext:   true,
	}
	vm.PushContext(ctx)
	defer vm.PopContext()

	block, ok := fn.Body.(*ast.BlockStatement)
	var bodyList []ast.Statement
	if ok {
		bodyList = block.List
	}
	if err := instantiateDeclarationBindings(vm, bodyList, fn.ParamNames, args, fn.IsStrict); err != nil {
		return nil, err
	}

	_, err := evalBlock(vm, bodyList)
	if err == nil {
		return Undefined{}, nil
	}
	if rc, ok := err.(*ReturnCompletion); ok {
		if _, isUnknown := rc.Value.(Unknown); isUnknown {
			fn.ReturnUnknown = true
		}
		return rc.Value, nil
	}
	return nil, err
}
