package engine

import (
	"math"

	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/token"
)

// evalExpression dispatches one AST expression node (ES5.1 §11), returning
// either a plain value or a *Reference for node kinds that are themselves
// valid assignment targets (Identifier, DotExpression, BracketExpression),
// matching ES5.1's own Reference-producing grammar productions.
//
// This is also where native-exception recovery mode substitutes a result:
// a recoverable ThrowCompletion bubbling out of evaluating expr is, unless
// exact mode or an enclosing try/catch wants first crack at it, swallowed
// here and replaced with Unknown so the surrounding statement keeps going.
func evalExpression(vm *VM, expr ast.Expression) (JSValue, error) {
	v, err := evalExpressionDispatch(vm, expr)
	if err == nil {
		return v, nil
	}
	if tc, ok := err.(*ThrowCompletion); ok && tc.Recoverable && vm.shouldRecoverException() {
		return vm.MakeUnknown(), nil
	}
	return v, err
}

func evalExpressionDispatch(vm *VM, expr ast.Expression) (JSValue, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return GetIdentifierReference(vm, vm.CurrentLexicalEnvironment(), PropName(e.Name), vm.IsStrict())

	case *ast.NullLiteral:
		return Null{}, nil
	case *ast.BooleanLiteral:
		return Boolean(e.Value), nil
	case *ast.NumberLiteral:
		return numberFromLiteral(e), nil
	case *ast.StringLiteral:
		return String(e.Value), nil
	case *ast.RegExpLiteral:
		return newRegExpLiteral(vm, e), nil

	case *ast.ThisExpression:
		return vm.CurrentThis(), nil

	case *ast.ArrayLiteral:
		return evalArrayLiteral(vm, e)
	case *ast.ObjectLiteral:
		return evalObjectLiteral(vm, e)
	case *ast.FunctionLiteral:
		return makeClosure(vm, e), nil

	case *ast.DotExpression:
		return evalMemberDot(vm, e)
	case *ast.BracketExpression:
		return evalMemberBracket(vm, e)

	case *ast.CallExpression:
		return evalCallExpression(vm, e)
	case *ast.NewExpression:
		return evalNewExpression(vm, e)

	case *ast.AssignExpression:
		return evalAssignExpression(vm, e)
	case *ast.BinaryExpression:
		return evalBinaryExpression(vm, e)
	case *ast.UnaryExpression:
		return evalUnaryExpression(vm, e)
	case *ast.ConditionalExpression:
		return evalConditionalExpression(vm, e)
	case *ast.SequenceExpression:
		return evalSequenceExpression(vm, e)
	case *ast.VariableExpression:
		return evalVariableExpression(vm, e)

	default:
		return nil, newFatalError("unsupported expression node %T", expr)
	}
}

func numberFromLiteral(lit *ast.NumberLiteral) Number {
	if f, ok := lit.Value.(float64); ok {
		return Number(f)
	}
	if i, ok := lit.Value.(int64); ok {
		return Number(i)
	}
	return Number(math.NaN())
}

func evalVariableExpression(vm *VM, e *ast.VariableExpression) (JSValue, error) {
	if e.Initializer == nil {
		return Undefined{}, nil
	}
	v, err := evalExpression(vm, e.Initializer)
	if err != nil {
		return nil, err
	}
	v, err = GetValue(vm, v)
	if err != nil {
		return nil, err
	}
	ref, err := GetIdentifierReference(vm, vm.CurrentLexicalEnvironment(), PropName(e.Name), vm.IsStrict())
	if err != nil {
		return nil, err
	}
	return v, PutValue(vm, ref, v)
}

func evalArrayLiteral(vm *VM, e *ast.ArrayLiteral) (JSValue, error) {
	elements := make([]JSValue, 0, len(e.Value))
	for _, el := range e.Value {
		if el == nil {
			elements = append(elements, Undefined{})
			continue
		}
		v, err := evalExpression(vm, el)
		if err != nil {
			return nil, err
		}
		v, err = GetValue(vm, v)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	return newArrayObject(vm, elements), nil
}

// evalObjectLiteral implements ES5.1 §11.1.5, including a correct
// getter/setter split: "get" and "set" property assignments accumulate into
// an accessor pair rather than overwriting each other or falling through to
// a plain data property.
func evalObjectLiteral(vm *VM, e *ast.ObjectLiteral) (JSValue, error) {
	obj := NewObject(vm.Prototypes.Object)
	obj.creationEnv = vm.CurrentLexicalEnvironment()

	type accessorPair struct{ get, set *Object }
	accessors := make(map[Name]*accessorPair)

	for _, prop := range e.Value {
		name := PropName(prop.Key)
		switch prop.Kind {
		case "get":
			fnLit, ok := prop.Value.(*ast.FunctionLiteral)
			if !ok {
				return nil, newFatalError("getter literal must be a function")
			}
			pair := accessors[name]
			if pair == nil {
				pair = &accessorPair{}
				accessors[name] = pair
			}
			pair.get = makeClosure(vm, fnLit)
		case "set":
			fnLit, ok := prop.Value.(*ast.FunctionLiteral)
			if !ok {
				return nil, newFatalError("setter literal must be a function")
			}
			pair := accessors[name]
			if pair == nil {
				pair = &accessorPair{}
				accessors[name] = pair
			}
			pair.set = makeClosure(vm, fnLit)
		default:
			v, err := evalExpression(vm, prop.Value)
			if err != nil {
				return nil, err
			}
			v, err = GetValue(vm, v)
			if err != nil {
				return nil, err
			}
			obj.setOwn(name, dataDescriptor(v, true, true, true))
		}
	}
	for name, pair := range accessors {
		obj.setOwn(name, &PropertyDescriptor{
			Get: pair.get, Set: pair.set, Enumerable: true, Configurable: true,
			HasGet: true, HasSet: true, HasEnumerable: true, HasConfigurable: true,
		})
	}
	return obj, nil
}

func propertyKeyName(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name
	case *ast.StringLiteral:
		return k.Value
	case *ast.NumberLiteral:
		n := numberFromLiteral(k)
		s, _ := ToString(nil, n)
		if str, ok := s.(String); ok {
			return string(str)
		}
	}
	return ""
}

func evalMemberDot(vm *VM, e *ast.DotExpression) (JSValue, error) {
	baseRef, err := evalExpression(vm, e.Left)
	if err != nil {
		return nil, err
	}
	base, err := GetValue(vm, baseRef)
	if err != nil {
		return nil, err
	}
	if _, unknown := base.(Unknown); unknown {
		return vm.MakeUnknown(), nil
	}
	return NewPropertyReference(base, PropName(e.Identifier.Name), vm.IsStrict()), nil
}

func evalMemberBracket(vm *VM, e *ast.BracketExpression) (JSValue, error) {
	baseRef, err := evalExpression(vm, e.Left)
	if err != nil {
		return nil, err
	}
	base, err := GetValue(vm, baseRef)
	if err != nil {
		return nil, err
	}
	if _, unknown := base.(Unknown); unknown {
		return vm.MakeUnknown(), nil
	}
	memberRef, err := evalExpression(vm, e.Member)
	if err != nil {
		return nil, err
	}
	memberVal, err := GetValue(vm, memberRef)
	if err != nil {
		return nil, err
	}
	nameVal, err := ToString(vm, memberVal)
	if err != nil {
		return nil, err
	}
	name, ok := nameVal.(String)
	if !ok {
		return vm.MakeUnknown(), nil
	}
	return NewPropertyReference(base, PropName(string(name)), vm.IsStrict()), nil
}

func evalCallExpression(vm *VM, e *ast.CallExpression) (JSValue, error) {
	calleeRef, err := evalExpression(vm, e.Callee)
	if err != nil {
		return nil, err
	}
	calleeVal, err := GetValue(vm, calleeRef)
	if err != nil {
		return nil, err
	}
	args, err := evalArguments(vm, e.ArgumentList)
	if err != nil {
		return nil, err
	}

	if _, unknown := calleeVal.(Unknown); unknown {
		return vm.MakeUnknown(), nil
	}
	fn, ok := calleeVal.(*Object)
	if !ok || !fn.IsCallable() {
		return nil, vm.ThrowTypeError("value is not a function")
	}

	var this JSValue = Undefined{}
	if ref, ok := calleeRef.(*Reference); ok && ref.IsPropertyReference() {
		this = ref.base.(JSValue)
	} else if ref, ok := calleeRef.(*Reference); ok {
		if envBase, ok := ref.base.(envRefBase); ok {
			this = envBase.record.ImplicitThisValue()
		}
	}

	return fn.Invoke(vm, this, args, FunctionFlags{})
}

func evalNewExpression(vm *VM, e *ast.NewExpression) (JSValue, error) {
	calleeRef, err := evalExpression(vm, e.Callee)
	if err != nil {
		return nil, err
	}
	calleeVal, err := GetValue(vm, calleeRef)
	if err != nil {
		return nil, err
	}
	args, err := evalArguments(vm, e.ArgumentList)
	if err != nil {
		return nil, err
	}
	if _, unknown := calleeVal.(Unknown); unknown {
		return vm.MakeUnknown(), nil
	}
	fn, ok := calleeVal.(*Object)
	if !ok {
		return nil, vm.ThrowTypeError("value is not a constructor")
	}
	return DoNew(vm, fn, args)
}

func evalArguments(vm *VM, list []ast.Expression) ([]JSValue, error) {
	out := make([]JSValue, 0, len(list))
	for _, a := range list {
		v, err := evalExpression(vm, a)
		if err != nil {
			return nil, err
		}
		v, err = GetValue(vm, v)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func evalConditionalExpression(vm *VM, e *ast.ConditionalExpression) (JSValue, error) {
	t, err := evalExpression(vm, e.Test)
	if err != nil {
		return nil, err
	}
	t, err = GetValue(vm, t)
	if err != nil {
		return nil, err
	}
	b := ToBoolean(vm, t)
	if _, unknown := b.(Unknown); unknown {
		vm.EnterAmbiguousBlock()
		defer vm.ExitAmbiguousBlock()
		if _, err := evalExpression(vm, e.Consequent); err != nil {
			return nil, err
		}
		if _, err := evalExpression(vm, e.Alternate); err != nil {
			return nil, err
		}
		return vm.MakeUnknown(), nil
	}
	if MustBoolean(b) {
		v, err := evalExpression(vm, e.Consequent)
		if err != nil {
			return nil, err
		}
		return GetValue(vm, v)
	}
	v, err := evalExpression(vm, e.Alternate)
	if err != nil {
		return nil, err
	}
	return GetValue(vm, v)
}

func evalSequenceExpression(vm *VM, e *ast.SequenceExpression) (JSValue, error) {
	var result JSValue = Undefined{}
	for _, item := range e.Sequence {
		v, err := evalExpression(vm, item)
		if err != nil {
			return nil, err
		}
		result, err = GetValue(vm, v)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalUnaryExpression(vm *VM, e *ast.UnaryExpression) (JSValue, error) {
	if e.Operator == token.DELETE {
		return evalDeleteExpression(vm, e)
	}
	if e.Operator == token.TYPEOF {
		ref, err := evalExpression(vm, e.Operand)
		if err != nil {
			return nil, err
		}
		if r, ok := ref.(*Reference); ok && r.IsUnresolvable() {
			return String("undefined"), nil
		}
		v, err := GetValue(vm, ref)
		if err != nil {
			return nil, err
		}
		return String(typeString(v)), nil
	}

	if e.Operator == token.INCREMENT || e.Operator == token.DECREMENT {
		return evalIncDec(vm, e.Operand, e.Operator == token.INCREMENT, !e.Postfix)
	}

	ref, err := evalExpression(vm, e.Operand)
	if err != nil {
		return nil, err
	}
	v, err := GetValue(vm, ref)
	if err != nil {
		return nil, err
	}
	if _, unknown := v.(Unknown); unknown {
		return vm.MakeUnknown(), nil
	}

	switch e.Operator {
	case token.PLUS:
		return ToNumber(vm, v)
	case token.MINUS:
		n, err := ToNumber(vm, v)
		if err != nil {
			return nil, err
		}
		if nf, ok := n.(Number); ok {
			return Number(-float64(nf)), nil
		}
		return vm.MakeUnknown(), nil
	case token.NOT:
		b := ToBoolean(vm, v)
		if bb, ok := b.(Boolean); ok {
			return Boolean(!bb), nil
		}
		return vm.MakeUnknown(), nil
	case token.BITWISE_NOT:
		i32, known, err := ToInt32(vm, v)
		if err != nil {
			return nil, err
		}
		if !known {
			return vm.MakeUnknown(), nil
		}
		return Number(^i32), nil
	case token.VOID:
		return Undefined{}, nil
	default:
		return nil, newFatalError("unsupported unary operator %s", e.Operator.String())
	}
}

func evalDeleteExpression(vm *VM, e *ast.UnaryExpression) (JSValue, error) {
	ref, err := evalExpression(vm, e.Operand)
	if err != nil {
		return nil, err
	}
	r, ok := ref.(*Reference)
	if !ok {
		return Boolean(true), nil
	}
	if r.isUnresolvable {
		return Boolean(true), nil
	}
	if envBase, ok := r.base.(envRefBase); ok {
		ok, err := envBase.record.DeleteBinding(vm, r.name)
		return Boolean(ok), err
	}
	baseVal := r.base.(JSValue)
	obj, ok := baseVal.(*Object)
	if !ok {
		return Boolean(true), nil
	}
	ok2, err := obj.Delete(vm, r.name, r.strict)
	return Boolean(ok2), err
}

func evalIncDec(vm *VM, operand ast.Expression, isIncrement, isPrefix bool) (JSValue, error) {
	ref, err := evalExpression(vm, operand)
	if err != nil {
		return nil, err
	}
	old, err := GetValue(vm, ref)
	if err != nil {
		return nil, err
	}
	oldNum, err := ToNumber(vm, old)
	if err != nil {
		return nil, err
	}
	n, ok := oldNum.(Number)
	if !ok {
		if err := PutValue(vm, ref, vm.MakeUnknown()); err != nil {
			return nil, err
		}
		return vm.MakeUnknown(), nil
	}
	delta := 1.0
	if !isIncrement {
		delta = -1.0
	}
	newNum := Number(float64(n) + delta)
	if err := PutValue(vm, ref, newNum); err != nil {
		return nil, err
	}
	if isPrefix {
		return newNum, nil
	}
	return n, nil
}

func evalAssignExpression(vm *VM, e *ast.AssignExpression) (JSValue, error) {
	ref, err := evalExpression(vm, e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator == token.ASSIGN {
		rhs, err := evalExpression(vm, e.Right)
		if err != nil {
			return nil, err
		}
		v, err := GetValue(vm, rhs)
		if err != nil {
			return nil, err
		}
		return v, PutValue(vm, ref, v)
	}

	lhsVal, err := GetValue(vm, ref)
	if err != nil {
		return nil, err
	}
	rhs, err := evalExpression(vm, e.Right)
	if err != nil {
		return nil, err
	}
	rhsVal, err := GetValue(vm, rhs)
	if err != nil {
		return nil, err
	}
	result, err := applyBinaryOp(vm, compoundBaseOperator(e.Operator), lhsVal, rhsVal)
	if err != nil {
		return nil, err
	}
	return result, PutValue(vm, ref, result)
}

// compoundBaseOperator strips the trailing `=` semantics off a compound
// assignment token, e.g. ADD_ASSIGN -> PLUS, to reuse applyBinaryOp.
func compoundBaseOperator(t token.Token) token.Token {
	switch t {
	case token.ADD_ASSIGN:
		return token.PLUS
	case token.SUBTRACT_ASSIGN:
		return token.MINUS
	case token.MULTIPLY_ASSIGN:
		return token.MULTIPLY
	case token.QUOTIENT_ASSIGN:
		return token.SLASH
	case token.REMAINDER_ASSIGN:
		return token.REMAINDER
	case token.AND_ASSIGN:
		return token.AND
	case token.OR_ASSIGN:
		return token.OR
	case token.EXCLUSIVE_OR_ASSIGN:
		return token.EXCLUSIVE_OR
	case token.SHIFT_LEFT_ASSIGN:
		return token.SHIFT_LEFT
	case token.SHIFT_RIGHT_ASSIGN:
		return token.SHIFT_RIGHT
	case token.UNSIGNED_SHIFT_RIGHT_ASSIGN:
		return token.UNSIGNED_SHIFT_RIGHT
	default:
		return t
	}
}

func evalBinaryExpression(vm *VM, e *ast.BinaryExpression) (JSValue, error) {
	leftRef, err := evalExpression(vm, e.Left)
	if err != nil {
		return nil, err
	}
	left, err := GetValue(vm, leftRef)
	if err != nil {
		return nil, err
	}

	// short-circuit operators evaluate the right side conditionally and are
	// not handled by applyBinaryOp.
	switch e.Operator {
	case token.LOGICAL_AND:
		b := ToBoolean(vm, left)
		if _, unknown := b.(Unknown); unknown {
			vm.EnterAmbiguousBlock()
			defer vm.ExitAmbiguousBlock()
			if _, err := evalExpression(vm, e.Right); err != nil {
				return nil, err
			}
			return vm.MakeUnknown(), nil
		}
		if !MustBoolean(b) {
			return left, nil
		}
		rightRef, err := evalExpression(vm, e.Right)
		if err != nil {
			return nil, err
		}
		return GetValue(vm, rightRef)
	case token.LOGICAL_OR:
		b := ToBoolean(vm, left)
		if _, unknown := b.(Unknown); unknown {
			vm.EnterAmbiguousBlock()
			defer vm.ExitAmbiguousBlock()
			if _, err := evalExpression(vm, e.Right); err != nil {
				return nil, err
			}
			return vm.MakeUnknown(), nil
		}
		if MustBoolean(b) {
			return left, nil
		}
		rightRef, err := evalExpression(vm, e.Right)
		if err != nil {
			return nil, err
		}
		return GetValue(vm, rightRef)
	}

	rightRef, err := evalExpression(vm, e.Right)
	if err != nil {
		return nil, err
	}
	right, err := GetValue(vm, rightRef)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(vm, e.Operator, left, right)
}

// applyBinaryOp implements ES5.1 §11.5-§11.10's arithmetic, relational,
// equality, and bitwise operators; every branch propagates Unknown operands
// through to an Unknown result rather than guessing.
func applyBinaryOp(vm *VM, op token.Token, left, right JSValue) (JSValue, error) {
	switch op {
	case token.PLUS:
		return additionOp(vm, left, right)
	case token.MINUS, token.MULTIPLY, token.SLASH, token.REMAINDER:
		return arithmeticOp(vm, op, left, right)
	case token.LESS:
		return IsLessThan(vm, left, right, true)
	case token.GREATER:
		return IsGreaterThan(vm, left, right)
	case token.LESS_OR_EQUAL:
		return IsLessOrEqual(vm, left, right)
	case token.GREATER_OR_EQUAL:
		return IsGreaterOrEqual(vm, left, right)
	case token.EQUAL:
		return AbstractEquals(vm, left, right)
	case token.NOT_EQUAL:
		eq, err := AbstractEquals(vm, left, right)
		if err != nil {
			return nil, err
		}
		return negateKnown(eq), nil
	case token.STRICT_EQUAL:
		return StrictEquals(left, right), nil
	case token.STRICT_NOT_EQUAL:
		return negateKnown(StrictEquals(left, right)), nil
	case token.AND, token.OR, token.EXCLUSIVE_OR, token.SHIFT_LEFT, token.SHIFT_RIGHT, token.UNSIGNED_SHIFT_RIGHT:
		return bitwiseOp(vm, op, left, right)
	case token.INSTANCEOF:
		return instanceOfOp(vm, left, right)
	case token.IN:
		return inOp(vm, left, right)
	default:
		return nil, newFatalError("unsupported binary operator %s", op.String())
	}
}

func negateKnown(v JSValue) JSValue {
	if b, ok := v.(Boolean); ok {
		return Boolean(!b)
	}
	return Unknown{}
}

// additionOp implements ES5.1 §11.6.1, the one arithmetic operator with
// string-concatenation behavior baked in.
func additionOp(vm *VM, left, right JSValue) (JSValue, error) {
	if _, unknown := left.(Unknown); unknown {
		return Unknown{}, nil
	}
	if _, unknown := right.(Unknown); unknown {
		return Unknown{}, nil
	}
	lp, err := ToPrimitive(vm, left, "")
	if err != nil {
		return nil, err
	}
	rp, err := ToPrimitive(vm, right, "")
	if err != nil {
		return nil, err
	}
	if _, ok := lp.(String); ok {
		rs, err := ToString(vm, rp)
		if err != nil {
			return nil, err
		}
		return lp.(String) + rs.(String), nil
	}
	if _, ok := rp.(String); ok {
		ls, err := ToString(vm, lp)
		if err != nil {
			return nil, err
		}
		return ls.(String) + rp.(String), nil
	}
	ln, err := ToNumber(vm, lp)
	if err != nil {
		return nil, err
	}
	rn, err := ToNumber(vm, rp)
	if err != nil {
		return nil, err
	}
	lnum, lok := ln.(Number)
	rnum, rok := rn.(Number)
	if !lok || !rok {
		return Unknown{}, nil
	}
	return lnum + rnum, nil
}

func arithmeticOp(vm *VM, op token.Token, left, right JSValue) (JSValue, error) {
	ln, err := ToNumber(vm, left)
	if err != nil {
		return nil, err
	}
	rn, err := ToNumber(vm, right)
	if err != nil {
		return nil, err
	}
	lnum, lok := ln.(Number)
	rnum, rok := rn.(Number)
	if !lok || !rok {
		return Unknown{}, nil
	}
	switch op {
	case token.MINUS:
		return lnum - rnum, nil
	case token.MULTIPLY:
		return lnum * rnum, nil
	case token.SLASH:
		return Number(float64(lnum) / float64(rnum)), nil
	case token.REMAINDER:
		return Number(floatRemainder(float64(lnum), float64(rnum))), nil
	}
	return Unknown{}, nil
}

// floatRemainder implements ES5.1 §11.5.3's `%` semantics (IEEE 754
// remainder with the dividend's sign) explicitly, since math.Mod alone
// doesn't document its NaN/Inf corner cases against the spec text.
func floatRemainder(x, y float64) float64 {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || y == 0 {
		return math.NaN()
	}
	if math.IsInf(y, 0) {
		return x
	}
	if x == 0 {
		return x
	}
	return math.Mod(x, y)
}

func bitwiseOp(vm *VM, op token.Token, left, right JSValue) (JSValue, error) {
	li, known, err := ToInt32(vm, left)
	if err != nil {
		return nil, err
	}
	if !known {
		return Unknown{}, nil
	}
	switch op {
	case token.AND:
		ri, known, err := ToInt32(vm, right)
		if err != nil || !known {
			return Unknown{}, err
		}
		return Number(li & ri), nil
	case token.OR:
		ri, known, err := ToInt32(vm, right)
		if err != nil || !known {
			return Unknown{}, err
		}
		return Number(li | ri), nil
	case token.EXCLUSIVE_OR:
		ri, known, err := ToInt32(vm, right)
		if err != nil || !known {
			return Unknown{}, err
		}
		return Number(li ^ ri), nil
	case token.SHIFT_LEFT:
		ru, known, err := ToUint32(vm, right)
		if err != nil || !known {
			return Unknown{}, err
		}
		return Number(li << (ru & 0x1F)), nil
	case token.SHIFT_RIGHT:
		ru, known, err := ToUint32(vm, right)
		if err != nil || !known {
			return Unknown{}, err
		}
		return Number(li >> (ru & 0x1F)), nil
	case token.UNSIGNED_SHIFT_RIGHT:
		lu, known, err := ToUint32(vm, left)
		if err != nil || !known {
			return Unknown{}, err
		}
		ru, known, err := ToUint32(vm, right)
		if err != nil || !known {
			return Unknown{}, err
		}
		return Number(lu >> (ru & 0x1F)), nil
	}
	return Unknown{}, nil
}

// instanceOfOp implements ES5.1 §11.8.6 including [[HasInstance]]'s
// prototype-chain walk.
func instanceOfOp(vm *VM, left, right JSValue) (JSValue, error) {
	if _, unknown := left.(Unknown); unknown {
		return Unknown{}, nil
	}
	if _, unknown := right.(Unknown); unknown {
		return Unknown{}, nil
	}
	ctor, ok := right.(*Object)
	if !ok || !ctor.IsCallable() {
		return nil, vm.ThrowTypeError("right-hand side of 'instanceof' is not callable")
	}
	obj, ok := left.(*Object)
	if !ok {
		return Boolean(false), nil
	}
	protoVal, err := ctor.Get(vm, PropName("prototype"))
	if err != nil {
		return nil, err
	}
	proto, ok := protoVal.(*Object)
	if !ok {
		return nil, vm.ThrowTypeError("'prototype' property of instanceof target is not an object")
	}
	for cur := obj.Prototype; cur != nil; cur = cur.Prototype {
		if cur == proto {
			return Boolean(true), nil
		}
		if cur.Prototype == cur {
			break
		}
	}
	return Boolean(false), nil
}

func inOp(vm *VM, left, right JSValue) (JSValue, error) {
	obj, ok := right.(*Object)
	if !ok {
		if _, unknown := right.(Unknown); unknown {
			return Unknown{}, nil
		}
		return nil, vm.ThrowTypeError("cannot use 'in' operator on a non-object")
	}
	nameVal, err := ToString(vm, left)
	if err != nil {
		return nil, err
	}
	name, ok := nameVal.(String)
	if !ok {
		return Unknown{}, nil
	}
	return Boolean(obj.HasProperty(PropName(string(name)))), nil
}
