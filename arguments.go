package engine

// newArgumentsObject implements ES5.1 §10.6. In non-strict mode it wires
// up the parameter-map alias: reading/writing arguments[i] reads/writes the
// bound variable named paramNames[i] for as long as that index's link
// hasn't been broken by a direct [[DefineOwnProperty]] on the Arguments
// object itself.
func newArgumentsObject(vm *VM, paramNames []string, args []JSValue, strict bool) *Object {
	obj := NewObject(vm.Prototypes.Object)
	obj.ClassName = "Arguments"

	for i, v := range args {
		obj.setOwn(PropName(itoa(i)), dataDescriptor(v, true, true, true))
	}
	obj.setOwn(PropName("length"), dataDescriptor(Number(len(args)), true, false, true))

	calleeName := PropName("callee")
	if strict {
		// ES5.1 §10.6 step 13: strict-mode arguments gets poisoned
		// caller/callee accessors that always throw; modeled as a pair of
		// always-throwing native getters shared across every strict
		// Arguments object (spec's "[[ThrowTypeError]]" singleton function).
		thrower := vm.throwTypeErrorAccessor()
		obj.setOwn(calleeName, &PropertyDescriptor{
			Get: thrower, Set: thrower, Enumerable: false, Configurable: false,
			HasGet: true, HasSet: true, HasEnumerable: true, HasConfigurable: true,
		})
	} else {
		obj.setOwn(calleeName, dataDescriptor(Undefined{}, true, false, true))

		if len(paramNames) > 0 {
			indexToParam := make(map[int]Name, len(paramNames))
			n := len(paramNames)
			if len(args) < n {
				n = len(args)
			}
			for i := 0; i < n; i++ {
				indexToParam[i] = PropName(paramNames[i])
			}
			obj.ArgsMap = &ArgumentsParameterMap{
				IndexToParam: indexToParam,
				Env:          vm.CurrentLexicalEnvironment(),
			}
		}
	}
	return obj
}

// throwTypeErrorAccessor returns the shared "poison pill" function used for
// strict-mode arguments.caller/callee and Function.prototype.caller/arguments
// (ES5.1 §13.2.3): calling it always throws TypeError regardless of
// this/args.
func (vm *VM) throwTypeErrorAccessor() *Object {
	if vm.poisonPill != nil {
		return vm.poisonPill
	}
	fn := NewObject(vm.Prototypes.Function)
	fn.ClassName = "Function"
	fn.Function = &FunctionData{
		Native: func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
			return nil, vm.ThrowTypeError("'caller', 'callee', and 'arguments' properties may not be accessed on strict mode functions or the arguments objects for calls to them")
		},
	}
	fn.Extensible = false
	vm.poisonPill = fn
	return fn
}

// argsMapGet reads arguments[i] honoring the parameter-map alias: if index
// is still linked, it reads the current value of the aliased binding
// instead of the array slot that may be stale.
func (o *Object) argsMapGet(vm *VM, index int) (JSValue, bool, error) {
	if o.ArgsMap == nil {
		return nil, false, nil
	}
	name, linked := o.ArgsMap.IndexToParam[index]
	if !linked {
		return nil, false, nil
	}
	ref, err := GetIdentifierReference(vm, o.ArgsMap.Env, name, false)
	if err != nil {
		return nil, false, err
	}
	v, err := GetValue(vm, ref)
	return v, true, err
}

// argsMapSet writes through the alias, leaving the link intact (only an
// explicit DefineOwnProperty on the index severs it, per ES5.1 §10.6's
// MakeArgSetter/MakeArgGetter commentary).
func (o *Object) argsMapSet(vm *VM, index int, value JSValue) (bool, error) {
	if o.ArgsMap == nil {
		return false, nil
	}
	name, linked := o.ArgsMap.IndexToParam[index]
	if !linked {
		return false, nil
	}
	ref, err := GetIdentifierReference(vm, o.ArgsMap.Env, name, false)
	if err != nil {
		return false, err
	}
	return true, PutValue(vm, ref, value)
}

// breakArgsLink severs the parameter-map alias for index, called from
// DefineOwnProperty when a direct define targets an Arguments object's
// numeric index (ES5.1 §10.6 step 12).
func (o *Object) breakArgsLink(index int) {
	if o.ArgsMap == nil {
		return
	}
	delete(o.ArgsMap.IndexToParam, index)
}
