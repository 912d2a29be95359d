package engine

func setupBooleanBuiltins(vm *VM) {
	proto := vm.Prototypes.Boolean

	thisBoolean := func(vm *VM, this JSValue) (Boolean, error) {
		switch t := this.(type) {
		case Boolean:
			return t, nil
		case *Object:
			if b, ok := t.Prim.(Boolean); ok {
				return b, nil
			}
		}
		return false, vm.ThrowTypeError("Boolean.prototype method called on incompatible receiver")
	}

	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		b, err := thisBoolean(vm, this)
		if err != nil {
			return nil, err
		}
		if b {
			return String("true"), nil
		}
		return String("false"), nil
	})
	defMethod(vm, proto, "valueOf", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		b, err := thisBoolean(vm, this)
		return b, err
	})

	ctor := nativeMethod(vm, "Boolean", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		b := MustBoolean(ToBoolean(vm, arg(args, 0)))
		if flags.IsNew {
			return vm.newBooleanWrapper(Boolean(b)), nil
		}
		return Boolean(b), nil
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	vm.defineGlobal("Boolean", ctor)
}
