package engine

func setupFunctionBuiltins(vm *VM, proto *Object) {
	defMethod(vm, proto, "call", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		fn, ok := this.(*Object)
		if !ok || !fn.IsCallable() {
			return nil, vm.ThrowTypeError("Function.prototype.call called on non-function")
		}
		var callThis JSValue = Undefined{}
		var callArgs []JSValue
		if len(args) > 0 {
			callThis = args[0]
			callArgs = args[1:]
		}
		return fn.Invoke(vm, callThis, callArgs, FunctionFlags{})
	})
	defMethod(vm, proto, "apply", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		fn, ok := this.(*Object)
		if !ok || !fn.IsCallable() {
			return nil, vm.ThrowTypeError("Function.prototype.apply called on non-function")
		}
		callThis := arg(args, 0)
		var callArgs []JSValue
		if arrVal := arg(args, 1); arrVal != nil {
			if arrObj, ok := arrVal.(*Object); ok {
				callArgs = arrayLikeToSlice(vm, arrObj)
			}
		}
		return fn.Invoke(vm, callThis, callArgs, FunctionFlags{})
	})
	defMethod(vm, proto, "bind", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		target, ok := this.(*Object)
		if !ok || !target.IsCallable() {
			return nil, vm.ThrowTypeError("Function.prototype.bind called on non-function")
		}
		boundThis := arg(args, 0)
		var boundArgs []JSValue
		if len(args) > 1 {
			boundArgs = append(boundArgs, args[1:]...)
		}
		bound := nativeMethod(vm, "bound "+target.Function.Name, 0, func(vm *VM, callThis JSValue, callArgs []JSValue, flags FunctionFlags) (JSValue, error) {
			full := append(append([]JSValue{}, boundArgs...), callArgs...)
			if flags.IsNew {
				return target.Invoke(vm, callThis, full, flags)
			}
			return target.Invoke(vm, boundThis, full, FunctionFlags{})
		})
		return bound, nil
	})
	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		fn, ok := this.(*Object)
		if !ok || !fn.IsCallable() {
			return nil, vm.ThrowTypeError("Function.prototype.toString called on non-function")
		}
		if fn.Function.Native != nil {
			return String("function " + fn.Function.Name + "() { [native code] }"), nil
		}
		return String("function " + fn.Function.Name + "() { [ecmascript code] }"), nil
	})

	ctor := nativeMethod(vm, "Function", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return nil, vm.ThrowTypeError("Function constructor from dynamic source is not supported by this engine")
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	vm.defineGlobal("Function", ctor)
}

func arrayLikeToSlice(vm *VM, obj *Object) []JSValue {
	if obj.ClassName == "Array" {
		return arrayElements(obj)
	}
	lenVal, err := obj.Get(vm, PropName("length"))
	if err != nil {
		return nil
	}
	lenNum, err := ToNumber(vm, lenVal)
	if err != nil {
		return nil
	}
	n, ok := lenNum.(Number)
	if !ok {
		return nil
	}
	out := make([]JSValue, 0, int(n))
	for i := 0; i < int(n); i++ {
		v, err := obj.Get(vm, PropName(itoa(i)))
		if err != nil {
			return out
		}
		out = append(out, v)
	}
	return out
}
