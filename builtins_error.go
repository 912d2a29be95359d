package engine

// setupErrorBuiltins wires the Error constructor plus the six native
// error subtypes ES5.1 §15.11.6 names (TypeError, RangeError,
// ReferenceError, SyntaxError, EvalError, URIError), each with its own
// prototype chained off Error.prototype.
func setupErrorBuiltins(vm *VM) {
	proto := vm.Prototypes.Error

	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Error.prototype.toString called on non-object")
		}
		nameVal, err := obj.Get(vm, PropName("name"))
		if err != nil {
			return nil, err
		}
		msgVal, err := obj.Get(vm, PropName("message"))
		if err != nil {
			return nil, err
		}
		name, _ := ToString(vm, nameVal)
		msg, _ := ToString(vm, msgVal)
		ns, _ := name.(String)
		ms, _ := msg.(String)
		if ms == "" {
			return ns, nil
		}
		return ns + ": " + ms, nil
	})

	makeCtor := func(className string, classProto *Object) *Object {
		ctor := nativeMethod(vm, className, 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
			obj := NewObject(classProto)
			obj.ClassName = "Error"
			if msgVal := arg(args, 0); !isUndefinedValue(msgVal) {
				sv, err := ToString(vm, msgVal)
				if err != nil {
					return nil, err
				}
				obj.setOwn(PropName("message"), dataDescriptor(sv, true, false, true))
			}
			return obj, nil
		})
		ctor.setOwn(PropName("prototype"), dataDescriptor(classProto, false, false, false))
		classProto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
		return ctor
	}

	errCtor := makeCtor("Error", proto)
	vm.defineGlobal("Error", errCtor)
	vm.Prototypes.ErrorCtors["Error"] = errCtor

	for _, name := range []string{"TypeError", "RangeError", "ReferenceError", "SyntaxError", "EvalError", "URIError"} {
		subProto := NewObject(proto)
		subProto.setOwn(PropName("name"), dataDescriptor(String(name), true, false, true))
		ctor := makeCtor(name, subProto)
		vm.defineGlobal(name, ctor)
		vm.Prototypes.ErrorCtors[name] = ctor
	}
}

func isUndefinedValue(v JSValue) bool {
	_, ok := v.(Undefined)
	return ok
}
