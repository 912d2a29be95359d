package engine

// nativeMethod is a small helper constructing a Function object around a
// NativeFunc, used by every builtins_*.go file to populate a prototype.
func nativeMethod(vm *VM, name string, length int, fn NativeFunc) *Object {
	obj := NewObject(vm.Prototypes.Function)
	obj.ClassName = "Function"
	obj.Function = &FunctionData{Native: fn, Name: name}
	obj.setOwn(PropName("length"), dataDescriptor(Number(length), false, false, false))
	obj.setOwn(PropName("name"), dataDescriptor(String(name), false, false, true))
	return obj
}

func defMethod(vm *VM, target *Object, name string, length int, fn NativeFunc) {
	target.setOwn(PropName(name), dataDescriptor(nativeMethod(vm, name, length, fn), true, false, true))
}

// arg returns args[i] or Undefined if out of range, implementing the
// implicit-undefined-padding every built-in gets per ES5.1 §15's uniform
// "if NumberOfArguments is fewer than N, let argN be undefined" wording.
func arg(args []JSValue, i int) JSValue {
	if i < len(args) {
		return args[i]
	}
	return Undefined{}
}

// setupGlobals wires up the entire built-in library (ES5.1 §15) onto a
// fresh VM: prototypes, constructors, and the global object's own
// properties.
func setupGlobals(vm *VM) {
	objectProto := &Object{ClassName: "Object", Extensible: true, properties: make(map[Name]*PropertyDescriptor)}
	vm.Prototypes.Object = objectProto

	functionProto := NewObject(objectProto)
	functionProto.ClassName = "Function"
	functionProto.Function = &FunctionData{Native: func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return Undefined{}, nil
	}}
	vm.Prototypes.Function = functionProto

	vm.Prototypes.Array = NewObject(objectProto)
	vm.Prototypes.Array.ClassName = "Array"
	vm.Prototypes.String = NewObject(objectProto)
	vm.Prototypes.String.ClassName = "String"
	vm.Prototypes.String.Prim = String("")
	vm.Prototypes.Number = NewObject(objectProto)
	vm.Prototypes.Number.ClassName = "Number"
	vm.Prototypes.Number.Prim = Number(0)
	vm.Prototypes.Boolean = NewObject(objectProto)
	vm.Prototypes.Boolean.ClassName = "Boolean"
	vm.Prototypes.Boolean.Prim = Boolean(false)
	vm.Prototypes.Date = NewObject(objectProto)
	vm.Prototypes.Date.ClassName = "Date"
	vm.Prototypes.RegExp = NewObject(objectProto)
	vm.Prototypes.RegExp.ClassName = "RegExp"
	vm.Prototypes.Error = NewObject(objectProto)
	vm.Prototypes.Error.ClassName = "Error"
	vm.Prototypes.Error.setOwn(PropName("name"), dataDescriptor(String("Error"), true, false, true))
	vm.Prototypes.Error.setOwn(PropName("message"), dataDescriptor(String(""), true, false, true))

	vm.Prototypes.ErrorCtors = make(map[string]*Object)

	vm.GlobalObject = NewObject(objectProto)
	vm.GlobalEnv = NewObjectEnvironment(vm.GlobalObject, nil, false)

	setupObjectBuiltins(vm, objectProto)
	setupFunctionBuiltins(vm, functionProto)
	setupArrayBuiltins(vm)
	setupStringBuiltins(vm)
	setupNumberBuiltins(vm)
	setupBooleanBuiltins(vm)
	setupDateBuiltins(vm)
	setupRegExpBuiltins(vm)
	setupErrorBuiltins(vm)
	setupMathBuiltins(vm)
	setupJSONBuiltins(vm)
	setupGlobalFunctions(vm)
}

func setupObjectBuiltins(vm *VM, proto *Object) {
	defMethod(vm, proto, "hasOwnProperty", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, err := ToObject(vm, this)
		if err != nil {
			return nil, err
		}
		nameVal, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		return Boolean(obj.HasOwnProperty(PropName(string(nameVal.(String))))), nil
	})
	defMethod(vm, proto, "isPrototypeOf", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		other, ok := arg(args, 0).(*Object)
		if !ok {
			return Boolean(false), nil
		}
		self, err := ToObject(vm, this)
		if err != nil {
			return nil, err
		}
		for cur := other.Prototype; cur != nil; cur = cur.Prototype {
			if cur == self {
				return Boolean(true), nil
			}
		}
		return Boolean(false), nil
	})
	defMethod(vm, proto, "propertyIsEnumerable", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, err := ToObject(vm, this)
		if err != nil {
			return nil, err
		}
		nameVal, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		d := obj.GetOwnProperty(PropName(string(nameVal.(String))))
		return Boolean(d != nil && d.Enumerable), nil
	})
	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, err := ToObject(vm, this)
		if err != nil {
			return nil, err
		}
		return String("[object " + obj.ClassName + "]"), nil
	})
	defMethod(vm, proto, "valueOf", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return ToObject(vm, this)
	})

	ctor := nativeMethod(vm, "Object", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		v := arg(args, 0)
		switch v.(type) {
		case Undefined, Null:
			return NewObject(proto), nil
		}
		return ToObject(vm, v)
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))

	defMethod(vm, ctor, "keys", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Object.keys called on non-object")
		}
		var names []JSValue
		for _, n := range obj.OwnPropertyNames() {
			if d := obj.GetOwnProperty(n); d != nil && d.Enumerable {
				names = append(names, String(n.String()))
			}
		}
		return newArrayObject(vm, names), nil
	})
	defMethod(vm, ctor, "getPrototypeOf", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Object.getPrototypeOf called on non-object")
		}
		if obj.Prototype == nil {
			return Null{}, nil
		}
		return obj.Prototype, nil
	})
	defMethod(vm, ctor, "defineProperty", 3, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := arg(args, 0).(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Object.defineProperty called on non-object")
		}
		nameVal, err := ToString(vm, arg(args, 1))
		if err != nil {
			return nil, err
		}
		descObj, ok := arg(args, 2).(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("property descriptor must be an object")
		}
		desc, err := toPropertyDescriptor(vm, descObj)
		if err != nil {
			return nil, err
		}
		if _, err := obj.DefineOwnProperty(vm, PropName(string(nameVal.(String))), desc, true); err != nil {
			return nil, err
		}
		return obj, nil
	})
	defMethod(vm, ctor, "create", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		var protoObj *Object
		switch p := arg(args, 0).(type) {
		case *Object:
			protoObj = p
		case Null:
			protoObj = nil
		default:
			return nil, vm.ThrowTypeError("Object prototype may only be an Object or null")
		}
		obj := NewObject(protoObj)
		if props, ok := arg(args, 1).(*Object); ok {
			for _, name := range props.OwnPropertyNames() {
				d := props.GetOwnProperty(name)
				if d == nil || !d.Enumerable {
					continue
				}
				propDescObj, ok := d.Value.(*Object)
				if !ok {
					continue
				}
				desc, err := toPropertyDescriptor(vm, propDescObj)
				if err != nil {
					return nil, err
				}
				if _, err := obj.DefineOwnProperty(vm, name, desc, true); err != nil {
					return nil, err
				}
			}
		}
		return obj, nil
	})

	vm.defineGlobal("Object", ctor)
}

// toPropertyDescriptor implements ES5.1 §8.10.5.
func toPropertyDescriptor(vm *VM, obj *Object) (*PropertyDescriptor, error) {
	desc := &PropertyDescriptor{}
	if obj.HasProperty(PropName("value")) {
		v, err := obj.Get(vm, PropName("value"))
		if err != nil {
			return nil, err
		}
		desc.Value, desc.HasValue = v, true
	}
	if obj.HasProperty(PropName("writable")) {
		v, err := obj.Get(vm, PropName("writable"))
		if err != nil {
			return nil, err
		}
		desc.Writable, desc.HasWritable = MustBoolean(ToBoolean(vm, v)), true
	}
	if obj.HasProperty(PropName("get")) {
		v, err := obj.Get(vm, PropName("get"))
		if err != nil {
			return nil, err
		}
		if fn, ok := v.(*Object); ok {
			desc.Get = fn
		}
		desc.HasGet = true
	}
	if obj.HasProperty(PropName("set")) {
		v, err := obj.Get(vm, PropName("set"))
		if err != nil {
			return nil, err
		}
		if fn, ok := v.(*Object); ok {
			desc.Set = fn
		}
		desc.HasSet = true
	}
	if obj.HasProperty(PropName("enumerable")) {
		v, err := obj.Get(vm, PropName("enumerable"))
		if err != nil {
			return nil, err
		}
		desc.Enumerable, desc.HasEnumerable = MustBoolean(ToBoolean(vm, v)), true
	}
	if obj.HasProperty(PropName("configurable")) {
		v, err := obj.Get(vm, PropName("configurable"))
		if err != nil {
			return nil, err
		}
		desc.Configurable, desc.HasConfigurable = MustBoolean(ToBoolean(vm, v)), true
	}
	if desc.IsDataDescriptor() && desc.IsAccessorDescriptor() {
		return nil, vm.ThrowTypeError("property descriptor must not specify both value/writable and get/set")
	}
	return desc, nil
}

// defineGlobal installs a named constructor (or any value) on the global
// object, a tiny indirection kept so every setupXBuiltins function reads
// the same way (define prototype methods, build ctor, publish globally).
func (vm *VM) defineGlobal(name string, value JSValue) {
	vm.GlobalObject.setOwn(PropName(name), dataDescriptor(value, true, false, true))
}
