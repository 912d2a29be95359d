package engine

// arrayLength reads an Array object's own "length" data property directly.
// Arrays always have one (set at construction and kept in sync by
// applyArrayLengthOverride and the helpers below), so this never needs to
// go through [[Get]].
func arrayLength(o *Object) int {
	d := o.properties[PropName("length")]
	if d == nil {
		return 0
	}
	if n, ok := d.Value.(Number); ok {
		return int(n)
	}
	return 0
}

func setArrayLength(o *Object, n int) {
	o.setOwn(PropName("length"), dataDescriptor(Number(n), true, false, false))
}

// arrayElements reads the dense range [0, length) of o's indexed properties
// into a Go slice, substituting Undefined for any index with no own
// property (a hole). Array.prototype methods that need to iterate or
// rebuild a whole array go through this rather than walking the property
// map by hand.
func arrayElements(o *Object) []JSValue {
	n := arrayLength(o)
	out := make([]JSValue, n)
	for i := 0; i < n; i++ {
		if d := o.properties[PropName(itoa(i))]; d != nil {
			out[i] = d.Value
		} else {
			out[i] = Undefined{}
		}
	}
	return out
}

// replaceArrayElements overwrites o's indexed properties and length to
// exactly match elems, deleting any existing index at or beyond the new
// length. This is the single write path array-mutating methods use so that
// ordinary property access (a[i], for-in, JSON.stringify, Object.keys) and
// Array.prototype methods always agree on what an array holds.
func replaceArrayElements(o *Object, elems []JSValue) {
	oldLen := arrayLength(o)
	for i := len(elems); i < oldLen; i++ {
		name := PropName(itoa(i))
		delete(o.properties, name)
		for k, key := range o.keyOrder {
			if key == name {
				o.keyOrder = append(o.keyOrder[:k], o.keyOrder[k+1:]...)
				break
			}
		}
	}
	for i, v := range elems {
		o.setOwn(PropName(itoa(i)), dataDescriptor(v, true, true, true))
	}
	setArrayLength(o, len(elems))
}

func newArrayObject(vm *VM, elements []JSValue) *Object {
	arr := NewObject(vm.Prototypes.Array)
	arr.ClassName = "Array"
	replaceArrayElements(arr, elements)
	return arr
}

func setupArrayBuiltins(vm *VM) {
	proto := vm.Prototypes.Array

	defMethod(vm, proto, "push", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.push called on non-object")
		}
		n := arrayLength(arr)
		for i, v := range args {
			arr.setOwn(PropName(itoa(n+i)), dataDescriptor(v, true, true, true))
		}
		setArrayLength(arr, n+len(args))
		return Number(n + len(args)), nil
	})
	defMethod(vm, proto, "pop", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return Undefined{}, nil
		}
		n := arrayLength(arr)
		if n == 0 {
			return Undefined{}, nil
		}
		elems := arrayElements(arr)
		last := elems[n-1]
		replaceArrayElements(arr, elems[:n-1])
		return last, nil
	})
	defMethod(vm, proto, "shift", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return Undefined{}, nil
		}
		n := arrayLength(arr)
		if n == 0 {
			return Undefined{}, nil
		}
		elems := arrayElements(arr)
		first := elems[0]
		replaceArrayElements(arr, elems[1:])
		return first, nil
	})
	defMethod(vm, proto, "unshift", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.unshift called on non-object")
		}
		elems := append(append([]JSValue{}, args...), arrayElements(arr)...)
		replaceArrayElements(arr, elems)
		return Number(len(elems)), nil
	})
	defMethod(vm, proto, "slice", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.slice called on non-object")
		}
		elems := arrayElements(arr)
		n := len(elems)
		start := clampIndex(vm, arg(args, 0), n, 0)
		end := clampIndex(vm, arg(args, 1), n, n)
		if start >= end {
			return newArrayObject(vm, nil), nil
		}
		return newArrayObject(vm, append([]JSValue{}, elems[start:end]...)), nil
	})
	defMethod(vm, proto, "join", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.join called on non-object")
		}
		sep := ","
		if s, ok := arg(args, 0).(String); ok {
			sep = string(s)
		}
		out := ""
		for i, v := range arrayElements(arr) {
			if i > 0 {
				out += sep
			}
			switch v.(type) {
			case Undefined, Null, nil:
				continue
			}
			sv, err := ToString(vm, v)
			if err != nil {
				return nil, err
			}
			if s, ok := sv.(String); ok {
				out += string(s)
			}
		}
		return String(out), nil
	})
	defMethod(vm, proto, "concat", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.concat called on non-object")
		}
		out := append([]JSValue{}, arrayElements(arr)...)
		for _, a := range args {
			if other, ok := a.(*Object); ok && other.ClassName == "Array" {
				out = append(out, arrayElements(other)...)
			} else {
				out = append(out, a)
			}
		}
		return newArrayObject(vm, out), nil
	})
	defMethod(vm, proto, "indexOf", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.indexOf called on non-object")
		}
		target := arg(args, 0)
		for i, v := range arrayElements(arr) {
			if strictEquals(v, target) {
				return Number(i), nil
			}
		}
		return Number(-1), nil
	})
	defMethod(vm, proto, "forEach", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, fn, err := arrayAndCallback(vm, this, args)
		if err != nil {
			return nil, err
		}
		callbackThis := arg(args, 1)
		for i, v := range arrayElements(arr) {
			if _, err := fn.Invoke(vm, callbackThis, []JSValue{v, Number(i), arr}, FunctionFlags{}); err != nil {
				return nil, err
			}
		}
		return Undefined{}, nil
	})
	defMethod(vm, proto, "map", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, fn, err := arrayAndCallback(vm, this, args)
		if err != nil {
			return nil, err
		}
		callbackThis := arg(args, 1)
		elems := arrayElements(arr)
		out := make([]JSValue, len(elems))
		for i, v := range elems {
			r, err := fn.Invoke(vm, callbackThis, []JSValue{v, Number(i), arr}, FunctionFlags{})
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return newArrayObject(vm, out), nil
	})
	defMethod(vm, proto, "filter", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, fn, err := arrayAndCallback(vm, this, args)
		if err != nil {
			return nil, err
		}
		callbackThis := arg(args, 1)
		var out []JSValue
		for i, v := range arrayElements(arr) {
			r, err := fn.Invoke(vm, callbackThis, []JSValue{v, Number(i), arr}, FunctionFlags{})
			if err != nil {
				return nil, err
			}
			if MustBoolean(ToBoolean(vm, r)) {
				out = append(out, v)
			}
		}
		return newArrayObject(vm, out), nil
	})
	defMethod(vm, proto, "reduce", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, fn, err := arrayAndCallback(vm, this, args)
		if err != nil {
			return nil, err
		}
		elems := arrayElements(arr)
		i := 0
		var acc JSValue
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(elems) == 0 {
				return nil, vm.ThrowTypeError("reduce of empty array with no initial value")
			}
			acc = elems[0]
			i = 1
		}
		for ; i < len(elems); i++ {
			acc, err = fn.Invoke(vm, Undefined{}, []JSValue{acc, elems[i], Number(i), arr}, FunctionFlags{})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	})
	defMethod(vm, proto, "reverse", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		arr, ok := this.(*Object)
		if !ok {
			return nil, vm.ThrowTypeError("Array.prototype.reverse called on non-object")
		}
		elems := arrayElements(arr)
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
		replaceArrayElements(arr, elems)
		return arr, nil
	})
	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		joinVal, err := proto.Get(vm, PropName("join"))
		if err != nil {
			return nil, err
		}
		joinFn, ok := joinVal.(*Object)
		if !ok {
			return String(""), nil
		}
		return joinFn.Invoke(vm, this, nil, FunctionFlags{})
	})

	ctor := nativeMethod(vm, "Array", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		if len(args) == 1 {
			if n, ok := args[0].(Number); ok {
				size := int(n)
				if float64(size) != float64(n) || size < 0 {
					return nil, vm.ThrowRangeError("invalid array length")
				}
				elems := make([]JSValue, size)
				for i := range elems {
					elems[i] = Undefined{}
				}
				return newArrayObject(vm, elems), nil
			}
		}
		return newArrayObject(vm, append([]JSValue{}, args...)), nil
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	defMethod(vm, ctor, "isArray", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := arg(args, 0).(*Object)
		return Boolean(ok && obj.ClassName == "Array"), nil
	})
	vm.defineGlobal("Array", ctor)
}

func arrayAndCallback(vm *VM, this JSValue, args []JSValue) (*Object, *Object, error) {
	arr, ok := this.(*Object)
	if !ok {
		return nil, nil, vm.ThrowTypeError("array method called on non-object")
	}
	fn, ok := arg(args, 0).(*Object)
	if !ok || !fn.IsCallable() {
		return nil, nil, vm.ThrowTypeError("callback is not a function")
	}
	return arr, fn, nil
}

func clampIndex(vm *VM, v JSValue, length, fallback int) int {
	if _, isUndef := v.(Undefined); isUndef {
		return fallback
	}
	n, err := ToInteger(vm, v)
	if err != nil {
		return fallback
	}
	num, ok := n.(Number)
	if !ok {
		return fallback
	}
	f := float64(num)
	idx := int(f)
	if f < 0 {
		idx = length + int(f)
		if idx < 0 {
			idx = 0
		}
	}
	if idx > length {
		idx = length
	}
	return idx
}
