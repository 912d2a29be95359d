package engine

import (
	"math"
	"strings"
)

func setupStringBuiltins(vm *VM) {
	proto := vm.Prototypes.String

	thisString := func(vm *VM, this JSValue) (String, error) {
		switch t := this.(type) {
		case String:
			return t, nil
		case *Object:
			if s, ok := t.Prim.(String); ok {
				return s, nil
			}
		}
		return "", vm.ThrowTypeError("String.prototype method called on incompatible receiver")
	}

	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		return s, err
	})
	defMethod(vm, proto, "valueOf", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		return s, err
	})
	defMethod(vm, proto, "charAt", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		idx := clampIndex(vm, arg(args, 0), len(s), -1)
		if idx < 0 || idx >= len(s) {
			return String(""), nil
		}
		return s[idx : idx+1], nil
	})
	defMethod(vm, proto, "charCodeAt", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		idx := clampIndex(vm, arg(args, 0), len(s), -1)
		if idx < 0 || idx >= len(s) {
			return Number(math.NaN()), nil
		}
		return Number(s[idx]), nil
	})
	defMethod(vm, proto, "indexOf", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		searchVal, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		return Number(strings.Index(string(s), string(searchVal.(String)))), nil
	})
	defMethod(vm, proto, "slice", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		n := len(s)
		start := clampIndex(vm, arg(args, 0), n, 0)
		end := clampIndex(vm, arg(args, 1), n, n)
		if start >= end {
			return String(""), nil
		}
		return s[start:end], nil
	})
	defMethod(vm, proto, "substring", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		n := len(s)
		start := clampIndex(vm, arg(args, 0), n, 0)
		end := clampIndex(vm, arg(args, 1), n, n)
		if start > end {
			start, end = end, start
		}
		return s[start:end], nil
	})
	defMethod(vm, proto, "toUpperCase", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		return String(strings.ToUpper(string(s))), nil
	})
	defMethod(vm, proto, "toLowerCase", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		return String(strings.ToLower(string(s))), nil
	})
	defMethod(vm, proto, "split", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		sepVal := arg(args, 0)
		if _, isUndef := sepVal.(Undefined); isUndef {
			return newArrayObject(vm, []JSValue{s}), nil
		}
		sepStr, err := ToString(vm, sepVal)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(string(s), string(sepStr.(String)))
		out := make([]JSValue, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
		return newArrayObject(vm, out), nil
	})
	defMethod(vm, proto, "trim", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		return String(strings.TrimFunc(string(s), isStrWhiteSpace)), nil
	})
	defMethod(vm, proto, "concat", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		s, err := thisString(vm, this)
		if err != nil {
			return nil, err
		}
		out := string(s)
		for _, a := range args {
			av, err := ToString(vm, a)
			if err != nil {
				return nil, err
			}
			out += string(av.(String))
		}
		return String(out), nil
	})

	ctor := nativeMethod(vm, "String", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		var s String
		if len(args) > 0 {
			sv, err := ToString(vm, args[0])
			if err != nil {
				return nil, err
			}
			s = sv.(String)
		}
		if flags.IsNew {
			return vm.newStringWrapper(s), nil
		}
		return s, nil
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	defMethod(vm, ctor, "fromCharCode", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		out := make([]rune, 0, len(args))
		for _, a := range args {
			u16, known, err := ToUint16(vm, a)
			if err != nil {
				return nil, err
			}
			if !known {
				continue
			}
			out = append(out, rune(u16))
		}
		return String(out), nil
	})
	vm.defineGlobal("String", ctor)
}
