package engine

import (
	"math"
	"strings"
)

func setupNumberBuiltins(vm *VM) {
	proto := vm.Prototypes.Number

	thisNumber := func(vm *VM, this JSValue) (Number, error) {
		switch t := this.(type) {
		case Number:
			return t, nil
		case *Object:
			if n, ok := t.Prim.(Number); ok {
				return n, nil
			}
		}
		return 0, vm.ThrowTypeError("Number.prototype method called on incompatible receiver")
	}

	defMethod(vm, proto, "toString", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		n, err := thisNumber(vm, this)
		if err != nil {
			return nil, err
		}
		return String(numberToString(float64(n))), nil
	})
	defMethod(vm, proto, "valueOf", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		n, err := thisNumber(vm, this)
		return n, err
	})
	defMethod(vm, proto, "toFixed", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		n, err := thisNumber(vm, this)
		if err != nil {
			return nil, err
		}
		digitsVal, err := ToInteger(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		digits := 0
		if dn, ok := digitsVal.(Number); ok {
			digits = int(dn)
		}
		return String(formatFixed(float64(n), digits)), nil
	})

	ctor := nativeMethod(vm, "Number", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		var n Number
		if len(args) > 0 {
			nv, err := ToNumber(vm, args[0])
			if err != nil {
				return nil, err
			}
			if numVal, ok := nv.(Number); ok {
				n = numVal
			}
		}
		if flags.IsNew {
			return vm.newNumberWrapper(n), nil
		}
		return n, nil
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	ctor.setOwn(PropName("MAX_VALUE"), dataDescriptor(Number(math.MaxFloat64), false, false, false))
	ctor.setOwn(PropName("MIN_VALUE"), dataDescriptor(Number(math.SmallestNonzeroFloat64), false, false, false))
	ctor.setOwn(PropName("NaN"), dataDescriptor(Number(math.NaN()), false, false, false))
	ctor.setOwn(PropName("POSITIVE_INFINITY"), dataDescriptor(Number(math.Inf(1)), false, false, false))
	ctor.setOwn(PropName("NEGATIVE_INFINITY"), dataDescriptor(Number(math.Inf(-1)), false, false, false))
	vm.defineGlobal("Number", ctor)
}

func formatFixed(f float64, digits int) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	neg := f < 0
	if neg {
		f = -f
	}
	scale := math.Pow(10, float64(digits))
	rounded := math.Round(f*scale) / scale
	s := numberToString(rounded)
	if digits > 0 && !strings.Contains(s, ".") {
		s += "."
		for i := 0; i < digits; i++ {
			s += "0"
		}
	}
	if neg {
		s = "-" + s
	}
	return s
}
