package engine

import "time"

// Date support is deliberately partial: construction captures a known
// UnixMillis from a single Number argument, or from the current wall-clock
// time for a no-argument call in ExactMode; any other argument list leaves
// the date's value unknown, and every getter on such a date answers
// Unknown, per spec §4.7 ("wall-clock time is not statically knowable").
// Date.now answers the current time in ExactMode and Unknown otherwise.
// Date.parse and Date.UTC are not provided. The teacher has no Date
// support at all.
func setupDateBuiltins(vm *VM) {
	proto := vm.Prototypes.Date

	thisDate := func(this JSValue) (*Object, bool) {
		obj, ok := this.(*Object)
		if !ok || obj.Date == nil {
			return nil, false
		}
		return obj, true
	}

	defMethod(vm, proto, "getTime", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := thisDate(this)
		if !ok {
			return nil, vm.ThrowTypeError("Date.prototype.getTime called on incompatible receiver")
		}
		if !obj.Date.Known {
			return vm.MakeUnknown(), nil
		}
		return Number(obj.Date.UnixMillis), nil
	})
	defMethod(vm, proto, "valueOf", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		getTime, _ := proto.Get(vm, PropName("getTime"))
		return getTime.(*Object).Invoke(vm, this, nil, FunctionFlags{})
	})
	defMethod(vm, proto, "toString", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj, ok := thisDate(this)
		if !ok {
			return nil, vm.ThrowTypeError("Date.prototype.toString called on incompatible receiver")
		}
		if !obj.Date.Known {
			return vm.MakeUnknown(), nil
		}
		return String(numberToString(obj.Date.UnixMillis)), nil
	})

	ctor := nativeMethod(vm, "Date", 7, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		obj := NewObject(proto)
		obj.ClassName = "Date"
		switch len(args) {
		case 0:
			if vm.Config.ExactMode {
				obj.Date = &DateData{UnixMillis: float64(time.Now().UnixMilli()), Known: true}
			} else {
				obj.Date = &DateData{Known: false}
			}
		case 1:
			if n, ok := args[0].(Number); ok {
				obj.Date = &DateData{UnixMillis: float64(n), Known: true}
			} else {
				obj.Date = &DateData{Known: false}
			}
		default:
			obj.Date = &DateData{Known: false}
		}
		if !flags.IsNew {
			return String("[object Date, constructed without new]"), nil
		}
		return obj, nil
	})
	ctor.setOwn(PropName("prototype"), dataDescriptor(proto, false, false, false))
	proto.setOwn(PropName("constructor"), dataDescriptor(ctor, true, false, true))
	defMethod(vm, ctor, "now", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		if vm.Config.ExactMode {
			return Number(time.Now().UnixMilli()), nil
		}
		return vm.MakeUnknown(), nil
	})
	vm.defineGlobal("Date", ctor)
}
