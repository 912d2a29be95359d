package engine

import (
	"math"
	"math/rand"
)

// Math.random answers Unknown outside ExactMode and a real pseudo-random
// draw in ExactMode. "Math.random" is also the one name listed in
// DefaultBlacklist.
func setupMathBuiltins(vm *VM) {
	mathObj := NewObject(vm.Prototypes.Object)

	unary := func(name string, f func(float64) float64) {
		defMethod(vm, mathObj, name, 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
			nv, err := ToNumber(vm, arg(args, 0))
			if err != nil {
				return nil, err
			}
			n, ok := nv.(Number)
			if !ok {
				return vm.MakeUnknown(), nil
			}
			return Number(f(float64(n))), nil
		})
	}

	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("round", func(f float64) float64 { return math.Floor(f + 0.5) })
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("log", math.Log)
	unary("exp", math.Exp)

	defMethod(vm, mathObj, "pow", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		base, err := ToNumber(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		exp, err := ToNumber(vm, arg(args, 1))
		if err != nil {
			return nil, err
		}
		bn, bok := base.(Number)
		en, eok := exp.(Number)
		if !bok || !eok {
			return vm.MakeUnknown(), nil
		}
		return Number(math.Pow(float64(bn), float64(en))), nil
	})
	defMethod(vm, mathObj, "max", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return mathMinMax(vm, args, math.Max, math.Inf(-1))
	})
	defMethod(vm, mathObj, "min", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return mathMinMax(vm, args, math.Min, math.Inf(1))
	})
	defMethod(vm, mathObj, "random", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		if vm.Config.ExactMode {
			return Number(rand.Float64()), nil
		}
		return vm.MakeUnknown(), nil
	})

	mathObj.setOwn(PropName("PI"), dataDescriptor(Number(math.Pi), false, false, false))
	mathObj.setOwn(PropName("E"), dataDescriptor(Number(math.E), false, false, false))
	mathObj.setOwn(PropName("LN2"), dataDescriptor(Number(math.Ln2), false, false, false))
	mathObj.setOwn(PropName("LN10"), dataDescriptor(Number(math.Log(10)), false, false, false))
	mathObj.setOwn(PropName("SQRT2"), dataDescriptor(Number(math.Sqrt2), false, false, false))

	vm.defineGlobal("Math", mathObj)
}

func mathMinMax(vm *VM, args []JSValue, op func(a, b float64) float64, identity float64) (JSValue, error) {
	result := identity
	for _, a := range args {
		nv, err := ToNumber(vm, a)
		if err != nil {
			return nil, err
		}
		n, ok := nv.(Number)
		if !ok {
			return vm.MakeUnknown(), nil
		}
		if math.IsNaN(float64(n)) {
			return Number(math.NaN()), nil
		}
		result = op(result, float64(n))
	}
	return Number(result), nil
}
