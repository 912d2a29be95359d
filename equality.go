package engine

import "math"

// strictEquals implements ES5.1 §11.9.6 (the `===` algorithm). Two Unknown
// operands, or one Unknown and anything else, compare false here; the
// StrictEquals wrapper below is what reports Unknown for them.
func strictEquals(a, b JSValue) bool {
	if _, ok := a.(Unknown); ok {
		return false
	}
	if _, ok := b.(Unknown); ok {
		return false
	}
	if a.Category() != b.Category() {
		return false
	}
	switch av := a.(type) {
	case Undefined:
		return true
	case Null:
		return true
	case Number:
		bv := b.(Number)
		return float64(av) == float64(bv)
	case String:
		return av == b.(String)
	case Boolean:
		return av == b.(Boolean)
	case *Object:
		return av == b.(*Object)
	default:
		return false
	}
}

// StrictEquals is the Unknown-propagating wrapper the rule processor calls
// for `===`/`!==`: it returns Unknown{} whenever either side is
// indeterminate, and a Boolean otherwise.
func StrictEquals(a, b JSValue) JSValue {
	if _, ok := a.(Unknown); ok {
		return Unknown{}
	}
	if _, ok := b.(Unknown); ok {
		return Unknown{}
	}
	return Boolean(strictEquals(a, b))
}

// AbstractEquals implements ES5.1 §11.9.3 (the `==` algorithm), including
// its recursive ToPrimitive/ToNumber coercion steps.
func AbstractEquals(vm *VM, a, b JSValue) (JSValue, error) {
	if _, ok := a.(Unknown); ok {
		return Unknown{}, nil
	}
	if _, ok := b.(Unknown); ok {
		return Unknown{}, nil
	}
	if a.Category() == b.Category() {
		return Boolean(strictEquals(a, b)), nil
	}

	isNullish := func(v JSValue) bool {
		switch v.(type) {
		case Undefined, Null:
			return true
		}
		return false
	}
	if isNullish(a) && isNullish(b) {
		return Boolean(true), nil
	}
	if isNullish(a) || isNullish(b) {
		return Boolean(false), nil
	}

	if isNum, isStr := isNumberKind(a), isStringKind(b); isNum && isStr {
		bn, err := ToNumber(vm, b)
		if err != nil {
			return nil, err
		}
		return AbstractEquals(vm, a, bn)
	}
	if isStringKind(a) && isNumberKind(b) {
		an, err := ToNumber(vm, a)
		if err != nil {
			return nil, err
		}
		return AbstractEquals(vm, an, b)
	}
	if _, ok := a.(Boolean); ok {
		an, err := ToNumber(vm, a)
		if err != nil {
			return nil, err
		}
		return AbstractEquals(vm, an, b)
	}
	if _, ok := b.(Boolean); ok {
		bn, err := ToNumber(vm, b)
		if err != nil {
			return nil, err
		}
		return AbstractEquals(vm, a, bn)
	}
	if (isNumberKind(a) || isStringKind(a)) {
		if _, ok := b.(*Object); ok {
			bp, err := ToPrimitive(vm, b, "")
			if err != nil {
				return nil, err
			}
			return AbstractEquals(vm, a, bp)
		}
	}
	if _, ok := a.(*Object); ok {
		if isNumberKind(b) || isStringKind(b) {
			ap, err := ToPrimitive(vm, a, "")
			if err != nil {
				return nil, err
			}
			return AbstractEquals(vm, ap, b)
		}
	}
	return Boolean(false), nil
}

func isNumberKind(v JSValue) bool { _, ok := v.(Number); return ok }
func isStringKind(v JSValue) bool { _, ok := v.(String); return ok }

// sameValueZero is like sameValue but treats +0 and -0 as equal; reserved
// for Array.prototype.indexOf-adjacent semantics should the built-in
// library need it (ES5.1 itself only has sameValue, this is here because
// descriptor.go's sameValue is +0/-0-sensitive and some later built-in may
// legitimately want the zero-insensitive variant instead of rolling its own).
func sameValueZero(a, b JSValue) bool {
	if an, ok := a.(Number); ok {
		if bn, ok := b.(Number); ok {
			if math.IsNaN(float64(an)) && math.IsNaN(float64(bn)) {
				return true
			}
			return float64(an) == float64(bn)
		}
		return false
	}
	return sameValue(a, b)
}

// compareResult is the three-valued outcome of an abstract relational
// comparison (ES5.1 §11.8.5): true, false, or undefined (meaning NaN was
// involved, which relational operators treat as false but `!(a<b)`-style
// negations must not).
type compareResult int

const (
	cmpFalse compareResult = iota
	cmpTrue
	cmpUndefined
)

// abstractRelationalCompare implements ES5.1 §11.8.5. leftFirst controls
// evaluation order of the ToPrimitive conversions, mattering only when x or
// y has valueOf/toString side effects (rare in static analysis but the
// order still affects which plugin events fire first).
func abstractRelationalCompare(vm *VM, x, y JSValue, leftFirst bool) (compareResult, error) {
	if _, ok := x.(Unknown); ok {
		return cmpUndefined, nil
	}
	if _, ok := y.(Unknown); ok {
		return cmpUndefined, nil
	}

	var px, py JSValue
	var err error
	if leftFirst {
		px, err = ToPrimitive(vm, x, "number")
		if err != nil {
			return cmpFalse, err
		}
		py, err = ToPrimitive(vm, y, "number")
		if err != nil {
			return cmpFalse, err
		}
	} else {
		py, err = ToPrimitive(vm, y, "number")
		if err != nil {
			return cmpFalse, err
		}
		px, err = ToPrimitive(vm, x, "number")
		if err != nil {
			return cmpFalse, err
		}
	}

	if psx, ok := px.(String); ok {
		if psy, ok := py.(String); ok {
			if psx < psy {
				return cmpTrue, nil
			}
			return cmpFalse, nil
		}
	}

	nxv, err := ToNumber(vm, px)
	if err != nil {
		return cmpFalse, err
	}
	nyv, err := ToNumber(vm, py)
	if err != nil {
		return cmpFalse, err
	}
	nx, ok := nxv.(Number)
	if !ok {
		return cmpUndefined, nil
	}
	ny, ok := nyv.(Number)
	if !ok {
		return cmpUndefined, nil
	}
	if math.IsNaN(float64(nx)) || math.IsNaN(float64(ny)) {
		return cmpUndefined, nil
	}
	if nx < ny {
		return cmpTrue, nil
	}
	return cmpFalse, nil
}

// IsLessThan implements the `<` operator: an undefined compare result
// yields Boolean(false) per ES5.1 §11.8.1.
func IsLessThan(vm *VM, x, y JSValue, leftFirst bool) (JSValue, error) {
	r, err := abstractRelationalCompare(vm, x, y, leftFirst)
	if err != nil {
		return nil, err
	}
	if r == cmpUndefined {
		if isOperandUnknown(x, y) {
			return Unknown{}, nil
		}
		return Boolean(false), nil
	}
	return Boolean(r == cmpTrue), nil
}

// IsGreaterThan implements `>` as `y < x` with operands swapped (ES5.1
// §11.8.2).
func IsGreaterThan(vm *VM, x, y JSValue) (JSValue, error) {
	return IsLessThan(vm, y, x, false)
}

// IsLessOrEqual implements `<=` as `!(y < x)` (ES5.1 §11.8.3), where an
// undefined inner result makes the whole expression false, not true.
func IsLessOrEqual(vm *VM, x, y JSValue) (JSValue, error) {
	r, err := abstractRelationalCompare(vm, y, x, false)
	if err != nil {
		return nil, err
	}
	if r == cmpUndefined {
		if isOperandUnknown(x, y) {
			return Unknown{}, nil
		}
		return Boolean(false), nil
	}
	return Boolean(r == cmpFalse), nil
}

// IsGreaterOrEqual implements `>=` as `!(x < y)` (ES5.1 §11.8.4).
func IsGreaterOrEqual(vm *VM, x, y JSValue) (JSValue, error) {
	r, err := abstractRelationalCompare(vm, x, y, true)
	if err != nil {
		return nil, err
	}
	if r == cmpUndefined {
		if isOperandUnknown(x, y) {
			return Unknown{}, nil
		}
		return Boolean(false), nil
	}
	return Boolean(r == cmpFalse), nil
}

func isOperandUnknown(x, y JSValue) bool {
	_, xu := x.(Unknown)
	_, yu := y.(Unknown)
	return xu || yu
}
