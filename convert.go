package engine

import (
	"math"
	"strconv"
	"strings"
)

// ToPrimitive implements ES5.1 §9.1. hint is "" (no preference, treated as
// "number"), "number", or "string". Unknown propagates through untouched: a
// conversion applied to an indeterminate value is itself indeterminate
// rather than an error.
func ToPrimitive(vm *VM, v JSValue, hint string) (JSValue, error) {
	obj, ok := v.(*Object)
	if !ok {
		return v, nil
	}
	return obj.DefaultValue(vm, hint)
}

// ToBoolean implements ES5.1 §9.2. Unknown converts to Unknown, not to an
// arbitrary boolean: callers that need to branch on it must go through the
// rule processor's ambiguous-mode machinery rather than calling ToBoolean
// and guessing.
func ToBoolean(vm *VM, v JSValue) JSValue {
	switch t := v.(type) {
	case Undefined:
		return Boolean(false)
	case Null:
		return Boolean(false)
	case Boolean:
		return t
	case Number:
		f := float64(t)
		return Boolean(f != 0 && !math.IsNaN(f))
	case String:
		return Boolean(len(t) != 0)
	case *Object:
		return Boolean(true)
	case Unknown:
		return Unknown{}
	default:
		return Unknown{}
	}
}

// MustBoolean unwraps a known ToBoolean result; callers in exact-mode-only
// code paths (e.g. built-ins that are documented Non-goals for Unknown
// propagation) use this rather than re-deriving the switch.
func MustBoolean(v JSValue) bool {
	b, _ := v.(Boolean)
	return bool(b)
}

// ToNumber implements ES5.1 §9.3.
func ToNumber(vm *VM, v JSValue) (JSValue, error) {
	switch t := v.(type) {
	case Undefined:
		return Number(math.NaN()), nil
	case Null:
		return Number(0), nil
	case Boolean:
		if t {
			return Number(1), nil
		}
		return Number(0), nil
	case Number:
		return t, nil
	case String:
		return Number(stringToNumber(string(t))), nil
	case Unknown:
		return Unknown{}, nil
	case *Object:
		prim, err := ToPrimitive(vm, t, "number")
		if err != nil {
			return nil, err
		}
		if _, isObj := prim.(*Object); isObj {
			return Unknown{}, nil // DefaultValue already threw if truly stuck
		}
		return ToNumber(vm, prim)
	default:
		return Unknown{}, nil
	}
}

// stringToNumber implements ES5.1 §9.3.1's StringNumericLiteral grammar,
// approximated with strconv plus the hex/whitespace/empty-string special
// cases the grammar calls out explicitly.
func stringToNumber(s string) float64 {
	trimmed := strings.TrimFunc(s, isStrWhiteSpace)
	if trimmed == "" {
		return 0
	}
	if len(trimmed) > 2 && trimmed[0] == '0' && (trimmed[1] == 'x' || trimmed[1] == 'X') {
		n, err := strconv.ParseUint(trimmed[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(n)
	}
	switch trimmed {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func isStrWhiteSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0xA0, 0xFEFF, 0x2028, 0x2029:
		return true
	}
	return false
}

// ToInteger implements ES5.1 §9.4.
func ToInteger(vm *VM, v JSValue) (JSValue, error) {
	num, err := ToNumber(vm, v)
	if err != nil {
		return nil, err
	}
	n, ok := num.(Number)
	if !ok {
		return Unknown{}, nil
	}
	f := float64(n)
	if math.IsNaN(f) {
		return Number(0), nil
	}
	if math.IsInf(f, 0) || f == 0 {
		return Number(f), nil
	}
	sign := 1.0
	if f < 0 {
		sign = -1
	}
	return Number(sign * math.Floor(math.Abs(f))), nil
}

// ToInt32 implements ES5.1 §9.5.
func ToInt32(vm *VM, v JSValue) (int32, bool, error) {
	num, err := ToNumber(vm, v)
	if err != nil {
		return 0, false, err
	}
	n, ok := num.(Number)
	if !ok {
		return 0, false, nil
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, nil
	}
	posInt := math.Trunc(f)
	m := math.Mod(posInt, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	u32 := uint32(m)
	if u32 >= 2147483648 {
		return int32(int64(u32) - 4294967296), true, nil
	}
	return int32(u32), true, nil
}

// ToUint32 implements ES5.1 §9.6.
func ToUint32(vm *VM, v JSValue) (uint32, bool, error) {
	num, err := ToNumber(vm, v)
	if err != nil {
		return 0, false, err
	}
	n, ok := num.(Number)
	if !ok {
		return 0, false, nil
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, nil
	}
	posInt := math.Trunc(f)
	m := math.Mod(posInt, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	return uint32(m), true, nil
}

// ToUint16 implements ES5.1 §9.7.
func ToUint16(vm *VM, v JSValue) (uint16, bool, error) {
	u32, known, err := ToUint32(vm, v)
	if err != nil {
		return 0, false, err
	}
	if !known {
		return 0, false, nil
	}
	return uint16(u32 % 65536), true, nil
}

// ToString implements ES5.1 §9.8.
func ToString(vm *VM, v JSValue) (JSValue, error) {
	switch t := v.(type) {
	case Undefined:
		return String("undefined"), nil
	case Null:
		return String("null"), nil
	case Boolean:
		if t {
			return String("true"), nil
		}
		return String("false"), nil
	case Number:
		return String(numberToString(float64(t))), nil
	case String:
		return t, nil
	case Unknown:
		return Unknown{}, nil
	case *Object:
		prim, err := ToPrimitive(vm, t, "string")
		if err != nil {
			return nil, err
		}
		if _, isObj := prim.(*Object); isObj {
			return Unknown{}, nil
		}
		return ToString(vm, prim)
	default:
		return Unknown{}, nil
	}
}

// numberToString implements the relevant parts of ES5.1 §9.8.1's
// ToString-for-Number algorithm, deferring the exact shortest-round-trip
// digit selection to Go's strconv (which satisfies the same round-trip
// requirement as the spec's own number-to-string procedure).
func numberToString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if isNegativeZero(f) {
			return "0" // ES5.1 §9.8.1 step 2: -0 stringifies as "0"
		}
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	// §9.8.1 steps 8-10: exponent form with no zero-padding ("1e+21", "1e-7").
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	return s[:i+2] + strings.TrimLeft(s[i+2:], "0")
}

// ToObject implements ES5.1 §9.9. CheckObjectCoercible's TypeError on
// Undefined/Null must be checked by the caller before ToObject is reached
// in property-access contexts; ToObject itself still rejects them with a
// TypeError, so a call site that wants a non-throwing path (e.g. the
// Object() constructor with no args) handles Undefined/Null before calling
// it.
func ToObject(vm *VM, v JSValue) (*Object, error) {
	switch t := v.(type) {
	case Undefined:
		return nil, vm.ThrowTypeError("cannot convert undefined to object")
	case Null:
		return nil, vm.ThrowTypeError("cannot convert null to object")
	case Boolean:
		return vm.newBooleanWrapper(t), nil
	case Number:
		return vm.newNumberWrapper(t), nil
	case String:
		return vm.newStringWrapper(t), nil
	case *Object:
		return t, nil
	case Unknown:
		return nil, nil // caller must treat a nil,nil return as "unknown object"
	default:
		return nil, nil
	}
}

// CheckObjectCoercible implements ES5.1 §9.10: throws on undefined/null,
// otherwise a no-op (used before property access on primitives, e.g.
// `"x".length`).
func CheckObjectCoercible(vm *VM, v JSValue) error {
	switch v.(type) {
	case Undefined:
		return vm.ThrowTypeError("cannot read property of undefined")
	case Null:
		return vm.ThrowTypeError("cannot read property of null")
	default:
		return nil
	}
}

// IsCallableValue reports whether v has a [[Call]] internal method.
func IsCallableValue(v JSValue) bool {
	obj, ok := v.(*Object)
	return ok && obj.IsCallable()
}

// typeString implements the `typeof` operator (ES5.1 §11.4.3), which is
// intentionally distinct from ValueKind.String(): `typeof null` is
// "object", and `typeof` on a callable object is "function".
func typeString(v JSValue) string {
	switch t := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "object"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case *Object:
		if t.IsCallable() {
			return "function"
		}
		return "object"
	case Unknown:
		return "unknown" // analysis-only extension, never observable in exact mode
	default:
		return "unknown"
	}
}

func mathSignbit(f float64) bool {
	return math.Signbit(f)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

// parseArrayIndex implements the ES5.1 §15.4 "array index" test: a string
// that is the canonical decimal representation of an unsigned 32-bit
// integer less than 2^32-1.
func parseArrayIndex(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	if s == "0" {
		return 0, true
	}
	if s[0] == '0' {
		return 0, false // leading zero disqualifies, except "0" itself
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n >= 4294967295 {
		return 0, false
	}
	return uint32(n), true
}
