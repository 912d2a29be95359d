package engine

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// setupGlobalFunctions wires the free-standing global functions ES5.1
// §15.1.2/§15.1.3 names (parseInt, parseFloat, isNaN, isFinite, the four
// URI en/decoders) plus the NaN/Infinity/undefined value properties.
func setupGlobalFunctions(vm *VM) {
	vm.defineGlobal("NaN", Number(math.NaN()))
	vm.defineGlobal("Infinity", Number(math.Inf(1)))
	vm.defineGlobal("undefined", Undefined{})

	defineNativeGlobal(vm, "parseInt", 2, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		sv, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		s := strings.TrimSpace(string(sv.(String)))

		radix := 0
		if radixVal := arg(args, 1); !isUndefinedValue(radixVal) {
			rn, known, err := ToInt32(vm, radixVal)
			if err != nil {
				return nil, err
			}
			if known {
				radix = int(rn)
			} else {
				return vm.MakeUnknown(), nil
			}
		}

		negative := false
		if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
			negative = s[0] == '-'
			s = s[1:]
		}

		stripPrefix := radix == 0 || radix == 16
		if stripPrefix && len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
			s = s[2:]
			radix = 16
		}
		if radix == 0 {
			radix = 10
		}
		if radix < 2 || radix > 36 {
			return Number(math.NaN()), nil
		}

		end := 0
		for end < len(s) && digitValue(s[end]) < radix {
			end++
		}
		if end == 0 {
			return Number(math.NaN()), nil
		}
		n, err := strconv.ParseUint(s[:end], radix, 64)
		if err != nil {
			if big, ok := new(bigFallback).parse(s[:end], radix); ok {
				if negative {
					big = -big
				}
				return Number(big), nil
			}
			return Number(math.NaN()), nil
		}
		result := float64(n)
		if negative {
			result = -result
		}
		return Number(result), nil
	})

	defineNativeGlobal(vm, "parseFloat", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		sv, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		s := strings.TrimSpace(string(sv.(String)))
		end := leadingFloatLiteralLength(s)
		if end == 0 {
			return Number(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return Number(math.NaN()), nil
		}
		return Number(f), nil
	})

	defineNativeGlobal(vm, "isNaN", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		nv, err := ToNumber(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		n, ok := nv.(Number)
		if !ok {
			return vm.MakeUnknown(), nil
		}
		return Boolean(math.IsNaN(float64(n))), nil
	})

	defineNativeGlobal(vm, "isFinite", 1, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		nv, err := ToNumber(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		n, ok := nv.(Number)
		if !ok {
			return vm.MakeUnknown(), nil
		}
		f := float64(n)
		return Boolean(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
	})

	defineNativeGlobal(vm, "encodeURIComponent", 1, uriTransform(func(s string) (string, error) {
		return url.QueryEscape(s), nil
	}))
	defineNativeGlobal(vm, "decodeURIComponent", 1, uriTransform(url.QueryUnescape))
	defineNativeGlobal(vm, "encodeURI", 1, uriTransform(func(s string) (string, error) {
		return (&url.URL{Path: s}).String(), nil
	}))
	defineNativeGlobal(vm, "decodeURI", 1, uriTransform(url.QueryUnescape))
}

func defineNativeGlobal(vm *VM, name string, length int, fn NativeFunc) {
	vm.defineGlobal(name, nativeMethod(vm, name, length, fn))
}

func uriTransform(f func(string) (string, error)) NativeFunc {
	return func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		sv, err := ToString(vm, arg(args, 0))
		if err != nil {
			return nil, err
		}
		out, err := f(string(sv.(String)))
		if err != nil {
			return nil, vm.ThrowTypeError("URI malformed")
		}
		return String(out), nil
	}
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

// bigFallback handles the rare parseInt input that overflows uint64 by
// accumulating in float64, matching parseInt's own documented behaviour of
// losing precision rather than failing past 2^53.
type bigFallback struct{}

func (bigFallback) parse(s string, radix int) (float64, bool) {
	if s == "" {
		return 0, false
	}
	var acc float64
	for i := 0; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= radix {
			return 0, false
		}
		acc = acc*float64(radix) + float64(d)
	}
	return acc, true
}

// leadingFloatLiteralLength scans the ES5.1 §9.3.1 StrDecimalLiteral
// grammar greedily from the front of s, returning how many leading bytes
// form a valid float prefix (0 if none).
func leadingFloatLiteralLength(s string) int {
	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	start := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	hasIntPart := i > start
	hasFracPart := false
	if i < n && s[i] == '.' {
		i++
		fracStart := i
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		hasFracPart = i > fracStart
	}
	if !hasIntPart && !hasFracPart {
		return 0
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		save := i
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expStart := j
		for j < n && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j > expStart {
			i = j
		} else {
			i = save
		}
	}
	return i
}
