package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	vm := newTestVM(t)

	cases := []struct {
		name string
		in   JSValue
		want float64
	}{
		{"undefined", Undefined{}, math.NaN()},
		{"null", Null{}, 0},
		{"true", Boolean(true), 1},
		{"false", Boolean(false), 0},
		{"number", Number(42), 42},
		{"numeric string", String("3.5"), 3.5},
		{"hex string", String("0x10"), 16},
		{"whitespace string", String("  7  "), 7},
		{"empty string", String(""), 0},
		{"garbage string", String("abc"), math.NaN()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ToNumber(vm, c.in)
			require.NoError(t, err)
			n, ok := got.(Number)
			require.True(t, ok)
			if math.IsNaN(c.want) {
				require.True(t, math.IsNaN(float64(n)))
			} else {
				require.Equal(t, c.want, float64(n))
			}
		})
	}
}

func TestToInt32Wraps(t *testing.T) {
	vm := newTestVM(t)

	got, known, err := ToInt32(vm, Number(4294967296+5))
	require.NoError(t, err)
	require.True(t, known)
	require.Equal(t, int32(5), got)
}

func TestToStringPrimitives(t *testing.T) {
	vm := newTestVM(t)

	cases := []struct {
		in   JSValue
		want string
	}{
		{Undefined{}, "undefined"},
		{Null{}, "null"},
		{Boolean(true), "true"},
		{Number(0), "0"},
		{Number(-0.0), "0"},
		{Number(math.NaN()), "NaN"},
		{String("hi"), "hi"},
	}
	for _, c := range cases {
		got, err := ToString(vm, c.in)
		require.NoError(t, err)
		s, ok := got.(String)
		require.True(t, ok)
		require.Equal(t, c.want, string(s))
	}
}

func TestCheckObjectCoercibleThrows(t *testing.T) {
	vm := newTestVM(t)

	err := CheckObjectCoercible(vm, Undefined{})
	require.Error(t, err)
	_, isThrow := err.(*ThrowCompletion)
	require.True(t, isThrow)

	require.NoError(t, CheckObjectCoercible(vm, Number(0)))
}

func TestTypeString(t *testing.T) {
	vm := newTestVM(t)
	fn := nativeMethod(vm, "f", 0, func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return Undefined{}, nil
	})

	cases := []struct {
		in   JSValue
		want string
	}{
		{Undefined{}, "undefined"},
		{Null{}, "object"},
		{Boolean(false), "boolean"},
		{Number(1), "number"},
		{String("x"), "string"},
		{fn, "function"},
		{NewObject(vm.Prototypes.Object), "object"},
		{vm.MakeUnknown(), "unknown"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, typeString(c.in))
	}
}
