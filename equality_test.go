package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrictEquals(t *testing.T) {
	vm := newTestVM(t)

	cases := []struct {
		name     string
		a, b     JSValue
		expected bool
	}{
		{"same number", Number(1), Number(1), true},
		{"different number", Number(1), Number(2), false},
		{"string equal", String("a"), String("a"), true},
		{"type mismatch", Number(1), String("1"), false},
		{"null vs undefined", Null{}, Undefined{}, false},
		{"nan not equal to itself", Number(math.NaN()), Number(math.NaN()), false},
		{"object identity", mustObj(vm), mustObj(vm), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := StrictEquals(c.a, c.b)
			b, ok := got.(Boolean)
			require.True(t, ok)
			require.Equal(t, c.expected, bool(b))
		})
	}
}

func TestAbstractEqualsCoercion(t *testing.T) {
	vm := newTestVM(t)

	cases := []struct {
		name     string
		a, b     JSValue
		expected bool
	}{
		{"number vs numeric string", Number(1), String("1"), true},
		{"null vs undefined", Null{}, Undefined{}, true},
		{"bool vs number", Boolean(true), Number(1), true},
		{"bool false vs empty string", Boolean(false), String(""), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := AbstractEquals(vm, c.a, c.b)
			require.NoError(t, err)
			b, ok := got.(Boolean)
			require.True(t, ok)
			require.Equal(t, c.expected, bool(b))
		})
	}
}

func TestIsLessThan(t *testing.T) {
	vm := newTestVM(t)

	got, err := IsLessThan(vm, Number(1), Number(2), true)
	require.NoError(t, err)
	b, ok := got.(Boolean)
	require.True(t, ok)
	require.True(t, bool(b))

	got, err = IsLessThan(vm, String("a"), String("b"), true)
	require.NoError(t, err)
	b, ok = got.(Boolean)
	require.True(t, ok)
	require.True(t, bool(b))
}

func mustObj(vm *VM) *Object {
	return NewObject(vm.Prototypes.Object)
}
