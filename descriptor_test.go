package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefineOwnPropertyNonConfigurableRejectsRedefine(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)

	ok, err := obj.DefineOwnProperty(vm, PropName("x"), &PropertyDescriptor{
		Value: Number(1), HasValue: true, HasWritable: true, Writable: false,
		HasEnumerable: true, Enumerable: true, HasConfigurable: true, Configurable: false,
	}, false)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = obj.DefineOwnProperty(vm, PropName("x"), &PropertyDescriptor{
		Value: Number(2), HasValue: true,
	}, true)
	require.Error(t, err)
	_, isThrow := err.(*ThrowCompletion)
	require.True(t, isThrow)
}

func TestDefineOwnPropertySameValueIsNoOp(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)

	desc := &PropertyDescriptor{
		Value: Number(1), HasValue: true, HasWritable: true, Writable: false,
		HasEnumerable: true, Enumerable: true, HasConfigurable: true, Configurable: false,
	}
	ok, err := obj.DefineOwnProperty(vm, PropName("x"), desc, false)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = obj.DefineOwnProperty(vm, PropName("x"), desc, true)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPutRespectsNonWritable(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)
	obj.setOwn(PropName("x"), dataDescriptor(Number(1), false, true, true))

	err := obj.Put(vm, PropName("x"), Number(2), false)
	require.NoError(t, err)
	v, err := obj.Get(vm, PropName("x"))
	require.NoError(t, err)
	require.Equal(t, Number(1), v)

	err = obj.Put(vm, PropName("x"), Number(2), true)
	require.Error(t, err)
}

func TestGetWalksPrototypeChain(t *testing.T) {
	vm := newTestVM(t)
	base := NewObject(vm.Prototypes.Object)
	base.setOwn(PropName("inherited"), dataDescriptor(Number(7), true, true, true))
	derived := NewObject(base)

	v, err := derived.Get(vm, PropName("inherited"))
	require.NoError(t, err)
	require.Equal(t, Number(7), v)
}

func TestDeleteNonConfigurableFails(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)
	obj.setOwn(PropName("x"), dataDescriptor(Number(1), true, true, false))

	ok, err := obj.Delete(vm, PropName("x"), false)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = obj.Delete(vm, PropName("x"), true)
	require.Error(t, err)
}

func TestSameValueNaNAndZero(t *testing.T) {
	nan := Number(math.NaN())
	require.True(t, sameValue(nan, nan))
	require.False(t, sameValue(Number(0), Number(math.Copysign(0, -1))))
}
