package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeUnknownPanicsInExactMode(t *testing.T) {
	eng := NewEngine(Config{ExactMode: true}, nil)
	vm := eng.newVM()

	defer func() {
		r := recover()
		require.NotNil(t, r, "MakeUnknown must panic under ExactMode")
	}()
	vm.MakeUnknown()
}

func TestMakeUnknownAllowedOutsideExactMode(t *testing.T) {
	vm := newTestVM(t)
	v := vm.MakeUnknown()
	_, ok := v.(Unknown)
	require.True(t, ok)
}

func TestNewObjectDefaultsExtensibleAndClassName(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)
	require.True(t, obj.Extensible)
	require.Equal(t, "Object", obj.ClassName)
	require.Same(t, vm.Prototypes.Object, obj.Prototype)
}

func TestIsCallableDistinguishesFunctionsFromPlainObjects(t *testing.T) {
	vm := newTestVM(t)
	plain := NewObject(vm.Prototypes.Object)
	require.False(t, plain.IsCallable())

	fn := NewObject(vm.Prototypes.Function)
	fn.Function = &FunctionData{Native: func(vm *VM, this JSValue, args []JSValue, flags FunctionFlags) (JSValue, error) {
		return Undefined{}, nil
	}}
	require.True(t, fn.IsCallable())

	var nilObj *Object
	require.False(t, nilObj.IsCallable())
}

func TestPropNameRoundTripsString(t *testing.T) {
	n := PropName("length")
	require.Equal(t, "length", n.String())
}

func TestValueCategoryKinds(t *testing.T) {
	require.Equal(t, KindUndefined, Undefined{}.Category())
	require.Equal(t, KindNull, Null{}.Category())
	require.Equal(t, KindBoolean, Boolean(true).Category())
	require.Equal(t, KindNumber, Number(1).Category())
	require.Equal(t, KindString, String("s").Category())
	require.Equal(t, KindUnknown, Unknown{}.Category())

	vm := newTestVM(t)
	require.Equal(t, KindObject, NewObject(vm.Prototypes.Object).Category())
}
