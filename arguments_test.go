package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewArgumentsObjectSloppyHasCalleeAndLength(t *testing.T) {
	vm := newTestVM(t)
	args := newArgumentsObject(vm, []string{"a", "b"}, []JSValue{Number(1), Number(2)}, false)

	length, err := args.Get(vm, PropName("length"))
	require.NoError(t, err)
	require.Equal(t, Number(2), length)

	callee, err := args.Get(vm, PropName("callee"))
	require.NoError(t, err)
	_, isUndef := callee.(Undefined)
	require.False(t, isUndef)
}

func TestNewArgumentsObjectStrictPoisonsCalleeAndCaller(t *testing.T) {
	vm := newTestVM(t)
	args := newArgumentsObject(vm, []string{"a"}, []JSValue{Number(1)}, true)

	desc := args.GetOwnProperty(PropName("callee"))
	require.NotNil(t, desc)
	require.True(t, desc.HasGet)
	_, err := desc.Get.Invoke(vm, args, nil, FunctionFlags{})
	require.Error(t, err)
}

func TestArgsMapGetReflectsLiveBindingUntilBroken(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	require.NoError(t, env.Record.CreateMutableBinding(vm, PropName("a"), true))
	require.NoError(t, env.Record.SetMutableBinding(vm, PropName("a"), Number(1), false))

	args := NewObject(vm.Prototypes.Object)
	args.ArgsMap = &ArgumentsParameterMap{
		IndexToParam: map[int]Name{0: PropName("a")},
		Env:          env,
	}

	v, linked, err := args.argsMapGet(vm, 0)
	require.NoError(t, err)
	require.True(t, linked)
	require.Equal(t, Number(1), v)

	require.NoError(t, env.Record.SetMutableBinding(vm, PropName("a"), Number(99), false))
	v, linked, err = args.argsMapGet(vm, 0)
	require.NoError(t, err)
	require.True(t, linked)
	require.Equal(t, Number(99), v)

	args.breakArgsLink(0)
	_, linked, err = args.argsMapGet(vm, 0)
	require.NoError(t, err)
	require.False(t, linked)
}

func TestArgsMapSetWritesThroughToBinding(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	require.NoError(t, env.Record.CreateMutableBinding(vm, PropName("x"), true))
	require.NoError(t, env.Record.SetMutableBinding(vm, PropName("x"), Number(0), false))

	args := NewObject(vm.Prototypes.Object)
	args.ArgsMap = &ArgumentsParameterMap{
		IndexToParam: map[int]Name{0: PropName("x")},
		Env:          env,
	}

	ok, err := args.argsMapSet(vm, 0, Number(7))
	require.NoError(t, err)
	require.True(t, ok)

	v, err := env.Record.GetBindingValue(vm, PropName("x"), false)
	require.NoError(t, err)
	require.Equal(t, Number(7), v)
}

func TestThrowTypeErrorAccessorIsSingleton(t *testing.T) {
	vm := newTestVM(t)
	a := vm.throwTypeErrorAccessor()
	b := vm.throwTypeErrorAccessor()
	require.Same(t, a, b)
}
