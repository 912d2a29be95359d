package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclarativeEnvironmentCreateAndGetBinding(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	require.NoError(t, env.Record.CreateMutableBinding(vm, PropName("x"), true))
	require.NoError(t, env.Record.SetMutableBinding(vm, PropName("x"), Number(5), false))

	v, err := env.Record.GetBindingValue(vm, PropName("x"), false)
	require.NoError(t, err)
	require.Equal(t, Number(5), v)
}

func TestDeclarativeEnvironmentStrictSetUnknownBindingThrows(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	err := env.Record.SetMutableBinding(vm, PropName("missing"), Number(1), true)
	require.Error(t, err)
}

func TestDeclarativeEnvironmentImmutableBindingNotWritable(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironmentRecord()
	env.CreateImmutableBinding(PropName("x"))
	env.InitializeImmutableBinding(PropName("x"), Number(1))

	err := env.SetMutableBinding(vm, PropName("x"), Number(2), true)
	require.Error(t, err)

	v, err := env.GetBindingValue(vm, PropName("x"), true)
	require.NoError(t, err)
	require.Equal(t, Number(1), v)
}

func TestDeclarativeEnvironmentDeleteRespectsDeletable(t *testing.T) {
	env := NewDeclarativeEnvironmentRecord()
	vm := newTestVM(t)
	require.NoError(t, env.CreateMutableBinding(vm, PropName("a"), false))
	require.NoError(t, env.CreateMutableBinding(vm, PropName("b"), true))

	ok, err := env.DeleteBinding(vm, PropName("a"))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = env.DeleteBinding(vm, PropName("b"))
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, env.HasBinding(vm, PropName("b")))
}

func TestObjectEnvironmentRecordProvideThis(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)
	obj.setOwn(PropName("a"), dataDescriptor(Number(1), true, true, true))

	rec := NewObjectEnvironmentRecord(obj, true)
	require.True(t, rec.HasBinding(vm, PropName("a")))
	require.Equal(t, JSValue(obj), rec.ImplicitThisValue())

	plain := NewObjectEnvironmentRecord(obj, false)
	_, isUndef := plain.ImplicitThisValue().(Undefined)
	require.True(t, isUndef)
}

func TestGetIdentifierReferenceWalksOuterScopes(t *testing.T) {
	vm := newTestVM(t)
	outer := NewDeclarativeEnvironment(nil)
	require.NoError(t, outer.Record.CreateMutableBinding(vm, PropName("x"), true))
	require.NoError(t, outer.Record.SetMutableBinding(vm, PropName("x"), Number(42), false))
	inner := NewDeclarativeEnvironment(outer)

	ref, err := GetIdentifierReference(vm, inner, PropName("x"), false)
	require.NoError(t, err)
	require.False(t, ref.IsUnresolvable())

	v, err := GetValue(vm, ref)
	require.NoError(t, err)
	require.Equal(t, Number(42), v)
}

func TestGetIdentifierReferenceUnresolvable(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	ref, err := GetIdentifierReference(vm, env, PropName("nope"), false)
	require.NoError(t, err)
	require.True(t, ref.IsUnresolvable())

	_, err = GetValue(vm, ref)
	require.Error(t, err)
}

func TestLexicalEnvironmentContains(t *testing.T) {
	outer := NewDeclarativeEnvironment(nil)
	inner := NewDeclarativeEnvironment(outer)
	other := NewDeclarativeEnvironment(nil)

	require.True(t, inner.contains(outer))
	require.True(t, inner.contains(inner))
	require.False(t, inner.contains(other))
}
