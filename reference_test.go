package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetValuePassesThroughNonReference(t *testing.T) {
	vm := newTestVM(t)
	v, err := GetValue(vm, Number(5))
	require.NoError(t, err)
	require.Equal(t, Number(5), v)
}

func TestGetValuePropertyReference(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)
	obj.setOwn(PropName("x"), dataDescriptor(Number(9), true, true, true))

	ref := NewPropertyReference(obj, PropName("x"), false)
	v, err := GetValue(vm, ref)
	require.NoError(t, err)
	require.Equal(t, Number(9), v)
}

func TestPutValuePropertyReference(t *testing.T) {
	vm := newTestVM(t)
	obj := NewObject(vm.Prototypes.Object)

	ref := NewPropertyReference(obj, PropName("y"), false)
	require.NoError(t, PutValue(vm, ref, String("hi")))

	v, err := obj.Get(vm, PropName("y"))
	require.NoError(t, err)
	require.Equal(t, String("hi"), v)
}

func TestPutValueStrictPrimitiveBaseThrows(t *testing.T) {
	vm := newTestVM(t)
	ref := NewPropertyReference(String("abc"), PropName("z"), true)
	err := PutValue(vm, ref, Number(1))
	require.Error(t, err)
}

func TestPutValueSloppyPrimitiveBaseIsNoOp(t *testing.T) {
	vm := newTestVM(t)
	ref := NewPropertyReference(String("abc"), PropName("z"), false)
	require.NoError(t, PutValue(vm, ref, Number(1)))
}

func TestIsPropertyReferenceDistinguishesEnvBase(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	require.NoError(t, env.Record.CreateMutableBinding(vm, PropName("a"), true))

	idRef, err := GetIdentifierReference(vm, env, PropName("a"), false)
	require.NoError(t, err)
	require.False(t, idRef.IsPropertyReference())

	obj := NewObject(vm.Prototypes.Object)
	propRef := NewPropertyReference(obj, PropName("a"), false)
	require.True(t, propRef.IsPropertyReference())
}

func TestHasPrimitiveBase(t *testing.T) {
	ref := NewPropertyReference(String("s"), PropName("length"), false)
	require.True(t, ref.HasPrimitiveBase())

	vm := newTestVM(t)
	objRef := NewPropertyReference(NewObject(vm.Prototypes.Object), PropName("x"), false)
	require.False(t, objRef.HasPrimitiveBase())
}

func TestPutValueUnresolvableStrictThrows(t *testing.T) {
	vm := newTestVM(t)
	ref := &Reference{name: PropName("undeclared"), strict: true, isUnresolvable: true}
	err := PutValue(vm, ref, Number(1))
	require.Error(t, err)
}

func TestPutValueUnresolvableSloppyCreatesGlobal(t *testing.T) {
	vm := newTestVM(t)
	ref := &Reference{name: PropName("undeclaredGlobal"), strict: false, isUnresolvable: true}
	require.NoError(t, PutValue(vm, ref, Number(3)))

	v, err := vm.GlobalObject.Get(vm, PropName("undeclaredGlobal"))
	require.NoError(t, err)
	require.Equal(t, Number(3), v)
}
