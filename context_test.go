package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestAmbiguousBlockNestingCounts(t *testing.T) {
	vm := newTestVM(t)
	require.False(t, vm.InAmbiguousMode())

	vm.EnterAmbiguousBlock()
	require.True(t, vm.InAmbiguousMode())
	vm.EnterAmbiguousBlock()
	vm.ExitAmbiguousBlock()
	require.True(t, vm.InAmbiguousMode())
	vm.ExitAmbiguousBlock()
	require.False(t, vm.InAmbiguousMode())
}

func TestProcessInSkippedModeRunsAndSwallowsErrors(t *testing.T) {
	vm := newTestVM(t)
	require.False(t, vm.InSkippedMode())

	var sawSkipped bool
	ran := vm.ProcessInSkippedMode("Array.prototype.forEach", func() error {
		sawSkipped = vm.InSkippedMode()
		return vm.ThrowTypeError("boom")
	})
	require.True(t, ran)
	require.True(t, sawSkipped)
	require.False(t, vm.InSkippedMode())
}

func TestProcessInSkippedModeHonorsBlacklist(t *testing.T) {
	vm := newTestVM(t)
	vm.Config.Blacklist = map[string]bool{"Array.prototype.forEach": true}

	called := false
	ran := vm.ProcessInSkippedMode("Array.prototype.forEach", func() error {
		called = true
		return nil
	})
	require.False(t, ran)
	require.False(t, called)
}

func TestSkippedModeDivertsWritesToAlternates(t *testing.T) {
	vm := newTestVM(t)
	env := NewDeclarativeEnvironment(nil)
	require.NoError(t, env.Record.CreateMutableBinding(vm, PropName("x"), true))
	require.NoError(t, env.Record.SetMutableBinding(vm, PropName("x"), Number(1), false))

	vm.ProcessInSkippedMode("probe", func() error {
		return env.Record.SetMutableBinding(vm, PropName("x"), Number(99), false)
	})

	v, err := env.Record.GetBindingValue(vm, PropName("x"), false)
	require.NoError(t, err)
	require.Equal(t, Number(1), v, "skipped-mode write must not land on the primary binding")
}

func TestPushPopContextRestoresPrevious(t *testing.T) {
	vm := newTestVM(t)
	base := vm.top()

	child := &ExecutionContext{
		LexicalEnvironment:  base.LexicalEnvironment,
		VariableEnvironment: base.VariableEnvironment,
		ThisBinding:         Undefined{},
		Strict:              true,
	}
	vm.PushContext(child)
	require.Same(t, child, vm.top())
	require.True(t, vm.IsStrict())

	vm.PopContext()
	require.Same(t, base, vm.top())
}

func TestReportsAccumulateIndependentOfZapLogger(t *testing.T) {
	vm := newTestVM(t)
	vm.diagnostics.warn("first %s", "warning")
	vm.diagnostics.error("SomeClass", "second warning")

	reports := vm.Reports()
	require.Len(t, reports, 2)

	diff := cmp.Diff([]Report{
		{Severity: "warning", Message: "first warning"},
		{Severity: "error", Message: "second warning", Class: "SomeClass"},
	}, reports, cmpopts.IgnoreFields(Report{}, "ID", "Filename"))
	require.Empty(t, diff)
}
