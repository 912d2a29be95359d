package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionCallRebindsThis(t *testing.T) {
	_, err := runScript(t, `
		function whoAmI() { return this.name; }
		var obj = { name: "bob" };
		if (whoAmI.call(obj) !== "bob") { throw new Error("call failed"); }
	`)
	require.NoError(t, err)
}

func TestFunctionApplySpreadsArrayArgs(t *testing.T) {
	_, err := runScript(t, `
		function sum(a, b, c) { return a + b + c; }
		if (sum.apply(null, [1, 2, 3]) !== 6) { throw new Error("apply failed"); }
	`)
	require.NoError(t, err)
}

func TestFunctionBindPresetsThisAndPartialArgs(t *testing.T) {
	_, err := runScript(t, `
		function add(a, b) { return a + b; }
		var add5 = add.bind(null, 5);
		if (add5(3) !== 8) { throw new Error("bind failed"); }
	`)
	require.NoError(t, err)
}

func TestFunctionBindPreservesThisOnNewCall(t *testing.T) {
	_, err := runScript(t, `
		function F(v) { this.v = v; }
		var BoundF = F.bind(null, 1);
		var instance = new BoundF();
		if (instance.v !== 1) { throw new Error("bound constructor call failed"); }
	`)
	require.NoError(t, err)
}

func TestFunctionToStringDistinguishesNativeFromScript(t *testing.T) {
	_, err := runScript(t, `
		function f() {}
		if (f.toString().indexOf("ecmascript") === -1) { throw new Error("script function toString wrong"); }
		if (Math.abs.toString().indexOf("native") === -1) { throw new Error("native function toString wrong"); }
	`)
	require.NoError(t, err)
}

func TestFunctionConstructorFromSourceIsUnsupported(t *testing.T) {
	_, err := runScript(t, `
		new Function("a", "b", "return a + b;");
	`)
	require.Error(t, err)
}
