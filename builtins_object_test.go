package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectHasOwnPropertyAndPropertyIsEnumerable(t *testing.T) {
	_, err := runScript(t, `
		var o = { a: 1 };
		if (!o.hasOwnProperty("a")) { throw new Error("hasOwnProperty failed"); }
		if (o.hasOwnProperty("toString")) { throw new Error("hasOwnProperty should not see inherited props"); }
		if (!o.propertyIsEnumerable("a")) { throw new Error("propertyIsEnumerable failed"); }
	`)
	require.NoError(t, err)
}

func TestObjectIsPrototypeOf(t *testing.T) {
	_, err := runScript(t, `
		function F() {}
		var instance = new F();
		if (!F.prototype.isPrototypeOf(instance)) { throw new Error("isPrototypeOf failed"); }
	`)
	require.NoError(t, err)
}

func TestObjectKeysOrderMatchesInsertion(t *testing.T) {
	_, err := runScript(t, `
		var o = { b: 1, a: 2, c: 3 };
		var keys = Object.keys(o);
		if (keys.join(",") !== "b,a,c") { throw new Error("unexpected key order: " + keys.join(",")); }
	`)
	require.NoError(t, err)
}

func TestObjectGetPrototypeOf(t *testing.T) {
	_, err := runScript(t, `
		function F() {}
		var instance = new F();
		if (Object.getPrototypeOf(instance) !== F.prototype) { throw new Error("getPrototypeOf failed"); }
	`)
	require.NoError(t, err)
}

func TestObjectDefinePropertyNonEnumerable(t *testing.T) {
	_, err := runScript(t, `
		var o = {};
		Object.defineProperty(o, "hidden", { value: 1, enumerable: false });
		if (o.hidden !== 1) { throw new Error("defineProperty value failed"); }
		var keys = Object.keys(o);
		if (keys.length !== 0) { throw new Error("hidden property should not be enumerable"); }
	`)
	require.NoError(t, err)
}

func TestObjectCreateWithNullPrototype(t *testing.T) {
	_, err := runScript(t, `
		var o = Object.create(null);
		if (Object.getPrototypeOf(o) !== null) { throw new Error("expected null prototype"); }
	`)
	require.NoError(t, err)
}
