package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestVM builds a fresh VM with the built-in library wired up, the same
// way Engine.Run does, but without requiring a source file to drive it --
// used by the lower-level unit tests in this package.
func newTestVM(t *testing.T) *VM {
	t.Helper()
	eng := NewEngine(Config{MaxCycles: 1000, InvokeMethods: true, Blacklist: DefaultBlacklist()}, nil)
	return eng.newVM()
}

func runScript(t *testing.T, src string) ([]Report, error) {
	t.Helper()
	eng := NewEngine(Config{MaxCycles: 10000, InvokeMethods: true}, nil)
	return eng.Run(strings.NewReader(src), "<test>")
}

func TestRunBasicArithmetic(t *testing.T) {
	_, err := runScript(t, `
		var x = 1 + 2 * 3;
		if (x !== 7) { throw new Error("bad arithmetic: " + x); }
	`)
	require.NoError(t, err)
}

func TestRunVarHoisting(t *testing.T) {
	_, err := runScript(t, `
		function f() {
			if (false) { var y = 1; }
			return typeof y;
		}
		if (f() !== "undefined") { throw new Error("y should be hoisted as undefined"); }
	`)
	require.NoError(t, err)
}

func TestRunFunctionDeclarationHoisting(t *testing.T) {
	_, err := runScript(t, `
		if (typeof hoisted !== "function") { throw new Error("function declaration not hoisted"); }
		function hoisted() {}
	`)
	require.NoError(t, err)
}

func TestRunArgumentsAliasing(t *testing.T) {
	_, err := runScript(t, `
		function f(a) {
			arguments[0] = 99;
			return a;
		}
		if (f(1) !== 99) { throw new Error("arguments alias broken"); }
	`)
	require.NoError(t, err)
}

func TestRunStrictArgumentsNoAlias(t *testing.T) {
	_, err := runScript(t, `
		"use strict";
		function f(a) {
			arguments[0] = 99;
			return a;
		}
		if (f(1) !== 1) { throw new Error("strict mode should not alias arguments"); }
	`)
	require.NoError(t, err)
}

func TestRunForInOrderAndPrototypeChain(t *testing.T) {
	_, err := runScript(t, `
		function Base() {}
		Base.prototype.inherited = 1;
		var obj = new Base();
		obj.own = 2;
		var seen = [];
		for (var k in obj) { seen.push(k); }
		if (seen.length !== 2) { throw new Error("expected 2 enumerable keys, got " + seen.length); }
		if (seen.join(",") !== "own,inherited") { throw new Error("unexpected key order: " + seen.join(",")); }
	`)
	require.NoError(t, err)
}

func TestRunTryCatchFinally(t *testing.T) {
	_, err := runScript(t, `
		var trace = [];
		try {
			trace.push("try");
			throw "boom";
		} catch (e) {
			trace.push("catch:" + e);
		} finally {
			trace.push("finally");
		}
		if (trace.join(",") !== "try,catch:boom,finally") {
			throw new Error("unexpected trace: " + trace.join(","));
		}
	`)
	require.NoError(t, err)
}

func TestRunSwitchFallthrough(t *testing.T) {
	_, err := runScript(t, `
		function classify(n) {
			var out = "";
			switch (n) {
				case 1:
				case 2:
					out += "low";
					break;
				default:
					out += "high";
			}
			return out;
		}
		if (classify(1) !== "low") { throw new Error("expected low"); }
		if (classify(9) !== "high") { throw new Error("expected high"); }
	`)
	require.NoError(t, err)
}

func TestRunJSONRoundTrip(t *testing.T) {
	_, err := runScript(t, `
		var obj = { a: 1, b: [1, 2, 3], c: "s" };
		var text = JSON.stringify(obj);
		var back = JSON.parse(text);
		if (back.a !== 1 || back.b.length !== 3 || back.c !== "s") {
			throw new Error("round-trip mismatch: " + text);
		}
	`)
	require.NoError(t, err)
}

func TestRunUncaughtThrowIsFatal(t *testing.T) {
	_, err := runScript(t, `throw new TypeError("nope");`)
	require.Error(t, err)
}

func TestRunParseError(t *testing.T) {
	_, err := runScript(t, `function( { `)
	require.Error(t, err)
}
