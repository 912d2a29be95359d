package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONStringifyIndent(t *testing.T) {
	_, err := runScript(t, `
		var text = JSON.stringify({a: 1}, null, 2);
		if (text.indexOf("\n") === -1) { throw new Error("expected indented output"); }
	`)
	require.NoError(t, err)
}

func TestJSONStringifyDropsFunctionsAndUndefined(t *testing.T) {
	_, err := runScript(t, `
		var text = JSON.stringify({a: undefined, b: function(){}, c: 1});
		if (text !== '{"c":1}') { throw new Error("unexpected: " + text); }
	`)
	require.NoError(t, err)
}

func TestJSONStringifyCircularThrows(t *testing.T) {
	_, err := runScript(t, `
		var o = {};
		o.self = o;
		JSON.stringify(o);
	`)
	require.Error(t, err)
}

func TestJSONParseReviver(t *testing.T) {
	_, err := runScript(t, `
		var result = JSON.parse('{"a":1,"b":2}', function(k, v) {
			if (k === "a") { return undefined; }
			return v;
		});
		if (result.a !== undefined || result.b !== 2) {
			throw new Error("reviver did not apply");
		}
	`)
	require.NoError(t, err)
}
