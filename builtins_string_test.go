package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringCharAtAndCharCodeAt(t *testing.T) {
	_, err := runScript(t, `
		var s = "hello";
		if (s.charAt(1) !== "e") { throw new Error("charAt failed"); }
		if (s.charCodeAt(0) !== 104) { throw new Error("charCodeAt failed"); }
	`)
	require.NoError(t, err)
}

func TestStringSliceSubstring(t *testing.T) {
	_, err := runScript(t, `
		var s = "abcdef";
		if (s.slice(1, 3) !== "bc") { throw new Error("slice failed"); }
		if (s.substring(3, 1) !== "bc") { throw new Error("substring should swap args"); }
	`)
	require.NoError(t, err)
}

func TestStringCaseConversionAndTrim(t *testing.T) {
	_, err := runScript(t, `
		if ("AbC".toLowerCase() !== "abc") { throw new Error("toLowerCase failed"); }
		if ("AbC".toUpperCase() !== "ABC") { throw new Error("toUpperCase failed"); }
		if ("  hi  ".trim() !== "hi") { throw new Error("trim failed"); }
	`)
	require.NoError(t, err)
}

func TestStringSplitAndConcat(t *testing.T) {
	_, err := runScript(t, `
		var parts = "a,b,c".split(",");
		if (parts.length !== 3 || parts[1] !== "b") { throw new Error("split failed"); }
		if ("foo".concat("bar", "baz") !== "foobarbaz") { throw new Error("concat failed"); }
	`)
	require.NoError(t, err)
}

func TestStringIndexOf(t *testing.T) {
	_, err := runScript(t, `
		if ("hello world".indexOf("world") !== 6) { throw new Error("indexOf failed"); }
		if ("hello".indexOf("xyz") !== -1) { throw new Error("indexOf missing failed"); }
	`)
	require.NoError(t, err)
}
