package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegExpTestLiteral(t *testing.T) {
	_, err := runScript(t, `
		var re = /ab+c/;
		if (re.test("abbbc") !== true) { throw new Error("expected match"); }
		if (re.test("xyz") !== false) { throw new Error("expected no match"); }
	`)
	require.NoError(t, err)
}

func TestRegExpConstructorFromString(t *testing.T) {
	_, err := runScript(t, `
		var re = new RegExp("foo", "i");
		if (re.ignoreCase !== true) { throw new Error("ignoreCase flag not set"); }
		if (re.test("FOO") !== true) { throw new Error("case-insensitive match failed"); }
	`)
	require.NoError(t, err)
}

func TestRegExpToStringRoundTrips(t *testing.T) {
	_, err := runScript(t, `
		var re = /abc/g;
		if (re.toString() !== "/abc/g") { throw new Error("unexpected toString: " + re.toString()); }
	`)
	require.NoError(t, err)
}

func TestRegExpUnsupportedPatternYieldsUnknownOnTest(t *testing.T) {
	_, err := runScript(t, `
		var re = /(?<=foo)bar/;
		if (typeof re.test("foobar") !== "unknown") { throw new Error("expected unknown for untranslatable pattern"); }
	`)
	require.NoError(t, err)
}
