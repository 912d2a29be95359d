package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIntBasicsAndRadix(t *testing.T) {
	_, err := runScript(t, `
		if (parseInt("42") !== 42) { throw new Error("decimal parse failed"); }
		if (parseInt("0x1F") !== 31) { throw new Error("hex-prefix parse failed"); }
		if (parseInt("ff", 16) !== 255) { throw new Error("explicit radix failed"); }
		if (parseInt("  -10") !== -10) { throw new Error("leading whitespace/sign failed"); }
		if (!isNaN(parseInt("xyz"))) { throw new Error("garbage should parse to NaN"); }
	`)
	require.NoError(t, err)
}

func TestParseFloatBasics(t *testing.T) {
	_, err := runScript(t, `
		if (parseFloat("3.14abc") !== 3.14) { throw new Error("float prefix parse failed"); }
		if (parseFloat("Infinity") !== Infinity) { throw new Error("Infinity parse failed"); }
		if (!isNaN(parseFloat("abc"))) { throw new Error("garbage should parse to NaN"); }
	`)
	require.NoError(t, err)
}

func TestIsNaNAndIsFinite(t *testing.T) {
	_, err := runScript(t, `
		if (!isNaN(NaN)) { throw new Error("isNaN(NaN) should be true"); }
		if (isNaN(1)) { throw new Error("isNaN(1) should be false"); }
		if (isFinite(Infinity)) { throw new Error("isFinite(Infinity) should be false"); }
		if (!isFinite(1)) { throw new Error("isFinite(1) should be true"); }
	`)
	require.NoError(t, err)
}

func TestURIEncodeDecodeRoundTrip(t *testing.T) {
	_, err := runScript(t, `
		var encoded = encodeURIComponent("a b&c");
		var decoded = decodeURIComponent(encoded);
		if (decoded !== "a b&c") { throw new Error("round trip failed: " + decoded); }
	`)
	require.NoError(t, err)
}

func TestGlobalValuePropertiesDefined(t *testing.T) {
	_, err := runScript(t, `
		if (typeof NaN !== "number" || !isNaN(NaN)) { throw new Error("NaN global broken"); }
		if (Infinity !== (1/0)) { throw new Error("Infinity global broken"); }
		if (typeof undefined !== "undefined") { throw new Error("undefined global broken"); }
	`)
	require.NoError(t, err)
}
