package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorToStringWithAndWithoutMessage(t *testing.T) {
	_, err := runScript(t, `
		var e1 = new Error("boom");
		if (e1.toString() !== "Error: boom") { throw new Error("unexpected: " + e1.toString()); }

		var e2 = new Error();
		if (e2.toString() !== "Error") { throw new Error("unexpected: " + e2.toString()); }
	`)
	require.NoError(t, err)
}

func TestErrorSubtypesHaveOwnName(t *testing.T) {
	_, err := runScript(t, `
		var te = new TypeError("bad type");
		if (te.name !== "TypeError") { throw new Error("unexpected name: " + te.name); }
		if (te.toString() !== "TypeError: bad type") { throw new Error("unexpected: " + te.toString()); }
	`)
	require.NoError(t, err)
}

func TestErrorSubtypeInheritsErrorPrototypeToString(t *testing.T) {
	_, err := runScript(t, `
		if (RangeError.prototype.toString !== Error.prototype.toString) {
			throw new Error("RangeError.prototype should inherit toString from Error.prototype");
		}
	`)
	require.NoError(t, err)
}
