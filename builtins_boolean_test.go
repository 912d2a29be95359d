package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBooleanToStringAndValueOf(t *testing.T) {
	_, err := runScript(t, `
		var t = new Boolean(true);
		if (t.valueOf() !== true) { throw new Error("valueOf failed"); }
		if (t.toString() !== "true") { throw new Error("toString failed"); }

		var f = new Boolean(false);
		if (f.toString() !== "false") { throw new Error("toString false failed"); }
	`)
	require.NoError(t, err)
}

func TestBooleanCoercionInConditionals(t *testing.T) {
	_, err := runScript(t, `
		if (!new Boolean(false)) { throw new Error("Boolean object should be truthy even when wrapping false"); }
	`)
	require.NoError(t, err)
}
