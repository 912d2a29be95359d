package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDateWithKnownMillisReturnsExactGetTime(t *testing.T) {
	_, err := runScript(t, `
		var d = new Date(1000);
		if (d.getTime() !== 1000) { throw new Error("getTime mismatch: " + d.getTime()); }
		if (d.valueOf() !== 1000) { throw new Error("valueOf mismatch"); }
	`)
	require.NoError(t, err)
}

func TestDateWithNoArgsIsUnknown(t *testing.T) {
	_, err := runScript(t, `
		var d = new Date();
		if (typeof d.getTime() !== "unknown") { throw new Error("expected unknown wall-clock time, got " + typeof d.getTime()); }
	`)
	require.NoError(t, err)
}

func TestDateNowIsUnknown(t *testing.T) {
	_, err := runScript(t, `
		if (typeof Date.now() !== "unknown") { throw new Error("Date.now should be statically unknown"); }
	`)
	require.NoError(t, err)
}
