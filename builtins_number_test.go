package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberToStringAndValueOf(t *testing.T) {
	_, err := runScript(t, `
		var n = new Number(42);
		if (n.valueOf() !== 42) { throw new Error("valueOf failed"); }
		if (n.toString() !== "42") { throw new Error("toString failed"); }
	`)
	require.NoError(t, err)
}

func TestNumberToFixed(t *testing.T) {
	_, err := runScript(t, `
		if ((3.14159).toFixed(2) !== "3.14") { throw new Error("toFixed failed"); }
		if ((2).toFixed(0) !== "2") { throw new Error("toFixed(0) failed"); }
	`)
	require.NoError(t, err)
}

func TestNumberPrototypeMethodThrowsOnIncompatibleReceiver(t *testing.T) {
	_, err := runScript(t, `
		Number.prototype.valueOf.call({});
	`)
	require.Error(t, err)
}
