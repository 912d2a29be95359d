package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMathUnaryFunctions(t *testing.T) {
	_, err := runScript(t, `
		if (Math.abs(-5) !== 5) { throw new Error("abs failed"); }
		if (Math.floor(1.9) !== 1) { throw new Error("floor failed"); }
		if (Math.ceil(1.1) !== 2) { throw new Error("ceil failed"); }
		if (Math.round(1.5) !== 2) { throw new Error("round failed"); }
		if (Math.sqrt(9) !== 3) { throw new Error("sqrt failed"); }
	`)
	require.NoError(t, err)
}

func TestMathPowMaxMin(t *testing.T) {
	_, err := runScript(t, `
		if (Math.pow(2, 10) !== 1024) { throw new Error("pow failed"); }
		if (Math.max(1, 5, 3) !== 5) { throw new Error("max failed"); }
		if (Math.min(1, 5, 3) !== 1) { throw new Error("min failed"); }
	`)
	require.NoError(t, err)
}

func TestMathRandomIsUnknownOutsideExactMode(t *testing.T) {
	_, err := runScript(t, `
		if (typeof Math.random() !== "unknown") { throw new Error("Math.random should be statically unknown"); }
	`)
	require.NoError(t, err)
}
