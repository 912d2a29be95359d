package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayPushPopShiftUnshift(t *testing.T) {
	_, err := runScript(t, `
		var a = [1, 2];
		a.push(3);
		if (a.length !== 3 || a[2] !== 3) { throw new Error("push failed"); }
		var popped = a.pop();
		if (popped !== 3 || a.length !== 2) { throw new Error("pop failed"); }
		a.unshift(0);
		if (a[0] !== 0 || a.length !== 3) { throw new Error("unshift failed"); }
		var shifted = a.shift();
		if (shifted !== 0 || a.length !== 2) { throw new Error("shift failed"); }
	`)
	require.NoError(t, err)
}

func TestArraySliceJoinConcat(t *testing.T) {
	_, err := runScript(t, `
		var a = [1, 2, 3, 4];
		var s = a.slice(1, 3);
		if (s.length !== 2 || s[0] !== 2 || s[1] !== 3) { throw new Error("slice failed: " + s); }
		if (a.join("-") !== "1-2-3-4") { throw new Error("join failed"); }
		var c = a.concat([5, 6]);
		if (c.length !== 6 || c[5] !== 6) { throw new Error("concat failed"); }
	`)
	require.NoError(t, err)
}

func TestArrayForEachMapFilterReduce(t *testing.T) {
	_, err := runScript(t, `
		var sum = 0;
		[1, 2, 3].forEach(function(v) { sum += v; });
		if (sum !== 6) { throw new Error("forEach failed"); }

		var doubled = [1, 2, 3].map(function(v) { return v * 2; });
		if (doubled.join(",") !== "2,4,6") { throw new Error("map failed"); }

		var evens = [1, 2, 3, 4].filter(function(v) { return v % 2 === 0; });
		if (evens.join(",") !== "2,4") { throw new Error("filter failed"); }

		var total = [1, 2, 3].reduce(function(acc, v) { return acc + v; }, 0);
		if (total !== 6) { throw new Error("reduce failed"); }
	`)
	require.NoError(t, err)
}

func TestArrayIndexOfAndReverse(t *testing.T) {
	_, err := runScript(t, `
		var a = [10, 20, 30];
		if (a.indexOf(20) !== 1) { throw new Error("indexOf failed"); }
		if (a.indexOf(99) !== -1) { throw new Error("indexOf missing failed"); }
		a.reverse();
		if (a.join(",") !== "30,20,10") { throw new Error("reverse failed"); }
	`)
	require.NoError(t, err)
}

func TestArrayToStringIsJoinWithComma(t *testing.T) {
	_, err := runScript(t, `
		var s = [1, 2, 3].toString();
		if (s !== "1,2,3") { throw new Error("unexpected toString: " + s); }
	`)
	require.NoError(t, err)
}
