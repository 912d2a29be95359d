package engine

import (
	"strings"
	"testing"
)

// FuzzEvaluate feeds arbitrary byte soup through Engine.Run. The only
// property under test is "never panics" -- a syntactically garbage or
// adversarially deep program should surface as a parse error or a Report,
// never a crash.
func FuzzEvaluate(f *testing.F) {
	seeds := []string{
		`var x = 1;`,
		`function f(a, a) { "use strict"; return a; }`,
		`with ({}) {}`,
		`(function(){ return arguments[0]; })(1, 2, 3);`,
		`try { throw 1; } catch (e) { } finally { }`,
		`JSON.parse("{\"a\":1}");`,
		`[1,2,3].map(function(v){ return v * 2; });`,
		`/(/`,
		`{{{{{{{{{{`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		eng := NewEngine(Config{MaxCycles: 200}, nil)
		_, _ = eng.Run(strings.NewReader(src), "<fuzz>")
	})
}
