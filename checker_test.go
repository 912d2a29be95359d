package engine

import (
	"testing"

	"github.com/robertkrimen/otto/ast"
	"github.com/stretchr/testify/require"
)

func TestCheckerFlagsWithInStrictMode(t *testing.T) {
	reports, err := runScript(t, `
		"use strict";
		var obj = {};
	`)
	require.NoError(t, err)
	require.Empty(t, reports, "plain strict-mode code should produce no diagnostics")

	vm := newTestVM(t)
	checkProgram(vm, []ast.Statement{
		&ast.WithStatement{Object: &ast.ObjectLiteral{}, Body: &ast.BlockStatement{}},
	}, true)
	require.Len(t, vm.Reports(), 1)
}

func TestCheckerFlagsDuplicateStrictParams(t *testing.T) {
	_, err := runScript(t, `
		function f(a, a) { "use strict"; return a; }
	`)
	require.NoError(t, err)

	vm := newTestVM(t)
	lit := &ast.FunctionLiteral{
		ParameterList: ast.ParameterList{List: []*ast.Identifier{{Name: "a"}, {Name: "a"}}},
		Body:          &ast.BlockStatement{List: []ast.Statement{&ast.ExpressionStatement{Expression: &ast.StringLiteral{Literal: `"use strict"`}}}},
	}
	checkProgram(vm, []ast.Statement{&ast.FunctionStatement{Function: lit}}, false)
	require.NotEmpty(t, vm.Reports())
}

func TestCheckerAllowsSloppyWith(t *testing.T) {
	_, err := runScript(t, `
		with ({a: 1}) {
			if (a !== 1) { throw new Error("with-scoped lookup failed"); }
		}
	`)
	require.NoError(t, err)
}
