package engine

import (
	"github.com/robertkrimen/otto/ast"
	"github.com/robertkrimen/otto/token"
)

// reservedWords lists the ES5.1 §7.6.1.2 future reserved words that are
// unconditionally reserved, plus the strict-mode-only additions (§7.6.1.2
// second table) that only matter inside a strict body.
var reservedWords = map[string]bool{
	"class": true, "const": true, "enum": true, "export": true,
	"extends": true, "import": true, "super": true,
}

var strictReservedWords = map[string]bool{
	"implements": true, "interface": true, "let": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	"yield": true,
}

// checkProgram walks a parsed program (or function body) and reports every
// strict-mode static restriction ES5.1 §C names that otto's parser doesn't
// already reject at parse time: assignment to eval/arguments, delete of an
// unqualified name, duplicate parameter names, reserved words used as
// parameter or catch-parameter names, and `with` statements. Violations are
// recorded as warning diagnostics (diagnostics.warn) rather than aborting
// the run, since a static analyzer should keep going and report everything
// it can find in one pass.
func checkProgram(vm *VM, body []ast.Statement, strict bool) {
	c := &checker{vm: vm}
	c.checkStatements(body, strict)
}

type checker struct {
	vm *VM
}

func (c *checker) fail(format string, args ...any) {
	c.vm.diagnostics.warn(format, args...)
}

func (c *checker) checkStatements(list []ast.Statement, strict bool) {
	for _, s := range list {
		c.checkStatement(s, strict)
	}
}

func (c *checker) checkStatement(stmt ast.Statement, strict bool) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		c.checkStatements(s.List, strict)
	case *ast.ExpressionStatement:
		c.checkExpression(s.Expression, strict)
	case *ast.VariableStatement:
		for _, item := range s.List {
			if asn, ok := item.(*ast.AssignExpression); ok {
				c.checkBindingTarget(asn.Left, strict)
				c.checkExpression(asn.Right, strict)
			} else if id, ok := item.(*ast.Identifier); ok {
				c.checkBindingTarget(id, strict)
			} else if ve, ok := item.(*ast.VariableExpression); ok {
				c.checkBindingTarget(&ast.Identifier{Name: ve.Name}, strict)
				if ve.Initializer != nil {
					c.checkExpression(ve.Initializer, strict)
				}
			}
		}
	case *ast.IfStatement:
		c.checkExpression(s.Test, strict)
		c.checkStatement(s.Consequent, strict)
		if s.Alternate != nil {
			c.checkStatement(s.Alternate, strict)
		}
	case *ast.ForStatement:
		c.checkStatement(s.Body, strict)
	case *ast.ForInStatement:
		c.checkStatement(s.Body, strict)
	case *ast.WhileStatement:
		c.checkExpression(s.Test, strict)
		c.checkStatement(s.Body, strict)
	case *ast.DoWhileStatement:
		c.checkExpression(s.Test, strict)
		c.checkStatement(s.Body, strict)
	case *ast.ReturnStatement:
		if s.Argument != nil {
			c.checkExpression(s.Argument, strict)
		}
	case *ast.ThrowStatement:
		c.checkExpression(s.Argument, strict)
	case *ast.TryStatement:
		c.checkStatement(s.Body, strict)
		if s.Catch != nil {
			if strict && (strictReservedWords[s.Catch.Parameter.Name] || s.Catch.Parameter.Name == "eval" || s.Catch.Parameter.Name == "arguments") {
				c.fail("catch parameter %q is not a valid binding identifier in strict mode", s.Catch.Parameter.Name)
			}
			c.checkStatement(s.Catch.Body, strict)
		}
		if s.Finally != nil {
			c.checkStatement(s.Finally, strict)
		}
	case *ast.SwitchStatement:
		c.checkExpression(s.Discriminant, strict)
		for _, cc := range s.Body {
			c.checkStatements(cc.Consequent, strict)
		}
	case *ast.LabelledStatement:
		c.checkStatement(s.Statement, strict)
	case *ast.WithStatement:
		if strict {
			c.fail("'with' statements are not allowed in strict mode code")
		}
		c.checkExpression(s.Object, strict)
		c.checkStatement(s.Body, strict)
	case *ast.FunctionStatement:
		c.checkFunctionLiteral(s.Function, strict)
	}
}

func (c *checker) checkExpression(expr ast.Expression, strict bool) {
	switch e := expr.(type) {
	case *ast.AssignExpression:
		c.checkBindingTarget(e.Left, strict)
		c.checkExpression(e.Left, strict)
		c.checkExpression(e.Right, strict)
	case *ast.UnaryExpression:
		if strict && e.Operator == token.DELETE {
			if _, ok := e.Operand.(*ast.Identifier); ok {
				c.fail("'delete' of an unqualified identifier is not allowed in strict mode")
			}
		}
		c.checkExpression(e.Operand, strict)
	case *ast.BinaryExpression:
		c.checkExpression(e.Left, strict)
		c.checkExpression(e.Right, strict)
	case *ast.ConditionalExpression:
		c.checkExpression(e.Test, strict)
		c.checkExpression(e.Consequent, strict)
		c.checkExpression(e.Alternate, strict)
	case *ast.CallExpression:
		c.checkExpression(e.Callee, strict)
		for _, a := range e.ArgumentList {
			c.checkExpression(a, strict)
		}
	case *ast.NewExpression:
		c.checkExpression(e.Callee, strict)
		for _, a := range e.ArgumentList {
			c.checkExpression(a, strict)
		}
	case *ast.FunctionLiteral:
		c.checkFunctionLiteral(e, strict)
	case *ast.SequenceExpression:
		for _, item := range e.Sequence {
			c.checkExpression(item, strict)
		}
	}
}

// checkBindingTarget rejects assignment/declaration to eval or arguments in
// strict mode (ES5.1 §11.13.1, §12.2.1).
func (c *checker) checkBindingTarget(target ast.Expression, strict bool) {
	if !strict {
		return
	}
	id, ok := target.(*ast.Identifier)
	if !ok {
		return
	}
	if id.Name == "eval" || id.Name == "arguments" {
		c.fail("assignment to %q is not allowed in strict mode", id.Name)
	}
}

func (c *checker) checkFunctionLiteral(lit *ast.FunctionLiteral, outerStrict bool) {
	strict := outerStrict || literalIsStrict(lit)

	seen := make(map[string]bool)
	for _, p := range lit.ParameterList.List {
		if reservedWords[p.Name] {
			c.fail("unexpected reserved word %q in parameter list", p.Name)
		}
		if strict {
			if strictReservedWords[p.Name] || p.Name == "eval" || p.Name == "arguments" {
				c.fail("parameter name %q is not allowed in strict mode", p.Name)
			}
			if seen[p.Name] {
				c.fail("duplicate parameter name %q is not allowed in strict mode", p.Name)
			}
		}
		seen[p.Name] = true
	}
	if strict && lit.Name != nil && (lit.Name.Name == "eval" || lit.Name.Name == "arguments") {
		c.fail("function name %q is not allowed in strict mode", lit.Name.Name)
	}

	if block, ok := lit.Body.(*ast.BlockStatement); ok {
		c.checkStatements(block.List, strict)
	}
}
