package engine

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/robertkrimen/otto/ast"
	parserFile "github.com/robertkrimen/otto/file"
	"github.com/robertkrimen/otto/parser"
)

// DumpAST parses src as filename and writes an indented node-by-node trace
// to w, one line per AST node with its source span and, for single-line
// nodes, the literal source text. Used by cmd/titanium-analyze's
// --dump-ast debug flag.
func DumpAST(w io.Writer, src io.Reader, filename string) error {
	program, err := parser.ParseFile(nil, filename, src, 0)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	walker := &astPrinter{w: w, file: program.File}
	ast.Walk(walker, program)
	return nil
}

type astPrinter struct {
	w      io.Writer
	file   *parserFile.File
	indent int
}

func (p *astPrinter) Enter(n ast.Node) ast.Visitor {
	for i := 0; i < p.indent; i++ {
		fmt.Fprint(p.w, "|   ")
	}
	t := reflect.TypeOf(n)

	start := n.Idx0() - parserFile.Idx(p.file.Base())
	end := n.Idx1() - parserFile.Idx(p.file.Base())
	subSrc := ""
	if start >= 0 && int(end) <= len(p.file.Source()) && start <= end {
		subSrc = p.file.Source()[start:end]
	}
	if strings.Contains(subSrc, "\n") {
		subSrc = ""
	}

	pos := p.file.Position(n.Idx0())
	fmt.Fprintf(p.w, "%s:  %s  %s\n", t.String(), pos, subSrc)

	p.indent++
	return p
}

func (p *astPrinter) Exit(n ast.Node) {
	p.indent--
}
