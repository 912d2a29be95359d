// Package tsvalidate cross-checks otto's parser against tree-sitter's
// JavaScript grammar before a file is handed to the engine. otto targets
// ES5.1 specifically and will happily accept some non-ES5.1 constructs (or
// reject ones it doesn't recognize) silently; tree-sitter's grammar is a
// second, independently-implemented opinion on whether the source is
// syntactically sound JavaScript at all, useful for telling "this file
// genuinely isn't valid JS" apart from "this file uses syntax our ES5.1
// engine doesn't model".
package tsvalidate

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Diagnostic describes one tree-sitter ERROR or MISSING node found in a
// source file, with a 1-based line/column for report formatting.
type Diagnostic struct {
	Line, Column int
	Snippet      string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Snippet)
}

// Validate parses src with tree-sitter's JavaScript grammar and returns one
// Diagnostic per syntax-error node tree-sitter's error recovery found. A
// nil, empty slice means tree-sitter considers the file syntactically
// clean; it does not mean otto's parser will accept it, since the two
// grammars disagree about ES6+ syntax extent.
func Validate(ctx context.Context, source []byte) ([]Diagnostic, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	var diags []Diagnostic
	collectErrors(tree.RootNode(), source, &diags)
	return diags, nil
}

func collectErrors(n *sitter.Node, source []byte, out *[]Diagnostic) {
	if n == nil {
		return
	}
	if n.IsError() || n.IsMissing() {
		start := n.StartPoint()
		snippet := n.Content(source)
		if i := strings.IndexByte(snippet, '\n'); i != -1 {
			snippet = snippet[:i]
		}
		*out = append(*out, Diagnostic{
			Line:    int(start.Row) + 1,
			Column:  int(start.Column) + 1,
			Snippet: snippet,
		})
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectErrors(n.Child(i), source, out)
	}
}
