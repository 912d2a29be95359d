package tsvalidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCleanSourceHasNoDiagnostics(t *testing.T) {
	diags, err := Validate(context.Background(), []byte(`function f(a, b) { return a + b; }`))
	require.NoError(t, err)
	require.Empty(t, diags)
}

func TestValidateMalformedSourceReportsDiagnostic(t *testing.T) {
	diags, err := Validate(context.Background(), []byte(`function f( { return; }`))
	require.NoError(t, err)
	require.NotEmpty(t, diags)
	require.GreaterOrEqual(t, diags[0].Line, 1)
}

func TestDiagnosticStringIncludesPosition(t *testing.T) {
	d := Diagnostic{Line: 3, Column: 5, Snippet: "oops"}
	require.Equal(t, "3:5: oops", d.String())
}

func TestValidateRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Validate(ctx, []byte(`var x = 1;`))
	_ = err // tree-sitter's ParseCtx may or may not observe cancellation this quickly; just exercising the path.
}
