package abctscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/source"
	"github.com/abc-lang/abcls/internal/token"
)

func scan(t *testing.T, src string) (*source.Context, []token.Token) {
	t.Helper()
	ctx := source.New(src)
	return ctx, New(ctx).Scan()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanPipelineOperators(t *testing.T) {
	_, toks := scan(t, "`a.abc` | @notes | transpose 2")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{KindAbcLiteral, KindPipe, KindAt, KindIdent, KindPipe, KindIdent, KindNumber, KindEOF}, ks)
}

func TestScanUpdateAssignAndLocationSelector(t *testing.T) {
	_, toks := scan(t, "x = `a.abc`\nx |= @V:1 | transpose -2")
	ks := kinds(toks)
	require.Contains(t, ks, KindPipeEq)
	require.Contains(t, ks, KindColon)
	require.Contains(t, ks, KindDash)
}

func TestScanCommentsAndWhitespaceIgnored(t *testing.T) {
	_, toks := scan(t, "# a comment\nx = 1 # trailing\n")
	ks := kinds(toks)
	assert.Equal(t, []token.Kind{KindNewline, KindIdent, KindEq, KindNumber, KindNewline, KindEOF}, ks)
}

func TestScanLogicalAndComparisonOperators(t *testing.T) {
	_, toks := scan(t, "a == b && c != d || e <= f")
	ks := kinds(toks)
	assert.Contains(t, ks, KindEqEq)
	assert.Contains(t, ks, KindAnd)
	assert.Contains(t, ks, KindNeq)
	assert.Contains(t, ks, KindOr)
	assert.Contains(t, ks, KindLe)
}

func TestScanUnterminatedAbcLiteralReportsDiagnostic(t *testing.T) {
	ctx, toks := scan(t, "`unterminated")
	require.True(t, ctx.Errors.HasErrors())
	assert.Equal(t, KindInvalid, toks[0].Kind)
}

func TestScanUnterminatedStringReportsDiagnostic(t *testing.T) {
	ctx, _ := scan(t, `"oops`)
	assert.True(t, ctx.Errors.HasErrors())
}

func TestScanFloatNumber(t *testing.T) {
	_, toks := scan(t, "1.5")
	require.Len(t, toks, 2)
	assert.Equal(t, "1.5", toks[0].Lexeme)
}
