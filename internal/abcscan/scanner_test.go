package abcscan

import (
	"strings"
	"testing"

	"github.com/abc-lang/abcls/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scan(t *testing.T, src string) (*source.Context, []tokenSummary) {
	t.Helper()
	ctx := source.New(src)
	toks := New(ctx).Scan()
	var out []tokenSummary
	for _, tok := range toks {
		out = append(out, tokenSummary{kind: string(tok.Kind), lexeme: tok.Lexeme})
	}
	return ctx, out
}

type tokenSummary struct {
	kind   string
	lexeme string
}

func reassemble(summaries []tokenSummary) string {
	var b strings.Builder
	for _, s := range summaries {
		b.WriteString(s.lexeme)
	}
	return b.String()
}

func TestScanRoundTrip(t *testing.T) {
	srcs := []string{
		"X:1\nT:Test\nK:C\nABC|\n",
		"%%abcls-fmt system-comments\nX:1\nK:C\n|abc defg|\n\nX:2\nK:D\n|ABCD|\n",
		"X:1\nV:1 name=\"Fiddle\" clef=treble\nK:C\nV:1\n[K:D] A2B2 |]\n",
	}
	for _, src := range srcs {
		ctx := source.New(src)
		toks := New(ctx).Scan()
		var b strings.Builder
		for _, tok := range toks {
			b.WriteString(tok.Lexeme)
		}
		assert.Equal(t, src, b.String(), "round-trip must reproduce every byte (property #2)")
	}
}

func TestScanHeaderModeTransitions(t *testing.T) {
	_, toks := scan(t, "X:1\nT:Tune\nK:C\nABC|\n")
	kinds := kindsOf(toks)
	require.Contains(t, kinds, "INF_HDR")
	require.Contains(t, kinds, "NOTE_LETTER")
	require.Contains(t, kinds, "BARLINE")
}

func TestScanBlankLineClosesTuneBody(t *testing.T) {
	_, toks := scan(t, "X:1\nK:C\nABC|\n\nX:2\nK:D\nDEF|\n")
	kinds := kindsOf(toks)
	count := 0
	for _, k := range kinds {
		if k == "SECTION_BREAK" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestScanChordVsInlineFieldBrackets(t *testing.T) {
	_, toks := scan(t, "X:1\nK:C\n[CEG] [K:D] z4|\n")
	var kinds []string
	for _, tok := range toks {
		if tok.kind == "CHRD_LEFT_BRKT" || tok.kind == "CHRD_RIGHT_BRKT" || tok.kind == "INLINE_FIELD_OPEN" || tok.kind == "INLINE_FIELD_CLOSE" {
			kinds = append(kinds, tok.kind)
		}
	}
	assert.Equal(t, []string{"CHRD_LEFT_BRKT", "CHRD_RIGHT_BRKT", "INLINE_FIELD_OPEN", "INLINE_FIELD_CLOSE"}, kinds)
}

func TestScanUnterminatedAnnotationReportsDiagnostic(t *testing.T) {
	ctx, toks := scan(t, "X:1\nK:C\nA \"unterminated B|\n")
	assert.True(t, ctx.Errors.HasErrors())
	assert.Contains(t, kindsOf(toks), "INVALID")
}

func TestScanVoiceLineFields(t *testing.T) {
	_, toks := scan(t, "X:1\nV:T name=\"Tenor\" clef=treble-8\nK:C\nA|\n")
	kinds := kindsOf(toks)
	assert.Contains(t, kinds, "VX_ID")
	assert.Contains(t, kinds, "VX_K")
	assert.Contains(t, kinds, "VX_V")
	assert.Contains(t, kinds, "EQL")
}

func kindsOf(toks []tokenSummary) []string {
	var out []string
	for _, t := range toks {
		out = append(out, t.kind)
	}
	return out
}
