package abcteval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcfmt"
	"github.com/abc-lang/abcls/internal/abcloader"
	"github.com/abc-lang/abcls/internal/abctparse"
	"github.com/abc-lang/abcls/internal/source"
)

func run(t *testing.T, files map[string]string, script string) (*source.Context, *Env) {
	t.Helper()
	ctx := source.New(script)
	prog := abctparse.Parse(ctx)
	require.False(t, ctx.Errors.HasErrors())
	env := New(ctx, &abcloader.Memory{Files: files})
	env.Run(prog)
	return ctx, env
}

func format(t *testing.T, tree *abcast.Tree, ctx *source.Context) string {
	t.Helper()
	return abcfmt.Format(tree, ctx.Formatter)
}

func TestEvaluateOctavePipeline(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\nCDE|\n"}
	ctx, env := run(t, files, "`a.abc` | @notes | octave 1")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	require.NotNil(t, tree)
	out := format(t, tree, ctx)
	assert.Contains(t, out, "cde")
}

func TestEvaluateAssignmentAndUpdateWriteBackInPlace(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\nV:1\nC|\nV:2\nC|\n"}
	ctx, env := run(t, files, "x = `a.abc`\nx |= @V:2 | octave 1")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	out := format(t, tree, ctx)
	assert.Contains(t, out, "c")
}

func TestEvaluateUndefinedIdentifierReportsError(t *testing.T) {
	ctx, _ := run(t, nil, "y | transpose 1")
	assert.True(t, ctx.Errors.HasErrors())
}

func TestEvaluateFilterDropsChordsButKeepsOtherNotes(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\n[CEG]D|\n"}
	ctx, env := run(t, files, "`a.abc` | filter (!@chords)")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	out := format(t, tree, ctx)
	assert.NotContains(t, out, "[CEG]")
	assert.Contains(t, out, "D")
}

func TestEvaluateAbcLiteralIsParsedInline(t *testing.T) {
	ctx, _ := run(t, nil, "`X:1\nK:C\nC|` | @notes | transpose 0")
	assert.False(t, ctx.Errors.HasErrors())
}

func TestEvaluatePipedUpdateNarrowsMutatesAndReturnsWholeTree(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\nCD|\n"}
	ctx, env := run(t, files, "`a.abc` | @notes |= transpose 2")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	require.NotNil(t, tree)
	out := format(t, tree, ctx)
	assert.Contains(t, out, "DE")
}

func TestEvaluatePipedUpdateBassReplacesChordWithLowestNote(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\n[CEG]|\n"}
	ctx, env := run(t, files, "`a.abc` | @chords |= bass")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	require.NotNil(t, tree)
	out := format(t, tree, ctx)
	assert.NotContains(t, out, "[CEG]")
	assert.NotContains(t, out, "[]")
	assert.Contains(t, out, "C")
}

func TestEvaluateStandaloneUpdateOutsidePipeIsOneError(t *testing.T) {
	ctx, env := run(t, nil, "@notes |= transpose 2")
	errs := ctx.Errors.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "must be used within a pipe")
	assert.Empty(t, env.Results)
}

func TestEvaluateFilterPitchPredicateRemovesLowNotes(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\nCc|\n"}
	ctx, env := run(t, files, "`a.abc` | filter (pitch > 60)")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	out := format(t, tree, ctx)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "c|", lines[2])
}

func TestEvaluateFilterSizePredicateRemovesSmallChords(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\n[CE][CEG]|\n"}
	ctx, env := run(t, files, "`a.abc` | filter (size >= 3)")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	out := format(t, tree, ctx)
	assert.NotContains(t, out, "[CE]")
	assert.Contains(t, out, "[CEG]")
}

func TestEvaluateFilterLengthPredicateRemovesShortNotes(t *testing.T) {
	files := map[string]string{"a.abc": "X:1\nK:C\nC2D|\n"}
	ctx, env := run(t, files, "`a.abc` | filter (length >= 2)")
	require.False(t, ctx.Errors.HasErrors())
	tree := env.Results["a.abc"]
	out := format(t, tree, ctx)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "C2|", lines[2])
}
