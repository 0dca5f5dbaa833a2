package abctparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abctast"
	"github.com/abc-lang/abcls/internal/source"
)

func parse(t *testing.T, src string) (*source.Context, *abctast.Program) {
	t.Helper()
	ctx := source.New(src)
	return ctx, Parse(ctx)
}

func TestParsePipelineWithSelectorAndTransform(t *testing.T) {
	ctx, prog := parse(t, "`a.abc` | @notes | transpose 2")
	require.False(t, ctx.Errors.HasErrors())
	require.Len(t, prog.Statements, 1)
	es, ok := prog.Statements[0].(*abctast.ExprStmt)
	require.True(t, ok)
	pipe, ok := es.Expr.(*abctast.Pipe)
	require.True(t, ok)
	innerPipe, ok := pipe.Left.(*abctast.Pipe)
	require.True(t, ok)
	_, ok = innerPipe.Left.(*abctast.FileRef)
	assert.True(t, ok)
	_, ok = innerPipe.Right.(*abctast.Selector)
	assert.True(t, ok)
	app, ok := pipe.Right.(*abctast.Application)
	require.True(t, ok)
	assert.Equal(t, "transpose", app.Name)
	require.Len(t, app.Args, 1)
	num, ok := app.Args[0].(*abctast.Number)
	require.True(t, ok)
	assert.Equal(t, 2.0, num.Value)
}

func TestParseNegativeTransformArgument(t *testing.T) {
	ctx, prog := parse(t, "`a.abc` | transpose -2")
	require.False(t, ctx.Errors.HasErrors())
	es := prog.Statements[0].(*abctast.ExprStmt)
	pipe := es.Expr.(*abctast.Pipe)
	app := pipe.Right.(*abctast.Application)
	num := app.Args[0].(*abctast.Number)
	assert.Equal(t, -2.0, num.Value)
}

func TestParseAssignmentAndUpdate(t *testing.T) {
	ctx, prog := parse(t, "x = `a.abc`\nx |= @V:1 | octave 1")
	require.False(t, ctx.Errors.HasErrors())
	require.Len(t, prog.Statements, 2)
	assign, ok := prog.Statements[0].(*abctast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)

	es := prog.Statements[1].(*abctast.ExprStmt)
	upd, ok := es.Expr.(*abctast.Update)
	require.True(t, ok)
	_, ok = upd.Target.(*abctast.Identifier)
	assert.True(t, ok)
	pipe, ok := upd.Value.(*abctast.Pipe)
	require.True(t, ok)
	loc, ok := pipe.Left.(*abctast.LocationSelector)
	require.True(t, ok)
	assert.Equal(t, "V", loc.Kind)
	assert.Equal(t, "1", loc.ID)
}

func TestParseMeasureRangeSelector(t *testing.T) {
	_, prog := parse(t, "`a.abc` | @M:1-4")
	es := prog.Statements[0].(*abctast.ExprStmt)
	pipe := es.Expr.(*abctast.Pipe)
	loc := pipe.Right.(*abctast.LocationSelector)
	assert.Equal(t, "M", loc.Kind)
	assert.Equal(t, 1, loc.Start)
	assert.Equal(t, 4, loc.End)
}

func TestParseFilterExpression(t *testing.T) {
	_, prog := parse(t, "`a.abc` | filter (@notes && !@chords)")
	es := prog.Statements[0].(*abctast.ExprStmt)
	pipe := es.Expr.(*abctast.Pipe)
	filter, ok := pipe.Right.(*abctast.Filter)
	require.True(t, ok)
	_, ok = filter.Predicate.(*abctast.Logical)
	assert.True(t, ok)
}

func TestParseErrorRecoveryProducesErrorExprAndContinues(t *testing.T) {
	ctx, prog := parse(t, "| | |\nx = 1")
	require.True(t, ctx.Errors.HasErrors())
	require.Len(t, prog.Statements, 2)
	es := prog.Statements[0].(*abctast.ExprStmt)
	_, ok := es.Expr.(*abctast.ErrorExpr)
	assert.True(t, ok)
	assign, ok := prog.Statements[1].(*abctast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
}

func TestParseConcatUnion(t *testing.T) {
	_, prog := parse(t, "@notes , @chords")
	es := prog.Statements[0].(*abctast.ExprStmt)
	_, ok := es.Expr.(*abctast.Concat)
	assert.True(t, ok)
}
