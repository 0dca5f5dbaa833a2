package abctvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abctparse"
	"github.com/abc-lang/abcls/internal/source"
)

func validate(t *testing.T, src string) *source.Context {
	t.Helper()
	ctx := source.New(src)
	prog := abctparse.Parse(ctx)
	Validate(ctx, prog)
	return ctx
}

func messages(ctx *source.Context) []string {
	var out []string
	for _, d := range ctx.Errors.Errors() {
		out = append(out, d.Message)
	}
	return out
}

func TestValidateKnownTransformIsClean(t *testing.T) {
	ctx := validate(t, "`a.abc` | @notes | transpose 2")
	assert.False(t, ctx.Errors.HasErrors())
}

func TestValidateUnknownTransformSuggestsClosest(t *testing.T) {
	ctx := validate(t, "`a.abc` | transpse 2")
	require.True(t, ctx.Errors.HasErrors())
	msgs := messages(ctx)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "transpse")
	assert.Contains(t, msgs[0], "transpose")
}

func TestValidateArgumentCountMismatch(t *testing.T) {
	ctx := validate(t, "`a.abc` | transpose 2 3")
	require.True(t, ctx.Errors.HasErrors())
	assert.Contains(t, messages(ctx)[0], "expects 1 argument")
}

func TestValidateNoOpArgumentWarns(t *testing.T) {
	ctx := validate(t, "`a.abc` | transpose 0")
	warnings := ctx.Errors.Errors()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "no effect")
}

func TestValidateUnknownSelector(t *testing.T) {
	ctx := validate(t, "`a.abc` | @chrods")
	require.True(t, ctx.Errors.HasErrors())
	assert.Contains(t, messages(ctx)[0], "@chrods")
}

func TestValidateMeasureRangeOrderError(t *testing.T) {
	ctx := validate(t, "`a.abc` | @M:5-1")
	require.True(t, ctx.Errors.HasErrors())
	assert.Contains(t, messages(ctx)[0], "before start")
}
