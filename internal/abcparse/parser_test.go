package abcparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/source"
)

func parse(t *testing.T, src string) (*source.Context, *abcast.Tree) {
	t.Helper()
	ctx := source.New(src)
	tree := Parse(ctx)
	return ctx, tree
}

func TestParseSingleTuneHeaderAndBody(t *testing.T) {
	ctx, tree := parse(t, "X:1\nT:Test\nK:C\nABC|\n")
	require.False(t, ctx.Errors.HasErrors())

	fs := tree.FileStructureNode()
	require.Len(t, fs.Tunes, 1)
	tune := tree.Arena.Get(fs.Tunes[0]).(*abcast.Tune)
	require.NotZero(t, tune.Header)
	require.NotZero(t, tune.Body)

	hdr := tree.Arena.Get(tune.Header).(*abcast.TuneHeader)
	var keys []string
	for _, id := range hdr.Lines {
		if info, ok := tree.Arena.Get(id).(*abcast.InfoLine); ok {
			keys = append(keys, info.Key.Lexeme)
		}
	}
	assert.Equal(t, []string{"X:", "T:", "K:"}, keys)
}

func TestParseKeySigAndMeterAreStructured(t *testing.T) {
	_, tree := parse(t, "X:1\nM:3/4\nK:Dmin\nDEF|\n")
	fs := tree.FileStructureNode()
	tune := tree.Arena.Get(fs.Tunes[0]).(*abcast.Tune)
	hdr := tree.Arena.Get(tune.Header).(*abcast.TuneHeader)

	var key abcast.KeySig
	var meter abcast.Meter
	for _, id := range hdr.Lines {
		info, ok := tree.Arena.Get(id).(*abcast.InfoLine)
		if !ok {
			continue
		}
		switch p := info.Parsed.(type) {
		case abcast.KeySig:
			key = p
		case abcast.Meter:
			meter = p
		}
	}
	assert.Equal(t, "D", key.Tonic)
	assert.Equal(t, "min", key.Mode)
	assert.Equal(t, []int{3}, meter.Numerator)
	assert.Equal(t, 4, meter.Denominator)
}

func TestParseMultipleTunesSeparatedByBlankLine(t *testing.T) {
	ctx, tree := parse(t, "X:1\nK:C\nABC|\n\nX:2\nK:D\nDEF|\n")
	require.False(t, ctx.Errors.HasErrors())
	fs := tree.FileStructureNode()
	assert.Len(t, fs.Tunes, 2)
}

func TestParseFileHeaderPrecedingFirstTune(t *testing.T) {
	_, tree := parse(t, "%abc-2.1\nX:1\nK:C\nA|\n")
	fs := tree.FileStructureNode()
	require.NotZero(t, fs.Header)
	hdr := tree.Arena.Get(fs.Header).(*abcast.FileHeader)
	assert.Contains(t, hdr.Text, "%abc-2.1")
}

func TestParseMalformedTuneHeaderRecoversAndContinues(t *testing.T) {
	ctx, tree := parse(t, "X:1\n???\nK:C\nA|\n\nX:2\nK:D\nB|\n")
	assert.True(t, ctx.Errors.HasErrors())
	fs := tree.FileStructureNode()
	require.Len(t, fs.Tunes, 2)
	_, isError := tree.Arena.Get(fs.Tunes[0]).(*abcast.ErrorExpr)
	assert.True(t, isError, "failed tune should become an ErrorExpr placeholder")
	tune2 := tree.Arena.Get(fs.Tunes[1]).(*abcast.Tune)
	assert.NotZero(t, tune2.Body)
}

func TestParseInlineFieldAndChord(t *testing.T) {
	_, tree := parse(t, "X:1\nK:C\n[CEG] [K:D] z4|\n")
	fs := tree.FileStructureNode()
	tune := tree.Arena.Get(fs.Tunes[0]).(*abcast.Tune)
	body := tree.Arena.Get(tune.Body).(*abcast.TuneBody)
	require.NotEmpty(t, body.Systems)

	var sawChord, sawInline bool
	abcast.Walk(tree.Arena, tune.Body, func(id abcast.NodeID, n abcast.Node) {
		switch n.NodeKind() {
		case abcast.KindChord:
			sawChord = true
		case abcast.KindInlineField:
			sawInline = true
		}
	})
	assert.True(t, sawChord)
	assert.True(t, sawInline)
}
