package abcfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abcparse"
	"github.com/abc-lang/abcls/internal/source"
)

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	ctx := source.New(src)
	tree := abcparse.Parse(ctx)
	require.False(t, ctx.Errors.HasErrors())
	return Format(tree, ctx.Formatter)
}

func TestFormatRoundTripsSimpleTune(t *testing.T) {
	src := "X:1\nT:Test\nK:C\nABC|\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestFormatRoundTripsChordAndInlineField(t *testing.T) {
	src := "X:1\nK:C\n[CEG] [K:D] z4|\n"
	assert.Equal(t, src, roundTrip(t, src))
}

func TestFormatHidesVoiceSwitchLinesWhenDirectiveHidesVoices(t *testing.T) {
	src := "X:1\nK:C\n%%abcls-voices hide\nV:1\nA|\nV:2\nB|\n"
	out := roundTrip(t, src)
	assert.NotContains(t, out, "V:1\n")
}

func TestFormatKeepsVoiceMarkersWhenDirectiveShowsVoices(t *testing.T) {
	src := "X:1\nK:C\n%%abcls-voices show\nV:1\nA|\nV:2\nB|\n"
	out := roundTrip(t, src)
	assert.Contains(t, out, "V:1\n")
	assert.Contains(t, out, "V:2\n")
}
