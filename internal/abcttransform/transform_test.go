package abcttransform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcparse"
	"github.com/abc-lang/abcls/internal/abctselect"
	"github.com/abc-lang/abcls/internal/source"
)

func parseTune(t *testing.T, src string) *abcast.Tree {
	t.Helper()
	ctx := source.New(src)
	tree := abcparse.Parse(ctx)
	require.False(t, ctx.Errors.HasErrors())
	return tree
}

func pitchLetters(t *testing.T, tree *abcast.Tree, sel *abctselect.Selection) []string {
	t.Helper()
	var out []string
	for id := range sel.Nodes {
		note, ok := tree.Arena.Get(id).(*abcast.Note)
		if !ok {
			continue
		}
		pitch, ok := tree.Arena.Get(note.Pitch).(*abcast.Pitch)
		if !ok {
			continue
		}
		out = append(out, pitch.NoteLetter.Lexeme)
	}
	return out
}

func TestTransposeUpShiftsEverySelectedNote(t *testing.T) {
	tree := parseTune(t, "X:1\nK:C\nCDE|\n")
	before := abcast.ToMIDI(mustFirstPitch(t, tree))
	Transpose(abctselect.Notes(abctselect.All(tree)), 2)
	after := abcast.ToMIDI(mustFirstPitch(t, tree))
	assert.Equal(t, before+2, after)
}

func mustFirstPitch(t *testing.T, tree *abcast.Tree) *abcast.Pitch {
	t.Helper()
	sel := abctselect.Notes(abctselect.All(tree))
	var best abcast.NodeID
	for id := range sel.Nodes {
		if best == 0 || id < best {
			best = id
		}
	}
	note := tree.Arena.Get(best).(*abcast.Note)
	return tree.Arena.Get(note.Pitch).(*abcast.Pitch)
}

func TestOctaveDelegatesToTwelveSemitoneTranspose(t *testing.T) {
	tree := parseTune(t, "X:1\nK:C\nC|\n")
	before := abcast.ToMIDI(mustFirstPitch(t, tree))
	Octave(abctselect.Notes(abctselect.All(tree)), 1)
	after := abcast.ToMIDI(mustFirstPitch(t, tree))
	assert.Equal(t, before+12, after)
}

func TestTransposeLeavesRestsUntouched(t *testing.T) {
	tree := parseTune(t, "X:1\nK:C\nCzE|\n")
	Transpose(abctselect.Notes(abctselect.All(tree)), 5)
	// No panic and rest stays a Rest node.
	sel := abctselect.All(tree)
	foundRest := false
	for id := range sel.Nodes {
		note, ok := tree.Arena.Get(id).(*abcast.Note)
		if !ok {
			continue
		}
		if _, ok := tree.Arena.Get(note.Pitch).(*abcast.Rest); ok {
			foundRest = true
		}
	}
	assert.True(t, foundRest)
}
