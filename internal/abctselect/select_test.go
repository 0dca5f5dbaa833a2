package abctselect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcparse"
	"github.com/abc-lang/abcls/internal/source"
)

const sampleTune = "X:1\nT:Sample\nK:C\nV:1\nABC [CEG]|\nV:2\nC,E,G,|\n"

func parseTune(t *testing.T) *abcast.Tree {
	t.Helper()
	ctx := source.New(sampleTune)
	tree := abcparse.Parse(ctx)
	require.False(t, ctx.Errors.HasErrors())
	return tree
}

func TestAllSelectsEveryNode(t *testing.T) {
	tree := parseTune(t)
	sel := All(tree)
	assert.NotEmpty(t, sel.Nodes)
}

func TestNotesNarrowsToNoteNodesOnly(t *testing.T) {
	tree := parseTune(t)
	sel := Notes(All(tree))
	require.NotEmpty(t, sel.Nodes)
	for id := range sel.Nodes {
		assert.True(t, abcast.IsNote(tree.Arena, id))
	}
}

func TestChordsNarrowsToChordNodes(t *testing.T) {
	tree := parseTune(t)
	sel := Chords(All(tree))
	require.NotEmpty(t, sel.Nodes)
	for id := range sel.Nodes {
		assert.True(t, abcast.IsChord(tree.Arena, id))
	}
}

func TestBassKeepsOnlyLowestChordNote(t *testing.T) {
	tree := parseTune(t)
	chordSel := Chords(All(tree))
	var chordID abcast.NodeID
	for id := range chordSel.Nodes {
		chordID = id
	}
	chord := tree.Arena.Get(chordID).(*abcast.Chord)
	bass := Bass(All(tree))
	inBass := 0
	for _, noteID := range chord.Notes(tree.Arena) {
		if bass.Nodes[noteID] {
			inBass++
		}
	}
	assert.Equal(t, 1, inBass)
}

func TestByVoiceSelectsOnlyThatVoicesElements(t *testing.T) {
	tree := parseTune(t)
	v1 := ByVoice(All(tree), "1")
	v2 := ByVoice(All(tree), "2")
	require.NotEmpty(t, v1.Nodes)
	require.NotEmpty(t, v2.Nodes)
	for id := range v1.Nodes {
		assert.False(t, v2.Nodes[id])
	}
}

func TestUnionCombinesTwoSelections(t *testing.T) {
	tree := parseTune(t)
	notes := Notes(All(tree))
	chords := Chords(All(tree))
	union := notes.Union(chords)
	assert.Equal(t, len(notes.Nodes)+len(chords.Nodes), len(union.Nodes))
}
