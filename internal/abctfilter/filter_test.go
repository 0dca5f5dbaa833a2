package abctfilter

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

func TestApplyDropsNonMatchingSelectedElements(t *testing.T) {
	tree := parseTune(t, "X:1\nK:C\nCDE|\n")
	sel := abctselect.Notes(abctselect.All(tree))
	dropID := anyNoteID(sel)

	Apply(sel, func(a *abcast.Arena, id abcast.NodeID) bool {
		return id != dropID
	})

	body := abctselect.FindTuneBody(tree)
	require.NotNil(t, body)
	for _, sysID := range body.Systems {
		sys := tree.Arena.Get(sysID).(*abcast.System)
		for _, id := range sys.Elements {
			assert.NotEqual(t, dropID, id)
		}
	}
}

func TestApplyPrunesChordContentsKeepingNonEmptyChord(t *testing.T) {
	tree := parseTune(t, "X:1\nK:C\n[CEG]|\n")
	chordSel := abctselect.Chords(abctselect.All(tree))
	var chordID abcast.NodeID
	for id := range chordSel.Nodes {
		chordID = id
	}
	chord := tree.Arena.Get(chordID).(*abcast.Chord)
	keepID := chord.Notes(tree.Arena)[0]

	sel := abctselect.Notes(abctselect.All(tree))
	Apply(sel, func(a *abcast.Arena, id abcast.NodeID) bool {
		return id == keepID
	})

	after := tree.Arena.Get(chordID).(*abcast.Chord)
	assert.Equal(t, []abcast.NodeID{keepID}, after.Notes(tree.Arena))
}

func TestApplyDropsChordEmptiedOfAllNotes(t *testing.T) {
	tree := parseTune(t, "X:1\nK:C\n[CEG]D|\n")
	sel := abctselect.Notes(abctselect.All(tree))
	Apply(sel, func(a *abcast.Arena, id abcast.NodeID) bool {
		note, ok := a.Get(id).(*abcast.Note)
		if !ok {
			return true
		}
		pitch, ok := a.Get(note.Pitch).(*abcast.Pitch)
		if !ok {
			return true
		}
		return pitch.NoteLetter.Lexeme == "D"
	})

	found := false
	abcast.Walk(tree.Arena, tree.Root, func(id abcast.NodeID, n abcast.Node) {
		if n.NodeKind() == abcast.KindChord {
			found = true
		}
	})
	assert.False(t, found, "chord emptied of every note should have been dropped")
}

func anyNoteID(sel *abctselect.Selection) abcast.NodeID {
	for id := range sel.Nodes {
		return id
	}
	return 0
}
