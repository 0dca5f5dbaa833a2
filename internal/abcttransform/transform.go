// Package abcttransform implements ABCT's in-place mutations over a
// Selection: transpose, octave shift, retrograde and bass extraction
// (spec §5.3, C11).
package abcttransform

import (
	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abctselect"
)

// Transpose shifts every selected Note's pitch by semitones, respelling via
// abcast.SpellMIDI (spec's `transpose n`).
func Transpose(sel *abctselect.Selection, semitones int) {
	forEachNote(sel, func(a *abcast.Arena, note *abcast.Note) {
		shiftPitch(a, note, semitones)
	})
}

// Octave shifts every selected Note by octaves*12 semitones (spec's
// `octave n`).
func Octave(sel *abctselect.Selection, octaves int) {
	Transpose(sel, octaves*12)
}

func forEachNote(sel *abctselect.Selection, fn func(*abcast.Arena, *abcast.Note)) {
	for id := range sel.Nodes {
		note, ok := sel.Tree.Arena.Get(id).(*abcast.Note)
		if !ok {
			continue
		}
		fn(sel.Tree.Arena, note)
	}
}

func shiftPitch(a *abcast.Arena, note *abcast.Note, semitones int) {
	pitch, ok := a.Get(note.Pitch).(*abcast.Pitch)
	if !ok {
		return // rests are untouched
	}
	midi := abcast.ToMIDI(pitch) + semitones
	if midi < 0 {
		midi = 0
	}
	if midi > 127 {
		midi = 127
	}
	spelled := abcast.SpellMIDI(midi, semitones >= 0, "")
	applySpelling(pitch, spelled)
}

func applySpelling(pitch *abcast.Pitch, sp abcast.SpelledPitch) {
	pitch.NoteLetter.Lexeme = sp.Letter
	if sp.Accidental == "" {
		pitch.Alteration = nil
	} else {
		alt := pitch.NoteLetter
		alt.Lexeme = sp.Accidental
		pitch.Alteration = &alt
	}
	if sp.OctaveMark == "" {
		pitch.Octave = nil
	} else {
		oct := pitch.NoteLetter
		oct.Lexeme = sp.OctaveMark
		pitch.Octave = &oct
	}
}

// Retrograde reverses the order of selected elements within each System in
// place, leaving barlines and other unselected elements at their original
// positions (spec's `retrograde`).
func Retrograde(sel *abctselect.Selection) {
	body := abctselect.FindTuneBody(sel.Tree)
	if body == nil {
		return
	}
	for _, sysID := range body.Systems {
		sys, ok := sel.Tree.Arena.Get(sysID).(*abcast.System)
		if !ok {
			continue
		}
		reverseSelected(sys, sel.Nodes)
	}
}

func reverseSelected(sys *abcast.System, selected map[abcast.NodeID]bool) {
	idx := indicesOf(sys.Elements, selected)
	for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
		sys.Elements[idx[i]], sys.Elements[idx[j]] = sys.Elements[idx[j]], sys.Elements[idx[i]]
	}
}

func indicesOf(elements []abcast.NodeID, selected map[abcast.NodeID]bool) []int {
	var idx []int
	for i, id := range elements {
		if selected[id] {
			idx = append(idx, i)
		}
	}
	return idx
}

// Bass replaces each selected Chord with its lowest Note in its parent
// System.Elements, carrying over the chord's Rhythm and Tie (spec's
// `bass` transform). Chords with no resolvable pitch are left untouched.
func Bass(sel *abctselect.Selection) {
	body := abctselect.FindTuneBody(sel.Tree)
	if body == nil {
		return
	}
	a := sel.Tree.Arena
	for _, sysID := range body.Systems {
		sys, ok := a.Get(sysID).(*abcast.System)
		if !ok {
			continue
		}
		for i, id := range sys.Elements {
			if !sel.Nodes[id] {
				continue
			}
			chord, ok := a.Get(id).(*abcast.Chord)
			if !ok {
				continue
			}
			noteID := lowestChordNote(a, chord)
			if noteID == 0 {
				continue
			}
			note := a.Get(noteID).(*abcast.Note)
			note.Rhythm = chord.Rhythm
			note.Tie = chord.Tie
			abcast.RecomputeSpan(a, noteID)
			a.SetParent(noteID, sysID)
			sys.Elements[i] = noteID
			a.Remove(id)
		}
	}
}

func lowestChordNote(a *abcast.Arena, c *abcast.Chord) abcast.NodeID {
	var best abcast.NodeID
	bestMIDI := 1 << 30
	for _, id := range c.Notes(a) {
		note, ok := a.Get(id).(*abcast.Note)
		if !ok {
			continue
		}
		midi, ok := abcast.PitchOrRest(a, note)
		if !ok {
			continue
		}
		if midi < bestMIDI {
			bestMIDI, best = midi, id
		}
	}
	return best
}
