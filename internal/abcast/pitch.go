package abcast

import "strings"

// noteOffsets gives the semitone offset from C for each natural letter,
// grounded on the teacher's chord_to_midi.go NoteNameToMIDI note-offset
// table.
var noteOffsets = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var offsetLetters = []byte{'C', 'D', 'E', 'F', 'G', 'A', 'B'}

// ToMIDI converts a Pitch node to its MIDI note number (spec §3): uppercase
// letters baseline at octave 4 (C=60), lowercase at octave 5 (c=72); each
// "'" raises an octave, each "," lowers one; a single/double sharp (^/^^)
// raises by 1/2 semitones, a single/double flat (_/__) lowers by 1/2, and
// "=" (natural) applies no adjustment.
func ToMIDI(p *Pitch) int {
	letter := p.NoteLetter.Lexeme
	if letter == "" {
		return 0
	}
	upper := strings.ToUpper(letter)
	base, ok := noteOffsets[upper[0]]
	if !ok {
		return 0
	}
	octave := 4
	if letter == upper {
		// uppercase: already octave 4 baseline
	} else {
		octave = 5
	}
	midi := (octave+1)*12 + base

	if p.Octave != nil {
		for _, r := range p.Octave.Lexeme {
			switch r {
			case '\'':
				midi += 12
			case ',':
				midi -= 12
			}
		}
	}

	if p.Alteration != nil {
		switch p.Alteration.Lexeme {
		case "^":
			midi++
		case "^^":
			midi += 2
		case "_":
			midi--
		case "__":
			midi -= 2
		case "=":
			// natural: no-op, present to cancel a measure-scoped accidental
		}
	}

	if midi < 0 {
		midi = 0
	}
	if midi > 127 {
		midi = 127
	}
	return midi
}

// IsRealPitch reports whether id refers to a Pitch node (as opposed to a
// Rest), used by the @notes selector to exclude rests (spec §4.8).
func IsRealPitch(a *Arena, id NodeID) bool {
	_, ok := a.Get(id).(*Pitch)
	return ok
}
