package abcast

import "strings"

var sharpSpelling = []struct {
	letter string
	accid  string
}{
	{"C", ""}, {"C", "^"}, {"D", ""}, {"D", "^"}, {"E", ""}, {"F", ""},
	{"F", "^"}, {"G", ""}, {"G", "^"}, {"A", ""}, {"A", "^"}, {"B", ""},
}

var flatSpelling = []struct {
	letter string
	accid  string
}{
	{"C", ""}, {"D", "_"}, {"D", ""}, {"E", "_"}, {"E", ""}, {"F", ""},
	{"G", "_"}, {"G", ""}, {"A", "_"}, {"A", ""}, {"B", "_"}, {"B", ""},
}

// SpelledPitch is the decomposition of a MIDI note into ABC letter case,
// accidental lexeme and octave-mark run, ready to assemble a Pitch node.
type SpelledPitch struct {
	Letter     string // single upper/lower-case letter, case encodes register per ToMIDI
	Accidental string // "", "^", "^^", "_", "__"
	OctaveMark string // run of "'" or ","
}

// SpellMIDI converts a MIDI note number back to ABC pitch notation. ascending
// selects the default enharmonic spelling (sharps when true, flats when
// false) used when prevAccidental gives no guidance. Per spec §9 Open
// Questions, when prevAccidental is non-empty and produces a valid spelling
// for this pitch class, it is preferred over the ascending/descending
// default so a transposed run keeps a consistent accidental style.
// TODO(enharmonics): this does not yet track a per-measure key signature,
// so spellings may occasionally disagree with the tune's key; see
// SPEC_FULL.md §9 for the open question this leaves unresolved.
func SpellMIDI(midi int, ascending bool, prevAccidental string) SpelledPitch {
	octave := midi/12 - 1
	semitone := midi - (octave+1)*12
	if semitone < 0 {
		semitone += 12
		octave--
	}

	table := sharpSpelling
	if !ascending {
		table = flatSpelling
	}
	entry := table[semitone]

	if prevAccidental == "^" || prevAccidental == "_" {
		if alt := spellWithAccidental(semitone, prevAccidental); alt != nil {
			entry = *alt
		}
	}

	letter := entry.letter
	if octave >= 5 {
		letter = strings.ToLower(letter)
	}

	sp := SpelledPitch{Letter: letter, Accidental: entry.accid}
	switch {
	case octave >= 5:
		sp.OctaveMark = strings.Repeat("'", octave-5)
	case octave <= 4:
		sp.OctaveMark = strings.Repeat(",", 4-octave)
	}
	return sp
}

func spellWithAccidental(semitone int, accid string) *struct {
	letter string
	accid  string
} {
	table := sharpSpelling
	if accid == "_" {
		table = flatSpelling
	}
	e := table[semitone]
	if e.accid == accid || e.accid == "" {
		return &e
	}
	return nil
}
