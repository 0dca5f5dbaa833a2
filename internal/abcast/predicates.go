package abcast

// IsNote reports whether id is a Note node.
func IsNote(a *Arena, id NodeID) bool {
	_, ok := a.Get(id).(*Note)
	return ok
}

// IsChord reports whether id is a Chord node.
func IsChord(a *Arena, id NodeID) bool {
	_, ok := a.Get(id).(*Chord)
	return ok
}

// IsBeamable reports whether id can participate in a Beam's Contents
// (Note or Chord; spec §3 Beam invariant).
func IsBeamable(a *Arena, id NodeID) bool {
	switch a.Get(id).(type) {
	case *Note, *Chord:
		return true
	default:
		return false
	}
}

// IsBeamTransparent reports whether id is allowed to sit between two
// beamed notes without breaking the beam (spec §4.4: "annotations,
// decorations, symbols, grace groups, and y-spacers do not break the beam
// when attached to beam-internal notes").
func IsBeamTransparent(a *Arena, id NodeID) bool {
	switch a.Get(id).(type) {
	case *Annotation, *Decoration, *Symbol, *GraceGroup, *YSpacer:
		return true
	default:
		return false
	}
}

// IsWhitespaceOrBarline reports whether id is a whitespace/EOL TokenNode or
// a BarLine, both of which terminate a Beam (spec §3, §4.4).
func IsWhitespaceOrBarline(a *Arena, id NodeID) bool {
	switch a.Get(id).(type) {
	case *BarLine:
		return true
	case *TokenNode:
		return true
	default:
		return false
	}
}

// PitchOrRest returns the real MIDI pitch for a Note's Pitch field, or
// (0, false) if it points at a Rest.
func PitchOrRest(a *Arena, n *Note) (midi int, ok bool) {
	switch v := a.Get(n.Pitch).(type) {
	case *Pitch:
		return ToMIDI(v), true
	default:
		return 0, false
	}
}
