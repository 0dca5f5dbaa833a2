package abcast

import "strconv"

// RhythmLength returns the note-length multiplier a Rhythm node encodes
// relative to the tune's unit note length: a missing rhythm (id == 0) is
// 1, "2" is 2, "/2" or a bare "/" is 0.5, "3/4" is 0.75. Broken-rhythm
// marks are not reflected; they only shift duration between the pair of
// notes they join, not the note's own length.
func RhythmLength(a *Arena, id NodeID) float64 {
	r, ok := a.Get(id).(*Rhythm)
	if !ok {
		return 1
	}
	num := 1.0
	if r.Numerator != nil {
		if v, err := strconv.Atoi(r.Numerator.Lexeme); err == nil {
			num = float64(v)
		}
	}
	den := 1.0
	switch {
	case r.Denominator != nil:
		if v, err := strconv.Atoi(r.Denominator.Lexeme); err == nil {
			den = float64(v)
		}
	case r.Separator != nil:
		den = 2
	}
	if den == 0 {
		return num
	}
	return num / den
}
