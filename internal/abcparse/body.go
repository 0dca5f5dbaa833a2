package abcparse

import (
	"strconv"
	"strings"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcscan"
	"github.com/abc-lang/abcls/internal/token"
)

// parseTuneBody parses the K:-terminated tune body into a sequence of
// Systems, one per music-code line group, beam detection included
// (spec §4.4).
func (p *Parser) parseTuneBody(parent abcast.NodeID) abcast.NodeID {
	bodyID := p.add(&abcast.TuneBody{}, parent)
	var systems []abcast.NodeID

	for !p.check(abcscan.KindEOF) && !p.check(abcscan.KindSectionBreak) {
		if p.check(abcscan.KindEOL) {
			p.advance()
			continue
		}
		if p.check(abcscan.KindComment) {
			systems = append(systems, p.wrapLine(bodyID, p.parseCommentAsSystem(bodyID)))
			continue
		}
		if p.check(abcscan.KindStylesheetDirective) {
			systems = append(systems, p.wrapLine(bodyID, p.parseDirectiveAsSystem(bodyID)))
			continue
		}
		if p.check(abcscan.KindInfHdr) || p.check(abcscan.KindInfHdrContinuation) {
			systems = append(systems, p.wrapLine(bodyID, p.parseInfoLine(bodyID)))
			continue
		}
		systems = append(systems, p.parseSystem(bodyID))
	}

	body := p.arena.Get(bodyID).(*abcast.TuneBody)
	body.Systems = systems
	abcast.RecomputeSpan(p.arena, bodyID)
	return bodyID
}

// wrapLine packages a single standalone line-level node (comment, directive,
// mid-body info line) as a one-element System so TuneBody.Systems stays
// homogeneous.
func (p *Parser) wrapLine(parent abcast.NodeID, id abcast.NodeID) abcast.NodeID {
	p.arena.SetParent(id, 0)
	sysID := p.add(&abcast.System{Elements: []abcast.NodeID{id}}, parent)
	p.arena.SetParent(id, sysID)
	abcast.RecomputeSpan(p.arena, sysID)
	return sysID
}

func (p *Parser) parseCommentAsSystem(parent abcast.NodeID) abcast.NodeID {
	return p.parseComment(parent)
}

func (p *Parser) parseDirectiveAsSystem(parent abcast.NodeID) abcast.NodeID {
	return p.parseDirective(parent)
}

// parseSystem parses one music-code physical line into a flat element
// sequence, then groups adjacent beamable elements into Beam nodes.
func (p *Parser) parseSystem(parent abcast.NodeID) abcast.NodeID {
	sysID := p.add(&abcast.System{}, parent)
	var flat []abcast.NodeID

	for !p.check(abcscan.KindEOL) && !p.check(abcscan.KindEOF) && !p.check(abcscan.KindSectionBreak) {
		flat = append(flat, p.parseBodyElement(sysID))
	}
	p.consumeEOL()

	grouped := p.groupBeams(sysID, flat)
	sys := p.arena.Get(sysID).(*abcast.System)
	sys.Elements = grouped
	abcast.RecomputeSpan(p.arena, sysID)
	return sysID
}

// groupBeams folds consecutive beamable elements (Note/Chord, with
// beam-transparent decorations/annotations/grace groups interleaved)
// separated by no whitespace into Beam nodes (spec §4.4).
func (p *Parser) groupBeams(parent abcast.NodeID, flat []abcast.NodeID) []abcast.NodeID {
	var out []abcast.NodeID
	i := 0
	for i < len(flat) {
		if !abcast.IsBeamable(p.arena, flat[i]) {
			out = append(out, flat[i])
			i++
			continue
		}
		j := i + 1
		run := []abcast.NodeID{flat[i]}
		for j < len(flat) {
			n := p.arena.Get(flat[j])
			if abcast.IsBeamable(p.arena, flat[j]) {
				run = append(run, flat[j])
				j++
				continue
			}
			if isBeamTransparentNode(n) {
				run = append(run, flat[j])
				j++
				continue
			}
			break
		}
		beamCount := countBeamable(p.arena, run)
		if beamCount >= 2 {
			beamID := p.add(&abcast.Beam{Contents: run}, parent)
			for _, c := range run {
				p.arena.SetParent(c, beamID)
			}
			abcast.RecomputeSpan(p.arena, beamID)
			out = append(out, beamID)
		} else {
			out = append(out, run...)
		}
		i = j
	}
	return out
}

func isBeamTransparentNode(n abcast.Node) bool {
	switch n.(type) {
	case *abcast.Annotation, *abcast.Decoration, *abcast.Symbol, *abcast.GraceGroup, *abcast.YSpacer:
		return true
	default:
		return false
	}
}

func countBeamable(a *abcast.Arena, ids []abcast.NodeID) int {
	n := 0
	for _, id := range ids {
		if abcast.IsBeamable(a, id) {
			n++
		}
	}
	return n
}

// parseBodyElement parses one music-code token (or small fixed group of
// tokens) into a BodyElement node.
func (p *Parser) parseBodyElement(parent abcast.NodeID) abcast.NodeID {
	t := p.peek()
	switch t.Kind {
	case abcscan.KindWS:
		p.advance()
		n := &abcast.TokenNode{Tok: t}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	case abcscan.KindBackslash:
		p.advance()
		n := &abcast.TokenNode{Tok: t}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	case abcscan.KindBarline:
		return p.parseBarLine(parent)
	case abcscan.KindInlineFieldOpen:
		return p.parseInlineField(parent)
	case abcscan.KindChrdLeftBrkt:
		return p.parseChord(parent)
	case abcscan.KindGrcGrpLeftBrace:
		return p.parseGraceGroup(parent)
	case abcscan.KindLeftParenNumber:
		return p.parseTuplet(parent)
	case abcscan.KindNumber:
		return p.parseNthRepeatOrNumber(parent)
	case abcscan.KindAnnotation:
		p.advance()
		n := &abcast.Annotation{Tok: t, Text: strings.Trim(t.Lexeme, `"`)}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	case abcscan.KindSymbol:
		p.advance()
		n := &abcast.Symbol{Tok: t, Name: strings.Trim(strings.Trim(t.Lexeme, "!"), "+")}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	case abcscan.KindDecoration:
		p.advance()
		n := &abcast.Decoration{Tok: t, Symbol: t.Lexeme}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	case abcscan.KindYSpacer:
		return p.parseYSpacer(parent)
	case abcscan.KindMultiMeasureRest:
		p.advance()
		n := &abcast.MultiMeasureRest{Tok: t}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	case abcscan.KindAmpersand:
		return p.parseVoiceOverlay(parent)
	case abcscan.KindWsRest, abcscan.KindNoteLetter, abcscan.KindAccidental:
		return p.parseNote(parent)
	default:
		p.advance()
		n := &abcast.TokenNode{Tok: t}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	}
}

func (p *Parser) parseBarLine(parent abcast.NodeID) abcast.NodeID {
	start := p.peek()
	var toks []token.Token
	toks = append(toks, p.advance())
	var repeats []token.Token
	for p.check(abcscan.KindRepeatDigit) {
		repeats = append(repeats, p.advance())
	}
	n := &abcast.BarLine{Tokens: toks, RepeatNumbers: repeats}
	n.SetSpan(start.Span())
	return p.add(n, parent)
}

func (p *Parser) parseInlineField(parent abcast.NodeID) abcast.NodeID {
	start := p.advance() // '['
	var value []token.Token
	for !p.check(abcscan.KindInlineFieldClose) && !p.check(abcscan.KindEOF) && !p.check(abcscan.KindEOL) {
		value = append(value, p.advance())
	}
	if p.check(abcscan.KindInlineFieldClose) {
		p.advance()
	}
	var key token.Token
	if len(value) > 0 {
		key = value[0]
		value = value[1:]
	}
	n := &abcast.InlineField{Key: key, Value: value}
	n.SetSpan(start.Span())
	return p.add(n, parent)
}

func (p *Parser) parseChord(parent abcast.NodeID) abcast.NodeID {
	start := p.advance() // '['
	chordID := p.add(&abcast.Chord{}, parent)
	var contents []abcast.NodeID
	for !p.check(abcscan.KindChrdRightBrkt) && !p.check(abcscan.KindEOF) && !p.check(abcscan.KindEOL) {
		contents = append(contents, p.parseBodyElement(chordID))
	}
	if p.check(abcscan.KindChrdRightBrkt) {
		p.advance()
	}
	rhyID := p.maybeParseRhythm(chordID)
	chord := p.arena.Get(chordID).(*abcast.Chord)
	chord.Contents = contents
	chord.Rhythm = rhyID
	chord.SetSpan(start.Span())
	abcast.RecomputeSpan(p.arena, chordID)
	return chordID
}

func (p *Parser) parseGraceGroup(parent abcast.NodeID) abcast.NodeID {
	start := p.advance() // '{'
	acciaccatura := false
	if p.check(abcscan.KindGrcGrpSlash) {
		p.advance()
		acciaccatura = true
	}
	ggID := p.add(&abcast.GraceGroup{IsAcciaccatura: acciaccatura}, parent)
	var notes []abcast.NodeID
	for !p.check(abcscan.KindGrcGrpRightBrace) && !p.check(abcscan.KindEOF) && !p.check(abcscan.KindEOL) {
		notes = append(notes, p.parseBodyElement(ggID))
	}
	if p.check(abcscan.KindGrcGrpRightBrace) {
		p.advance()
	}
	gg := p.arena.Get(ggID).(*abcast.GraceGroup)
	gg.Notes = notes
	gg.SetSpan(start.Span())
	abcast.RecomputeSpan(p.arena, ggID)
	return ggID
}

func (p *Parser) parseTuplet(parent abcast.NodeID) abcast.NodeID {
	start := p.advance() // "(p" or "(p:q" or "(p:q:r"
	spec := strings.TrimPrefix(start.Lexeme, "(")
	parts := strings.Split(spec, ":")
	tp := &abcast.Tuplet{}
	tp.P, _ = strconv.Atoi(parts[0])
	r := tp.P
	if len(parts) > 1 && parts[1] != "" {
		tp.Q, _ = strconv.Atoi(parts[1])
		tp.HasQ = true
	}
	if len(parts) > 2 && parts[2] != "" {
		tp.R, _ = strconv.Atoi(parts[2])
		tp.HasR = true
		r = tp.R
	}
	tupID := p.add(tp, parent)
	var contents []abcast.NodeID
	count := 0
	for count < r && !p.check(abcscan.KindEOL) && !p.check(abcscan.KindEOF) {
		el := p.parseBodyElement(tupID)
		contents = append(contents, el)
		if abcast.IsBeamable(p.arena, el) {
			count++
		}
	}
	tup := p.arena.Get(tupID).(*abcast.Tuplet)
	tup.Contents = contents
	tup.SetSpan(start.Span())
	abcast.RecomputeSpan(p.arena, tupID)
	return tupID
}

func (p *Parser) parseNthRepeatOrNumber(parent abcast.NodeID) abcast.NodeID {
	t := p.advance()
	n := &abcast.NthRepeat{Tok: t}
	n.SetSpan(t.Span())
	return p.add(n, parent)
}

func (p *Parser) parseYSpacer(parent abcast.NodeID) abcast.NodeID {
	t := p.advance()
	ySpID := p.add(&abcast.YSpacer{Tok: t}, parent)
	rhyID := p.maybeParseRhythm(ySpID)
	y := p.arena.Get(ySpID).(*abcast.YSpacer)
	y.Width = rhyID
	y.SetSpan(t.Span())
	abcast.RecomputeSpan(p.arena, ySpID)
	return ySpID
}

func (p *Parser) parseVoiceOverlay(parent abcast.NodeID) abcast.NodeID {
	t := p.advance()
	voID := p.add(&abcast.VoiceOverlay{Tok: t}, parent)
	var contents []abcast.NodeID
	for !p.check(abcscan.KindEOL) && !p.check(abcscan.KindEOF) && !p.check(abcscan.KindBarline) {
		contents = append(contents, p.parseBodyElement(voID))
	}
	vo := p.arena.Get(voID).(*abcast.VoiceOverlay)
	vo.Contents = contents
	vo.SetSpan(t.Span())
	abcast.RecomputeSpan(p.arena, voID)
	return voID
}

func (p *Parser) parseNote(parent abcast.NodeID) abcast.NodeID {
	start := p.peek()
	noteID := p.add(&abcast.Note{}, parent)
	pitchID := p.parsePitchOrRest(noteID)

	var tie *token.Token
	rhyID := p.maybeParseRhythm(noteID)
	if p.check(abcscan.KindTie) {
		tt := p.advance()
		tie = &tt
	}

	note := p.arena.Get(noteID).(*abcast.Note)
	note.Pitch = pitchID
	note.Rhythm = rhyID
	note.Tie = tie
	note.SetSpan(start.Span())
	abcast.RecomputeSpan(p.arena, noteID)
	return noteID
}

func (p *Parser) parsePitchOrRest(parent abcast.NodeID) abcast.NodeID {
	if p.check(abcscan.KindWsRest) {
		t := p.advance()
		n := &abcast.Rest{Tok: t}
		n.SetSpan(t.Span())
		return p.add(n, parent)
	}

	start := p.peek()
	var alt *token.Token
	if p.check(abcscan.KindAccidental) {
		a := p.advance()
		alt = &a
	}
	letter := p.advance() // NOTE_LETTER
	var oct *token.Token
	if p.check(abcscan.KindOctave) {
		o := p.advance()
		oct = &o
	}
	n := &abcast.Pitch{Alteration: alt, NoteLetter: letter, Octave: oct}
	n.SetSpan(start.Span())
	return p.add(n, parent)
}

func (p *Parser) maybeParseRhythm(parent abcast.NodeID) abcast.NodeID {
	if !p.at(abcscan.KindRhyNumer, abcscan.KindRhySep, abcscan.KindBroken) {
		return 0
	}
	start := p.peek()
	var num, sep, den, broken *token.Token
	if p.check(abcscan.KindRhyNumer) {
		t := p.advance()
		num = &t
	}
	if p.check(abcscan.KindRhySep) {
		t := p.advance()
		sep = &t
		if p.check(abcscan.KindRhyDenom) {
			t2 := p.advance()
			den = &t2
		}
	}
	if p.check(abcscan.KindBroken) {
		t := p.advance()
		broken = &t
	}
	n := &abcast.Rhythm{Numerator: num, Separator: sep, Denominator: den, Broken: broken}
	n.SetSpan(start.Span())
	return p.add(n, parent)
}
