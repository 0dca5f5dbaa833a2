// Package abcfmt renders an internal/abcast tree back to ABC source text,
// honoring internal/source.FormatterConfig (spec §6).
package abcfmt

import (
	"strconv"
	"strings"

	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/source"
)

// Format renders tree using cfg, which is typically ctx.Formatter after a
// parse so %%abcls-fmt directives in the source take effect.
func Format(tree *abcast.Tree, cfg source.FormatterConfig) string {
	f := &formatter{arena: tree.Arena, cfg: cfg}
	f.writeFileStructure(tree.Root)
	return f.b.String()
}

type formatter struct {
	arena *abcast.Arena
	cfg   source.FormatterConfig
	b     strings.Builder
}

func (f *formatter) get(id abcast.NodeID) abcast.Node { return f.arena.Get(id) }

func (f *formatter) writeFileStructure(id abcast.NodeID) {
	n, ok := f.get(id).(*abcast.FileStructure)
	if !ok {
		return
	}
	if n.Header != 0 {
		f.writeFileHeader(n.Header)
	}
	for i, t := range n.Tunes {
		if i > 0 {
			f.b.WriteByte('\n')
		}
		f.writeNode(t)
	}
}

func (f *formatter) writeFileHeader(id abcast.NodeID) {
	h, ok := f.get(id).(*abcast.FileHeader)
	if !ok {
		return
	}
	f.b.WriteString(h.Text)
}

func (f *formatter) writeNode(id abcast.NodeID) {
	switch n := f.get(id).(type) {
	case *abcast.Tune:
		f.writeTune(n)
	case *abcast.ErrorExpr:
		f.b.WriteString(n.Partial)
	}
}

func (f *formatter) writeTune(n *abcast.Tune) {
	if n.Header != 0 {
		f.writeTuneHeader(n.Header)
	}
	if n.Body != 0 {
		f.writeTuneBody(n.Body)
	}
}

func (f *formatter) writeTuneHeader(id abcast.NodeID) {
	hdr, ok := f.get(id).(*abcast.TuneHeader)
	if !ok {
		return
	}
	for _, lineID := range hdr.Lines {
		f.writeHeaderLine(lineID)
	}
}

func (f *formatter) writeHeaderLine(id abcast.NodeID) {
	switch n := f.get(id).(type) {
	case *abcast.InfoLine:
		f.b.WriteString(n.Key.Lexeme)
		for _, t := range n.Value {
			f.b.WriteString(t.Lexeme)
		}
		f.b.WriteByte('\n')
	case *abcast.Comment:
		f.b.WriteString(n.Tok.Lexeme)
		f.b.WriteByte('\n')
	case *abcast.StyleSheetDirective:
		if f.cfg.SystemComments || !isVoiceShowHideDirective(n) {
			f.b.WriteString(n.Tok.Lexeme)
			f.b.WriteByte('\n')
		}
	}
}

func isVoiceShowHideDirective(n *abcast.StyleSheetDirective) bool {
	return n.Name == "abcls-voices"
}

func (f *formatter) writeTuneBody(id abcast.NodeID) {
	body, ok := f.get(id).(*abcast.TuneBody)
	if !ok {
		return
	}
	for _, sysID := range body.Systems {
		f.writeSystem(sysID)
		f.b.WriteByte('\n')
	}
}

func (f *formatter) writeSystem(id abcast.NodeID) {
	sys, ok := f.get(id).(*abcast.System)
	if !ok {
		return
	}
	if f.shouldHideSystem(sys) {
		return
	}
	for _, el := range sys.Elements {
		f.writeBodyElement(el)
	}
}

// shouldHideSystem honors %%abcls-voices hide for single-element systems
// that wrap a V: voice-switch InfoLine (spec §6).
func (f *formatter) shouldHideSystem(sys *abcast.System) bool {
	if f.cfg.ShowVoices == nil || *f.cfg.ShowVoices {
		return false
	}
	if len(sys.Elements) != 1 {
		return false
	}
	il, ok := f.get(sys.Elements[0]).(*abcast.InfoLine)
	return ok && il.Key.Lexeme == "V:"
}

func (f *formatter) writeBodyElement(id abcast.NodeID) {
	switch n := f.get(id).(type) {
	case *abcast.TokenNode:
		f.b.WriteString(n.Tok.Lexeme)
	case *abcast.BarLine:
		for _, t := range n.Tokens {
			f.b.WriteString(t.Lexeme)
		}
		for _, t := range n.RepeatNumbers {
			f.b.WriteString(t.Lexeme)
		}
	case *abcast.Note:
		f.writeNote(n)
	case *abcast.Chord:
		f.b.WriteByte('[')
		for _, c := range n.Contents {
			f.writeBodyElement(c)
		}
		f.b.WriteByte(']')
		f.writeRhythm(n.Rhythm)
		if n.Tie != nil {
			f.b.WriteString(n.Tie.Lexeme)
		}
	case *abcast.Beam:
		for _, c := range n.Contents {
			f.writeBodyElement(c)
		}
	case *abcast.GraceGroup:
		f.b.WriteByte('{')
		if n.IsAcciaccatura {
			f.b.WriteByte('/')
		}
		for _, c := range n.Notes {
			f.writeBodyElement(c)
		}
		f.b.WriteByte('}')
	case *abcast.Annotation:
		f.b.WriteString(n.Tok.Lexeme)
	case *abcast.Decoration:
		f.b.WriteString(n.Tok.Lexeme)
	case *abcast.Symbol:
		f.b.WriteString(n.Tok.Lexeme)
	case *abcast.InlineField:
		f.b.WriteByte('[')
		f.b.WriteString(n.Key.Lexeme)
		for _, t := range n.Value {
			f.b.WriteString(t.Lexeme)
		}
		f.b.WriteByte(']')
	case *abcast.NthRepeat:
		f.b.WriteString(n.Tok.Lexeme)
		for _, t := range n.Numbers {
			f.b.WriteString(t.Lexeme)
		}
	case *abcast.MultiMeasureRest:
		f.b.WriteString(n.Tok.Lexeme)
	case *abcast.YSpacer:
		f.b.WriteString(n.Tok.Lexeme)
		f.writeRhythm(n.Width)
	case *abcast.Tuplet:
		f.b.WriteByte('(')
		f.b.WriteString(strconv.Itoa(n.P))
		if n.HasQ {
			f.b.WriteByte(':')
			f.b.WriteString(strconv.Itoa(n.Q))
		}
		if n.HasR {
			f.b.WriteByte(':')
			f.b.WriteString(strconv.Itoa(n.R))
		}
		for _, c := range n.Contents {
			f.writeBodyElement(c)
		}
	case *abcast.VoiceOverlay:
		f.b.WriteString(n.Tok.Lexeme)
		for _, c := range n.Contents {
			f.writeBodyElement(c)
		}
	case *abcast.InfoLine:
		f.writeHeaderLine(id)
	case *abcast.Comment:
		f.writeHeaderLine(id)
	case *abcast.StyleSheetDirective:
		f.writeHeaderLine(id)
	case *abcast.ErrorExpr:
		f.b.WriteString(n.Partial)
	}
}

func (f *formatter) writeNote(n *abcast.Note) {
	switch pr := f.get(n.Pitch).(type) {
	case *abcast.Pitch:
		if pr.Alteration != nil {
			f.b.WriteString(pr.Alteration.Lexeme)
		}
		f.b.WriteString(pr.NoteLetter.Lexeme)
		if pr.Octave != nil {
			f.b.WriteString(pr.Octave.Lexeme)
		}
	case *abcast.Rest:
		f.b.WriteString(pr.Tok.Lexeme)
	}
	f.writeRhythm(n.Rhythm)
	if n.Tie != nil {
		f.b.WriteString(n.Tie.Lexeme)
	}
}

func (f *formatter) writeRhythm(id abcast.NodeID) {
	r, ok := f.get(id).(*abcast.Rhythm)
	if !ok {
		return
	}
	if r.Numerator != nil {
		f.b.WriteString(r.Numerator.Lexeme)
	}
	if r.Separator != nil {
		f.b.WriteString(r.Separator.Lexeme)
	}
	if r.Denominator != nil {
		f.b.WriteString(r.Denominator.Lexeme)
	}
	if r.Broken != nil {
		f.b.WriteString(r.Broken.Lexeme)
	}
}
