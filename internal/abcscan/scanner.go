package abcscan

import (
	"strings"
	"unicode"

	"github.com/abc-lang/abcls/internal/diag"
	"github.com/abc-lang/abcls/internal/source"
	"github.com/abc-lang/abcls/internal/token"
)

// mode tracks which of the three lexical contexts the scanner is in (spec
// §4.3): file header (before the first X: line, or after a tune body's
// closing blank line), tune header (between X: and K: inclusive), and tune
// body (everything after K: until the body-closing blank line).
type mode int

const (
	modeFileHeader mode = iota
	modeTuneHeader
	modeTuneBody
)

// bracketMark disambiguates ']' between closing a chord and closing an
// inline field, since both reuse '[' / ']'.
type bracketMark byte

const (
	markChord bracketMark = 'c'
	markField bracketMark = 'f'
)

// Scanner tokenizes one ABC source string against a shared source.Context.
type Scanner struct {
	ctx  *source.Context
	mode mode

	tokens  []token.Token
	marks   []bracketMark
	prevTok *token.Token
}

// New creates a Scanner over ctx.Source, reporting diagnostics to ctx.Errors.
func New(ctx *source.Context) *Scanner {
	return &Scanner{ctx: ctx}
}

// Scan tokenizes the whole source and returns the ordered token list ending
// with an EOF token (spec §4.3).
func (s *Scanner) Scan() []token.Token {
	lines := splitLines(s.ctx.Source)
	for _, ln := range lines {
		s.scanLine(ln)
	}
	s.emit(KindEOF, "", lastPos(lines))
	return s.tokens
}

// physLine is one physical line of source, including its terminator, with
// the absolute line/offset of its first byte.
type physLine struct {
	content string // excludes terminator
	term    string // "\n", "\r\n" or "" for the final unterminated line
	line    uint32
	offset  uint32
}

func splitLines(src string) []physLine {
	var out []physLine
	var line uint32
	var offset uint32
	for offset < uint32(len(src)) || len(out) == 0 && src == "" {
		rest := src[offset:]
		nl := strings.IndexByte(rest, '\n')
		var content, term string
		if nl < 0 {
			content = rest
			term = ""
		} else if nl > 0 && rest[nl-1] == '\r' {
			content = rest[:nl-1]
			term = "\r\n"
		} else {
			content = rest[:nl]
			term = "\n"
		}
		out = append(out, physLine{content: content, term: term, line: line, offset: offset})
		offset += uint32(len(content) + len(term))
		line++
		if term == "" {
			break
		}
		if src == "" {
			break
		}
	}
	return out
}

func lastPos(lines []physLine) token.Position {
	if len(lines) == 0 {
		return token.Position{}
	}
	last := lines[len(lines)-1]
	return token.Position{
		Line:   last.line,
		Column: uint32(len([]rune(last.content))),
		Offset: last.offset + uint32(len(last.content)) + uint32(len(last.term)),
	}
}

// cursor scans within one physical line's content.
type cursor struct {
	s      *Scanner
	text   string
	line   uint32
	offset uint32 // absolute byte offset of text[0]
	col    uint32
	i      int // byte index into text
}

func (s *Scanner) scanLine(ln physLine) {
	c := &cursor{s: s, text: ln.content, line: ln.line, offset: ln.offset}

	if s.scanLineStartConstruct(c) {
		// fallthrough to scan any remaining content on the line (e.g. an
		// info line's value) handled inside scanLineStartConstruct.
	} else if strings.TrimSpace(ln.content) == "" {
		s.scanBlankLine(c)
	} else if s.mode == modeTuneBody {
		s.scanMusic(c)
	} else {
		s.scanHeaderText(c)
	}

	if ln.term != "" {
		s.emitAt(KindEOL, ln.term, token.Position{Line: ln.line, Column: uint32(len([]rune(ln.content))), Offset: ln.offset + uint32(len(ln.content))})
	}
}

func (s *Scanner) scanBlankLine(c *cursor) {
	if len(c.text) > 0 {
		s.emitAt(KindWS, c.text, token.Position{Line: c.line, Column: 0, Offset: c.offset})
	}
	if s.mode == modeTuneBody {
		s.emitAt(KindSectionBreak, "", token.Position{Line: c.line, Column: 0, Offset: c.offset})
		s.mode = modeFileHeader
	}
}

// scanLineStartConstruct recognizes %%directives, %comments and info lines
// (optionally '+'-continued) anchored at column 0; these are allowed at
// line starts in every mode, including mid tune-body (spec §4.4 "Info line
// in body. Allowed at line starts.").
func (s *Scanner) scanLineStartConstruct(c *cursor) bool {
	text := c.text
	switch {
	case strings.HasPrefix(text, "%%"):
		s.emitAt(KindStylesheetDirective, text, token.Position{Line: c.line, Offset: c.offset})
		return true
	case strings.HasPrefix(text, "%"):
		s.emitAt(KindComment, text, token.Position{Line: c.line, Offset: c.offset})
		return true
	case isInfoLineStart(text):
		s.scanInfoLine(c)
		return true
	}
	return false
}

// isInfoLineStart reports whether text begins with "X:" / "+:" style info
// line syntax: a single letter (or '+') immediately followed by ':'.
func isInfoLineStart(text string) bool {
	if len(text) < 2 {
		return false
	}
	first := rune(text[0])
	return (unicode.IsLetter(first) || first == '+') && text[1] == ':'
}

func (s *Scanner) scanInfoLine(c *cursor) {
	key := c.text[:2]
	keyPos := token.Position{Line: c.line, Column: 0, Offset: c.offset}
	kind := KindInfHdr
	if key[0] == '+' {
		kind = KindInfHdrContinuation
	}
	s.emitAt(kind, key, keyPos)

	if key == "X:" && s.mode == modeFileHeader {
		s.mode = modeTuneHeader
	}

	value := c.text[2:]
	valueOffset := c.offset + 2
	valueCol := uint32(len([]rune(key)))
	if key == "V:" {
		s.scanVoiceValue(value, c.line, valueOffset, valueCol)
	} else {
		s.scanGenericValue(value, c.line, valueOffset, valueCol)
	}

	if key == "K:" {
		s.mode = modeTuneBody
	}
}

// scanGenericValue tokenizes an info line's value as alternating TEXT/WS
// runs, sufficient for the parser to reassemble ParsedInfo for M:/L:/K:/etc.
// and for the formatter to reproduce the line byte for byte.
func (s *Scanner) scanGenericValue(value string, line, baseOffset, baseCol uint32) {
	i := 0
	for i < len(value) {
		start := i
		ws := isSpaceByte(value[i])
		for i < len(value) && isSpaceByte(value[i]) == ws {
			i++
		}
		kind := KindText
		if ws {
			kind = KindWS
		}
		lexeme := value[start:i]
		col := baseCol + uint32(len([]rune(value[:start])))
		s.emitAt(kind, lexeme, token.Position{Line: line, Column: col, Offset: baseOffset + uint32(start)})
	}
}

// scanVoiceValue tokenizes a V: line's value as id key=value pairs
// (spec §4.3: VX_ID, VX_K, VX_V, EQL).
func (s *Scanner) scanVoiceValue(value string, line, baseOffset, baseCol uint32) {
	fields := splitFieldsWithOffsets(value)
	colAt := func(byteIdx int) uint32 { return baseCol + uint32(len([]rune(value[:byteIdx]))) }
	wsAt := func(from, to int) {
		s.emitAt(KindWS, value[from:to], token.Position{Line: line, Column: colAt(from), Offset: baseOffset + uint32(from)})
	}
	prev := 0
	for idx, f := range fields {
		if f.start > prev {
			wsAt(prev, f.start)
		}
		prev = f.start + len(f.text)
		pos := token.Position{Line: line, Column: colAt(f.start), Offset: baseOffset + uint32(f.start)}
		if idx == 0 {
			s.emitAt(KindVxID, f.text, pos)
			continue
		}
		if eq := strings.IndexByte(f.text, '='); eq >= 0 {
			s.emitAt(KindVxK, f.text[:eq], pos)
			s.emitAt(KindEql, "=", token.Position{Line: line, Column: colAt(f.start + eq), Offset: baseOffset + uint32(f.start+eq)})
			s.emitAt(KindVxV, f.text[eq+1:], token.Position{Line: line, Column: colAt(f.start + eq + 1), Offset: baseOffset + uint32(f.start+eq+1)})
		} else {
			s.emitAt(KindVxK, f.text, pos)
		}
	}
	if prev < len(value) {
		wsAt(prev, len(value))
	}
}

type fieldSpan struct {
	text  string
	start int
}

func splitFieldsWithOffsets(s string) []fieldSpan {
	var out []fieldSpan
	i := 0
	for i < len(s) {
		for i < len(s) && isSpaceByte(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		inQuote := false
		for i < len(s) && (inQuote || !isSpaceByte(s[i])) {
			if s[i] == '"' {
				inQuote = !inQuote
			}
			i++
		}
		out = append(out, fieldSpan{text: s[start:i], start: start})
	}
	return out
}

func (s *Scanner) scanHeaderText(c *cursor) {
	if c.text == "" {
		return
	}
	s.emitAt(KindText, c.text, token.Position{Line: c.line, Offset: c.offset})
}

func isSpaceByte(b byte) bool { return b == ' ' || b == '\t' }

func (s *Scanner) emit(kind token.Kind, lexeme string, pos token.Position) {
	s.emitAt(kind, lexeme, pos)
}

func (s *Scanner) emitAt(kind token.Kind, lexeme string, pos token.Position) {
	tok := token.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Line:   pos.Line,
		Column: columnFor(pos),
		Offset: pos.Offset,
		ID:     s.ctx.NextTokenID(),
	}
	s.tokens = append(s.tokens, tok)
	s.prevTok = &s.tokens[len(s.tokens)-1]
}

// columnFor returns the 0-based column already carried in pos.Column; every
// caller computes the column itself before emitting.
func columnFor(pos token.Position) uint32 {
	return pos.Column
}

func (s *Scanner) reportInvalid(lexeme string, pos token.Position, message string) {
	s.emitAt(KindInvalid, lexeme, pos)
	span := token.Span{Start: pos, End: token.Position{Line: pos.Line, Column: pos.Column + uint32(len([]rune(lexeme))), Offset: pos.Offset + uint32(len(lexeme))}}
	s.ctx.Errors.Report(diag.SeverityError, span, message, diag.OriginScanner)
}
