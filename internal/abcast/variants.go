package abcast

import "github.com/abc-lang/abcls/internal/token"

// FileStructure is the root of a parsed ABC source (spec §3).
type FileStructure struct {
	Base
	Header NodeID // 0 if absent
	Tunes  []NodeID
}

func (n *FileStructure) NodeKind() Kind { return KindFileStructure }
func (n *FileStructure) NodeChildren() []NodeID {
	out := children(n.Header)
	return append(out, n.Tunes...)
}

// FileHeader is free text preceding the first tune (e.g. %abc-2.1, global directives).
type FileHeader struct {
	Base
	Text   string
	Tokens []token.Token
}

func (n *FileHeader) NodeKind() Kind           { return KindFileHeader }
func (n *FileHeader) NodeChildren() []NodeID   { return nil }

// Tune is one tune: a header and an optional body (a header-only fragment
// is valid, e.g. mid-recovery).
type Tune struct {
	Base
	Header NodeID
	Body   NodeID // 0 if absent
}

func (n *Tune) NodeKind() Kind { return KindTune }
func (n *Tune) NodeChildren() []NodeID {
	return append(children(n.Header), children(n.Body)...)
}

// TuneHeader holds the X:..K: info lines (plus interleaved comments and
// stylesheet directives) opening a tune.
type TuneHeader struct {
	Base
	Lines []NodeID // InfoLine | Comment | StyleSheetDirective
}

func (n *TuneHeader) NodeKind() Kind         { return KindTuneHeader }
func (n *TuneHeader) NodeChildren() []NodeID { return n.Lines }

// TuneBody is the sequence of systems following the K: line.
type TuneBody struct {
	Base
	Systems []NodeID
}

func (n *TuneBody) NodeKind() Kind         { return KindTuneBody }
func (n *TuneBody) NodeChildren() []NodeID { return n.Systems }

// System is one logical multi-voice line group: a flat run of BodyElement
// nodes up to a music-line break or voice-order wraparound (spec §4.4,
// GLOSSARY "System").
type System struct {
	Base
	Elements []NodeID
}

func (n *System) NodeKind() Kind         { return KindSystem }
func (n *System) NodeChildren() []NodeID { return n.Elements }

// KeySig is the parsed form of a K: info line.
type KeySig struct {
	Tonic string // e.g. "C", "F#", "Bb"
	Mode  string // "major", "minor", "mixolydian", ... ("" defaults to major)
}

// Meter is the parsed form of an M: info line.
type Meter struct {
	Numerator   []int // supports additive meters like 2+3+2/8
	Denominator int
	CutTime     bool // true for M:C| only; M:C is common time (4/4)
}

// Rational is numerator/denominator, used for L: (unit note length).
type Rational struct {
	Num, Den int
}

// VoiceDef is the parsed form of a V: info line.
type VoiceDef struct {
	ID    string
	Name  string
	Clef  string
}

// ParsedInfo is the sum type InfoLine.parsed can hold; nil means the value
// was not recognized as one of the structured forms (plain text is kept in
// InfoLine.Value regardless).
type ParsedInfo interface{ parsedInfo() }

func (KeySig) parsedInfo()     {}
func (Meter) parsedInfo()      {}
func (Rational) parsedInfo()   {}
func (VoiceDef) parsedInfo()   {}

// InfoLine is a "Key:value" header/body line. Invariant: Key.Lexeme ends
// with ':' (spec §3).
type InfoLine struct {
	Base
	Key    token.Token
	Value  []token.Token
	Parsed ParsedInfo
}

func (n *InfoLine) NodeKind() Kind         { return KindInfoLine }
func (n *InfoLine) NodeChildren() []NodeID { return nil }

// Comment is a '%' line comment (not a stylesheet directive).
type Comment struct {
	Base
	Tok token.Token
}

func (n *Comment) NodeKind() Kind         { return KindComment }
func (n *Comment) NodeChildren() []NodeID { return nil }

// StyleSheetDirective is a '%%...' line, consumed verbatim by the formatter
// and additionally applied as configuration when its Name matches
// config.DirectiveSpecs (spec §4.3).
type StyleSheetDirective struct {
	Base
	Tok   token.Token
	Name  string
	Value string
}

func (n *StyleSheetDirective) NodeKind() Kind         { return KindStyleSheetDirective }
func (n *StyleSheetDirective) NodeChildren() []NodeID { return nil }

// Pitch is a real pitched note head (spec §3): letter case and
// apostrophes/commas encode register, accidentals adjust by semitone.
type Pitch struct {
	Base
	Alteration *token.Token // ^ ^^ _ __ = or nil
	NoteLetter token.Token  // A-G or a-g
	Octave     *token.Token // run of ' or , or nil
}

func (n *Pitch) NodeKind() Kind         { return KindPitch }
func (n *Pitch) NodeChildren() []NodeID { return nil }

// Rest is a rest placeholder ('z', 'x', 'Z', 'X').
type Rest struct {
	Base
	Tok token.Token
}

func (n *Rest) NodeKind() Kind         { return KindRest }
func (n *Rest) NodeChildren() []NodeID { return nil }

// Rhythm is the optional length suffix on a note/chord/rest: numerator,
// separator, denominator and broken-rhythm run.
type Rhythm struct {
	Base
	Numerator   *token.Token
	Separator   *token.Token
	Denominator *token.Token
	Broken      *token.Token
}

func (n *Rhythm) NodeKind() Kind         { return KindRhythm }
func (n *Rhythm) NodeChildren() []NodeID { return nil }

// Note pairs a Pitch or Rest with an optional Rhythm and tie.
type Note struct {
	Base
	Pitch  NodeID // Pitch or Rest
	Rhythm NodeID // 0 if absent
	Tie    *token.Token
}

func (n *Note) NodeKind() Kind { return KindNote }
func (n *Note) NodeChildren() []NodeID {
	return append(children(n.Pitch), children(n.Rhythm)...)
}

// Chord is a bracketed simultaneity. Invariant: must contain >=1 Note; see
// internal/abctfilter for the pruning invariant.
type Chord struct {
	Base
	Contents []NodeID // Note | Annotation | TokenNode
	Rhythm   NodeID
	Tie      *token.Token
}

func (n *Chord) NodeKind() Kind { return KindChord }
func (n *Chord) NodeChildren() []NodeID {
	return append(append([]NodeID{}, n.Contents...), children(n.Rhythm)...)
}

// Notes returns the Chord's direct Note children in order.
func (n *Chord) Notes(a *Arena) []NodeID {
	var out []NodeID
	for _, id := range n.Contents {
		if a.Get(id).NodeKind() == KindNote {
			out = append(out, id)
		}
	}
	return out
}

// Beam is a parser-inferred grouping of >=2 adjacent Note/Chord nodes with
// no intervening whitespace or barline (spec §3, §4.4). Never constructed
// by the user; only by AbcParser beam detection.
type Beam struct {
	Base
	Contents []NodeID // Note | Chord | GraceGroup | Annotation | Decoration | Symbol | YSpacer
}

func (n *Beam) NodeKind() Kind         { return KindBeam }
func (n *Beam) NodeChildren() []NodeID { return n.Contents }

// GraceGroup is a bracketed run of grace notes, '{...}', optionally an
// acciaccatura (leading '/').
type GraceGroup struct {
	Base
	Notes          []NodeID
	IsAcciaccatura bool
}

func (n *GraceGroup) NodeKind() Kind         { return KindGraceGroup }
func (n *GraceGroup) NodeChildren() []NodeID { return n.Notes }

// BarLine is a bar separator, possibly carrying volta/repeat numbers.
type BarLine struct {
	Base
	Tokens        []token.Token
	RepeatNumbers []token.Token
}

func (n *BarLine) NodeKind() Kind         { return KindBarLine }
func (n *BarLine) NodeChildren() []NodeID { return nil }

// Annotation is a quoted free-text annotation, e.g. "Fine".
type Annotation struct {
	Base
	Tok  token.Token
	Text string
}

func (n *Annotation) NodeKind() Kind         { return KindAnnotation }
func (n *Annotation) NodeChildren() []NodeID { return nil }

// Decoration is a single-char or !...! / +...+ delimited decoration symbol.
type Decoration struct {
	Base
	Tok    token.Token
	Symbol string
}

func (n *Decoration) NodeKind() Kind         { return KindDecoration }
func (n *Decoration) NodeChildren() []NodeID { return nil }

// Symbol is a user-defined symbol invocation bound by a U: info line.
type Symbol struct {
	Base
	Tok  token.Token
	Name string
}

func (n *Symbol) NodeKind() Kind         { return KindSymbol }
func (n *Symbol) NodeChildren() []NodeID { return nil }

// InlineField is a '[K:C]'-style info line embedded mid-body.
type InlineField struct {
	Base
	Key   token.Token
	Value []token.Token
}

func (n *InlineField) NodeKind() Kind         { return KindInlineField }
func (n *InlineField) NodeChildren() []NodeID { return nil }

// NthRepeat is a volta marker like '[1' or '[1,3'.
type NthRepeat struct {
	Base
	Tok     token.Token
	Numbers []token.Token
}

func (n *NthRepeat) NodeKind() Kind         { return KindNthRepeat }
func (n *NthRepeat) NodeChildren() []NodeID { return nil }

// MultiMeasureRest is 'Z4' or 'X2'.
type MultiMeasureRest struct {
	Base
	Tok   token.Token
	Count int
}

func (n *MultiMeasureRest) NodeKind() Kind         { return KindMultiMeasureRest }
func (n *MultiMeasureRest) NodeChildren() []NodeID { return nil }

// YSpacer is a 'y' spacing element, optionally with a rhythm-like width.
type YSpacer struct {
	Base
	Tok    token.Token
	Width  NodeID
}

func (n *YSpacer) NodeKind() Kind         { return KindYSpacer }
func (n *YSpacer) NodeChildren() []NodeID { return children(n.Width) }

// Tuplet is a '(p', '(p:q', '(p:q:r' prefix applied to the next r notes.
type Tuplet struct {
	Base
	P, Q, R    int
	HasQ, HasR bool
	Contents   []NodeID
}

func (n *Tuplet) NodeKind() Kind         { return KindTuplet }
func (n *Tuplet) NodeChildren() []NodeID { return n.Contents }

// VoiceOverlay is the '&' voice-overlay marker and the elements after it
// within the same measure.
type VoiceOverlay struct {
	Base
	Tok      token.Token
	Contents []NodeID
}

func (n *VoiceOverlay) NodeKind() Kind         { return KindVoiceOverlay }
func (n *VoiceOverlay) NodeChildren() []NodeID { return n.Contents }

// TokenNode wraps a lexical token that stands alone as a BodyElement
// (whitespace, EOL, or a line-continuation backslash).
type TokenNode struct {
	Base
	Tok token.Token
}

func (n *TokenNode) NodeKind() Kind         { return KindTokenNode }
func (n *TokenNode) NodeChildren() []NodeID { return nil }

// ErrorExpr preserves the original offending text verbatim so formatting
// round-trips even through a parse failure (spec §4.4, §7, §9).
type ErrorExpr struct {
	Base
	Message string
	Partial string
}

func (n *ErrorExpr) NodeKind() Kind         { return KindErrorExpr }
func (n *ErrorExpr) NodeChildren() []NodeID { return nil }

func children(id NodeID) []NodeID {
	if id == 0 {
		return nil
	}
	return []NodeID{id}
}
