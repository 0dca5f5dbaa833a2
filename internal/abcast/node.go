// Package abcast is the typed ABC tree: tagged node variants held in an
// Arena and addressed by NodeID, per spec §3 and §9 design notes
// ("re-architect as tagged variants with exhaustive match and a trait/
// interface for has-span and clone").
package abcast

import "github.com/abc-lang/abcls/internal/token"

// NodeID addresses a Node within an Arena. The zero value means "absent"
// (e.g. Tune.Body when a tune has no body, Note.Rhythm when unwritten).
type NodeID uint32

// Kind discriminates the ~30 ABC tree variants.
type Kind int

const (
	KindFileStructure Kind = iota
	KindFileHeader
	KindTune
	KindTuneHeader
	KindTuneBody
	KindSystem
	KindInfoLine
	KindComment
	KindStyleSheetDirective
	KindNote
	KindPitch
	KindRest
	KindChord
	KindBeam
	KindGraceGroup
	KindRhythm
	KindBarLine
	KindAnnotation
	KindDecoration
	KindSymbol
	KindInlineField
	KindNthRepeat
	KindMultiMeasureRest
	KindYSpacer
	KindTuplet
	KindVoiceOverlay
	KindTokenNode
	KindErrorExpr
)

func (k Kind) String() string {
	switch k {
	case KindFileStructure:
		return "FileStructure"
	case KindFileHeader:
		return "FileHeader"
	case KindTune:
		return "Tune"
	case KindTuneHeader:
		return "TuneHeader"
	case KindTuneBody:
		return "TuneBody"
	case KindSystem:
		return "System"
	case KindInfoLine:
		return "InfoLine"
	case KindComment:
		return "Comment"
	case KindStyleSheetDirective:
		return "StyleSheetDirective"
	case KindNote:
		return "Note"
	case KindPitch:
		return "Pitch"
	case KindRest:
		return "Rest"
	case KindChord:
		return "Chord"
	case KindBeam:
		return "Beam"
	case KindGraceGroup:
		return "GraceGroup"
	case KindRhythm:
		return "Rhythm"
	case KindBarLine:
		return "BarLine"
	case KindAnnotation:
		return "Annotation"
	case KindDecoration:
		return "Decoration"
	case KindSymbol:
		return "Symbol"
	case KindInlineField:
		return "InlineField"
	case KindNthRepeat:
		return "NthRepeat"
	case KindMultiMeasureRest:
		return "MultiMeasureRest"
	case KindYSpacer:
		return "YSpacer"
	case KindTuplet:
		return "Tuplet"
	case KindVoiceOverlay:
		return "VoiceOverlay"
	case KindTokenNode:
		return "TokenNode"
	case KindErrorExpr:
		return "ErrorExpr"
	default:
		return "Unknown"
	}
}

// Node is implemented by every tree variant. NodeChildren returns the IDs
// of child tree nodes only (not raw lexical tokens a variant also owns) so
// Walk/WalkMut can traverse generically without an exhaustive switch.
type Node interface {
	NodeID() NodeID
	NodeKind() Kind
	NodeSpan() token.Span
	SetSpan(token.Span)
	NodeChildren() []NodeID
}

// Base is embedded by every concrete node type to satisfy the ID/Span part
// of Node.
type Base struct {
	ID   NodeID
	Span token.Span
}

func (b *Base) NodeID() NodeID        { return b.ID }
func (b *Base) NodeSpan() token.Span  { return b.Span }
func (b *Base) SetSpan(s token.Span)  { b.Span = s }
