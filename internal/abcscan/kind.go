// Package abcscan tokenizes ABC source text, switching lexical rules
// between file header, tune header and tune body contexts (spec §4.3).
package abcscan

import "github.com/abc-lang/abcls/internal/token"

// Kind enumerates ABC token kinds. The list in spec §4.3 is explicitly
// non-exhaustive ("include but are not limited to"); TEXT and SECTION_BREAK
// are additions used for file-header free text and the blank line that
// closes a tune body.
const (
	KindEOF                 token.Kind = "EOF"
	KindInvalid             token.Kind = "INVALID"
	KindWS                  token.Kind = "WS"
	KindEOL                 token.Kind = "EOL"
	KindSectionBreak        token.Kind = "SECTION_BREAK"
	KindText                token.Kind = "TEXT"
	KindComment             token.Kind = "COMMENT"
	KindStylesheetDirective token.Kind = "STYLESHEET_DIRECTIVE"
	KindInfHdr              token.Kind = "INF_HDR"
	KindInfHdrContinuation  token.Kind = "INF_HDR_CONT"
	KindNoteLetter          token.Kind = "NOTE_LETTER"
	KindAccidental          token.Kind = "ACCIDENTAL"
	KindOctave              token.Kind = "OCTAVE"
	KindRhyNumer            token.Kind = "RHY_NUMER"
	KindRhySep              token.Kind = "RHY_SEP"
	KindRhyDenom            token.Kind = "RHY_DENOM"
	KindBroken              token.Kind = "BROKEN"
	KindBarline             token.Kind = "BARLINE"
	KindRepeatDigit         token.Kind = "REPEAT_DIGIT"
	KindChrdLeftBrkt        token.Kind = "CHRD_LEFT_BRKT"
	KindChrdRightBrkt       token.Kind = "CHRD_RIGHT_BRKT"
	KindGrcGrpLeftBrace     token.Kind = "GRC_GRP_LEFT_BRACE"
	KindGrcGrpRightBrace    token.Kind = "GRC_GRP_RGHT_BRACE"
	KindGrcGrpSlash         token.Kind = "GRC_GRP_SLSH"
	KindAnnotation          token.Kind = "ANNOTATION"
	KindSymbol              token.Kind = "SYMBOL"
	KindDecoration          token.Kind = "DECORATION"
	KindWsRest              token.Kind = "REST"
	KindTie                 token.Kind = "TIE"
	KindInlineFieldOpen     token.Kind = "INLINE_FIELD_OPEN"
	KindInlineFieldClose    token.Kind = "INLINE_FIELD_CLOSE"
	KindLeftParenNumber     token.Kind = "LEFTPAREN_NUMBER"
	KindUserSy              token.Kind = "USER_SY"
	KindVxID                token.Kind = "VX_ID"
	KindVxK                 token.Kind = "VX_K"
	KindVxV                 token.Kind = "VX_V"
	KindEql                 token.Kind = "EQL"
	KindMultiMeasureRest    token.Kind = "MULTI_MEASURE_REST"
	KindYSpacer             token.Kind = "Y_SPACER"
	KindBackslash           token.Kind = "BACKSLASH"
	KindNumber              token.Kind = "NUMBER"
	KindSlurOpen            token.Kind = "SLUR_OPEN"
	KindSlurClose           token.Kind = "SLUR_CLOSE"
	KindAmpersand           token.Kind = "AMPERSAND"
)
