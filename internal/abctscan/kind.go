// Package abctscan tokenizes ABCT transform-script source text (spec §5).
package abctscan

import "github.com/abc-lang/abcls/internal/token"

const (
	KindEOF        token.Kind = "EOF"
	KindInvalid    token.Kind = "INVALID"
	KindWS         token.Kind = "WS"
	KindIdent      token.Kind = "IDENT"
	KindNumber     token.Kind = "NUMBER"
	KindString     token.Kind = "STRING"
	KindAbcLiteral token.Kind = "ABC_LITERAL"
	KindAt         token.Kind = "AT"
	KindPipe       token.Kind = "PIPE"
	KindPipeEq     token.Kind = "PIPE_EQ"
	KindDot        token.Kind = "DOT"
	KindComma      token.Kind = "COMMA"
	KindColon      token.Kind = "COLON"
	KindDash       token.Kind = "DASH"
	KindLParen     token.Kind = "LPAREN"
	KindRParen     token.Kind = "RPAREN"
	KindLBracket   token.Kind = "LBRACKET"
	KindRBracket   token.Kind = "RBRACKET"
	KindLBrace     token.Kind = "LBRACE"
	KindRBrace     token.Kind = "RBRACE"
	KindEq         token.Kind = "EQ"
	KindEqEq       token.Kind = "EQEQ"
	KindNeq        token.Kind = "NEQ"
	KindLt         token.Kind = "LT"
	KindLe         token.Kind = "LE"
	KindGt         token.Kind = "GT"
	KindGe         token.Kind = "GE"
	KindAnd        token.Kind = "AND"
	KindOr         token.Kind = "OR"
	KindNot        token.Kind = "NOT"
	KindSemicolon  token.Kind = "SEMICOLON"
	KindNewline    token.Kind = "NEWLINE"
	KindComment    token.Kind = "COMMENT"
)
