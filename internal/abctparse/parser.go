// Package abctparse parses ABCT transform scripts into internal/abctast via
// hand-rolled recursive descent over a precedence ladder (spec §5.4):
// pipe > concat > update-term > application > logical > comparison > atom,
// from loosest to tightest binding.
package abctparse

import (
	"strconv"
	"strings"

	"github.com/abc-lang/abcls/internal/abctast"
	"github.com/abc-lang/abcls/internal/abctscan"
	"github.com/abc-lang/abcls/internal/diag"
	"github.com/abc-lang/abcls/internal/source"
	"github.com/abc-lang/abcls/internal/token"
)

type Parser struct {
	ctx  *source.Context
	toks []token.Token
	pos  int
}

// Parse scans and parses ctx.Source as an ABCT script.
func Parse(ctx *source.Context) *abctast.Program {
	toks := abctscan.New(ctx).Scan()
	p := &Parser{ctx: ctx, toks: toks}
	return p.parseProgram()
}

type syncError struct{}

func (p *Parser) fail(span token.Span, format string, args ...interface{}) abctast.Expr {
	p.ctx.Errors.Errorf(span, diag.OriginParser, format, args...)
	panic(syncError{})
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind token.Kind) bool { return p.peek().Kind == kind }

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) skipSeparators() {
	for p.at(abctscan.KindNewline, abctscan.KindSemicolon) {
		p.advance()
	}
}

func (p *Parser) at(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) parseProgram() *abctast.Program {
	prog := &abctast.Program{}
	p.skipSeparators()
	for !p.check(abctscan.KindEOF) {
		prog.Statements = append(prog.Statements, p.parseStmtRecovering())
		p.skipSeparators()
	}
	return prog
}

func (p *Parser) parseStmtRecovering() (stmt abctast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syncError); ok {
				stmt = &abctast.ExprStmt{Expr: &abctast.ErrorExpr{Message: "statement failed to parse"}}
				p.synchronize()
				return
			}
			panic(r)
		}
	}()
	return p.parseStmt()
}

func (p *Parser) synchronize() {
	for !p.check(abctscan.KindEOF) {
		if p.at(abctscan.KindNewline, abctscan.KindSemicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStmt() abctast.Stmt {
	if p.check(abctscan.KindIdent) && p.peekIsAssignment() {
		name := p.advance().Lexeme
		p.advance() // '='
		val := p.parsePipe()
		return &abctast.Assignment{Name: name, Value: val}
	}
	e := p.parsePipe()
	return &abctast.ExprStmt{Expr: e}
}

func (p *Parser) peekIsAssignment() bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	return p.toks[p.pos+1].Kind == abctscan.KindEq
}

// parsePipe: concat ('|' concat)*
func (p *Parser) parsePipe() abctast.Expr {
	left := p.parseConcat()
	for p.check(abctscan.KindPipe) {
		start := p.peek()
		p.advance()
		right := p.parseConcat()
		left = &abctast.Pipe{Base: abctast.NewBase(span(start, right.ExprSpan())), Left: left, Right: right}
	}
	return left
}

// parseConcat: updateTerm (',' updateTerm)*
func (p *Parser) parseConcat() abctast.Expr {
	left := p.parseUpdateTerm()
	for p.check(abctscan.KindComma) {
		start := p.peek()
		p.advance()
		right := p.parseUpdateTerm()
		left = &abctast.Concat{Base: abctast.NewBase(span(start, right.ExprSpan())), Left: left, Right: right}
	}
	return left
}

// parseUpdateTerm: application ('|=' pipe)?
func (p *Parser) parseUpdateTerm() abctast.Expr {
	left := p.parseApplication()
	if p.check(abctscan.KindPipeEq) {
		p.advance()
		val := p.parsePipe()
		return &abctast.Update{Base: abctast.NewBase(unionSpan(left.ExprSpan(), val.ExprSpan())), Target: left, Value: val}
	}
	return left
}

// parseApplication: IDENT logical* | logical
// A bare identifier followed by further atoms (with no intervening
// operator) is a transform/filter call; spec §5.3 transform syntax.
func (p *Parser) parseApplication() abctast.Expr {
	if p.check(abctscan.KindIdent) && isApplicationStart(p.peekAt(1)) {
		nameTok := p.advance()
		var args []abctast.Expr
		for isApplicationArgStart(p.peek()) {
			args = append(args, p.parseLogical())
		}
		span := nameTok.Span()
		if len(args) > 0 {
			span = unionSpan(span, args[len(args)-1].ExprSpan())
		}
		return &abctast.Application{Base: abctast.NewBase(span), Name: nameTok.Lexeme, Args: args}
	}
	if p.check(abctscan.KindIdent) && isFilterKeyword(p.peek().Lexeme) && p.peekAt(1) == abctscan.KindLParen {
		nameTok := p.advance()
		p.advance() // '('
		pred := p.parsePipe()
		end := p.peek()
		if p.check(abctscan.KindRParen) {
			p.advance()
		}
		return &abctast.Filter{Base: abctast.NewBase(span(nameTok, end.Span())), Predicate: pred}
	}
	return p.parseLogical()
}

func isFilterKeyword(name string) bool { return name == "filter" }

func (p *Parser) peekAt(off int) token.Kind {
	i := p.pos + off
	if i >= len(p.toks) {
		return abctscan.KindEOF
	}
	return p.toks[i].Kind
}

func isApplicationStart(next token.Kind) bool {
	switch next {
	case abctscan.KindNumber, abctscan.KindIdent, abctscan.KindAt, abctscan.KindString, abctscan.KindAbcLiteral, abctscan.KindLBracket, abctscan.KindDash:
		return true
	default:
		return false
	}
}

func isApplicationArgStart(t token.Token) bool {
	switch t.Kind {
	case abctscan.KindNumber, abctscan.KindIdent, abctscan.KindAt, abctscan.KindString, abctscan.KindAbcLiteral, abctscan.KindLBracket, abctscan.KindDash:
		return true
	default:
		return false
	}
}

// parseLogical: comparison (('&&'|'||') comparison)*
func (p *Parser) parseLogical() abctast.Expr {
	left := p.parseComparison()
	for p.at(abctscan.KindAnd, abctscan.KindOr) {
		opTok := p.advance()
		right := p.parseComparison()
		left = &abctast.Logical{Base: abctast.NewBase(span(opTok, right.ExprSpan())), Op: opTok.Lexeme, Left: left, Right: right}
	}
	return left
}

// parseComparison: atom (cmpOp atom)?
func (p *Parser) parseComparison() abctast.Expr {
	left := p.parseUnary()
	if p.at(abctscan.KindEqEq, abctscan.KindNeq, abctscan.KindLt, abctscan.KindLe, abctscan.KindGt, abctscan.KindGe) {
		opTok := p.advance()
		right := p.parseUnary()
		return &abctast.Comparison{Base: abctast.NewBase(span(opTok, right.ExprSpan())), Op: opTok.Lexeme, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() abctast.Expr {
	if p.check(abctscan.KindNot) {
		t := p.advance()
		inner := p.parseUnary()
		return &abctast.Negate{Base: abctast.NewBase(span(t, inner.ExprSpan())), Inner: inner}
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() abctast.Expr {
	t := p.peek()
	switch t.Kind {
	case abctscan.KindDash:
		p.advance()
		num := p.peek()
		if !p.check(abctscan.KindNumber) {
			p.fail(num.Span(), "expected a number after '-', got %q", num.Lexeme)
		}
		p.advance()
		v, _ := strconv.ParseFloat(num.Lexeme, 64)
		return &abctast.Number{Base: abctast.NewBase(span(t, num.Span())), Value: -v}
	case abctscan.KindNumber:
		p.advance()
		v, _ := strconv.ParseFloat(t.Lexeme, 64)
		return &abctast.Number{Base: abctast.NewBase(t.Span()), Value: v}
	case abctscan.KindString:
		p.advance()
		return &abctast.FileRef{Base: abctast.NewBase(t.Span()), Path: t.Lexeme}
	case abctscan.KindAbcLiteral:
		p.advance()
		// A single-line backtick block (`a.abc`) is a file path; ABC
		// source always spans several lines (X:, K:, body).
		if !strings.Contains(t.Lexeme, "\n") {
			return &abctast.FileRef{Base: abctast.NewBase(t.Span()), Path: t.Lexeme}
		}
		return &abctast.AbcLiteral{Base: abctast.NewBase(t.Span()), Text: t.Lexeme}
	case abctscan.KindIdent:
		p.advance()
		return &abctast.Identifier{Base: abctast.NewBase(t.Span()), Name: t.Lexeme}
	case abctscan.KindAt:
		return p.parseSelector()
	case abctscan.KindLParen:
		p.advance()
		inner := p.parsePipe()
		end := p.peek()
		if p.check(abctscan.KindRParen) {
			p.advance()
		}
		return &abctast.Group{Base: abctast.NewBase(span(t, end.Span())), Inner: inner}
	case abctscan.KindLBracket:
		p.advance()
		var items []abctast.Expr
		for !p.check(abctscan.KindRBracket) && !p.check(abctscan.KindEOF) {
			items = append(items, p.parsePipe())
			if p.check(abctscan.KindComma) {
				p.advance()
			}
		}
		end := p.peek()
		if p.check(abctscan.KindRBracket) {
			p.advance()
		}
		return &abctast.List{Base: abctast.NewBase(span(t, end.Span())), Items: items}
	default:
		p.fail(t.Span(), "unexpected token %q", t.Lexeme)
		return nil
	}
}

// parseSelector handles '@notes', '@chords(args)', '@V:id', '@M:1-4'.
func (p *Parser) parseSelector() abctast.Expr {
	at := p.advance() // '@'
	nameTok := p.advance()
	name := nameTok.Lexeme

	if p.check(abctscan.KindColon) {
		p.advance()
		if name == "V" {
			idTok := p.advance()
			return &abctast.LocationSelector{Base: abctast.NewBase(span(at, idTok.Span())), Kind: "V", ID: idTok.Lexeme}
		}
		if name == "M" {
			startTok := p.advance()
			start, _ := strconv.Atoi(startTok.Lexeme)
			end := start
			if p.check(abctscan.KindDash) {
				p.advance()
				endTok := p.advance()
				end, _ = strconv.Atoi(endTok.Lexeme)
			}
			return &abctast.LocationSelector{Base: abctast.NewBase(at.Span()), Kind: "M", Start: start, End: end}
		}
	}

	var args []abctast.Expr
	endSpan := nameTok.Span()
	if p.check(abctscan.KindLParen) {
		p.advance()
		for !p.check(abctscan.KindRParen) && !p.check(abctscan.KindEOF) {
			args = append(args, p.parsePipe())
			if p.check(abctscan.KindComma) {
				p.advance()
			}
		}
		endTok := p.peek()
		endSpan = endTok.Span()
		if p.check(abctscan.KindRParen) {
			p.advance()
		}
	}
	return &abctast.Selector{Base: abctast.NewBase(unionSpan(at.Span(), endSpan)), Name: name, Args: args}
}

func span(start token.Token, end token.Span) token.Span {
	return unionSpan(start.Span(), end)
}

func unionSpan(a, b token.Span) token.Span {
	return a.Union(b)
}
