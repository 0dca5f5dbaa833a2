// Package abctast defines the language-neutral AST produced by
// internal/abctparse for ABCT transform scripts (spec §5.3).
package abctast

import "github.com/abc-lang/abcls/internal/token"

// Program is the root of a parsed ABCT script: a sequence of statements
// executed in order by internal/abcteval.
type Program struct {
	Statements []Stmt
}

// Stmt is either a variable Assignment or a bare ExprStmt evaluated for its
// side effect (typically writing back to a loaded file's Selection).
type Stmt interface{ stmtNode() }

// Assignment binds the result of Value to Name for the rest of the script.
type Assignment struct {
	Name  string
	Value Expr
	Span  token.Span
}

func (*Assignment) stmtNode() {}

// ExprStmt evaluates Expr and discards the result except for its effects.
type ExprStmt struct {
	Expr Expr
	Span token.Span
}

func (*ExprStmt) stmtNode() {}

// Expr is any ABCT expression node.
type Expr interface {
	exprNode()
	ExprSpan() token.Span
}

type Base struct{ Span token.Span }

func (b Base) ExprSpan() token.Span { return b.Span }

// Pipe is `left | right`: right receives left's Selection as input
// (spec §5.4 pipe composition).
type Pipe struct {
	Base
	Left, Right Expr
}

func (*Pipe) exprNode() {}

// Concat is `left , right` at statement level inside a group, or explicit
// selection-union syntax; evaluator unions both sides' selected sets.
type Concat struct {
	Base
	Left, Right Expr
}

func (*Concat) exprNode() {}

// Update is `target |= value`: narrows target's selection, evaluates value
// against it, and writes the result back into the Tree in place.
type Update struct {
	Base
	Target Expr
	Value  Expr
}

func (*Update) exprNode() {}

// Application is a transform call, e.g. `transpose 2`; `filter (@notes)`
// parses as a Filter instead.
type Application struct {
	Base
	Name string
	Args []Expr
}

func (*Application) exprNode() {}

// Selector is an `@name` or `@name(args)` selection expression
// (`@notes`, `@chords`, `@bass`).
type Selector struct {
	Base
	Name string
	Args []Expr
}

func (*Selector) exprNode() {}

// LocationSelector is `@V:id` or `@M:start-end` (spec §5.3 location
// selectors).
type LocationSelector struct {
	Base
	Kind  string // "V" or "M"
	ID    string // voice id, for Kind == "V"
	Start int    // measure start, for Kind == "M"
	End   int    // measure end, inclusive; -1 means "to end"
}

func (*LocationSelector) exprNode() {}

// FileRef is a backtick-quoted ABC source path to be resolved through the
// evaluator's AbcLoader.
type FileRef struct {
	Base
	Path string
}

func (*FileRef) exprNode() {}

// AbcLiteral is inline ABC source given directly in the script.
type AbcLiteral struct {
	Base
	Text string
}

func (*AbcLiteral) exprNode() {}

// Identifier references a previously Assignment-bound name.
type Identifier struct {
	Base
	Name string
}

func (*Identifier) exprNode() {}

// Number is an integer or float literal argument to a transform/comparison.
type Number struct {
	Base
	Value float64
}

func (*Number) exprNode() {}

// List is a bracketed `[a, b, c]` argument list.
type List struct {
	Base
	Items []Expr
}

func (*List) exprNode() {}

// Group is a parenthesized sub-expression, kept distinct from its Inner so
// the formatter/validator can report the original grouping if needed.
type Group struct {
	Base
	Inner Expr
}

func (*Group) exprNode() {}

// Filter is `filter (predicate)`: keeps only selected nodes matching
// predicate (spec §5.3 filter / C12).
type Filter struct {
	Base
	Predicate Expr
}

func (*Filter) exprNode() {}

// Comparison is `left op right` for op in ==, !=, <, <=, >, >=.
type Comparison struct {
	Base
	Op          string
	Left, Right Expr
}

func (*Comparison) exprNode() {}

// Logical is `left op right` for op in &&, ||.
type Logical struct {
	Base
	Op          string
	Left, Right Expr
}

func (*Logical) exprNode() {}

// Negate is unary `!expr`.
type Negate struct {
	Base
	Inner Expr
}

func (*Negate) exprNode() {}

// ErrorExpr preserves a syntactically broken sub-expression so the
// evaluator can still report a single coherent diagnostic set rather than
// aborting the whole script (spec §5.4 error recovery).
type ErrorExpr struct {
	Base
	Message string
}

func (*ErrorExpr) exprNode() {}

// NewBase is a constructor helper used by the parser to attach a Span.
func NewBase(span token.Span) Base { return Base{Span: span} }
