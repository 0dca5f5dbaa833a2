// Package abctvalidate runs semantic checks over an internal/abctast
// Program before evaluation: unknown transform/selector names (with
// edit-distance suggestions), argument-count mismatches, and no-op
// warnings for calls with a known-inert argument (spec §5.4, §5.5).
// Argument types are not checked against the registry's ArgSpec kinds.
package abctvalidate

import (
	"fmt"
	"strings"

	"github.com/abc-lang/abcls/internal/abctast"
	"github.com/abc-lang/abcls/internal/abctregistry"
	"github.com/abc-lang/abcls/internal/diag"
	"github.com/abc-lang/abcls/internal/source"
)

// Validate walks prog and reports diagnostics to ctx.Errors.
func Validate(ctx *source.Context, prog *abctast.Program) {
	v := &validator{ctx: ctx}
	for _, stmt := range prog.Statements {
		v.stmt(stmt)
	}
}

type validator struct {
	ctx *source.Context
}

func (v *validator) stmt(s abctast.Stmt) {
	switch n := s.(type) {
	case *abctast.Assignment:
		v.expr(n.Value)
	case *abctast.ExprStmt:
		v.expr(n.Expr)
	}
}

func (v *validator) expr(e abctast.Expr) {
	switch n := e.(type) {
	case nil:
		return
	case *abctast.Pipe:
		v.expr(n.Left)
		v.expr(n.Right)
	case *abctast.Concat:
		v.expr(n.Left)
		v.expr(n.Right)
	case *abctast.Update:
		v.expr(n.Target)
		v.expr(n.Value)
	case *abctast.Application:
		v.application(n)
	case *abctast.Selector:
		v.selector(n)
	case *abctast.LocationSelector:
		if n.Kind == "M" && n.End != -1 && n.End < n.Start {
			v.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginValidator, "measure range end %d is before start %d", n.End, n.Start)
		}
	case *abctast.Group:
		v.expr(n.Inner)
	case *abctast.Filter:
		v.expr(n.Predicate)
	case *abctast.List:
		for _, it := range n.Items {
			v.expr(it)
		}
	case *abctast.Comparison:
		v.expr(n.Left)
		v.expr(n.Right)
	case *abctast.Logical:
		v.expr(n.Left)
		v.expr(n.Right)
	case *abctast.Negate:
		v.expr(n.Inner)
	case *abctast.ErrorExpr:
		// already reported by the parser
	}
}

func (v *validator) application(n *abctast.Application) {
	spec := abctregistry.FindTransform(n.Name)
	if spec == nil {
		v.unknownName(n.Name, n)
		for _, a := range n.Args {
			v.expr(a)
		}
		return
	}
	if len(n.Args) != len(spec.Args) {
		v.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginValidator, "%s expects %d argument(s), got %d", n.Name, len(spec.Args), len(n.Args))
	}
	for i, a := range n.Args {
		v.expr(a)
		if i >= len(spec.Args) {
			continue
		}
		if spec.Args[i].Kind == "number" {
			if num, ok := a.(*abctast.Number); ok && isNoOpArgument(n.Name, num.Value) {
				v.ctx.Errors.Warnf(a.ExprSpan(), diag.OriginValidator, "%s %v has no effect", n.Name, num.Value)
			}
		}
	}
}

func isNoOpArgument(transform string, v float64) bool {
	switch transform {
	case "transpose", "octave":
		return v == 0
	default:
		return false
	}
}

func (v *validator) selector(n *abctast.Selector) {
	if abctregistry.FindSelector(n.Name) == nil {
		v.unknownName("@"+n.Name, n)
	}
	for _, a := range n.Args {
		v.expr(a)
	}
}

func (v *validator) unknownName(name string, span abctast.Expr) {
	best, dist := "", 1<<30
	for _, cand := range abctregistry.Names() {
		d := editDistance(name, cand)
		if d < dist {
			dist, best = d, cand
		}
	}
	msg := fmt.Sprintf("unknown name %q", name)
	if best != "" && dist <= 2 {
		msg += fmt.Sprintf(", did you mean %q?", best)
	}
	v.ctx.Errors.Errorf(span.ExprSpan(), diag.OriginValidator, "%s", msg)
}

func editDistance(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
