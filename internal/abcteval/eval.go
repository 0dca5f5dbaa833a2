// Package abcteval evaluates an internal/abctast Program against zero or
// more loaded ABC trees, applying selectors, transforms and filters, and
// writing the results back in place through internal/abctselect.Selection
// (spec §5.4, §5.5, C13).
package abcteval

import (
	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcloader"
	"github.com/abc-lang/abcls/internal/abctast"
	"github.com/abc-lang/abcls/internal/abctfilter"
	"github.com/abc-lang/abcls/internal/abctregistry"
	"github.com/abc-lang/abcls/internal/abctselect"
	"github.com/abc-lang/abcls/internal/abcttransform"
	"github.com/abc-lang/abcls/internal/diag"
	"github.com/abc-lang/abcls/internal/source"
)

// Value is whatever an ABCT expression evaluates to: either a Selection
// (over some loaded tree) or a scalar used as a transform/comparison
// argument.
type Value struct {
	Selection *abctselect.Selection
	Number    float64
	Bool      bool
	IsBool    bool
}

// Env holds variable bindings accumulated across a script's statements and
// the loader used to resolve file references.
type Env struct {
	ctx    *source.Context
	loader abcloader.Loader
	vars   map[string]Value
	// Results collects every tree touched during evaluation, keyed by the
	// path or literal that produced it, for a caller that wants formatted
	// output per input (pkg/abcls.EvaluateABCT formats each one).
	Results map[string]*abcast.Tree
}

// New creates an evaluation environment. loader resolves FileRef paths;
// pass a *abcloader.Memory in tests and a *abcloader.FS in production.
func New(ctx *source.Context, loader abcloader.Loader) *Env {
	return &Env{ctx: ctx, loader: loader, vars: map[string]Value{}, Results: map[string]*abcast.Tree{}}
}

// Run evaluates every statement of prog in order.
func (e *Env) Run(prog *abctast.Program) {
	for _, stmt := range prog.Statements {
		e.stmt(stmt)
	}
}

func (e *Env) stmt(s abctast.Stmt) {
	switch n := s.(type) {
	case *abctast.Assignment:
		e.vars[n.Name] = e.expr(n.Value)
	case *abctast.ExprStmt:
		e.expr(n.Expr)
	}
}

func (e *Env) expr(x abctast.Expr) Value {
	switch n := x.(type) {
	case *abctast.FileRef:
		return e.loadRef(n)
	case *abctast.AbcLiteral:
		return e.loadLiteral(n)
	case *abctast.Identifier:
		if v, ok := e.vars[n.Name]; ok {
			return v
		}
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "undefined name %q", n.Name)
		return Value{}
	case *abctast.Number:
		return Value{Number: n.Value}
	case *abctast.Group:
		return e.expr(n.Inner)
	case *abctast.Pipe:
		left := e.expr(n.Left)
		return e.applyTo(left, n.Right)
	case *abctast.Concat:
		left := e.expr(n.Left)
		right := e.expr(n.Right)
		if left.Selection != nil && right.Selection != nil {
			return Value{Selection: left.Selection.Union(right.Selection)}
		}
		return left
	case *abctast.Update:
		return e.standaloneUpdate(n)
	case *abctast.Selector:
		return e.selector(n)
	case *abctast.LocationSelector:
		return e.locationSelector(n)
	case *abctast.Application:
		return e.applyTo(e.currentAmbient(), x)
	case *abctast.Comparison:
		return e.comparison(n)
	case *abctast.Logical:
		return e.logical(n)
	case *abctast.Negate:
		v := e.expr(n.Inner)
		return Value{Bool: !v.Bool, IsBool: true}
	case *abctast.Filter:
		return e.currentAmbient()
	case *abctast.List:
		return Value{}
	case *abctast.ErrorExpr:
		return Value{}
	default:
		return Value{}
	}
}

// currentAmbient returns the empty Value used when a bare Application or
// Filter appears without a piped-in Selection; validated scripts always
// reach Application/Filter through a Pipe, so this only matters for
// partially-broken input already flagged by the validator.
func (e *Env) currentAmbient() Value { return Value{} }

func (e *Env) loadRef(n *abctast.FileRef) Value {
	tree, err := e.loader.Load(n.Path)
	if err != nil {
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "loading %q: %v", n.Path, err)
		return Value{}
	}
	e.Results[n.Path] = tree
	return Value{Selection: abctselect.All(tree)}
}

func (e *Env) loadLiteral(n *abctast.AbcLiteral) Value {
	loader := &abcloader.Memory{Files: map[string]string{"<literal>": n.Text}}
	tree, _ := loader.Load("<literal>")
	e.Results[n.Text] = tree
	return Value{Selection: abctselect.All(tree)}
}

// applyTo evaluates right with left's Selection piped in as the ambient
// input: Selector/LocationSelector narrow it, Application runs a
// transform, Filter prunes it, Pipe/Update compose further. A bare
// Identifier that names no bound variable but a registered transform runs
// as that transform with no arguments (`@chords |= bass`).
func (e *Env) applyTo(left Value, right abctast.Expr) Value {
	switch n := right.(type) {
	case *abctast.Identifier:
		if _, bound := e.vars[n.Name]; !bound && abctregistry.FindTransform(n.Name) != nil {
			return e.runTransform(left, &abctast.Application{Base: n.Base, Name: n.Name})
		}
		return e.expr(right)
	case *abctast.Selector:
		return e.narrowSelector(left, n)
	case *abctast.LocationSelector:
		return e.narrowLocation(left, n)
	case *abctast.Application:
		return e.runTransform(left, n)
	case *abctast.Filter:
		return e.runFilter(left, n)
	case *abctast.Pipe:
		mid := e.applyTo(left, n.Left)
		return e.applyTo(mid, n.Right)
	case *abctast.Update:
		// `left | sel |= value`: narrow left by sel, apply value to the
		// narrowed selection in place, then hand back left itself so
		// whatever comes next in the pipe still sees the whole tree.
		narrowed := e.applyTo(left, n.Target)
		e.applyTo(narrowed, n.Value)
		return left
	case *abctast.Group:
		return e.applyTo(left, n.Inner)
	default:
		return e.expr(right)
	}
}

// standaloneUpdate evaluates a top-level `target |= value` that is not the
// right-hand side of a Pipe. A bound Identifier (or FileRef/AbcLiteral) is a
// legitimate target; a bare combinator like `@notes` has no input selection
// to narrow and must be written inside a pipe instead.
func (e *Env) standaloneUpdate(n *abctast.Update) Value {
	if requiresPipedInput(n.Target) {
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "update (|=) must be used within a pipe")
		return Value{}
	}
	target := e.expr(n.Target)
	if target.Selection == nil {
		return target
	}
	e.applyTo(target, n.Value)
	return target
}

// requiresPipedInput reports whether x only makes sense as the right-hand
// side of a pipe, i.e. it narrows or transforms an ambient selection rather
// than producing one of its own.
func requiresPipedInput(x abctast.Expr) bool {
	switch n := x.(type) {
	case *abctast.Selector, *abctast.LocationSelector, *abctast.Application, *abctast.Filter:
		return true
	case *abctast.Group:
		return requiresPipedInput(n.Inner)
	default:
		return false
	}
}

func (e *Env) selector(n *abctast.Selector) Value {
	e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "selector %q used without an input selection", n.Name)
	return Value{}
}

func (e *Env) locationSelector(n *abctast.LocationSelector) Value {
	e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "location selector used without an input selection")
	return Value{}
}

func (e *Env) narrowSelector(left Value, n *abctast.Selector) Value {
	if left.Selection == nil {
		return e.selector(n)
	}
	switch n.Name {
	case "notes":
		return Value{Selection: abctselect.Notes(left.Selection)}
	case "chords":
		return Value{Selection: abctselect.Chords(left.Selection)}
	case "bass":
		return Value{Selection: abctselect.Bass(left.Selection)}
	default:
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "unknown selector %q", n.Name)
		return left
	}
}

func (e *Env) narrowLocation(left Value, n *abctast.LocationSelector) Value {
	if left.Selection == nil {
		return e.locationSelector(n)
	}
	switch n.Kind {
	case "V":
		return Value{Selection: abctselect.ByVoice(left.Selection, n.ID)}
	case "M":
		end := n.End
		return Value{Selection: abctselect.ByMeasureRange(left.Selection, n.Start, end)}
	default:
		return left
	}
}

func (e *Env) runTransform(left Value, n *abctast.Application) Value {
	if left.Selection == nil {
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "transform %q used without an input selection", n.Name)
		return left
	}
	spec := abctregistry.FindTransform(n.Name)
	if spec == nil {
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "unknown transform %q", n.Name)
		return left
	}
	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.expr(a).Number
	}
	switch n.Name {
	case "transpose":
		abcttransform.Transpose(left.Selection, int(args[0]))
	case "octave":
		abcttransform.Octave(left.Selection, int(args[0]))
	case "retrograde":
		abcttransform.Retrograde(left.Selection)
	case "bass":
		abcttransform.Bass(left.Selection)
	}
	return left
}

func (e *Env) runFilter(left Value, n *abctast.Filter) Value {
	if left.Selection == nil {
		e.ctx.Errors.Errorf(n.ExprSpan(), diag.OriginEvaluator, "filter used without an input selection")
		return left
	}
	abctfilter.Apply(left.Selection, func(a *abcast.Arena, id abcast.NodeID) bool {
		return e.evalPredicate(n.Predicate, a, id)
	})
	return left
}

// evalPredicate evaluates a boolean expression scoped to a single node id,
// supporting the comparison/logical forms a filter predicate is built from.
func (e *Env) evalPredicate(pred abctast.Expr, a *abcast.Arena, id abcast.NodeID) bool {
	switch n := pred.(type) {
	case *abctast.Selector:
		switch n.Name {
		case "notes":
			return abcast.IsNote(a, id)
		case "chords":
			return abcast.IsChord(a, id)
		default:
			return true
		}
	case *abctast.Negate:
		return !e.evalPredicate(n.Inner, a, id)
	case *abctast.Logical:
		l := e.evalPredicate(n.Left, a, id)
		r := e.evalPredicate(n.Right, a, id)
		if n.Op == "&&" {
			return l && r
		}
		return l || r
	case *abctast.Group:
		return e.evalPredicate(n.Inner, a, id)
	case *abctast.Comparison:
		return e.propertyPredicate(n, a, id)
	default:
		return true
	}
}

// propertyPredicate evaluates a `property op value` filter predicate
// (pitch|size|length, spec §4.10) against the node at id. property is
// looked up by name rather than through e.expr, since "pitch"/"size"/
// "length" are bare identifiers here, not bound variables.
func (e *Env) propertyPredicate(n *abctast.Comparison, a *abcast.Arena, id abcast.NodeID) bool {
	prop, ok := n.Left.(*abctast.Identifier)
	if !ok {
		return true
	}
	value, ok := numberLiteral(n.Right)
	if !ok {
		return true
	}
	switch prop.Name {
	case "pitch":
		note, ok := a.Get(id).(*abcast.Note)
		if !ok {
			return true
		}
		midi, ok := abcast.PitchOrRest(a, note)
		if !ok {
			return true
		}
		return compareOp(n.Op, float64(midi), value)
	case "size":
		chord, ok := a.Get(id).(*abcast.Chord)
		if !ok {
			return true
		}
		return compareOp(n.Op, float64(len(chord.Notes(a))), value)
	case "length":
		switch node := a.Get(id).(type) {
		case *abcast.Note:
			return compareOp(n.Op, abcast.RhythmLength(a, node.Rhythm), value)
		case *abcast.Chord:
			return compareOp(n.Op, abcast.RhythmLength(a, node.Rhythm), value)
		default:
			return true
		}
	default:
		return true
	}
}

// numberLiteral extracts a constant numeric value from a comparison operand,
// unwrapping parens; ABCT filter predicates never reference variables here.
func numberLiteral(x abctast.Expr) (float64, bool) {
	switch v := x.(type) {
	case *abctast.Number:
		return v.Value, true
	case *abctast.Group:
		return numberLiteral(v.Inner)
	default:
		return 0, false
	}
}

func compareOp(op string, l, r float64) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	default:
		return false
	}
}

func (e *Env) comparison(n *abctast.Comparison) Value {
	l := e.expr(n.Left).Number
	r := e.expr(n.Right).Number
	return Value{Bool: compareOp(n.Op, l, r), IsBool: true}
}

func (e *Env) logical(n *abctast.Logical) Value {
	l := e.expr(n.Left)
	r := e.expr(n.Right)
	var result bool
	if n.Op == "&&" {
		result = l.Bool && r.Bool
	} else {
		result = l.Bool || r.Bool
	}
	return Value{Bool: result, IsBool: true}
}
