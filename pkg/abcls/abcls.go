// Package abcls is the public facade over the ABC/ABCT language core: the
// four caller-facing operations (analyze_abc, analyze_abct, format_abc,
// evaluate_abct) plus the AbcLoader capability, with diagnostics converted
// to 0-based LSP-shaped positions at this boundary (spec §6).
package abcls

import (
	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abcfmt"
	"github.com/abc-lang/abcls/internal/abcloader"
	"github.com/abc-lang/abcls/internal/abcparse"
	"github.com/abc-lang/abcls/internal/abctast"
	"github.com/abc-lang/abcls/internal/abcteval"
	"github.com/abc-lang/abcls/internal/abctparse"
	"github.com/abc-lang/abcls/internal/abctvalidate"
	"github.com/abc-lang/abcls/internal/diag"
	"github.com/abc-lang/abcls/internal/source"
	"github.com/abc-lang/abcls/internal/token"
)

// Loader resolves an ABCT FileRef path to a parsed ABC tree; re-exported so
// callers never need to import internal/abcloader directly.
type Loader = abcloader.Loader

// NewMemoryLoader builds a Loader over an in-memory path -> ABC source map,
// for tests and editor "unsaved buffer" scenarios.
func NewMemoryLoader(files map[string]string) Loader {
	return &abcloader.Memory{Files: files}
}

// NewFSLoader builds a Loader rooted at baseDir, caching up to capacity
// parsed trees by resolved absolute path.
func NewFSLoader(baseDir string, capacity int) (Loader, error) {
	return abcloader.NewFS(baseDir, capacity)
}

// Position is a zero-based source location, per LSP convention.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open source range.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic is the LSP-shaped diagnostic returned by every operation in
// this package (spec §6: "bit-exact where interop with LSP clients
// matters").
type Diagnostic struct {
	Severity string `json:"severity"`
	Range    Range  `json:"range"`
	Message  string `json:"message"`
	Source   string `json:"source"`
}

func toPosition(p token.Position) Position {
	return Position{Line: int(p.Line), Character: int(p.Column)}
}

func toRange(s token.Span) Range {
	return Range{Start: toPosition(s.Start), End: toPosition(s.End)}
}

func toDiagnostics(d []diag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(d))
	for _, item := range d {
		out = append(out, Diagnostic{
			Severity: item.Severity.String(),
			Range:    toRange(item.Span),
			Message:  item.Message,
			Source:   item.Origin.String(),
		})
	}
	return out
}

// AnalyzeABC scans and parses ABC source, returning the tree and any
// diagnostics (spec §6 analyze_abc).
func AnalyzeABC(src string) (*abcast.Tree, []Diagnostic) {
	ctx := source.New(src)
	tree := abcparse.Parse(ctx)
	return tree, toDiagnostics(ctx.Errors.Errors())
}

// AnalyzeABCT scans, parses and validates an ABCT script, returning the
// program and any diagnostics (spec §6 analyze_abct).
func AnalyzeABCT(src string) (*abctast.Program, []Diagnostic) {
	ctx := source.New(src)
	prog := abctparse.Parse(ctx)
	abctvalidate.Validate(ctx, prog)
	return prog, toDiagnostics(ctx.Errors.Errors())
}

// FormatABC renders tree back to ABC source text (spec §6 format_abc).
// pretty is currently a no-op placeholder for future layout options; the
// formatter's single canonical rendering already satisfies spec §6's
// round-trip requirement.
func FormatABC(tree *abcast.Tree, pretty bool) string {
	return abcfmt.Format(tree, source.FormatterConfig{})
}

// EvaluateResult is the outcome of one evaluate_abct call: the formatted ABC
// for every file reference or inline literal the script touched, keyed the
// same way AbcLoader sees them, plus the diagnostics collected across
// scanning, parsing, validating and evaluating.
type EvaluateResult struct {
	ABC         map[string]string
	Diagnostics []Diagnostic
}

// EvaluateABCT runs an ABCT script against loader, mutating every ABC tree
// it touches in place and returning the formatted result per touched
// path (spec §6 evaluate_abct).
func EvaluateABCT(src string, loader Loader) EvaluateResult {
	ctx := source.New(src)
	prog := abctparse.Parse(ctx)
	abctvalidate.Validate(ctx, prog)

	env := abcteval.New(ctx, loader)
	env.Run(prog)

	out := make(map[string]string, len(env.Results))
	for path, tree := range env.Results {
		out[path] = FormatABC(tree, false)
	}
	return EvaluateResult{ABC: out, Diagnostics: toDiagnostics(ctx.Errors.Errors())}
}
