// Package diag collects structured diagnostics across the scanner, parser,
// validator and evaluator stages of both language pipelines.
package diag

import (
	"fmt"

	"github.com/abc-lang/abcls/internal/token"
)

// Origin identifies which pipeline stage produced a Diagnostic.
type Origin int

const (
	OriginScanner Origin = iota
	OriginParser
	OriginValidator
	OriginEvaluator
)

func (o Origin) String() string {
	switch o {
	case OriginScanner:
		return "scanner"
	case OriginParser:
		return "parser"
	case OriginValidator:
		return "validator"
	case OriginEvaluator:
		return "evaluator"
	default:
		return "unknown"
	}
}

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is an immutable record of a single reported problem.
type Diagnostic struct {
	Severity Severity
	Span     token.Span
	Message  string
	Origin   Origin
	// RunID correlates diagnostics produced by the same analyze/evaluate
	// call; set by source.Context at creation time.
	RunID string
}

// Reporter collects diagnostics for one analyze/evaluate pass. It is shared
// by the scanner, parser, validator and evaluator so that callers observe a
// single ordered diagnostic stream; see source.Context.
type Reporter struct {
	runID string
	items []Diagnostic
}

// NewReporter creates a Reporter tagged with runID (typically a uuid minted
// by the owning source.Context).
func NewReporter(runID string) *Reporter {
	return &Reporter{runID: runID}
}

// Report records a new diagnostic. Diagnostics are immutable once recorded:
// callers must not mutate the returned slice from Errors.
func (r *Reporter) Report(sev Severity, span token.Span, message string, origin Origin) {
	r.items = append(r.items, Diagnostic{
		Severity: sev,
		Span:     span,
		Message:  message,
		Origin:   origin,
		RunID:    r.runID,
	})
}

// Errorf reports an error-severity diagnostic, mirroring the teacher's
// fmt.Errorf-and-wrap idiom for callers that already have a formatted string.
func (r *Reporter) Errorf(span token.Span, origin Origin, format string, args ...any) {
	r.Report(SeverityError, span, fmt.Sprintf(format, args...), origin)
}

// Warnf reports a warning-severity diagnostic.
func (r *Reporter) Warnf(span token.Span, origin Origin, format string, args ...any) {
	r.Report(SeverityWarning, span, fmt.Sprintf(format, args...), origin)
}

// Errors returns all diagnostics recorded so far, scanner-origin first,
// then parser, validator, evaluator, preserving source order within an
// origin (spec §5 ordering guarantee).
func (r *Reporter) Errors() []Diagnostic {
	out := make([]Diagnostic, 0, len(r.items))
	for origin := OriginScanner; origin <= OriginEvaluator; origin++ {
		for _, d := range r.items {
			if d.Origin == origin {
				out = append(out, d)
			}
		}
	}
	return out
}

// HasErrors reports whether any error-severity diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Reset clears all recorded diagnostics so a SourceContext can be reused for
// a fresh analyze() call without stale errors accumulating (spec §4.1).
func (r *Reporter) Reset() {
	r.items = nil
}
