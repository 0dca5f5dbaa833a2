// Package source owns the shared per-analysis state: the source text, the
// diagnostic reporter, the token-ID counter and the scan-time directive
// flags (spec §4.2).
package source

import (
	"github.com/google/uuid"

	"github.com/abc-lang/abcls/internal/diag"
)

// VoiceMarkerStyle is the value of the %%abcls-fmt voice-markers= directive.
type VoiceMarkerStyle string

const (
	VoiceMarkersUnset    VoiceMarkerStyle = ""
	VoiceMarkersInline   VoiceMarkerStyle = "inline"
	VoiceMarkersInfoLine VoiceMarkerStyle = "infoline"
)

// FormatterConfig holds formatter-affecting flags a %%abcls-fmt directive
// may set during a parse (spec §6).
type FormatterConfig struct {
	SystemComments bool
	VoiceMarkers   VoiceMarkerStyle
	// ShowVoices is nil until a %%abcls-voices directive sets it explicitly.
	ShowVoices *bool
}

// ParserFlags holds scan-time parser flags a %%abcls-parse directive may
// set (spec §4.2, §8 property 7: cleared on Reset when the directive is
// absent from a re-analysis).
type ParserFlags struct {
	Linear     bool
	TuneLinear bool
}

// Context owns the source text and the shared diagnostic reporter for one
// analyze() call. It mints monotonically increasing token IDs and carries
// the per-document directive flags; callers must call Reset before
// re-analyzing the same (possibly edited) document so stale flags and
// diagnostics from a previous pass do not leak forward (spec §4.2).
type Context struct {
	Source string

	Errors *diag.Reporter

	Formatter FormatterConfig
	Parser    ParserFlags

	runID  string
	nextID uint64
}

// New creates a Context over source, minting a fresh run ID.
func New(src string) *Context {
	c := &Context{Source: src}
	c.runID = uuid.NewString()
	c.Errors = diag.NewReporter(c.runID)
	return c
}

// RunID returns the uuid tagging every diagnostic produced by this Context.
// New and Reset each mint a fresh one, so diagnostics from separate
// Contexts (or from before and after a Reset) carry different run IDs.
func (c *Context) RunID() string { return c.runID }

// NextTokenID mints the next monotonically increasing token identifier.
func (c *Context) NextTokenID() uint64 {
	c.nextID++
	return c.nextID
}

// Reset clears the reporter, the directive flags and the token-ID counter,
// and mints a fresh run ID, readying the Context for a new source string
// (spec §4.1, §4.2; property 7: "re-analyze without a directive ⇒
// associated flag is back to its default").
func (c *Context) Reset(src string) {
	c.Source = src
	c.Formatter = FormatterConfig{}
	c.Parser = ParserFlags{}
	c.nextID = 0
	c.runID = uuid.NewString()
	c.Errors = diag.NewReporter(c.runID)
}
