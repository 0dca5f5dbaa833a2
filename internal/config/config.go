// Package config holds process-level configuration: environment-derived
// knobs for the cmd/ tools, and the centralized table of %%abcls-*
// directives scan-time recognizes (spec §9 Open Questions: "the exact set
// of directives that mutate scanner state is not enumerated in one place;
// the implementation must centralize them under one table").
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abc-lang/abcls/internal/source"
)

// Config holds the ambient settings for the cmd/ demonstration tools. The
// core library (pkg/abcls) takes no process-level configuration of its own;
// this exists purely for the CLI wrappers, the way the teacher's
// internal/config.Config exists purely for its HTTP server.
type Config struct {
	// LoaderBaseDir holds ABCLS_LOADER_BASE_DIR. No caller reads it:
	// cmd/abctrun roots its loader at the script's directory.
	LoaderBaseDir string
	// LogLevel holds ABCLS_LOG_LEVEL ("info", "warn", "error"); obslog
	// does not read it.
	LogLevel string
}

// Load reads Config from the environment, optionally seeded by a .env file
// in the working directory, mirroring the teacher's internal/config.Load
// getEnv-with-default idiom.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		LoaderBaseDir: getEnv("ABCLS_LOADER_BASE_DIR", ""),
		LogLevel:      getEnv("ABCLS_LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// Directive is one recognized %%abcls-* stylesheet directive. Name is the
// text following "%%" up to the first whitespace; Apply mutates the
// source.Context the way the directive's value dictates. A directive with
// an unrecognized value is a no-op (the field it would have set keeps its
// default), per spec §6.
type Directive struct {
	Name  string
	Apply func(ctx *source.Context, value string)
}

// DirectiveSpecs is the single table of every directive that mutates
// scanner/parser/formatter state during an analyze() pass. The scanner
// (internal/abcscan) still emits every %%-line as a STYLESHEET_DIRECTIVE
// token regardless of whether it matches an entry here; only entries in
// this table are also consumed as configuration (spec §4.3).
var DirectiveSpecs = []Directive{
	{
		Name: "abcls-parse",
		Apply: func(ctx *source.Context, value string) {
			switch strings.TrimSpace(value) {
			case "linear":
				ctx.Parser.Linear = true
			case "tune-linear":
				ctx.Parser.TuneLinear = true
			}
		},
	},
	{
		Name: "abcls-fmt",
		Apply: func(ctx *source.Context, value string) {
			fields := strings.Fields(value)
			for _, f := range fields {
				switch {
				case f == "system-comments":
					ctx.Formatter.SystemComments = true
				case strings.HasPrefix(f, "voice-markers="):
					switch v := strings.TrimPrefix(f, "voice-markers="); v {
					case "inline":
						ctx.Formatter.VoiceMarkers = source.VoiceMarkersInline
					case "infoline":
						ctx.Formatter.VoiceMarkers = source.VoiceMarkersInfoLine
						// any other value leaves VoiceMarkers at its default (null)
					}
				}
			}
		},
	},
	{
		Name: "abcls-voices",
		Apply: func(ctx *source.Context, value string) {
			switch strings.TrimSpace(value) {
			case "show":
				show := true
				ctx.Formatter.ShowVoices = &show
			case "hide":
				hide := false
				ctx.Formatter.ShowVoices = &hide
			}
		},
	},
}

// ApplyDirective looks up name in DirectiveSpecs and applies it to ctx with
// value. Unrecognized directive names are ignored: they were still scanned
// as STYLESHEET_DIRECTIVE tokens and preserved verbatim by the formatter,
// they simply carry no configuration meaning.
func ApplyDirective(ctx *source.Context, name, value string) {
	for _, d := range DirectiveSpecs {
		if d.Name == name {
			d.Apply(ctx, value)
			return
		}
	}
}
