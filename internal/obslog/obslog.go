// Package obslog provides structured operational logging, separate from
// the diagnostics the core reports to callers (internal/diag). No other
// package of this module imports it. It mirrors the teacher's internal/logger.go
// shape exactly (Fields map, breadcrumb-on-info, CaptureException-on-error)
// minus the gin-specific request-context helper, since the core has no
// HTTP surface.
package obslog

import (
	"fmt"
	"log"

	"github.com/getsentry/sentry-go"
)

// Fields represents structured log fields.
type Fields map[string]interface{}

func formatFields(f Fields) string {
	if len(f) == 0 {
		return ""
	}
	out := "{"
	first := true
	for k, v := range f {
		if !first {
			out += " "
		}
		first = false
		out += fmt.Sprintf("%s=%v", k, v)
	}
	return out + "}"
}

// Info logs an informational message with structured fields and, if a
// Sentry hub is active, adds it as a breadcrumb.
func Info(msg string, fields Fields) {
	log.Printf("[INFO] %s %s", msg, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     "info",
			Category: "log",
			Message:  msg,
			Data:     convertFieldsToMap(fields),
			Level:    sentry.LevelInfo,
		})
	}
}

// Warn logs a warning message with structured fields.
func Warn(msg string, fields Fields) {
	log.Printf("[WARN] %s %s", msg, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     "warning",
			Category: "log",
			Message:  msg,
			Data:     convertFieldsToMap(fields),
			Level:    sentry.LevelWarning,
		})
	}
}

// Error logs an error message with structured fields and, if a Sentry hub
// is active, captures the exception with the fields set as scope context.
// Error is reserved for operational failures (loader I/O, panics recovered
// at a pipeline boundary); the diagnostics a caller sees for a malformed
// ABC/ABCT source always go through internal/diag instead (spec §7).
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %s", msg, err, formatFields(fields))

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for key, value := range fields {
				scope.SetContext(key, map[string]interface{}{"value": value})
			}
			hub.CaptureException(err)
		})
	}
}

func convertFieldsToMap(f Fields) map[string]interface{} {
	out := make(map[string]interface{}, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
