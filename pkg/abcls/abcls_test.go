package abcls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeABCRoundTripsThroughFormat(t *testing.T) {
	tree, diags := AnalyzeABC("X:1\nK:C\nCDE|\n")
	for _, d := range diags {
		assert.NotEqual(t, "error", d.Severity)
	}
	out := FormatABC(tree, false)
	assert.Contains(t, out, "CDE")
}

func TestAnalyzeABCTReportsZeroBasedDiagnosticPositions(t *testing.T) {
	_, diags := AnalyzeABCT("y | transpos 1\n")
	require.NotEmpty(t, diags)
	assert.GreaterOrEqual(t, diags[0].Range.Start.Line, 0)
}

func TestEvaluateABCTWritesBackThroughLoader(t *testing.T) {
	loader := NewMemoryLoader(map[string]string{"a.abc": "X:1\nK:C\nCDE|\n"})
	result := EvaluateABCT("`a.abc` | @notes | octave 1", loader)
	for _, d := range result.Diagnostics {
		assert.NotEqual(t, "error", d.Severity)
	}
	require.Contains(t, result.ABC, "a.abc")
	assert.Contains(t, result.ABC["a.abc"], "cde")
}

func TestEvaluateABCTUndefinedIdentifierIsAnErrorDiagnostic(t *testing.T) {
	result := EvaluateABCT("y | transpose 1", NewMemoryLoader(nil))
	found := false
	for _, d := range result.Diagnostics {
		if d.Severity == "error" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluateABCTPipedUpdateMutatesWithNoDiagnostics(t *testing.T) {
	loader := NewMemoryLoader(map[string]string{"a.abc": "X:1\nK:C\nCD|\n"})
	result := EvaluateABCT("`a.abc` | @notes |= transpose 2", loader)
	assert.Empty(t, result.Diagnostics)
	require.Contains(t, result.ABC, "a.abc")
	assert.Contains(t, result.ABC["a.abc"], "DE")
}

func TestEvaluateABCTStandaloneUpdateIsExactlyOneError(t *testing.T) {
	result := EvaluateABCT("@notes |= transpose 2", NewMemoryLoader(nil))
	assert.Empty(t, result.ABC)
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0].Message, "must be used within a pipe")
}
