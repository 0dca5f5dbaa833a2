package abctregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindTransformKnownAndUnknown(t *testing.T) {
	spec := FindTransform("transpose")
	if assert.NotNil(t, spec) {
		assert.Len(t, spec.Args, 1)
	}
	assert.Nil(t, FindTransform("nope"))
}

func TestFindSelectorKnownAndUnknown(t *testing.T) {
	assert.NotNil(t, FindSelector("notes"))
	assert.Nil(t, FindSelector("nope"))
}

func TestNamesIncludesAllTransformsAndSelectors(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "transpose")
	assert.Contains(t, names, "octave")
	assert.Contains(t, names, "notes")
	assert.Contains(t, names, "chords")
}
