// Package abctregistry holds the static tables of known transforms and
// selectors that internal/abctvalidate checks calls against and
// internal/abcteval dispatches through (spec §5.3).
package abctregistry

// ArgSpec describes one positional argument a transform accepts.
type ArgSpec struct {
	Name string
	Kind string // "number" | "string"
}

// TransformSpec describes one registered transform, e.g. `transpose 2`.
type TransformSpec struct {
	Name string
	Args []ArgSpec
}

// SelectorSpec describes one registered selector, e.g. `@notes`.
type SelectorSpec struct {
	Name string
	Args []ArgSpec
}

var Transforms = []TransformSpec{
	{Name: "transpose", Args: []ArgSpec{{Name: "semitones", Kind: "number"}}},
	{Name: "octave", Args: []ArgSpec{{Name: "octaves", Kind: "number"}}},
	{Name: "retrograde", Args: nil},
	{Name: "bass", Args: nil},
}

var Selectors = []SelectorSpec{
	{Name: "notes", Args: nil},
	{Name: "chords", Args: nil},
	{Name: "bass", Args: nil},
}

// FindTransform returns the spec for name, or nil if unknown.
func FindTransform(name string) *TransformSpec {
	for i := range Transforms {
		if Transforms[i].Name == name {
			return &Transforms[i]
		}
	}
	return nil
}

// FindSelector returns the spec for name, or nil if unknown.
func FindSelector(name string) *SelectorSpec {
	for i := range Selectors {
		if Selectors[i].Name == name {
			return &Selectors[i]
		}
	}
	return nil
}

// Names returns every registered transform and selector name (transforms
// first), used for edit-distance
// suggestions when validation rejects an unknown call.
func Names() []string {
	out := make([]string, 0, len(Transforms)+len(Selectors))
	for _, t := range Transforms {
		out = append(out, t.Name)
	}
	for _, s := range Selectors {
		out = append(out, s.Name)
	}
	return out
}
