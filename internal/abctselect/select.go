// Package abctselect implements ABCT's @selector expressions over an
// internal/abcast tree, producing a Selection (spec §5.3, §9).
package abctselect

import (
	"github.com/abc-lang/abcls/internal/abcast"
)

// Selection pairs a Tree with the subset of its nodes currently selected.
// Narrowing composes by intersecting Nodes, never by copying the Arena
// (spec §9 "a Selection is the arena plus a set of indices").
type Selection struct {
	Tree  *abcast.Tree
	Nodes map[abcast.NodeID]bool
}

// All returns a Selection containing every node in tree.
func All(tree *abcast.Tree) *Selection {
	nodes := map[abcast.NodeID]bool{}
	abcast.Walk(tree.Arena, tree.Root, func(id abcast.NodeID, _ abcast.Node) {
		nodes[id] = true
	})
	return &Selection{Tree: tree, Nodes: nodes}
}

// Narrow returns the intersection of sel with the nodes for which pred
// holds, used by selectors like @notes/@chords/@bass.
func (sel *Selection) Narrow(pred func(*abcast.Arena, abcast.NodeID) bool) *Selection {
	out := map[abcast.NodeID]bool{}
	for id := range sel.Nodes {
		if pred(sel.Tree.Arena, id) {
			out[id] = true
		}
	}
	return &Selection{Tree: sel.Tree, Nodes: out}
}

// Union returns the set union of two selections over the same Tree.
func (sel *Selection) Union(other *Selection) *Selection {
	out := map[abcast.NodeID]bool{}
	for id := range sel.Nodes {
		out[id] = true
	}
	for id := range other.Nodes {
		out[id] = true
	}
	return &Selection{Tree: sel.Tree, Nodes: out}
}

// Notes narrows to Note nodes whose pitch is a real Pitch, leaving rests
// out (spec's `@notes`).
func Notes(sel *Selection) *Selection {
	return sel.Narrow(func(a *abcast.Arena, id abcast.NodeID) bool {
		n, ok := a.Get(id).(*abcast.Note)
		return ok && abcast.IsRealPitch(a, n.Pitch)
	})
}

// Chords narrows to Chord nodes (spec's `@chords`).
func Chords(sel *Selection) *Selection {
	return sel.Narrow(func(a *abcast.Arena, id abcast.NodeID) bool { return abcast.IsChord(a, id) })
}

// Bass narrows to the lowest-pitched Note within each Chord, plus any
// standalone Note, approximating "the bass line" (spec's `@bass`).
func Bass(sel *Selection) *Selection {
	out := map[abcast.NodeID]bool{}
	for id := range sel.Nodes {
		switch n := sel.Tree.Arena.Get(id).(type) {
		case *abcast.Note:
			if !abcast.IsChord(sel.Tree.Arena, sel.Tree.Arena.Parent(id)) {
				out[id] = true
			}
		case *abcast.Chord:
			if lowest := lowestNote(sel.Tree.Arena, n); lowest != 0 {
				out[lowest] = true
			}
		}
	}
	return &Selection{Tree: sel.Tree, Nodes: out}
}

func lowestNote(a *abcast.Arena, c *abcast.Chord) abcast.NodeID {
	var best abcast.NodeID
	bestMIDI := 1 << 30
	for _, id := range c.Notes(a) {
		note, ok := a.Get(id).(*abcast.Note)
		if !ok {
			continue
		}
		midi, ok := abcast.PitchOrRest(a, note)
		if !ok {
			continue
		}
		if midi < bestMIDI {
			bestMIDI, best = midi, id
		}
	}
	return best
}

// ByVoice narrows to System.Elements reachable after the V: info line whose
// ID equals voiceID, up to the next V: switch (spec's `@V:id`).
func ByVoice(sel *Selection, voiceID string) *Selection {
	out := map[abcast.NodeID]bool{}
	body := findTuneBody(sel.Tree)
	if body == nil {
		return &Selection{Tree: sel.Tree, Nodes: out}
	}
	current := ""
	for _, sysID := range body.Systems {
		sys, ok := sel.Tree.Arena.Get(sysID).(*abcast.System)
		if !ok {
			continue
		}
		if vID, ok := systemVoiceSwitch(sel.Tree.Arena, sys); ok {
			current = vID
			continue
		}
		if current == voiceID {
			markSelected(sel, sys, out)
		}
	}
	return &Selection{Tree: sel.Tree, Nodes: out}
}

func systemVoiceSwitch(a *abcast.Arena, sys *abcast.System) (string, bool) {
	if len(sys.Elements) != 1 {
		return "", false
	}
	il, ok := a.Get(sys.Elements[0]).(*abcast.InfoLine)
	if !ok || il.Key.Lexeme != "V:" {
		return "", false
	}
	if vd, ok := il.Parsed.(abcast.VoiceDef); ok {
		return vd.ID, true
	}
	return "", false
}

func markSelected(sel *Selection, sys *abcast.System, out map[abcast.NodeID]bool) {
	abcast.Walk(sel.Tree.Arena, sys.ID, func(id abcast.NodeID, _ abcast.Node) {
		if sel.Nodes[id] {
			out[id] = true
		}
	})
}

// ByMeasureRange narrows to Systems' BarLine-delimited measures numbered
// start..end inclusive (end == -1 means "to the last measure"), spec's
// `@M:start-end`.
func ByMeasureRange(sel *Selection, start, end int) *Selection {
	out := map[abcast.NodeID]bool{}
	body := findTuneBody(sel.Tree)
	if body == nil {
		return &Selection{Tree: sel.Tree, Nodes: out}
	}
	measure := 1
	for _, sysID := range body.Systems {
		sys, ok := sel.Tree.Arena.Get(sysID).(*abcast.System)
		if !ok {
			continue
		}
		for _, elID := range sys.Elements {
			inRange := measure >= start && (end == -1 || measure <= end)
			if inRange && sel.Nodes[elID] {
				out[elID] = true
			}
			if _, ok := sel.Tree.Arena.Get(elID).(*abcast.BarLine); ok {
				measure++
			}
		}
	}
	return &Selection{Tree: sel.Tree, Nodes: out}
}

// FindTuneBody locates the body of the first tune with a parsed body in
// tree, shared by abcttransform and abctfilter so selectors, transforms and
// filters all walk the same notion of "the tune" (spec's `@M`/`@V` scoping).
func FindTuneBody(tree *abcast.Tree) *abcast.TuneBody {
	return findTuneBody(tree)
}

func findTuneBody(tree *abcast.Tree) *abcast.TuneBody {
	fs := tree.FileStructureNode()
	if fs == nil {
		return nil
	}
	for _, tuneID := range fs.Tunes {
		tune, ok := tree.Arena.Get(tuneID).(*abcast.Tune)
		if !ok || tune.Body == 0 {
			continue
		}
		if body, ok := tree.Arena.Get(tune.Body).(*abcast.TuneBody); ok {
			return body
		}
	}
	return nil
}
