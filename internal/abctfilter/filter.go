// Package abctfilter implements ABCT's `filter (predicate)` pruning:
// removing non-matching nodes from their parent container while preserving
// the chord/beam invariants the spec requires (at least one Note left in a
// Chord, a Beam dissolved once fewer than two beamable members remain)
// (spec §5.3, C12).
package abctfilter

import (
	"github.com/abc-lang/abcls/internal/abcast"
	"github.com/abc-lang/abcls/internal/abctselect"
)

// Predicate reports whether id should be kept.
type Predicate func(*abcast.Arena, abcast.NodeID) bool

// Apply removes every selected node for which keep returns false from its
// containing System/Chord/Beam/GraceGroup/Tuplet slice, dissolving
// containers that would otherwise violate an arity invariant.
func Apply(sel *abctselect.Selection, keep Predicate) {
	body := abctselect.FindTuneBody(sel.Tree)
	if body == nil {
		return
	}
	for _, sysID := range body.Systems {
		sys, ok := sel.Tree.Arena.Get(sysID).(*abcast.System)
		if !ok {
			continue
		}
		sys.Elements = filterAndFix(sel, sys.Elements, keep)
	}
}

func filterAndFix(sel *abctselect.Selection, ids []abcast.NodeID, keep Predicate) []abcast.NodeID {
	var out []abcast.NodeID
	for _, id := range ids {
		if sel.Nodes[id] && !keep(sel.Tree.Arena, id) {
			continue
		}
		if !pruneContainer(sel, id, keep) {
			continue
		}
		if b, ok := sel.Tree.Arena.Get(id).(*abcast.Beam); ok && countBeamable(sel.Tree.Arena, b.Contents) < 2 {
			out = append(out, b.Contents...)
			continue
		}
		out = append(out, id)
	}
	return out
}

// pruneContainer recurses into id's children if it is a container, and
// reports whether id should still be kept in its own parent's slice: a
// Chord emptied of every Note by the recursion is dropped rather than
// left behind as `[]`.
func pruneContainer(sel *abctselect.Selection, id abcast.NodeID, keep Predicate) bool {
	switch n := sel.Tree.Arena.Get(id).(type) {
	case *abcast.Chord:
		n.Contents = filterAndFix(sel, n.Contents, keep)
		return len(n.Notes(sel.Tree.Arena)) > 0
	case *abcast.Beam:
		n.Contents = filterAndFix(sel, n.Contents, keep)
		if countBeamable(sel.Tree.Arena, n.Contents) < 2 {
			dissolveBeam(sel.Tree.Arena, id, n)
		}
	case *abcast.GraceGroup:
		n.Notes = filterAndFix(sel, n.Notes, keep)
	case *abcast.Tuplet:
		n.Contents = filterAndFix(sel, n.Contents, keep)
	}
	return true
}

func countBeamable(a *abcast.Arena, ids []abcast.NodeID) int {
	n := 0
	for _, id := range ids {
		if abcast.IsBeamable(a, id) {
			n++
		}
	}
	return n
}

// dissolveBeam re-parents a Beam's remaining Contents to the Beam's own
// parent; filterAndFix then splices those Contents into the owning slice in
// place of the Beam.
func dissolveBeam(a *abcast.Arena, id abcast.NodeID, n *abcast.Beam) {
	parent := a.Parent(id)
	for _, c := range n.Contents {
		a.SetParent(c, parent)
	}
}
