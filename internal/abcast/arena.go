package abcast

import "github.com/abc-lang/abcls/internal/token"

// Arena is the backing store for one ABC tree: every Node lives here,
// addressed by NodeID. NodeID 0 is reserved and never assigned, so the zero
// value of NodeID means "no node" in optional fields like Tune.Body (spec
// §9: "model the tree in an arena ... a Selection is the arena plus a set
// of indices").
type Arena struct {
	nodes  []Node // nodes[0] is always nil
	parent []NodeID
}

// NewArena creates an empty Arena.
func NewArena() *Arena {
	return &Arena{nodes: []Node{nil}, parent: []NodeID{0}}
}

// Add inserts n, assigns it a NodeID, records parent as its owner (0 for
// the root), and returns the assigned ID. n's embedded Base.ID is set to
// the assigned value.
func (a *Arena) Add(n Node, parent NodeID) NodeID {
	id := NodeID(len(a.nodes))
	setID(n, id)
	a.nodes = append(a.nodes, n)
	a.parent = append(a.parent, parent)
	return id
}

// Get returns the node stored at id, or nil if id is 0 or out of range.
func (a *Arena) Get(id NodeID) Node {
	if int(id) <= 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// Parent returns the owning node's ID, or 0 for the root / an unknown id.
func (a *Arena) Parent(id NodeID) NodeID {
	if int(id) <= 0 || int(id) >= len(a.parent) {
		return 0
	}
	return a.parent[id]
}

// SetParent updates the recorded owner of id, used when a node is moved to
// a different container (e.g. a Note promoted out of a dissolved Beam).
func (a *Arena) SetParent(id, parent NodeID) {
	if int(id) > 0 && int(id) < len(a.parent) {
		a.parent[id] = parent
	}
}

// Remove detaches id from the arena: it is no longer reachable from Get,
// but existing NodeIDs pointing at it elsewhere must be cleaned up by the
// caller (filter/transform code is responsible for removing id from its
// parent's child slice first).
func (a *Arena) Remove(id NodeID) {
	if int(id) > 0 && int(id) < len(a.nodes) {
		a.nodes[id] = nil
	}
}

// setID stamps n's embedded Base.ID so later Get/Parent lookups round-trip
// through the node itself, not just the arena's own slices.
func setID(n Node, id NodeID) {
	switch v := n.(type) {
	case *FileStructure:
		v.ID = id
	case *FileHeader:
		v.ID = id
	case *Tune:
		v.ID = id
	case *TuneHeader:
		v.ID = id
	case *TuneBody:
		v.ID = id
	case *System:
		v.ID = id
	case *InfoLine:
		v.ID = id
	case *Comment:
		v.ID = id
	case *StyleSheetDirective:
		v.ID = id
	case *Pitch:
		v.ID = id
	case *Rest:
		v.ID = id
	case *Rhythm:
		v.ID = id
	case *Note:
		v.ID = id
	case *Chord:
		v.ID = id
	case *Beam:
		v.ID = id
	case *GraceGroup:
		v.ID = id
	case *BarLine:
		v.ID = id
	case *Annotation:
		v.ID = id
	case *Decoration:
		v.ID = id
	case *Symbol:
		v.ID = id
	case *InlineField:
		v.ID = id
	case *NthRepeat:
		v.ID = id
	case *MultiMeasureRest:
		v.ID = id
	case *YSpacer:
		v.ID = id
	case *Tuplet:
		v.ID = id
	case *VoiceOverlay:
		v.ID = id
	case *TokenNode:
		v.ID = id
	case *ErrorExpr:
		v.ID = id
	}
}

// Tree is a complete ABC tree: the Arena plus the ID of its root
// FileStructure node. A Selection (internal/abctselect) pairs a
// Tree with a subset of its NodeIDs without copying the Arena.
type Tree struct {
	Arena *Arena
	Root  NodeID
}

// FileStructureNode returns the root FileStructure, or nil if Root is unset.
func (t *Tree) FileStructureNode() *FileStructure {
	if t == nil {
		return nil
	}
	n, _ := t.Arena.Get(t.Root).(*FileStructure)
	return n
}

// RecomputeSpan sets id's span to the union of its children's spans,
// maintaining the invariant that a parent's span covers its children
// (spec §8 property 1). Leaf nodes (no NodeID children) are left alone:
// their span was set directly from their token(s) at construction time.
func RecomputeSpan(a *Arena, id NodeID) {
	n := a.Get(id)
	if n == nil {
		return
	}
	var span token.Span
	for _, c := range n.NodeChildren() {
		if cn := a.Get(c); cn != nil {
			span = span.Union(cn.NodeSpan())
		}
	}
	if span != (token.Span{}) {
		n.SetSpan(span)
	}
}
