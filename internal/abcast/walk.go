package abcast

// Walk visits id and every descendant depth-first, pre-order. It replaces
// the teacher-language's visitor-method hierarchy with a single free
// function over the Node interface (spec §9).
func Walk(a *Arena, id NodeID, visit func(NodeID, Node)) {
	n := a.Get(id)
	if n == nil {
		return
	}
	visit(id, n)
	for _, c := range n.NodeChildren() {
		Walk(a, c, visit)
	}
}

// WalkMut is Walk's mutating counterpart: visit may replace a node in the
// arena (via a.Add + caller bookkeeping) or mutate it in place through its
// pointer; traversal always proceeds over the pre-visit children list.
func WalkMut(a *Arena, id NodeID, visit func(NodeID, Node)) {
	n := a.Get(id)
	if n == nil {
		return
	}
	kids := append([]NodeID{}, n.NodeChildren()...)
	visit(id, n)
	for _, c := range kids {
		WalkMut(a, c, visit)
	}
}

// Collect returns the IDs of every descendant of id (id itself included)
// for which pred returns true.
func Collect(a *Arena, id NodeID, pred func(Node) bool) []NodeID {
	var out []NodeID
	Walk(a, id, func(nid NodeID, n Node) {
		if pred(n) {
			out = append(out, nid)
		}
	})
	return out
}

// Ancestors returns id's ancestor chain, nearest first, not including id.
func Ancestors(a *Arena, id NodeID) []NodeID {
	var out []NodeID
	for p := a.Parent(id); p != 0; p = a.Parent(p) {
		out = append(out, p)
	}
	return out
}
