package abcast

// Clone deep-copies the subtree rooted at id into the same Arena, returning
// the new root's ID. Children are cloned recursively so the copy shares no
// NodeID with the original (spec §3 "Lifecycles": "no shared ownership of
// nodes across trees").
func Clone(a *Arena, id NodeID) NodeID {
	n := a.Get(id)
	if n == nil {
		return 0
	}
	parent := a.Parent(id)

	switch v := n.(type) {
	case *FileStructure:
		cp := *v
		cp.Header = Clone(a, v.Header)
		cp.Tunes = cloneAll(a, v.Tunes)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *FileHeader:
		cp := *v
		return a.Add(&cp, parent)
	case *Tune:
		cp := *v
		cp.Header = Clone(a, v.Header)
		cp.Body = Clone(a, v.Body)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *TuneHeader:
		cp := *v
		cp.Lines = cloneAll(a, v.Lines)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *TuneBody:
		cp := *v
		cp.Systems = cloneAll(a, v.Systems)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *System:
		cp := *v
		cp.Elements = cloneAll(a, v.Elements)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *InfoLine:
		cp := *v
		return a.Add(&cp, parent)
	case *Comment:
		cp := *v
		return a.Add(&cp, parent)
	case *StyleSheetDirective:
		cp := *v
		return a.Add(&cp, parent)
	case *Pitch:
		cp := *v
		return a.Add(&cp, parent)
	case *Rest:
		cp := *v
		return a.Add(&cp, parent)
	case *Rhythm:
		cp := *v
		return a.Add(&cp, parent)
	case *Note:
		cp := *v
		cp.Pitch = Clone(a, v.Pitch)
		cp.Rhythm = Clone(a, v.Rhythm)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *Chord:
		cp := *v
		cp.Contents = cloneAll(a, v.Contents)
		cp.Rhythm = Clone(a, v.Rhythm)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *Beam:
		cp := *v
		cp.Contents = cloneAll(a, v.Contents)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *GraceGroup:
		cp := *v
		cp.Notes = cloneAll(a, v.Notes)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *BarLine:
		cp := *v
		return a.Add(&cp, parent)
	case *Annotation:
		cp := *v
		return a.Add(&cp, parent)
	case *Decoration:
		cp := *v
		return a.Add(&cp, parent)
	case *Symbol:
		cp := *v
		return a.Add(&cp, parent)
	case *InlineField:
		cp := *v
		return a.Add(&cp, parent)
	case *NthRepeat:
		cp := *v
		return a.Add(&cp, parent)
	case *MultiMeasureRest:
		cp := *v
		return a.Add(&cp, parent)
	case *YSpacer:
		cp := *v
		cp.Width = Clone(a, v.Width)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *Tuplet:
		cp := *v
		cp.Contents = cloneAll(a, v.Contents)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *VoiceOverlay:
		cp := *v
		cp.Contents = cloneAll(a, v.Contents)
		return reparent(a, a.Add(&cp, parent), cp.NodeChildren())
	case *TokenNode:
		cp := *v
		return a.Add(&cp, parent)
	case *ErrorExpr:
		cp := *v
		return a.Add(&cp, parent)
	default:
		return 0
	}
}

func cloneAll(a *Arena, ids []NodeID) []NodeID {
	if ids == nil {
		return nil
	}
	out := make([]NodeID, len(ids))
	for i, id := range ids {
		out[i] = Clone(a, id)
	}
	return out
}

func reparent(a *Arena, id NodeID, kids []NodeID) NodeID {
	for _, k := range kids {
		a.SetParent(k, id)
	}
	return id
}
