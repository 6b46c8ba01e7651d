package writer

import (
	"fmt"

	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

// BreakAt splits the attribute spans above pos so that the returned
// position sits directly in the nearest container or fragment. A
// position already inside text that lies directly in a container is
// returned unchanged; text under a span is split.
//
// BreakAt fails with ErrCannotBreakLeaf for positions inside a void
// leaf or widget and with ErrNoEnclosingContainer when no container or
// fragment encloses pos.
func (w *Writer) BreakAt(pos position.Position) (position.Position, error) {
	return w.breakAt(pos, false)
}

// BreakRange breaks both ends of r and returns the broken range. The
// end is broken first; the start break cannot move it, so only the
// end's own offset shift needs compensating.
func (w *Writer) BreakRange(r position.Range) (position.Range, error) {
	return w.breakRange(r, false)
}

func (w *Writer) breakRange(r position.Range, forceText bool) (position.Range, error) {
	if _, err := validateRangeContainer(r); err != nil {
		return position.Range{}, err
	}

	if r.IsCollapsed() {
		p, err := w.breakAt(r.Start, forceText)
		if err != nil {
			return position.Range{}, err
		}
		return position.Collapsed(p), nil
	}

	breakEnd, err := w.breakAt(r.End, forceText)
	if err != nil {
		return position.Range{}, err
	}
	count := position.MaxOffset(breakEnd.Parent)
	breakStart, err := w.breakAt(r.Start, forceText)
	if err != nil {
		return position.Range{}, err
	}

	// Breaking the start may have split nodes before the end position.
	breakEnd.Offset += position.MaxOffset(breakEnd.Parent) - count
	return position.NewRange(breakStart, breakEnd), nil
}

// breakAt walks upward from pos, splitting every attribute span on the
// way, until the position lands in a container or fragment. With
// forceText, text directly inside a container splits as well.
func (w *Writer) breakAt(pos position.Position, forceText bool) (position.Position, error) {
	for {
		switch parent := pos.Parent.(type) {
		case *tree.VoidLeaf, *tree.OpaqueWidget:
			return position.Position{}, fmt.Errorf("break at %v: %w", pos, ErrCannotBreakLeaf)

		case *tree.Container, *tree.Fragment:
			return pos, nil

		case *tree.Text:
			outer := parent.Parent()
			if outer == nil {
				return position.Position{}, fmt.Errorf("break at %v: %w", pos, ErrNoEnclosingContainer)
			}
			if !forceText {
				switch outer.(type) {
				case *tree.Container, *tree.Fragment:
					return pos, nil
				}
			}
			pos = breakTextNode(pos)

		case *tree.AttributeSpan:
			if parent.Parent() == nil {
				return position.Position{}, fmt.Errorf("break at %v: %w", pos, ErrNoEnclosingContainer)
			}
			switch {
			case pos.Offset == parent.ChildCount():
				// At the span's end: continue after it.
				pos = position.AfterNode(parent)
			case pos.Offset == 0:
				// At the span's start: continue before it.
				pos = position.BeforeNode(parent)
			default:
				// Interior: split the span and continue between the halves.
				right := parent.Clone(false).(*tree.AttributeSpan)
				outer := parent.Parent()
				at := parent.Index() + 1
				outer.InsertChildren(at, right)
				moved := parent.RemoveChildren(pos.Offset, parent.ChildCount()-pos.Offset)
				right.AppendChildren(moved...)
				pos = position.At(outer, at)
			}

		default:
			return position.Position{}, fmt.Errorf("break at %v: %w", pos, ErrNoEnclosingContainer)
		}
	}
}

// breakTextNode splits the text node pos points into and returns the
// position between the two halves. At a text edge nothing splits and
// the position moves outside the node.
func breakTextNode(pos position.Position) position.Position {
	txt := pos.Parent.(*tree.Text)
	if pos.Offset == txt.Len() {
		return position.AfterNode(txt)
	}
	if pos.Offset == 0 {
		return position.BeforeNode(txt)
	}

	data := txt.Data()
	right := tree.NewText(data[pos.Offset:])
	txt.SetData(data[:pos.Offset])

	outer := txt.Parent()
	at := txt.Index() + 1
	outer.InsertChildren(at, right)
	return position.At(outer, at)
}

// MergeAt restores normal form around pos: empty spans are dropped,
// adjacent text nodes are joined and identity-equal spans are fused,
// repeating inward until nothing more merges. The returned position
// addresses the same point in the merged tree.
func (w *Writer) MergeAt(pos position.Position) position.Position {
	for {
		// Nothing merges inside text.
		if _, ok := pos.Parent.(*tree.Text); ok {
			return pos
		}

		// An empty span disappears; continue from its slot.
		if span, ok := pos.Parent.(*tree.AttributeSpan); ok && span.ChildCount() == 0 {
			outer := span.Parent()
			if outer == nil {
				return pos
			}
			at := span.Index()
			outer.RemoveChildren(at, 1)
			pos = position.At(outer, at)
			continue
		}

		parent, ok := pos.Parent.(tree.Parent)
		if !ok {
			return pos
		}
		before := parent.Child(pos.Offset - 1)
		after := parent.Child(pos.Offset)
		if before == nil || after == nil {
			return pos
		}

		if bt, ok := before.(*tree.Text); ok {
			if at, ok := after.(*tree.Text); ok {
				return mergeTextNodes(bt, at)
			}
			return pos
		}

		bs, bok := before.(*tree.AttributeSpan)
		as, aok := after.(*tree.AttributeSpan)
		if bok && aok && bs.IsSimilar(as) {
			// Fuse the right span into the left one and continue at the
			// seam inside it.
			count := bs.ChildCount()
			bs.AppendChildren(as.Children()...)
			parent.RemoveChildren(pos.Offset, 1)
			pos = position.At(bs, count)
			continue
		}

		return pos
	}
}

// mergeTextNodes appends right's data to left, removes right and
// returns the join point inside left.
func mergeTextNodes(left, right *tree.Text) position.Position {
	at := left.Len()
	left.AppendData(right.Data())
	right.Parent().RemoveChildren(right.Index(), 1)
	return position.At(left, at)
}

// movePositionToTextNode snaps a position between nodes into an
// adjacent text node, preferring the one before.
func movePositionToTextNode(pos position.Position) position.Position {
	if t, ok := pos.NodeBefore().(*tree.Text); ok {
		return position.At(t, t.Len())
	}
	if t, ok := pos.NodeAfter().(*tree.Text); ok {
		return position.At(t, 0)
	}
	return pos
}

// BreakContainer splits the container pos points into in two at pos
// and returns the position between the halves. Breaking at the
// container's edge splits nothing and returns the matching outer
// position.
//
// BreakContainer fails with ErrNotAContainer when pos is not directly
// inside a container and with ErrRootContainer for the tree root.
func (w *Writer) BreakContainer(pos position.Position) (position.Position, error) {
	el, ok := pos.Parent.(*tree.Container)
	if !ok {
		return position.Position{}, fmt.Errorf("break container at %v: %w", pos, ErrNotAContainer)
	}
	if el.Parent() == nil {
		return position.Position{}, fmt.Errorf("break container at %v: %w", pos, ErrRootContainer)
	}

	if pos.IsAtStart() {
		return position.BeforeNode(el), nil
	}
	if !pos.IsAtEnd() {
		right := el.Clone(false).(*tree.Container)
		if _, err := w.Insert(position.AfterNode(el), right); err != nil {
			return position.Position{}, err
		}
		tail := position.NewRange(pos, position.At(el, el.ChildCount()))
		if _, err := w.Move(tail, position.At(right, 0)); err != nil {
			return position.Position{}, err
		}
	}
	return position.AfterNode(el), nil
}

// MergeContainers joins the two containers around pos: the right
// container's children move to the end of the left one and the right
// container is removed. The returned position sits at the seam,
// inside the left container's trailing text node when there is one.
//
// MergeContainers fails with ErrIncompatibleMergeTarget when pos is
// not between two containers.
func (w *Writer) MergeContainers(pos position.Position) (position.Position, error) {
	prev, _ := pos.NodeBefore().(*tree.Container)
	next, _ := pos.NodeAfter().(*tree.Container)
	if prev == nil || next == nil {
		return position.Position{}, fmt.Errorf("merge containers at %v: %w", pos, ErrIncompatibleMergeTarget)
	}

	// Pin the seam before moving: inside the trailing text it survives
	// the text merge that the move can trigger.
	var seam position.Position
	if last, ok := prev.Child(prev.ChildCount() - 1).(*tree.Text); ok {
		seam = position.At(last, last.Len())
	} else {
		seam = position.At(prev, prev.ChildCount())
	}

	if _, err := w.Move(position.In(next), position.At(prev, prev.ChildCount())); err != nil {
		return position.Position{}, err
	}
	if _, _, err := w.Remove(position.On(next)); err != nil {
		return position.Position{}, err
	}
	return seam, nil
}
