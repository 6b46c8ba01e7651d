package writer

import (
	"fmt"

	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

// SelectionUpdater lets the writer keep a caret attached to content it
// restructures. Position reports the caret of a collapsed selection;
// SetTo moves it.
type SelectionUpdater interface {
	Position() (position.Position, bool)
	SetTo(p position.Position)
}

// Writer applies structural mutations to a content tree while keeping
// it in normal form: no adjacent equal-identity spans, no adjacent
// text siblings, no empty spans, and deterministic span nesting.
//
// A Writer carries no tree state of its own; it operates on whatever
// positions and nodes are passed in.
type Writer struct {
	sel SelectionUpdater
}

// Option configures a Writer.
type Option func(*Writer)

// WithSelection attaches a selection the writer relocates when a
// structural edit lands exactly on the caret.
func WithSelection(sel SelectionUpdater) Option {
	return func(w *Writer) {
		w.sel = sel
	}
}

// New creates a Writer.
func New(opts ...Option) *Writer {
	w := &Writer{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Insert places nodes at pos and returns the range spanning them. The
// position may sit inside text or nested spans; formatting is broken
// first, then restored around the insertion, so equal formatting fuses
// with the neighbors. Attached nodes detach from their old parent.
//
// Inserting zero nodes returns a collapsed range at the (still broken
// and re-merged) position.
func (w *Writer) Insert(pos position.Position, nodes ...tree.Node) (position.Range, error) {
	if err := validateInsertNodes(nodes); err != nil {
		return position.Range{}, err
	}

	container := parentContainer(pos)
	if container == nil {
		return position.Range{}, fmt.Errorf("insert at %v: %w", pos, ErrNoEnclosingContainer)
	}

	insertion, err := w.breakAt(pos, true)
	if err != nil {
		return position.Range{}, err
	}

	length := container.InsertChildren(insertion.Offset, nodes...)
	endPos := insertion.ShiftedBy(length)

	start := w.MergeAt(insertion)
	if length == 0 {
		return position.Collapsed(start), nil
	}
	if !start.IsEqual(insertion) {
		// The start merge consumed one slot before the inserted run.
		endPos.Offset--
	}
	end := w.MergeAt(endPos)
	return position.NewRange(start, end), nil
}

// Remove detaches the content of r and returns it in a fragment,
// together with the collapsed position where the range used to be.
// The tree re-merges around the hole.
func (w *Writer) Remove(r position.Range) (*tree.Fragment, position.Position, error) {
	if _, err := validateRangeContainer(r); err != nil {
		return nil, position.Position{}, err
	}

	if r.IsCollapsed() {
		return tree.NewFragment(), r.Start, nil
	}

	broken, err := w.breakRange(r, true)
	if err != nil {
		return nil, position.Position{}, err
	}

	parent := broken.Start.Parent.(tree.Parent)
	removed := parent.RemoveChildren(broken.Start.Offset, broken.End.Offset-broken.Start.Offset)
	seam := w.MergeAt(broken.Start)
	return tree.NewFragment(removed...), seam, nil
}

// Move removes src and inserts it at target, returning the range the
// content occupies afterwards. A target behind the source is broken
// before the removal and compensated for the nodes that disappear.
func (w *Writer) Move(src position.Range, target position.Position) (position.Range, error) {
	var moved *tree.Fragment

	if target.IsAfter(src.End) {
		t, err := w.breakAt(target, true)
		if err != nil {
			return position.Range{}, err
		}
		parent := t.Parent.(tree.Parent)
		before := parent.ChildCount()

		moved, _, err = w.Remove(src)
		if err != nil {
			return position.Range{}, err
		}
		t.Offset += parent.ChildCount() - before
		target = t
	} else {
		var err error
		moved, _, err = w.Remove(src)
		if err != nil {
			return position.Range{}, err
		}
	}

	return w.Insert(target, moved.Children()...)
}

// Rename replaces the container with a copy under a different name,
// moving the children over, and returns the new container. Positions
// held by the caller into the old container become invalid.
func (w *Writer) Rename(el *tree.Container, newName string) (*tree.Container, error) {
	renamed := el.CloneRenamed(newName)
	if _, err := w.Insert(position.AfterNode(el), renamed); err != nil {
		return nil, err
	}
	if _, err := w.Move(position.In(el), position.At(renamed, 0)); err != nil {
		return nil, err
	}
	if _, _, err := w.Remove(position.On(el)); err != nil {
		return nil, err
	}
	return renamed, nil
}

// Clear removes every node inside r that matches template, walking
// backward so removals cannot disturb the rest of the walk. A text
// run touching the range start stands in for its nearest matching
// ancestor, whose interior is cleared. Matches sticking out of r are
// truncated to it on both sides.
func (w *Writer) Clear(r position.Range, template tree.Named) error {
	if _, err := validateRangeContainer(r); err != nil {
		return err
	}

	walker := r.Walk(position.WithDirection(position.Backward), position.WithIgnoreElementEnd())
	for {
		step, ok := walker.Next()
		if !ok {
			return nil
		}

		var target position.Range
		found := false

		switch item := step.Item.(type) {
		case *tree.Text:
			// Interior text is covered by its own element's step. Only
			// a run touching the range start needs the ancestor lookup,
			// for matches that started before the range.
			if !step.NextPosition.IsAfter(r.Start) {
				if anc := similarAncestor(item, template); anc != nil {
					target = position.In(anc)
					found = true
				}
			}
		default:
			if template.IsSimilar(step.Item) {
				target = position.On(step.Item)
				found = true
			}
		}

		if !found {
			continue
		}
		if target.End.IsAfter(r.End) {
			target.End = r.End
		}
		if target.Start.IsBefore(r.Start) {
			target.Start = r.Start
		}
		if _, _, err := w.Remove(target); err != nil {
			return err
		}
	}
}

// similarAncestor returns the closest ancestor of n similar to
// template, or nil.
func similarAncestor(n tree.Node, template tree.Node) tree.Node {
	for _, anc := range n.Ancestors(false) {
		if template.IsSimilar(anc) {
			return anc
		}
	}
	return nil
}

// parentContainer walks up from pos to the nearest container or
// fragment, or nil when none encloses it.
func parentContainer(pos position.Position) tree.Parent {
	for n := pos.Parent; n != nil; n = n.Parent() {
		switch c := n.(type) {
		case *tree.Container:
			return c
		case *tree.Fragment:
			return c
		}
	}
	return nil
}

// validateRangeContainer checks that both range ends resolve to the
// same enclosing container.
func validateRangeContainer(r position.Range) (tree.Parent, error) {
	start := parentContainer(r.Start)
	end := parentContainer(r.End)
	if start == nil || end == nil || start != end {
		return nil, fmt.Errorf("range %v: %w", r, ErrInvalidRangeContainer)
	}
	return start, nil
}

// validateInsertNodes checks that every node, including nested
// children, is an insertable kind. The walk uses an explicit stack so
// arbitrarily deep input cannot exhaust the call stack.
func validateInsertNodes(nodes []tree.Node) error {
	stack := make([]tree.Node, len(nodes))
	copy(stack, nodes)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := n.(type) {
		case *tree.Text, *tree.VoidLeaf, *tree.OpaqueWidget:
		case *tree.AttributeSpan:
			stack = append(stack, v.Children()...)
		case *tree.Container:
			stack = append(stack, v.Children()...)
		default:
			return fmt.Errorf("insert %T: %w", n, ErrInvalidNodeKind)
		}
	}
	return nil
}
